// 指示: miu200521358
package moutput

import "github.com/miu200521358/mu_physmigrate/pkg/domain/model"

// IFileReader はシーン読み込み契約を表す。
type IFileReader interface {
	// CanLoad は読み込み可能なパスか判定する。
	CanLoad(path string) bool
	// InferName はパスからシーン名を推定する。
	InferName(path string) string
	// Load はシーンを読み込む。
	Load(path string) (*model.Scene, error)
}

// IFileWriter はシーン書き込み契約を表す。
type IFileWriter interface {
	// Save はシーンを保存する。
	Save(path string, scene *model.Scene, opts SaveOptions) error
}

// SaveOptions は保存時のオプションを表す。
type SaveOptions struct {
	// Format は "json" または "yaml"。空の場合は拡張子から判定する。
	Format string
}

// IPreBuildProvider はクロス事前構築データの計算契約を表す。
type IPreBuildProvider interface {
	// BuildPreBuildData はクロス記述から事前構築データを生成する。
	BuildPreBuildData(cloth *model.Cloth) ([]byte, error)
}

// IPreBuildStore は事前構築データの保存先契約を表す。
type IPreBuildStore interface {
	// EnsureFolder はフォルダを再帰的に作成する。
	EnsureFolder(path string) error
	// Write はデータを書き込む。
	Write(path string, data []byte) error
}
