// 指示: miu200521358
package prebuild

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_physmigrate/pkg/adapter/io_common"
)

// FileStore は事前構築データをファイルシステムへ保存する。
// 相対パスは BaseDir 基準で解決する。
type FileStore struct {
	BaseDir string
}

// NewFileStore はFileStoreを生成する。
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{BaseDir: baseDir}
}

// EnsureFolder はフォルダを再帰的に作成する。
func (s *FileStore) EnsureFolder(path string) error {
	resolved := s.resolve(path)
	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return io_common.NewIoSaveFailed("事前構築フォルダの作成に失敗しました: %s", err, resolved)
	}
	return nil
}

// Write はデータを書き込む。親フォルダが無い場合は作成する。
func (s *FileStore) Write(path string, data []byte) error {
	resolved := s.resolve(path)
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return io_common.NewIoSaveFailed("事前構築フォルダの作成に失敗しました: %s", err, filepath.Dir(resolved))
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return io_common.NewIoSaveFailed("事前構築データの書き込みに失敗しました: %s", err, resolved)
	}
	return nil
}

func (s *FileStore) resolve(path string) string {
	if filepath.IsAbs(path) || strings.TrimSpace(s.BaseDir) == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(s.BaseDir, path)
}
