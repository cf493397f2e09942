// 指示: miu200521358
package prebuild

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
)

// blobFormatVersion は事前構築データの形式版数。
const blobFormatVersion = 1

// blobDocument は事前構築データの内容を表す。
type blobDocument struct {
	Version         int      `yaml:"version"`
	Owner           string   `yaml:"owner"`
	ClothType       string   `yaml:"clothType"`
	Gravity         float64  `yaml:"gravity"`
	Damping         float64  `yaml:"damping"`
	Stiffness       float64  `yaml:"stiffness"`
	Radius          float64  `yaml:"radius"`
	RootBones       []string `yaml:"rootBones"`
	Colliders       []string `yaml:"colliders,omitempty"`
	SourceRenderers []string `yaml:"sourceRenderers,omitempty"`
}

// BlobBuilder はクロス記述から事前構築データを生成する既定実装。
// 外部の物理エンジンを持たないため、ボーン構成とパラメータを固定した YAML を出力する。
type BlobBuilder struct{}

// NewBlobBuilder はBlobBuilderを生成する。
func NewBlobBuilder() *BlobBuilder {
	return &BlobBuilder{}
}

// BuildPreBuildData はクロス記述から事前構築データを生成する。
func (b *BlobBuilder) BuildPreBuildData(cloth *model.Cloth) ([]byte, error) {
	if cloth == nil || cloth.Owner() == nil {
		return nil, fmt.Errorf("事前構築対象のクロスが未設定です")
	}
	if len(cloth.RootBones) == 0 {
		return nil, fmt.Errorf("クロスのルートボーンが未設定です: node=%s", cloth.Owner().Name)
	}
	doc := blobDocument{
		Version:   blobFormatVersion,
		Owner:     cloth.Owner().Path(),
		ClothType: cloth.ClothType,
		Gravity:   cloth.Gravity,
		Damping:   cloth.Damping,
		Stiffness: cloth.Stiffness,
		Radius:    cloth.Radius,
	}
	for _, bone := range cloth.RootBones {
		if bone == nil {
			continue
		}
		doc.RootBones = append(doc.RootBones, bone.Path())
	}
	for _, collider := range cloth.Colliders {
		doc.Colliders = append(doc.Colliders, recordLabel(collider))
	}
	for _, renderer := range cloth.SourceRenderers {
		doc.SourceRenderers = append(doc.SourceRenderers, recordLabel(renderer))
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("事前構築データの生成に失敗しました: %w", err)
	}
	return data, nil
}

// recordLabel は参照レコードを「ノードパス#種別[順番]」で表す。
func recordLabel(record model.IRecord) string {
	if record == nil {
		return ""
	}
	return fmt.Sprintf("%s#%s[%d]", record.Owner().Path(), record.Kind(), model.RecordOrdinal(record))
}
