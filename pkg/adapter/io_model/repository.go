// 指示: miu200521358
package io_model

import (
	"github.com/miu200521358/mu_physmigrate/pkg/adapter/io_common"
	"github.com/miu200521358/mu_physmigrate/pkg/adapter/io_model/scene"
	"github.com/miu200521358/mu_physmigrate/pkg/adapter/io_model/vrm"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
	"github.com/miu200521358/mu_physmigrate/pkg/usecase/port/moutput"
)

// ModelRepository は拡張子に応じて読み込み先を振り分ける。保存はシーンファイルのみ扱う。
type ModelRepository struct {
	sceneRepository *scene.SceneRepository
	vrmRepository   *vrm.VrmRepository
}

// NewModelRepository はModelRepositoryを生成する。
func NewModelRepository() *ModelRepository {
	return &ModelRepository{
		sceneRepository: scene.NewSceneRepository(),
		vrmRepository:   vrm.NewVrmRepository(),
	}
}

// SceneRepository はシーンファイルの読み書き先を返す。
func (r *ModelRepository) SceneRepository() *scene.SceneRepository {
	return r.sceneRepository
}

// VrmRepository はVRMの読み込み先を返す。
func (r *ModelRepository) VrmRepository() *vrm.VrmRepository {
	return r.vrmRepository
}

// CanLoad はいずれかの読み込み先が対応していれば true を返す。
func (r *ModelRepository) CanLoad(path string) bool {
	return r.readerFor(path) != nil
}

// InferName はパスから表示名を推定する。
func (r *ModelRepository) InferName(path string) string {
	if reader := r.readerFor(path); reader != nil {
		return reader.InferName(path)
	}
	return r.sceneRepository.InferName(path)
}

// Load は対応する読み込み先でシーンを読み込む。
func (r *ModelRepository) Load(path string) (*model.Scene, error) {
	reader := r.readerFor(path)
	if reader == nil {
		return nil, io_common.NewIoExtInvalid(path, nil)
	}
	return reader.Load(path)
}

// Save はシーンファイルとして保存する。
func (r *ModelRepository) Save(path string, scene *model.Scene, opts moutput.SaveOptions) error {
	return r.sceneRepository.Save(path, scene, opts)
}

// Encode はシーンを指定形式の文書へ変換する。
func (r *ModelRepository) Encode(scene *model.Scene, format string) ([]byte, error) {
	return r.sceneRepository.Encode(scene, format)
}

func (r *ModelRepository) readerFor(path string) moutput.IFileReader {
	switch {
	case r.sceneRepository.CanLoad(path):
		return r.sceneRepository
	case r.vrmRepository.CanLoad(path):
		return r.vrmRepository
	default:
		return nil
	}
}
