// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
	"github.com/miu200521358/mu_physmigrate/pkg/usecase/port/moutput"
)

// PhysMigrateUsecaseDeps は物理移植ユースケースの依存を表す。
type PhysMigrateUsecaseDeps struct {
	SceneReader      moutput.IFileReader
	SceneWriter      moutput.IFileWriter
	Providers        []IAttachmentProvider
	Policy           *MigrationPolicy
	PreBuildProvider moutput.IPreBuildProvider
	PreBuildStore    moutput.IPreBuildStore
}

// PhysMigrateUsecase は物理レコード移植処理をまとめたユースケースを表す。
type PhysMigrateUsecase struct {
	sceneReader      moutput.IFileReader
	sceneWriter      moutput.IFileWriter
	providers        []IAttachmentProvider
	policy           *MigrationPolicy
	preBuildProvider moutput.IPreBuildProvider
	preBuildStore    moutput.IPreBuildStore
}

// NewPhysMigrateUsecase は物理移植ユースケースを生成する。
func NewPhysMigrateUsecase(deps PhysMigrateUsecaseDeps) *PhysMigrateUsecase {
	providers := deps.Providers
	if providers == nil {
		providers = DefaultProviders()
	}
	return &PhysMigrateUsecase{
		sceneReader:      deps.SceneReader,
		sceneWriter:      deps.SceneWriter,
		providers:        providers,
		policy:           deps.Policy,
		preBuildProvider: deps.PreBuildProvider,
		preBuildStore:    deps.PreBuildStore,
	}
}

// LoadScene はシーンを読み込む。
func (uc *PhysMigrateUsecase) LoadScene(rep moutput.IFileReader, path string) (*model.Scene, error) {
	repo := rep
	if repo == nil {
		repo = uc.sceneReader
	}
	if repo == nil {
		return nil, fmt.Errorf("シーン読み込みリポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("読み込みパスが未指定です")
	}
	if !repo.CanLoad(path) {
		return nil, fmt.Errorf("読み込みできない形式です: %s", path)
	}
	scene, err := repo.Load(path)
	if err != nil {
		return nil, err
	}
	if scene == nil || scene.Root == nil {
		return nil, fmt.Errorf("シーン読み込み結果が空です: %s", path)
	}
	return scene, nil
}

// SaveScene はシーンを保存する。
func (uc *PhysMigrateUsecase) SaveScene(rep moutput.IFileWriter, path string, scene *model.Scene, opts moutput.SaveOptions) error {
	writer := rep
	if writer == nil {
		writer = uc.sceneWriter
	}
	if writer == nil {
		return fmt.Errorf("シーン保存リポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("保存先パスが未指定です")
	}
	if scene == nil {
		return fmt.Errorf("保存対象シーンが未設定です")
	}
	return writer.Save(path, scene, opts)
}

// Validate は移植元ツリーのノード名の一意性を検証する。
func (uc *PhysMigrateUsecase) Validate(source *model.Scene) error {
	if source == nil {
		return ValidateUniqueNames(nil)
	}
	return ValidateUniqueNames(source.Root)
}

// Analyze は移植前の診断を行う。
func (uc *PhysMigrateUsecase) Analyze(source *model.Scene, target *model.Scene) *AnalysisReport {
	return Analyze(sceneRoot(source), sceneRoot(target))
}

// Migrate は依存に設定したプロバイダと方針で移植する。要求側の指定があればそちらを優先する。
func (uc *PhysMigrateUsecase) Migrate(request MigrateRequest) (*MigrationLog, error) {
	if request.Providers == nil {
		request.Providers = uc.providers
	}
	if request.Policy == nil {
		request.Policy = uc.policy
	}
	return Migrate(request)
}

// MigrateScenes はシーン同士で移植する。
func (uc *PhysMigrateUsecase) MigrateScenes(source *model.Scene, target *model.Scene, reporter IMigrateProgressReporter) (*MigrationLog, error) {
	return uc.Migrate(MigrateRequest{
		Source:           sceneRoot(source),
		Target:           sceneRoot(target),
		ProgressReporter: reporter,
	})
}

// CreatePreBuildData は依存に設定した生成処理と保存先で事前構築データを作成する。
func (uc *PhysMigrateUsecase) CreatePreBuildData(request PreBuildRequest) (*PreBuildResult, error) {
	if request.Provider == nil {
		request.Provider = uc.preBuildProvider
	}
	if request.Store == nil {
		request.Store = uc.preBuildStore
	}
	return CreatePreBuildData(request)
}

// MigrateBlendShapes はシーン同士でブレンドシェイプ重みを移植する。
func (uc *PhysMigrateUsecase) MigrateBlendShapes(source *model.Scene, target *model.Scene) (*BlendShapeMigrationResult, error) {
	return MigrateBlendShapes(sceneRoot(source), sceneRoot(target))
}

// ResetBlendShapes はシーン全体のブレンドシェイプ重みを初期化する。
func (uc *PhysMigrateUsecase) ResetBlendShapes(scene *model.Scene) int {
	return ResetBlendShapes(sceneRoot(scene))
}

// sceneRoot はシーンのルートを返す。
func sceneRoot(scene *model.Scene) *model.Node {
	if scene == nil {
		return nil
	}
	return scene.Root
}
