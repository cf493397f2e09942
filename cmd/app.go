// 指示: miu200521358
package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_physmigrate/pkg/adapter/io_model"
	"github.com/miu200521358/mu_physmigrate/pkg/adapter/io_model/scene"
	"github.com/miu200521358/mu_physmigrate/pkg/adapter/io_model/vrm"
	"github.com/miu200521358/mu_physmigrate/pkg/adapter/mpresenter"
	"github.com/miu200521358/mu_physmigrate/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_physmigrate/pkg/adapter/prebuild"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
	"github.com/miu200521358/mu_physmigrate/pkg/infra/base/mlogging"
	"github.com/miu200521358/mu_physmigrate/pkg/infra/config"
	"github.com/miu200521358/mu_physmigrate/pkg/shared/base/logging"
	"github.com/miu200521358/mu_physmigrate/pkg/usecase/minteractor"
	"github.com/miu200521358/mu_physmigrate/pkg/usecase/port/moutput"
)

// app はサブコマンドが共有する設定と依存を保持する。
type app struct {
	out        io.Writer
	cfg        *config.Config
	repository *io_model.ModelRepository
	usecase    *minteractor.PhysMigrateUsecase
	presenter  *mpresenter.ReportPresenter
}

// newApp は設定を読み込み、ロガーとユースケースを組み立てる。
func newApp(opts *globalOptions, out io.Writer, errOut io.Writer) (*app, error) {
	cfg, err := config.Load(config.LoadOptions{ConfigPath: opts.configPath})
	if err != nil {
		return nil, err
	}
	if level := strings.TrimSpace(opts.logLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	if locale := strings.TrimSpace(opts.locale); locale != "" {
		cfg.Locale = locale
	}

	logger := mlogging.NewLogger(errOut)
	logger.SetLevel(logging.ParseLogLevel(cfg.LogLevel))
	logging.SetDefaultLogger(logger)

	flattenKinds, err := cfg.FlattenRecordKinds()
	if err != nil {
		return nil, err
	}
	presenter, err := mpresenter.NewReportPresenter(out, cfg.Locale)
	if err != nil {
		return nil, err
	}

	repository := io_model.NewModelRepository()
	repository.VrmRepository().SetLoadProgressReporter(func(event vrm.LoadProgressEvent) {
		logger.Debug("VRM読込進捗: %s nodes=%d colliders=%d springs=%d",
			event.Type, event.NodeCount, event.ColliderCount, event.SpringCount)
	})

	usecase := minteractor.NewPhysMigrateUsecase(minteractor.PhysMigrateUsecaseDeps{
		SceneReader:      repository,
		SceneWriter:      repository,
		Providers:        minteractor.FilterProviders(minteractor.DefaultProviders(), cfg.DisabledProviders),
		Policy:           &minteractor.MigrationPolicy{FlattenKinds: flattenKinds},
		PreBuildProvider: prebuild.NewBlobBuilder(),
		PreBuildStore:    prebuild.NewFileStore(""),
	})

	return &app{
		out:        out,
		cfg:        cfg,
		repository: repository,
		usecase:    usecase,
		presenter:  presenter,
	}, nil
}

// loadScene はシーンを読み込み、失敗時は翻訳済みの文言で包む。
func (a *app) loadScene(path string) (*model.Scene, error) {
	loaded, err := a.usecase.LoadScene(nil, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.presenter.Sprintf(messages.MessageLoadFailed, path), err)
	}
	return loaded, nil
}

// resolveOutput は保存先パスを解決し、保存先ディレクトリを作成する。
func (a *app) resolveOutput(targetPath string, outputPath string, create bool) (string, error) {
	resolved, err := minteractor.ResolveSceneOutputPath(targetPath, outputPath)
	if err != nil {
		return "", err
	}
	if !create {
		return resolved, nil
	}
	if err := minteractor.PrepareOutputLayout(resolved); err != nil {
		return "", err
	}
	return resolved, nil
}

// saveFormat は保存形式を決める。設定が空の場合は拡張子から判定する。
func (a *app) saveFormat(outputPath string) string {
	switch a.cfg.OutputFormat {
	case "yaml", "yml":
		return scene.FormatYAML
	case "json":
		return scene.FormatJSON
	}
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".yaml", ".yml":
		return scene.FormatYAML
	default:
		return scene.FormatJSON
	}
}

// saveScene はシーンを保存して保存先を表示する。
func (a *app) saveScene(outputPath string, target *model.Scene) error {
	opts := moutput.SaveOptions{Format: a.saveFormat(outputPath)}
	if err := a.usecase.SaveScene(nil, outputPath, target, opts); err != nil {
		return fmt.Errorf("%s: %w", a.presenter.Sprintf(messages.MessageSaveFailed, outputPath), err)
	}
	a.presenter.Println(messages.MessageSaved, outputPath)
	return nil
}

// migrateProgressLogger は移植進捗をデバッグログへ出力する。
type migrateProgressLogger struct{}

// ReportMigrateProgress は移植進捗をデバッグログへ出力する。
func (migrateProgressLogger) ReportMigrateProgress(event minteractor.MigrateProgressEvent) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug("移植進捗: %s kind=%s mapped=%d records=%d", event.Type, event.Kind, event.MappedCount, event.RecordCount)
}
