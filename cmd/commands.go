// 指示: miu200521358
package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/miu200521358/mu_physmigrate/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_physmigrate/pkg/adapter/prebuild"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
	"github.com/miu200521358/mu_physmigrate/pkg/usecase/minteractor"
)

const diffContextLines = 3

func newValidateCommand(opts *globalOptions, out io.Writer, errOut io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <source>",
		Short: "Check that node names in the source tree are unique",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, out, errOut)
			if err != nil {
				return err
			}
			source, err := a.loadScene(args[0])
			if err != nil {
				return err
			}
			return a.presenter.RenderValidation(a.usecase.Validate(source))
		},
	}
}

func newAnalyzeCommand(opts *globalOptions, out io.Writer, errOut io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <source> <target>",
		Short: "Report node counts, name matches and duplicate names",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, out, errOut)
			if err != nil {
				return err
			}
			source, err := a.loadScene(args[0])
			if err != nil {
				return err
			}
			target, err := a.loadScene(args[1])
			if err != nil {
				return err
			}
			a.presenter.RenderAnalysis(a.usecase.Analyze(source, target))
			return nil
		},
	}
}

// migrateOptions は migrate サブコマンドのフラグを保持する。
type migrateOptions struct {
	outputPath  string
	dryRun      bool
	preBuild    bool
	blendShapes bool
	baseDir     string
}

func newMigrateCommand(opts *globalOptions, out io.Writer, errOut io.Writer) *cobra.Command {
	migrateOpts := &migrateOptions{}
	cmd := &cobra.Command{
		Use:   "migrate <source> <target>",
		Short: "Migrate physics attachments from source onto target",
		Long: `Migrate copies every physics record of the source tree onto the target tree
and saves the result as a scene document.

With --dry-run nothing is written and a unified diff of the target document
is printed instead.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, out, errOut)
			if err != nil {
				return err
			}
			return runMigrate(a, args[0], args[1], migrateOpts)
		},
	}
	cmd.Flags().StringVarP(&migrateOpts.outputPath, "output", "o", "", "output scene path (default <target>_<timestamp>/<target>.json)")
	cmd.Flags().BoolVar(&migrateOpts.dryRun, "dry-run", false, "print a diff of the target document instead of saving")
	cmd.Flags().BoolVar(&migrateOpts.preBuild, "prebuild", false, "create cloth pre-build data after migration")
	cmd.Flags().BoolVar(&migrateOpts.blendShapes, "blendshapes", false, "also migrate blend shape weights")
	cmd.Flags().StringVar(&migrateOpts.baseDir, "base-dir", "", "base directory for pre-build data (default output directory)")
	return cmd
}

// runMigrate は読み込み、移植、保存または差分表示を行う。
func runMigrate(a *app, sourcePath string, targetPath string, opts *migrateOptions) error {
	source, err := a.loadScene(sourcePath)
	if err != nil {
		return err
	}
	target, err := a.loadScene(targetPath)
	if err != nil {
		return err
	}
	outputPath, err := a.resolveOutput(targetPath, opts.outputPath, !opts.dryRun)
	if err != nil {
		return err
	}

	var before []byte
	if opts.dryRun {
		if before, err = a.repository.Encode(target, a.saveFormat(outputPath)); err != nil {
			return err
		}
	}

	migrationLog, err := a.usecase.MigrateScenes(source, target, migrateProgressLogger{})
	if err != nil {
		return err
	}
	a.presenter.RenderMigrationLog(migrationLog)

	if opts.blendShapes {
		result, err := a.usecase.MigrateBlendShapes(source, target)
		if err != nil {
			return err
		}
		a.presenter.RenderBlendShapes(result)
	}

	if opts.dryRun {
		after, err := a.repository.Encode(target, a.saveFormat(outputPath))
		if err != nil {
			return err
		}
		return printDocumentDiff(a, before, after, targetPath, outputPath)
	}

	if opts.preBuild {
		if err := runPreBuild(a, target, outputPath, opts.baseDir); err != nil {
			return err
		}
	}
	return a.saveScene(outputPath, target)
}

// printDocumentDiff は移植前後の文書差分を統一差分形式で出力する。
func printDocumentDiff(a *app, before []byte, after []byte, fromFile string, toFile string) error {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  diffContextLines,
	})
	if err != nil {
		return fmt.Errorf("差分の生成に失敗しました: %w", err)
	}
	if diff == "" {
		a.presenter.Println(messages.MessageDryRunNoChange)
		return nil
	}
	_, err = fmt.Fprint(a.out, diff)
	return err
}

// preBuildOptions は prebuild サブコマンドのフラグを保持する。
type preBuildOptions struct {
	outputPath string
	folder     string
	baseDir    string
}

func newPreBuildCommand(opts *globalOptions, out io.Writer, errOut io.Writer) *cobra.Command {
	preBuildOpts := &preBuildOptions{}
	cmd := &cobra.Command{
		Use:   "prebuild <scene>",
		Short: "Create pre-build data for every cloth in the scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, out, errOut)
			if err != nil {
				return err
			}
			if folder := strings.TrimSpace(preBuildOpts.folder); folder != "" {
				a.cfg.PreBuildFolder = folder
			}
			target, err := a.loadScene(args[0])
			if err != nil {
				return err
			}
			outputPath, err := a.resolveOutput(args[0], preBuildOpts.outputPath, true)
			if err != nil {
				return err
			}
			if err := runPreBuild(a, target, outputPath, preBuildOpts.baseDir); err != nil {
				return err
			}
			return a.saveScene(outputPath, target)
		},
	}
	cmd.Flags().StringVarP(&preBuildOpts.outputPath, "output", "o", "", "output scene path (default <scene>_<timestamp>/<scene>.json)")
	cmd.Flags().StringVar(&preBuildOpts.folder, "folder", "", "pre-build folder relative to base dir (default from config)")
	cmd.Flags().StringVar(&preBuildOpts.baseDir, "base-dir", "", "base directory for pre-build data (default output directory)")
	return cmd
}

// runPreBuild はクロスの事前構築データを作成する。基底フォルダ未指定時は保存先シーンの隣に作成する。
func runPreBuild(a *app, target *model.Scene, outputPath string, baseDir string) error {
	if strings.TrimSpace(baseDir) == "" {
		baseDir = filepath.Dir(outputPath)
	}
	result, err := a.usecase.CreatePreBuildData(minteractor.PreBuildRequest{
		Target:           target,
		Folder:           a.cfg.PreBuildFolder,
		Store:            prebuild.NewFileStore(baseDir),
		ProgressReporter: migrateProgressLogger{},
	})
	if err != nil {
		return err
	}
	a.presenter.RenderPreBuild(result)
	return nil
}

func newBlendShapeCommand(opts *globalOptions, out io.Writer, errOut io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blendshape",
		Short: "Migrate or reset blend shape weights",
	}

	var migrateOutput string
	migrateCmd := &cobra.Command{
		Use:   "migrate <source> <target>",
		Short: "Copy blend shape weights onto renderers of same-named nodes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, out, errOut)
			if err != nil {
				return err
			}
			source, err := a.loadScene(args[0])
			if err != nil {
				return err
			}
			target, err := a.loadScene(args[1])
			if err != nil {
				return err
			}
			outputPath, err := a.resolveOutput(args[1], migrateOutput, true)
			if err != nil {
				return err
			}
			result, err := a.usecase.MigrateBlendShapes(source, target)
			if err != nil {
				return err
			}
			a.presenter.RenderBlendShapes(result)
			return a.saveScene(outputPath, target)
		},
	}
	migrateCmd.Flags().StringVarP(&migrateOutput, "output", "o", "", "output scene path")

	var resetOutput string
	resetCmd := &cobra.Command{
		Use:   "reset <scene>",
		Short: "Zero every blend shape weight in the scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, out, errOut)
			if err != nil {
				return err
			}
			target, err := a.loadScene(args[0])
			if err != nil {
				return err
			}
			outputPath, err := a.resolveOutput(args[0], resetOutput, true)
			if err != nil {
				return err
			}
			a.presenter.Println(messages.ReportBlendShapeReset, a.usecase.ResetBlendShapes(target))
			return a.saveScene(outputPath, target)
		},
	}
	resetCmd.Flags().StringVarP(&resetOutput, "output", "o", "", "output scene path")

	cmd.AddCommand(migrateCmd, resetCmd)
	return cmd
}
