// 指示: miu200521358
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/miu200521358/mu_physmigrate/pkg/adapter/io_model"
	"github.com/miu200521358/mu_physmigrate/pkg/adapter/mpresenter"
	"github.com/miu200521358/mu_physmigrate/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_physmigrate/pkg/infra/base/mlogging"
	"github.com/miu200521358/mu_physmigrate/pkg/shared/base/logging"
	"github.com/miu200521358/mu_physmigrate/pkg/usecase/minteractor"
	"github.com/miu200521358/mu_physmigrate/pkg/usecase/port/moutput"
)

const (
	batchOutputDirMode = 0o755

	statusSucceeded      = "succeeded"
	statusDryRun         = "dry_run"
	statusSkippedMissing = "skipped_missing"
	statusFailed         = "failed"
)

// batchConfig はバッチ移植の実行設定を表す。
type batchConfig struct {
	ListPath   string
	OutputRoot string
	DryRun     bool
	FailFast   bool
	Locale     string
}

// pairList はバッチ対象一覧ファイルを表す。
type pairList struct {
	Pairs []pairDocument `yaml:"pairs"`
}

// pairDocument は移植元と移植先の組を表す。
type pairDocument struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// migrationEntry は1組分の移植入力情報を表す。
type migrationEntry struct {
	Index      int
	SourcePath string
	TargetPath string
	ModelName  string
	CaseDir    string
	OutputPath string
}

// migrationResult は1組分の移植結果を表す。
type migrationResult struct {
	Entry         migrationEntry
	Status        string
	Duration      time.Duration
	Err           error
	ProgressInfo  string
	WarningCount  int
	MigratedCount int
}

// migrateProgressCollector は移植処理の進捗イベントを収集する。
type migrateProgressCollector struct {
	eventCounts map[minteractor.MigrateProgressEventType]int
	mappedMax   int
	recordTotal int
}

// main は一覧ファイルに従って物理移植を一括実行する。
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run は実行設定を解決して一括移植を実行し、終了コードを返す。
func run(args []string, out io.Writer, errOut io.Writer) int {
	exitCode := 0
	rootCmd := &cobra.Command{
		Use:           "batch <pairs.yaml>",
		Short:         "Migrate physics attachments for every pair in a list",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config := batchConfig{}
	rootCmd.Flags().StringVar(&config.OutputRoot, "output-root", "", "移植結果の出力ルートディレクトリ")
	rootCmd.Flags().BoolVar(&config.DryRun, "dry-run", false, "保存せず、移植結果の集計のみ表示する")
	rootCmd.Flags().BoolVar(&config.FailFast, "fail-fast", false, "失敗時に即時終了する")
	rootCmd.Flags().StringVar(&config.Locale, "locale", "ja", "集計の表示言語")
	rootCmd.RunE = func(cmd *cobra.Command, positional []string) error {
		config.ListPath = positional[0]
		resolved, err := resolveBatchConfig(config)
		if err != nil {
			exitCode = 2
			return err
		}
		exitCode, err = runBatch(resolved, out, errOut)
		return err
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(errOut, "一括移植に失敗しました: %v\n", err)
		if exitCode == 0 {
			exitCode = 2
		}
	}
	return exitCode
}

// resolveBatchConfig は出力ルートの既定値を補う。
func resolveBatchConfig(config batchConfig) (batchConfig, error) {
	outputRoot := strings.TrimSpace(config.OutputRoot)
	if outputRoot == "" {
		defaultOutputRoot, err := resolveDefaultOutputRoot()
		if err != nil {
			return batchConfig{}, err
		}
		outputRoot = defaultOutputRoot
	}
	config.OutputRoot = filepath.Clean(outputRoot)
	return config, nil
}

// resolveDefaultOutputRoot はスクリプト配置ディレクトリ基準の既定出力先を返す。
func resolveDefaultOutputRoot() (string, error) {
	_, currentFilePath, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("実行ファイル位置を取得できません")
	}
	return filepath.Join(filepath.Dir(currentFilePath), "output"), nil
}

// runBatch は一覧を読み込み、全組を移植して集計を表示する。
func runBatch(config batchConfig, out io.Writer, errOut io.Writer) (int, error) {
	pairs, err := loadPairList(config.ListPath)
	if err != nil {
		return 2, err
	}
	entries := buildMigrationEntries(config.OutputRoot, pairs)
	if len(entries) == 0 {
		return 2, errors.New("移植対象がありません")
	}
	presenter, err := mpresenter.NewReportPresenter(out, config.Locale)
	if err != nil {
		return 2, err
	}
	logger := mlogging.NewLogger(errOut)
	logger.SetLevel(logging.LOG_LEVEL_WARN)
	logging.SetDefaultLogger(logger)

	results := executeBatchMigration(config, entries, out)
	printBatchSummary(out, presenter, results)

	for _, result := range results {
		if result.Status == statusFailed {
			return 1, nil
		}
	}
	return 0, nil
}

// loadPairList はYAMLの対象一覧を読み込む。
func loadPairList(path string) ([]pairDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("対象一覧の読み込みに失敗しました: %w", err)
	}
	list := pairList{}
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("対象一覧の解析に失敗しました: %w", err)
	}
	baseDir := filepath.Dir(path)
	pairs := make([]pairDocument, 0, len(list.Pairs))
	for _, pair := range list.Pairs {
		pairs = append(pairs, pairDocument{
			Source: resolveListedPath(baseDir, pair.Source),
			Target: resolveListedPath(baseDir, pair.Target),
		})
	}
	return pairs, nil
}

// resolveListedPath は一覧ファイル基準で相対パスを解決する。
func resolveListedPath(baseDir string, path string) string {
	normalized := normalizeInputPath(path)
	if normalized == "" || filepath.IsAbs(normalized) {
		return normalized
	}
	return filepath.Join(baseDir, normalized)
}

// buildMigrationEntries は対象一覧から移植エントリを生成する。
func buildMigrationEntries(outputRoot string, pairs []pairDocument) []migrationEntry {
	entries := make([]migrationEntry, 0, len(pairs))
	for i, pair := range pairs {
		modelName := resolveModelName(pair.Target)
		safeModelName := sanitizePathComponent(modelName)
		caseDir := filepath.Join(outputRoot, fmt.Sprintf("%03d_%s", i+1, safeModelName))
		entries = append(entries, migrationEntry{
			Index:      i + 1,
			SourcePath: pair.Source,
			TargetPath: pair.Target,
			ModelName:  modelName,
			CaseDir:    caseDir,
			OutputPath: filepath.Join(caseDir, safeModelName+".json"),
		})
	}
	return entries
}

// executeBatchMigration は全組の移植処理を順次実行する。
func executeBatchMigration(config batchConfig, entries []migrationEntry, out io.Writer) []migrationResult {
	results := make([]migrationResult, 0, len(entries))
	repository := io_model.NewModelRepository()
	usecase := minteractor.NewPhysMigrateUsecase(minteractor.PhysMigrateUsecaseDeps{
		SceneReader: repository,
		SceneWriter: repository,
	})

	total := len(entries)
	for _, entry := range entries {
		fmt.Fprintf(out, "[%d/%d] 移植開始: model=%s\n", entry.Index, total, entry.ModelName)
		result := migrateEntry(usecase, config, entry)
		results = append(results, result)
		switch result.Status {
		case statusSucceeded:
			fmt.Fprintf(out, "[%d/%d] 移植成功: model=%s output=%s records=%d warnings=%d elapsed=%s\n",
				entry.Index, total, entry.ModelName, entry.OutputPath, result.MigratedCount, result.WarningCount, result.Duration.Round(time.Millisecond))
			if strings.TrimSpace(result.ProgressInfo) != "" {
				fmt.Fprintf(out, "[%d/%d] 移植進捗: %s\n", entry.Index, total, result.ProgressInfo)
			}
		case statusDryRun:
			fmt.Fprintf(out, "[%d/%d] DRY-RUN: model=%s records=%d warnings=%d output=%s\n",
				entry.Index, total, entry.ModelName, result.MigratedCount, result.WarningCount, entry.OutputPath)
		case statusSkippedMissing:
			fmt.Fprintf(out, "[%d/%d] 入力不足でスキップ: model=%s reason=%v\n", entry.Index, total, entry.ModelName, result.Err)
		default:
			fmt.Fprintf(out, "[%d/%d] 移植失敗: model=%s reason=%v\n", entry.Index, total, entry.ModelName, result.Err)
			if config.FailFast {
				return results
			}
		}
	}
	return results
}

// migrateEntry は1組分の移植を実行する。dry-run の場合は保存しない。
func migrateEntry(usecase *minteractor.PhysMigrateUsecase, config batchConfig, entry migrationEntry) migrationResult {
	result := migrationResult{
		Entry:  entry,
		Status: statusFailed,
	}
	for _, path := range []string{entry.SourcePath, entry.TargetPath} {
		if _, err := os.Stat(path); err != nil {
			result.Status = statusSkippedMissing
			result.Err = err
			return result
		}
	}

	startedAt := time.Now()
	source, err := usecase.LoadScene(nil, entry.SourcePath)
	if err != nil {
		result.Err = fmt.Errorf("移植元の読み込みに失敗しました: %w", err)
		return result
	}
	target, err := usecase.LoadScene(nil, entry.TargetPath)
	if err != nil {
		result.Err = fmt.Errorf("移植先の読み込みに失敗しました: %w", err)
		return result
	}
	collector := newMigrateProgressCollector()
	migrationLog, err := usecase.MigrateScenes(source, target, collector)
	if err != nil {
		result.Err = fmt.Errorf("移植に失敗しました: %w", err)
		return result
	}
	result.WarningCount = len(migrationLog.Warnings)
	for _, count := range migrationLog.MigratedRecords {
		result.MigratedCount += count
	}
	result.ProgressInfo = collector.Summary()
	if config.DryRun {
		result.Status = statusDryRun
		result.Duration = time.Since(startedAt)
		return result
	}

	if err := os.MkdirAll(entry.CaseDir, batchOutputDirMode); err != nil {
		result.Err = fmt.Errorf("出力ディレクトリ作成に失敗しました: %w", err)
		return result
	}
	if err := usecase.SaveScene(nil, entry.OutputPath, target, moutput.SaveOptions{}); err != nil {
		result.Err = fmt.Errorf("保存に失敗しました: %w", err)
		return result
	}
	result.Status = statusSucceeded
	result.Duration = time.Since(startedAt)
	return result
}

// printBatchSummary は移植結果の集計を表示する。
func printBatchSummary(out io.Writer, presenter *mpresenter.ReportPresenter, results []migrationResult) {
	counts := map[string]int{}
	for _, result := range results {
		counts[result.Status]++
	}
	fmt.Fprintf(
		out,
		"バッチ移植サマリ: total=%d succeeded=%d failed=%d skipped_missing=%d dry_run=%d\n",
		len(results),
		counts[statusSucceeded],
		counts[statusFailed],
		counts[statusSkippedMissing],
		counts[statusDryRun],
	)
	presenter.Println(messages.MessageBatchSummary, counts[statusSucceeded]+counts[statusDryRun], len(results))
}

// resolveModelName は入力パスから拡張子を除いたモデル名を返す。
func resolveModelName(path string) string {
	base := strings.TrimSpace(filepath.Base(path))
	name := strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
	if name == "" || name == "." {
		return "model"
	}
	return name
}

// normalizeInputPath は入力パスを実行環境向けに正規化する。
func normalizeInputPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	return filepath.Clean(convertWindowsPathToWsl(trimmed))
}

// convertWindowsPathToWsl は Linux 実行時に Windows パスを WSL パスへ変換する。
func convertWindowsPathToWsl(path string) string {
	if runtime.GOOS != "linux" {
		return path
	}
	if len(path) < 2 || path[1] != ':' {
		return path
	}
	drive := strings.ToLower(path[:1])
	rest := strings.ReplaceAll(path[2:], "\\", "/")
	if rest == "" {
		return filepath.ToSlash(filepath.Join("/mnt", drive))
	}
	if !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	return filepath.ToSlash(filepath.Join("/mnt", drive) + rest)
}

// sanitizePathComponent は出力ディレクトリ/ファイル名に使えない文字を置換する。
func sanitizePathComponent(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "model"
	}
	replaced := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		default:
			if r < 0x20 {
				return '_'
			}
			return r
		}
	}, trimmed)
	replaced = strings.Trim(replaced, " .")
	if replaced == "" {
		return "model"
	}
	return replaced
}

// newMigrateProgressCollector は移植進捗収集器を生成する。
func newMigrateProgressCollector() *migrateProgressCollector {
	return &migrateProgressCollector{
		eventCounts: map[minteractor.MigrateProgressEventType]int{},
	}
}

// ReportMigrateProgress は移植進捗イベントを収集する。
func (collector *migrateProgressCollector) ReportMigrateProgress(event minteractor.MigrateProgressEvent) {
	if collector == nil {
		return
	}
	if collector.eventCounts == nil {
		collector.eventCounts = map[minteractor.MigrateProgressEventType]int{}
	}
	collector.eventCounts[event.Type]++
	if event.MappedCount > collector.mappedMax {
		collector.mappedMax = event.MappedCount
	}
	collector.recordTotal += event.RecordCount
}

// Summary は収集した進捗の要約文字列を返す。
func (collector *migrateProgressCollector) Summary() string {
	if collector == nil || len(collector.eventCounts) == 0 {
		return ""
	}
	types := make([]string, 0, len(collector.eventCounts))
	for eventType := range collector.eventCounts {
		types = append(types, string(eventType))
	}
	sort.Strings(types)
	return fmt.Sprintf(
		"events=%d mapped=%d records=%d stages=%s",
		len(collector.eventCounts),
		collector.mappedMax,
		collector.recordTotal,
		strings.Join(types, ","),
	)
}
