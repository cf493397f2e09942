// 指示: miu200521358
// Package mpresenter は解析・移植結果の表示文字列を組み立てる。
package mpresenter

import (
	"fmt"
	"io"
	"sort"

	"golang.org/x/text/message"

	"github.com/miu200521358/mu_physmigrate/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/merrors"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
	"github.com/miu200521358/mu_physmigrate/pkg/usecase/minteractor"
)

// ReportPresenter は結果を指定言語で書き出す。
type ReportPresenter struct {
	out     io.Writer
	printer *message.Printer
}

// NewReportPresenter はReportPresenterを生成する。
func NewReportPresenter(out io.Writer, locale string) (*ReportPresenter, error) {
	printer, err := messages.NewPrinter(locale)
	if err != nil {
		return nil, err
	}
	return &ReportPresenter{out: out, printer: printer}, nil
}

// Sprintf はメッセージキーを翻訳して整形する。
func (p *ReportPresenter) Sprintf(key string, params ...any) string {
	return p.printer.Sprintf(key, params...)
}

// Println はメッセージキーを翻訳して1行出力する。
func (p *ReportPresenter) Println(key string, params ...any) {
	fmt.Fprintln(p.out, p.printer.Sprintf(key, params...))
}

func (p *ReportPresenter) indented(key string, params ...any) {
	fmt.Fprintln(p.out, "  "+p.printer.Sprintf(key, params...))
}

// RenderAnalysis は診断結果を出力する。重複名は DuplicateDisplayLimit 件まで列挙する。
func (p *ReportPresenter) RenderAnalysis(report *minteractor.AnalysisReport) {
	if report == nil {
		return
	}
	p.Println(messages.ReportAnalysisTitle)
	p.indented(messages.ReportSourceNodeCount, report.SourceNodeCount)
	p.indented(messages.ReportDestNodeCount, report.DestNodeCount)
	p.indented(messages.ReportNameMatch, report.NameMatchCount, report.SourceNodeCount, report.NameMatchRate()*100)

	if !report.HasDuplicates() {
		p.indented(messages.ReportDuplicateNone)
	} else {
		p.indented(messages.ReportDuplicateHeader, len(report.DuplicateNames))
		shown, rest := report.DuplicateNamesForDisplay(minteractor.DuplicateDisplayLimit)
		for _, name := range shown {
			fmt.Fprintln(p.out, "    - "+name)
		}
		if rest > 0 {
			fmt.Fprintln(p.out, "    "+p.printer.Sprintf(messages.ReportDuplicateMore, rest))
		}
	}

	p.indented(messages.ReportRecordCountsHeader)
	for _, kind := range model.AllRecordKinds() {
		fmt.Fprintln(p.out, "    "+p.printer.Sprintf(messages.ReportRecordCount, string(kind), report.RecordCounts[kind]))
	}
}

// RenderMigrationLog は移植結果を出力する。
func (p *ReportPresenter) RenderMigrationLog(log *minteractor.MigrationLog) {
	if log == nil {
		return
	}
	p.Println(messages.ReportMigrationTitle)
	if log.Mapping != nil {
		counts := log.Mapping.CountByOrigin()
		for _, origin := range []minteractor.MatchOrigin{
			minteractor.MatchOriginRoot,
			minteractor.MatchOriginRole,
			minteractor.MatchOriginName,
			minteractor.MatchOriginReused,
			minteractor.MatchOriginCreated,
		} {
			p.indented(messages.ReportMappingCount, string(origin), counts[origin])
		}
	}
	p.indented(messages.ReportUnresolvedCount, len(log.Unresolved))
	p.indented(messages.ReportCreatedCount, len(log.CreatedNodes))

	kinds := make([]string, 0, len(log.MigratedRecords))
	for kind := range log.MigratedRecords {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		p.indented(messages.ReportMigratedRecords, kind, log.MigratedRecords[model.RecordKind(kind)])
	}
	for _, kind := range log.SkippedKinds {
		p.indented(messages.ReportSkippedKind, string(kind))
	}

	p.indented(messages.ReportWarningsHeader, len(log.Warnings))
	for _, entry := range log.Warnings {
		fmt.Fprintln(p.out, "    - "+entry.String())
	}
	p.indented(messages.ReportInfosHeader, len(log.Infos))
	for _, entry := range log.Infos {
		fmt.Fprintln(p.out, "    - "+entry.String())
	}
}

// RenderPreBuild は事前構築結果を出力する。
func (p *ReportPresenter) RenderPreBuild(result *minteractor.PreBuildResult) {
	if result == nil {
		return
	}
	p.Println(messages.ReportPreBuildSummary, result.SuccessCount(), result.Total(), result.Folder)
	for _, item := range result.Items {
		if item.Succeeded() {
			p.indented(messages.ReportPreBuildItemOK, item.NodeName, item.AssetPath)
			continue
		}
		p.indented(messages.ReportPreBuildItemNG, item.NodeName, item.Err)
	}
}

// RenderBlendShapes はブレンドシェイプ移植結果を出力する。
func (p *ReportPresenter) RenderBlendShapes(result *minteractor.BlendShapeMigrationResult) {
	if result == nil {
		return
	}
	p.Println(messages.ReportBlendShapeSummary, result.UpdatedRenderers, result.UpdatedShapes)
}

// RenderValidation は検証結果を出力する。重複名以外のエラーはそのまま返す。
func (p *ReportPresenter) RenderValidation(err error) error {
	if err == nil {
		p.Println(messages.ReportValidationOK)
		return nil
	}
	names, ok := merrors.DuplicateNames(err)
	if !ok {
		return err
	}
	p.Println(messages.ReportValidationDuplicate, len(names))
	report := &minteractor.AnalysisReport{DuplicateNames: names}
	shown, rest := report.DuplicateNamesForDisplay(minteractor.DuplicateDisplayLimit)
	for _, name := range shown {
		fmt.Fprintln(p.out, "  - "+name)
	}
	if rest > 0 {
		p.indented(messages.ReportDuplicateMore, rest)
	}
	return err
}
