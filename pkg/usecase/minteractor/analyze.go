// 指示: miu200521358
package minteractor

import "github.com/miu200521358/mu_physmigrate/pkg/domain/model"

// DuplicateDisplayLimit は重複名を列挙表示する上限件数。
const DuplicateDisplayLimit = 10

// AnalysisReport は移植前の診断結果を表す。
type AnalysisReport struct {
	SourceNodeCount int
	DestNodeCount   int
	// NameMatchCount は移植先のどこかに同名ノードがある移植元ノード数。
	NameMatchCount int
	// DuplicateNames は移植元の重複名(昇順)。
	DuplicateNames []string
	// RecordCounts は移植元の種別ごとのレコード数。
	RecordCounts map[model.RecordKind]int
}

// NameMatchRate は名前一致率(0-1)を返す。移植元が空の場合は0。
func (r *AnalysisReport) NameMatchRate() float64 {
	if r == nil || r.SourceNodeCount == 0 {
		return 0
	}
	return float64(r.NameMatchCount) / float64(r.SourceNodeCount)
}

// HasDuplicates は移植元に重複名があるか判定する。
func (r *AnalysisReport) HasDuplicates() bool {
	return r != nil && len(r.DuplicateNames) > 0
}

// DuplicateNamesForDisplay は表示上限までの重複名と、表示しきれない残件数を返す。
func (r *AnalysisReport) DuplicateNamesForDisplay(limit int) ([]string, int) {
	if r == nil {
		return nil, 0
	}
	if limit <= 0 || len(r.DuplicateNames) <= limit {
		return r.DuplicateNames, 0
	}
	return r.DuplicateNames[:limit], len(r.DuplicateNames) - limit
}

// Analyze は移植元と移植先を変更せずに診断する。
func Analyze(sourceRoot *model.Node, destRoot *model.Node) *AnalysisReport {
	report := &AnalysisReport{
		DuplicateNames: []string{},
		RecordCounts:   map[model.RecordKind]int{},
	}
	for _, kind := range model.AllRecordKinds() {
		report.RecordCounts[kind] = 0
	}
	if sourceRoot == nil {
		return report
	}

	destNames := map[string]struct{}{}
	destRoot.Walk(func(node *model.Node) {
		report.DestNodeCount++
		destNames[node.Name] = struct{}{}
	})

	sourceRoot.Walk(func(node *model.Node) {
		report.SourceNodeCount++
		if _, ok := destNames[node.Name]; ok {
			report.NameMatchCount++
		}
		for _, record := range node.Records() {
			report.RecordCounts[record.Kind()]++
		}
	})
	report.DuplicateNames = collectDuplicateNames(sourceRoot)

	logMigrateDebug("解析完了: source=%d dest=%d match=%d duplicates=%d",
		report.SourceNodeCount, report.DestNodeCount, report.NameMatchCount, len(report.DuplicateNames))
	return report
}
