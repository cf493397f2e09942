// 指示: miu200521358
package minteractor

import "github.com/miu200521358/mu_physmigrate/pkg/domain/model"

// MigrateProgressEventType は移植処理の進捗イベント種別を表す。
type MigrateProgressEventType string

const (
	// MigrateProgressEventTypeInputValidated は入力検証完了イベントを表す。
	MigrateProgressEventTypeInputValidated MigrateProgressEventType = "input_validated"
	// MigrateProgressEventTypeCorrespondenceBuilt はノード対応表構築完了イベントを表す。
	MigrateProgressEventTypeCorrespondenceBuilt MigrateProgressEventType = "correspondence_built"
	// MigrateProgressEventTypeKindMigrated は種別単位の移植完了イベントを表す。
	MigrateProgressEventTypeKindMigrated MigrateProgressEventType = "kind_migrated"
	// MigrateProgressEventTypeCompleted は移植完了イベントを表す。
	MigrateProgressEventTypeCompleted MigrateProgressEventType = "completed"
	// MigrateProgressEventTypePreBuildItem は事前構築1件の処理完了イベントを表す。
	MigrateProgressEventTypePreBuildItem MigrateProgressEventType = "prebuild_item"
)

// MigrateProgressEvent は移植処理の進捗イベントを表す。
type MigrateProgressEvent struct {
	Type        MigrateProgressEventType
	Kind        model.RecordKind
	MappedCount int
	RecordCount int
}

// IMigrateProgressReporter は移植処理の進捗通知契約を表す。
type IMigrateProgressReporter interface {
	// ReportMigrateProgress は移植処理進捗を通知する。
	ReportMigrateProgress(event MigrateProgressEvent)
}

// reportMigrateProgress は通知先が設定されている場合のみ進捗を通知する。
func reportMigrateProgress(reporter IMigrateProgressReporter, event MigrateProgressEvent) {
	if reporter == nil {
		return
	}
	reporter.ReportMigrateProgress(event)
}
