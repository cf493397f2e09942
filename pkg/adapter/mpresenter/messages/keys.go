// 指示: miu200521358
// Package messages は表示に使うメッセージキーと翻訳カタログを提供する。
// キーは既定言語(日本語)の書式文字列そのもの。
package messages

// メッセージキー一覧。
const (
	ReportAnalysisTitle       = "解析結果"
	ReportSourceNodeCount     = "移植元ノード数: %d"
	ReportDestNodeCount       = "移植先ノード数: %d"
	ReportNameMatch           = "名前一致: %d/%d (%.1f%%)"
	ReportDuplicateNone       = "重複名: なし"
	ReportDuplicateHeader     = "重複名: %d件"
	ReportDuplicateMore       = "...ほか %d件"
	ReportRecordCountsHeader  = "レコード数"
	ReportRecordCount         = "%s: %d"
	ReportMigrationTitle      = "移植結果"
	ReportMappingCount        = "対応付け(%s): %d"
	ReportUnresolvedCount     = "未対応ノード: %d"
	ReportCreatedCount        = "補完ノード: %d"
	ReportMigratedRecords     = "移植レコード(%s): %d"
	ReportSkippedKind         = "プロバイダ未登録のため読み飛ばし: %s"
	ReportWarningsHeader      = "警告: %d件"
	ReportInfosHeader         = "通知: %d件"
	ReportPreBuildSummary     = "事前構築: %d/%d 件成功 (%s)"
	ReportPreBuildItemOK      = "成功: %s -> %s"
	ReportPreBuildItemNG      = "失敗: %s: %v"
	ReportBlendShapeSummary   = "ブレンドシェイプ反映: 描画 %d件 / シェイプ %d件"
	ReportBlendShapeReset     = "ブレンドシェイプ初期化: %d件"
	ReportValidationOK        = "検証成功: 重複名はありません"
	ReportValidationDuplicate = "検証失敗: 重複名 %d件"

	MessageLoadFailed     = "読み込み失敗: %s"
	MessageSaveFailed     = "保存失敗: %s"
	MessageSaved          = "保存しました: %s"
	MessageDryRunNoChange = "差分はありません"
	MessageBatchSummary   = "一括移植: %d/%d 件成功"
)

// AllKeys は全メッセージキーを返す。
func AllKeys() []string {
	return []string{
		ReportAnalysisTitle,
		ReportSourceNodeCount,
		ReportDestNodeCount,
		ReportNameMatch,
		ReportDuplicateNone,
		ReportDuplicateHeader,
		ReportDuplicateMore,
		ReportRecordCountsHeader,
		ReportRecordCount,
		ReportMigrationTitle,
		ReportMappingCount,
		ReportUnresolvedCount,
		ReportCreatedCount,
		ReportMigratedRecords,
		ReportSkippedKind,
		ReportWarningsHeader,
		ReportInfosHeader,
		ReportPreBuildSummary,
		ReportPreBuildItemOK,
		ReportPreBuildItemNG,
		ReportBlendShapeSummary,
		ReportBlendShapeReset,
		ReportValidationOK,
		ReportValidationDuplicate,
		MessageLoadFailed,
		MessageSaveFailed,
		MessageSaved,
		MessageDryRunNoChange,
		MessageBatchSummary,
	}
}
