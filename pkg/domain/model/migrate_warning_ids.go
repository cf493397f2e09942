// 指示: miu200521358
package model

const (
	// MigrateWarningReferenceUnresolved は単一ノード参照の解決失敗警告。
	MigrateWarningReferenceUnresolved = "MigrateWarningReferenceUnresolved"
	// MigrateWarningListElementDropped はノード参照リスト要素の除去警告。
	MigrateWarningListElementDropped = "MigrateWarningListElementDropped"
	// MigrateWarningRecordReferenceDropped はレコード参照リスト要素の除去警告。
	MigrateWarningRecordReferenceDropped = "MigrateWarningRecordReferenceDropped"
	// MigrateWarningRecordKindMissing は対応先ノードに期待種別のレコードが無い警告。
	MigrateWarningRecordKindMissing = "MigrateWarningRecordKindMissing"
	// MigrateWarningRecordKindMismatch はレコード参照リスト要素が宣言種別と異なる警告。
	MigrateWarningRecordKindMismatch = "MigrateWarningRecordKindMismatch"
	// MigrateWarningAnchorUnresolved はアンカー解決失敗警告。
	MigrateWarningAnchorUnresolved = "MigrateWarningAnchorUnresolved"
	// MigrateWarningRecordCopyFailed はレコード複写失敗警告。
	MigrateWarningRecordCopyFailed = "MigrateWarningRecordCopyFailed"

	// MigrateInfoTransformMismatch は再利用ノードの変換が移植元と異なる通知。
	MigrateInfoTransformMismatch = "MigrateInfoTransformMismatch"
	// MigrateInfoProviderMissing はプロバイダ未登録で種別を読み飛ばした通知。
	MigrateInfoProviderMissing = "MigrateInfoProviderMissing"
	// MigrateInfoRoleMappingSkipped は人型ロール対応を読み飛ばした通知。
	MigrateInfoRoleMappingSkipped = "MigrateInfoRoleMappingSkipped"
	// MigrateInfoNodeCreated は補完ノード生成通知。
	MigrateInfoNodeCreated = "MigrateInfoNodeCreated"
)
