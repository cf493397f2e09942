// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
)

// transformMismatchTolerance は再利用ノードの位置差を通知する閾値。
const transformMismatchTolerance = 1e-4

// migrationKinds は移植する種別と処理順。参照される側を先に処理する。
var migrationKinds = []model.RecordKind{
	model.RecordKindCapsuleCollider,
	model.RecordKindSphereCollider,
	model.RecordKindPlaneCollider,
	model.RecordKindColliderGroup,
	model.RecordKindCloth,
	model.RecordKindSpringBone,
}

// MigrationKinds は移植対象種別を処理順で返す。
func MigrationKinds() []model.RecordKind {
	return append([]model.RecordKind(nil), migrationKinds...)
}

// MigrationPolicy は種別ごとの配置方針を表す。
type MigrationPolicy struct {
	// FlattenKinds は親子関係を無視して移植先ルート直下へ配置する種別。
	FlattenKinds []model.RecordKind
}

// DefaultMigrationPolicy はクロスのみルート直下へ配置する方針を返す。
func DefaultMigrationPolicy() MigrationPolicy {
	return MigrationPolicy{FlattenKinds: []model.RecordKind{model.RecordKindCloth}}
}

// flattens は種別がルート直下配置か判定する。
func (p MigrationPolicy) flattens(kind model.RecordKind) bool {
	for _, flattenKind := range p.FlattenKinds {
		if flattenKind == kind {
			return true
		}
	}
	return false
}

// MigrateRequest は移植要求を表す。
type MigrateRequest struct {
	Source *model.Node
	Target *model.Node
	// SourceRoles/TargetRoles が nil の場合はツリーのロール属性から構築する。
	SourceRoles model.RoleTable
	TargetRoles model.RoleTable
	// Policy が nil の場合は DefaultMigrationPolicy を使う。
	Policy *MigrationPolicy
	// Providers が nil の場合は DefaultProviders を使う。
	Providers        []IAttachmentProvider
	ProgressReporter IMigrateProgressReporter
}

// Migrate は移植元ツリーの物理レコードを移植先ツリーへ移植する。
// 入力検証に失敗した場合はツリーを一切変更せずにエラーを返す。
func Migrate(request MigrateRequest) (*MigrationLog, error) {
	if err := validateMigrationTrees(request.Source, request.Target); err != nil {
		return nil, err
	}
	reportMigrateProgress(request.ProgressReporter, MigrateProgressEvent{Type: MigrateProgressEventTypeInputValidated})

	sourceRoot := request.Source.Root()
	destRoot := request.Target.Root()
	sourceRoles := request.SourceRoles
	if sourceRoles == nil {
		sourceRoles = model.BuildRoleTable(sourceRoot)
	}
	destRoles := request.TargetRoles
	if destRoles == nil {
		destRoles = model.BuildRoleTable(destRoot)
	}
	policy := DefaultMigrationPolicy()
	if request.Policy != nil {
		policy = *request.Policy
	}
	providers := request.Providers
	if providers == nil {
		providers = DefaultProviders()
	}

	log := NewMigrationLog()
	mapping, unresolved := buildCorrespondence(sourceRoot, destRoot, sourceRoles, destRoles, log)
	log.Mapping = mapping
	log.Unresolved = unresolved
	reportMigrateProgress(request.ProgressReporter, MigrateProgressEvent{
		Type:        MigrateProgressEventTypeCorrespondenceBuilt,
		MappedCount: mapping.Len(),
	})

	migrator := newComponentMigrator(sourceRoot, destRoot, mapping, policy, log)
	enabled := providedKinds(providers)
	for _, kind := range migrationKinds {
		if !enabled[kind] {
			log.SkippedKinds = append(log.SkippedKinds, kind)
			log.AddInfo(model.MigrateInfoProviderMissing, nil, "", "%s を扱うプロバイダが無いため、移植をスキップします", kind)
			continue
		}
		migrator.migrateKind(kind)
		reportMigrateProgress(request.ProgressReporter, MigrateProgressEvent{
			Type:        MigrateProgressEventTypeKindMigrated,
			Kind:        kind,
			RecordCount: log.MigratedRecords[kind],
		})
	}
	migrator.finalizeCreatedNodes()

	logMigrateInfo("移植完了: 対応=%d 未対応=%d 生成=%d 警告=%d",
		mapping.Len(), len(log.Unresolved), len(log.CreatedNodes), len(log.Warnings))
	reportMigrateProgress(request.ProgressReporter, MigrateProgressEvent{
		Type:        MigrateProgressEventTypeCompleted,
		MappedCount: mapping.Len(),
	})
	return log, nil
}

// resolutionStatus は移植先ノード解決結果の種別を表す。
type resolutionStatus int

const (
	resolutionUnresolved resolutionStatus = iota
	resolutionReused
	resolutionCreated
)

// destinationResolution は移植先ノードの解決結果を表す。
type destinationResolution struct {
	Status resolutionStatus
	Node   *model.Node
}

// componentMigrator は種別ごとのレコード移植を行う。
type componentMigrator struct {
	sourceRoot *model.Node
	destRoot   *model.Node
	mapping    *CorrespondenceMap
	policy     MigrationPolicy
	log        *MigrationLog
	remapper   *ReferenceRemapper
}

// newComponentMigrator はレコード移植処理を生成する。
func newComponentMigrator(
	sourceRoot *model.Node,
	destRoot *model.Node,
	mapping *CorrespondenceMap,
	policy MigrationPolicy,
	log *MigrationLog,
) *componentMigrator {
	return &componentMigrator{
		sourceRoot: sourceRoot,
		destRoot:   destRoot,
		mapping:    mapping,
		policy:     policy,
		log:        log,
		remapper:   NewReferenceRemapper(mapping, destRoot, log),
	}
}

// migrateKind は指定種別のレコードを持つ移植元ノードを行きがけ順で処理する。
func (m *componentMigrator) migrateKind(kind model.RecordKind) {
	m.sourceRoot.Walk(func(source *model.Node) {
		if !source.HasRecord(kind) {
			return
		}
		m.migrateNode(kind, source)
	})
}

// migrateNode は移植元ノード1件分の指定種別レコードを移植する。
func (m *componentMigrator) migrateNode(kind model.RecordKind, source *model.Node) {
	resolution := m.resolveDestination(kind, source)
	switch resolution.Status {
	case resolutionCreated:
		for _, record := range resolution.Node.RecordsOf(kind) {
			m.remapper.Remap(record)
			m.log.MigratedRecords[kind]++
		}
	case resolutionReused:
		m.transferRecords(kind, source, resolution.Node)
	default:
		m.log.AddWarning(model.MigrateWarningAnchorUnresolved, source, "",
			"%s の配置先を解決できないため、移植をスキップします", kind)
	}
}

// resolveDestination は移植先ノードを再利用または生成する。
func (m *componentMigrator) resolveDestination(kind model.RecordKind, source *model.Node) destinationResolution {
	if dest, ok := m.mapping.Get(source); ok {
		return destinationResolution{Status: resolutionReused, Node: dest}
	}

	anchor := m.resolveAnchor(kind, source)
	if anchor == nil {
		return destinationResolution{Status: resolutionUnresolved}
	}

	if existing := anchor.FindChild(source.Name); existing != nil {
		m.mapping.Put(source, existing, MatchOriginReused)
		m.checkTransform(source, existing)
		return destinationResolution{Status: resolutionReused, Node: existing}
	}

	created, err := source.Duplicate()
	if err != nil {
		m.log.AddWarning(model.MigrateWarningRecordCopyFailed, source, "", "ノードの複製に失敗しました: %v", err)
		return destinationResolution{Status: resolutionUnresolved}
	}
	created.SetWorldTransform(source.WorldPosition(), source.WorldRotation(), source.LossyScale())
	created.SetParent(anchor, true)
	m.mapping.Put(source, created, MatchOriginCreated)
	m.log.CreatedNodes = append(m.log.CreatedNodes, created)
	m.log.AddInfo(model.MigrateInfoNodeCreated, created, "", "移植先にノードを生成しました: parent=%s", anchor.Name)
	return destinationResolution{Status: resolutionCreated, Node: created}
}

// resolveAnchor は生成ノードの親となる移植先ノードを返す。
func (m *componentMigrator) resolveAnchor(kind model.RecordKind, source *model.Node) *model.Node {
	if m.policy.flattens(kind) {
		return m.destRoot
	}
	for parent := source.Parent(); parent != nil; parent = parent.Parent() {
		if dest, ok := m.mapping.Get(parent); ok {
			return dest
		}
	}
	return nil
}

// checkTransform は再利用ノードの位置が移植元と異なる場合に通知する。変換は変更しない。
func (m *componentMigrator) checkTransform(source *model.Node, dest *model.Node) {
	sourcePosition := source.WorldPosition()
	destPosition := dest.WorldPosition()
	if sourcePosition.NearEquals(destPosition, transformMismatchTolerance) {
		return
	}
	m.log.AddInfo(model.MigrateInfoTransformMismatch, dest, "",
		"再利用ノードの位置が移植元と異なります: source=%s dest=%s", sourcePosition, destPosition)
}

// transferRecords は移植元の指定種別レコードを同順番の移植先レコードへ複写し、参照を付け替える。
func (m *componentMigrator) transferRecords(kind model.RecordKind, source *model.Node, dest *model.Node) {
	for ordinal, sourceRecord := range source.RecordsOf(kind) {
		destRecord, exists := dest.RecordOf(kind, ordinal)
		if !exists {
			cloned, err := model.CloneRecord(sourceRecord)
			if err != nil {
				m.log.AddWarning(model.MigrateWarningRecordCopyFailed, source, "", "%s の複製に失敗しました: %v", kind, err)
				continue
			}
			destRecord = dest.AddRecord(cloned)
		} else if err := model.CopyRecord(destRecord, sourceRecord); err != nil {
			m.log.AddWarning(model.MigrateWarningRecordCopyFailed, source, "", "%s の複写に失敗しました: %v", kind, err)
			continue
		}
		m.remapper.Remap(destRecord)
		m.log.MigratedRecords[kind]++
	}
}

// finalizeCreatedNodes は生成ノードに複製された全レコードの参照を付け替える。
// 移植対象外の種別も移植元ツリーを指したまま残さない。
func (m *componentMigrator) finalizeCreatedNodes() {
	for _, created := range m.log.CreatedNodes {
		for _, record := range created.Records() {
			m.remapper.Remap(record)
		}
	}
}
