// 指示: miu200521358
package minteractor

import "github.com/miu200521358/mu_physmigrate/pkg/domain/model"

// ReferenceRemapper はレコードの参照フィールドを対応表に従って移植先へ付け替える。
type ReferenceRemapper struct {
	mapping  *CorrespondenceMap
	destRoot *model.Node
	log      *MigrationLog
}

// NewReferenceRemapper は付け替え処理を生成する。
// destRoot 配下を既に指している参照はそのまま残す。
func NewReferenceRemapper(mapping *CorrespondenceMap, destRoot *model.Node, log *MigrationLog) *ReferenceRemapper {
	if log == nil {
		log = NewMigrationLog()
	}
	return &ReferenceRemapper{mapping: mapping, destRoot: destRoot, log: log}
}

// Remap はレコードの全参照フィールドを付け替える。
func (r *ReferenceRemapper) Remap(record model.IRecord) {
	if record == nil {
		return
	}
	for _, field := range record.ReferenceFields() {
		switch field.Category {
		case model.ReferenceCategoryNode:
			r.remapNode(record, field)
		case model.ReferenceCategoryNodeList:
			r.remapNodeList(record, field)
		case model.ReferenceCategoryRecordList:
			r.remapRecordList(record, field)
		}
	}
}

// remapNode は単一ノード参照を付け替える。対応が無い場合は nil にする。
func (r *ReferenceRemapper) remapNode(record model.IRecord, field model.ReferenceField) {
	current := field.Node()
	if current == nil {
		return
	}
	mapped, ok := r.resolveNode(current)
	if !ok {
		r.log.AddWarning(model.MigrateWarningReferenceUnresolved, record.Owner(), field.Name,
			"%s の参照先 '%s' を移植先で解決できないため、未設定にします", record.Kind(), current.Name)
		field.SetNode(nil)
		return
	}
	field.SetNode(mapped)
}

// remapNodeList はノード参照リストを付け替える。対応が無い要素は順序を保ったまま除去する。
func (r *ReferenceRemapper) remapNodeList(record model.IRecord, field model.ReferenceField) {
	current := field.Nodes()
	remapped := make([]*model.Node, 0, len(current))
	for _, node := range current {
		if node == nil {
			continue
		}
		mapped, ok := r.resolveNode(node)
		if !ok {
			r.log.AddWarning(model.MigrateWarningListElementDropped, record.Owner(), field.Name,
				"%s の参照先 '%s' を移植先で解決できないため、リストから除外します", record.Kind(), node.Name)
			continue
		}
		remapped = append(remapped, mapped)
	}
	field.SetNodes(remapped)
}

// remapRecordList はレコード参照リストを付け替える。
// 参照先レコードの付与先ノードを対応付け、同種別・同順番のレコードへ差し替える。
func (r *ReferenceRemapper) remapRecordList(record model.IRecord, field model.ReferenceField) {
	current := field.Records()
	remapped := make([]model.IRecord, 0, len(current))
	for _, target := range current {
		if target == nil {
			continue
		}
		mapped, ok := r.resolveRecord(record, field, target)
		if !ok {
			continue
		}
		remapped = append(remapped, mapped)
	}
	field.SetRecords(remapped)
}

// resolveRecord はレコード参照1件を移植先レコードへ解決する。
func (r *ReferenceRemapper) resolveRecord(record model.IRecord, field model.ReferenceField, target model.IRecord) (model.IRecord, bool) {
	if field.RecordKind != "" && target.Kind() != field.RecordKind {
		r.log.AddWarning(model.MigrateWarningRecordKindMismatch, record.Owner(), field.Name,
			"%s の参照先 %s は期待種別 %s と異なるため、リストから除外します", record.Kind(), target.Kind(), field.RecordKind)
		return nil, false
	}
	owner := target.Owner()
	if owner == nil {
		r.log.AddWarning(model.MigrateWarningRecordReferenceDropped, record.Owner(), field.Name,
			"%s の参照先 %s が付与先を持たないため、リストから除外します", record.Kind(), target.Kind())
		return nil, false
	}
	if r.isDestNode(owner) {
		return target, true
	}
	mappedOwner, ok := r.mapping.Get(owner)
	if !ok {
		r.log.AddWarning(model.MigrateWarningRecordReferenceDropped, record.Owner(), field.Name,
			"%s の参照先 '%s' (%s) を移植先で解決できないため、リストから除外します", record.Kind(), owner.Name, target.Kind())
		return nil, false
	}
	kind := target.Kind()
	if field.RecordKind != "" {
		kind = field.RecordKind
	}
	mapped, ok := mappedOwner.RecordOf(kind, model.RecordOrdinal(target))
	if !ok {
		r.log.AddWarning(model.MigrateWarningRecordKindMissing, record.Owner(), field.Name,
			"移植先 '%s' に %s がないため、リストから除外します", mappedOwner.Name, kind)
		return nil, false
	}
	return mapped, true
}

// resolveNode は移植先ノードを返す。移植先ツリー内のノードはそのまま返す。
func (r *ReferenceRemapper) resolveNode(node *model.Node) (*model.Node, bool) {
	if r.isDestNode(node) {
		return node, true
	}
	return r.mapping.Get(node)
}

// isDestNode は移植先ツリーに属するノードか判定する。
func (r *ReferenceRemapper) isDestNode(node *model.Node) bool {
	return r.destRoot != nil && node.Root() == r.destRoot
}
