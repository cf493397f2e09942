// 指示: miu200521358
package minteractor

import "github.com/miu200521358/mu_physmigrate/pkg/domain/model"

// MatchOrigin は対応付けの根拠を表す。
type MatchOrigin string

const (
	// MatchOriginRoot はルート同士の対応。
	MatchOriginRoot MatchOrigin = "root"
	// MatchOriginRole は人型ロール一致による対応。
	MatchOriginRole MatchOrigin = "role"
	// MatchOriginName は名前一致による対応。
	MatchOriginName MatchOrigin = "name"
	// MatchOriginReused はアンカー直下の同名ノード再利用による対応。
	MatchOriginReused MatchOrigin = "reused"
	// MatchOriginCreated は補完ノード生成による対応。
	MatchOriginCreated MatchOrigin = "created"
)

// correspondenceEntry は対応表の1件を表す。
type correspondenceEntry struct {
	dest   *model.Node
	origin MatchOrigin
}

// CorrespondenceMap は移植元ノードから移植先ノードへの対応表を表す。
// 一度登録した対応は上書きされない。
type CorrespondenceMap struct {
	entries map[*model.Node]correspondenceEntry
	order   []*model.Node
}

// NewCorrespondenceMap は空の対応表を生成する。
func NewCorrespondenceMap() *CorrespondenceMap {
	return &CorrespondenceMap{entries: map[*model.Node]correspondenceEntry{}}
}

// Put は未登録の場合のみ対応を登録する。登録した場合 true を返す。
func (m *CorrespondenceMap) Put(source *model.Node, dest *model.Node, origin MatchOrigin) bool {
	if source == nil || dest == nil {
		return false
	}
	if _, exists := m.entries[source]; exists {
		return false
	}
	m.entries[source] = correspondenceEntry{dest: dest, origin: origin}
	m.order = append(m.order, source)
	return true
}

// Get は対応先ノードを返す。
func (m *CorrespondenceMap) Get(source *model.Node) (*model.Node, bool) {
	if m == nil {
		return nil, false
	}
	entry, ok := m.entries[source]
	return entry.dest, ok
}

// Origin は対応付けの根拠を返す。
func (m *CorrespondenceMap) Origin(source *model.Node) (MatchOrigin, bool) {
	entry, ok := m.entries[source]
	return entry.origin, ok
}

// Has は対応が登録済みか判定する。
func (m *CorrespondenceMap) Has(source *model.Node) bool {
	_, ok := m.entries[source]
	return ok
}

// Len は登録件数を返す。
func (m *CorrespondenceMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Sources は登録順の移植元ノード一覧を返す。
func (m *CorrespondenceMap) Sources() []*model.Node {
	return append([]*model.Node(nil), m.order...)
}

// CountByOrigin は根拠ごとの件数を返す。
func (m *CorrespondenceMap) CountByOrigin() map[MatchOrigin]int {
	counts := map[MatchOrigin]int{}
	for _, entry := range m.entries {
		counts[entry.origin]++
	}
	return counts
}

// BuildCorrespondence は移植元と移植先のノード対応表を構築する。
// ルート同士、人型ロール一致、名前一致の順に登録し、対応しなかった移植元ノードを行きがけ順で返す。
func BuildCorrespondence(
	sourceRoot *model.Node,
	destRoot *model.Node,
	sourceRoles model.RoleTable,
	destRoles model.RoleTable,
) (*CorrespondenceMap, []*model.Node) {
	return buildCorrespondence(sourceRoot, destRoot, sourceRoles, destRoles, nil)
}

// buildCorrespondence は対応表を構築し、ロール対応の省略を移植ログへ記録する。
func buildCorrespondence(
	sourceRoot *model.Node,
	destRoot *model.Node,
	sourceRoles model.RoleTable,
	destRoles model.RoleTable,
	log *MigrationLog,
) (*CorrespondenceMap, []*model.Node) {
	mapping := NewCorrespondenceMap()
	if sourceRoot == nil || destRoot == nil {
		return mapping, nil
	}
	mapping.Put(sourceRoot, destRoot, MatchOriginRoot)

	if !sourceRoles.IsHumanoid() || !destRoles.IsHumanoid() {
		const format = "人型ロールが無いため、ロール対応をスキップします: source=%d dest=%d"
		if log != nil {
			log.AddInfo(model.MigrateInfoRoleMappingSkipped, sourceRoot, "", format, len(sourceRoles), len(destRoles))
		} else {
			logMigrateInfo(format, len(sourceRoles), len(destRoles))
		}
	} else {
		mapByRole(mapping, sourceRoles, destRoles)
	}

	mapByName(mapping, sourceRoot, buildNameIndex(destRoot))

	unresolved := []*model.Node{}
	sourceRoot.Walk(func(node *model.Node) {
		if !mapping.Has(node) {
			unresolved = append(unresolved, node)
		}
	})
	logMigrateDebug("ノード対応表を構築しました: mapped=%d unresolved=%d", mapping.Len(), len(unresolved))
	return mapping, unresolved
}

// mapByRole は両方の表に存在するロールで対応付ける。キーは正準ロール名へ揃えてから比較する。
func mapByRole(mapping *CorrespondenceMap, sourceRoles model.RoleTable, destRoles model.RoleTable) {
	normalizedSource := sourceRoles.Normalized()
	normalizedDest := destRoles.Normalized()
	for _, role := range normalizedSource.Roles() {
		destNode, ok := normalizedDest[role]
		if !ok {
			continue
		}
		mapping.Put(normalizedSource[role], destNode, MatchOriginRole)
	}
}

// buildNameIndex は移植先の名前索引を構築する。同名は行きがけ順で先に見つかったノードを採用する。
func buildNameIndex(destRoot *model.Node) map[string]*model.Node {
	index := map[string]*model.Node{}
	destRoot.Walk(func(node *model.Node) {
		if _, exists := index[node.Name]; !exists {
			index[node.Name] = node
		}
	})
	return index
}

// mapByName は未対応の移植元ノードを名前で対応付ける。
func mapByName(mapping *CorrespondenceMap, sourceRoot *model.Node, index map[string]*model.Node) {
	sourceRoot.Walk(func(node *model.Node) {
		if mapping.Has(node) {
			return
		}
		if destNode, ok := index[node.Name]; ok {
			mapping.Put(node, destNode, MatchOriginName)
		}
	})
}
