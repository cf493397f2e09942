// 指示: miu200521358
package model

import "sort"

// RoleTable は正準ロールからノードへの対応表を表す。
type RoleTable map[HumanBone]*Node

// BuildRoleTable はツリーのノードに設定された人型ロールから対応表を構築する。
// 同一ロールが複数ある場合は行きがけ順で最初のノードを採用する。
func BuildRoleTable(root *Node) RoleTable {
	table := RoleTable{}
	root.Walk(func(node *Node) {
		if node.HumanBone == "" {
			return
		}
		if _, exists := table[node.HumanBone]; exists {
			return
		}
		table[node.HumanBone] = node
	})
	return table
}

// IsHumanoid はロールが1件以上登録されているか判定する。
func (t RoleTable) IsHumanoid() bool {
	return len(t) > 0
}

// Normalized はキーを正準ロール名へ揃えた表を返す。未知のキーはそのまま残す。
// 揃えた結果が重なる場合は元のキーの昇順で先のものを採用する。nil のノードは除く。
func (t RoleTable) Normalized() RoleTable {
	keys := make([]string, 0, len(t))
	for key := range t {
		keys = append(keys, string(key))
	}
	sort.Strings(keys)

	normalized := make(RoleTable, len(t))
	for _, key := range keys {
		node := t[HumanBone(key)]
		if node == nil {
			continue
		}
		role := HumanBone(key)
		if bone, ok := ParseHumanBone(key); ok {
			role = bone
		}
		if _, exists := normalized[role]; exists {
			continue
		}
		normalized[role] = node
	}
	return normalized
}

// Roles は登録ロールを返す。組み込みロールは定義順、それ以外は昇順で後ろに並べる。
func (t RoleTable) Roles() []HumanBone {
	roles := make([]HumanBone, 0, len(t))
	for _, bone := range humanBoneOrder {
		if _, ok := t[bone]; ok {
			roles = append(roles, bone)
		}
	}
	others := []string{}
	for key := range t {
		if bone, ok := ParseHumanBone(string(key)); !ok || bone != key {
			others = append(others, string(key))
		}
	}
	sort.Strings(others)
	for _, key := range others {
		roles = append(roles, HumanBone(key))
	}
	return roles
}
