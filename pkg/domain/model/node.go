// 指示: miu200521358
package model

import (
	"strings"

	"github.com/miu200521358/mu_physmigrate/pkg/domain/mmath"
)

// Node は階層ツリー上の1ノード(ボーン/オブジェクト)を表す。
// Position/Rotation/Scale は親ノード基準のローカル変換。
type Node struct {
	Name      string
	Position  mmath.Vec3
	Rotation  mmath.Quaternion
	Scale     mmath.Vec3
	HumanBone HumanBone

	parent   *Node
	children []*Node
	records  []IRecord
}

// NewNode は単位変換を持つノードを生成する。
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Position: mmath.ZERO_VEC3,
		Rotation: mmath.NewQuaternion(),
		Scale:    mmath.ONE_VEC3,
	}
}

// Parent は親ノードを返す。ルートの場合は nil。
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Children は子ノード一覧を順序通りに返す。
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// AddChild は子ノードを末尾に追加する。既存の親からは切り離す。ローカル変換は維持する。
func (n *Node) AddChild(child *Node) *Node {
	if n == nil || child == nil || child == n {
		return child
	}
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// SetParent は親ノードを付け替える。keepWorld が true の場合はワールド変換を維持する。
func (n *Node) SetParent(parent *Node, keepWorld bool) {
	if n == nil || parent == n {
		return
	}
	worldPosition := n.WorldPosition()
	worldRotation := n.WorldRotation()
	lossyScale := n.LossyScale()

	if n.parent != nil {
		n.parent.removeChild(n)
		n.parent = nil
	}
	if parent != nil {
		parent.AddChild(n)
	}
	if keepWorld {
		n.SetWorldTransform(worldPosition, worldRotation, lossyScale)
	}
}

// removeChild は子ノードを一覧から外す。
func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// FindChild は直下の子から同名ノードを先頭優先で返す。
func (n *Node) FindChild(name string) *Node {
	if n == nil {
		return nil
	}
	for _, child := range n.children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// Root はツリーのルートを返す。
func (n *Node) Root() *Node {
	if n == nil {
		return nil
	}
	current := n
	for current.parent != nil {
		current = current.parent
	}
	return current
}

// IsDescendantOf は ancestor 配下(自身を含む)か判定する。
func (n *Node) IsDescendantOf(ancestor *Node) bool {
	for current := n; current != nil; current = current.parent {
		if current == ancestor {
			return true
		}
	}
	return false
}

// Path はルートからの名前パスを返す。
func (n *Node) Path() string {
	if n == nil {
		return ""
	}
	names := []string{}
	for current := n; current != nil; current = current.parent {
		names = append(names, current.Name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/")
}

// Walk は自身を含む配下を深さ優先・行きがけ順で走査する。
func (n *Node) Walk(visit func(node *Node)) {
	if n == nil || visit == nil {
		return
	}
	visit(n)
	for _, child := range n.children {
		child.Walk(visit)
	}
}

// Descendants は自身を含む配下を行きがけ順で返す。
func (n *Node) Descendants() []*Node {
	nodes := []*Node{}
	n.Walk(func(node *Node) {
		nodes = append(nodes, node)
	})
	return nodes
}

// LocalMatrix はローカル変換行列を返す。
func (n *Node) LocalMatrix() mmath.Mat4 {
	return mmath.NewMat4FromTRS(n.Position, n.Rotation.Normalized(), n.Scale)
}

// WorldMatrix はワールド変換行列を返す。
func (n *Node) WorldMatrix() mmath.Mat4 {
	if n == nil {
		return mmath.NewMat4()
	}
	if n.parent == nil {
		return n.LocalMatrix()
	}
	return n.parent.WorldMatrix().Muled(n.LocalMatrix())
}

// WorldPosition はワールド座標を返す。
func (n *Node) WorldPosition() mmath.Vec3 {
	return n.WorldMatrix().Translation()
}

// WorldRotation はワールド回転を返す。
func (n *Node) WorldRotation() mmath.Quaternion {
	if n == nil {
		return mmath.NewQuaternion()
	}
	if n.parent == nil {
		return n.Rotation.Normalized()
	}
	return n.parent.WorldRotation().Muled(n.Rotation.Normalized()).Normalized()
}

// LossyScale は親のスケールを累積したスケールを返す。
func (n *Node) LossyScale() mmath.Vec3 {
	if n == nil {
		return mmath.ONE_VEC3
	}
	if n.parent == nil {
		return n.Scale
	}
	return n.parent.LossyScale().MuledVec(n.Scale)
}

// SetWorldTransform はワールド変換を指定し、現在の親に対するローカル変換へ変換して設定する。
func (n *Node) SetWorldTransform(position mmath.Vec3, rotation mmath.Quaternion, scale mmath.Vec3) {
	if n.parent == nil {
		n.Position = position
		n.Rotation = rotation.Normalized()
		n.Scale = scale
		return
	}
	n.Position = n.parent.WorldMatrix().Inverted().MulVec3(position)
	n.Rotation = n.parent.WorldRotation().Inverted().Muled(rotation).Normalized()
	n.Scale = scale.DivedSafe(n.parent.LossyScale())
}

// Records は付与済みレコード一覧を返す。
func (n *Node) Records() []IRecord {
	if n == nil {
		return nil
	}
	return n.records
}

// RecordsOf は指定種別のレコードを付与順で返す。
func (n *Node) RecordsOf(kind RecordKind) []IRecord {
	if n == nil {
		return nil
	}
	records := []IRecord{}
	for _, record := range n.records {
		if record.Kind() == kind {
			records = append(records, record)
		}
	}
	return records
}

// HasRecord は指定種別のレコードを持つか判定する。
func (n *Node) HasRecord(kind RecordKind) bool {
	if n == nil {
		return false
	}
	for _, record := range n.records {
		if record.Kind() == kind {
			return true
		}
	}
	return false
}

// RecordOf は指定種別で ordinal 番目のレコードを返す。
func (n *Node) RecordOf(kind RecordKind, ordinal int) (IRecord, bool) {
	records := n.RecordsOf(kind)
	if ordinal < 0 || ordinal >= len(records) {
		return nil, false
	}
	return records[ordinal], true
}

// AddRecord はレコードをこのノードへ付与する。他ノードに付与済みの場合は付け替える。
func (n *Node) AddRecord(record IRecord) IRecord {
	if n == nil || record == nil {
		return record
	}
	if owner := record.Owner(); owner != nil && owner != n {
		owner.removeRecord(record)
	}
	record.bind(n)
	n.records = append(n.records, record)
	return record
}

// removeRecord はレコードを一覧から外す。
func (n *Node) removeRecord(record IRecord) {
	for i, r := range n.records {
		if r == record {
			n.records = append(n.records[:i], n.records[i+1:]...)
			return
		}
	}
}

// Duplicate は名前・ローカル変換・全レコードを複製した親なしノードを返す。
// 子ノードと人型ロールは複製しない。レコードの参照は複製元と同じ対象を指す。
func (n *Node) Duplicate() (*Node, error) {
	dup := NewNode(n.Name)
	dup.Position = n.Position
	dup.Rotation = n.Rotation
	dup.Scale = n.Scale
	for _, record := range n.records {
		cloned, err := CloneRecord(record)
		if err != nil {
			return nil, err
		}
		dup.AddRecord(cloned)
	}
	return dup, nil
}
