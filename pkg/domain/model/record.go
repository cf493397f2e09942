// 指示: miu200521358
package model

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// RecordKind はノードへ付与されるレコード種別を表す。
type RecordKind string

const (
	// RecordKindCapsuleCollider はカプセルコライダーを表す。
	RecordKindCapsuleCollider RecordKind = "capsuleCollider"
	// RecordKindSphereCollider は球コライダーを表す。
	RecordKindSphereCollider RecordKind = "sphereCollider"
	// RecordKindPlaneCollider は平面コライダーを表す。
	RecordKindPlaneCollider RecordKind = "planeCollider"
	// RecordKindColliderGroup はスプリングボーン用コライダーグループを表す。
	RecordKindColliderGroup RecordKind = "colliderGroup"
	// RecordKindSpringBone はスプリングボーン拘束を表す。
	RecordKindSpringBone RecordKind = "springBone"
	// RecordKindCloth はクロス記述を表す。
	RecordKindCloth RecordKind = "cloth"
	// RecordKindMeshRenderer はメッシュ描画(ブレンドシェイプ保持)を表す。移植対象ではなく参照先としてのみ扱う。
	RecordKindMeshRenderer RecordKind = "meshRenderer"
)

// recordKindOrder は既定の走査順を保持する。
var recordKindOrder = []RecordKind{
	RecordKindCapsuleCollider,
	RecordKindSphereCollider,
	RecordKindPlaneCollider,
	RecordKindColliderGroup,
	RecordKindCloth,
	RecordKindSpringBone,
	RecordKindMeshRenderer,
}

// AllRecordKinds は全レコード種別を既定順で返す。
func AllRecordKinds() []RecordKind {
	kinds := make([]RecordKind, len(recordKindOrder))
	copy(kinds, recordKindOrder)
	return kinds
}

// ParseRecordKind は文字列からレコード種別を解決する。
func ParseRecordKind(name string) (RecordKind, bool) {
	for _, kind := range recordKindOrder {
		if string(kind) == name {
			return kind, true
		}
	}
	return "", false
}

// ReferenceCategory は参照フィールドの分類を表す。
type ReferenceCategory int

const (
	// ReferenceCategoryNode は単一ノード参照。
	ReferenceCategoryNode ReferenceCategory = iota
	// ReferenceCategoryNodeList はノード参照リスト。
	ReferenceCategoryNodeList
	// ReferenceCategoryRecordList は他レコード参照リスト。
	ReferenceCategoryRecordList
)

// String は分類名を返す。
func (c ReferenceCategory) String() string {
	switch c {
	case ReferenceCategoryNode:
		return "node"
	case ReferenceCategoryNodeList:
		return "nodeList"
	case ReferenceCategoryRecordList:
		return "recordList"
	default:
		return "unknown"
	}
}

// ReferenceField はレコード種別ごとに固定された参照フィールドの読み書き口を表す。
// Category に対応する関数のみが設定される。
type ReferenceField struct {
	Name     string
	Category ReferenceCategory
	// RecordKind はリスト要素として期待する種別。空の場合は要素自身の種別で解決する。
	RecordKind RecordKind

	Node       func() *Node
	SetNode    func(node *Node)
	Nodes      func() []*Node
	SetNodes   func(nodes []*Node)
	Records    func() []IRecord
	SetRecords func(records []IRecord)
}

// IRecord はノードに付与されるレコードの契約を表す。
type IRecord interface {
	// Kind はレコード種別を返す。
	Kind() RecordKind
	// Owner は付与先ノードを返す。
	Owner() *Node
	// ReferenceFields は参照フィールドの読み書き口を宣言順で返す。
	ReferenceFields() []ReferenceField
	// ParamsRef はスカラーパラメータ構造体へのポインタを返す。
	ParamsRef() any

	bind(owner *Node)
	copyParamsFrom(src IRecord) error
}

// recordBase は付与先ノードの保持を共通化する。
type recordBase struct {
	owner *Node
}

// Owner は付与先ノードを返す。
func (r *recordBase) Owner() *Node {
	return r.owner
}

func (r *recordBase) bind(owner *Node) {
	r.owner = owner
}

// NewRecord は種別に応じた空レコードを生成する。
func NewRecord(kind RecordKind) (IRecord, error) {
	switch kind {
	case RecordKindCapsuleCollider:
		return NewCapsuleCollider(), nil
	case RecordKindSphereCollider:
		return NewSphereCollider(), nil
	case RecordKindPlaneCollider:
		return NewPlaneCollider(), nil
	case RecordKindColliderGroup:
		return NewColliderGroup(), nil
	case RecordKindSpringBone:
		return NewSpringBone(), nil
	case RecordKindCloth:
		return NewCloth(), nil
	case RecordKindMeshRenderer:
		return NewMeshRenderer(), nil
	default:
		return nil, fmt.Errorf("未対応のレコード種別です: %s", kind)
	}
}

// CopyRecord は src のスカラーパラメータを深いコピーで dst へ上書きし、参照フィールドは src と同じ対象を指すよう複写する。
// 参照の付け替えは呼び出し側が行う。
func CopyRecord(dst IRecord, src IRecord) error {
	if dst == nil || src == nil {
		return fmt.Errorf("複写対象レコードが未設定です")
	}
	if dst.Kind() != src.Kind() {
		return fmt.Errorf("レコード種別が一致しません: dst=%s src=%s", dst.Kind(), src.Kind())
	}
	if err := dst.copyParamsFrom(src); err != nil {
		return fmt.Errorf("レコードパラメータの複写に失敗しました(%s): %w", src.Kind(), err)
	}

	dstFields := dst.ReferenceFields()
	srcFields := src.ReferenceFields()
	for i := range srcFields {
		if i >= len(dstFields) {
			break
		}
		switch srcFields[i].Category {
		case ReferenceCategoryNode:
			dstFields[i].SetNode(srcFields[i].Node())
		case ReferenceCategoryNodeList:
			nodes := srcFields[i].Nodes()
			dstFields[i].SetNodes(append([]*Node(nil), nodes...))
		case ReferenceCategoryRecordList:
			records := srcFields[i].Records()
			dstFields[i].SetRecords(append([]IRecord(nil), records...))
		}
	}
	return nil
}

// CloneRecord は付与先を持たない複製レコードを返す。
func CloneRecord(src IRecord) (IRecord, error) {
	if src == nil {
		return nil, fmt.Errorf("複製対象レコードが未設定です")
	}
	dst, err := NewRecord(src.Kind())
	if err != nil {
		return nil, err
	}
	if err := CopyRecord(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

// RecordOrdinal は付与先ノード上での同種別内の順番を返す。未付与の場合は -1。
func RecordOrdinal(record IRecord) int {
	if record == nil || record.Owner() == nil {
		return -1
	}
	for i, r := range record.Owner().RecordsOf(record.Kind()) {
		if r == record {
			return i
		}
	}
	return -1
}

// copyParams はパラメータ構造体を深いコピーする。
func copyParams[P any](dst *P, src *P) error {
	return deepcopy.Copy(dst, src)
}

// nodeField は単一ノード参照フィールドを生成する。
func nodeField(name string, target **Node) ReferenceField {
	return ReferenceField{
		Name:     name,
		Category: ReferenceCategoryNode,
		Node:     func() *Node { return *target },
		SetNode:  func(node *Node) { *target = node },
	}
}

// nodeListField はノード参照リストフィールドを生成する。
func nodeListField(name string, target *[]*Node) ReferenceField {
	return ReferenceField{
		Name:     name,
		Category: ReferenceCategoryNodeList,
		Nodes:    func() []*Node { return *target },
		SetNodes: func(nodes []*Node) { *target = nodes },
	}
}

// recordListField はレコード参照リストフィールドを生成する。
func recordListField(name string, kind RecordKind, target *[]IRecord) ReferenceField {
	return ReferenceField{
		Name:       name,
		Category:   ReferenceCategoryRecordList,
		RecordKind: kind,
		Records:    func() []IRecord { return *target },
		SetRecords: func(records []IRecord) { *target = records },
	}
}
