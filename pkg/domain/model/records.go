// 指示: miu200521358
package model

import (
	"fmt"

	"github.com/miu200521358/mu_physmigrate/pkg/domain/mmath"
)

// CapsuleDirection はカプセル軸方向を表す。
type CapsuleDirection string

const (
	CapsuleDirectionX CapsuleDirection = "x"
	CapsuleDirectionY CapsuleDirection = "y"
	CapsuleDirectionZ CapsuleDirection = "z"
)

// CapsuleColliderParams はカプセルコライダーのパラメータを表す。
type CapsuleColliderParams struct {
	Center          mmath.Vec3       `json:"center"`
	Direction       CapsuleDirection `json:"direction"`
	Length          float64          `json:"length"`
	StartRadius     float64          `json:"startRadius"`
	EndRadius       float64          `json:"endRadius"`
	AlignedOnCenter bool             `json:"alignedOnCenter"`
}

// CapsuleCollider はカプセルコライダーを表す。
type CapsuleCollider struct {
	recordBase
	CapsuleColliderParams
}

// NewCapsuleCollider はカプセルコライダーを生成する。
func NewCapsuleCollider() *CapsuleCollider {
	return &CapsuleCollider{CapsuleColliderParams: CapsuleColliderParams{Direction: CapsuleDirectionY}}
}

// Kind はレコード種別を返す。
func (c *CapsuleCollider) Kind() RecordKind { return RecordKindCapsuleCollider }

// ReferenceFields は参照フィールドを返す。
func (c *CapsuleCollider) ReferenceFields() []ReferenceField { return nil }

// ParamsRef は参照を含まないパラメータへのポインタを返す。
func (c *CapsuleCollider) ParamsRef() any { return &c.CapsuleColliderParams }

func (c *CapsuleCollider) copyParamsFrom(src IRecord) error {
	s, ok := src.(*CapsuleCollider)
	if !ok {
		return fmt.Errorf("型が一致しません: %T", src)
	}
	return copyParams(&c.CapsuleColliderParams, &s.CapsuleColliderParams)
}

// SphereColliderParams は球コライダーのパラメータを表す。
type SphereColliderParams struct {
	Center mmath.Vec3 `json:"center"`
	Radius float64    `json:"radius"`
}

// SphereCollider は球コライダーを表す。
type SphereCollider struct {
	recordBase
	SphereColliderParams
}

// NewSphereCollider は球コライダーを生成する。
func NewSphereCollider() *SphereCollider {
	return &SphereCollider{}
}

// Kind はレコード種別を返す。
func (c *SphereCollider) Kind() RecordKind { return RecordKindSphereCollider }

// ReferenceFields は参照フィールドを返す。
func (c *SphereCollider) ReferenceFields() []ReferenceField { return nil }

// ParamsRef は参照を含まないパラメータへのポインタを返す。
func (c *SphereCollider) ParamsRef() any { return &c.SphereColliderParams }

func (c *SphereCollider) copyParamsFrom(src IRecord) error {
	s, ok := src.(*SphereCollider)
	if !ok {
		return fmt.Errorf("型が一致しません: %T", src)
	}
	return copyParams(&c.SphereColliderParams, &s.SphereColliderParams)
}

// PlaneColliderParams は平面コライダーのパラメータを表す。法線はノードのローカルY軸。
type PlaneColliderParams struct {
	Center mmath.Vec3 `json:"center"`
}

// PlaneCollider は平面コライダーを表す。
type PlaneCollider struct {
	recordBase
	PlaneColliderParams
}

// NewPlaneCollider は平面コライダーを生成する。
func NewPlaneCollider() *PlaneCollider {
	return &PlaneCollider{}
}

// Kind はレコード種別を返す。
func (c *PlaneCollider) Kind() RecordKind { return RecordKindPlaneCollider }

// ReferenceFields は参照フィールドを返す。
func (c *PlaneCollider) ReferenceFields() []ReferenceField { return nil }

// ParamsRef は参照を含まないパラメータへのポインタを返す。
func (c *PlaneCollider) ParamsRef() any { return &c.PlaneColliderParams }

func (c *PlaneCollider) copyParamsFrom(src IRecord) error {
	s, ok := src.(*PlaneCollider)
	if !ok {
		return fmt.Errorf("型が一致しません: %T", src)
	}
	return copyParams(&c.PlaneColliderParams, &s.PlaneColliderParams)
}

// SphereShape はコライダーグループ内の球形状を表す。
type SphereShape struct {
	Offset mmath.Vec3 `json:"offset"`
	Radius float64    `json:"radius"`
}

// ColliderGroupParams はコライダーグループのパラメータを表す。
type ColliderGroupParams struct {
	Name   string        `json:"name,omitempty"`
	Shapes []SphereShape `json:"shapes,omitempty"`
}

// ColliderGroup はスプリングボーン用コライダーグループを表す。
// ColliderNodes はグループに属するコライダー配置ノード。
type ColliderGroup struct {
	recordBase
	ColliderGroupParams
	ColliderNodes []*Node
}

// NewColliderGroup はコライダーグループを生成する。
func NewColliderGroup() *ColliderGroup {
	return &ColliderGroup{}
}

// Kind はレコード種別を返す。
func (g *ColliderGroup) Kind() RecordKind { return RecordKindColliderGroup }

// ParamsRef は参照を含まないパラメータへのポインタを返す。
func (g *ColliderGroup) ParamsRef() any { return &g.ColliderGroupParams }

// ReferenceFields は参照フィールドを返す。
func (g *ColliderGroup) ReferenceFields() []ReferenceField {
	return []ReferenceField{
		nodeListField("colliderNodes", &g.ColliderNodes),
	}
}

func (g *ColliderGroup) copyParamsFrom(src IRecord) error {
	s, ok := src.(*ColliderGroup)
	if !ok {
		return fmt.Errorf("型が一致しません: %T", src)
	}
	return copyParams(&g.ColliderGroupParams, &s.ColliderGroupParams)
}

// SpringBoneParams はスプリングボーンのパラメータを表す。
type SpringBoneParams struct {
	Comment      string     `json:"comment,omitempty"`
	Stiffness    float64    `json:"stiffness"`
	GravityPower float64    `json:"gravityPower"`
	GravityDir   mmath.Vec3 `json:"gravityDir"`
	DragForce    float64    `json:"dragForce"`
	HitRadius    float64    `json:"hitRadius"`
}

// SpringBone はスプリングボーン拘束を表す。
type SpringBone struct {
	recordBase
	SpringBoneParams
	Center         *Node
	RootBones      []*Node
	ColliderGroups []IRecord
}

// NewSpringBone はスプリングボーンを生成する。
func NewSpringBone() *SpringBone {
	return &SpringBone{SpringBoneParams: SpringBoneParams{
		Stiffness:  1.0,
		GravityDir: mmath.NewVec3ByValues(0, -1, 0),
		DragForce:  0.4,
		HitRadius:  0.02,
	}}
}

// Kind はレコード種別を返す。
func (s *SpringBone) Kind() RecordKind { return RecordKindSpringBone }

// ParamsRef は参照を含まないパラメータへのポインタを返す。
func (s *SpringBone) ParamsRef() any { return &s.SpringBoneParams }

// ReferenceFields は参照フィールドを返す。
func (s *SpringBone) ReferenceFields() []ReferenceField {
	return []ReferenceField{
		nodeField("center", &s.Center),
		nodeListField("rootBones", &s.RootBones),
		recordListField("colliderGroups", RecordKindColliderGroup, &s.ColliderGroups),
	}
}

func (s *SpringBone) copyParamsFrom(src IRecord) error {
	other, ok := src.(*SpringBone)
	if !ok {
		return fmt.Errorf("型が一致しません: %T", src)
	}
	return copyParams(&s.SpringBoneParams, &other.SpringBoneParams)
}

// PreBuildSettings はクロス事前構築データの設定を表す。
type PreBuildSettings struct {
	Enabled   bool   `json:"enabled"`
	AssetPath string `json:"assetPath,omitempty"`
}

// ClothParams はクロス記述のパラメータを表す。
type ClothParams struct {
	ClothType string           `json:"clothType"`
	Gravity   float64          `json:"gravity"`
	Damping   float64          `json:"damping"`
	Stiffness float64          `json:"stiffness"`
	Radius    float64          `json:"radius"`
	PreBuild  PreBuildSettings `json:"preBuild"`
}

// Cloth はクロス記述を表す。
// Colliders は種別混在のコライダー参照、SourceRenderers はメッシュ描画参照。
type Cloth struct {
	recordBase
	ClothParams
	RootBones       []*Node
	Colliders       []IRecord
	SourceRenderers []IRecord
}

// NewCloth はクロス記述を生成する。
func NewCloth() *Cloth {
	return &Cloth{ClothParams: ClothParams{
		ClothType: "BoneCloth",
		Gravity:   5.0,
		Damping:   0.05,
		Stiffness: 0.5,
		Radius:    0.02,
	}}
}

// Kind はレコード種別を返す。
func (c *Cloth) Kind() RecordKind { return RecordKindCloth }

// ParamsRef は参照を含まないパラメータへのポインタを返す。
func (c *Cloth) ParamsRef() any { return &c.ClothParams }

// ReferenceFields は参照フィールドを返す。
func (c *Cloth) ReferenceFields() []ReferenceField {
	return []ReferenceField{
		nodeListField("rootBones", &c.RootBones),
		recordListField("colliders", "", &c.Colliders),
		recordListField("sourceRenderers", RecordKindMeshRenderer, &c.SourceRenderers),
	}
}

func (c *Cloth) copyParamsFrom(src IRecord) error {
	s, ok := src.(*Cloth)
	if !ok {
		return fmt.Errorf("型が一致しません: %T", src)
	}
	return copyParams(&c.ClothParams, &s.ClothParams)
}

// BlendShape はブレンドシェイプ1件の重みを表す。
type BlendShape struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// MeshRendererParams はメッシュ描画のパラメータを表す。
type MeshRendererParams struct {
	Mesh        string       `json:"mesh,omitempty"`
	BlendShapes []BlendShape `json:"blendShapes,omitempty"`
}

// MeshRenderer はメッシュ描画を表す。
type MeshRenderer struct {
	recordBase
	MeshRendererParams
}

// NewMeshRenderer はメッシュ描画を生成する。
func NewMeshRenderer() *MeshRenderer {
	return &MeshRenderer{}
}

// Kind はレコード種別を返す。
func (m *MeshRenderer) Kind() RecordKind { return RecordKindMeshRenderer }

// ReferenceFields は参照フィールドを返す。
func (m *MeshRenderer) ReferenceFields() []ReferenceField { return nil }

// ParamsRef は参照を含まないパラメータへのポインタを返す。
func (m *MeshRenderer) ParamsRef() any { return &m.MeshRendererParams }

// BlendShapeIndex は名前一致するブレンドシェイプの位置を返す。見つからない場合は -1。
func (m *MeshRenderer) BlendShapeIndex(name string) int {
	for i, shape := range m.BlendShapes {
		if shape.Name == name {
			return i
		}
	}
	return -1
}

func (m *MeshRenderer) copyParamsFrom(src IRecord) error {
	s, ok := src.(*MeshRenderer)
	if !ok {
		return fmt.Errorf("型が一致しません: %T", src)
	}
	return copyParams(&m.MeshRendererParams, &s.MeshRendererParams)
}
