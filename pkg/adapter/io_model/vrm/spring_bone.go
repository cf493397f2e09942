// 指示: miu200521358
package vrm

import (
	"encoding/json"
	"math"

	"github.com/miu200521358/mu_physmigrate/pkg/adapter/io_common"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/mmath"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
)

// springBoneExtension はVRMC_springBone拡張の必要要素を表す。
type springBoneExtension struct {
	SpecVersion    string                `json:"specVersion"`
	Colliders      []springCollider      `json:"colliders"`
	ColliderGroups []springColliderGroup `json:"colliderGroups"`
	Springs        []spring              `json:"springs"`
}

// springCollider はコライダー要素を表す。
type springCollider struct {
	Node  *int                `json:"node"`
	Shape springColliderShape `json:"shape"`
}

// springColliderShape はコライダー形状を表す。sphere と capsule のどちらか一方を持つ。
type springColliderShape struct {
	Sphere  *springSphere  `json:"sphere"`
	Capsule *springCapsule `json:"capsule"`
}

type springSphere struct {
	Offset []float64 `json:"offset"`
	Radius float64   `json:"radius"`
}

type springCapsule struct {
	Offset []float64 `json:"offset"`
	Radius float64   `json:"radius"`
	Tail   []float64 `json:"tail"`
}

// springColliderGroup はコライダーグループ要素を表す。
type springColliderGroup struct {
	Name      string `json:"name"`
	Colliders []int  `json:"colliders"`
}

// spring はスプリング要素を表す。
type spring struct {
	Name           string        `json:"name"`
	Joints         []springJoint `json:"joints"`
	ColliderGroups []int         `json:"colliderGroups"`
	Center         *int          `json:"center"`
}

// springJoint はジョイント要素を表す。
type springJoint struct {
	Node         *int      `json:"node"`
	HitRadius    *float64  `json:"hitRadius"`
	Stiffness    *float64  `json:"stiffness"`
	GravityPower *float64  `json:"gravityPower"`
	GravityDir   []float64 `json:"gravityDir"`
	DragForce    *float64  `json:"dragForce"`
}

// parseSpringBoneExtension はextensionsからVRMC_springBoneを抽出する。未宣言の場合は nil。
func parseSpringBoneExtension(extensions map[string]json.RawMessage) (*springBoneExtension, error) {
	raw, ok := extensions["VRMC_springBone"]
	if !ok {
		return nil, nil
	}
	ext := &springBoneExtension{}
	if err := json.Unmarshal(raw, ext); err != nil {
		return nil, io_common.NewIoParseFailed("VRMC_springBone のJSON解析に失敗しました", err)
	}
	return ext, nil
}

// applySpringBones はスプリングボーン拡張をレコードとしてノードへ付与する。
// グループは先頭コライダーのノード(無い場合はルート)へ、スプリングは先頭ジョイントのノードへ付与する。
func applySpringBones(ext *springBoneExtension, root *model.Node, nodes []*model.Node) error {
	if ext == nil {
		return nil
	}

	colliderNodes := make([]*model.Node, len(ext.Colliders))
	for i, collider := range ext.Colliders {
		node, err := springNodeAt(nodes, collider.Node, "colliders.node")
		if err != nil {
			return err
		}
		if node == nil {
			logVrmWarn("node未指定のコライダーを無視しました: index=%d", i)
			continue
		}
		colliderNodes[i] = node
		switch {
		case collider.Shape.Sphere != nil:
			sphere := model.NewSphereCollider()
			offset, err := parseVec3(collider.Shape.Sphere.Offset, mmath.ZERO_VEC3, "sphere.offset")
			if err != nil {
				return err
			}
			sphere.Center = offset
			sphere.Radius = collider.Shape.Sphere.Radius
			node.AddRecord(sphere)
		case collider.Shape.Capsule != nil:
			capsule, err := buildCapsuleCollider(collider.Shape.Capsule)
			if err != nil {
				return err
			}
			node.AddRecord(capsule)
		default:
			logVrmWarn("形状未指定のコライダーを無視しました: index=%d", i)
		}
	}

	groups := make([]model.IRecord, len(ext.ColliderGroups))
	for i, groupDoc := range ext.ColliderGroups {
		group := model.NewColliderGroup()
		group.Name = groupDoc.Name
		for _, colliderIndex := range groupDoc.Colliders {
			if colliderIndex < 0 || colliderIndex >= len(ext.Colliders) {
				return io_common.NewIoParseFailed("colliderGroups.colliders のindexが不正です: %d", nil, colliderIndex)
			}
			node := colliderNodes[colliderIndex]
			if node == nil {
				continue
			}
			group.ColliderNodes = append(group.ColliderNodes, node)
			group.Shapes = append(group.Shapes, colliderShapes(ext.Colliders[colliderIndex].Shape)...)
		}
		owner := root
		if len(group.ColliderNodes) > 0 {
			owner = group.ColliderNodes[0]
		}
		owner.AddRecord(group)
		groups[i] = group
	}

	for i, springDoc := range ext.Springs {
		if len(springDoc.Joints) == 0 {
			logVrmWarn("ジョイントを持たないスプリングを無視しました: index=%d name=%s", i, springDoc.Name)
			continue
		}
		rootBone, err := springNodeAt(nodes, springDoc.Joints[0].Node, "springs.joints.node")
		if err != nil {
			return err
		}
		if rootBone == nil {
			logVrmWarn("先頭ジョイントのnodeが未指定のスプリングを無視しました: index=%d", i)
			continue
		}
		record := model.NewSpringBone()
		record.Comment = springDoc.Name
		if err := applyJointParams(record, springDoc.Joints[0]); err != nil {
			return err
		}
		record.RootBones = []*model.Node{rootBone}
		center, err := springNodeAt(nodes, springDoc.Center, "springs.center")
		if err != nil {
			return err
		}
		record.Center = center
		for _, groupIndex := range springDoc.ColliderGroups {
			if groupIndex < 0 || groupIndex >= len(groups) {
				return io_common.NewIoParseFailed("springs.colliderGroups のindexが不正です: %d", nil, groupIndex)
			}
			record.ColliderGroups = append(record.ColliderGroups, groups[groupIndex])
		}
		rootBone.AddRecord(record)
	}
	return nil
}

// springNodeAt はnode indexを検査して返す。未指定の場合は nil。
func springNodeAt(nodes []*model.Node, index *int, label string) (*model.Node, error) {
	if index == nil {
		return nil, nil
	}
	if *index < 0 || *index >= len(nodes) {
		return nil, io_common.NewIoParseFailed("%s のindexが不正です: %d", nil, label, *index)
	}
	return nodes[*index], nil
}

// buildCapsuleCollider は端点指定のカプセルを中心・軸方向・長さへ変換する。軸は端点差の最大成分に揃える。
func buildCapsuleCollider(capsuleDoc *springCapsule) (*model.CapsuleCollider, error) {
	offset, err := parseVec3(capsuleDoc.Offset, mmath.ZERO_VEC3, "capsule.offset")
	if err != nil {
		return nil, err
	}
	tail, err := parseVec3(capsuleDoc.Tail, mmath.ZERO_VEC3, "capsule.tail")
	if err != nil {
		return nil, err
	}
	capsule := model.NewCapsuleCollider()
	capsule.Center = offset.Added(tail).MuledScalar(0.5)
	capsule.StartRadius = capsuleDoc.Radius
	capsule.EndRadius = capsuleDoc.Radius
	capsule.Length = offset.Distance(tail)
	capsule.AlignedOnCenter = true

	axis := tail.Subed(offset)
	switch {
	case math.Abs(axis.X) >= math.Abs(axis.Y) && math.Abs(axis.X) >= math.Abs(axis.Z) && axis.X != 0:
		capsule.Direction = model.CapsuleDirectionX
	case math.Abs(axis.Z) > math.Abs(axis.Y):
		capsule.Direction = model.CapsuleDirectionZ
	default:
		capsule.Direction = model.CapsuleDirectionY
	}
	return capsule, nil
}

// colliderShapes はグループ保持用の球形状を返す。カプセルは両端の球で近似する。
func colliderShapes(shape springColliderShape) []model.SphereShape {
	switch {
	case shape.Sphere != nil:
		offset, err := parseVec3(shape.Sphere.Offset, mmath.ZERO_VEC3, "sphere.offset")
		if err != nil {
			return nil
		}
		return []model.SphereShape{{Offset: offset, Radius: shape.Sphere.Radius}}
	case shape.Capsule != nil:
		offset, err := parseVec3(shape.Capsule.Offset, mmath.ZERO_VEC3, "capsule.offset")
		if err != nil {
			return nil
		}
		tail, err := parseVec3(shape.Capsule.Tail, mmath.ZERO_VEC3, "capsule.tail")
		if err != nil {
			return nil
		}
		return []model.SphereShape{
			{Offset: offset, Radius: shape.Capsule.Radius},
			{Offset: tail, Radius: shape.Capsule.Radius},
		}
	default:
		return nil
	}
}

// applyJointParams は先頭ジョイントの物理パラメータを設定する。未指定項目は既定値のまま。
func applyJointParams(record *model.SpringBone, joint springJoint) error {
	if joint.Stiffness != nil {
		record.Stiffness = *joint.Stiffness
	}
	if joint.GravityPower != nil {
		record.GravityPower = *joint.GravityPower
	}
	if joint.DragForce != nil {
		record.DragForce = *joint.DragForce
	}
	if joint.HitRadius != nil {
		record.HitRadius = *joint.HitRadius
	}
	gravityDir, err := parseVec3(joint.GravityDir, record.GravityDir, "joints.gravityDir")
	if err != nil {
		return err
	}
	record.GravityDir = gravityDir
	return nil
}
