// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_physmigrate/pkg/domain/merrors"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
)

// BlendShapeMigrationResult はブレンドシェイプ移植結果を表す。
type BlendShapeMigrationResult struct {
	// UpdatedRenderers は1件以上の重みを反映したメッシュ描画数。
	UpdatedRenderers int
	// UpdatedShapes は反映したブレンドシェイプ数。
	UpdatedShapes int
}

// MigrateBlendShapes は同名ノードのメッシュ描画へブレンドシェイプ重みを名前一致で反映する。
// 移植先の同名ノードは行きがけ順で先に見つかったものを使う。
func MigrateBlendShapes(sourceRoot *model.Node, destRoot *model.Node) (*BlendShapeMigrationResult, error) {
	if sourceRoot == nil || destRoot == nil {
		return nil, merrors.ErrTreeMissing
	}
	if sourceRoot.Root() == destRoot.Root() {
		return nil, merrors.ErrSameTree
	}

	destRenderers := map[string]*model.MeshRenderer{}
	destRoot.Walk(func(node *model.Node) {
		if _, exists := destRenderers[node.Name]; exists {
			return
		}
		if renderer := firstMeshRenderer(node); renderer != nil {
			destRenderers[node.Name] = renderer
		}
	})

	result := &BlendShapeMigrationResult{}
	sourceRoot.Walk(func(node *model.Node) {
		sourceRenderer := firstMeshRenderer(node)
		if sourceRenderer == nil {
			return
		}
		destRenderer, ok := destRenderers[node.Name]
		if !ok {
			return
		}
		changed := false
		for _, shape := range sourceRenderer.BlendShapes {
			index := destRenderer.BlendShapeIndex(shape.Name)
			if index < 0 {
				continue
			}
			destRenderer.BlendShapes[index].Weight = shape.Weight
			result.UpdatedShapes++
			changed = true
		}
		if changed {
			result.UpdatedRenderers++
		}
	})

	logMigrateInfo("ブレンドシェイプ移植完了: %d 件のメッシュ描画を更新しました", result.UpdatedRenderers)
	return result, nil
}

// ResetBlendShapes は配下の全メッシュ描画のブレンドシェイプ重みを0にし、対象メッシュ描画数を返す。
func ResetBlendShapes(root *model.Node) int {
	resetCount := 0
	root.Walk(func(node *model.Node) {
		for _, record := range node.RecordsOf(model.RecordKindMeshRenderer) {
			renderer, ok := record.(*model.MeshRenderer)
			if !ok || len(renderer.BlendShapes) == 0 {
				continue
			}
			for i := range renderer.BlendShapes {
				renderer.BlendShapes[i].Weight = 0
			}
			resetCount++
		}
	})
	if root != nil {
		logMigrateInfo("'%s' 配下の %d 件のメッシュ描画のブレンドシェイプを初期化しました", root.Name, resetCount)
	}
	return resetCount
}

// firstMeshRenderer はノードの先頭のメッシュ描画を返す。
func firstMeshRenderer(node *model.Node) *model.MeshRenderer {
	records := node.RecordsOf(model.RecordKindMeshRenderer)
	if len(records) == 0 {
		return nil
	}
	renderer, _ := records[0].(*model.MeshRenderer)
	return renderer
}
