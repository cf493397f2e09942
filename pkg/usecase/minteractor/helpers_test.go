// 指示: miu200521358
package minteractor

import (
	"testing"

	"github.com/miu200521358/mu_physmigrate/pkg/domain/mmath"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
	"github.com/miu200521358/mu_physmigrate/pkg/infra/base/mlogging"
	"github.com/miu200521358/mu_physmigrate/pkg/shared/base/logging"
)

// addNode はテスト用ノードを親の末尾に追加する。
func addNode(parent *model.Node, name string, role model.HumanBone) *model.Node {
	node := model.NewNode(name)
	node.HumanBone = role
	if parent != nil {
		parent.AddChild(node)
	}
	return node
}

// vec3 はテスト用ベクトルを生成する。
func vec3(x, y, z float64) mmath.Vec3 {
	return mmath.NewVec3ByValues(x, y, z)
}

// childNames は直下の子ノード名を返す。
func childNames(node *model.Node) []string {
	names := []string{}
	for _, child := range node.Children() {
		names = append(names, child.Name)
	}
	return names
}

// nodeNames はノード名一覧を返す。
func nodeNames(nodes []*model.Node) []string {
	names := []string{}
	for _, node := range nodes {
		if node == nil {
			names = append(names, "<nil>")
			continue
		}
		names = append(names, node.Name)
	}
	return names
}

// useBufferLogger はテスト中の既定ロガーをバッファ付きロガーへ差し替える。
func useBufferLogger(t *testing.T) logging.ILogger {
	t.Helper()
	logger := mlogging.NewLogger(nil)
	logger.SetLevel(logging.LOG_LEVEL_DEBUG)
	logger.MessageBuffer().Clear()
	prevLogger := logging.DefaultLogger()
	logging.SetDefaultLogger(logger)
	t.Cleanup(func() {
		logging.SetDefaultLogger(prevLogger)
	})
	return logger
}

// progressRecorder は進捗イベントを記録する。
type progressRecorder struct {
	events []MigrateProgressEvent
}

func (r *progressRecorder) ReportMigrateProgress(event MigrateProgressEvent) {
	r.events = append(r.events, event)
}
