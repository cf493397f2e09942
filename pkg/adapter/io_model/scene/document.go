// 指示: miu200521358
package scene

import (
	"encoding/json"

	"github.com/miu200521358/mu_physmigrate/pkg/domain/mmath"
)

// sceneDocument はシーンファイルのトップレベル要素を表す。
type sceneDocument struct {
	Name  string         `json:"name"`
	Nodes []nodeDocument `json:"nodes"`
}

// nodeDocument はノード1件を表す。Parent は先行ノードのインデックスで、ルートのみ -1。
type nodeDocument struct {
	Name      string            `json:"name"`
	Parent    int               `json:"parent"`
	Position  mmath.Vec3        `json:"position"`
	Rotation  *mmath.Quaternion `json:"rotation,omitempty"`
	Scale     *mmath.Vec3       `json:"scale,omitempty"`
	HumanBone string            `json:"humanBone,omitempty"`
	Records   []recordDocument  `json:"records,omitempty"`
}

// recordDocument はレコード1件を表す。
type recordDocument struct {
	Kind   string                 `json:"kind"`
	Params json.RawMessage        `json:"params,omitempty"`
	Refs   map[string]refDocument `json:"refs,omitempty"`
}

// refDocument は参照フィールド1件を表す。分類に応じて1項目のみ使う。
type refDocument struct {
	Node    *int                `json:"node,omitempty"`
	Nodes   []int               `json:"nodes,omitempty"`
	Records []recordRefDocument `json:"records,omitempty"`
}

// recordRefDocument は付与先ノードと同種別内の順番でレコードを指す。
type recordRefDocument struct {
	Node  int    `json:"node"`
	Kind  string `json:"kind"`
	Index int    `json:"index"`
}
