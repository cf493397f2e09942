// 指示: miu200521358
package model

import (
	"path/filepath"
	"strings"
)

// Scene は1体分のノードツリーと読み込み元情報を表す。
type Scene struct {
	Name string
	Path string
	Root *Node
}

// NewScene は同名ルートノードを持つシーンを生成する。
func NewScene(name string) *Scene {
	return &Scene{Name: name, Root: NewNode(name)}
}

// SetPath は読み込み元パスを設定し、名前未設定時はファイル名から補完する。
func (s *Scene) SetPath(path string) {
	s.Path = path
	if strings.TrimSpace(s.Name) == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
}

// NodeCount はツリーのノード数を返す。
func (s *Scene) NodeCount() int {
	if s == nil || s.Root == nil {
		return 0
	}
	return len(s.Root.Descendants())
}

// RecordCount は指定種別のレコード数を返す。
func (s *Scene) RecordCount(kind RecordKind) int {
	if s == nil || s.Root == nil {
		return 0
	}
	count := 0
	s.Root.Walk(func(node *Node) {
		count += len(node.RecordsOf(kind))
	})
	return count
}
