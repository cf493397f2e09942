// 指示: miu200521358
package scene

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/miu200521358/mu_physmigrate/pkg/adapter/io_common"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
	"github.com/miu200521358/mu_physmigrate/pkg/shared/base/logging"
	"github.com/miu200521358/mu_physmigrate/pkg/usecase/port/moutput"
)

const (
	// FormatJSON はJSON形式を表す。
	FormatJSON = "json"
	// FormatYAML はYAML形式を表す。
	FormatYAML = "yaml"
)

// SceneRepository はシーンファイル(JSON/YAML)の読み書きを表す。
type SceneRepository struct{}

// NewSceneRepository はSceneRepositoryを生成する。
func NewSceneRepository() *SceneRepository {
	return &SceneRepository{}
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *SceneRepository) CanLoad(path string) bool {
	return formatFromPath(path) != ""
}

// InferName はパスから表示名を推定する。
func (r *SceneRepository) InferName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// Load はシーンファイルを読み込む。
func (r *SceneRepository) Load(path string) (*model.Scene, error) {
	format := formatFromPath(path)
	if format == "" {
		return nil, io_common.NewIoExtInvalid(path, nil)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, io_common.NewIoFileNotFound(path, err)
		}
		return nil, io_common.NewIoParseFailed("シーンファイルの読み取りに失敗しました", err)
	}

	doc, err := decodeDocument(b, format)
	if err != nil {
		return nil, err
	}
	scene, err := buildScene(doc, r.InferName(path))
	if err != nil {
		return nil, err
	}
	scene.SetPath(path)
	logSceneInfo("シーン読込完了: file=%s nodes=%d", filepath.Base(path), len(doc.Nodes))
	return scene, nil
}

// Save はシーンファイルを書き込む。
func (r *SceneRepository) Save(path string, scene *model.Scene, opts moutput.SaveOptions) error {
	format := normalizeFormat(opts.Format)
	if format == "" {
		format = formatFromPath(path)
	}
	if format == "" {
		return io_common.NewIoExtInvalid(path, nil)
	}

	b, err := r.Encode(scene, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return io_common.NewIoSaveFailed("保存先フォルダの作成に失敗しました: %s", err, dir)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return io_common.NewIoSaveFailed("シーンファイルの書き込みに失敗しました: %s", err, path)
	}
	logSceneInfo("シーン保存完了: file=%s nodes=%d format=%s", filepath.Base(path), scene.NodeCount(), format)
	return nil
}

// Encode はシーンを指定形式の文書へ変換する。
func (r *SceneRepository) Encode(scene *model.Scene, format string) ([]byte, error) {
	if scene == nil || scene.Root == nil {
		return nil, io_common.NewIoSaveFailed("保存対象シーンが未設定です", nil)
	}
	format = normalizeFormat(format)
	if format == "" {
		return nil, io_common.NewIoFormatNotSupported("未対応の保存形式です", nil)
	}
	doc, err := buildDocument(scene)
	if err != nil {
		return nil, err
	}
	return encodeDocument(doc, format)
}

// normalizeFormat は形式名を正規化する。未対応の場合は空文字。
func normalizeFormat(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		return FormatJSON
	case FormatYAML, "yml":
		return FormatYAML
	default:
		return ""
	}
}

// formatFromPath は拡張子から形式を返す。未対応の場合は空文字。
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return ""
	}
}

// decodeDocument は形式に応じて文書を復元する。YAMLは汎用値を経由してJSONとして解釈する。
func decodeDocument(b []byte, format string) (*sceneDocument, error) {
	jsonBytes := b
	if format == FormatYAML {
		var generic any
		if err := yaml.Unmarshal(b, &generic); err != nil {
			return nil, io_common.NewIoParseFailed("シーンYAMLの解析に失敗しました", err)
		}
		converted, err := json.Marshal(generic)
		if err != nil {
			return nil, io_common.NewIoParseFailed("シーンYAMLの変換に失敗しました", err)
		}
		jsonBytes = converted
	}
	doc := &sceneDocument{}
	if err := json.Unmarshal(jsonBytes, doc); err != nil {
		return nil, io_common.NewIoParseFailed("シーンJSONの解析に失敗しました", err)
	}
	return doc, nil
}

// encodeDocument は形式に応じて文書を直列化する。
func encodeDocument(doc *sceneDocument, format string) ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, io_common.NewIoSaveFailed("シーンJSONの生成に失敗しました", err)
	}
	if format == FormatJSON {
		return append(jsonBytes, '\n'), nil
	}
	var generic any
	if err := json.Unmarshal(jsonBytes, &generic); err != nil {
		return nil, io_common.NewIoSaveFailed("シーンYAMLの変換に失敗しました", err)
	}
	yamlBytes, err := yaml.Marshal(generic)
	if err != nil {
		return nil, io_common.NewIoSaveFailed("シーンYAMLの生成に失敗しました", err)
	}
	return yamlBytes, nil
}

// pendingRecord は参照解決待ちのレコードを表す。
type pendingRecord struct {
	nodeIndex int
	record    model.IRecord
	refs      map[string]refDocument
}

// buildScene は文書からノードツリーを構築する。参照はノードとレコードを揃えた後に解決する。
func buildScene(doc *sceneDocument, fallbackName string) (*model.Scene, error) {
	if len(doc.Nodes) == 0 {
		return nil, io_common.NewIoParseFailed("ノードが存在しません", nil)
	}
	nodes := make([]*model.Node, len(doc.Nodes))
	pending := make([]pendingRecord, 0)
	for i, nodeDoc := range doc.Nodes {
		if i == 0 && nodeDoc.Parent != -1 {
			return nil, io_common.NewIoParseFailed("先頭ノードはルートである必要があります: parent=%d", nil, nodeDoc.Parent)
		}
		if i > 0 && (nodeDoc.Parent < 0 || nodeDoc.Parent >= i) {
			return nil, io_common.NewIoParseFailed("node.parent のindexが不正です: node=%d parent=%d", nil, i, nodeDoc.Parent)
		}

		node := model.NewNode(nodeDoc.Name)
		node.Position = nodeDoc.Position
		if nodeDoc.Rotation != nil {
			node.Rotation = nodeDoc.Rotation.Normalized()
		}
		if nodeDoc.Scale != nil {
			node.Scale = *nodeDoc.Scale
		}
		if nodeDoc.HumanBone != "" {
			bone, ok := model.ParseHumanBone(nodeDoc.HumanBone)
			if ok {
				node.HumanBone = bone
			} else {
				logSceneWarn("未対応の人型ロールを無視しました: node=%s role=%s", nodeDoc.Name, nodeDoc.HumanBone)
			}
		}
		if i > 0 {
			nodes[nodeDoc.Parent].AddChild(node)
		}
		nodes[i] = node

		for _, recordDoc := range nodeDoc.Records {
			kind, ok := model.ParseRecordKind(recordDoc.Kind)
			if !ok {
				return nil, io_common.NewIoParseFailed("未対応のレコード種別です: node=%s kind=%s", nil, nodeDoc.Name, recordDoc.Kind)
			}
			record, err := model.NewRecord(kind)
			if err != nil {
				return nil, io_common.NewIoParseFailed("レコードの生成に失敗しました: kind=%s", err, kind)
			}
			if len(recordDoc.Params) > 0 {
				if err := json.Unmarshal(recordDoc.Params, record.ParamsRef()); err != nil {
					return nil, io_common.NewIoParseFailed("レコードパラメータの解析に失敗しました: node=%s kind=%s", err, nodeDoc.Name, kind)
				}
			}
			node.AddRecord(record)
			if len(recordDoc.Refs) > 0 {
				pending = append(pending, pendingRecord{nodeIndex: i, record: record, refs: recordDoc.Refs})
			}
		}
	}

	for _, p := range pending {
		if err := resolveRefs(nodes, p); err != nil {
			return nil, err
		}
	}

	name := strings.TrimSpace(doc.Name)
	if name == "" {
		name = fallbackName
	}
	return &model.Scene{Name: name, Root: nodes[0]}, nil
}

// resolveRefs はレコードの参照フィールドへノード・レコードを設定する。
func resolveRefs(nodes []*model.Node, p pendingRecord) error {
	fields := p.record.ReferenceFields()
	for name, ref := range p.refs {
		field, ok := findField(fields, name)
		if !ok {
			return io_common.NewIoParseFailed("未対応の参照フィールドです: kind=%s field=%s", nil, p.record.Kind(), name)
		}
		switch field.Category {
		case model.ReferenceCategoryNode:
			if ref.Node == nil {
				field.SetNode(nil)
				continue
			}
			node, err := nodeAt(nodes, *ref.Node)
			if err != nil {
				return err
			}
			field.SetNode(node)
		case model.ReferenceCategoryNodeList:
			resolved := make([]*model.Node, 0, len(ref.Nodes))
			for _, index := range ref.Nodes {
				node, err := nodeAt(nodes, index)
				if err != nil {
					return err
				}
				resolved = append(resolved, node)
			}
			field.SetNodes(resolved)
		case model.ReferenceCategoryRecordList:
			resolved := make([]model.IRecord, 0, len(ref.Records))
			for _, recordRef := range ref.Records {
				owner, err := nodeAt(nodes, recordRef.Node)
				if err != nil {
					return err
				}
				kind, ok := model.ParseRecordKind(recordRef.Kind)
				if !ok {
					return io_common.NewIoParseFailed("未対応のレコード種別です: field=%s kind=%s", nil, name, recordRef.Kind)
				}
				if field.RecordKind != "" && kind != field.RecordKind {
					return io_common.NewIoParseFailed(
						"参照先レコードの種別が不正です: field=%s kind=%s expected=%s", nil, name, kind, field.RecordKind)
				}
				record, ok := owner.RecordOf(kind, recordRef.Index)
				if !ok {
					return io_common.NewIoParseFailed(
						"参照先レコードが見つかりません: field=%s node=%s kind=%s index=%d",
						nil, name, owner.Name, kind, recordRef.Index)
				}
				resolved = append(resolved, record)
			}
			field.SetRecords(resolved)
		}
	}
	return nil
}

// findField は名前一致する参照フィールドを返す。
func findField(fields []model.ReferenceField, name string) (model.ReferenceField, bool) {
	for _, field := range fields {
		if field.Name == name {
			return field, true
		}
	}
	return model.ReferenceField{}, false
}

// nodeAt はインデックス範囲を検査してノードを返す。
func nodeAt(nodes []*model.Node, index int) (*model.Node, error) {
	if index < 0 || index >= len(nodes) {
		return nil, io_common.NewIoParseFailed("node index が不正です: %d", nil, index)
	}
	return nodes[index], nil
}

// buildDocument はノードツリーを行きがけ順の文書へ変換する。
func buildDocument(scene *model.Scene) (*sceneDocument, error) {
	nodes := scene.Root.Descendants()
	indexes := make(map[*model.Node]int, len(nodes))
	for i, node := range nodes {
		indexes[node] = i
	}

	doc := &sceneDocument{Name: scene.Name, Nodes: make([]nodeDocument, 0, len(nodes))}
	for i, node := range nodes {
		parent := -1
		if i > 0 {
			parent = indexes[node.Parent()]
		}
		rotation := node.Rotation
		scale := node.Scale
		nodeDoc := nodeDocument{
			Name:      node.Name,
			Parent:    parent,
			Position:  node.Position,
			Rotation:  &rotation,
			Scale:     &scale,
			HumanBone: string(node.HumanBone),
		}
		for _, record := range node.Records() {
			recordDoc, err := buildRecordDocument(record, indexes)
			if err != nil {
				return nil, err
			}
			nodeDoc.Records = append(nodeDoc.Records, recordDoc)
		}
		doc.Nodes = append(doc.Nodes, nodeDoc)
	}
	return doc, nil
}

// buildRecordDocument はレコード1件を文書へ変換する。ツリー外を指す参照はエラーとする。
func buildRecordDocument(record model.IRecord, indexes map[*model.Node]int) (recordDocument, error) {
	params, err := json.Marshal(record.ParamsRef())
	if err != nil {
		return recordDocument{}, io_common.NewIoSaveFailed("レコードパラメータの生成に失敗しました: kind=%s", err, record.Kind())
	}
	recordDoc := recordDocument{Kind: string(record.Kind()), Params: params}

	refs := map[string]refDocument{}
	for _, field := range record.ReferenceFields() {
		switch field.Category {
		case model.ReferenceCategoryNode:
			node := field.Node()
			if node == nil {
				continue
			}
			index, ok := indexes[node]
			if !ok {
				return recordDocument{}, outsideReferenceError(record, field.Name, node.Name)
			}
			refs[field.Name] = refDocument{Node: &index}
		case model.ReferenceCategoryNodeList:
			fieldNodes := field.Nodes()
			if len(fieldNodes) == 0 {
				continue
			}
			ref := refDocument{Nodes: make([]int, 0, len(fieldNodes))}
			for _, node := range fieldNodes {
				index, ok := indexes[node]
				if !ok {
					return recordDocument{}, outsideReferenceError(record, field.Name, node.Name)
				}
				ref.Nodes = append(ref.Nodes, index)
			}
			refs[field.Name] = ref
		case model.ReferenceCategoryRecordList:
			fieldRecords := field.Records()
			if len(fieldRecords) == 0 {
				continue
			}
			ref := refDocument{Records: make([]recordRefDocument, 0, len(fieldRecords))}
			for _, target := range fieldRecords {
				index, ok := indexes[target.Owner()]
				ordinal := model.RecordOrdinal(target)
				if !ok || ordinal < 0 {
					return recordDocument{}, outsideReferenceError(record, field.Name, string(target.Kind()))
				}
				ref.Records = append(ref.Records, recordRefDocument{Node: index, Kind: string(target.Kind()), Index: ordinal})
			}
			refs[field.Name] = ref
		}
	}
	if len(refs) > 0 {
		recordDoc.Refs = refs
	}
	return recordDoc, nil
}

func outsideReferenceError(record model.IRecord, field string, target string) error {
	return io_common.NewIoSaveFailed(
		"ツリー外を指す参照は保存できません: kind=%s field=%s target=%s", nil, record.Kind(), field, target)
}

// logSceneInfo はシーン入出力のINFOログを出力する。
func logSceneInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}

// logSceneWarn はシーン入出力の警告ログを出力する。
func logSceneWarn(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Warn(format, params...)
}
