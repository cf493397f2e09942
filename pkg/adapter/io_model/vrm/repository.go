// 指示: miu200521358
package vrm

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/miu200521358/mu_physmigrate/pkg/adapter/io_common"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/mmath"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
	"github.com/miu200521358/mu_physmigrate/pkg/shared/base/logging"
)

const (
	glbHeaderLength   = 12
	glbChunkHeadSize  = 8
	glbMagic          = 0x46546C67
	glbJSONChunkType  = 0x4E4F534A
	glbMinValidLength = glbHeaderLength + glbChunkHeadSize
)

// LoadProgressEventType はVRM読込進捗イベント種別を表す。
type LoadProgressEventType string

const (
	// LoadProgressEventTypeFileReadComplete はファイル読込完了イベントを表す。
	LoadProgressEventTypeFileReadComplete LoadProgressEventType = "file_read_complete"
	// LoadProgressEventTypeJsonParsed はJSON解析完了イベントを表す。
	LoadProgressEventTypeJsonParsed LoadProgressEventType = "json_parsed"
	// LoadProgressEventTypeCompleted はVRM読込完了イベントを表す。
	LoadProgressEventTypeCompleted LoadProgressEventType = "completed"
)

// LoadProgressEvent はVRM読込進捗イベントを表す。
type LoadProgressEvent struct {
	Type          LoadProgressEventType
	FileSizeBytes int
	NodeCount     int
	ColliderCount int
	SpringCount   int
}

// VrmRepository はVRM入力の読み込み契約を表す。書き込みは扱わない。
type VrmRepository struct {
	loadProgressReporter func(LoadProgressEvent)
}

// NewVrmRepository はVrmRepositoryを生成する。
func NewVrmRepository() *VrmRepository {
	return &VrmRepository{}
}

// SetLoadProgressReporter はVRM読込進捗受信コールバックを設定する。
func (r *VrmRepository) SetLoadProgressReporter(reporter func(LoadProgressEvent)) {
	if r == nil {
		return
	}
	r.loadProgressReporter = reporter
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *VrmRepository) CanLoad(path string) bool {
	ext := filepath.Ext(path)
	return strings.EqualFold(ext, ".vrm") || strings.EqualFold(ext, ".glb")
}

// InferName はパスから表示名を推定する。
func (r *VrmRepository) InferName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// Load はVRMを読み込み、ノードツリー・人型ロール・スプリングボーン記述を持つシーンを返す。
func (r *VrmRepository) Load(path string) (*model.Scene, error) {
	if !r.CanLoad(path) {
		return nil, io_common.NewIoExtInvalid(path, nil)
	}
	loadTargetName := filepath.Base(path)
	logVrmInfo("VRM読込開始: file=%s", loadTargetName)

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, io_common.NewIoFileNotFound(path, err)
		}
		return nil, io_common.NewIoParseFailed("VRMファイルの読み取りに失敗しました", err)
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:          LoadProgressEventTypeFileReadComplete,
		FileSizeBytes: len(b),
	})
	logVrmStep("VRM読込ステップ: ファイル読み取り完了 bytes=%d", len(b))

	jsonChunk, err := parseGLBJSONChunk(b)
	if err != nil {
		return nil, err
	}

	doc := gltfDocument{}
	if err := json.Unmarshal(jsonChunk, &doc); err != nil {
		return nil, io_common.NewIoParseFailed("VRM JSONチャンクの解析に失敗しました", err)
	}
	if err := checkVrmVersion(&doc); err != nil {
		return nil, err
	}
	springExt, err := parseSpringBoneExtension(doc.Extensions)
	if err != nil {
		return nil, err
	}
	colliderCount, springCount := 0, 0
	if springExt != nil {
		colliderCount = len(springExt.Colliders)
		springCount = len(springExt.Springs)
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:          LoadProgressEventTypeJsonParsed,
		FileSizeBytes: len(b),
		NodeCount:     len(doc.Nodes),
		ColliderCount: colliderCount,
		SpringCount:   springCount,
	})
	logVrmStep(
		"VRM読込ステップ: JSON解析完了 nodes=%d colliders=%d springs=%d",
		len(doc.Nodes),
		colliderCount,
		springCount,
	)

	parentIndexes, err := buildNodeParentIndexes(doc.Nodes)
	if err != nil {
		return nil, err
	}
	scene, nodes, err := buildSceneTree(&doc, parentIndexes, r.InferName(path))
	if err != nil {
		return nil, err
	}
	if err := applyHumanoid(doc.Extensions, nodes); err != nil {
		return nil, err
	}
	if err := applySpringBones(springExt, scene.Root, nodes); err != nil {
		return nil, err
	}
	scene.SetPath(path)

	r.reportLoadProgress(LoadProgressEvent{
		Type:          LoadProgressEventTypeCompleted,
		FileSizeBytes: len(b),
		NodeCount:     len(doc.Nodes),
		ColliderCount: colliderCount,
		SpringCount:   springCount,
	})
	logVrmInfo("VRM読込完了: file=%s nodes=%d springs=%d", loadTargetName, scene.NodeCount(), springCount)
	return scene, nil
}

// reportLoadProgress は読込進捗イベントを通知する。
func (r *VrmRepository) reportLoadProgress(event LoadProgressEvent) {
	if r == nil || r.loadProgressReporter == nil {
		return
	}
	r.loadProgressReporter(event)
}

// logVrmInfo はVRM読込のINFOログを出力する。
func logVrmInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}

// logVrmStep はVRM読込の進捗デバッグログを出力する。
func logVrmStep(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
}

// logVrmWarn はVRM読込の警告ログを出力する。
func logVrmWarn(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Warn(format, params...)
}

// gltfDocument はVRM読込時に必要なglTFトップレベル要素を表す。
type gltfDocument struct {
	Asset          gltfAsset                  `json:"asset"`
	ExtensionsUsed []string                   `json:"extensionsUsed"`
	Nodes          []gltfNode                 `json:"nodes"`
	Extensions     map[string]json.RawMessage `json:"extensions"`
	Scenes         []gltfScene                `json:"scenes"`
	Scene          int                        `json:"scene"`
}

// gltfAsset はglTF asset要素を表す。
type gltfAsset struct {
	Version   string `json:"version"`
	Generator string `json:"generator"`
}

// gltfScene はglTF scene要素を表す。
type gltfScene struct {
	Nodes []int `json:"nodes"`
}

// gltfNode はglTF node要素を表す。
type gltfNode struct {
	Name        string    `json:"name"`
	Children    []int     `json:"children"`
	Matrix      []float64 `json:"matrix"`
	Translation []float64 `json:"translation"`
	Rotation    []float64 `json:"rotation"`
	Scale       []float64 `json:"scale"`
}

// vrm1Extension はVRM1拡張の必要要素を表す。
type vrm1Extension struct {
	SpecVersion string       `json:"specVersion"`
	Humanoid    vrm1Humanoid `json:"humanoid"`
}

// vrm1Humanoid はVRM1 humanoid要素を表す。
type vrm1Humanoid struct {
	HumanBones map[string]vrm1HumanBone `json:"humanBones"`
}

// vrm1HumanBone はVRM1 humanBones要素を表す。
type vrm1HumanBone struct {
	Node *int `json:"node"`
}

// parseGLBJSONChunk はGLBバイナリからJSONチャンクを取り出す。
func parseGLBJSONChunk(b []byte) ([]byte, error) {
	if len(b) < glbMinValidLength {
		return nil, io_common.NewIoParseFailed("VRMヘッダが不足しています", nil)
	}
	magic := binary.LittleEndian.Uint32(b[0:4])
	if magic != glbMagic {
		return nil, io_common.NewIoParseFailed("GLBマジックが不正です", nil)
	}
	version := binary.LittleEndian.Uint32(b[4:8])
	if version != 2 {
		return nil, io_common.NewIoFormatNotSupported("GLBバージョンが未対応です: %d", nil, version)
	}
	totalLength := binary.LittleEndian.Uint32(b[8:12])
	if totalLength > uint32(len(b)) {
		return nil, io_common.NewIoParseFailed("GLB全体長が不正です", nil)
	}

	offset := glbHeaderLength
	for offset+glbChunkHeadSize <= len(b) {
		chunkLength := int(binary.LittleEndian.Uint32(b[offset : offset+4]))
		chunkType := binary.LittleEndian.Uint32(b[offset+4 : offset+8])
		chunkStart := offset + glbChunkHeadSize
		chunkEnd := chunkStart + chunkLength
		if chunkLength < 0 || chunkEnd > len(b) {
			return nil, io_common.NewIoParseFailed("GLBチャンク長が不正です", nil)
		}
		if chunkType == glbJSONChunkType {
			return b[chunkStart:chunkEnd], nil
		}
		offset = chunkEnd
	}
	return nil, io_common.NewIoParseFailed("GLB JSONチャンクが見つかりません", nil)
}

// buildNodeParentIndexes はnode配列から親インデックス配列を生成する。
func buildNodeParentIndexes(nodes []gltfNode) ([]int, error) {
	parentIndexes := make([]int, len(nodes))
	for i := range parentIndexes {
		parentIndexes[i] = -1
	}
	for parentIndex, node := range nodes {
		for _, childIndex := range node.Children {
			if childIndex < 0 || childIndex >= len(nodes) {
				return nil, io_common.NewIoParseFailed("node.children のindexが不正です: %d", nil, childIndex)
			}
			if childIndex == parentIndex {
				return nil, io_common.NewIoParseFailed("node親子関係に循環があります: %d", nil, childIndex)
			}
			if parentIndexes[childIndex] == -1 {
				parentIndexes[childIndex] = parentIndex
			}
		}
	}
	return parentIndexes, nil
}

// buildSceneTree はglTFノードからシーンを構築する。最上位ノードはファイル名のルート直下へ並べる。
func buildSceneTree(doc *gltfDocument, parents []int, name string) (*model.Scene, []*model.Node, error) {
	scene := model.NewScene(name)
	nodes := make([]*model.Node, len(doc.Nodes))
	for i, gltf := range doc.Nodes {
		node := model.NewNode(resolveNodeName(i, gltf.Name))
		position, rotation, scale, err := nodeLocalTransform(gltf)
		if err != nil {
			return nil, nil, err
		}
		node.Position = position
		node.Rotation = rotation
		node.Scale = scale
		nodes[i] = node
	}

	state := make([]int, len(nodes))
	var attach func(index int) error
	attach = func(index int) error {
		if state[index] == 2 {
			return nil
		}
		if state[index] == 1 {
			return io_common.NewIoParseFailed("node親子関係に循環があります: %d", nil, index)
		}
		state[index] = 1
		parent := scene.Root
		if parents[index] >= 0 {
			if err := attach(parents[index]); err != nil {
				return err
			}
			parent = nodes[parents[index]]
		}
		state[index] = 2
		parent.AddChild(nodes[index])
		return nil
	}
	for _, index := range rootOrder(doc, parents) {
		if err := attach(index); err != nil {
			return nil, nil, err
		}
	}
	for index := range nodes {
		if err := attach(index); err != nil {
			return nil, nil, err
		}
	}
	// 子の並びはglTFの children 順に揃える。
	for i, gltf := range doc.Nodes {
		for _, child := range gltf.Children {
			if parents[child] == i {
				nodes[i].AddChild(nodes[child])
			}
		}
	}
	return scene, nodes, nil
}

// rootOrder は最上位ノードを既定シーンの宣言順、残りをインデックス順で返す。
func rootOrder(doc *gltfDocument, parents []int) []int {
	order := make([]int, 0)
	seen := map[int]bool{}
	if doc.Scene >= 0 && doc.Scene < len(doc.Scenes) {
		for _, index := range doc.Scenes[doc.Scene].Nodes {
			if index >= 0 && index < len(parents) && parents[index] < 0 && !seen[index] {
				order = append(order, index)
				seen[index] = true
			}
		}
	}
	for index, parent := range parents {
		if parent < 0 && !seen[index] {
			order = append(order, index)
			seen[index] = true
		}
	}
	return order
}

// resolveNodeName はnode名からノード名を決定する。空の場合は連番名を使う。
func resolveNodeName(nodeIndex int, nodeName string) string {
	trimmed := strings.TrimSpace(nodeName)
	if trimmed != "" {
		return trimmed
	}
	return fmt.Sprintf("node_%03d", nodeIndex)
}

// nodeLocalTransform はnode要素からローカル変換を取り出す。matrix 指定時は分解する。
func nodeLocalTransform(node gltfNode) (mmath.Vec3, mmath.Quaternion, mmath.Vec3, error) {
	if len(node.Matrix) > 0 {
		if len(node.Matrix) != 16 {
			return mmath.ZERO_VEC3, mmath.NewQuaternion(), mmath.ONE_VEC3,
				io_common.NewIoParseFailed("node.matrix の要素数が不正です: %d", nil, len(node.Matrix))
		}
		var values [16]float64
		copy(values[:], node.Matrix)
		mat := mmath.NewMat4FromValues(values)
		return mat.Translation(), mat.Rotation(), mat.Scale(), nil
	}

	translation, err := parseVec3(node.Translation, mmath.ZERO_VEC3, "node.translation")
	if err != nil {
		return mmath.ZERO_VEC3, mmath.NewQuaternion(), mmath.ONE_VEC3, err
	}
	scale, err := parseVec3(node.Scale, mmath.ONE_VEC3, "node.scale")
	if err != nil {
		return mmath.ZERO_VEC3, mmath.NewQuaternion(), mmath.ONE_VEC3, err
	}
	rotation, err := parseQuaternion(node.Rotation)
	if err != nil {
		return mmath.ZERO_VEC3, mmath.NewQuaternion(), mmath.ONE_VEC3, err
	}
	return translation, rotation, scale, nil
}

// parseVec3 はスライスをVec3へ変換する。
func parseVec3(values []float64, defaultValue mmath.Vec3, label string) (mmath.Vec3, error) {
	if len(values) == 0 {
		return defaultValue, nil
	}
	if len(values) != 3 {
		return mmath.ZERO_VEC3, io_common.NewIoParseFailed("%s の要素数が不正です: %d", nil, label, len(values))
	}
	return mmath.Vec3{Vec: r3.Vec{X: values[0], Y: values[1], Z: values[2]}}, nil
}

// parseQuaternion はスライスをQuaternionへ変換する。
func parseQuaternion(values []float64) (mmath.Quaternion, error) {
	if len(values) == 0 {
		return mmath.NewQuaternion(), nil
	}
	if len(values) != 4 {
		return mmath.NewQuaternion(), io_common.NewIoParseFailed("node.rotation の要素数が不正です: %d", nil, len(values))
	}
	return mmath.NewQuaternionByValues(values[0], values[1], values[2], values[3]).Normalized(), nil
}

// checkVrmVersion は拡張宣言を確認し、VRM1以外を未対応として返す。
func checkVrmVersion(doc *gltfDocument) error {
	hasVrm1 := containsIgnoreCase(doc.ExtensionsUsed, "VRMC_vrm")
	hasVrm0 := containsIgnoreCase(doc.ExtensionsUsed, "VRM")
	if doc.Extensions != nil {
		if _, ok := doc.Extensions["VRMC_vrm"]; ok {
			hasVrm1 = true
		}
		if _, ok := doc.Extensions["VRM"]; ok {
			hasVrm0 = true
		}
	}

	// VRM0/1 同時宣言時は VRM1 を優先する。
	if hasVrm1 {
		return nil
	}
	if hasVrm0 {
		return io_common.NewIoFormatNotSupported("VRM0 は未対応です", nil)
	}
	return io_common.NewIoFormatNotSupported("VRM拡張が見つかりません", nil)
}

// containsIgnoreCase は大文字小文字を無視して要素を検索する。
func containsIgnoreCase(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(value, target) {
			return true
		}
	}
	return false
}

// applyHumanoid はVRMC_vrm の humanBones を各ノードの人型ロールへ設定する。
func applyHumanoid(extensions map[string]json.RawMessage, nodes []*model.Node) error {
	raw, ok := extensions["VRMC_vrm"]
	if !ok {
		return nil
	}
	ext := vrm1Extension{}
	if err := json.Unmarshal(raw, &ext); err != nil {
		return io_common.NewIoParseFailed("VRM1拡張のJSON解析に失敗しました", err)
	}
	for key, bone := range ext.Humanoid.HumanBones {
		if bone.Node == nil {
			continue
		}
		if *bone.Node < 0 || *bone.Node >= len(nodes) {
			return io_common.NewIoParseFailed("humanBones のnode indexが不正です: %s=%d", nil, key, *bone.Node)
		}
		role, ok := model.ParseHumanBone(key)
		if !ok {
			logVrmWarn("未対応の人型ロールを無視しました: %s", key)
			continue
		}
		nodes[*bone.Node].HumanBone = role
	}
	return nil
}
