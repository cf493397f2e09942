// 指示: miu200521358
package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miu200521358/mu_physmigrate/pkg/adapter/io_common"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/mmath"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
	"github.com/miu200521358/mu_physmigrate/pkg/usecase/port/moutput"
)

// newSpringScene は参照を含むテスト用シーンを生成する。
func newSpringScene() *model.Scene {
	scene := model.NewScene("Avatar")
	hips := scene.Root.AddChild(model.NewNode("Hips"))
	hips.HumanBone = model.HumanBoneHips
	hips.Position = mmath.NewVec3ByValues(0, 1, 0)
	head := hips.AddChild(model.NewNode("Head"))
	head.HumanBone = model.HumanBoneHead
	hair := head.AddChild(model.NewNode("Hair"))
	hair.Scale = mmath.NewVec3ByValues(2, 2, 2)

	group := model.NewColliderGroup()
	group.Name = "HeadGroup"
	group.Shapes = []model.SphereShape{{Offset: mmath.NewVec3ByValues(0, 0.1, 0), Radius: 0.2}}
	group.ColliderNodes = []*model.Node{head}
	head.AddRecord(group)

	spring := model.NewSpringBone()
	spring.Comment = "hair"
	spring.Stiffness = 0.75
	spring.RootBones = []*model.Node{hair}
	spring.ColliderGroups = []model.IRecord{group}
	spring.Center = hips
	scene.Root.AddRecord(spring)
	return scene
}

func TestSceneRepositoryCanLoad(t *testing.T) {
	r := NewSceneRepository()
	assert.True(t, r.CanLoad("a.json"))
	assert.True(t, r.CanLoad("a.YAML"))
	assert.True(t, r.CanLoad("a.yml"))
	assert.False(t, r.CanLoad("a.vrm"))
	assert.Equal(t, "avatar", r.InferName("/tmp/avatar.json"))
}

func TestSceneRepositoryRoundTrip(t *testing.T) {
	for _, ext := range []string{".json", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", "avatar"+ext)
			r := NewSceneRepository()
			require.NoError(t, r.Save(path, newSpringScene(), moutput.SaveOptions{}))

			loaded, err := r.Load(path)
			require.NoError(t, err)
			assert.Equal(t, "Avatar", loaded.Name)
			assert.Equal(t, path, loaded.Path)
			assert.Equal(t, 4, loaded.NodeCount())

			hips := loaded.Root.FindChild("Hips")
			require.NotNil(t, hips)
			head := hips.FindChild("Head")
			require.NotNil(t, head)
			hair := head.FindChild("Hair")
			require.NotNil(t, hair)
			assert.Equal(t, model.HumanBoneHips, hips.HumanBone)
			assert.True(t, hips.Position.NearEquals(mmath.NewVec3ByValues(0, 1, 0), 1e-9))
			assert.True(t, hair.Scale.NearEquals(mmath.NewVec3ByValues(2, 2, 2), 1e-9))

			springs := loaded.Root.RecordsOf(model.RecordKindSpringBone)
			require.Len(t, springs, 1)
			spring := springs[0].(*model.SpringBone)
			assert.Equal(t, "hair", spring.Comment)
			assert.InDelta(t, 0.75, spring.Stiffness, 1e-9)
			assert.Same(t, hips, spring.Center)
			require.Len(t, spring.RootBones, 1)
			assert.Same(t, hair, spring.RootBones[0])

			groups := head.RecordsOf(model.RecordKindColliderGroup)
			require.Len(t, groups, 1)
			require.Len(t, spring.ColliderGroups, 1)
			assert.Same(t, groups[0], spring.ColliderGroups[0])
			group := groups[0].(*model.ColliderGroup)
			assert.Equal(t, "HeadGroup", group.Name)
			require.Len(t, group.Shapes, 1)
			assert.InDelta(t, 0.2, group.Shapes[0].Radius, 1e-9)
			require.Len(t, group.ColliderNodes, 1)
			assert.Same(t, head, group.ColliderNodes[0])
		})
	}
}

func TestSceneRepositoryLoadYamlDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avatar.yaml")
	content := `
nodes:
  - name: Root
    parent: -1
  - name: Hips
    parent: 0
    humanBone: Hips
    position: [0, 1, 0]
    records:
      - kind: sphereCollider
        params:
          radius: 0.5
      - kind: cloth
        refs:
          rootBones:
            nodes: [1]
          colliders:
            records:
              - {node: 1, kind: sphereCollider, index: 0}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loaded, err := NewSceneRepository().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "avatar", loaded.Name)
	hips := loaded.Root.FindChild("Hips")
	require.NotNil(t, hips)
	assert.Equal(t, model.HumanBoneHips, hips.HumanBone)
	assert.True(t, hips.Scale.NearEquals(mmath.ONE_VEC3, 1e-9))

	spheres := hips.RecordsOf(model.RecordKindSphereCollider)
	require.Len(t, spheres, 1)
	assert.InDelta(t, 0.5, spheres[0].(*model.SphereCollider).Radius, 1e-9)

	cloths := hips.RecordsOf(model.RecordKindCloth)
	require.Len(t, cloths, 1)
	cloth := cloths[0].(*model.Cloth)
	// params 省略時は既定値が残る。
	assert.Equal(t, "BoneCloth", cloth.ClothType)
	require.Len(t, cloth.Colliders, 1)
	assert.Same(t, spheres[0], cloth.Colliders[0])
	require.Len(t, cloth.RootBones, 1)
	assert.Same(t, hips, cloth.RootBones[0])
}

func TestSceneRepositoryLoadErrors(t *testing.T) {
	cases := map[string]string{
		"forward parent":    `{"nodes":[{"name":"Root","parent":-1},{"name":"A","parent":2},{"name":"B","parent":0}]}`,
		"root not first":    `{"nodes":[{"name":"Root","parent":0}]}`,
		"empty":             `{"nodes":[]}`,
		"unknown kind":      `{"nodes":[{"name":"Root","parent":-1,"records":[{"kind":"rigidBody"}]}]}`,
		"unknown field":     `{"nodes":[{"name":"Root","parent":-1,"records":[{"kind":"springBone","refs":{"joints":{"nodes":[0]}}}]}]}`,
		"missing record":    `{"nodes":[{"name":"Root","parent":-1,"records":[{"kind":"springBone","refs":{"colliderGroups":{"records":[{"node":0,"kind":"colliderGroup","index":0}]}}}]}]}`,
		"undeclared kind":   `{"nodes":[{"name":"Root","parent":-1,"records":[{"kind":"sphereCollider"},{"kind":"springBone","refs":{"colliderGroups":{"records":[{"node":0,"kind":"sphereCollider","index":0}]}}}]}]}`,
		"node out of range": `{"nodes":[{"name":"Root","parent":-1,"records":[{"kind":"springBone","refs":{"center":{"node":3}}}]}]}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "broken.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := NewSceneRepository().Load(path)
			if !io_common.IsIoErrorKind(err, io_common.IoErrorKindParseFailed) {
				t.Fatalf("expected parse failed error, got %v", err)
			}
		})
	}
}

func TestSceneRepositoryLoadMissingFile(t *testing.T) {
	_, err := NewSceneRepository().Load(filepath.Join(t.TempDir(), "none.json"))
	if !io_common.IsIoErrorKind(err, io_common.IoErrorKindFileNotFound) {
		t.Fatalf("expected file not found error, got %v", err)
	}
	_, err = NewSceneRepository().Load("avatar.vrm")
	if !io_common.IsIoErrorKind(err, io_common.IoErrorKindExtInvalid) {
		t.Fatalf("expected ext invalid error, got %v", err)
	}
}

func TestSceneRepositorySaveRejectsOutsideReference(t *testing.T) {
	scene := model.NewScene("Avatar")
	outside := model.NewNode("Outside")
	spring := model.NewSpringBone()
	spring.Center = outside
	scene.Root.AddRecord(spring)

	err := NewSceneRepository().Save(filepath.Join(t.TempDir(), "a.json"), scene, moutput.SaveOptions{})
	if !io_common.IsIoErrorKind(err, io_common.IoErrorKindSaveFailed) {
		t.Fatalf("expected save failed error, got %v", err)
	}
}

func TestSceneRepositorySaveFormatOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avatar.txt")
	r := NewSceneRepository()
	require.NoError(t, r.Save(path, newSpringScene(), moutput.SaveOptions{Format: "yml"}))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "name: Avatar")

	err = r.Save(filepath.Join(t.TempDir(), "avatar.txt"), newSpringScene(), moutput.SaveOptions{})
	if !io_common.IsIoErrorKind(err, io_common.IoErrorKindExtInvalid) {
		t.Fatalf("expected ext invalid error, got %v", err)
	}
}

func TestSceneRepositoryEncode(t *testing.T) {
	r := NewSceneRepository()
	b, err := r.Encode(newSpringScene(), "YML")
	require.NoError(t, err)
	assert.Contains(t, string(b), "name: Hair")

	_, err = r.Encode(newSpringScene(), "xml")
	if !io_common.IsIoErrorKind(err, io_common.IoErrorKindFormatNotSupported) {
		t.Fatalf("expected format not supported error, got %v", err)
	}
	_, err = r.Encode(nil, FormatJSON)
	if !io_common.IsIoErrorKind(err, io_common.IoErrorKindSaveFailed) {
		t.Fatalf("expected save failed error, got %v", err)
	}
}
