// 指示: miu200521358
package prebuild

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
)

func TestFileStoreWritesUnderBaseDir(t *testing.T) {
	base := t.TempDir()
	store := NewFileStore(base)

	require.NoError(t, store.EnsureFolder(filepath.Join("Assets", "MagicaPreBuildData", "Avatar")))
	info, err := os.Stat(filepath.Join(base, "Assets", "MagicaPreBuildData", "Avatar"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	path := filepath.Join("Assets", "Other", "PreBuild_Skirt_abcd1234.asset")
	require.NoError(t, store.Write(path, []byte("data")))
	b, err := os.ReadFile(filepath.Join(base, path))
	require.NoError(t, err)
	assert.Equal(t, "data", string(b))
}

func TestFileStoreAbsolutePathIgnoresBaseDir(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "blob.asset")
	store := NewFileStore("unused")
	require.NoError(t, store.Write(abs, []byte("x")))
	_, err := os.Stat(abs)
	require.NoError(t, err)
}

func TestBlobBuilderBuildsYaml(t *testing.T) {
	root := model.NewNode("Avatar")
	skirt := root.AddChild(model.NewNode("Skirt"))
	bone := skirt.AddChild(model.NewNode("SkirtBone"))
	sphere := model.NewSphereCollider()
	root.AddRecord(sphere)

	cloth := model.NewCloth()
	cloth.RootBones = []*model.Node{bone}
	cloth.Colliders = []model.IRecord{sphere}
	skirt.AddRecord(cloth)

	data, err := NewBlobBuilder().BuildPreBuildData(cloth)
	require.NoError(t, err)

	doc := blobDocument{}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, blobFormatVersion, doc.Version)
	assert.Equal(t, "Avatar/Skirt", doc.Owner)
	assert.Equal(t, "BoneCloth", doc.ClothType)
	assert.Equal(t, []string{"Avatar/Skirt/SkirtBone"}, doc.RootBones)
	assert.Equal(t, []string{"Avatar#sphereCollider[0]"}, doc.Colliders)
	assert.Empty(t, doc.SourceRenderers)
}

func TestBlobBuilderRejectsClothWithoutRootBones(t *testing.T) {
	node := model.NewNode("Skirt")
	cloth := model.NewCloth()
	node.AddRecord(cloth)

	_, err := NewBlobBuilder().BuildPreBuildData(cloth)
	assert.Error(t, err)

	_, err = NewBlobBuilder().BuildPreBuildData(model.NewCloth())
	assert.Error(t, err)
}
