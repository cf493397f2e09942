// 指示: miu200521358
package minteractor

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCorrespondenceExampleA(t *testing.T) {
	sourceRoot := addNode(nil, "Root", "")
	a := addNode(sourceRoot, "Bone1", model.HumanBoneHips)
	b := addNode(sourceRoot, "Bone2", "")

	destRoot := addNode(nil, "Root", "")
	x := addNode(destRoot, "X", model.HumanBoneHips)
	y := addNode(destRoot, "Bone2", "")

	mapping, unresolved := BuildCorrespondence(sourceRoot, destRoot, model.BuildRoleTable(sourceRoot), model.BuildRoleTable(destRoot))

	assert.Empty(t, unresolved)
	assert.Equal(t, 3, mapping.Len())
	for source, want := range map[*model.Node]*model.Node{sourceRoot: destRoot, a: x, b: y} {
		got, ok := mapping.Get(source)
		require.True(t, ok, "missing mapping for %s", source.Name)
		assert.Same(t, want, got, "mapping mismatch for %s", source.Name)
	}
	origin, _ := mapping.Origin(a)
	assert.Equal(t, MatchOriginRole, origin)
}

func TestBuildCorrespondenceRoleOutranksName(t *testing.T) {
	sourceRoot := addNode(nil, "Root", "")
	a := addNode(sourceRoot, "Foo", model.HumanBoneHips)
	addNode(sourceRoot, "Foo2", "")

	destRoot := addNode(nil, "Root", "")
	x := addNode(destRoot, "X", model.HumanBoneHips)
	y := addNode(destRoot, "Foo", "")

	mapping, _ := BuildCorrespondence(sourceRoot, destRoot, model.BuildRoleTable(sourceRoot), model.BuildRoleTable(destRoot))

	got, ok := mapping.Get(a)
	require.True(t, ok)
	assert.Same(t, x, got)
	assert.NotSame(t, y, got)
}

func TestBuildCorrespondenceRootAlwaysMapped(t *testing.T) {
	sourceRoot := addNode(nil, "SourceRoot", "")
	addNode(sourceRoot, "Only", "")
	destRoot := addNode(nil, "DestRoot", "")

	mapping, unresolved := BuildCorrespondence(sourceRoot, destRoot, nil, nil)

	got, ok := mapping.Get(sourceRoot)
	require.True(t, ok)
	assert.Same(t, destRoot, got)
	assert.Equal(t, []string{"Only"}, nodeNames(unresolved))
}

func TestBuildCorrespondenceNameIndexFirstWins(t *testing.T) {
	sourceRoot := addNode(nil, "Root", "")
	hair := addNode(sourceRoot, "Hair", "")

	destRoot := addNode(nil, "Root", "")
	head := addNode(destRoot, "Head", "")
	first := addNode(head, "Hair", "")
	addNode(destRoot, "Hair", "")

	mapping, _ := BuildCorrespondence(sourceRoot, destRoot, nil, nil)

	got, ok := mapping.Get(hair)
	require.True(t, ok)
	assert.Same(t, first, got, spew.Sdump(nodeNames(destRoot.Descendants())))
}

func TestBuildCorrespondenceSkipsRolesForNonHumanoid(t *testing.T) {
	logger := useBufferLogger(t)

	sourceRoot := addNode(nil, "Root", "")
	addNode(sourceRoot, "Bone", model.HumanBoneHips)
	destRoot := addNode(nil, "Root", "")
	addNode(destRoot, "Other", "")

	mapping, unresolved := BuildCorrespondence(sourceRoot, destRoot, model.BuildRoleTable(sourceRoot), model.BuildRoleTable(destRoot))

	assert.Equal(t, 1, mapping.Len())
	assert.Equal(t, []string{"Bone"}, nodeNames(unresolved))
	assert.NotEmpty(t, logger.MessageBuffer().Lines())
}

func TestCorrespondenceMapWriteOnce(t *testing.T) {
	source := addNode(nil, "S", "")
	first := addNode(nil, "D1", "")
	second := addNode(nil, "D2", "")

	mapping := NewCorrespondenceMap()
	assert.True(t, mapping.Put(source, first, MatchOriginRole))
	assert.False(t, mapping.Put(source, second, MatchOriginName))

	got, _ := mapping.Get(source)
	assert.Same(t, first, got)
	assert.Equal(t, map[MatchOrigin]int{MatchOriginRole: 1}, mapping.CountByOrigin())
	assert.Equal(t, []*model.Node{source}, mapping.Sources())
}

func TestBuildCorrespondenceUsesCallerRoleTables(t *testing.T) {
	sourceRoot := addNode(nil, "Root", "")
	a := addNode(sourceRoot, "Foo", "")
	tail := addNode(a, "TailBase", "")

	destRoot := addNode(nil, "Root", "")
	addNode(destRoot, "Foo", "")
	x := addNode(destRoot, "X", "")
	tailDest := addNode(x, "Tail0", "")

	sourceRoles := model.RoleTable{"Hips": a, "TailRoot": tail}
	destRoles := model.RoleTable{"hips": x, "TailRoot": tailDest}
	mapping, unresolved := BuildCorrespondence(sourceRoot, destRoot, sourceRoles, destRoles)

	assert.Empty(t, unresolved)
	got, ok := mapping.Get(a)
	require.True(t, ok)
	assert.Same(t, x, got, "caller role must outrank the name match: %s", spew.Sdump(sourceRoles))
	got, ok = mapping.Get(tail)
	require.True(t, ok)
	assert.Same(t, tailDest, got)
	origin, _ := mapping.Origin(tail)
	assert.Equal(t, MatchOriginRole, origin)
}
