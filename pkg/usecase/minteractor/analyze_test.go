// 指示: miu200521358
package minteractor

import (
	"fmt"
	"testing"

	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeCountsWithoutMutation(t *testing.T) {
	sourceRoot := addNode(nil, "Root", "")
	hips := addNode(sourceRoot, "Hips", model.HumanBoneHips)
	hips.AddRecord(model.NewCapsuleCollider())
	hips.AddRecord(model.NewSphereCollider())
	addNode(hips, "Skirt", "").AddRecord(model.NewCloth())
	addNode(sourceRoot, "Hair", "").AddRecord(model.NewSpringBone())
	addNode(sourceRoot, "Hair", "")

	destRoot := addNode(nil, "Root", "")
	addNode(destRoot, "Hips", "")
	addNode(destRoot, "Spine", "")

	report := Analyze(sourceRoot, destRoot)

	assert.Equal(t, 5, report.SourceNodeCount)
	assert.Equal(t, 3, report.DestNodeCount)
	assert.Equal(t, 2, report.NameMatchCount)
	assert.InDelta(t, 0.4, report.NameMatchRate(), 1e-9)
	assert.Equal(t, []string{"Hair"}, report.DuplicateNames)
	assert.Equal(t, 1, report.RecordCounts[model.RecordKindCapsuleCollider])
	assert.Equal(t, 1, report.RecordCounts[model.RecordKindSphereCollider])
	assert.Equal(t, 0, report.RecordCounts[model.RecordKindPlaneCollider])
	assert.Equal(t, 1, report.RecordCounts[model.RecordKindCloth])
	assert.Equal(t, 1, report.RecordCounts[model.RecordKindSpringBone])
	assert.Len(t, destRoot.Children(), 2)
}

func TestAnalyzeEmptySource(t *testing.T) {
	report := Analyze(nil, nil)
	assert.Zero(t, report.NameMatchRate())
	assert.False(t, report.HasDuplicates())
}

func TestDuplicateNamesForDisplayLimit(t *testing.T) {
	root := addNode(nil, "Root", "")
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf("Dup%02d", i)
		addNode(root, name, "")
		addNode(root, name, "")
	}

	report := Analyze(root, nil)
	shown, rest := report.DuplicateNamesForDisplay(DuplicateDisplayLimit)

	assert.True(t, report.HasDuplicates())
	assert.Len(t, shown, 10)
	assert.Equal(t, "Dup00", shown[0])
	assert.Equal(t, 2, rest)
}
