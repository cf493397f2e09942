// 指示: miu200521358
package mpresenter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miu200521358/mu_physmigrate/pkg/domain/merrors"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
	"github.com/miu200521358/mu_physmigrate/pkg/usecase/minteractor"
)

func newPresenterForTest(t *testing.T, locale string) (*ReportPresenter, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	presenter, err := NewReportPresenter(buf, locale)
	require.NoError(t, err)
	return presenter, buf
}

func TestRenderAnalysisCapsDuplicateNames(t *testing.T) {
	names := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		names = append(names, fmt.Sprintf("Bone%02d", i))
	}
	report := &minteractor.AnalysisReport{
		SourceNodeCount: 4,
		DestNodeCount:   5,
		NameMatchCount:  3,
		DuplicateNames:  names,
		RecordCounts:    map[model.RecordKind]int{model.RecordKindCloth: 2},
	}

	presenter, buf := newPresenterForTest(t, "en")
	presenter.RenderAnalysis(report)
	out := buf.String()
	assert.Contains(t, out, "Name matches: 3/4 (75.0%)")
	assert.Contains(t, out, "Duplicate names: 12")
	assert.Contains(t, out, "- Bone09")
	assert.NotContains(t, out, "Bone10")
	assert.Contains(t, out, "...and 2 more")
	assert.Contains(t, out, "cloth: 2")
}

func TestRenderAnalysisJapaneseWithoutDuplicates(t *testing.T) {
	report := &minteractor.AnalysisReport{SourceNodeCount: 1, DestNodeCount: 1, RecordCounts: map[model.RecordKind]int{}}
	presenter, buf := newPresenterForTest(t, "ja")
	presenter.RenderAnalysis(report)
	assert.Contains(t, buf.String(), "重複名: なし")
	assert.Contains(t, buf.String(), "名前一致: 0/1 (0.0%)")
}

func TestRenderMigrationLog(t *testing.T) {
	source := model.NewNode("Src")
	hair := source.AddChild(model.NewNode("Hair"))
	hair.AddRecord(model.NewSphereCollider())
	dest := model.NewNode("Dst")

	log, err := minteractor.Migrate(minteractor.MigrateRequest{
		Source:    source,
		Target:    dest,
		Providers: []minteractor.IAttachmentProvider{minteractor.NewMagicaProvider()},
	})
	require.NoError(t, err)

	presenter, buf := newPresenterForTest(t, "en")
	presenter.RenderMigrationLog(log)
	out := buf.String()
	assert.Contains(t, out, "Mapped (root): 1")
	assert.Contains(t, out, "Mapped (created): 1")
	assert.Contains(t, out, "Created nodes: 1")
	assert.Contains(t, out, "Migrated records (sphereCollider): 1")
	assert.Contains(t, out, "Skipped (no provider): colliderGroup")
	assert.Contains(t, out, "Warnings: 0")
}

func TestRenderPreBuild(t *testing.T) {
	result := &minteractor.PreBuildResult{
		Folder: "Assets/MagicaPreBuildData/Avatar",
		Items: []minteractor.PreBuildItemResult{
			{NodeName: "Skirt", AssetPath: "Assets/MagicaPreBuildData/Avatar/PreBuild_Skirt_abcd1234.asset"},
			{NodeName: "Cape", Err: errors.New("disk full")},
		},
	}
	presenter, buf := newPresenterForTest(t, "en")
	presenter.RenderPreBuild(result)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Pre-build: 1/2 succeeded (Assets/MagicaPreBuildData/Avatar)", lines[0])
	assert.Contains(t, lines[1], "OK: Skirt -> ")
	assert.Contains(t, lines[2], "FAILED: Cape: disk full")
}

func TestRenderValidation(t *testing.T) {
	presenter, buf := newPresenterForTest(t, "en")
	require.NoError(t, presenter.RenderValidation(nil))
	assert.Contains(t, buf.String(), "Validation passed")

	buf.Reset()
	dupErr := merrors.NewDuplicateNamesError([]string{"A", "B"})
	err := presenter.RenderValidation(dupErr)
	assert.True(t, merrors.IsDuplicateNamesError(err))
	assert.Contains(t, buf.String(), "Validation failed: 2 duplicate names")
	assert.Contains(t, buf.String(), "- A")

	buf.Reset()
	other := presenter.RenderValidation(merrors.ErrTreeMissing)
	assert.ErrorIs(t, other, merrors.ErrTreeMissing)
	assert.Empty(t, buf.String())
}

func TestRenderBlendShapes(t *testing.T) {
	presenter, buf := newPresenterForTest(t, "ja")
	presenter.RenderBlendShapes(&minteractor.BlendShapeMigrationResult{UpdatedRenderers: 2, UpdatedShapes: 5})
	assert.Equal(t, "ブレンドシェイプ反映: 描画 2件 / シェイプ 5件\n", buf.String())
}
