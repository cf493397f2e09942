// 指示: miu200521358
package minteractor

import (
	"math"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/merrors"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/mmath"
	"github.com/miu200521358/mu_physmigrate/pkg/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUniqueNamesExampleB(t *testing.T) {
	root := addNode(nil, "Root", "")
	addNode(root, "Dup", "")
	addNode(root, "Dup", "")

	err := ValidateUniqueNames(root)
	require.Error(t, err)
	names, ok := merrors.DuplicateNames(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Dup"}, names)
}

func TestValidateUniqueNamesReportsEveryDuplicate(t *testing.T) {
	root := addNode(nil, "Root", "")
	hips := addNode(root, "Hips", "")
	addNode(hips, "Root", "")
	addNode(hips, "Hair", "")
	addNode(root, "Hair", "")
	addNode(root, "Hair", "")

	names, ok := merrors.DuplicateNames(ValidateUniqueNames(root))
	require.True(t, ok)
	assert.Equal(t, []string{"Hair", "Root"}, names)

	assert.NoError(t, ValidateUniqueNames(addNode(nil, "Lonely", "")))
}

func TestMigrateRejectsInvalidInputWithoutMutation(t *testing.T) {
	sourceRoot := addNode(nil, "Root", "")
	dupA := addNode(sourceRoot, "Dup", "")
	dupA.AddRecord(model.NewSphereCollider())
	addNode(sourceRoot, "Dup", "")
	destRoot := addNode(nil, "Root", "")

	_, err := Migrate(MigrateRequest{Source: sourceRoot, Target: destRoot})
	require.True(t, merrors.IsDuplicateNamesError(err), "%v", err)
	assert.Empty(t, destRoot.Children())

	_, err = Migrate(MigrateRequest{Source: sourceRoot, Target: sourceRoot})
	assert.ErrorIs(t, err, merrors.ErrSameTree)

	_, err = Migrate(MigrateRequest{Source: nil, Target: destRoot})
	assert.ErrorIs(t, err, merrors.ErrTreeMissing)
}

func TestMigrateExampleCDropsUnmappedColliderNode(t *testing.T) {
	logger := useBufferLogger(t)

	sourceRoot := addNode(nil, "Root", "")
	hips := addNode(sourceRoot, "Hips", model.HumanBoneHips)
	body := addNode(hips, "Body", "")
	stray := addNode(sourceRoot, "Stray", "")
	group := model.NewColliderGroup()
	group.ColliderNodes = []*model.Node{hips, stray}
	body.AddRecord(group)

	destRoot := addNode(nil, "Root", "")
	pelvis := addNode(destRoot, "Pelvis", model.HumanBoneHips)
	destBody := addNode(pelvis, "Body", "")

	log, err := Migrate(MigrateRequest{Source: sourceRoot, Target: destRoot})
	require.NoError(t, err)

	records := destBody.RecordsOf(model.RecordKindColliderGroup)
	require.Len(t, records, 1)
	migrated := records[0].(*model.ColliderGroup)
	assert.Equal(t, []string{"Pelvis"}, nodeNames(migrated.ColliderNodes))

	dropped := log.WarningsOf(model.MigrateWarningListElementDropped)
	require.Len(t, dropped, 1, spew.Sdump(log.Warnings))
	assert.Equal(t, "colliderNodes", dropped[0].Field)
	assert.Contains(t, dropped[0].Message, "Stray")

	// 移植元は変更しない。
	assert.Equal(t, []*model.Node{hips, stray}, group.ColliderNodes)

	hasWarningLine := false
	for _, line := range logger.MessageBuffer().Lines() {
		if strings.Contains(line, model.MigrateWarningListElementDropped) {
			hasWarningLine = true
			break
		}
	}
	if !hasWarningLine {
		t.Fatalf("warning line not found: %v", logger.MessageBuffer().Lines())
	}
}

func TestMigrateTwoKindsShareOneSyntheticNode(t *testing.T) {
	sourceRoot := addNode(nil, "Root", "")
	hips := addNode(sourceRoot, "Hips", model.HumanBoneHips)
	host := addNode(hips, "ColHost", "")
	host.AddRecord(model.NewCapsuleCollider())
	host.AddRecord(model.NewSphereCollider())
	host.AddRecord(model.NewColliderGroup())

	destRoot := addNode(nil, "Root", "")
	pelvis := addNode(destRoot, "Pelvis", model.HumanBoneHips)

	log, err := Migrate(MigrateRequest{Source: sourceRoot, Target: destRoot})
	require.NoError(t, err)

	require.Len(t, log.CreatedNodes, 1)
	assert.Equal(t, []string{"ColHost"}, childNames(pelvis))
	created := pelvis.Children()[0]
	assert.Len(t, created.RecordsOf(model.RecordKindCapsuleCollider), 1)
	assert.Len(t, created.RecordsOf(model.RecordKindSphereCollider), 1)
	assert.Len(t, created.RecordsOf(model.RecordKindColliderGroup), 1)
	assert.Equal(t, 1, log.MigratedRecords[model.RecordKindCapsuleCollider])
	assert.Equal(t, 1, log.MigratedRecords[model.RecordKindSphereCollider])
	assert.Equal(t, 1, log.MigratedRecords[model.RecordKindColliderGroup])
	origin, _ := log.Mapping.Origin(host)
	assert.Equal(t, MatchOriginCreated, origin)
}

func TestMigrateSyntheticNodeKeepsWorldTransform(t *testing.T) {
	sourceRoot := addNode(nil, "Root", "")
	hips := addNode(sourceRoot, "Hips", model.HumanBoneHips)
	hips.Position = vec3(0, 1, 0)
	host := addNode(hips, "ColHost", "")
	host.Position = vec3(0, 0.5, 0.1)
	host.Rotation = mmath.NewQuaternionFromAxisAngle(vec3(1, 0, 0), math.Pi/4)
	host.AddRecord(model.NewSphereCollider())

	destRoot := addNode(nil, "Root", "")
	pelvis := addNode(destRoot, "Pelvis", model.HumanBoneHips)
	pelvis.Position = vec3(0, 0.9, 0)
	pelvis.Rotation = mmath.NewQuaternionFromAxisAngle(vec3(0, 1, 0), math.Pi/2)
	pelvis.Scale = vec3(2, 2, 2)

	log, err := Migrate(MigrateRequest{Source: sourceRoot, Target: destRoot})
	require.NoError(t, err)
	require.Len(t, log.CreatedNodes, 1)

	created := log.CreatedNodes[0]
	assert.Same(t, pelvis, created.Parent())
	assert.True(t, created.WorldPosition().NearEquals(host.WorldPosition(), 1e-9),
		"got=%s want=%s", created.WorldPosition(), host.WorldPosition())
	assert.True(t, created.WorldRotation().NearEquals(host.WorldRotation(), 1e-9))
	assert.True(t, created.LossyScale().NearEquals(host.LossyScale(), 1e-9))
	assert.Empty(t, created.HumanBone)
}

func TestMigrateSpringBoneListsKeepOrder(t *testing.T) {
	sourceRoot := addNode(nil, "Root", "")
	hips := addNode(sourceRoot, "Hips", model.HumanBoneHips)
	head := addNode(hips, "Head", model.HumanBoneHead)
	hairA := addNode(head, "HairA", "")
	hairMissing := addNode(head, "HairMissing", "")
	hairB := addNode(head, "HairB", "")
	hairC := addNode(head, "HairC", "")
	headCol := addNode(head, "HeadCollider", "")
	headGroup := model.NewColliderGroup()
	headGroup.ColliderNodes = []*model.Node{headCol}
	headCol.AddRecord(headGroup)

	spring := model.NewSpringBone()
	spring.Stiffness = 0.75
	spring.Center = hips
	spring.RootBones = []*model.Node{hairA, hairMissing, hairB, hairC}
	spring.ColliderGroups = []model.IRecord{headGroup}
	secondary := addNode(sourceRoot, "secondary", "")
	secondary.AddRecord(spring)

	destRoot := addNode(nil, "Root", "")
	pelvis := addNode(destRoot, "J_Hips", model.HumanBoneHips)
	destHead := addNode(pelvis, "J_Head", model.HumanBoneHead)
	addNode(destHead, "HairC", "")
	addNode(destHead, "HairA", "")
	addNode(destHead, "HairB", "")

	log, err := Migrate(MigrateRequest{Source: sourceRoot, Target: destRoot})
	require.NoError(t, err)

	destSecondary := destRoot.FindChild("secondary")
	require.NotNil(t, destSecondary, spew.Sdump(childNames(destRoot)))
	springs := destSecondary.RecordsOf(model.RecordKindSpringBone)
	require.Len(t, springs, 1)
	migrated := springs[0].(*model.SpringBone)

	assert.Equal(t, 0.75, migrated.Stiffness)
	assert.Same(t, pelvis, migrated.Center)
	assert.Equal(t, []string{"HairA", "HairB", "HairC"}, nodeNames(migrated.RootBones))
	require.Len(t, migrated.ColliderGroups, 1)
	destGroupOwner := migrated.ColliderGroups[0].Owner()
	assert.Equal(t, "HeadCollider", destGroupOwner.Name)
	assert.Same(t, destHead, destGroupOwner.Parent())
	assert.True(t, destGroupOwner.IsDescendantOf(destRoot))
	assert.Len(t, log.WarningsOf(model.MigrateWarningListElementDropped), 1)

	// 移植元のリストは変更しない。
	assert.Len(t, spring.RootBones, 4)
}

func TestMigrateClothFlattenedUnderRoot(t *testing.T) {
	sourceRoot := addNode(nil, "Root", "")
	hips := addNode(sourceRoot, "Hips", model.HumanBoneHips)
	leg := addNode(hips, "LegCollider", "")
	capsule := model.NewCapsuleCollider()
	capsule.Length = 0.3
	leg.AddRecord(capsule)
	body := addNode(sourceRoot, "Body", "")
	renderer := model.NewMeshRenderer()
	body.AddRecord(renderer)
	skirtBone := addNode(hips, "SkirtBone", "")
	skirt := addNode(hips, "Skirt", "")
	cloth := model.NewCloth()
	cloth.RootBones = []*model.Node{skirtBone}
	cloth.Colliders = []model.IRecord{capsule}
	cloth.SourceRenderers = []model.IRecord{renderer}
	skirt.AddRecord(cloth)

	destRoot := addNode(nil, "Root", "")
	pelvis := addNode(destRoot, "Pelvis", model.HumanBoneHips)
	destSkirtBone := addNode(pelvis, "SkirtBone", "")
	destBody := addNode(destRoot, "Body", "")
	destRenderer := destBody.AddRecord(model.NewMeshRenderer())

	log, err := Migrate(MigrateRequest{Source: sourceRoot, Target: destRoot})
	require.NoError(t, err)
	assert.Empty(t, log.Warnings, spew.Sdump(log.Warnings))

	destSkirt := destRoot.FindChild("Skirt")
	require.NotNil(t, destSkirt, "cloth should be placed under dest root: %v", childNames(destRoot))
	assert.Nil(t, pelvis.FindChild("Skirt"))
	destLeg := pelvis.FindChild("LegCollider")
	require.NotNil(t, destLeg)

	migrated := destSkirt.RecordsOf(model.RecordKindCloth)[0].(*model.Cloth)
	assert.Equal(t, []*model.Node{destSkirtBone}, migrated.RootBones)
	require.Len(t, migrated.Colliders, 1)
	assert.Same(t, destLeg.RecordsOf(model.RecordKindCapsuleCollider)[0], migrated.Colliders[0])
	assert.Equal(t, 0.3, migrated.Colliders[0].(*model.CapsuleCollider).Length)
	assert.Equal(t, []model.IRecord{destRenderer}, migrated.SourceRenderers)
}

func TestMigrateCustomPolicyKeepsClothHierarchy(t *testing.T) {
	sourceRoot := addNode(nil, "Root", "")
	hips := addNode(sourceRoot, "Hips", model.HumanBoneHips)
	addNode(hips, "Skirt", "").AddRecord(model.NewCloth())

	destRoot := addNode(nil, "Root", "")
	pelvis := addNode(destRoot, "Pelvis", model.HumanBoneHips)

	_, err := Migrate(MigrateRequest{Source: sourceRoot, Target: destRoot, Policy: &MigrationPolicy{}})
	require.NoError(t, err)
	assert.NotNil(t, pelvis.FindChild("Skirt"))
	assert.Nil(t, destRoot.FindChild("Skirt"))
}

func TestMigrateSkipsKindsWithoutProvider(t *testing.T) {
	sourceRoot := addNode(nil, "Root", "")
	hips := addNode(sourceRoot, "Hips", model.HumanBoneHips)
	host := addNode(hips, "Host", "")
	host.AddRecord(model.NewSphereCollider())
	spring := model.NewSpringBone()
	spring.Center = host
	spring.RootBones = []*model.Node{hips}
	host.AddRecord(spring)

	destRoot := addNode(nil, "Root", "")
	pelvis := addNode(destRoot, "Pelvis", model.HumanBoneHips)

	log, err := Migrate(MigrateRequest{
		Source:    sourceRoot,
		Target:    destRoot,
		Providers: []IAttachmentProvider{NewMagicaProvider()},
	})
	require.NoError(t, err)

	assert.Equal(t, []model.RecordKind{model.RecordKindColliderGroup, model.RecordKindSpringBone}, log.SkippedKinds)
	assert.Len(t, log.InfosOf(model.MigrateInfoProviderMissing), 2)
	assert.Zero(t, log.MigratedRecords[model.RecordKindSpringBone])

	// 生成ノードへ複製された対象外種別も移植先を指す。
	created := pelvis.FindChild("Host")
	require.NotNil(t, created)
	duplicated := created.RecordsOf(model.RecordKindSpringBone)[0].(*model.SpringBone)
	assert.Same(t, created, duplicated.Center)
	assert.Equal(t, []*model.Node{pelvis}, duplicated.RootBones)
}

func TestMigrateIsIdempotent(t *testing.T) {
	sourceRoot := addNode(nil, "Root", "")
	hips := addNode(sourceRoot, "Hips", model.HumanBoneHips)
	host := addNode(hips, "Host", "")
	sphere := model.NewSphereCollider()
	sphere.Radius = 0.05
	host.AddRecord(sphere)
	group := model.NewColliderGroup()
	group.ColliderNodes = []*model.Node{host}
	host.AddRecord(group)
	skirt := addNode(hips, "Skirt", "")
	cloth := model.NewCloth()
	cloth.RootBones = []*model.Node{hips, host}
	cloth.Colliders = []model.IRecord{sphere}
	skirt.AddRecord(cloth)

	destRoot := addNode(nil, "Root", "")
	addNode(destRoot, "Pelvis", model.HumanBoneHips)

	_, err := Migrate(MigrateRequest{Source: sourceRoot, Target: destRoot})
	require.NoError(t, err)
	firstNodes := len(destRoot.Descendants())
	firstRecords := countRecords(destRoot)
	destCloth := destRoot.FindChild("Skirt").RecordsOf(model.RecordKindCloth)[0].(*model.Cloth)
	firstRootBones := nodeNames(destCloth.RootBones)

	second, err := Migrate(MigrateRequest{Source: sourceRoot, Target: destRoot})
	require.NoError(t, err)

	assert.Empty(t, second.CreatedNodes)
	assert.Equal(t, firstNodes, len(destRoot.Descendants()))
	assert.Equal(t, firstRecords, countRecords(destRoot))
	assert.Equal(t, firstRootBones, nodeNames(destCloth.RootBones))
	assert.Len(t, destCloth.Colliders, 1)

	// 付け替え済みレコードの再付け替えは変化しない。
	remapper := NewReferenceRemapper(second.Mapping, destRoot, nil)
	remapper.Remap(destCloth)
	assert.Equal(t, firstRootBones, nodeNames(destCloth.RootBones))
}

func TestResolveDestinationReusesSameNamedAnchorChild(t *testing.T) {
	sourceRoot := addNode(nil, "Root", "")
	source := addNode(sourceRoot, "Acc", "")
	source.Position = vec3(0, 1, 0)
	source.AddRecord(model.NewSphereCollider())

	destRoot := addNode(nil, "Root", "")
	existing := addNode(destRoot, "Acc", "")
	existing.Position = vec3(0, 2, 0)

	mapping := NewCorrespondenceMap()
	mapping.Put(sourceRoot, destRoot, MatchOriginRoot)
	log := NewMigrationLog()
	migrator := newComponentMigrator(sourceRoot, destRoot, mapping, DefaultMigrationPolicy(), log)

	resolution := migrator.resolveDestination(model.RecordKindSphereCollider, source)

	assert.Equal(t, resolutionReused, resolution.Status)
	assert.Same(t, existing, resolution.Node)
	assert.True(t, existing.Position.NearEquals(vec3(0, 2, 0), 1e-12), "reused transform should be kept")
	assert.Len(t, log.InfosOf(model.MigrateInfoTransformMismatch), 1)
	origin, _ := mapping.Origin(source)
	assert.Equal(t, MatchOriginReused, origin)

	migrator.transferRecords(model.RecordKindSphereCollider, source, existing)
	assert.Len(t, existing.RecordsOf(model.RecordKindSphereCollider), 1)
}

func TestResolveDestinationUnresolvedWithoutAnchor(t *testing.T) {
	sourceRoot := addNode(nil, "Root", "")
	orphan := addNode(sourceRoot, "Orphan", "")
	orphan.AddRecord(model.NewSphereCollider())
	destRoot := addNode(nil, "Root", "")

	log := NewMigrationLog()
	migrator := newComponentMigrator(sourceRoot, destRoot, NewCorrespondenceMap(), DefaultMigrationPolicy(), log)
	migrator.migrateKind(model.RecordKindSphereCollider)

	assert.Len(t, log.WarningsOf(model.MigrateWarningAnchorUnresolved), 1)
	assert.Empty(t, destRoot.Children())
}

func TestMigrateReusedDestinationOverwritesByOrdinal(t *testing.T) {
	sourceRoot := addNode(nil, "Root", "")
	host := addNode(sourceRoot, "Host", "")
	first := model.NewSphereCollider()
	first.Radius = 0.1
	second := model.NewSphereCollider()
	second.Radius = 0.2
	host.AddRecord(first)
	host.AddRecord(second)

	destRoot := addNode(nil, "Root", "")
	destHost := addNode(destRoot, "Host", "")
	existing := model.NewSphereCollider()
	existing.Radius = 9
	destHost.AddRecord(existing)

	_, err := Migrate(MigrateRequest{Source: sourceRoot, Target: destRoot})
	require.NoError(t, err)

	records := destHost.RecordsOf(model.RecordKindSphereCollider)
	require.Len(t, records, 2)
	assert.Same(t, existing, records[0])
	assert.Equal(t, 0.1, records[0].(*model.SphereCollider).Radius)
	assert.Equal(t, 0.2, records[1].(*model.SphereCollider).Radius)
}

func TestMigrateReportsProgress(t *testing.T) {
	sourceRoot := addNode(nil, "Root", "")
	addNode(sourceRoot, "Host", "").AddRecord(model.NewSphereCollider())
	destRoot := addNode(nil, "Root", "")
	recorder := &progressRecorder{}

	_, err := Migrate(MigrateRequest{Source: sourceRoot, Target: destRoot, ProgressReporter: recorder})
	require.NoError(t, err)

	require.NotEmpty(t, recorder.events)
	assert.Equal(t, MigrateProgressEventTypeInputValidated, recorder.events[0].Type)
	assert.Equal(t, MigrateProgressEventTypeCompleted, recorder.events[len(recorder.events)-1].Type)
	kindEvents := 0
	for _, event := range recorder.events {
		if event.Type == MigrateProgressEventTypeKindMigrated {
			kindEvents++
			if event.Kind == model.RecordKindSphereCollider {
				assert.Equal(t, 1, event.RecordCount)
			}
		}
	}
	assert.Equal(t, len(MigrationKinds()), kindEvents)
}

func countRecords(root *model.Node) int {
	count := 0
	root.Walk(func(node *model.Node) {
		count += len(node.Records())
	})
	return count
}
