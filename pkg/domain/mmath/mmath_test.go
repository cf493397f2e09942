// 指示: miu200521358
package mmath

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMat4InvertedRoundTripsPoint(t *testing.T) {
	m := NewMat4FromTRS(
		NewVec3ByValues(1, 2, 3),
		NewQuaternionFromAxisAngle(NewVec3ByValues(0, 1, 0), math.Pi/2),
		NewVec3ByValues(2, 2, 2),
	)
	p := NewVec3ByValues(0.5, -1, 4)

	back := m.Inverted().MulVec3(m.MulVec3(p))
	assert.True(t, back.NearEquals(p, 1e-9), "got=%s want=%s", back, p)
}

func TestQuaternionRotatesVector(t *testing.T) {
	q := NewQuaternionFromAxisAngle(NewVec3ByValues(0, 0, 1), math.Pi/2)
	got := q.MulVec3(NewVec3ByValues(1, 0, 0))
	assert.True(t, got.NearEquals(NewVec3ByValues(0, 1, 0), 1e-9), "got=%s", got)

	identity := q.Muled(q.Inverted())
	assert.True(t, identity.NearEquals(NewQuaternion(), 1e-9))
}

func TestMat4RotationIgnoresScale(t *testing.T) {
	rot := NewQuaternionFromAxisAngle(NewVec3ByValues(1, 0, 0), math.Pi/3)
	m := NewMat4FromTRS(ZERO_VEC3, rot, NewVec3ByValues(3, 3, 3))
	assert.True(t, m.Rotation().NearEquals(rot, 1e-9))
}

func TestQuaternionNearEqualsToleratesTinyComponents(t *testing.T) {
	q := NewQuaternionByValues(0.38268343236508984, 0, -1.1e-17, 0.9238795325112867)
	want := NewQuaternionByValues(0.38268343236508984, 0, 0, 0.9238795325112867)
	assert.True(t, q.NearEquals(want, 1e-9), "got=%s want=%s", q, want)

	negated := NewQuaternionByValues(-0.38268343236508984, 0, 1e-17, -0.9238795325112867)
	assert.True(t, negated.NearEquals(want, 1e-9), "got=%s want=%s", negated, want)

	other := NewQuaternionByValues(0.38268343236508984, 0, 1e-6, 0.9238795325112867)
	assert.False(t, other.NearEquals(want, 1e-9))
}

func TestVec3JSONUsesArrayForm(t *testing.T) {
	b, err := json.Marshal(NewVec3ByValues(1, 2.5, -3))
	require.NoError(t, err)
	assert.JSONEq(t, `[1, 2.5, -3]`, string(b))

	var v Vec3
	require.NoError(t, json.Unmarshal([]byte(`[4, 5, 6]`), &v))
	assert.Equal(t, NewVec3ByValues(4, 5, 6), v)

	require.Error(t, json.Unmarshal([]byte(`[1, 2]`), &v))
}

func TestDivedSafeKeepsZeroDivisor(t *testing.T) {
	got := NewVec3ByValues(4, 6, 8).DivedSafe(NewVec3ByValues(2, 0, 4))
	assert.Equal(t, NewVec3ByValues(2, 6, 2), got)
}

func TestMat4FromValuesDecomposes(t *testing.T) {
	src := NewMat4FromTRS(
		NewVec3ByValues(1, 2, 3),
		NewQuaternionFromAxisAngle(NewVec3ByValues(1, 0, 0), math.Pi/4),
		NewVec3ByValues(1, 3, 1),
	)
	m := NewMat4FromValues(src.Values())
	assert.True(t, m.Translation().NearEquals(NewVec3ByValues(1, 2, 3), 1e-9))
	assert.True(t, m.Scale().NearEquals(NewVec3ByValues(1, 3, 1), 1e-9), "got=%s", m.Scale())
	assert.True(t, m.Rotation().NearEquals(NewQuaternionFromAxisAngle(NewVec3ByValues(1, 0, 0), math.Pi/4), 1e-9))
}
