// 指示: miu200521358
package mmath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 は3次元ベクトルを表す。
type Vec3 struct {
	r3.Vec
}

var (
	// ZERO_VEC3 はゼロベクトル。
	ZERO_VEC3 = Vec3{}
	// ONE_VEC3 は全要素1のベクトル。
	ONE_VEC3 = Vec3{Vec: r3.Vec{X: 1, Y: 1, Z: 1}}
)

// NewVec3ByValues は要素指定でVec3を生成する。
func NewVec3ByValues(x, y, z float64) Vec3 {
	return Vec3{Vec: r3.Vec{X: x, Y: y, Z: z}}
}

// Added は加算結果を返す。
func (v Vec3) Added(other Vec3) Vec3 {
	return Vec3{Vec: r3.Add(v.Vec, other.Vec)}
}

// Subed は減算結果を返す。
func (v Vec3) Subed(other Vec3) Vec3 {
	return Vec3{Vec: r3.Sub(v.Vec, other.Vec)}
}

// MuledScalar はスカラー倍した結果を返す。
func (v Vec3) MuledScalar(s float64) Vec3 {
	return Vec3{Vec: r3.Scale(s, v.Vec)}
}

// Length はベクトル長を返す。
func (v Vec3) Length() float64 {
	return r3.Norm(v.Vec)
}

// Distance は2点間距離を返す。
func (v Vec3) Distance(other Vec3) float64 {
	return v.Subed(other).Length()
}

// NearEquals は各要素が許容誤差内で一致するか判定する。
func (v Vec3) NearEquals(other Vec3, epsilon float64) bool {
	return math.Abs(v.X-other.X) <= epsilon &&
		math.Abs(v.Y-other.Y) <= epsilon &&
		math.Abs(v.Z-other.Z) <= epsilon
}

// DivedSafe は要素ごとの除算結果を返す。除数がゼロの要素は元の値を維持する。
func (v Vec3) DivedSafe(other Vec3) Vec3 {
	div := func(a, b float64) float64 {
		if math.Abs(b) < 1e-12 {
			return a
		}
		return a / b
	}
	return NewVec3ByValues(div(v.X, other.X), div(v.Y, other.Y), div(v.Z, other.Z))
}

// MuledVec は要素ごとの乗算結果を返す。
func (v Vec3) MuledVec(other Vec3) Vec3 {
	return NewVec3ByValues(v.X*other.X, v.Y*other.Y, v.Z*other.Z)
}

// ToMat4 は平行移動行列を返す。
func (v Vec3) ToMat4() Mat4 {
	return Mat4{m: mgl64.Translate3D(v.X, v.Y, v.Z)}
}

// ToScaleMat4 はスケール行列を返す。
func (v Vec3) ToScaleMat4() Mat4 {
	return Mat4{m: mgl64.Scale3D(v.X, v.Y, v.Z)}
}

// Slice は [x, y, z] を返す。
func (v Vec3) Slice() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// String は表示用文字列を返す。
func (v Vec3) String() string {
	return fmt.Sprintf("[x=%.5f, y=%.5f, z=%.5f]", v.X, v.Y, v.Z)
}

func (v Vec3) toMgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func vec3FromMgl(v mgl64.Vec3) Vec3 {
	return NewVec3ByValues(v[0], v[1], v[2])
}
