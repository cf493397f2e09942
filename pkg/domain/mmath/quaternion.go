// 指示: miu200521358
package mmath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Quaternion は回転を表す。
type Quaternion struct {
	q mgl64.Quat
}

// NewQuaternion は単位クォータニオンを生成する。
func NewQuaternion() Quaternion {
	return Quaternion{q: mgl64.QuatIdent()}
}

// NewQuaternionByValues は x, y, z, w 指定でクォータニオンを生成する。
func NewQuaternionByValues(x, y, z, w float64) Quaternion {
	return Quaternion{q: mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}}
}

// NewQuaternionFromAxisAngle は軸と角度(ラジアン)からクォータニオンを生成する。
func NewQuaternionFromAxisAngle(axis Vec3, radians float64) Quaternion {
	return Quaternion{q: mgl64.QuatRotate(radians, axis.toMgl().Normalize())}
}

// X はx成分を返す。
func (q Quaternion) X() float64 { return q.q.V[0] }

// Y はy成分を返す。
func (q Quaternion) Y() float64 { return q.q.V[1] }

// Z はz成分を返す。
func (q Quaternion) Z() float64 { return q.q.V[2] }

// W はw成分を返す。
func (q Quaternion) W() float64 { return q.q.W }

// Muled は q * other を返す。
func (q Quaternion) Muled(other Quaternion) Quaternion {
	return Quaternion{q: q.q.Mul(other.q)}
}

// Inverted は逆回転を返す。
func (q Quaternion) Inverted() Quaternion {
	return Quaternion{q: q.q.Inverse()}
}

// Normalized は正規化結果を返す。ゼロ長の場合は単位クォータニオンを返す。
func (q Quaternion) Normalized() Quaternion {
	if q.q.Len() == 0 {
		return NewQuaternion()
	}
	return Quaternion{q: q.q.Normalize()}
}

// MulVec3 はベクトルを回転させる。
func (q Quaternion) MulVec3(v Vec3) Vec3 {
	return vec3FromMgl(q.q.Rotate(v.toMgl()))
}

// NearEquals は同じ回転を表すか許容誤差付きで判定する。
func (q Quaternion) NearEquals(other Quaternion, epsilon float64) bool {
	// q と -q は同じ回転を表す。
	return q.componentsNear(other.q, epsilon) || q.componentsNear(other.q.Scale(-1), epsilon)
}

// componentsNear は各成分の差の絶対値が epsilon 以内か判定する。
func (q Quaternion) componentsNear(other mgl64.Quat, epsilon float64) bool {
	return math.Abs(q.q.W-other.W) <= epsilon &&
		math.Abs(q.q.V[0]-other.V[0]) <= epsilon &&
		math.Abs(q.q.V[1]-other.V[1]) <= epsilon &&
		math.Abs(q.q.V[2]-other.V[2]) <= epsilon
}

// ToMat4 は回転行列を返す。
func (q Quaternion) ToMat4() Mat4 {
	return Mat4{m: q.q.Normalize().Mat4()}
}

// Slice は [x, y, z, w] を返す。
func (q Quaternion) Slice() []float64 {
	return []float64{q.X(), q.Y(), q.Z(), q.W()}
}

// String は表示用文字列を返す。
func (q Quaternion) String() string {
	return fmt.Sprintf("[x=%.5f, y=%.5f, z=%.5f, w=%.5f]", q.X(), q.Y(), q.Z(), q.W())
}
