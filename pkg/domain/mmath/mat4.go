// 指示: miu200521358
package mmath

import "github.com/go-gl/mathgl/mgl64"

// Mat4 は4x4の同次変換行列(列優先)を表す。
type Mat4 struct {
	m mgl64.Mat4
}

// NewMat4 は単位行列を生成する。
func NewMat4() Mat4 {
	return Mat4{m: mgl64.Ident4()}
}

// NewMat4FromTRS は平行移動・回転・スケールから行列を生成する。
func NewMat4FromTRS(translation Vec3, rotation Quaternion, scale Vec3) Mat4 {
	return translation.ToMat4().Muled(rotation.ToMat4()).Muled(scale.ToScaleMat4())
}

// Muled は m * other を返す。
func (m Mat4) Muled(other Mat4) Mat4 {
	return Mat4{m: m.m.Mul4(other.m)}
}

// Inverted は逆行列を返す。特異行列の場合は単位行列を返す。
func (m Mat4) Inverted() Mat4 {
	if m.m.Det() == 0 {
		return NewMat4()
	}
	return Mat4{m: m.m.Inv()}
}

// MulVec3 は点を変換する。
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return vec3FromMgl(m.m.Mul4x1(v.toMgl().Vec4(1)).Vec3())
}

// Translation は平行移動成分を返す。
func (m Mat4) Translation() Vec3 {
	return NewVec3ByValues(m.m[12], m.m[13], m.m[14])
}

// Rotation は回転成分を返す。スケールを含む場合は列ベクトルを正規化して取り出す。
func (m Mat4) Rotation() Quaternion {
	var r mgl64.Mat4
	for col := 0; col < 3; col++ {
		axis := mgl64.Vec3{m.m[col*4], m.m[col*4+1], m.m[col*4+2]}
		if l := axis.Len(); l > 0 {
			axis = axis.Mul(1 / l)
		}
		r[col*4], r[col*4+1], r[col*4+2] = axis[0], axis[1], axis[2]
	}
	r[15] = 1
	return Quaternion{q: mgl64.Mat4ToQuat(r)}.Normalized()
}

// Values は列優先の16要素を返す。
func (m Mat4) Values() [16]float64 {
	return m.m
}

// NewMat4FromValues は列優先の16要素から行列を生成する。
func NewMat4FromValues(values [16]float64) Mat4 {
	return Mat4{m: mgl64.Mat4(values)}
}

// Scale は各軸の列ベクトル長をスケールとして返す。
func (m Mat4) Scale() Vec3 {
	return NewVec3ByValues(
		mgl64.Vec3{m.m[0], m.m[1], m.m[2]}.Len(),
		mgl64.Vec3{m.m[4], m.m[5], m.m[6]}.Len(),
		mgl64.Vec3{m.m[8], m.m[9], m.m[10]}.Len(),
	)
}
