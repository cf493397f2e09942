// 指示: miu200521358
package mmath

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON は [x, y, z] 形式で出力する。
func (v Vec3) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Slice())
}

// UnmarshalJSON は [x, y, z] 形式を読み込む。
func (v *Vec3) UnmarshalJSON(b []byte) error {
	var values []float64
	if err := json.Unmarshal(b, &values); err != nil {
		return err
	}
	if len(values) != 3 {
		return fmt.Errorf("Vec3 の要素数が不正です: %d", len(values))
	}
	*v = NewVec3ByValues(values[0], values[1], values[2])
	return nil
}

// MarshalJSON は [x, y, z, w] 形式で出力する。
func (q Quaternion) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.Slice())
}

// UnmarshalJSON は [x, y, z, w] 形式を読み込む。
func (q *Quaternion) UnmarshalJSON(b []byte) error {
	var values []float64
	if err := json.Unmarshal(b, &values); err != nil {
		return err
	}
	if len(values) != 4 {
		return fmt.Errorf("Quaternion の要素数が不正です: %d", len(values))
	}
	*q = NewQuaternionByValues(values[0], values[1], values[2], values[3]).Normalized()
	return nil
}
