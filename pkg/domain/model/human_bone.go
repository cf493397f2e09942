// 指示: miu200521358
package model

import "strings"

// HumanBone は人型スケルトン上の正準ロールを表す。
// 移植元・移植先で共有される語彙で、VRM humanoid の humanBones 名に揃える。
type HumanBone string

// 人型ロール一覧。
const (
	HumanBoneHips                    HumanBone = "hips"
	HumanBoneSpine                   HumanBone = "spine"
	HumanBoneChest                   HumanBone = "chest"
	HumanBoneUpperChest              HumanBone = "upperChest"
	HumanBoneNeck                    HumanBone = "neck"
	HumanBoneHead                    HumanBone = "head"
	HumanBoneLeftEye                 HumanBone = "leftEye"
	HumanBoneRightEye                HumanBone = "rightEye"
	HumanBoneJaw                     HumanBone = "jaw"
	HumanBoneLeftUpperLeg            HumanBone = "leftUpperLeg"
	HumanBoneLeftLowerLeg            HumanBone = "leftLowerLeg"
	HumanBoneLeftFoot                HumanBone = "leftFoot"
	HumanBoneLeftToes                HumanBone = "leftToes"
	HumanBoneRightUpperLeg           HumanBone = "rightUpperLeg"
	HumanBoneRightLowerLeg           HumanBone = "rightLowerLeg"
	HumanBoneRightFoot               HumanBone = "rightFoot"
	HumanBoneRightToes               HumanBone = "rightToes"
	HumanBoneLeftShoulder            HumanBone = "leftShoulder"
	HumanBoneLeftUpperArm            HumanBone = "leftUpperArm"
	HumanBoneLeftLowerArm            HumanBone = "leftLowerArm"
	HumanBoneLeftHand                HumanBone = "leftHand"
	HumanBoneRightShoulder           HumanBone = "rightShoulder"
	HumanBoneRightUpperArm           HumanBone = "rightUpperArm"
	HumanBoneRightLowerArm           HumanBone = "rightLowerArm"
	HumanBoneRightHand               HumanBone = "rightHand"
	HumanBoneLeftThumbMetacarpal     HumanBone = "leftThumbMetacarpal"
	HumanBoneLeftThumbProximal       HumanBone = "leftThumbProximal"
	HumanBoneLeftThumbIntermediate   HumanBone = "leftThumbIntermediate"
	HumanBoneLeftThumbDistal         HumanBone = "leftThumbDistal"
	HumanBoneLeftIndexProximal       HumanBone = "leftIndexProximal"
	HumanBoneLeftIndexIntermediate   HumanBone = "leftIndexIntermediate"
	HumanBoneLeftIndexDistal         HumanBone = "leftIndexDistal"
	HumanBoneLeftMiddleProximal      HumanBone = "leftMiddleProximal"
	HumanBoneLeftMiddleIntermediate  HumanBone = "leftMiddleIntermediate"
	HumanBoneLeftMiddleDistal        HumanBone = "leftMiddleDistal"
	HumanBoneLeftRingProximal        HumanBone = "leftRingProximal"
	HumanBoneLeftRingIntermediate    HumanBone = "leftRingIntermediate"
	HumanBoneLeftRingDistal          HumanBone = "leftRingDistal"
	HumanBoneLeftLittleProximal      HumanBone = "leftLittleProximal"
	HumanBoneLeftLittleIntermediate  HumanBone = "leftLittleIntermediate"
	HumanBoneLeftLittleDistal        HumanBone = "leftLittleDistal"
	HumanBoneRightThumbMetacarpal    HumanBone = "rightThumbMetacarpal"
	HumanBoneRightThumbProximal      HumanBone = "rightThumbProximal"
	HumanBoneRightThumbIntermediate  HumanBone = "rightThumbIntermediate"
	HumanBoneRightThumbDistal        HumanBone = "rightThumbDistal"
	HumanBoneRightIndexProximal      HumanBone = "rightIndexProximal"
	HumanBoneRightIndexIntermediate  HumanBone = "rightIndexIntermediate"
	HumanBoneRightIndexDistal        HumanBone = "rightIndexDistal"
	HumanBoneRightMiddleProximal     HumanBone = "rightMiddleProximal"
	HumanBoneRightMiddleIntermediate HumanBone = "rightMiddleIntermediate"
	HumanBoneRightMiddleDistal       HumanBone = "rightMiddleDistal"
	HumanBoneRightRingProximal       HumanBone = "rightRingProximal"
	HumanBoneRightRingIntermediate   HumanBone = "rightRingIntermediate"
	HumanBoneRightRingDistal         HumanBone = "rightRingDistal"
	HumanBoneRightLittleProximal     HumanBone = "rightLittleProximal"
	HumanBoneRightLittleIntermediate HumanBone = "rightLittleIntermediate"
	HumanBoneRightLittleDistal       HumanBone = "rightLittleDistal"
)

// humanBoneOrder はロールの走査順を保持する。
var humanBoneOrder = []HumanBone{
	HumanBoneHips,
	HumanBoneSpine,
	HumanBoneChest,
	HumanBoneUpperChest,
	HumanBoneNeck,
	HumanBoneHead,
	HumanBoneLeftEye,
	HumanBoneRightEye,
	HumanBoneJaw,
	HumanBoneLeftUpperLeg,
	HumanBoneLeftLowerLeg,
	HumanBoneLeftFoot,
	HumanBoneLeftToes,
	HumanBoneRightUpperLeg,
	HumanBoneRightLowerLeg,
	HumanBoneRightFoot,
	HumanBoneRightToes,
	HumanBoneLeftShoulder,
	HumanBoneLeftUpperArm,
	HumanBoneLeftLowerArm,
	HumanBoneLeftHand,
	HumanBoneRightShoulder,
	HumanBoneRightUpperArm,
	HumanBoneRightLowerArm,
	HumanBoneRightHand,
	HumanBoneLeftThumbMetacarpal,
	HumanBoneLeftThumbProximal,
	HumanBoneLeftThumbIntermediate,
	HumanBoneLeftThumbDistal,
	HumanBoneLeftIndexProximal,
	HumanBoneLeftIndexIntermediate,
	HumanBoneLeftIndexDistal,
	HumanBoneLeftMiddleProximal,
	HumanBoneLeftMiddleIntermediate,
	HumanBoneLeftMiddleDistal,
	HumanBoneLeftRingProximal,
	HumanBoneLeftRingIntermediate,
	HumanBoneLeftRingDistal,
	HumanBoneLeftLittleProximal,
	HumanBoneLeftLittleIntermediate,
	HumanBoneLeftLittleDistal,
	HumanBoneRightThumbMetacarpal,
	HumanBoneRightThumbProximal,
	HumanBoneRightThumbIntermediate,
	HumanBoneRightThumbDistal,
	HumanBoneRightIndexProximal,
	HumanBoneRightIndexIntermediate,
	HumanBoneRightIndexDistal,
	HumanBoneRightMiddleProximal,
	HumanBoneRightMiddleIntermediate,
	HumanBoneRightMiddleDistal,
	HumanBoneRightRingProximal,
	HumanBoneRightRingIntermediate,
	HumanBoneRightRingDistal,
	HumanBoneRightLittleProximal,
	HumanBoneRightLittleIntermediate,
	HumanBoneRightLittleDistal,
}

// humanBoneByLowerName は小文字ロール名からロールへの辞書を保持する。
var humanBoneByLowerName = buildHumanBoneByLowerName()

// AllHumanBones は全ロールを定義順で返す。
func AllHumanBones() []HumanBone {
	bones := make([]HumanBone, len(humanBoneOrder))
	copy(bones, humanBoneOrder)
	return bones
}

// ParseHumanBone はロール名を大文字小文字を区別せずに解決する。
// Unity の HumanBodyBones 名 (例: LeftUpperLeg) も同じ語彙として受け付ける。
func ParseHumanBone(name string) (HumanBone, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return "", false
	}
	bone, ok := humanBoneByLowerName[key]
	return bone, ok
}

// String はロール名を返す。
func (b HumanBone) String() string {
	return string(b)
}

// IsValid は定義済みロールか判定する。
func (b HumanBone) IsValid() bool {
	_, ok := humanBoneByLowerName[strings.ToLower(string(b))]
	return ok
}

// buildHumanBoneByLowerName は小文字ロール名の辞書を構築する。
func buildHumanBoneByLowerName() map[string]HumanBone {
	byName := make(map[string]HumanBone, len(humanBoneOrder))
	for _, bone := range humanBoneOrder {
		byName[strings.ToLower(string(bone))] = bone
	}
	return byName
}
