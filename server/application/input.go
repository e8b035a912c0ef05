package application

import (
	"errors"

	"spearhunt/server/domain"
	"spearhunt/utils"
)

// ランドマークのインデックス（姿勢推定モデルの出力に準拠）
const (
	poseNose          = 0
	poseRightShoulder = 12
	poseRightWrist    = 16
	poseMinLandmarks  = 17

	handWrist        = 0
	handMiddleMCP    = 9
	handMinLandmarks = 21
)

// 手形状判定のしきい値（掌サイズ比）
const (
	fistCloseRatio float32 = 1.3
	palmOpenRatio  float32 = 2.0
)

var handFingertips = [5]int{4, 8, 12, 16, 20}

var ErrInvalidRotation = errors.New("camera rotation must be 0, 90, 180 or 270")

// GestureAdapter は正規化ランドマーク列を離散的なジェスチャ信号へ還元します。
// 幾何的なしきい値は調整パラメータであり、出力の意味のみが契約です。
type GestureAdapter struct {
	policy   FireControlPolicy
	rotation uint16 // 0/90/180/270
}

func NewGestureAdapter(policy FireControlPolicy) *GestureAdapter {
	return &GestureAdapter{policy: policy}
}

// SetRotation はエイム座標に適用するカメラ回転を設定します。
func (ad *GestureAdapter) SetRotation(degrees uint16) error {
	switch degrees {
	case 0, 90, 180, 270:
		ad.rotation = degrees
		return nil
	default:
		return ErrInvalidRotation
	}
}

func (ad *GestureAdapter) Rotation() uint16 {
	return ad.rotation
}

// Reduce は1フレーム分のランドマークからジェスチャ信号を作ります。
// ランドマークが欠落・不正な場合はAimPoint=nil（非グリップ扱い）を返します。
func (ad *GestureAdapter) Reduce(points []domain.Vec3) GestureInput {
	switch ad.policy {
	case PolicyFistPalm:
		return ad.reduceHand(points)
	default:
		return ad.reducePose(points)
	}
}

func (ad *GestureAdapter) reducePose(points []domain.Vec3) GestureInput {
	if len(points) < poseMinLandmarks {
		return GestureInput{}
	}
	nose := points[poseNose]
	if !utils.FiniteVec3(nose) {
		return GestureInput{}
	}

	aim := ad.toWorldAim(nose)

	// 手上げ: 手首が肩より上（画像座標ではYが小さい）
	wrist := points[poseRightWrist]
	shoulder := points[poseRightShoulder]
	fire := utils.FiniteVec3(wrist) && utils.FiniteVec3(shoulder) && wrist.Y < shoulder.Y

	return GestureInput{
		AimPoint: &aim,
		Grip:     true,
		Fire:     fire,
	}
}

func (ad *GestureAdapter) reduceHand(points []domain.Vec3) GestureInput {
	if len(points) < handMinLandmarks {
		return GestureInput{}
	}
	wrist := points[handWrist]
	middle := points[handMiddleMCP]
	if !utils.FiniteVec3(wrist) || !utils.FiniteVec3(middle) {
		return GestureInput{}
	}

	palmSize := domain.Distance(wrist, middle)
	if palmSize <= 0 {
		return GestureInput{}
	}

	var spread float32
	for _, i := range handFingertips {
		spread += domain.Distance(wrist, points[i])
	}
	spread /= float32(len(handFingertips)) * palmSize

	aim := ad.toWorldAim(wrist)
	return GestureInput{
		AimPoint: &aim,
		Grip:     spread < fistCloseRatio,
		Fire:     spread > palmOpenRatio,
	}
}

// toWorldAim は回転適用済みの正規化座標をワールドのエイム点へ写像します。
func (ad *GestureAdapter) toWorldAim(p domain.Vec3) domain.Vec3 {
	nx, ny := ad.rotate(p.X, p.Y)
	return vec3(
		(0.5-nx)*AimSpanX, // カメラ像は左右反転
		AimBaseY+(1-ny)*AimSpanY,
		AimOriginZ,
	)
}

// rotate は画像中心(0.5, 0.5)まわりの純回転です。物理には影響しません。
func (ad *GestureAdapter) rotate(x, y float32) (float32, float32) {
	cx := x - 0.5
	cy := y - 0.5
	switch ad.rotation {
	case 90:
		cx, cy = -cy, cx
	case 180:
		cx, cy = -cx, -cy
	case 270:
		cx, cy = cy, -cx
	}
	return cx + 0.5, cy + 0.5
}
