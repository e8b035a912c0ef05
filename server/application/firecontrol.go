package application

import "spearhunt/server/domain"

// FireState は投擲の状態機械の状態です。
type FireState uint8

const (
	FireIdle FireState = iota
	FireGripped
	FireThrowing
)

// FireControlPolicy は発射条件の方式です。
type FireControlPolicy uint8

const (
	// PolicyHandRaise は有効なエイム点があればグリップ、手上げで発射（固定パワー）
	PolicyHandRaise FireControlPolicy = iota
	// PolicyFistPalm は握りでグリップ、開きで発射（パワーメーター往復）
	PolicyFistPalm
)

// GestureInput は入力アダプタが毎tick出力するジェスチャ信号です。
// AimPointがnilの場合はランドマーク喪失を意味します。
type GestureInput struct {
	AimPoint *domain.Vec3
	Grip     bool
	Fire     bool
}

// LaunchOrder は新規投擲物の生成指示です。
type LaunchOrder struct {
	Origin   domain.Vec3
	Velocity domain.Vec3
	Power    float32
}

// FireControl は グリップ→エイム→投擲→クールダウン の状態機械です。
type FireControl struct {
	policy FireControlPolicy
	state  FireState

	// aim はグリップ中に更新され、入力喪失時は最終値を保持する
	aim domain.Vec3

	cooldownTicks uint64
	lastFireTick  uint64
	hasFired      bool

	recoverAtTick uint64
	grippedTicks  uint64 // パワーメーターの位相
}

func NewFireControl(policy FireControlPolicy, cooldownTicks uint64) *FireControl {
	if cooldownTicks == 0 {
		cooldownTicks = DefaultCooldownTicks
	}
	return &FireControl{
		policy:        policy,
		cooldownTicks: cooldownTicks,
		aim:           restAim,
	}
}

func (fc *FireControl) State() FireState {
	return fc.state
}

func (fc *FireControl) Aim() domain.Vec3 {
	return fc.aim
}

// Power は現在のパワー比 [0,1] を返します。
// hand-raise方式は常に最大、fist-palm方式はグリップ時間で三角波往復します。
func (fc *FireControl) Power() float32 {
	if fc.policy == PolicyHandRaise {
		return 1.0
	}
	phase := fc.grippedTicks % PowerCyclePeriodTicks
	half := uint64(PowerCyclePeriodTicks / 2)
	if phase < half {
		return float32(phase) / float32(half)
	}
	return float32(PowerCyclePeriodTicks-phase) / float32(half)
}

// Update は1tick分の入力を処理し、発射があればLaunchOrderを返します。
// クールダウン中の発射要求は無視され、キューイングされません。
func (fc *FireControl) Update(now uint64, in GestureInput) *LaunchOrder {
	if in.AimPoint != nil {
		fc.aim = *in.AimPoint
	}

	gripped := fc.gripSignal(in)

	switch fc.state {
	case FireIdle:
		if gripped {
			fc.state = FireGripped
			fc.grippedTicks = 0
		}
	case FireGripped:
		fc.grippedTicks++
		// 発射判定が先。fist-palm方式では開き=発射と同時にグリップが外れるため、
		// 先にグリップ喪失を見ると投擲が成立しなくなる。
		if in.Fire && fc.canFire(now) {
			order := fc.launch()
			fc.state = FireThrowing
			fc.recoverAtTick = now + ThrowRecoverTicks
			fc.lastFireTick = now
			fc.hasFired = true
			return order
		}
		// Gripped→Idle はランドマーク喪失（エイム点なし）のみ
		if in.AimPoint == nil {
			fc.state = FireIdle
			fc.aim = restAim
		}
	case FireThrowing:
		if now >= fc.recoverAtTick {
			if gripped {
				fc.state = FireGripped
			} else {
				fc.state = FireIdle
				fc.aim = restAim
			}
		}
	}
	return nil
}

func (fc *FireControl) gripSignal(in GestureInput) bool {
	if fc.policy == PolicyHandRaise {
		// エイム点が得られている限りグリップ扱い
		return in.AimPoint != nil
	}
	return in.Grip
}

func (fc *FireControl) canFire(now uint64) bool {
	if !fc.hasFired {
		return true
	}
	return now-fc.lastFireTick >= fc.cooldownTicks
}

func (fc *FireControl) launch() *LaunchOrder {
	p := fc.Power()
	speed := ThrowSpeedMin + p*ThrowSpeedRange
	velocity := vec3(
		0,
		ThrowUpMin+p*ThrowUpRange,
		-speed*(1+p*ThrowDistanceFactor),
	)
	return &LaunchOrder{
		Origin:   fc.aim,
		Velocity: velocity,
		Power:    p,
	}
}

// Reset は状態機械を初期状態へ戻します。クールダウンの履歴も消えます。
func (fc *FireControl) Reset() {
	fc.state = FireIdle
	fc.aim = restAim
	fc.hasFired = false
	fc.lastFireTick = 0
	fc.recoverAtTick = 0
	fc.grippedTicks = 0
}
