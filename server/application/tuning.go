package application

// シミュレーション調整用パラメータ。座標はメートル相当、時間はtick（60FPS基準）。

const (
	DefaultTickRate = 60

	// アリーナ境界 Zは奥行き（プレイヤー側0、奥がマイナス）
	ArenaHalfWidth  float32 = 12.0
	ArenaBackstopZ  float32 = -30.0 // 投擲物が刺さる奥の壁
	ArenaFloorY     float32 = 0.0
	PlayerBoundaryZ float32 = -1.5 // 動物の到達ライン

	// 動物の出現位置
	SpawnDepthZ  float32 = -26.0
	SpawnJitterX float32 = 6.0 // ±この範囲で横にばらす
	SpawnHeightY float32 = 0.0

	// 命中判定半径
	HitRadius float32 = 1.4

	// 投擲物理
	Gravity float32 = 24.0 // 下向き加速度 m/s^2

	// 速度式: speed = ThrowSpeedMin + p*ThrowSpeedRange
	//         vz = -speed * (1 + p*ThrowDistanceFactor)
	//         vy = ThrowUpMin + p*ThrowUpRange
	ThrowSpeedMin       float32 = 16.0
	ThrowSpeedRange     float32 = 10.0
	ThrowDistanceFactor float32 = 0.25
	ThrowUpMin          float32 = 2.0
	ThrowUpRange        float32 = 4.5

	// タイマー類（tick単位）
	DefaultCooldownTicks = 90 // 1.5秒
	ThrowRecoverTicks    = 30 // 0.5秒 Throwing→Gripped
	HitEventDelayTicks   = 18 // 0.3秒 着弾演出の後にスコア反映
	SpearPruneTicks      = 45 // 非アクティブ化後の表示猶予
	InitialSpawnTicks    = 60 // セッション開始から初回スポーンまで
	RespawnDelayTicks    = 30 // Removedから補充スポーンまで

	// メッセージ表示時間（tick単位）
	HitNoticeTicks     = 90
	MissNoticeTicks    = 60
	ArrivalNoticeTicks = 90

	// fist-palm方式のパワーメーター往復周期
	PowerCyclePeriodTicks = 120

	// player-health方式の初期HP
	PlayerMaxHP uint8 = 100
)

// エイムのレスト位置（非グリップ時に戻る固定点）
var restAim = vec3(0, 1.4, -0.8)

// ランドマーク正規化座標からワールド座標への写像
const (
	AimSpanX   float32 = 8.0
	AimSpanY   float32 = 3.0
	AimOriginZ float32 = -0.5
	AimBaseY   float32 = 0.5
)
