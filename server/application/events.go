package application

// EventKind はセッション内で発生する単発イベントの種別です。
type EventKind uint8

const (
	EventHit EventKind = iota + 1
	EventMiss
	EventArrival
	EventRespawnRequested
	EventGameOver
)

// Event はUI・メッセージ層へ通知する単発イベントです。
// 種別ごとに使わないフィールドはゼロ値のままです。
type Event struct {
	Kind     EventKind
	Score    uint32 // Hit: 獲得スコア / GameOver: 最終スコア
	AnimalID uint32
	SpearID  uint32
	Damage   uint8 // Arrival: 到達個体のダメージ
	Lethal   bool  // Hit: この命中で死亡したか
}
