package application

import "spearhunt/server/domain"

// ArrivalPolicy は動物到達時の扱いです。
type ArrivalPolicy uint8

const (
	// ArrivalScoreOnly は到達してもプレイヤーは無傷（通知のみ）
	ArrivalScoreOnly ArrivalPolicy = iota
	// ArrivalPlayerHealth は到達ダメージでプレイヤーHPが減り、0でゲームオーバー
	ArrivalPlayerHealth
)

// NoticeKind は画面に一時表示するメッセージの種別です。
type NoticeKind uint8

const (
	NoticeNone NoticeKind = iota
	NoticeHit
	NoticeMiss
	NoticeArrival
)

// Notice は表示中の一時メッセージです。表示時間が過ぎると自動で消えます。
type Notice struct {
	Kind      NoticeKind
	Score     uint32
	expiresAt uint64
}

// GameConfig は1セッション分のゲーム設定です。
type GameConfig struct {
	FirePolicy    FireControlPolicy
	ArrivalPolicy ArrivalPolicy
	CooldownTicks uint64
	TickRate      int
	Seed          uint64
}

// Game は1セッションのシミュレーション全体を調停します。
// すべての状態変更はTickと、Tickがドレインするtimeline作用からのみ行われます。
// 呼び出し側（Room）が単一goroutineで直列化するため、ロックは持ちません。
type Game struct {
	cfg GameConfig
	dt  float32

	arena    *Arena
	fire     *FireControl
	spawner  *Spawner
	timeline *Timeline

	tick     uint64
	score    uint32
	playerHP uint8
	paused   bool
	gameOver bool
	notice   Notice

	events []Event
}

func NewGame(cfg GameConfig) *Game {
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	g := &Game{
		cfg:      cfg,
		dt:       1.0 / float32(cfg.TickRate),
		arena:    NewArena(),
		fire:     NewFireControl(cfg.FirePolicy, cfg.CooldownTicks),
		spawner:  NewSpawner(cfg.Seed),
		timeline: NewTimeline(),
		playerHP: PlayerMaxHP,
	}
	g.spawner.RequestInitial(0)
	return g
}

// Tick はシミュレーションを1tick進め、発生したイベントを返します。
// ポーズ中・ゲームオーバー中もtimelineのドレインは継続します
// （進行中の着弾スコア・死亡演出完了・補充要求は失われない）。
func (g *Game) Tick(in GestureInput) []Event {
	g.tick++
	g.timeline.Drain(g.tick, g)

	if !g.paused && !g.gameOver {
		if order := g.fire.Update(g.tick, in); order != nil {
			g.arena.AddSpear(order.Origin, order.Velocity)
		}
		g.advanceAnimals()
		g.advanceSpears()
		g.resolveCollisions()
		g.materializeSpawns()
	}

	events := g.events
	g.events = nil
	return events
}

// advanceAnimals は生存個体を前進させ、到達を処理します。
// 到達はキルより先に判定されるため、同tickの致死ヒットと競合しても到達が勝ちます。
func (g *Game) advanceAnimals() {
	for _, animal := range g.arena.Animals() {
		if animal.Advance(g.dt) {
			g.handleArrival(animal)
		}
	}
}

// handleArrival は到達個体を即時Removedにします（死亡演出なし）。
func (g *Game) handleArrival(animal *Animal) {
	params := animal.Archetype.Params()
	animal.Lifecycle = LifecycleRemoved
	g.arena.RemoveAnimal(animal.ID)

	g.pushEvent(Event{Kind: EventArrival, AnimalID: animal.ID, Damage: params.Damage})
	g.setNotice(NoticeArrival, 0, ArrivalNoticeTicks)
	g.requestRespawn()

	if g.cfg.ArrivalPolicy == ArrivalPlayerHealth {
		if params.Damage >= g.playerHP {
			g.playerHP = 0
			g.gameOver = true
			g.pushEvent(Event{Kind: EventGameOver, Score: g.score})
		} else {
			g.playerHP -= params.Damage
		}
	}
}

// advanceSpears は投擲物を積分し、終端接触によるミスと破棄を処理します。
func (g *Game) advanceSpears() {
	for _, spear := range g.arena.Spears() {
		contact := spear.Advance(g.dt)
		if contact == ContactNone {
			continue
		}
		// Active→非アクティブの遷移はここかcollisionの一度だけ起きる
		if spear.LatchMiss() {
			g.pushEvent(Event{Kind: EventMiss, SpearID: spear.ID})
			g.setNotice(NoticeMiss, 0, MissNoticeTicks)
		}
		g.schedulePrune(spear.ID)
	}
}

func (g *Game) materializeSpawns() {
	for range g.spawner.Materialize(g.tick, g.arena) {
	}
}

// schedulePrune は非アクティブ化した投擲物の表示猶予後の破棄を予約します。
func (g *Game) schedulePrune(spearID uint32) {
	g.timeline.Schedule(g.tick+SpearPruneTicks, func(g *Game) {
		g.arena.RemoveSpear(spearID)
	})
}

func (g *Game) requestRespawn() {
	g.spawner.Request(g.tick)
	g.pushEvent(Event{Kind: EventRespawnRequested})
}

func (g *Game) pushEvent(ev Event) {
	g.events = append(g.events, ev)
}

// setNotice は一時メッセージを設定し、表示時間経過後の消去を予約します。
func (g *Game) setNotice(kind NoticeKind, score uint32, duration uint64) {
	expires := g.tick + duration
	g.notice = Notice{Kind: kind, Score: score, expiresAt: expires}
	g.timeline.Schedule(expires, func(g *Game) {
		// 後から新しい通知で上書きされていたら消さない
		if g.notice.expiresAt == expires {
			g.notice = Notice{}
		}
	})
}

// Pause はtick駆動の進行を停止します。エンティティ状態は保持されます。
func (g *Game) Pause() {
	g.paused = true
}

// Resume は停止位置からの進行を再開します。
func (g *Game) Resume() {
	g.paused = false
}

// Restart はセッション状態を原子的に初期化します。
func (g *Game) Restart() {
	g.arena.Reset()
	g.timeline.Reset()
	g.spawner.Reset()
	g.fire.Reset()
	g.score = 0
	g.playerHP = PlayerMaxHP
	g.paused = false
	g.gameOver = false
	g.notice = Notice{}
	g.events = nil
	g.spawner.RequestInitial(g.tick)
}

func (g *Game) CurrentTick() uint64 { return g.tick }
func (g *Game) Score() uint32       { return g.score }
func (g *Game) PlayerHP() uint8     { return g.playerHP }
func (g *Game) Paused() bool        { return g.paused }
func (g *Game) IsGameOver() bool    { return g.gameOver }
func (g *Game) Arena() *Arena       { return g.arena }

func (g *Game) FireControl() *FireControl { return g.fire }

// AnimalState はレンダラー向けの動物の読み取り専用コピーです。
type AnimalState struct {
	ID        uint32
	Archetype Archetype
	Lifecycle AnimalLifecycle
	Health    uint8
	MaxHealth uint8
	Position  domain.Vec3
}

// SpearState はレンダラー向けの投擲物の読み取り専用コピーです。
type SpearState struct {
	ID        uint32
	Position  domain.Vec3
	Velocity  domain.Vec3
	Active    bool
	HitAnimal bool
}

// Snapshot はレンダラーへ渡す1tick分の読み取り専用ビューです。
type Snapshot struct {
	Tick      uint64
	Score     uint32
	PlayerHP  uint8
	Paused    bool
	GameOver  bool
	FireState FireState
	Power     float32
	Aim       domain.Vec3
	Notice    NoticeKind
	Animals   []AnimalState
	Spears    []SpearState
}

func (g *Game) Snapshot() Snapshot {
	animals := g.arena.Animals()
	spears := g.arena.Spears()

	snap := Snapshot{
		Tick:      g.tick,
		Score:     g.score,
		PlayerHP:  g.playerHP,
		Paused:    g.paused,
		GameOver:  g.gameOver,
		FireState: g.fire.State(),
		Power:     g.fire.Power(),
		Aim:       g.fire.Aim(),
		Notice:    g.notice.Kind,
		Animals:   make([]AnimalState, 0, len(animals)),
		Spears:    make([]SpearState, 0, len(spears)),
	}
	for _, a := range animals {
		snap.Animals = append(snap.Animals, AnimalState{
			ID:        a.ID,
			Archetype: a.Archetype,
			Lifecycle: a.Lifecycle,
			Health:    a.Health,
			MaxHealth: a.MaxHealth,
			Position:  a.Position,
		})
	}
	for _, s := range spears {
		snap.Spears = append(snap.Spears, SpearState{
			ID:        s.ID,
			Position:  s.Position,
			Velocity:  s.Velocity,
			Active:    s.Active,
			HitAnimal: s.HitAnimal,
		})
	}
	return snap
}
