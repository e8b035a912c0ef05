package application

import "spearhunt/server/domain"

// resolveCollisions は生存個体とアクティブな投擲物を総当たりで照合します。
// 同tick内で致死ヒットを受けた個体はDyingになり、以後のペアから除外されます
// （2本目の投擲物が同tickで重なっていても過剰キルにならない）。
func (g *Game) resolveCollisions() {
	spears := g.arena.Spears()
	for _, animal := range g.arena.Animals() {
		if !animal.IsAlive() {
			continue
		}
		for _, spear := range spears {
			if !spear.Active || animal.IsStuck(spear.ID) {
				continue
			}
			if domain.Distance(animal.Position, spear.Position) >= HitRadius {
				continue
			}
			g.resolveHit(animal, spear)
			if !animal.IsAlive() {
				break
			}
		}
	}
}

// resolveHit は1件の命中を確定します。
// Healthは種別によらず1減（被弾回数制）。スコア反映と通知は着弾演出の後に
// timeline経由で行われ、死亡時の消滅もtimelineが担います。
func (g *Game) resolveHit(animal *Animal, spear *Spear) {
	if animal.Health > 0 {
		animal.Health--
	}
	spear.Active = false
	spear.HitAnimal = true
	animal.recordStuck(spear.ID)
	g.schedulePrune(spear.ID)

	params := animal.Archetype.Params()
	lethal := animal.Health == 0
	animalID := animal.ID
	spearID := spear.ID
	score := params.Score

	g.timeline.Schedule(g.tick+HitEventDelayTicks, func(g *Game) {
		g.score += score
		g.pushEvent(Event{
			Kind:     EventHit,
			Score:    score,
			AnimalID: animalID,
			SpearID:  spearID,
			Lethal:   lethal,
		})
		g.setNotice(NoticeHit, score, HitNoticeTicks)
	})

	if lethal {
		animal.Lifecycle = LifecycleDying
		g.timeline.Schedule(g.tick+uint64(params.DeathAnimationTicks), func(g *Game) {
			// 到達側が先に消している場合はno-op
			if g.arena.RemoveAnimal(animalID) {
				g.requestRespawn()
			}
		})
	}
}
