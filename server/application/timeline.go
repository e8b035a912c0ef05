package application

// Timeline は遅延作用のスケジュールキューです。
// setTimeout的な暗黙のタイマーを排し、(dueTick, apply) のエントリとして
// tickループが明示的にドレインします。ポーズ中もドレインは継続し、
// Restart時は全エントリが破棄されます。
type Timeline struct {
	entries []timedEffect
}

type timedEffect struct {
	dueTick uint64
	apply   func(g *Game)
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

// Schedule はdueTick到達時に実行する作用を登録します。
func (t *Timeline) Schedule(dueTick uint64, apply func(g *Game)) {
	t.entries = append(t.entries, timedEffect{dueTick: dueTick, apply: apply})
}

// Drain はnow以前が期限の作用を登録順に実行します。
// 作用の中から新たにScheduleされたエントリは次のDrainまで実行されません。
func (t *Timeline) Drain(now uint64, g *Game) {
	if len(t.entries) == 0 {
		return
	}

	pending := t.entries
	t.entries = nil

	var remaining []timedEffect
	var due []timedEffect
	for _, e := range pending {
		if e.dueTick <= now {
			due = append(due, e)
		} else {
			remaining = append(remaining, e)
		}
	}
	// 実行中のScheduleはt.entriesに積まれるので、残存分を先頭に戻す
	t.entries = append(remaining, t.entries...)

	for _, e := range due {
		e.apply(g)
	}
}

func (t *Timeline) Len() int {
	return len(t.entries)
}

// Reset は未実行の作用をすべて破棄します。
func (t *Timeline) Reset() {
	t.entries = nil
}
