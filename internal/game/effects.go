package game

import (
	"slices"
	"time"

	"github.com/yash113gadia/CampusQuest/internal/model"
)

// Delays used by the reward sequence and the feedback layer.
const (
	GoldDelay       = 200 * time.Millisecond
	IdleDelay       = 500 * time.Millisecond
	FloatingTextTTL = time.Second
)

// Effect is an action to dispatch once Delay has passed.
type Effect struct {
	Delay  time.Duration
	Action Action
}

type pendingEffect struct {
	at     time.Time
	seq    uint64
	action Action
}

// EffectQueue orders deferred actions by due time. Effects due at the same
// instant come out in the order they were scheduled. It does no timing of its
// own, so callers drive it with any clock. Not safe for concurrent use.
type EffectQueue struct {
	items []pendingEffect
	seq   uint64
}

// Schedule queues e to fire at at+e.Delay.
func (q *EffectQueue) Schedule(at time.Time, e Effect) {
	q.seq++
	p := pendingEffect{at: at.Add(e.Delay), seq: q.seq, action: e.Action}
	i, _ := slices.BinarySearchFunc(q.items, p, func(a, b pendingEffect) int {
		if c := a.at.Compare(b.at); c != 0 {
			return c
		}
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})
	q.items = slices.Insert(q.items, i, p)
}

// ScheduleAll queues every effect relative to now.
func (q *EffectQueue) ScheduleAll(now time.Time, effects []Effect) {
	for _, e := range effects {
		q.Schedule(now, e)
	}
}

// Due removes and returns the actions due at or before now, in firing order.
func (q *EffectQueue) Due(now time.Time) []Action {
	n := 0
	for n < len(q.items) && !q.items[n].at.After(now) {
		n++
	}
	if n == 0 {
		return nil
	}
	out := make([]Action, n)
	for i := range n {
		out[i] = q.items[i].action
	}
	q.items = slices.Delete(q.items, 0, n)
	return out
}

// Drain removes and returns every pending action in firing order, whether due
// or not.
func (q *EffectQueue) Drain() []Action {
	out := make([]Action, len(q.items))
	for i, p := range q.items {
		out[i] = p.action
	}
	q.items = nil
	return out
}

// Next reports when the earliest pending effect is due.
func (q *EffectQueue) Next() (time.Time, bool) {
	if len(q.items) == 0 {
		return time.Time{}, false
	}
	return q.items[0].at, true
}

// Cancel drops every pending effect.
func (q *EffectQueue) Cancel() {
	q.items = nil
}

func (q *EffectQueue) Len() int {
	return len(q.items)
}

// NewFloatingTexts returns the floating texts present in after but not before.
func NewFloatingTexts(before, after State) []model.FloatingText {
	if len(after.FloatingTexts) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(before.FloatingTexts))
	for _, ft := range before.FloatingTexts {
		seen[ft.ID] = true
	}
	var out []model.FloatingText
	for _, ft := range after.FloatingTexts {
		if !seen[ft.ID] {
			out = append(out, ft)
		}
	}
	return out
}

// ExpireFloatingTexts returns a removal effect for every floating text that
// appeared between before and after.
func ExpireFloatingTexts(before, after State) []Effect {
	var out []Effect
	for _, ft := range NewFloatingTexts(before, after) {
		out = append(out, Effect{Delay: FloatingTextTTL, Action: RemoveFloatingText{ID: ft.ID}})
	}
	return out
}
