package platform

import "slices"

// Snapshot is a point-in-time copy of the game for rendering
type Snapshot struct {
	State      State
	Reason     string
	Score      int
	BestScore  int
	Survival   float64
	Difficulty float64
	Meters     Meters
	Events     []ActiveEvent
	Cooldowns  [actionCount]float64
	Ticker     string
}

// Cooldown returns the snapshot's cooldown for a
func (s *Snapshot) Cooldown(a Action) float64 {
	if !a.Valid() {
		return 0
	}
	return s.Cooldowns[a]
}

// EventActive reports whether k was active when the snapshot was taken
func (s *Snapshot) EventActive(k EventKind) bool {
	return slices.ContainsFunc(s.Events, func(e ActiveEvent) bool { return e.Kind == k })
}

// Snapshot copies the current state
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		State:      g.state,
		Reason:     g.reason,
		Score:      g.score,
		BestScore:  g.best,
		Survival:   g.survival,
		Difficulty: g.Difficulty(),
		Meters:     g.meters,
		Events:     slices.Clone(g.active),
		Cooldowns:  g.cooldowns,
		Ticker:     g.ticker,
	}
}
