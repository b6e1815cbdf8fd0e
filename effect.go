package main

// EffectKind identifies a timed or instantaneous player effect
type EffectKind int

const (
	EffectTurbo  EffectKind = 0 // +1 speed factor
	EffectSlow   EffectKind = 1 // -1 speed factor
	EffectGhost  EffectKind = 2 // pass through trails without crashing
	EffectEraser EffectKind = 3 // instantaneous: wipe all trails
	EffectSwap   EffectKind = 4 // instantaneous: rotate living player positions
)

// Effect durations in ticks. Instantaneous effects carry duration 0 and
// resolve the moment they are picked up.
const (
	TurboEffectTicks = 420
	SlowEffectTicks  = 420
	GhostEffectTicks = 280
)

// Effect is one active timed effect on a player
type Effect struct {
	Kind      EffectKind
	Remaining int
}

// applyInstantEffect resolves a duration-0 effect against the whole
// game. Timed effects never reach here.
func (g *Game) applyInstantEffect(kind EffectKind) {
	switch kind {
	case EffectEraser:
		g.arena.ClearTrails()
		for _, p := range g.players {
			p.Trail = p.Trail[:0]
		}
		for i := range g.trailDelta {
			g.trailDelta[i] = nil
		}
		g.clearEpoch++
	case EffectSwap:
		g.swapPositions()
	}
}

// swapPositions rotates position and heading among living players.
// With fewer than two alive it is a no-op.
func (g *Game) swapPositions() {
	living := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		if p.Alive {
			living = append(living, p)
		}
	}
	if len(living) < 2 {
		return
	}
	type pose struct{ x, y, heading int }
	first := pose{living[0].X, living[0].Y, living[0].Heading}
	for i := 0; i < len(living)-1; i++ {
		living[i].X = living[i+1].X
		living[i].Y = living[i+1].Y
		living[i].Heading = living[i+1].Heading
	}
	last := living[len(living)-1]
	last.X = first.x
	last.Y = first.y
	last.Heading = first.heading
}
