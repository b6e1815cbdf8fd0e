package main

import (
	"sync"
	"time"
)

const (
	TickRate        = 70 // simulation ticks per second
	TickDuration    = time.Second / TickRate
	MaxCatchUpTicks = 5 // tick debt drained per frame before discarding
)

// Input is the per-slot steering state for one tick. A missing or
// stale input stays neutral.
type Input struct {
	Left   bool `json:"l"`
	Right  bool `json:"r"`
	Action bool `json:"a"`
}

// Game is the authoritative simulation for one match. Only the host
// instance exists as a Game; followers hold a Mirror and never tick.
type Game struct {
	mu      sync.Mutex
	players []*Player
	arena   *Arena

	items         []*Item
	nextItemID    int
	itemCountdown int
	portal        *Portal

	round RoundState
	match MatchState
	tick  uint64

	// Per-tick delta buffers, drained by Serialize.
	trailDelta [MaxPlayers][]Pixel
	sounds     []SoundEvent
	clearEpoch int // bumped on mid-round trail wipes

	looping [MaxPlayers]bool // duration-weapon loop sound active per slot
	sink    SoundSink

	onRoundEnd func(winner int)
}

// NewGame creates the authoritative game for the given mode with one
// player per nickname, slots assigned in order
func NewGame(mode GameMode, nicks []string) *Game {
	if len(nicks) > MaxPlayers {
		nicks = nicks[:MaxPlayers]
	}
	g := &Game{
		arena: NewArena(),
		match: MatchState{Mode: mode, Ready: make(map[int]bool)},
	}
	for i, nick := range nicks {
		g.players = append(g.players, NewPlayer(i, nick))
	}
	g.initRound()
	return g
}

// SetSoundSink wires a consumer for emitted sound events
func (g *Game) SetSoundSink(sink SoundSink) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sink = sink
}

// SetRoundEndHook registers a callback fired once per round end with
// the winning slot (or a draw sentinel)
func (g *Game) SetRoundEndHook(fn func(winner int)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onRoundEnd = fn
}

// PlayerCount returns the number of players in the match
func (g *Game) PlayerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.players)
}

// Tick advances the simulation one fixed step with the latest input
// per slot
func (g *Game) Tick(inputs [MaxPlayers]Input) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.tick++
	switch g.round.Phase {
	case PhaseCountdown:
		g.handleCountdown()
	case PhasePlaying:
		g.runMovement(inputs)
		g.updateItems()
		g.updateWeapons(inputs)
		g.updatePortal()
		for _, p := range g.players {
			p.TickEffects()
		}
		g.checkRoundEnd()
	case PhaseRoundEnd:
		g.handleRoundEnd(inputs)
	case PhaseWaitingReady:
		g.handleWaitingReady(inputs)
	}
}

// runMovement resolves speed factors into sub-step schedules and runs
// the sub-steps strictly in sequence: later sub-steps collide against
// occupancy written by earlier ones, so all speeds share one spatial
// granularity.
func (g *Game) runMovement(inputs [MaxPlayers]Input) {
	var steps [MaxPlayers]int
	maxSteps := 0
	for _, p := range g.players {
		if !p.Alive {
			continue
		}
		factor := SpeedFactor(p, g.players, inputs)
		steps[p.Slot] = SubSteps(p, factor)
		if steps[p.Slot] > maxSteps {
			maxSteps = steps[p.Slot]
		}
	}

	moved := make([]*Player, 0, len(g.players))
	for s := 0; s < maxSteps; s++ {
		moved = moved[:0]
		for _, p := range g.players {
			if !p.Alive || steps[p.Slot] <= s {
				continue
			}
			from, to := p.Step(inputs[p.Slot])
			if to != from {
				p.Trail = append(p.Trail, from)
				g.trailDelta[p.Slot] = append(g.trailDelta[p.Slot], from)
				g.arena.Occupy(from)
			}
			if !p.HasEffect(EffectGhost) && g.arena.CollidesAt(from, to) {
				g.killPlayer(p)
				continue
			}
			moved = append(moved, p)
		}
		g.checkPlayerCrossings(moved)
	}
}

// checkPlayerCrossings kills both players of any pair whose movement
// segments for this sub-step cross. Catches diagonal pass-throughs the
// cell checks cannot see. Players that wrapped this sub-step are
// skipped: their segment spans the whole arena.
func (g *Game) checkPlayerCrossings(moved []*Player) {
	for i := 0; i < len(moved); i++ {
		for j := i + 1; j < len(moved); j++ {
			a, b := moved[i], moved[j]
			if !a.Alive || !b.Alive || a.Wrapped() || b.Wrapped() {
				continue
			}
			if SegmentsIntersect(
				float64(a.prevX)/FixedScale, float64(a.prevY)/FixedScale,
				float64(a.X)/FixedScale, float64(a.Y)/FixedScale,
				float64(b.prevX)/FixedScale, float64(b.prevY)/FixedScale,
				float64(b.X)/FixedScale, float64(b.Y)/FixedScale,
			) {
				g.killPlayer(a)
				g.killPlayer(b)
			}
		}
	}
}

// killPlayer marks a crash. Dead players stop moving, emitting trail
// and holding loop sounds.
func (g *Game) killPlayer(p *Player) {
	if !p.Alive {
		return
	}
	p.Alive = false
	g.emitSound(SoundCrash, p.Slot)
	if g.looping[p.Slot] {
		g.emitSound(SoundLoopStop, p.Slot)
		g.looping[p.Slot] = false
	}
}

// RunLoop drives the simulation at the fixed tick rate until stop is
// closed, handing each tick's snapshot to the consumer. Wall-clock
// time is accumulated and drained in fixed ticks, capped per frame so
// a stalled process discards its tick debt instead of simulating a
// catch-up burst.
func (g *Game) RunLoop(stop <-chan struct{}, inputs func() [MaxPlayers]Input, onSnapshot func(Snapshot)) {
	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	last := time.Now()
	var acc time.Duration
	for {
		select {
		case now := <-ticker.C:
			acc += now.Sub(last)
			last = now
			due := int(acc / TickDuration)
			if due > MaxCatchUpTicks {
				due = MaxCatchUpTicks
				acc = 0
			} else {
				acc -= time.Duration(due) * TickDuration
			}
			for i := 0; i < due; i++ {
				g.Tick(inputs())
			}
			if due > 0 && onSnapshot != nil {
				onSnapshot(g.Serialize())
			}
		case <-stop:
			return
		}
	}
}
