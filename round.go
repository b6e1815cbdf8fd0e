package main

// Phase is the round lifecycle state
type Phase int

const (
	PhaseCountdown    Phase = 0
	PhasePlaying      Phase = 1
	PhaseRoundEnd     Phase = 2
	PhaseWaitingReady Phase = 3
)

// GameMode defines how a round is won
type GameMode int

const (
	ModeFFA  GameMode = 0
	ModeTeam GameMode = 1 // even slots vs odd slots
)

// Winner sentinels used alongside slot indices
const (
	WinnerNone = -1
	WinnerDraw = -2
)

const (
	CountdownSeconds = 3.0
	RoundEndDelay    = 2.0 // seconds in round_end before ready waiting
	ScoreLimit       = 10  // round wins to take the match
)

// RoundState is reset every round
type RoundState struct {
	Phase     Phase
	Countdown float64
	Winner    int // slot index, WinnerDraw, or WinnerNone
	endTimer  float64
}

// MatchState persists across rounds within a match
type MatchState struct {
	Scores     [MaxPlayers]int
	Round      int
	LevelIndex int
	Ready      map[int]bool
	Mode       GameMode
}

// teamOf returns the team parity of a slot in team mode
func teamOf(slot int) int {
	return slot % 2
}

// handleCountdown burns down the pre-round timer and opens play
func (g *Game) handleCountdown() {
	g.round.Countdown -= 1.0 / TickRate
	if g.round.Countdown <= 0 {
		g.round.Countdown = 0
		g.round.Phase = PhasePlaying
		g.emitSound(SoundRoundStart, -1)
	}
}

// checkRoundEnd evaluates the end condition after a playing tick and
// awards points. Guarded by the phase so a round ends exactly once.
func (g *Game) checkRoundEnd() {
	if g.round.Phase != PhasePlaying {
		return
	}

	switch g.match.Mode {
	case ModeTeam:
		aliveByTeam := [2]int{}
		for _, p := range g.players {
			if p.Alive {
				aliveByTeam[teamOf(p.Slot)]++
			}
		}
		if aliveByTeam[0] > 0 && aliveByTeam[1] > 0 {
			return
		}
		g.round.Phase = PhaseRoundEnd
		g.round.endTimer = RoundEndDelay
		switch {
		case aliveByTeam[0] == 0 && aliveByTeam[1] == 0:
			g.round.Winner = WinnerDraw
		case aliveByTeam[0] > 0:
			g.awardTeam(0)
		default:
			g.awardTeam(1)
		}

	default: // FFA
		var last *Player
		alive := 0
		for _, p := range g.players {
			if p.Alive {
				alive++
				last = p
			}
		}
		if alive > 1 {
			return
		}
		g.round.Phase = PhaseRoundEnd
		g.round.endTimer = RoundEndDelay
		if last == nil {
			g.round.Winner = WinnerDraw
		} else {
			g.round.Winner = last.Slot
			g.match.Scores[last.Slot]++
		}
	}

	if g.onRoundEnd != nil {
		g.onRoundEnd(g.round.Winner)
	}
}

// awardTeam gives every player of the winning parity a point. The
// winner field records the lowest slot of that team.
func (g *Game) awardTeam(team int) {
	g.round.Winner = WinnerNone
	for _, p := range g.players {
		if teamOf(p.Slot) == team {
			g.match.Scores[p.Slot]++
			if g.round.Winner == WinnerNone {
				g.round.Winner = p.Slot
			}
		}
	}
}

// handleRoundEnd accepts early ready toggles and auto-advances to the
// ready-waiting phase after a fixed delay
func (g *Game) handleRoundEnd(inputs [MaxPlayers]Input) {
	g.toggleReady(inputs)
	g.round.endTimer -= 1.0 / TickRate
	if g.round.endTimer <= 0 {
		g.round.Phase = PhaseWaitingReady
	}
}

// handleWaitingReady gathers ready toggles until every player has
// readied up, then starts the next round
func (g *Game) handleWaitingReady(inputs [MaxPlayers]Input) {
	g.toggleReady(inputs)
	// Seated count, not living: a drawn round leaves nobody alive and
	// zero readies must not auto-advance.
	if len(g.match.Ready) >= len(g.players) {
		g.match.Round++
		g.match.LevelIndex = (g.match.LevelIndex + 1) % len(LevelRotation)
		g.initRound()
	}
}

// toggleReady flips a player's ready membership on a rising edge of
// the action input. Holding the button toggles at most once.
func (g *Game) toggleReady(inputs [MaxPlayers]Input) {
	for _, p := range g.players {
		if !p.ActionPressed(inputs[p.Slot].Action) {
			continue
		}
		if g.match.Ready[p.Slot] {
			delete(g.match.Ready, p.Slot)
		} else {
			g.match.Ready[p.Slot] = true
		}
	}
}

// initRound resets the per-round state: occupancy (obstacles stay),
// portals, items, trails and delta buffers, player spawns, then seeds
// a fresh portal pair and the initial item batch
func (g *Game) initRound() {
	g.arena.Reset()
	g.items = g.items[:0]
	for i := range g.trailDelta {
		g.trailDelta[i] = nil
	}
	g.sounds = nil
	for i := range g.looping {
		g.looping[i] = false
	}
	for _, p := range g.players {
		p.ResetForRound()
	}
	g.match.Ready = make(map[int]bool)
	g.portal = placePortal(g.players)
	for i := 0; i < InitialItemBatch; i++ {
		g.spawnItem()
	}
	g.itemCountdown = ItemSpawnMinDelay + randIntn(ItemSpawnMaxDelay-ItemSpawnMinDelay)
	g.round = RoundState{
		Phase:     PhaseCountdown,
		Countdown: CountdownSeconds,
		Winner:    WinnerNone,
	}
}
