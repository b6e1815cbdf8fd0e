package main

// Snapshot is one tick's full replicated state plus the trail pixels
// added since the previous snapshot. Scalar state is overwritten on
// the follower; delta trails are appended, never replaced.
type Snapshot struct {
	Tick uint64 `json:"tk"`

	// Round state
	Phase     int     `json:"ph"`
	Countdown float64 `json:"cd"`
	Winner    int     `json:"w"`

	// Match state
	Scores     []int `json:"sc"`
	Round      int   `json:"rd"`
	LevelIndex int   `json:"lv"`
	Ready      []int `json:"ry"`
	Mode       int   `json:"md"`

	Players []PlayerState `json:"p"`
	Items   []ItemState   `json:"it"`
	Portal  *PortalState  `json:"po,omitempty"`

	// Trail pixels newly emitted since the last snapshot, indexed by slot.
	Trails [][]Pixel `json:"tr"`

	// Incremented whenever the host wipes trails mid-round (eraser
	// item), so mirrors drop their cumulative copies too.
	ClearEpoch int `json:"ce"`

	Sounds []SoundEvent `json:"sn,omitempty"`
}

// Serialize produces the current tick's snapshot and clears the
// per-tick delta buffers: trail segments and sound events appear in at
// most one snapshot.
func (g *Game) Serialize() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap := Snapshot{
		Tick:       g.tick,
		Phase:      int(g.round.Phase),
		Countdown:  g.round.Countdown,
		Winner:     g.round.Winner,
		Scores:     g.match.Scores[:len(g.players)],
		Round:      g.match.Round,
		LevelIndex: g.match.LevelIndex,
		Mode:       int(g.match.Mode),
		Trails:     make([][]Pixel, len(g.players)),
		ClearEpoch: g.clearEpoch,
	}
	snap.Scores = append([]int(nil), snap.Scores...)
	for slot := range g.match.Ready {
		snap.Ready = append(snap.Ready, slot)
	}
	for _, p := range g.players {
		snap.Players = append(snap.Players, p.ToState())
	}
	for _, it := range g.items {
		if !it.Active {
			continue
		}
		snap.Items = append(snap.Items, ItemState{
			ID:      it.ID,
			Sprite:  it.Def.Sprite,
			X:       it.X,
			Y:       it.Y,
			Mystery: it.Mystery,
		})
	}
	if g.portal != nil {
		snap.Portal = &PortalState{
			AX: g.portal.A.X, AY: g.portal.A.Y,
			BX: g.portal.B.X, BY: g.portal.B.Y,
			Frame: g.portal.Frame,
		}
	}

	for i := range g.players {
		snap.Trails[i] = g.trailDelta[i]
		g.trailDelta[i] = nil
	}
	snap.Sounds = g.sounds
	g.sounds = nil

	return snap
}

// Mirror is the follower-side copy of the simulation. It never ticks:
// the only write path is Apply, so a mirror cannot drift into acting
// as a second authority.
type Mirror struct {
	players []*Player
	arena   *Arena
	items   []ItemState
	portal  *PortalState

	round      RoundState
	match      MatchState
	tick       uint64
	clearEpoch int

	sink SoundSink
}

// NewMirror creates an empty follower mirror
func NewMirror() *Mirror {
	return &Mirror{
		arena: NewArena(),
		match: MatchState{Ready: make(map[int]bool)},
	}
}

// SetSoundSink wires a consumer for replicated sound events
func (m *Mirror) SetSoundSink(sink SoundSink) {
	m.sink = sink
}

// Apply merges a received snapshot: scalar state is overwritten
// wholesale, delta trails are appended to the local trail and
// occupancy copies. Delta entries for slots the mirror does not track
// are ignored.
func (m *Mirror) Apply(snap Snapshot) {
	// A fresh round on the host, or a mid-round trail wipe, means the
	// mirror's cumulative trails are stale.
	if snap.Round != m.match.Round || snap.ClearEpoch != m.clearEpoch ||
		(Phase(snap.Phase) == PhaseCountdown && m.round.Phase != PhaseCountdown) {
		m.resetRound()
	}
	m.clearEpoch = snap.ClearEpoch

	m.tick = snap.Tick
	m.round.Phase = Phase(snap.Phase)
	m.round.Countdown = snap.Countdown
	m.round.Winner = snap.Winner
	m.match.Round = snap.Round
	m.match.LevelIndex = snap.LevelIndex
	m.match.Mode = GameMode(snap.Mode)
	m.match.Ready = make(map[int]bool, len(snap.Ready))
	for _, slot := range snap.Ready {
		m.match.Ready[slot] = true
	}
	for i, score := range snap.Scores {
		if i < MaxPlayers {
			m.match.Scores[i] = score
		}
	}

	for _, ps := range snap.Players {
		if ps.Slot < 0 || ps.Slot >= MaxPlayers {
			continue
		}
		for len(m.players) <= ps.Slot {
			m.players = append(m.players, &Player{Slot: len(m.players)})
		}
		m.players[ps.Slot].applyState(ps)
	}

	for slot, pixels := range snap.Trails {
		if slot >= len(m.players) {
			continue
		}
		p := m.players[slot]
		for _, px := range pixels {
			p.Trail = append(p.Trail, px)
			m.arena.Occupy(px)
		}
	}

	m.items = snap.Items
	m.portal = snap.Portal

	if m.sink != nil {
		for _, ev := range snap.Sounds {
			m.sink.OnSound(ev)
		}
	}
}

// SetLevelObstacles seeds the mirror's obstacle pixels, matching the
// host's level load
func (m *Mirror) SetLevelObstacles(pixels []Pixel) {
	m.arena.SetObstacles(pixels)
}

// resetRound clears the mirror's cumulative round state
func (m *Mirror) resetRound() {
	m.arena.Reset()
	for _, p := range m.players {
		p.Trail = p.Trail[:0]
	}
}

// FullSnapshot rebuilds a snapshot carrying the mirror's entire trail
// state as deltas. Used to seat a late joiner whose own mirror is
// empty: regular snapshots only ever carry new pixels.
func (m *Mirror) FullSnapshot() Snapshot {
	snap := Snapshot{
		Tick:       m.tick,
		Phase:      int(m.round.Phase),
		Countdown:  m.round.Countdown,
		Winner:     m.round.Winner,
		Round:      m.match.Round,
		LevelIndex: m.match.LevelIndex,
		Mode:       int(m.match.Mode),
		Items:      m.items,
		Portal:     m.portal,
		Trails:     make([][]Pixel, len(m.players)),
		ClearEpoch: m.clearEpoch,
	}
	for slot := range m.match.Ready {
		snap.Ready = append(snap.Ready, slot)
	}
	for _, p := range m.players {
		snap.Players = append(snap.Players, p.ToState())
		snap.Scores = append(snap.Scores, m.match.Scores[p.Slot])
		snap.Trails[p.Slot] = append([]Pixel(nil), p.Trail...)
	}
	return snap
}

// Player returns the mirrored player for a slot, or nil
func (m *Mirror) Player(slot int) *Player {
	if slot < 0 || slot >= len(m.players) {
		return nil
	}
	return m.players[slot]
}

// Occupied reports whether a cell is solid in the mirror's arena copy
func (m *Mirror) Occupied(px Pixel) bool {
	return m.arena.Occupied(px)
}
