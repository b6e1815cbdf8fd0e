package main

import "testing"

func TestSerializeDrainsTrailDeltas(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	var inputs [MaxPlayers]Input
	for i := 0; i < 10; i++ {
		g.Tick(inputs)
	}

	first := g.Serialize()
	total := 0
	for _, tr := range first.Trails {
		total += len(tr)
	}
	if total == 0 {
		t.Fatal("first snapshot should carry the fresh trail pixels")
	}

	second := g.Serialize()
	for slot, tr := range second.Trails {
		if len(tr) != 0 {
			t.Errorf("slot %d delta not drained: %d pixels", slot, len(tr))
		}
	}
}

func TestSerializeDrainsSounds(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	g.emitSound(SoundPickup, 0)

	first := g.Serialize()
	if len(first.Sounds) != 1 {
		t.Fatalf("first snapshot sounds = %d, want 1", len(first.Sounds))
	}
	second := g.Serialize()
	if len(second.Sounds) != 0 {
		t.Errorf("sounds should appear in at most one snapshot, got %d", len(second.Sounds))
	}
}

func TestSerializeCopiesScores(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	snap := g.Serialize()
	snap.Scores[0] = 99
	if g.match.Scores[0] == 99 {
		t.Error("snapshot scores must not alias game state")
	}
}

func TestMirrorAppendsTrails(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	m := NewMirror()
	var inputs [MaxPlayers]Input

	for i := 0; i < 10; i++ {
		g.Tick(inputs)
		m.Apply(g.Serialize())
	}

	hostTrail := g.players[0].Trail
	mp := m.Player(0)
	if mp == nil {
		t.Fatal("mirror should track slot 0")
	}
	if len(mp.Trail) != len(hostTrail) {
		t.Fatalf("mirror trail = %d pixels, host = %d", len(mp.Trail), len(hostTrail))
	}
	for i, px := range hostTrail {
		if mp.Trail[i] != px {
			t.Fatalf("trail pixel %d diverged: %v vs %v", i, mp.Trail[i], px)
		}
		if !m.Occupied(px) {
			t.Fatalf("mirror occupancy missing %v", px)
		}
	}
}

func TestMirrorOverwritesScalars(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	m := NewMirror()
	var inputs [MaxPlayers]Input
	g.Tick(inputs)
	m.Apply(g.Serialize())

	host := g.players[0]
	mp := m.Player(0)
	if mp.X != host.X || mp.Y != host.Y || mp.Heading != host.Heading || mp.Alive != host.Alive {
		t.Error("mirror scalar state should match the host")
	}
	if mp.Nick != "a" || mp.Color != playerColors[0] {
		t.Error("mirror should carry identity fields")
	}
}

func TestMirrorResetsOnClearEpoch(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	m := NewMirror()
	var inputs [MaxPlayers]Input
	for i := 0; i < 10; i++ {
		g.Tick(inputs)
	}
	m.Apply(g.Serialize())
	if len(m.Player(0).Trail) == 0 {
		t.Fatal("expected mirrored trail before the wipe")
	}

	g.applyInstantEffect(EffectEraser)
	m.Apply(g.Serialize())

	if len(m.Player(0).Trail) != 0 {
		t.Error("mirror should drop its trails when the host wipes")
	}
}

func TestMirrorResetsOnNewRound(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	m := NewMirror()
	var inputs [MaxPlayers]Input
	for i := 0; i < 10; i++ {
		g.Tick(inputs)
	}
	m.Apply(g.Serialize())

	g.match.Round++
	g.initRound()
	m.Apply(g.Serialize())

	if len(m.Player(0).Trail) != 0 {
		t.Error("mirror should reset its trails for a new round")
	}
	if m.match.Round != g.match.Round {
		t.Errorf("mirror round = %d, want %d", m.match.Round, g.match.Round)
	}
}

func TestMirrorForwardsSounds(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	m := NewMirror()
	rec := &soundRecorder{}
	m.SetSoundSink(rec)

	g.emitSound(SoundCrash, 1)
	m.Apply(g.Serialize())

	if rec.count(SoundCrash) != 1 {
		t.Errorf("mirror crash sounds = %d, want 1", rec.count(SoundCrash))
	}
}

func TestMirrorIgnoresUnknownSlots(t *testing.T) {
	m := NewMirror()
	snap := Snapshot{
		Trails: [][]Pixel{nil, nil, nil, nil, nil, {{X: 1, Y: 1}}},
	}
	m.Apply(snap) // must not panic
	if m.Occupied(Pixel{X: 1, Y: 1}) {
		t.Error("trail delta for an untracked slot should be ignored")
	}
}

func TestFullSnapshotSeatsLateJoiner(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	m := NewMirror()
	var inputs [MaxPlayers]Input
	for i := 0; i < 15; i++ {
		g.Tick(inputs)
		m.Apply(g.Serialize())
	}

	late := NewMirror()
	late.Apply(m.FullSnapshot())

	for slot := 0; slot < 2; slot++ {
		want := m.Player(slot).Trail
		got := late.Player(slot).Trail
		if len(got) != len(want) {
			t.Fatalf("slot %d late trail = %d pixels, want %d", slot, len(got), len(want))
		}
	}
	for _, px := range m.Player(0).Trail {
		if !late.Occupied(px) {
			t.Fatalf("late mirror occupancy missing %v", px)
		}
	}
	if late.tick != m.tick {
		t.Errorf("late mirror tick = %d, want %d", late.tick, m.tick)
	}
}
