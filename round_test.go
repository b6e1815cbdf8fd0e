package main

import "testing"

// newPlayingGame builds a game already in the playing phase with the
// random round furniture stripped, so tests control the arena exactly.
func newPlayingGame(mode GameMode, nicks ...string) *Game {
	g := NewGame(mode, nicks)
	g.round.Phase = PhasePlaying
	g.round.Countdown = 0
	g.items = nil
	g.portal = nil
	return g
}

func TestCountdownOpensPlay(t *testing.T) {
	g := NewGame(ModeFFA, []string{"a", "b"})
	if g.round.Phase != PhaseCountdown {
		t.Fatalf("new round phase = %d, want countdown", g.round.Phase)
	}
	var inputs [MaxPlayers]Input
	for i := 0; i < int(CountdownSeconds*TickRate)+2; i++ {
		g.Tick(inputs)
	}
	if g.round.Phase != PhasePlaying {
		t.Errorf("phase after countdown = %d, want playing", g.round.Phase)
	}
	// The round start cue fires exactly once.
	starts := 0
	for _, ev := range g.sounds {
		if ev.Kind == SoundRoundStart {
			starts++
		}
	}
	if starts != 1 {
		t.Errorf("round start sounds = %d, want 1", starts)
	}
}

func TestRoundEndFFALastAliveWins(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	g.killPlayer(g.players[0])
	g.checkRoundEnd()

	if g.round.Phase != PhaseRoundEnd {
		t.Fatalf("phase = %d, want round end", g.round.Phase)
	}
	if g.round.Winner != 1 {
		t.Errorf("winner = %d, want slot 1", g.round.Winner)
	}
	if g.match.Scores[1] != 1 || g.match.Scores[0] != 0 {
		t.Errorf("scores = %v, want only slot 1 awarded", g.match.Scores)
	}
}

func TestRoundEndAwardsAtMostOnce(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	g.killPlayer(g.players[0])
	g.checkRoundEnd()
	g.checkRoundEnd()
	g.checkRoundEnd()

	if g.match.Scores[1] != 1 {
		t.Errorf("score after repeated checks = %d, want 1", g.match.Scores[1])
	}
}

func TestRoundEndFFADraw(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	g.killPlayer(g.players[0])
	g.killPlayer(g.players[1])
	g.checkRoundEnd()

	if g.round.Winner != WinnerDraw {
		t.Errorf("winner = %d, want draw sentinel", g.round.Winner)
	}
	if g.match.Scores[0] != 0 || g.match.Scores[1] != 0 {
		t.Errorf("draw should award no points, scores = %v", g.match.Scores)
	}
}

func TestRoundEndTeamAwardsWholeTeam(t *testing.T) {
	g := newPlayingGame(ModeTeam, "a", "b", "c", "d")
	// Even slots are one team; kill both of them.
	g.killPlayer(g.players[0])
	g.killPlayer(g.players[2])
	g.checkRoundEnd()

	if g.round.Phase != PhaseRoundEnd {
		t.Fatalf("phase = %d, want round end", g.round.Phase)
	}
	if g.match.Scores[1] != 1 || g.match.Scores[3] != 1 {
		t.Errorf("both odd slots should score, got %v", g.match.Scores)
	}
	if g.match.Scores[0] != 0 || g.match.Scores[2] != 0 {
		t.Errorf("losing team must not score, got %v", g.match.Scores)
	}
	if g.round.Winner != 1 {
		t.Errorf("winner = %d, want lowest winning slot", g.round.Winner)
	}
}

func TestRoundEndTeamContinuesWhileBothAlive(t *testing.T) {
	g := newPlayingGame(ModeTeam, "a", "b", "c", "d")
	g.killPlayer(g.players[0])
	g.killPlayer(g.players[1])
	g.checkRoundEnd()

	if g.round.Phase != PhasePlaying {
		t.Error("round should continue while both teams have a living player")
	}
}

func TestReadyToggleRisingEdge(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	g.round.Phase = PhaseWaitingReady

	var inputs [MaxPlayers]Input
	inputs[0].Action = true
	// Holding the button across many ticks toggles exactly once.
	for i := 0; i < 10; i++ {
		g.toggleReady(inputs)
	}
	if !g.match.Ready[0] {
		t.Error("held press should leave slot 0 ready")
	}
	if g.match.Ready[1] {
		t.Error("slot 1 never pressed, must not be ready")
	}

	// Release, press again: toggles back off.
	inputs[0].Action = false
	g.toggleReady(inputs)
	inputs[0].Action = true
	g.toggleReady(inputs)
	if g.match.Ready[0] {
		t.Error("second press should toggle ready off")
	}
}

func TestWaitingReadyStartsNextRound(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	g.killPlayer(g.players[0])
	g.checkRoundEnd()
	g.round.Phase = PhaseWaitingReady
	prevRound := g.match.Round
	prevLevel := g.match.LevelIndex

	g.match.Ready[0] = true
	g.match.Ready[1] = true
	var inputs [MaxPlayers]Input
	g.handleWaitingReady(inputs)

	if g.match.Round != prevRound+1 {
		t.Errorf("round = %d, want %d", g.match.Round, prevRound+1)
	}
	if g.match.LevelIndex != (prevLevel+1)%len(LevelRotation) {
		t.Errorf("level index = %d, want rotation advance", g.match.LevelIndex)
	}
	if g.round.Phase != PhaseCountdown {
		t.Errorf("phase = %d, want countdown", g.round.Phase)
	}
	if len(g.match.Ready) != 0 {
		t.Error("ready set should reset with the new round")
	}
	// Scores persist across rounds.
	if g.match.Scores[1] != 1 {
		t.Errorf("score should carry into the next round, got %v", g.match.Scores)
	}
	for _, p := range g.players {
		if !p.Alive || len(p.Trail) != 0 {
			t.Error("players should respawn clean for the new round")
		}
	}
}

func TestRoundEndDelayAdvancesToWaiting(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	g.killPlayer(g.players[0])
	g.checkRoundEnd()

	var inputs [MaxPlayers]Input
	for i := 0; i < int(RoundEndDelay*TickRate)+2; i++ {
		g.handleRoundEnd(inputs)
	}
	if g.round.Phase != PhaseWaitingReady {
		t.Errorf("phase = %d, want waiting ready", g.round.Phase)
	}
}
