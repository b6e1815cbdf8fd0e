package main

import "testing"

func TestNormalizeDeg(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 0}, {359, 359}, {360, 0}, {365, 5}, {-5, 355}, {-360, 0}, {725, 5},
	}
	for _, c := range cases {
		if got := NormalizeDeg(c.in); got != c.want {
			t.Errorf("NormalizeDeg(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestWrapFixed(t *testing.T) {
	bound := ArenaWidth * FixedScale
	if got := WrapFixed(bound+500, bound); got != 500 {
		t.Errorf("WrapFixed past bound = %d, want 500", got)
	}
	if got := WrapFixed(-500, bound); got != bound-500 {
		t.Errorf("WrapFixed negative = %d, want %d", got, bound-500)
	}
}

func TestPlayerStepStraight(t *testing.T) {
	p := NewPlayer(0, "a")
	p.Heading = 0
	startX := p.X
	from, to := p.Step(Input{})
	if p.X != startX+StepDistance {
		t.Errorf("heading 0 should move +x by one step, got dx=%d", p.X-startX)
	}
	if to.X != from.X+1 || to.Y != from.Y {
		t.Errorf("cells should advance one pixel in x: from=%v to=%v", from, to)
	}
}

func TestPlayerStepTurn(t *testing.T) {
	p := NewPlayer(0, "a")
	p.Heading = 0
	p.Step(Input{Left: true})
	if p.Heading != 360-TurnStep {
		t.Errorf("left turn heading = %d, want %d", p.Heading, 360-TurnStep)
	}
	p.Heading = 0
	p.Step(Input{Right: true})
	if p.Heading != TurnStep {
		t.Errorf("right turn heading = %d, want %d", p.Heading, TurnStep)
	}
}

func TestPlayerStepWrapsEdge(t *testing.T) {
	p := NewPlayer(0, "a")
	p.Heading = 180 // moving -x
	p.X = 0
	p.Y = 100 * FixedScale
	p.Step(Input{})
	if p.X < (ArenaWidth-2)*FixedScale {
		t.Errorf("stepping off the left edge should wrap to the right, got X=%d", p.X)
	}
	if !p.Wrapped() {
		t.Error("edge crossing should be reported as wrapped")
	}
}

func TestPlayerWrappedFalseForNormalStep(t *testing.T) {
	p := NewPlayer(0, "a")
	p.Heading = 0
	p.Step(Input{})
	if p.Wrapped() {
		t.Error("a mid-arena step should not report wrapped")
	}
}

func TestPlayerActionRisingEdge(t *testing.T) {
	p := NewPlayer(0, "a")
	if !p.ActionPressed(true) {
		t.Error("first press should be a rising edge")
	}
	if p.ActionPressed(true) {
		t.Error("holding should not re-trigger")
	}
	if p.ActionPressed(false) {
		t.Error("release is not a press")
	}
	if !p.ActionPressed(true) {
		t.Error("press after release should trigger again")
	}
}

func TestPlayerEffectLifecycle(t *testing.T) {
	p := NewPlayer(0, "a")
	p.AddEffect(EffectTurbo, 2)
	if !p.HasEffect(EffectTurbo) {
		t.Error("added effect should be active")
	}
	p.TickEffects()
	if !p.HasEffect(EffectTurbo) {
		t.Error("effect should still be active with one tick left")
	}
	p.TickEffects()
	if p.HasEffect(EffectTurbo) {
		t.Error("effect should expire after its ticks run out")
	}
}

func TestPlayerResetForRound(t *testing.T) {
	p := NewPlayer(1, "b")
	p.Alive = false
	p.Trail = append(p.Trail, Pixel{X: 1, Y: 1})
	p.Weapon = &Weapon{Kind: WeaponBlaster, Ammo: 5}
	p.AddEffect(EffectSlow, 100)
	p.PortalCooldown = 50

	p.ResetForRound()

	if !p.Alive || len(p.Trail) != 0 || p.Weapon != nil || len(p.Effects) != 0 || p.PortalCooldown != 0 {
		t.Error("round reset should restore a clean spawn state")
	}
	sp := spawnPoints[1]
	if p.X != int(sp.FX*ArenaWidth*FixedScale) || p.Heading != sp.Heading {
		t.Error("round reset should return the player to its spawn point")
	}
}
