package main

import "math"

const (
	MaxPlayers   = 4
	StepDistance = FixedScale // one pixel per sub-step, in fixed-point units
	TurnStep     = 5          // degrees per sub-step
)

var playerColors = [MaxPlayers]string{"#ff4444", "#44ff44", "#4488ff", "#ffcc44"}

// spawnPoints holds the spawn fraction of the arena and the heading for
// each slot. The table is indexed by slot and shared by every player
// count; unused slots simply stay empty.
var spawnPoints = [MaxPlayers]struct {
	FX, FY  float64
	Heading int
}{
	{0.25, 0.25, 45},
	{0.75, 0.75, 225},
	{0.75, 0.25, 135},
	{0.25, 0.75, 315},
}

// Player is one light cycle. Position is fixed-point (pixels ×1000),
// heading is whole degrees. Exactly one of Weapon's ammo or duration
// charge is set while a weapon is equipped.
type Player struct {
	Slot    int
	Nick    string
	Color   string
	X, Y    int
	Heading int
	Alive   bool
	Trail   []Pixel
	Weapon  *Weapon
	Effects []Effect

	FrameCount     int // drives sub-integer speed cadence
	PortalCooldown int // ticks until the next teleport is allowed

	actionHeld bool // previous tick's action input, for edge detection
	prevX      int  // sub-step start position, fixed-point
	prevY      int
}

// NewPlayer creates a player for a slot at its spawn position
func NewPlayer(slot int, nick string) *Player {
	p := &Player{
		Slot:  slot,
		Nick:  nick,
		Color: playerColors[slot],
	}
	p.ResetForRound()
	return p
}

// ResetForRound puts the player back on its spawn point with a clean
// trail and no weapon or effects
func (p *Player) ResetForRound() {
	sp := spawnPoints[p.Slot]
	p.X = int(sp.FX * ArenaWidth * FixedScale)
	p.Y = int(sp.FY * ArenaHeight * FixedScale)
	p.Heading = sp.Heading
	p.Alive = true
	p.Trail = p.Trail[:0]
	p.Weapon = nil
	p.Effects = p.Effects[:0]
	p.FrameCount = 0
	p.PortalCooldown = 0
	p.actionHeld = false
	p.prevX = p.X
	p.prevY = p.Y
}

// Cell returns the occupancy grid cell the player is currently in
func (p *Player) Cell() Pixel {
	return Pixel{X: p.X / FixedScale, Y: p.Y / FixedScale}
}

// PixelPos returns the player position in float pixels
func (p *Player) PixelPos() (float64, float64) {
	return float64(p.X) / FixedScale, float64(p.Y) / FixedScale
}

// Step advances the player one sub-step: turn, move a fixed distance
// along the heading, wrap toroidally. Returns the cells before and
// after the move.
func (p *Player) Step(input Input) (from, to Pixel) {
	from = p.Cell()
	p.prevX = p.X
	p.prevY = p.Y

	if input.Left {
		p.Heading = NormalizeDeg(p.Heading - TurnStep)
	}
	if input.Right {
		p.Heading = NormalizeDeg(p.Heading + TurnStep)
	}

	rad := float64(p.Heading) * math.Pi / 180
	p.X = WrapFixed(p.X+int(math.Round(math.Cos(rad)*StepDistance)), ArenaWidth*FixedScale)
	p.Y = WrapFixed(p.Y+int(math.Round(math.Sin(rad)*StepDistance)), ArenaHeight*FixedScale)

	return from, p.Cell()
}

// Wrapped reports whether the last sub-step crossed an arena edge
func (p *Player) Wrapped() bool {
	dx := p.X - p.prevX
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - p.prevY
	if dy < 0 {
		dy = -dy
	}
	return dx > 2*StepDistance || dy > 2*StepDistance
}

// HasEffect reports whether a timed effect of the given kind is active
func (p *Player) HasEffect(kind EffectKind) bool {
	for _, e := range p.Effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// AddEffect appends a timed effect
func (p *Player) AddEffect(kind EffectKind, ticks int) {
	p.Effects = append(p.Effects, Effect{Kind: kind, Remaining: ticks})
}

// TickEffects counts down timed effects and drops expired ones
func (p *Player) TickEffects() {
	out := p.Effects[:0]
	for _, e := range p.Effects {
		e.Remaining--
		if e.Remaining > 0 {
			out = append(out, e)
		}
	}
	p.Effects = out
}

// ActionPressed reports a rising edge of the action input and records
// the new state. Holding the input yields true exactly once.
func (p *Player) ActionPressed(action bool) bool {
	pressed := action && !p.actionHeld
	p.actionHeld = action
	return pressed
}

// ToState converts to protocol state
func (p *Player) ToState() PlayerState {
	ps := PlayerState{
		Slot:    p.Slot,
		Nick:    p.Nick,
		Color:   p.Color,
		X:       p.X,
		Y:       p.Y,
		Heading: p.Heading,
		Alive:   p.Alive,
	}
	if p.Weapon != nil {
		ps.WeaponSprite = p.Weapon.Sprite
		ps.WeaponAmmo = p.Weapon.Ammo
		ps.WeaponTicks = p.Weapon.Duration
		ps.HasWeapon = true
	}
	for _, e := range p.Effects {
		ps.Effects = append(ps.Effects, EffectState{Kind: int(e.Kind), Ticks: e.Remaining})
	}
	return ps
}

// applyState overwrites the mirrored scalar fields from a snapshot.
// Trails are merged separately because they are append-only.
func (p *Player) applyState(ps PlayerState) {
	p.Nick = ps.Nick
	p.Color = ps.Color
	p.X = ps.X
	p.Y = ps.Y
	p.Heading = ps.Heading
	p.Alive = ps.Alive
	if ps.HasWeapon {
		p.Weapon = &Weapon{Sprite: ps.WeaponSprite, Ammo: ps.WeaponAmmo, Duration: ps.WeaponTicks}
	} else {
		p.Weapon = nil
	}
	p.Effects = p.Effects[:0]
	for _, e := range ps.Effects {
		p.Effects = append(p.Effects, Effect{Kind: EffectKind(e.Kind), Remaining: e.Ticks})
	}
}
