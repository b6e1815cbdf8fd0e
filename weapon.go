package main

import "math"

// WeaponKind identifies an equippable weapon
type WeaponKind int

const (
	WeaponBlaster WeaponKind = 0 // ammo: erases a disc of trail ahead
	WeaponTurbo   WeaponKind = 1 // duration: +1 speed while held
	WeaponSlow    WeaponKind = 2 // duration: -1 speed to everyone else while held
)

const (
	BlasterAmmo   = 20
	BlasterRange  = 12 // pixels ahead of the muzzle
	BlasterRadius = 6

	TurboWeaponTicks = 350
	SlowWeaponTicks  = 350
)

// Weapon is an equipped weapon charge. Exactly one of Ammo or Duration
// is non-zero; the item tables only produce one of the two.
type Weapon struct {
	Kind     WeaponKind
	Sprite   int
	Ammo     int
	Duration int
}

// AmmoBased reports whether the weapon fires discrete shots
func (w *Weapon) AmmoBased() bool {
	return w.Ammo > 0
}

// Held reports whether a duration weapon of the given kind is actively
// being used by the player this tick
func (p *Player) holdsWeapon(kind WeaponKind, action bool) bool {
	return p.Alive && action && p.Weapon != nil && !p.Weapon.AmmoBased() && p.Weapon.Kind == kind
}

// updateWeapons resolves weapon use for every player this tick: ammo
// weapons fire on the rising edge of the action input, duration
// weapons drain while held. Exhausted weapons are discarded.
func (g *Game) updateWeapons(inputs [MaxPlayers]Input) {
	for _, p := range g.players {
		if !p.Alive {
			continue
		}
		action := inputs[p.Slot].Action
		w := p.Weapon
		if w == nil {
			p.ActionPressed(action)
			continue
		}

		if w.AmmoBased() {
			if p.ActionPressed(action) {
				g.fireBlaster(p)
				w.Ammo--
				if w.Ammo <= 0 {
					p.Weapon = nil
				}
			}
			continue
		}

		// Duration weapon: drains only while the action is held.
		wasLooping := g.looping[p.Slot]
		if action {
			if !wasLooping {
				g.emitSound(SoundLoopStart, p.Slot)
				g.looping[p.Slot] = true
			}
			w.Duration--
			if w.Duration <= 0 {
				p.Weapon = nil
			}
		}
		if wasLooping && (!action || p.Weapon == nil) {
			g.emitSound(SoundLoopStop, p.Slot)
			g.looping[p.Slot] = false
		}
		p.ActionPressed(action)
	}
}

// fireBlaster erases a small disc of solid cells ahead of the player
func (g *Game) fireBlaster(p *Player) {
	px, py := p.PixelPos()
	rad := float64(p.Heading) * math.Pi / 180
	target := Pixel{
		X: WrapFixed(int(px+math.Cos(rad)*BlasterRange), ArenaWidth),
		Y: WrapFixed(int(py+math.Sin(rad)*BlasterRange), ArenaHeight),
	}
	g.arena.EraseDisc(target, BlasterRadius)
	g.emitSound(SoundFire, p.Slot)
}
