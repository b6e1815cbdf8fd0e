package main

// SpeedFactor computes a player's integer speed factor for this tick:
// baseline 1, plus turbo effects and a held turbo weapon, minus slow
// effects and any opponent actively holding a slow weapon.
func SpeedFactor(p *Player, players []*Player, inputs [MaxPlayers]Input) int {
	factor := 1
	if p.HasEffect(EffectTurbo) {
		factor++
	}
	if p.HasEffect(EffectSlow) {
		factor--
	}
	if p.holdsWeapon(WeaponTurbo, inputs[p.Slot].Action) {
		factor++
	}
	for _, other := range players {
		if other.Slot == p.Slot {
			continue
		}
		if other.holdsWeapon(WeaponSlow, inputs[other.Slot].Action) {
			factor--
		}
	}
	return factor
}

// SubSteps converts a speed factor into the number of motion sub-steps
// the player runs this tick. Factors below 1 slow the cadence instead
// of shrinking the step: the player moves one sub-step every
// (2 - factor) ticks, tracked by its frame counter. The formula is
// kept literal for stacked slows (factor -1 moves every 3rd tick).
func SubSteps(p *Player, factor int) int {
	p.FrameCount++
	if factor >= 1 {
		return factor
	}
	interval := 2 - factor
	if p.FrameCount%interval == 0 {
		return 1
	}
	return 0
}
