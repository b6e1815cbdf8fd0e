package main

import "testing"

func TestItemHitShapes(t *testing.T) {
	auto := &Item{Def: automaticDefs[0], X: 100, Y: 100, Active: true}
	crate := &Item{Def: weaponDefs[0], X: 100, Y: 100, Active: true}
	mystery := &Item{Def: weaponDefs[0], X: 100, Y: 100, Active: true, Mystery: true}

	// A corner point: inside the crate's square, outside the circle.
	if auto.HitBy(108, 108) {
		t.Error("corner point should miss the circular item")
	}
	if !crate.HitBy(108, 108) {
		t.Error("corner point should hit the square crate")
	}
	// Mystery pickups use the triangle regardless of category.
	if mystery.HitBy(100, 87) {
		t.Error("point above the triangle apex should miss the mystery item")
	}
	if !mystery.HitBy(100, 100) {
		t.Error("center should hit the mystery item")
	}
}

func TestSpawnItemKeepsPlayerClearance(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	for i := 0; i < 20; i++ {
		g.spawnItem()
	}
	for _, it := range g.items {
		for _, p := range g.players {
			px, py := p.PixelPos()
			if d := Distance(px, py, float64(it.X), float64(it.Y)); d < ItemPlayerClearance {
				t.Fatalf("item %d spawned %.1fpx from a player", it.ID, d)
			}
		}
	}
}

func TestUpdateItemsRespectsPopulationCap(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	for i := 0; i < MaxItems; i++ {
		g.items = append(g.items, &Item{ID: i + 1, Def: automaticDefs[0], X: 10, Y: 10, Active: true})
	}
	g.itemCountdown = 1

	g.updateItems()

	if len(g.items) > MaxItems {
		t.Errorf("item population = %d, exceeds cap %d", len(g.items), MaxItems)
	}
}

func TestUpdateItemsCompactsConsumed(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	g.items = []*Item{
		{ID: 1, Def: automaticDefs[0], X: 10, Y: 10, Active: false},
		{ID: 2, Def: automaticDefs[0], X: 20, Y: 20, Active: true},
	}
	g.itemCountdown = 100

	g.updateItems()

	if len(g.items) != 1 || g.items[0].ID != 2 {
		t.Errorf("consumed items should be dropped, got %d items", len(g.items))
	}
}

func TestPickupTimedEffect(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	p := g.players[0]
	it := &Item{ID: 1, Def: automaticDefs[0], Active: true} // turbo

	g.pickupItem(p, it)

	if it.Active {
		t.Error("picked up item should deactivate")
	}
	if !p.HasEffect(EffectTurbo) {
		t.Error("turbo pickup should grant the effect")
	}
	for _, s := range g.sounds {
		if s.Kind == SoundPickup {
			t.Error("automatic pickups must be silent")
		}
	}
}

func TestPickupInstantEffect(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	p := g.players[0]
	g.arena.Occupy(Pixel{X: 50, Y: 50})
	it := &Item{ID: 1, Def: automaticDefs[3], Active: true} // eraser

	g.pickupItem(p, it)

	if p.HasEffect(EffectEraser) {
		t.Error("instant effect must not linger on the player")
	}
	if g.arena.Occupied(Pixel{X: 50, Y: 50}) {
		t.Error("eraser pickup should wipe the trails immediately")
	}
}

func TestPickupWeaponEquips(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	p := g.players[0]
	it := &Item{ID: 1, Def: weaponDefs[0], Active: true} // blaster

	g.pickupItem(p, it)

	if p.Weapon == nil || p.Weapon.Kind != WeaponBlaster {
		t.Fatalf("blaster crate should equip, got %+v", p.Weapon)
	}
	if p.Weapon.Ammo != BlasterAmmo || p.Weapon.Duration != 0 {
		t.Errorf("blaster should carry ammo only, got %+v", p.Weapon)
	}
	if len(g.sounds) == 0 || g.sounds[0].Kind != SoundPickup {
		t.Error("crate pickup should emit the pickup sound")
	}
}

func TestPickupWeaponReplacesHeld(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	p := g.players[0]
	p.Weapon = &Weapon{Kind: WeaponBlaster, Sprite: 5, Ammo: 3}
	it := &Item{ID: 1, Def: weaponDefs[1], Active: true} // turbo weapon

	g.pickupItem(p, it)

	if p.Weapon.Kind != WeaponTurbo || p.Weapon.Duration != TurboWeaponTicks {
		t.Errorf("new crate should replace the held weapon, got %+v", p.Weapon)
	}
	if p.Weapon.Ammo != 0 {
		t.Errorf("duration weapon must not carry ammo, got %+v", p.Weapon)
	}
}

func TestPickupStopsActiveLoopSound(t *testing.T) {
	g := newPlayingGame(ModeFFA, "a", "b")
	rec := &soundRecorder{}
	g.sink = rec
	p := g.players[0]
	g.looping[0] = true

	g.pickupItem(p, &Item{ID: 1, Def: weaponDefs[0], Active: true})

	if g.looping[0] {
		t.Error("equipping should stop the previous loop sound")
	}
	if rec.count(SoundLoopStop) != 1 {
		t.Errorf("loop stop sounds = %d, want 1", rec.count(SoundLoopStop))
	}
}

func TestWeaponDefsChargeExclusivity(t *testing.T) {
	for _, def := range weaponDefs {
		hasAmmo := def.Ammo > 0
		hasDuration := def.Duration > 0
		if hasAmmo == hasDuration {
			t.Errorf("weapon def sprite %d must carry exactly one of ammo or duration", def.Sprite)
		}
	}
}
