package main

// ItemCategory splits pickups into round automatic items and square
// weapon crates
type ItemCategory int

const (
	CategoryAutomatic ItemCategory = 0
	CategoryWeapon    ItemCategory = 1
)

const (
	MaxItems            = 5
	InitialItemBatch    = 3
	ItemRadius          = 10.0 // circle radius and square half extent
	MysteryRadius       = 12.0 // triangle circumradius for mystery pickups
	ItemPlayerClearance = 60.0
	ItemSpawnAttempts   = 10
	ItemSpawnMinDelay   = 2 * TickRate // ticks
	ItemSpawnMaxDelay   = 6 * TickRate
	AutomaticWeight     = 0.6 // chance a spawn rolls the automatic table
	MysteryChance       = 0.2
)

// ItemDef describes one entry of a spawn table. Automatic items carry
// an effect; weapon items carry either an ammo or a duration charge.
type ItemDef struct {
	Sprite      int
	Category    ItemCategory
	Effect      EffectKind
	EffectTicks int
	Weapon      WeaponKind
	Ammo        int
	Duration    int
}

var automaticDefs = []ItemDef{
	{Sprite: 0, Category: CategoryAutomatic, Effect: EffectTurbo, EffectTicks: TurboEffectTicks},
	{Sprite: 1, Category: CategoryAutomatic, Effect: EffectSlow, EffectTicks: SlowEffectTicks},
	{Sprite: 2, Category: CategoryAutomatic, Effect: EffectGhost, EffectTicks: GhostEffectTicks},
	{Sprite: 3, Category: CategoryAutomatic, Effect: EffectEraser},
	{Sprite: 4, Category: CategoryAutomatic, Effect: EffectSwap},
}

var weaponDefs = []ItemDef{
	{Sprite: 5, Category: CategoryWeapon, Weapon: WeaponBlaster, Ammo: BlasterAmmo},
	{Sprite: 6, Category: CategoryWeapon, Weapon: WeaponTurbo, Duration: TurboWeaponTicks},
	{Sprite: 7, Category: CategoryWeapon, Weapon: WeaponSlow, Duration: SlowWeaponTicks},
}

// Item is one spawned pickup
type Item struct {
	ID      int
	Def     ItemDef
	X, Y    int // pixels
	Active  bool
	Mystery bool
}

// HitBy tests the pickup collision shape against a player position:
// circle for automatic items, axis-aligned square for weapon crates,
// and a triangle for mystery pickups of either category.
func (it *Item) HitBy(px, py float64) bool {
	cx, cy := float64(it.X), float64(it.Y)
	if it.Mystery {
		return CheckTriangleHit(cx, cy, MysteryRadius, px, py)
	}
	if it.Def.Category == CategoryWeapon {
		return CheckSquareHit(cx, cy, ItemRadius, px, py)
	}
	return CheckCircleHit(cx, cy, ItemRadius, px, py)
}

// spawnItem tries to place one new item away from every player.
// Exhausting the attempt budget skips the spawn; the round stays
// playable with fewer pickups.
func (g *Game) spawnItem() {
	for attempt := 0; attempt < ItemSpawnAttempts; attempt++ {
		x := randIntn(ArenaWidth)
		y := randIntn(ArenaHeight)

		tooClose := false
		for _, p := range g.players {
			px, py := p.PixelPos()
			if p.Alive && Distance(px, py, float64(x), float64(y)) < ItemPlayerClearance {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}

		var def ItemDef
		if randFloat() < AutomaticWeight {
			def = automaticDefs[randIntn(len(automaticDefs))]
		} else {
			def = weaponDefs[randIntn(len(weaponDefs))]
		}

		g.nextItemID++
		g.items = append(g.items, &Item{
			ID:      g.nextItemID,
			Def:     def,
			X:       x,
			Y:       y,
			Active:  true,
			Mystery: randFloat() < MysteryChance,
		})
		return
	}
}

// updateItems runs the spawn scheduler and resolves pickups
func (g *Game) updateItems() {
	// Drop consumed items and count the live population.
	live := g.items[:0]
	for _, it := range g.items {
		if it.Active {
			live = append(live, it)
		}
	}
	g.items = live

	if g.itemCountdown > 0 {
		g.itemCountdown--
	}
	if g.itemCountdown <= 0 {
		if len(g.items) < MaxItems {
			g.spawnItem()
		}
		g.itemCountdown = ItemSpawnMinDelay + randIntn(ItemSpawnMaxDelay-ItemSpawnMinDelay)
	}

	for _, it := range g.items {
		if !it.Active {
			continue
		}
		for _, p := range g.players {
			if !p.Alive {
				continue
			}
			px, py := p.PixelPos()
			if it.HitBy(px, py) {
				g.pickupItem(p, it)
				break
			}
		}
	}
}

// pickupItem consumes an item for a player: automatic items apply
// their effect immediately, weapon crates equip the player. Only the
// crate pickup makes a sound; automatic effects announce themselves.
func (g *Game) pickupItem(p *Player, it *Item) {
	it.Active = false

	def := it.Def
	if def.Category == CategoryAutomatic {
		if def.EffectTicks == 0 {
			g.applyInstantEffect(def.Effect)
		} else {
			p.AddEffect(def.Effect, def.EffectTicks)
		}
		return
	}
	g.emitSound(SoundPickup, p.Slot)
	// Equipping replaces any held weapon; ammo and duration stay
	// mutually exclusive because each def carries only one.
	p.Weapon = &Weapon{
		Kind:     def.Weapon,
		Sprite:   def.Sprite,
		Ammo:     def.Ammo,
		Duration: def.Duration,
	}
	if g.looping[p.Slot] {
		g.emitSound(SoundLoopStop, p.Slot)
		g.looping[p.Slot] = false
	}
}
