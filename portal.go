package main

import "math"

const (
	PortalRadius         = 12.0 // pickup radius around either endpoint
	PortalMinSeparation  = 150.0
	PortalSpawnClearance = 100.0
	PortalAttempts       = 25
	PortalCooldownTicks  = 90
	PortalFrameCount     = 32 // animation frames, cycled once per tick
	PortalExitGap        = 2  // pixels past the ring on exit
)

// Portal is one teleport pair for the current round
type Portal struct {
	ID    int
	A, B  Pixel
	Frame int
}

// placePortal tries to place a portal pair by rejection sampling: the
// endpoints must be far enough from each other and from every spawn
// point. Running out of attempts yields no portal this round.
func placePortal(players []*Player) *Portal {
	endpoints := make([]Pixel, 0, 2)
	for attempt := 0; attempt < PortalAttempts && len(endpoints) < 2; attempt++ {
		x := randIntn(ArenaWidth)
		y := randIntn(ArenaHeight)

		ok := true
		for _, p := range players {
			sp := spawnPoints[p.Slot]
			sx := sp.FX * ArenaWidth
			sy := sp.FY * ArenaHeight
			if Distance(sx, sy, float64(x), float64(y)) < PortalSpawnClearance {
				ok = false
				break
			}
		}
		if ok && len(endpoints) == 1 {
			a := endpoints[0]
			if Distance(float64(a.X), float64(a.Y), float64(x), float64(y)) < PortalMinSeparation {
				ok = false
			}
		}
		if ok {
			endpoints = append(endpoints, Pixel{X: x, Y: y})
		}
	}
	if len(endpoints) < 2 {
		return nil
	}
	return &Portal{ID: 1, A: endpoints[0], B: endpoints[1]}
}

// updatePortal advances the animation and teleports touching players.
// A teleported player exits the opposite endpoint's outer ring along
// its current heading and gets a cooldown so it does not bounce
// straight back.
func (g *Game) updatePortal() {
	if g.portal == nil {
		return
	}
	g.portal.Frame = (g.portal.Frame + 1) % PortalFrameCount

	for _, p := range g.players {
		if p.PortalCooldown > 0 {
			p.PortalCooldown--
		}
		if !p.Alive || p.PortalCooldown > 0 {
			continue
		}
		px, py := p.PixelPos()
		var exit Pixel
		switch {
		case CheckCircleHit(float64(g.portal.A.X), float64(g.portal.A.Y), PortalRadius, px, py):
			exit = g.portal.B
		case CheckCircleHit(float64(g.portal.B.X), float64(g.portal.B.Y), PortalRadius, px, py):
			exit = g.portal.A
		default:
			continue
		}

		rad := float64(p.Heading) * math.Pi / 180
		offset := PortalRadius + PortalExitGap
		ex := float64(exit.X) + math.Cos(rad)*offset
		ey := float64(exit.Y) + math.Sin(rad)*offset
		p.X = WrapFixed(int(ex*FixedScale), ArenaWidth*FixedScale)
		p.Y = WrapFixed(int(ey*FixedScale), ArenaHeight*FixedScale)
		p.prevX = p.X
		p.prevY = p.Y
		p.PortalCooldown = PortalCooldownTicks
		g.emitSound(SoundTeleport, p.Slot)
	}
}
