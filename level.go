package main

// Level identifies one arena layout. The core never decodes level
// art itself: LevelObstacles produces the obstacle pixel set for a
// level and hands it over through SetLevelObstacles.
type Level struct {
	ID   string
	Name string
}

// LevelRotation is the fixed order rounds cycle through
var LevelRotation = []Level{
	{ID: "open", Name: "Open Grid"},
	{ID: "pillars", Name: "Pillars"},
	{ID: "maze", Name: "Maze"},
}

// CurrentLevel returns the level for the current rotation index
func (g *Game) CurrentLevel() Level {
	return LevelRotation[g.match.LevelIndex%len(LevelRotation)]
}

// SetLevelObstacles replaces the persistent obstacle pixels with a
// freshly loaded level's set. Called once per level load, before play
// resumes.
func (g *Game) SetLevelObstacles(pixels []Pixel) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.arena.SetObstacles(pixels)
}

// LevelObstacles builds the obstacle pixel set for a level. Layouts
// are generated rather than decoded from art, and stay clear of the
// spawn quadrant centers.
func LevelObstacles(lv Level) []Pixel {
	switch lv.ID {
	case "pillars":
		return pillarObstacles()
	case "maze":
		return mazeObstacles()
	default:
		return nil
	}
}

// pillarObstacles places square pillars along the center cross of the
// arena. The quadrant centers stay clear: that is where players spawn.
func pillarObstacles() []Pixel {
	var pixels []Pixel
	const size = 12
	for cy := ArenaHeight / 4; cy <= 3*ArenaHeight/4; cy += ArenaHeight / 4 {
		for cx := ArenaWidth / 4; cx <= 3*ArenaWidth/4; cx += ArenaWidth / 4 {
			if cx != ArenaWidth/2 && cy != ArenaHeight/2 {
				continue
			}
			for dy := -size / 2; dy < size/2; dy++ {
				for dx := -size / 2; dx < size/2; dx++ {
					pixels = append(pixels, Pixel{X: cx + dx, Y: cy + dy})
				}
			}
		}
	}
	return pixels
}

// mazeObstacles draws two horizontal walls with offset gaps, splitting
// the arena into lanes
func mazeObstacles() []Pixel {
	var pixels []Pixel
	const gap = 80
	wall := func(y, gapStart int) {
		for x := 0; x < ArenaWidth; x++ {
			if x >= gapStart && x < gapStart+gap {
				continue
			}
			pixels = append(pixels, Pixel{X: x, Y: y}, Pixel{X: x, Y: y + 1})
		}
	}
	wall(ArenaHeight/3, ArenaWidth/6)
	wall(2*ArenaHeight/3, 2*ArenaWidth/3)
	return pixels
}
