package main

const (
	ArenaWidth  = 640 // playfield width in pixels
	ArenaHeight = 480
	FixedScale  = 1000 // fixed-point sub-pixel scale
)

// Pixel is one occupancy grid cell
type Pixel struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Arena holds the solid ground of the current round: every trail pixel
// ever left by a living cycle plus the obstacle pixels seeded from the
// level image. Trail pixels live until the round resets; obstacle
// pixels survive resets.
type Arena struct {
	occupied  map[Pixel]bool
	obstacles map[Pixel]bool
}

// NewArena creates an empty arena
func NewArena() *Arena {
	return &Arena{
		occupied:  make(map[Pixel]bool),
		obstacles: make(map[Pixel]bool),
	}
}

// Occupied reports whether a cell is solid
func (a *Arena) Occupied(px Pixel) bool {
	return a.occupied[px]
}

// Occupy marks a cell as solid
func (a *Arena) Occupy(px Pixel) {
	a.occupied[px] = true
}

// SetObstacles replaces the level obstacle set. The new pixels are
// solid immediately and re-seeded on every round reset; the previous
// level's obstacles stop being solid.
func (a *Arena) SetObstacles(pixels []Pixel) {
	for px := range a.obstacles {
		delete(a.occupied, px)
	}
	a.obstacles = make(map[Pixel]bool, len(pixels))
	for _, px := range pixels {
		a.obstacles[px] = true
		a.occupied[px] = true
	}
}

// Reset clears all trail occupancy and re-seeds the level obstacles
func (a *Arena) Reset() {
	a.occupied = make(map[Pixel]bool, len(a.obstacles))
	for px := range a.obstacles {
		a.occupied[px] = true
	}
}

// ClearTrails removes every non-obstacle cell (the eraser item)
func (a *Arena) ClearTrails() {
	a.Reset()
}

// EraseDisc removes all solid cells within radius of center, obstacle
// pixels included. Used by the blaster weapon.
func (a *Arena) EraseDisc(center Pixel, radius int) {
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			px := Pixel{
				X: WrapFixed(center.X+dx, ArenaWidth),
				Y: WrapFixed(center.Y+dy, ArenaHeight),
			}
			delete(a.occupied, px)
			delete(a.obstacles, px)
		}
	}
}

// OccupiedCount returns the number of solid cells
func (a *Arena) OccupiedCount() int {
	return len(a.occupied)
}

// CollidesAt checks the landing cell of a move, plus the two elbow
// cells when the move was diagonal. The elbow check stops a cycle from
// slipping through a one-pixel diagonal gap between two trails.
func (a *Arena) CollidesAt(from, to Pixel) bool {
	if a.occupied[to] {
		return true
	}
	if from.X != to.X && from.Y != to.Y {
		if a.occupied[Pixel{X: from.X, Y: to.Y}] || a.occupied[Pixel{X: to.X, Y: from.Y}] {
			return true
		}
	}
	return false
}
