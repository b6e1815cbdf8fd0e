package main

// segmentEps shrinks the valid parameter range when intersecting two
// movement segments, so segments that merely share an endpoint (players
// leaving adjacent spawn cells) do not count as a crash.
const segmentEps = 1e-6

// cross2D returns the 2D cross product of vectors (bx-ax,by-ay) and (cx-ax,cy-ay).
func cross2D(ax, ay, bx, by, cx, cy float64) float64 {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

// SegmentsIntersect checks whether the open interiors of segments
// p1-p2 and q1-q2 cross, using the parametric form. Collinear overlap
// is treated as no intersection; head-on trail collisions are caught
// by the occupancy check instead.
func SegmentsIntersect(p1x, p1y, p2x, p2y, q1x, q1y, q2x, q2y float64) bool {
	rx := p2x - p1x
	ry := p2y - p1y
	sx := q2x - q1x
	sy := q2y - q1y

	denom := rx*sy - ry*sx
	if denom == 0 {
		return false
	}

	t := ((q1x-p1x)*sy - (q1y-p1y)*sx) / denom
	u := ((q1x-p1x)*ry - (q1y-p1y)*rx) / denom

	return t > segmentEps && t < 1-segmentEps && u > segmentEps && u < 1-segmentEps
}

// pointInTriangle checks if point (px,py) is inside triangle (ax,ay)-(bx,by)-(cx,cy).
func pointInTriangle(px, py, ax, ay, bx, by, cx, cy float64) bool {
	d1 := cross2D(ax, ay, bx, by, px, py)
	d2 := cross2D(bx, by, cx, cy, px, py)
	d3 := cross2D(cx, cy, ax, ay, px, py)
	hasNeg := (d1 < 0) || (d2 < 0) || (d3 < 0)
	hasPos := (d1 > 0) || (d2 > 0) || (d3 > 0)
	return !(hasNeg && hasPos)
}

// CheckCircleHit checks if a point is within radius of a center
func CheckCircleHit(cx, cy, r, px, py float64) bool {
	dx := px - cx
	dy := py - cy
	return dx*dx+dy*dy <= r*r
}

// CheckSquareHit checks if a point is inside an axis-aligned square of
// the given half extent around a center
func CheckSquareHit(cx, cy, half, px, py float64) bool {
	dx := px - cx
	if dx < 0 {
		dx = -dx
	}
	dy := py - cy
	if dy < 0 {
		dy = -dy
	}
	return dx <= half && dy <= half
}

// CheckTriangleHit checks if a point is inside the upright triangle
// inscribed in a circle of the given radius around a center. Mystery
// pickups use this shape regardless of their category.
func CheckTriangleHit(cx, cy, r, px, py float64) bool {
	// Vertices at 90, 210 and 330 degrees: apex up, flat base.
	const cos30 = 0.8660254037844386
	ax, ay := cx, cy-r
	bx, by := cx-r*cos30, cy+r/2
	tx, ty := cx+r*cos30, cy+r/2
	return pointInTriangle(px, py, ax, ay, bx, by, tx, ty)
}
