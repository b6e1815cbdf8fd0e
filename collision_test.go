package main

import "testing"

func TestSegmentsIntersectCrossing(t *testing.T) {
	// An X shape crosses in the middle.
	if !SegmentsIntersect(0, 0, 10, 10, 0, 10, 10, 0) {
		t.Error("crossing segments should intersect")
	}
}

func TestSegmentsIntersectSharedEndpoint(t *testing.T) {
	// Segments touching only at an endpoint must not count: players
	// leaving adjacent cells would otherwise crash on spawn.
	if SegmentsIntersect(0, 0, 10, 10, 10, 10, 20, 0) {
		t.Error("segments sharing an endpoint should not intersect")
	}
}

func TestSegmentsIntersectParallel(t *testing.T) {
	if SegmentsIntersect(0, 0, 10, 0, 0, 5, 10, 5) {
		t.Error("parallel segments should not intersect")
	}
}

func TestSegmentsIntersectCollinearOverlap(t *testing.T) {
	// Collinear overlap is deliberately no intersection; head-on trail
	// collisions are caught by occupancy instead.
	if SegmentsIntersect(0, 0, 10, 0, 5, 0, 15, 0) {
		t.Error("collinear overlap should not count as intersection")
	}
}

func TestSegmentsIntersectDisjoint(t *testing.T) {
	if SegmentsIntersect(0, 0, 1, 1, 5, 5, 6, 4) {
		t.Error("disjoint segments should not intersect")
	}
}

func TestCheckCircleHit(t *testing.T) {
	if !CheckCircleHit(100, 100, 10, 105, 105) {
		t.Error("point inside circle should hit")
	}
	if CheckCircleHit(100, 100, 10, 108, 108) {
		t.Error("point outside circle should miss")
	}
	// Boundary is inclusive.
	if !CheckCircleHit(100, 100, 10, 110, 100) {
		t.Error("point on circle boundary should hit")
	}
}

func TestCheckSquareHit(t *testing.T) {
	// A corner point outside the inscribed circle is still inside the square.
	if !CheckSquareHit(100, 100, 10, 108, 108) {
		t.Error("corner point should be inside the square")
	}
	if CheckSquareHit(100, 100, 10, 111, 100) {
		t.Error("point past the half extent should miss")
	}
}

func TestCheckTriangleHit(t *testing.T) {
	// Center is always inside.
	if !CheckTriangleHit(100, 100, 12, 100, 100) {
		t.Error("center should be inside the triangle")
	}
	// Just below the apex, still inside.
	if !CheckTriangleHit(100, 100, 12, 100, 92) {
		t.Error("point under the apex should be inside")
	}
	// Above the apex is outside.
	if CheckTriangleHit(100, 100, 12, 100, 87) {
		t.Error("point above the apex should be outside")
	}
	// The triangle is narrower than its circumcircle at the top corners.
	if CheckTriangleHit(100, 100, 12, 109, 91) {
		t.Error("upper corner region should be outside the triangle")
	}
}
