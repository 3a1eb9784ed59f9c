// Package geom holds the small amount of 2D math shared by the simulators.
package geom

// Point represents a 2D point in logical playfield units
type Point struct {
	X, Y float64
}

// Clamp limits v to [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampInt limits v to [min, max]
func ClampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Approach moves v toward zero by step without crossing it.
func Approach(v, step float64) float64 {
	v -= step
	if v < 0 {
		return 0
	}
	return v
}

// DistSq returns the squared distance between two points
func DistSq(ax, ay, bx, by float64) float64 {
	dx := ax - bx
	dy := ay - by
	return dx*dx + dy*dy
}

// CirclesOverlap reports whether the point (px, py) lies strictly inside a
// circle of radius r around (cx, cy). Callers fold both radii into r.
func CirclesOverlap(px, py, cx, cy, r float64) bool {
	return DistSq(px, py, cx, cy) < r*r
}

// Box is an axis-aligned rectangle described by its center and size.
type Box struct {
	X, Y float64 // Center
	W, H float64
}

// Contains reports whether (px, py) lies strictly inside the box.
func (b Box) Contains(px, py float64) bool {
	return px > b.X-b.W*0.5 &&
		px < b.X+b.W*0.5 &&
		py > b.Y-b.H*0.5 &&
		py < b.Y+b.H*0.5
}
