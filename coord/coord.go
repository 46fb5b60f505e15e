// Package coord provides the single-precision 2D/3D point abstractions,
// winding/orientation helpers, and the clockwise polar-angle comparator
// that the dcel package's linker relies on to keep a vertex's outgoing
// half-edges in rotational order.
package coord

// Precision is the floating-point type used throughout the engine. The
// engine makes no numerical-robustness guarantee beyond single precision.
type Precision = float32

// Coordinate is implemented by caller-supplied point-like values, read
// through the X, Y, Z and XY helpers below. The engine's own Vertex.Coord
// field is always a concrete [3]Precision, and no Dcel constructor or
// operator takes a Coordinate.
type Coordinate interface {
	XYZ() [3]Precision
}

// XYZ2 is the 2-tuple convenience form of a caller-supplied coordinate.
type XYZ2 [2]Precision

func (c XYZ2) XYZ() [3]Precision { return [3]Precision{c[0], c[1], 0} }

// XYZ3 is the 3-tuple convenience form of a caller-supplied coordinate.
type XYZ3 [3]Precision

func (c XYZ3) XYZ() [3]Precision { return c }

// XY returns the first two components of c.
func XY(c Coordinate) [2]Precision {
	xyz := c.XYZ()
	return [2]Precision{xyz[0], xyz[1]}
}

// X returns the first component of c.
func X(c Coordinate) Precision { return c.XYZ()[0] }

// Y returns the second component of c.
func Y(c Coordinate) Precision { return c.XYZ()[1] }

// Z returns the third component of c.
func Z(c Coordinate) Precision { return c.XYZ()[2] }

// Winding is the rotational sense of a boundary cycle.
type Winding int

const (
	Clockwise Winding = iota
	CounterClockwise
)

// Flip returns the opposite winding.
func (w Winding) Flip() Winding {
	if w == Clockwise {
		return CounterClockwise
	}
	return Clockwise
}

// Orientation classifies the sign of a signed area or angle: strictly
// positive (counter-clockwise), strictly negative (clockwise), or exactly
// zero (neutral/degenerate).
type Orientation int

const (
	OrientationNeutral Orientation = iota
	OrientationClockwise
	OrientationCounterClockwise
)

// OrientationOf classifies a signed area (or any signed magnitude whose
// sign carries winding information).
func OrientationOf(signedArea Precision) Orientation {
	switch {
	case signedArea > 0:
		return OrientationCounterClockwise
	case signedArea < 0:
		return OrientationClockwise
	default:
		return OrientationNeutral
	}
}

func (o Orientation) IsCW() bool      { return o == OrientationClockwise }
func (o Orientation) IsCCW() bool     { return o == OrientationCounterClockwise }
func (o Orientation) IsNeutral() bool { return o == OrientationNeutral }

// SortClockwise compares two points a, b by their clockwise angular position
// around center, returning a negative number if a sorts before b and a
// positive number otherwise. It never returns 0: two points at the same angle
// and the same distance from center compare as positive in either order.
// The linker uses this to keep a vertex's outgoing half-edges in
// rotational order without ever computing an actual angle.
//
// The comparison partitions the plane into the right half (x >= cx) and the
// left half (x < cx) and orders the right half first, matching a clock face
// read starting at 12 o'clock and sweeping clockwise. Within a half, the sign
// of the 2D cross product of (a-center) and (b-center) decides the order;
// points exactly on the vertical axis through center, or exactly collinear
// with each other through center, fall back to secondary tie-breaks (y-sign,
// then squared distance, farther first).
func SortClockwise(center, a, b [2]Precision) int {
	ax, ay := a[0]-center[0], a[1]-center[1]
	bx, by := b[0]-center[0], b[1]-center[1]

	if ax >= 0 && bx < 0 {
		return -1
	}
	if ax < 0 && bx >= 0 {
		return 1
	}

	if ax == 0 && bx == 0 {
		if ay >= 0 || by >= 0 {
			if ay > by {
				return -1
			}
			return 1
		}
		if by > ay {
			return -1
		}
		return 1
	}

	det := ax*by - bx*ay
	if det < 0 {
		return -1
	}
	if det > 0 {
		return 1
	}

	d1 := ax*ax + ay*ay
	d2 := bx*bx + by*by
	if d1 > d2 {
		return -1
	}
	return 1
}

// Shoelace accumulates the signed area of a polygon one boundary edge at a
// time via the shoelace formula, so a traverser can fold over a face's
// half-edge cycle without materializing the vertex list. A positive area is
// counter-clockwise, negative is clockwise, per OrientationOf.
type Shoelace struct {
	areaSum Precision
}

// Add folds in one directed boundary edge from v1 to v2.
func (s *Shoelace) Add(v1, v2 [2]Precision) {
	x, y := v1[0], v1[1]
	x1, y1 := v2[0], v2[1]
	s.areaSum += x*y1 - y*x1
}

// Area returns the signed area accumulated so far.
func (s *Shoelace) Area() Precision { return s.areaSum / 2 }

// Orientation classifies the sign of the accumulated area.
func (s *Shoelace) Orientation() Orientation { return OrientationOf(s.areaSum) }
