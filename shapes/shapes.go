// Package shapes provides canned topology constructors over a Dcel via the
// pen drawing DSL — seeded squares, regular polygons, and a couple of
// multi-face fixtures editing code keeps reaching for. Constructors compose
// by applying a slice of closures in order against a fresh pen.
package shapes

import (
	"errors"
	"math"

	"github.com/go-dcel/dcel"
	"github.com/go-dcel/dcel/arena"
	"github.com/go-dcel/dcel/pen"
)

// ErrTooFewVertices is returned by RegularPolygon for n < 3.
var ErrTooFewVertices = errors.New("shapes: regular polygon needs at least three vertices")

// Constructor applies one deterministic topology mutation to p. Constructors
// compose in Build: the same sequence of constructors against a fresh Dcel
// always yields the same topology.
type Constructor[VW, EW, FW any] func(p *pen.Pen[VW, EW, FW]) error

// Build applies each constructor in order against a fresh pen over d.
func Build[VW, EW, FW any](d *dcel.Dcel[VW, EW, FW], cons ...Constructor[VW, EW, FW]) error {
	p := pen.New(d)
	for _, c := range cons {
		if err := c(p); err != nil {
			return err
		}
	}
	return nil
}

// Hourglass draws two triangles joined by a single bridge edge:
// 6 vertices, 7 twin-pairs, 3 faces (the two triangles plus the unbounded
// bounding face).
func Hourglass[VW, EW, FW any]() Constructor[VW, EW, FW] {
	return func(p *pen.Pen[VW, EW, FW]) error {
		v1, _, err := p.Start([3]float32{-4, -4, 0}, [3]float32{-4, 4, 0})
		if err != nil {
			return err
		}
		if _, err := p.LineTo([3]float32{-1, 0, 0}); err != nil {
			return err
		}
		if _, err := p.ClosePath(v1); err != nil {
			return err
		}

		v4, err := p.LineTo([3]float32{1, 0, 0})
		if err != nil {
			return err
		}
		if _, err := p.LineTo([3]float32{4, -4, 0}); err != nil {
			return err
		}
		if _, err := p.LineTo([3]float32{4, 4, 0}); err != nil {
			return err
		}
		_, err = p.ClosePath(v4)
		return err
	}
}

// Square draws a single seeded square face with corners at the given
// side length centered however the caller's start point dictates; start is
// the bottom-left corner and side must be positive.
func Square[VW, EW, FW any](start [2]float32, side float32) Constructor[VW, EW, FW] {
	return func(p *pen.Pen[VW, EW, FW]) error {
		x, y := start[0], start[1]
		v1, _, err := p.Start([3]float32{x, y, 0}, [3]float32{x + side, y, 0})
		if err != nil {
			return err
		}
		if _, err := p.LineTo([3]float32{x + side, y + side, 0}); err != nil {
			return err
		}
		if _, err := p.LineTo([3]float32{x, y + side, 0}); err != nil {
			return err
		}
		_, err = p.ClosePath(v1)
		return err
	}
}

// RegularPolygon draws a seeded n-gon (n >= 3) of the given radius centered
// at center, with vertices placed starting at angle 0 and proceeding
// clockwise.
func RegularPolygon[VW, EW, FW any](n int, center [2]float32, radius float32) Constructor[VW, EW, FW] {
	return func(p *pen.Pen[VW, EW, FW]) error {
		if n < 3 {
			return ErrTooFewVertices
		}
		point := func(i int) [3]float32 {
			theta := -2 * math.Pi * float64(i) / float64(n)
			return [3]float32{
				center[0] + radius*float32(math.Cos(theta)),
				center[1] + radius*float32(math.Sin(theta)),
				0,
			}
		}

		v1, _, err := p.Start(point(0), point(1))
		if err != nil {
			return err
		}
		for i := 2; i < n; i++ {
			if _, err := p.LineTo(point(i)); err != nil {
				return err
			}
		}
		_, err = p.ClosePath(v1)
		return err
	}
}

// SquareThenExtend draws a seeded square, then a second region extended off
// its bottom-left corner: 6 vertices, 7 twin-pairs, 3 faces.
func SquareThenExtend[VW, EW, FW any]() Constructor[VW, EW, FW] {
	return func(p *pen.Pen[VW, EW, FW]) error {
		start, _, err := p.Start([3]float32{-2, 2, 0}, [3]float32{2, 2, 0})
		if err != nil {
			return err
		}
		if _, err := p.LineTo([3]float32{2, -2, 0}); err != nil {
			return err
		}
		left, err := p.LineTo([3]float32{-2, -2, 0})
		if err != nil {
			return err
		}
		if _, err := p.ClosePath(start); err != nil {
			return err
		}

		if _, err := p.LineTo([3]float32{-4, 2, 0}); err != nil {
			return err
		}
		if _, err := p.LineTo([3]float32{-4, -2, 0}); err != nil {
			return err
		}
		_, err = p.ClosePath(left)
		return err
	}
}

// FaceVertexCount counts the vertices on a face's boundary cycle, the
// polygon degree a caller would compare against what a constructor claims
// to have drawn.
func FaceVertexCount[VW, EW, FW any](d *dcel.Dcel[VW, EW, FW], face arena.Handle[dcel.FaceKey]) (int, error) {
	f := d.Face(face)
	n := 0
	err := d.Through(f.Edge, func(arena.Handle[dcel.EdgeKey]) { n++ })
	return n, err
}
