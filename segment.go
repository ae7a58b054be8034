// Package r2geom provides planar geometric primitives and algorithms built on
// the golang/geo r2 types: segments, side and intersection predicates, angle
// and polygon utilities, Voronoi/Delaunay diagram construction and a
// topologically consistent half-edge planar subdivision.

package r2geom

import (
	"math"

	"github.com/golang/geo/r2"
)

const (
	defaultEps = 1e-9
)

// Segment is a directed line segment from A to B.
type Segment struct {
	A, B r2.Point
}

// Midpoint returns the point halfway between A and B.
func (s Segment) Midpoint() r2.Point {
	return s.A.Add(s.B).Mul(0.5)
}

// Length returns the euclidean length of the segment.
func (s Segment) Length() float64 {
	return s.B.Sub(s.A).Norm()
}

// Reversed returns the segment with its endpoints swapped.
func (s Segment) Reversed() Segment {
	return Segment{A: s.B, B: s.A}
}

// Lerp returns the point at parameter t along the segment, with t=0 at A and
// t=1 at B. Values outside [0, 1] extrapolate along the segment's line.
func (s Segment) Lerp(t float64) r2.Point {
	return s.A.Add(s.B.Sub(s.A).Mul(t))
}

// ApproxEqual reports whether both endpoints match o's within a small
// tolerance. Direction matters; compare against o.Reversed() for the
// undirected test.
func (s Segment) ApproxEqual(o Segment) bool {
	return s.A.Sub(o.A).Norm() <= defaultEps && s.B.Sub(o.B).Norm() <= defaultEps
}

// ContainsPoint reports whether p lies on the segment, within eps of its
// supporting line and not beyond either endpoint.
func (s Segment) ContainsPoint(p r2.Point, eps float64) bool {
	d := s.B.Sub(s.A)
	length := d.Norm()
	if length < eps {
		return p.Sub(s.A).Norm() <= eps
	}
	if math.Abs(d.Cross(p.Sub(s.A)))/length > eps {
		return false
	}
	t := p.Sub(s.A).Dot(d) / d.Dot(d)
	return t >= -eps && t <= 1+eps
}

// Intersection returns the point where the two segments cross, including
// endpoint touches. It reports false when the segments do not intersect or
// are parallel; a collinear overlap is not resolved to a point.
func (s Segment) Intersection(o Segment) (r2.Point, bool) {
	d1 := s.B.Sub(s.A)
	d2 := o.B.Sub(o.A)
	denom := d1.Cross(d2)
	if math.Abs(denom) < defaultEps {
		return r2.Point{}, false
	}
	w := o.A.Sub(s.A)
	t := w.Cross(d2) / denom
	u := w.Cross(d1) / denom
	if t < -defaultEps || t > 1+defaultEps || u < -defaultEps || u > 1+defaultEps {
		return r2.Point{}, false
	}
	return s.A.Add(d1.Mul(t)), true
}

// IntersectsRect reports whether any part of the segment lies within r,
// borders included.
func (s Segment) IntersectsRect(r r2.Rect) bool {
	// Liang-Barsky parameter window, without materializing the clipped
	// segment.
	t0, t1 := 0.0, 1.0
	d := s.B.Sub(s.A)
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
		return true
	}
	return clip(-d.X, s.A.X-r.X.Lo) &&
		clip(d.X, r.X.Hi-s.A.X) &&
		clip(-d.Y, s.A.Y-r.Y.Lo) &&
		clip(d.Y, r.Y.Hi-s.A.Y)
}
