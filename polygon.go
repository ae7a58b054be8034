// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Location identifies the position of a point relative to a polygon.
type Location int

const (
	Outside Location = iota
	Inside
	Boundary
)

// SignedArea returns the signed area of the polygon: positive when the
// vertices wind counter-clockwise, negative when clockwise. Degenerate
// polygons with fewer than three vertices have zero area.
func SignedArea(poly []r2.Point) float64 {
	var area float64
	n := len(poly)
	for i := range n {
		area += poly[i].Cross(poly[(i+1)%n])
	}
	return area / 2
}

// IsCCW reports whether the polygon winds counter-clockwise.
func IsCCW(poly []r2.Point) bool {
	return SignedArea(poly) > 0
}

// Centroid returns the area centroid of the polygon, regardless of winding.
// For degenerate polygons with near-zero area it falls back to the vertex
// average.
func Centroid(poly []r2.Point) r2.Point {
	var area float64
	var c r2.Point
	n := len(poly)
	for i := range n {
		j := (i + 1) % n
		cross := poly[i].Cross(poly[j])
		area += cross
		c = c.Add(poly[i].Add(poly[j]).Mul(cross))
	}
	if math.Abs(area) < defaultEps {
		c = r2.Point{}
		for _, p := range poly {
			c = c.Add(p)
		}
		return c.Mul(1 / float64(n))
	}
	return c.Mul(1 / (3 * area))
}

// PolygonLocation returns the location of p relative to the polygon, which
// may wind in either direction. Points within eps of an edge report Boundary.
func PolygonLocation(poly []r2.Point, p r2.Point, eps float64) Location {
	n := len(poly)
	if n == 0 {
		return Outside
	}
	inside := false
	for i := range n {
		a, b := poly[i], poly[(i+1)%n]
		if (Segment{A: a, B: b}).ContainsPoint(p, eps) {
			return Boundary
		}
		// Ray crossing test toward +x.
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
	}
	if inside {
		return Inside
	}
	return Outside
}
