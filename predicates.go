// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Side identifies the position of a point relative to a directed line.
// The values match the sign of the corresponding cross product.
type Side int

const (
	SideRight Side = -1
	SideOn    Side = 0
	SideLeft  Side = 1
)

// Orientation returns the side of the directed line a->b on which c lies.
// The test uses the exact sign of the cross product; use OrientationEps when
// the inputs carry rounding error.
func Orientation(a, b, c r2.Point) Side {
	cross := b.Sub(a).Cross(c.Sub(a))
	switch {
	case cross > 0:
		return SideLeft
	case cross < 0:
		return SideRight
	}
	return SideOn
}

// OrientationEps is like Orientation but reports SideOn when the cross
// product's magnitude is at most eps.
func OrientationEps(a, b, c r2.Point, eps float64) Side {
	cross := b.Sub(a).Cross(c.Sub(a))
	switch {
	case cross > eps:
		return SideLeft
	case cross < -eps:
		return SideRight
	}
	return SideOn
}

// LineIntersection returns the intersection of the two infinite lines through
// a1-a2 and b1-b2. It reports false when the lines are parallel or either
// point pair is coincident.
func LineIntersection(a1, a2, b1, b2 r2.Point) (r2.Point, bool) {
	da := a2.Sub(a1)
	db := b2.Sub(b1)
	denom := da.Cross(db)
	if math.Abs(denom) < defaultEps {
		return r2.Point{}, false
	}
	t := b1.Sub(a1).Cross(db) / denom
	return a1.Add(da.Mul(t)), true
}
