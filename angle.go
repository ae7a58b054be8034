// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// NormalizeAngle converts a to the equivalent angle in [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a == 2*math.Pi {
		a = 0
	}
	return a
}

// PolarAngle returns the angle of the vector pointing from `from` to `to`,
// measured counter-clockwise from the positive x axis, in [0, 2π).
func PolarAngle(from, to r2.Point) float64 {
	d := to.Sub(from)
	return NormalizeAngle(math.Atan2(d.Y, d.X))
}

// AngleDiff returns the counter-clockwise angular distance from a to b,
// in [0, 2π).
func AngleDiff(a, b float64) float64 {
	return NormalizeAngle(b - a)
}
