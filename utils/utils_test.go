// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package utils

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
)

func TestGenerateRandomPoints_Count(t *testing.T) {
	bounds := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 100, Y: 100})
	for _, cnt := range []int{0, 1, 10, 1000} {
		points := GenerateRandomPoints(cnt, 0, bounds)
		if len(points) != cnt {
			t.Errorf("len(GenerateRandomPoints(%d, 0, bounds)) = %d, want %d", cnt, len(points), cnt)
		}
	}
}

func TestGenerateRandomPoints_Deterministic(t *testing.T) {
	bounds := r2.RectFromPoints(r2.Point{X: -50, Y: -50}, r2.Point{X: 50, Y: 50})

	a := GenerateRandomPoints(100, 42, bounds)
	b := GenerateRandomPoints(100, 42, bounds)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed points mismatch (-want +got):\n%s", diff)
	}

	c := GenerateRandomPoints(100, 43, bounds)
	if cmp.Equal(a, c) {
		t.Errorf("different seeds produced identical points")
	}
}

func TestGenerateRandomPoints_WithinBounds(t *testing.T) {
	bounds := r2.RectFromPoints(r2.Point{X: 10, Y: -20}, r2.Point{X: 30, Y: 5})
	points := GenerateRandomPoints(1000, 0, bounds)

	for i, p := range points {
		if !bounds.ContainsPoint(p) {
			t.Errorf("points[%d] = %v outside bounds %v", i, p, bounds)
		}
	}
}
