// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"sync"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"

	"github.com/2dChan/r2geom"
	"github.com/2dChan/r2geom/utils"
)

func TestRegions_TwoSites(t *testing.T) {
	sites := []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	bounds := r2.RectFromPoints(r2.Point{X: -5, Y: -5}, r2.Point{X: 15, Y: 10})
	d := mustNewDiagram(t, sites, bounds)

	regions := d.Regions()
	if len(regions) != 2 {
		t.Fatalf("len(d.Regions()) = %d, want 2", len(regions))
	}
	want0 := []r2.Point{{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 5, Y: 10}, {X: -5, Y: 10}}
	want1 := []r2.Point{{X: 5, Y: -5}, {X: 15, Y: -5}, {X: 15, Y: 10}, {X: 5, Y: 10}}
	if !cyclicEqualPoints(regions[0], want0) {
		t.Errorf("d.Regions()[0] = %v, want cyclic permutation of %v", regions[0], want0)
	}
	if !cyclicEqualPoints(regions[1], want1) {
		t.Errorf("d.Regions()[1] = %v, want cyclic permutation of %v", regions[1], want1)
	}
}

func TestRegions_CollinearSites(t *testing.T) {
	sites := []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}}
	bounds := r2.RectFromPoints(r2.Point{X: -5, Y: -5}, r2.Point{X: 25, Y: 5})
	d := mustNewDiagram(t, sites, bounds)

	regions := d.Regions()
	want := [][]r2.Point{
		{{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 5, Y: 5}, {X: -5, Y: 5}},
		{{X: 5, Y: -5}, {X: 15, Y: -5}, {X: 15, Y: 5}, {X: 5, Y: 5}},
		{{X: 15, Y: -5}, {X: 25, Y: -5}, {X: 25, Y: 5}, {X: 15, Y: 5}},
	}
	for i := range want {
		if !cyclicEqualPoints(regions[i], want[i]) {
			t.Errorf("d.Regions()[%d] = %v, want cyclic permutation of %v", i, regions[i], want[i])
		}
	}
}

func TestRegions_SquareSites(t *testing.T) {
	sites := []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	bounds := r2.RectFromPoints(r2.Point{X: -5, Y: -5}, r2.Point{X: 15, Y: 15})
	d := mustNewDiagram(t, sites, bounds)

	regions := d.Regions()
	want := [][]r2.Point{
		{{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 5, Y: 5}, {X: -5, Y: 5}},
		{{X: 5, Y: -5}, {X: 15, Y: -5}, {X: 15, Y: 5}, {X: 5, Y: 5}},
		{{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 15}, {X: 5, Y: 15}},
		{{X: -5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 15}, {X: -5, Y: 15}},
	}
	for i := range want {
		if !cyclicEqualPoints(regions[i], want[i]) {
			t.Errorf("d.Regions()[%d] = %v, want cyclic permutation of %v", i, regions[i], want[i])
		}
	}
}

func TestRegions_SingleSite(t *testing.T) {
	sites := []r2.Point{{X: 3, Y: 4}}
	bounds := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 10})
	d := mustNewDiagram(t, sites, bounds)

	regions := d.Regions()
	want := []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if !cyclicEqualPoints(regions[0], want) {
		t.Errorf("d.Regions()[0] = %v, want cyclic permutation of %v", regions[0], want)
	}
}

func TestRegions_DuplicateSitesShareShape(t *testing.T) {
	sites := []r2.Point{{X: 2, Y: 3}, {X: 2, Y: 3}, {X: 8, Y: 7}}
	bounds := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 10})
	d := mustNewDiagram(t, sites, bounds)

	regions := d.Regions()
	if diff := cmp.Diff(regions[0], regions[1]); diff != "" {
		t.Errorf("duplicate site region mismatch (-want +got):\n%s", diff)
	}
	if &regions[0][0] == &regions[1][0] {
		t.Errorf("duplicate sites alias one polygon, want independent copies")
	}
}

func TestRegions_RandomProperties(t *testing.T) {
	bounds := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 100, Y: 100})
	sites := utils.GenerateRandomPoints(80, 3, bounds)
	d := mustNewDiagram(t, sites, bounds)

	for i, region := range d.Regions() {
		if len(region) < 3 {
			t.Errorf("d.Regions()[%d] has %d vertices, want at least 3", i, len(region))
			continue
		}
		if !r2geom.IsCCW(region) {
			t.Errorf("d.Regions()[%d] is not counter-clockwise", i)
		}
		for j, p := range region {
			if p == region[(j+1)%len(region)] {
				t.Errorf("d.Regions()[%d] repeats point (%v, %v)", i, p.X, p.Y)
			}
			if !d.Bounds.ContainsPoint(p) {
				t.Errorf("d.Regions()[%d][%d] = (%v, %v) lies outside d.Bounds", i, j, p.X, p.Y)
			}
		}
		if r2geom.PolygonLocation(region, sites[i], 1e-9) == r2geom.Outside {
			t.Errorf("d.Regions()[%d] does not contain its site (%v, %v)", i, sites[i].X, sites[i].Y)
		}
	}
}

func TestRegions_CornerCoverage(t *testing.T) {
	bounds := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 100, Y: 100})
	sites := utils.GenerateRandomPoints(40, 4, bounds)
	d := mustNewDiagram(t, sites, bounds)

	points := make(map[r2.Point]bool)
	for _, region := range d.Regions() {
		for _, p := range region {
			points[p] = true
		}
	}
	for i, corner := range d.Bounds.Vertices() {
		if !points[corner] {
			t.Errorf("corner %d at (%v, %v) appears in no region", i, corner.X, corner.Y)
		}
	}
}

func TestRegions_RegionAreasTileBounds(t *testing.T) {
	bounds := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 100, Y: 100})
	sites := utils.GenerateRandomPoints(30, 6, bounds)
	d := mustNewDiagram(t, sites, bounds)

	var total float64
	for _, region := range d.Regions() {
		total += r2geom.SignedArea(region)
	}
	want := d.Bounds.Size().X * d.Bounds.Size().Y
	if got := total; got < want-1e-6 || got > want+1e-6 {
		t.Errorf("region areas sum to %v, want %v", got, want)
	}
}

func TestRegions_CachedUntilCleared(t *testing.T) {
	bounds := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 50, Y: 50})
	sites := utils.GenerateRandomPoints(20, 5, bounds)
	d := mustNewDiagram(t, sites, bounds)

	first := d.Regions()
	second := d.Regions()
	if &first[0] != &second[0] {
		t.Errorf("second d.Regions() call rebuilt the cache, want the same slices")
	}

	d.ClearRegions()
	third := d.Regions()
	if diff := cmp.Diff(first, third); diff != "" {
		t.Errorf("regions differ after ClearRegions (-want +got):\n%s", diff)
	}
}

func TestRegions_ConcurrentAccess(t *testing.T) {
	bounds := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 50, Y: 50})
	sites := utils.GenerateRandomPoints(64, 8, bounds)
	d := mustNewDiagram(t, sites, bounds)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(clear bool) {
			defer wg.Done()
			for range 25 {
				if clear {
					d.ClearRegions()
				}
				if regions := d.Regions(); len(regions) != len(d.Sites) {
					t.Errorf("len(d.Regions()) = %d, want %d", len(regions), len(d.Sites))
					return
				}
			}
		}(i%2 == 0)
	}
	wg.Wait()
}

func TestRegion_IndexOutOfRange(t *testing.T) {
	sites := []r2.Point{{X: 1, Y: 1}, {X: 9, Y: 9}}
	bounds := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 10})
	d := mustNewDiagram(t, sites, bounds)

	if _, err := d.Region(0); err != nil {
		t.Errorf("d.Region(0) error = %v, want nil", err)
	}
	if _, err := d.Region(-1); err == nil {
		t.Errorf("d.Region(-1) error = nil, want non-nil")
	}
	if _, err := d.Region(2); err == nil {
		t.Errorf("d.Region(2) error = nil, want non-nil")
	}
}

// Helpers

func cyclicEqualPoints(a, b []r2.Point) bool {
	if len(a) != len(b) {
		return false
	}

	n := len(a)
	for i := range n {
		if b[0] != a[i] {
			continue
		}

		equal := true
		for j := range n {
			if a[(i+j)%n] != b[j] {
				equal = false
				break
			}
		}
		if equal {
			return true
		}
	}

	return false
}
