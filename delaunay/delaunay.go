// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package delaunay computes Delaunay triangulations of planar point sets.
//
// The triangulation is read off the lower convex hull of the sites lifted
// onto the paraboloid z = x*x + y*y: hull faces whose outward normal points
// down project exactly onto the Delaunay triangles.
package delaunay

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"

	"github.com/2dChan/r2geom"
)

const (
	defaultEps = 1e-12
)

// Triangulation is a Delaunay triangulation of a planar site set.
//
// Triangles hold site indices in counter-clockwise order. Incident triangle
// lists are stored compressed: the fan around site v occupies
// IncidentTriangleIndices[IncidentTriangleOffsets[v]:IncidentTriangleOffsets[v+1]],
// sorted counter-clockwise. Fans of interior sites are closed cycles; fans of
// hull sites are open and start at the clockwise boundary of the fan.
type Triangulation struct {
	Sites                   []r2.Point
	Triangles               [][3]int
	IncidentTriangleIndices []int
	IncidentTriangleOffsets []int
}

// IncidentTriangles returns the indices of the triangles around site vIdx in
// counter-clockwise order. The slice aliases the triangulation's storage.
func (dt *Triangulation) IncidentTriangles(vIdx int) []int {
	if vIdx < 0 || vIdx+1 >= len(dt.IncidentTriangleOffsets) {
		panic("IncidentTriangles: vIdx out of range")
	}
	start := dt.IncidentTriangleOffsets[vIdx]
	end := dt.IncidentTriangleOffsets[vIdx+1]
	return dt.IncidentTriangleIndices[start:end]
}

// TriangleVertices returns the corner points of triangle tIdx in
// counter-clockwise order.
func (dt *Triangulation) TriangleVertices(tIdx int) (r2.Point, r2.Point, r2.Point) {
	if tIdx < 0 || tIdx >= len(dt.Triangles) {
		panic("TriangleVertices: tIdx out of bounds")
	}
	t := dt.Triangles[tIdx]
	return dt.Sites[t[0]], dt.Sites[t[1]], dt.Sites[t[2]]
}

// Edges returns every unique triangulation edge as a segment, ordered by the
// triangle list.
func (dt *Triangulation) Edges() []r2geom.Segment {
	seen := make(map[[2]int]bool, len(dt.Triangles)*3/2)
	segs := make([]r2geom.Segment, 0, len(dt.Triangles)*3/2)
	for _, t := range dt.Triangles {
		for j := range 3 {
			a, b := t[j], t[(j+1)%3]
			if a > b {
				a, b = b, a
			}
			if seen[[2]int{a, b}] {
				continue
			}
			seen[[2]int{a, b}] = true
			segs = append(segs, r2geom.Segment{A: dt.Sites[a], B: dt.Sites[b]})
		}
	}
	return segs
}

// ConvexHull returns the indices of the sites on the convex hull in
// counter-clockwise order, starting from the lowest hull index. Hull edges
// are the triangulation edges used by exactly one triangle.
func (dt *Triangulation) ConvexHull() []int {
	uses := make(map[[2]int]int, len(dt.Triangles)*3/2)
	for _, t := range dt.Triangles {
		for j := range 3 {
			a, b := t[j], t[(j+1)%3]
			if a > b {
				a, b = b, a
			}
			uses[[2]int{a, b}]++
		}
	}

	// Boundary edges of counter-clockwise triangles run counter-clockwise
	// around the hull, so following them walks the hull in order.
	next := make(map[int]int)
	start := -1
	for _, t := range dt.Triangles {
		for j := range 3 {
			a, b := t[j], t[(j+1)%3]
			lo, hi := a, b
			if lo > hi {
				lo, hi = hi, lo
			}
			if uses[[2]int{lo, hi}] != 1 {
				continue
			}
			next[a] = b
			if start == -1 || a < start {
				start = a
			}
		}
	}
	if start == -1 {
		return nil
	}

	hull := []int{start}
	for b := next[start]; b != start; b = next[b] {
		hull = append(hull, b)
		if len(hull) > len(next) {
			panic("ConvexHull: hull boundary is not a single cycle")
		}
	}
	return hull
}

// TriangulationOptions configures NewTriangulation.
type TriangulationOptions struct {
	// Eps is the epsilon forwarded to the convex hull computation.
	Eps float64
}

// TriangulationOption mutates TriangulationOptions and reports invalid
// settings.
type TriangulationOption func(*TriangulationOptions) error

// WithEps overrides the hull epsilon.
func WithEps(eps float64) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if eps <= 0 {
			return errors.New("delaunay: eps must be positive")
		}
		o.Eps = eps
		return nil
	}
}

// NewTriangulation computes the Delaunay triangulation of sites.
//
// It returns an error when fewer than three sites are given, when a site has
// a non-finite coordinate, or when all sites are collinear. Duplicate sites
// are merged by the hull computation; the surplus indices keep empty fans.
// The sites slice is copied.
func NewTriangulation(sites []r2.Point, setters ...TriangulationOption) (*Triangulation, error) {
	opts := TriangulationOptions{
		Eps: defaultEps,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	numSites := len(sites)
	if numSites < 3 {
		return nil,
			errors.New("delaunay: insufficient sites for triangulation (minimum 3 required)")
	}
	for i, p := range sites {
		if !finite(p.X) || !finite(p.Y) {
			return nil, fmt.Errorf("delaunay: site %d has a non-finite coordinate (%v, %v)", i, p.X, p.Y)
		}
	}
	if collinear(sites) {
		return nil, errors.New("delaunay: all sites are collinear")
	}

	lifted := make([]r3.Vector, numSites)
	for i, p := range sites {
		lifted[i] = r3.Vector{X: p.X, Y: p.Y, Z: p.X*p.X + p.Y*p.Y}
	}
	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(lifted, true, true, opts.Eps)
	if len(ch.Indices)%3 != 0 {
		return nil, errors.New("delaunay: inconsistent number of indices returned from QuickHull")
	}

	triangles := lowerHullTriangles(ch.Indices, sites)
	if len(triangles) == 0 {
		return nil, errors.New("delaunay: degenerate hull produced no triangles")
	}

	dt := &Triangulation{
		Sites:                   append([]r2.Point(nil), sites...),
		Triangles:               triangles,
		IncidentTriangleIndices: make([]int, len(triangles)*3),
		IncidentTriangleOffsets: make([]int, numSites+1),
	}

	for _, t := range triangles {
		for _, v := range t {
			dt.IncidentTriangleOffsets[v+1]++
		}
	}
	for i := range numSites {
		dt.IncidentTriangleOffsets[i+1] += dt.IncidentTriangleOffsets[i]
	}

	nxt := make([]int, numSites)
	copy(nxt, dt.IncidentTriangleOffsets[:numSites])
	for i, t := range triangles {
		for _, v := range t {
			dt.IncidentTriangleIndices[nxt[v]] = i
			nxt[v]++
		}
	}

	for i := range numSites {
		sortIncidentTriangleIndicesCCW(i, dt.IncidentTriangles(i), dt.Triangles)
	}

	r2geom.Logger().Debug("delaunay triangulation computed",
		"sites", numSites, "triangles", len(triangles))
	return dt, nil
}

// lowerHullTriangles keeps the hull faces whose outward normal points down
// and rewinds them counter-clockwise in the plane. The hull triangles arrive
// counter-clockwise as seen from outside, so a face points down exactly when
// its planar projection winds clockwise. When the lifted sites are coplanar
// (all sites on one circle) the flat hull is single sided and may face up, in
// which case the upward side is taken instead.
func lowerHullTriangles(indices []int, sites []r2.Point) [][3]int {
	var lower, upper [][3]int
	for base := 0; base < len(indices); base += 3 {
		t := [3]int{indices[base], indices[base+1], indices[base+2]}
		switch r2geom.Orientation(sites[t[0]], sites[t[1]], sites[t[2]]) {
		case r2geom.SideRight:
			t[1], t[2] = t[2], t[1]
			lower = append(lower, t)
		case r2geom.SideLeft:
			upper = append(upper, t)
		}
	}
	if len(lower) == 0 {
		return upper
	}
	return lower
}

// sortIncidentTriangleIndicesCCW orders the fan of triangles around vIdx
// counter-clockwise. Neighboring fan triangles share an edge: the sector of a
// triangle starts at its NextVertex ray and ends at its PrevVertex ray, so
// triangle i's NextVertex must equal triangle i-1's PrevVertex. An open fan
// is first rotated so that its clockwise-most triangle comes first; closed
// fans chain from an arbitrary start.
func sortIncidentTriangleIndicesCCW(vIdx int, incidentTris []int, tris [][3]int) {
	n := len(incidentTris)
	if n < 2 {
		return
	}

	for k := range n {
		start := NextVertex(tris[incidentTris[k]], vIdx)
		open := true
		for j := range n {
			if j != k && PrevVertex(tris[incidentTris[j]], vIdx) == start {
				open = false
				break
			}
		}
		if open {
			incidentTris[0], incidentTris[k] = incidentTris[k], incidentTris[0]
			break
		}
	}

	for i := 1; i < n; i++ {
		prv := PrevVertex(tris[incidentTris[i-1]], vIdx)
		for j := i; j < n; j++ {
			if NextVertex(tris[incidentTris[j]], vIdx) == prv {
				incidentTris[i], incidentTris[j] = incidentTris[j], incidentTris[i]
				break
			}
		}
	}
}

// PrevVertex returns the vertex preceding vIdx in the triangle's
// counter-clockwise order.
func PrevVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[2]
	case t[1]:
		return t[0]
	case t[2]:
		return t[1]
	}
	panic("PrevVertex: vIdx not in triangle")
}

// NextVertex returns the vertex following vIdx in the triangle's
// counter-clockwise order.
func NextVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[1]
	case t[1]:
		return t[2]
	case t[2]:
		return t[0]
	}
	panic("NextVertex: vIdx not in triangle")
}

func collinear(sites []r2.Point) bool {
	a := sites[0]
	j := 1
	for j < len(sites) && sites[j] == a {
		j++
	}
	if j == len(sites) {
		return true
	}
	b := sites[j]
	for _, c := range sites[j+1:] {
		if r2geom.Orientation(a, b, c) != r2geom.SideOn {
			return false
		}
	}
	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
