// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package voronoi computes planar Voronoi diagrams clipped to a rectangle.
//
// Diagrams are built with Fortune's sweepline. Every edge records the pair of
// sites it separates, so the edge list doubles as the Delaunay triangulation
// of the sites: connecting the site pairs of all edges yields exactly the
// Delaunay edges. The region polygon of each site, clipped to the bounding
// rectangle, is reconstructed on demand and cached on the diagram.
package voronoi

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/golang/geo/r2"

	"github.com/2dChan/r2geom"
)

// Edge is a finite Voronoi edge clipped to the diagram bounds.
//
// Site1 and Site2 index Sites and name the two sites the edge separates;
// the segment Sites[Site1]-Sites[Site2] is the edge's Delaunay dual.
// Vertex1 and Vertex2 index Vertices.
type Edge struct {
	Site1   int
	Site2   int
	Vertex1 int
	Vertex2 int
}

// Diagram is the Voronoi diagram of a site set, clipped to Bounds.
//
// The exported fields are fixed after construction. Vertices are shared
// between edges and deduplicated by exact coordinates. Bounds is the clip
// rectangle actually used: the union of the requested bounds and the
// bounding rectangle of the sites.
type Diagram struct {
	Sites    []r2.Point
	Vertices []r2.Point
	Edges    []Edge
	Bounds   r2.Rect

	// rep maps each site to the first site sharing its coordinates, so
	// coincident sites can share one region polygon.
	rep []int

	mu      sync.Mutex
	regions [][]r2.Point
}

// NewDiagram computes the Voronoi diagram of sites clipped to bounds.
//
// The effective clip rectangle grows to enclose all sites, so a site is never
// outside its own diagram. At least one site is required and all coordinates
// must be finite. Sites may repeat; coincident sites end up sharing a region.
func NewDiagram(sites []r2.Point, bounds r2.Rect) (*Diagram, error) {
	if len(sites) == 0 {
		return nil, errors.New("voronoi: at least one site is required")
	}
	for i, p := range sites {
		if !finite(p.X) || !finite(p.Y) {
			return nil, fmt.Errorf("voronoi: site %d has a non-finite coordinate (%v, %v)", i, p.X, p.Y)
		}
	}

	clip := bounds
	for _, p := range sites {
		clip = clip.AddPoint(p)
	}

	owned := append([]r2.Point(nil), sites...)
	s := newSweep(owned)
	s.run()
	s.clipEdges(clip)

	d := &Diagram{
		Sites:  owned,
		Bounds: clip,
		rep:    s.rep,
	}
	d.assemble(s.edges)

	r2geom.Logger().Debug("voronoi diagram computed",
		"sites", len(d.Sites),
		"vertices", len(d.Vertices),
		"edges", len(d.Edges),
		"clipGrown", clip != bounds)
	return d, nil
}

// assemble interns clipped edge endpoints into the shared vertex list and
// drops edges that collapse onto a single vertex or duplicate another edge's
// vertex pair.
func (d *Diagram) assemble(edges []*sweepEdge) {
	index := make(map[r2.Point]int)
	intern := func(p r2.Point) int {
		if i, ok := index[p]; ok {
			return i
		}
		i := len(d.Vertices)
		d.Vertices = append(d.Vertices, p)
		index[p] = i
		return i
	}

	seen := make(map[[2]int]bool, len(edges))
	for _, e := range edges {
		v1 := intern(e.va)
		v2 := intern(e.vb)
		if v1 == v2 {
			continue
		}
		key := [2]int{v1, v2}
		if v2 < v1 {
			key[0], key[1] = v2, v1
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		d.Edges = append(d.Edges, Edge{Site1: e.lSite, Site2: e.rSite, Vertex1: v1, Vertex2: v2})
	}
}

// Relax runs Lloyd relaxation: each step replaces every site with the
// centroid of its region and rebuilds the diagram with the same bounds. The
// receiver is left untouched and the relaxed diagram is returned.
func (d *Diagram) Relax(steps int) (*Diagram, error) {
	if steps < 0 {
		return nil, fmt.Errorf("voronoi: negative relax step count %d", steps)
	}
	cur := d
	for range steps {
		regions := cur.Regions()
		sites := make([]r2.Point, len(cur.Sites))
		for i, region := range regions {
			sites[i] = r2geom.Centroid(region)
		}
		next, err := NewDiagram(sites, cur.Bounds)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
