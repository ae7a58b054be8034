// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/2dChan/r2geom"
	"github.com/2dChan/r2geom/subdivision"
)

// DelaunayEdges returns the Delaunay dual of the diagram: one segment per
// edge, connecting the two sites the edge separates.
func (d *Diagram) DelaunayEdges() []r2geom.Segment {
	segs := make([]r2geom.Segment, len(d.Edges))
	for i, e := range d.Edges {
		segs[i] = r2geom.Segment{A: d.Sites[e.Site1], B: d.Sites[e.Site2]}
	}
	return segs
}

// ClipDelaunayEdges returns the Delaunay edges whose sites both lie inside
// bounds and whose dual Voronoi edge touches bounds. The returned segments
// are not themselves trimmed.
func (d *Diagram) ClipDelaunayEdges(bounds r2.Rect) []r2geom.Segment {
	var segs []r2geom.Segment
	for _, e := range d.Edges {
		if !bounds.ContainsPoint(d.Sites[e.Site1]) || !bounds.ContainsPoint(d.Sites[e.Site2]) {
			continue
		}
		dual := r2geom.Segment{A: d.Vertices[e.Vertex1], B: d.Vertices[e.Vertex2]}
		if !dual.IntersectsRect(bounds) {
			continue
		}
		segs = append(segs, r2geom.Segment{A: d.Sites[e.Site1], B: d.Sites[e.Site2]})
	}
	return segs
}

// ToDelaunaySubdivision builds a half-edge subdivision of the diagram's
// Delaunay triangulation. With addRegions the subdivision's VertexRegions
// table maps every site to its region polygon.
func (d *Diagram) ToDelaunaySubdivision(addRegions bool) *subdivision.Subdivision {
	sub := subdivision.NewFromSegments(d.DelaunayEdges())
	if addRegions {
		sub.VertexRegions = d.regionTable()
	}
	return sub
}

// ToDelaunaySubdivisionClipped is like ToDelaunaySubdivision but keeps only
// the Delaunay edges selected by ClipDelaunayEdges.
func (d *Diagram) ToDelaunaySubdivisionClipped(bounds r2.Rect, addRegions bool) *subdivision.Subdivision {
	sub := subdivision.NewFromSegments(d.ClipDelaunayEdges(bounds))
	if addRegions {
		sub.VertexRegions = d.regionTable()
	}
	return sub
}

func (d *Diagram) regionTable() map[r2.Point][]r2.Point {
	regions := d.Regions()
	table := make(map[r2.Point][]r2.Point, len(regions))
	for i, region := range regions {
		table[d.Sites[i]] = region
	}
	return table
}

// ToVoronoiSubdivision builds a half-edge subdivision whose bounded faces
// are exactly the region polygons, along with the mapping between sites and
// faces. Coincident sites share a region and therefore cannot tile a
// subdivision; that surfaces as an error from the polygon assembly.
func (d *Diagram) ToVoronoiSubdivision() (*subdivision.Subdivision, *SubdivisionMap, error) {
	regions := d.Regions()
	sub, err := subdivision.NewFromPolygons(regions)
	if err != nil {
		return nil, nil, fmt.Errorf("voronoi: regions do not form a subdivision: %w", err)
	}
	if sub.NumFaces() != len(regions)+1 {
		panic(fmt.Sprintf("voronoi: %d regions produced %d faces", len(regions), sub.NumFaces()))
	}

	m := &SubdivisionMap{
		faceToSite: make([]int, sub.NumFaces()),
		siteToFace: make([]subdivision.Face, len(regions)),
	}
	m.faceToSite[0] = -1
	for i := range regions {
		f, err := sub.Face(i + 1)
		if err != nil {
			panic(fmt.Sprintf("voronoi: region %d lost its face: %v", i, err))
		}
		m.siteToFace[i] = f
		m.faceToSite[i+1] = i
	}
	return sub, m, nil
}

// SubdivisionMap is the bidirectional mapping between the sites of a diagram
// and the bounded faces of its Voronoi subdivision. It goes stale if the
// subdivision is modified afterwards.
type SubdivisionMap struct {
	faceToSite []int
	siteToFace []subdivision.Face
}

// SiteOf returns the index of the site owning a bounded face.
func (m *SubdivisionMap) SiteOf(f subdivision.Face) int {
	key := f.Key()
	if key <= 0 || key >= len(m.faceToSite) {
		panic(fmt.Sprintf("SiteOf: face key %d outside the mapped subdivision", key))
	}
	return m.faceToSite[key]
}

// FaceOf returns the bounded face of the site at index i.
func (m *SubdivisionMap) FaceOf(i int) subdivision.Face {
	if i < 0 || i >= len(m.siteToFace) {
		panic(fmt.Sprintf("FaceOf: site index %d out of range [0 %d)", i, len(m.siteToFace)))
	}
	return m.siteToFace[i]
}
