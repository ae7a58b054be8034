// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package subdivision

import (
	"github.com/2dChan/r2geom"
	"github.com/golang/geo/r2"
)

// Vertex is a view structure for accessing one subdivision vertex.
type Vertex struct {
	s   *Subdivision
	idx vertexIndex
}

// Index returns the vertex index in the subdivision.
func (v Vertex) Index() int {
	return int(v.idx)
}

// Point returns the vertex position.
func (v Vertex) Point() r2.Point {
	return v.s.vertices[v.idx].pos
}

// Edge returns one outgoing half-edge of the vertex.
func (v Vertex) Edge() HalfEdge {
	return HalfEdge{s: v.s, idx: v.s.vertices[v.idx].edge}
}

// Degree returns the number of edges incident to the vertex.
func (v Vertex) Degree() int {
	return len(v.outgoing())
}

// OutgoingEdges returns the outgoing half-edges sorted counter-clockwise,
// starting from Edge().
func (v Vertex) OutgoingEdges() []HalfEdge {
	raw := v.outgoing()
	edges := make([]HalfEdge, len(raw))
	for i, e := range raw {
		edges[i] = HalfEdge{s: v.s, idx: e}
	}
	return edges
}

// Region returns the polygon associated with the vertex position, when the
// subdivision carries vertex regions.
func (v Vertex) Region() ([]r2.Point, bool) {
	if v.s.VertexRegions == nil {
		return nil, false
	}
	region, ok := v.s.VertexRegions[v.Point()]
	return region, ok
}

func (v Vertex) outgoing() []halfEdgeIndex {
	start := v.s.vertices[v.idx].edge
	var edges []halfEdgeIndex
	for e := start; ; {
		edges = append(edges, e)
		// Orbit counter-clockwise: the twin ends here, its cycle successor
		// leaves here.
		e = v.s.halfEdges[v.s.halfEdges[e].twin].next
		if e == start {
			break
		}
	}
	return edges
}

// HalfEdge is a view structure for accessing one directed subdivision edge.
type HalfEdge struct {
	s   *Subdivision
	idx halfEdgeIndex
}

// Index returns the half-edge index in the subdivision.
func (e HalfEdge) Index() int {
	return int(e.idx)
}

// Origin returns the vertex the half-edge leaves.
func (e HalfEdge) Origin() Vertex {
	return Vertex{s: e.s, idx: e.s.halfEdges[e.idx].origin}
}

// Target returns the vertex the half-edge enters.
func (e HalfEdge) Target() Vertex {
	return Vertex{s: e.s, idx: e.s.halfEdges[e.s.halfEdges[e.idx].twin].origin}
}

// Twin returns the oppositely directed half-edge of the same undirected edge.
func (e HalfEdge) Twin() HalfEdge {
	return HalfEdge{s: e.s, idx: e.s.halfEdges[e.idx].twin}
}

// Next returns the successor along the boundary of the face on the left.
func (e HalfEdge) Next() HalfEdge {
	return HalfEdge{s: e.s, idx: e.s.halfEdges[e.idx].next}
}

// Prev returns the predecessor along the boundary of the face on the left.
func (e HalfEdge) Prev() HalfEdge {
	return HalfEdge{s: e.s, idx: e.s.halfEdges[e.idx].prev}
}

// Face returns the face on the left of the half-edge.
func (e HalfEdge) Face() Face {
	return Face{s: e.s, idx: e.s.halfEdges[e.idx].face}
}

// Segment returns the half-edge as a directed segment.
func (e HalfEdge) Segment() r2geom.Segment {
	return r2geom.Segment{A: e.Origin().Point(), B: e.Target().Point()}
}

// Face is a view structure for accessing one subdivision face.
type Face struct {
	s   *Subdivision
	idx faceIndex
}

// Key returns the face key: 0 for the unbounded face, the construction order
// position plus one for bounded faces.
func (f Face) Key() int {
	return int(f.idx)
}

// IsUnbounded reports whether this is the synthetic outer face.
func (f Face) IsUnbounded() bool {
	return f.idx == 0
}

// FirstEdge returns the designated half-edge of the face's outer cycle.
// The unbounded face has no designated cycle and reports false.
func (f Face) FirstEdge() (HalfEdge, bool) {
	e := f.s.faces[f.idx].edge
	if e == nilHalfEdge {
		return HalfEdge{}, false
	}
	return HalfEdge{s: f.s, idx: e}, true
}

// EdgeCount returns the number of half-edges bordering the face.
func (f Face) EdgeCount() int {
	if f.IsUnbounded() {
		cnt := 0
		for i := range f.s.halfEdges {
			if f.s.halfEdges[i].face == 0 {
				cnt++
			}
		}
		return cnt
	}
	cnt := 0
	start := f.s.faces[f.idx].edge
	for e := start; ; {
		cnt++
		e = f.s.halfEdges[e].next
		if e == start {
			break
		}
	}
	return cnt
}

// Boundary returns the face's outer cycle vertices in counter-clockwise
// order, or nil for the unbounded face.
func (f Face) Boundary() []r2.Point {
	return f.s.boundary(f.idx)
}

// ContainsPoint reports whether p lies inside or on the boundary of the
// face. For the unbounded face it reports the complement of all bounded
// faces.
func (f Face) ContainsPoint(p r2.Point) bool {
	if f.IsUnbounded() {
		return f.s.Locate(p).IsUnbounded()
	}
	return r2geom.PolygonLocation(f.Boundary(), p, defaultEps) != r2geom.Outside
}
