// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package subdivision implements a planar subdivision as a half-edge mesh.
// Vertices, half-edges and faces live in flat arenas addressed by integer
// indices. Every undirected edge is a pair of oppositely directed half-edges;
// walking a half-edge's next pointers traverses the boundary of the face on
// its left. Bounded faces carry keys 1..n, the single unbounded face
// surrounding everything carries key 0.

package subdivision

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/2dChan/r2geom"
	"github.com/golang/geo/r2"
)

const (
	defaultEps = 1e-9
)

type vertexIndex int
type halfEdgeIndex int
type faceIndex int

const (
	nilVertex   vertexIndex   = -1
	nilHalfEdge halfEdgeIndex = -1
	nilFace     faceIndex     = -1
)

type vertexRecord struct {
	pos r2.Point
	// edge is one outgoing half-edge; the rest are reachable by orbiting.
	edge halfEdgeIndex
}

type halfEdgeRecord struct {
	origin vertexIndex
	twin   halfEdgeIndex
	next   halfEdgeIndex
	prev   halfEdgeIndex
	face   faceIndex
}

type faceRecord struct {
	// edge designates one half-edge of the outer cycle. The unbounded face
	// has no designated cycle and stores nilHalfEdge.
	edge halfEdgeIndex
}

// Subdivision is a planar subdivision built once from segments or polygons
// and read-mostly afterwards. It is safe for concurrent reads.
type Subdivision struct {
	vertices  []vertexRecord
	halfEdges []halfEdgeRecord
	faces     []faceRecord

	vertexAt map[r2.Point]vertexIndex
	faceKeys map[string]faceIndex

	// VertexRegions optionally associates a world polygon with a vertex
	// position, for consumers that treat vertices as cell representatives.
	// It is populated by diagram conversions and nil otherwise.
	VertexRegions map[r2.Point][]r2.Point
}

// NewFromSegments builds a subdivision from unordered line segments.
// Endpoints are joined by exact coordinate equality; zero-length segments and
// repeated undirected segments are ignored. Segments crossing anywhere other
// than shared endpoints are a caller error and are not detected.
func NewFromSegments(segs []r2geom.Segment) *Subdivision {
	s := build(segs)
	s.indexFaceKeys()
	r2geom.Logger().Debug("subdivision built from segments",
		"segments", len(segs),
		"vertices", len(s.vertices),
		"halfEdges", len(s.halfEdges),
		"faces", len(s.faces))
	return s
}

// NewFromPolygons builds a subdivision from simple polygons with disjoint
// interiors. Every input polygon becomes exactly one bounded face whose key
// is its input position plus one; the unbounded face has key 0. Shared
// polygon edges must repeat their vertex coordinates exactly.
//
// It returns an error when a polygon has fewer than three vertices or when
// the inputs do not surface as face cycles (overlapping or malformed
// geometry).
func NewFromPolygons(polys [][]r2.Point) (*Subdivision, error) {
	var segs []r2geom.Segment
	for i, poly := range polys {
		if len(poly) < 3 {
			return nil, fmt.Errorf("subdivision: polygon %d has %d vertices, need at least 3", i, len(poly))
		}
		for j := range poly {
			segs = append(segs, r2geom.Segment{A: poly[j], B: poly[(j+1)%len(poly)]})
		}
	}

	s := build(segs)
	if err := s.remapFaces(polys); err != nil {
		return nil, err
	}
	s.indexFaceKeys()
	r2geom.Logger().Debug("subdivision built from polygons",
		"polygons", len(polys),
		"vertices", len(s.vertices),
		"halfEdges", len(s.halfEdges),
		"faces", len(s.faces))
	return s, nil
}

// build interns vertices, creates half-edge pairs, splices them radially
// around every vertex and derives the faces.
func build(segs []r2geom.Segment) *Subdivision {
	s := &Subdivision{
		vertexAt: make(map[r2.Point]vertexIndex),
	}

	seen := make(map[[2]vertexIndex]bool, len(segs))
	for _, seg := range segs {
		if seg.A == seg.B {
			continue
		}
		a := s.internVertex(seg.A)
		b := s.internVertex(seg.B)
		k := [2]vertexIndex{a, b}
		if b < a {
			k[0], k[1] = b, a
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		s.addEdgePair(a, b)
	}

	s.splice()
	s.assignFaces()
	return s
}

func (s *Subdivision) internVertex(p r2.Point) vertexIndex {
	if idx, ok := s.vertexAt[p]; ok {
		return idx
	}
	idx := vertexIndex(len(s.vertices))
	s.vertices = append(s.vertices, vertexRecord{pos: p, edge: nilHalfEdge})
	s.vertexAt[p] = idx
	return idx
}

func (s *Subdivision) addEdgePair(a, b vertexIndex) {
	ei := halfEdgeIndex(len(s.halfEdges))
	s.halfEdges = append(s.halfEdges,
		halfEdgeRecord{origin: a, twin: ei + 1, next: nilHalfEdge, prev: nilHalfEdge, face: nilFace},
		halfEdgeRecord{origin: b, twin: ei, next: nilHalfEdge, prev: nilHalfEdge, face: nilFace},
	)
	if s.vertices[a].edge == nilHalfEdge {
		s.vertices[a].edge = ei
	}
	if s.vertices[b].edge == nilHalfEdge {
		s.vertices[b].edge = ei + 1
	}
}

// splice sorts the outgoing half-edges of every vertex by polar angle and
// links the face cycles: the twin of an outgoing edge ends at the vertex, and
// its cycle continues with the next outgoing edge counter-clockwise.
func (s *Subdivision) splice() {
	outgoing := make([][]halfEdgeIndex, len(s.vertices))
	for i := range s.halfEdges {
		e := halfEdgeIndex(i)
		outgoing[s.halfEdges[i].origin] = append(outgoing[s.halfEdges[i].origin], e)
	}

	for vi, edges := range outgoing {
		origin := s.vertices[vi].pos
		sort.Slice(edges, func(i, j int) bool {
			return s.outgoingAngle(edges[i], origin) < s.outgoingAngle(edges[j], origin)
		})
		for i, e := range edges {
			nxt := edges[(i+1)%len(edges)]
			twin := s.halfEdges[e].twin
			s.halfEdges[twin].next = nxt
			s.halfEdges[nxt].prev = twin
		}
	}
}

func (s *Subdivision) outgoingAngle(e halfEdgeIndex, origin r2.Point) float64 {
	target := s.vertices[s.halfEdges[s.halfEdges[e].twin].origin].pos
	return r2geom.PolarAngle(origin, target)
}

// assignFaces walks every unvisited next-cycle once. Cycles with positive
// signed area bound a face; all remaining cycles (negative area outer walks,
// zero area antenna walks) collapse onto the unbounded face.
func (s *Subdivision) assignFaces() {
	s.faces = append(s.faces, faceRecord{edge: nilHalfEdge})

	for i := range s.halfEdges {
		if s.halfEdges[i].face != nilFace {
			continue
		}
		start := halfEdgeIndex(i)
		var cycle []halfEdgeIndex
		var area float64
		for e := start; ; {
			cycle = append(cycle, e)
			a := s.vertices[s.halfEdges[e].origin].pos
			b := s.vertices[s.halfEdges[s.halfEdges[e].twin].origin].pos
			area += a.Cross(b)
			e = s.halfEdges[e].next
			if e == start {
				break
			}
		}

		fi := faceIndex(0)
		if area > 0 {
			fi = faceIndex(len(s.faces))
			s.faces = append(s.faces, faceRecord{edge: start})
		}
		for _, e := range cycle {
			s.halfEdges[e].face = fi
		}
	}
}

// remapFaces reorders the bounded faces so that input polygon i becomes the
// face with key i+1.
func (s *Subdivision) remapFaces(polys [][]r2.Point) error {
	if len(s.faces)-1 != len(polys) {
		return fmt.Errorf("subdivision: %d polygons produced %d bounded faces", len(polys), len(s.faces)-1)
	}

	byKey := make(map[string]faceIndex, len(s.faces)-1)
	for fi := 1; fi < len(s.faces); fi++ {
		ids := s.cycleVertexIDs(s.faces[fi].edge)
		byKey[canonicalIDKey(ids)] = faceIndex(fi)
	}

	perm := make([]faceIndex, len(s.faces))
	newFaces := make([]faceRecord, len(s.faces))
	newFaces[0] = s.faces[0]
	claimed := make([]bool, len(s.faces))
	for i, poly := range polys {
		key, ok := s.polygonIDKey(poly)
		if !ok {
			return fmt.Errorf("subdivision: polygon %d does not bound a face", i)
		}
		old, found := byKey[key]
		if !found || claimed[old] {
			return fmt.Errorf("subdivision: polygon %d does not bound a face", i)
		}
		claimed[old] = true
		perm[old] = faceIndex(i + 1)
		newFaces[i+1] = s.faces[old]
	}

	for i := range s.halfEdges {
		s.halfEdges[i].face = perm[s.halfEdges[i].face]
	}
	s.faces = newFaces
	return nil
}

func (s *Subdivision) indexFaceKeys() {
	s.faceKeys = make(map[string]faceIndex, len(s.faces)-1)
	for fi := 1; fi < len(s.faces); fi++ {
		ids := s.cycleVertexIDs(s.faces[fi].edge)
		s.faceKeys[canonicalIDKey(ids)] = faceIndex(fi)
	}
}

func (s *Subdivision) cycleVertexIDs(start halfEdgeIndex) []vertexIndex {
	var ids []vertexIndex
	for e := start; ; {
		ids = append(ids, s.halfEdges[e].origin)
		e = s.halfEdges[e].next
		if e == start {
			break
		}
	}
	return ids
}

// polygonIDKey resolves the polygon's vertices to interned ids and returns
// their canonical key. It reports false when a vertex is not part of the
// subdivision.
func (s *Subdivision) polygonIDKey(poly []r2.Point) (string, bool) {
	ids := make([]vertexIndex, 0, len(poly))
	for _, p := range poly {
		idx, ok := s.vertexAt[p]
		if !ok {
			return "", false
		}
		ids = append(ids, idx)
	}
	return canonicalIDKey(ids), true
}

// canonicalIDKey builds an order and rotation independent key from vertex
// ids: sorted, deduplicated and comma joined.
func canonicalIDKey(ids []vertexIndex) string {
	sorted := make([]vertexIndex, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var b strings.Builder
	var last vertexIndex = nilVertex
	for _, id := range sorted {
		if id == last {
			continue
		}
		last = id
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(id)))
	}
	return b.String()
}

// NumVertices returns the number of distinct vertices.
func (s *Subdivision) NumVertices() int {
	return len(s.vertices)
}

// NumHalfEdges returns the number of half-edges; every undirected edge
// contributes two.
func (s *Subdivision) NumHalfEdges() int {
	return len(s.halfEdges)
}

// NumFaces returns the number of faces including the unbounded face.
func (s *Subdivision) NumFaces() int {
	return len(s.faces)
}

// Vertex returns the vertex view at the specified index.
// It returns an error if the index is out of range.
func (s *Subdivision) Vertex(i int) (Vertex, error) {
	if i < 0 || i >= len(s.vertices) {
		return Vertex{}, fmt.Errorf("Vertex: index %d out of range [0 %d)", i, len(s.vertices))
	}
	return Vertex{s: s, idx: vertexIndex(i)}, nil
}

// HalfEdge returns the half-edge view at the specified index.
// It returns an error if the index is out of range.
func (s *Subdivision) HalfEdge(i int) (HalfEdge, error) {
	if i < 0 || i >= len(s.halfEdges) {
		return HalfEdge{}, fmt.Errorf("HalfEdge: index %d out of range [0 %d)", i, len(s.halfEdges))
	}
	return HalfEdge{s: s, idx: halfEdgeIndex(i)}, nil
}

// Face returns the face view with the specified key. Key 0 is the unbounded
// face. It returns an error if the key is out of range.
func (s *Subdivision) Face(key int) (Face, error) {
	if key < 0 || key >= len(s.faces) {
		return Face{}, fmt.Errorf("Face: key %d out of range [0 %d)", key, len(s.faces))
	}
	return Face{s: s, idx: faceIndex(key)}, nil
}

// VertexAt returns the vertex view at the exact position p.
func (s *Subdivision) VertexAt(p r2.Point) (Vertex, bool) {
	idx, ok := s.vertexAt[p]
	if !ok {
		return Vertex{}, false
	}
	return Vertex{s: s, idx: idx}, true
}

// FindFace returns the bounded face whose vertex set equals the polygon's,
// regardless of order or rotation. It returns an error when no face matches.
func (s *Subdivision) FindFace(poly []r2.Point) (Face, error) {
	key, ok := s.polygonIDKey(poly)
	if !ok {
		return Face{}, errors.New("FindFace: face not found")
	}
	fi, found := s.faceKeys[key]
	if !found {
		return Face{}, errors.New("FindFace: face not found")
	}
	return Face{s: s, idx: fi}, nil
}

// Locate returns the face containing p. Points on a shared boundary resolve
// to the incident bounded face with the lowest key; points outside every
// bounded face resolve to the unbounded face.
func (s *Subdivision) Locate(p r2.Point) Face {
	for fi := 1; fi < len(s.faces); fi++ {
		poly := s.boundary(faceIndex(fi))
		if r2geom.PolygonLocation(poly, p, defaultEps) != r2geom.Outside {
			return Face{s: s, idx: faceIndex(fi)}
		}
	}
	return Face{s: s, idx: 0}
}

// Segments returns one segment per undirected edge.
func (s *Subdivision) Segments() []r2geom.Segment {
	segs := make([]r2geom.Segment, 0, len(s.halfEdges)/2)
	for i := range s.halfEdges {
		e := halfEdgeIndex(i)
		if e > s.halfEdges[i].twin {
			continue
		}
		segs = append(segs, r2geom.Segment{
			A: s.vertices[s.halfEdges[i].origin].pos,
			B: s.vertices[s.halfEdges[s.halfEdges[i].twin].origin].pos,
		})
	}
	return segs
}

// Polygons returns the bounded face boundaries in key order.
func (s *Subdivision) Polygons() [][]r2.Point {
	polys := make([][]r2.Point, 0, len(s.faces)-1)
	for fi := 1; fi < len(s.faces); fi++ {
		polys = append(polys, s.boundary(faceIndex(fi)))
	}
	return polys
}

func (s *Subdivision) boundary(fi faceIndex) []r2.Point {
	if fi == 0 || s.faces[fi].edge == nilHalfEdge {
		return nil
	}
	var poly []r2.Point
	start := s.faces[fi].edge
	for e := start; ; {
		poly = append(poly, s.vertices[s.halfEdges[e].origin].pos)
		e = s.halfEdges[e].next
		if e == start {
			break
		}
	}
	return poly
}

// Validate checks the structural invariants of the mesh: twin involution,
// next/prev inversion, face consistency along cycles, cycle closure and
// record cross-references. It returns a descriptive error for the first
// violation found.
func (s *Subdivision) Validate() error {
	numEdges := len(s.halfEdges)
	validEdge := func(e halfEdgeIndex) bool { return e >= 0 && int(e) < numEdges }

	for i := range s.halfEdges {
		e := halfEdgeIndex(i)
		he := &s.halfEdges[i]
		if !validEdge(he.twin) || he.twin == e || s.halfEdges[he.twin].twin != e {
			return fmt.Errorf("Validate: half-edge %d: twin involution broken", i)
		}
		if !validEdge(he.next) || s.halfEdges[he.next].prev != e {
			return fmt.Errorf("Validate: half-edge %d: next/prev inversion broken", i)
		}
		if !validEdge(he.prev) || s.halfEdges[he.prev].next != e {
			return fmt.Errorf("Validate: half-edge %d: prev/next inversion broken", i)
		}
		if s.halfEdges[he.next].face != he.face {
			return fmt.Errorf("Validate: half-edge %d: face changes along its cycle", i)
		}
		if he.origin < 0 || int(he.origin) >= len(s.vertices) {
			return fmt.Errorf("Validate: half-edge %d: origin out of range", i)
		}
		if s.halfEdges[he.twin].origin == he.origin {
			return fmt.Errorf("Validate: half-edge %d: both endpoints identical", i)
		}
		if he.face < 0 || int(he.face) >= len(s.faces) {
			return fmt.Errorf("Validate: half-edge %d: face out of range", i)
		}
		// The target of an edge must be the origin of its cycle successor.
		if s.halfEdges[he.next].origin != s.halfEdges[he.twin].origin {
			return fmt.Errorf("Validate: half-edge %d: cycle successor starts elsewhere", i)
		}
	}

	for i := range s.halfEdges {
		steps := 0
		for e := s.halfEdges[i].next; e != halfEdgeIndex(i); e = s.halfEdges[e].next {
			steps++
			if steps > numEdges {
				return fmt.Errorf("Validate: half-edge %d: next cycle does not close", i)
			}
		}
	}

	for fi := 1; fi < len(s.faces); fi++ {
		e := s.faces[fi].edge
		if !validEdge(e) || s.halfEdges[e].face != faceIndex(fi) {
			return fmt.Errorf("Validate: face %d: designated edge inconsistent", fi)
		}
	}
	if len(s.faces) == 0 || s.faces[0].edge != nilHalfEdge {
		return errors.New("Validate: unbounded face missing or carries a designated edge")
	}

	for vi := range s.vertices {
		e := s.vertices[vi].edge
		if !validEdge(e) {
			return fmt.Errorf("Validate: vertex %d: incident edge out of range", vi)
		}
		if s.halfEdges[e].origin != vertexIndex(vi) {
			return fmt.Errorf("Validate: vertex %d: incident edge starts elsewhere", vi)
		}
	}

	return nil
}
