// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/golang/geo/r2"

	"github.com/2dChan/r2geom"
)

// Region reconstruction stitches each site's edge fragments into a closed
// polygon. Fragments are chained by shared vertex indices; chains that end on
// the clip border are completed along it, inserting a synthetic vertex for
// every corner the border walk passes.

// regionEps bounds the rounding error tolerated by the orientation probes.
const regionEps = 1e-9

// vertexRef is one polygon vertex under construction: either a diagram
// vertex named by index, or one of the four clip corners, which exist only
// while a region is being stitched.
type vertexRef struct {
	vertex int // index into Diagram.Vertices, or -1 for a corner
	corner int // corner index in Bounds.Vertices() order, when vertex < 0
}

func vertRef(i int) vertexRef   { return vertexRef{vertex: i, corner: -1} }
func cornerRef(c int) vertexRef { return vertexRef{vertex: -1, corner: c} }

// Regions returns the region polygon of every site, in site order. Each
// polygon is simple, wound counter-clockwise, free of consecutive duplicate
// points and clipped to Bounds. Coincident sites receive copies of one
// shared shape.
//
// The polygons are computed on first use and cached; ClearRegions drops the
// cache. The returned slices are the cached ones, so callers must not modify
// them. Regions is safe for concurrent use.
func (d *Diagram) Regions() [][]r2.Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.regions == nil {
		d.regions = d.computeRegions()
		r2geom.Logger().Debug("voronoi regions computed",
			"sites", len(d.Sites),
			"corners", d.countCornerVertices())
	}
	return d.regions
}

// ClearRegions drops the cached region polygons; the next Regions call
// recomputes them.
func (d *Diagram) ClearRegions() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.regions = nil
}

// Region returns the region polygon of the site at index i.
func (d *Diagram) Region(i int) ([]r2.Point, error) {
	if i < 0 || i >= len(d.Sites) {
		return nil, fmt.Errorf("Region: index %d out of range [0 %d)", i, len(d.Sites))
	}
	return d.Regions()[i], nil
}

// countCornerVertices counts region vertices sitting on a clip corner; those
// are the synthetic vertices inserted by border walks.
func (d *Diagram) countCornerVertices() int {
	corners := d.Bounds.Vertices()
	n := 0
	for _, poly := range d.regions {
		for _, p := range poly {
			for _, c := range corners {
				if p == c {
					n++
					break
				}
			}
		}
	}
	return n
}

func (d *Diagram) computeRegions() [][]r2.Point {
	candidates := make([][][2]int, len(d.Sites))
	for _, e := range d.Edges {
		pair := [2]int{e.Vertex1, e.Vertex2}
		candidates[e.Site1] = append(candidates[e.Site1], pair)
		candidates[e.Site2] = append(candidates[e.Site2], pair)
	}

	regions := make([][]r2.Point, len(d.Sites))
	for i := range d.Sites {
		if d.rep[i] != i {
			continue
		}
		if len(candidates[i]) == 0 {
			if len(d.Edges) > 0 {
				panic(fmt.Sprintf("voronoi: site %d borders no edge in a diagram with %d edges", i, len(d.Edges)))
			}
			// A single distinct site owns the whole clip rectangle.
			corners := d.Bounds.Vertices()
			regions[i] = append([]r2.Point(nil), corners[:]...)
			continue
		}
		regions[i] = d.buildRegion(i, candidates[i])
	}
	for i, r := range d.rep {
		if r != i {
			regions[i] = append([]r2.Point(nil), regions[r]...)
		}
	}
	return regions
}

// buildRegion assembles the polygon of one site from the vertex index pairs
// of its edges.
func (d *Diagram) buildRegion(site int, candidates [][2]int) []r2.Point {
	chain := []vertexRef{vertRef(candidates[0][0]), vertRef(candidates[0][1])}
	remaining := append([][2]int(nil), candidates[1:]...)

	for len(remaining) > 0 {
		if d.extendChain(&chain, &remaining) {
			continue
		}
		d.bridgeChain(site, &chain, remaining)
	}
	return d.closeChain(site, chain)
}

// extendChain splices one remaining fragment onto the chain when it shares a
// vertex index with either chain end.
func (d *Diagram) extendChain(chain *[]vertexRef, remaining *[][2]int) bool {
	c := *chain
	tail := c[len(c)-1]
	head := c[0]
	for i, frag := range *remaining {
		switch {
		case tail.vertex >= 0 && frag[0] == tail.vertex:
			*chain = append(c, vertRef(frag[1]))
		case tail.vertex >= 0 && frag[1] == tail.vertex:
			*chain = append(c, vertRef(frag[0]))
		case head.vertex >= 0 && frag[0] == head.vertex:
			*chain = append([]vertexRef{vertRef(frag[1])}, c...)
		case head.vertex >= 0 && frag[1] == head.vertex:
			*chain = append([]vertexRef{vertRef(frag[0])}, c...)
		default:
			continue
		}
		*remaining = append((*remaining)[:i], (*remaining)[i+1:]...)
		return true
	}
	return false
}

// bridgeChain joins a chain end to the nearest fragment endpoint along the
// clip border. A chain can only be interrupted where an edge was clipped
// away, so both the end and the fragment endpoint lie on the border.
func (d *Diagram) bridgeChain(site int, chain *[]vertexRef, remaining [][2]int) {
	c := *chain
	if d.bridgeEnd(chain, remaining, c[len(c)-1], false) {
		return
	}
	if d.bridgeEnd(chain, remaining, c[0], true) {
		return
	}
	panic(fmt.Sprintf("voronoi: region of site %d cannot be stitched, %d fragments unreachable", site, len(remaining)))
}

func (d *Diagram) bridgeEnd(chain *[]vertexRef, remaining [][2]int, end vertexRef, atHead bool) bool {
	if end.vertex < 0 {
		panic("voronoi: region chain interrupted at a synthetic corner")
	}
	endPt := d.Vertices[end.vertex]
	endMask := d.borderMask(endPt)
	if endMask == 0 {
		return false
	}

	// Same border first: bridge straight to the nearest endpoint on it.
	bestVert := -1
	bestDist := math.Inf(1)
	var bestPt r2.Point
	for _, frag := range remaining {
		for _, v := range frag {
			p := d.Vertices[v]
			if d.borderMask(p)&endMask == 0 {
				continue
			}
			dist := math.Abs(p.X-endPt.X) + math.Abs(p.Y-endPt.Y)
			if dist < bestDist || (dist == bestDist && lessYX(p, bestPt)) {
				bestDist = dist
				bestVert = v
				bestPt = p
			}
		}
	}
	if bestVert >= 0 {
		spliceBridge(chain, atHead, -1, bestVert)
		return true
	}

	// Otherwise reach an adjacent border through the corner joining the two.
	bestCorner := -1
	corners := d.Bounds.Vertices()
	for _, frag := range remaining {
		for _, v := range frag {
			p := d.Vertices[v]
			mask := d.borderMask(p)
			if mask == 0 || mask&endMask != 0 {
				continue
			}
			corner, ok := cornerBetween(endMask, mask)
			if !ok {
				continue
			}
			cp := corners[corner]
			dist := math.Abs(cp.X-endPt.X) + math.Abs(cp.Y-endPt.Y) +
				math.Abs(p.X-cp.X) + math.Abs(p.Y-cp.Y)
			if dist < bestDist || (dist == bestDist && lessYX(p, bestPt)) {
				bestDist = dist
				bestCorner = corner
				bestVert = v
				bestPt = p
			}
		}
	}
	if bestVert >= 0 {
		spliceBridge(chain, atHead, bestCorner, bestVert)
		return true
	}
	return false
}

// spliceBridge attaches a fragment endpoint to a chain end, passing through
// a synthetic corner when corner is non-negative.
func spliceBridge(chain *[]vertexRef, atHead bool, corner, vert int) {
	if atHead {
		prefix := make([]vertexRef, 0, 2)
		prefix = append(prefix, vertRef(vert))
		if corner >= 0 {
			prefix = append(prefix, cornerRef(corner))
		}
		*chain = append(prefix, *chain...)
		return
	}
	if corner >= 0 {
		*chain = append(*chain, cornerRef(corner))
	}
	*chain = append(*chain, vertRef(vert))
}

// closeChain turns the finished chain into a counter-clockwise polygon,
// inserting the corners passed by the closing border walk when the chain's
// ends sit on different borders.
func (d *Diagram) closeChain(site int, chain []vertexRef) []r2.Point {
	head := chain[0]
	tail := chain[len(chain)-1]
	switch {
	case head == tail:
		chain = chain[:len(chain)-1]
	default:
		headPt := d.refPoint(head)
		tailPt := d.refPoint(tail)
		headMask := d.borderMask(headPt)
		tailMask := d.borderMask(tailPt)
		if headMask == 0 || tailMask == 0 {
			panic(fmt.Sprintf("voronoi: region of site %d is open away from the clip border", site))
		}
		// Ends on one border close directly; otherwise walk the border,
		// collecting the corners in between.
		if headMask&tailMask == 0 {
			chain = append(chain, d.closingCorners(site, tailPt, headPt)...)
		}
	}

	poly := make([]r2.Point, 0, len(chain))
	for _, ref := range chain {
		p := d.refPoint(ref)
		if len(poly) > 0 && poly[len(poly)-1] == p {
			continue
		}
		poly = append(poly, p)
	}
	for len(poly) > 1 && poly[0] == poly[len(poly)-1] {
		poly = poly[:len(poly)-1]
	}
	if !r2geom.IsCCW(poly) {
		slices.Reverse(poly)
	}
	return poly
}

// closingCorners lists the synthetic corners passed when walking the clip
// border from tail to head. Of the two possible walks the one running along
// the region's open span is chosen: the side of the tail->head chord holding
// the fewest diagram vertices, then the side of the region's own site, then
// the walk through the lower left.
func (d *Diagram) closingCorners(site int, tailPt, headPt r2.Point) []vertexRef {
	sTail := d.borderPos(tailPt)
	sHead := d.borderPos(headPt)

	ccwMid := d.borderPoint(sTail + wrap4(sHead-sTail)/2)
	cwMid := d.borderPoint(sTail - wrap4(sTail-sHead)/2)

	var useCCW bool
	if side := d.closingSide(site, tailPt, headPt); side != r2geom.SideOn {
		useCCW = r2geom.OrientationEps(tailPt, headPt, ccwMid, regionEps) == side
	} else {
		useCCW = lessYX(ccwMid, cwMid)
	}

	corners := cornersOnWalk(sTail, sHead, useCCW)
	refs := make([]vertexRef, len(corners))
	for i, c := range corners {
		refs[i] = cornerRef(c)
	}
	return refs
}

// closingSide picks the side of the directed tail->head chord on which the
// closing walk runs. The vertex mass of the diagram sits in its interior,
// away from the open border span, so the walk takes the minority side; on a
// tie the region's own site breaks it.
func (d *Diagram) closingSide(site int, tailPt, headPt r2.Point) r2geom.Side {
	left, right := 0, 0
	for _, v := range d.Vertices {
		switch r2geom.OrientationEps(tailPt, headPt, v, regionEps) {
		case r2geom.SideLeft:
			left++
		case r2geom.SideRight:
			right++
		}
	}
	switch {
	case left > right:
		return r2geom.SideRight
	case right > left:
		return r2geom.SideLeft
	}
	return r2geom.OrientationEps(tailPt, headPt, d.Sites[site], regionEps)
}

func (d *Diagram) refPoint(ref vertexRef) r2.Point {
	if ref.vertex >= 0 {
		return d.Vertices[ref.vertex]
	}
	return d.Bounds.Vertices()[ref.corner]
}

const (
	borderLeft = 1 << iota
	borderBottom
	borderRight
	borderTop
)

// cornerBorders lists the two borders meeting at each corner, in
// r2.Rect.Vertices() order.
var cornerBorders = [4][2]int{
	{borderLeft, borderBottom},
	{borderBottom, borderRight},
	{borderRight, borderTop},
	{borderTop, borderLeft},
}

// borderMask reports the clip borders p lies on. Clipped coordinates are
// snapped onto the borders, so exact comparison suffices.
func (d *Diagram) borderMask(p r2.Point) int {
	m := 0
	if p.X == d.Bounds.X.Lo {
		m |= borderLeft
	}
	if p.X == d.Bounds.X.Hi {
		m |= borderRight
	}
	if p.Y == d.Bounds.Y.Lo {
		m |= borderBottom
	}
	if p.Y == d.Bounds.Y.Hi {
		m |= borderTop
	}
	return m
}

// cornerBetween returns a corner joining a border from mask a with a border
// from mask b.
func cornerBetween(a, b int) (int, bool) {
	for c, pair := range cornerBorders {
		if (a&pair[0] != 0 && b&pair[1] != 0) || (a&pair[1] != 0 && b&pair[0] != 0) {
			return c, true
		}
	}
	return -1, false
}

// borderPos maps a border point to a cyclic position in [0, 4): corner 0 sits
// at position 0 and the position grows counter-clockwise, so the low Y border
// spans [0, 1] and the left border [3, 4).
func (d *Diagram) borderPos(p r2.Point) float64 {
	xlo, xhi := d.Bounds.X.Lo, d.Bounds.X.Hi
	ylo, yhi := d.Bounds.Y.Lo, d.Bounds.Y.Hi
	switch {
	case p.Y == ylo && p.X < xhi:
		return (p.X - xlo) / (xhi - xlo)
	case p.X == xhi && p.Y < yhi:
		return 1 + (p.Y-ylo)/(yhi-ylo)
	case p.Y == yhi && p.X > xlo:
		return 2 + (xhi-p.X)/(xhi-xlo)
	case p.X == xlo && p.Y > ylo:
		return 3 + (yhi-p.Y)/(yhi-ylo)
	}
	panic(fmt.Sprintf("voronoi: point (%v, %v) is not on the clip border", p.X, p.Y))
}

// borderPoint is the inverse of borderPos.
func (d *Diagram) borderPoint(s float64) r2.Point {
	s = wrap4(s)
	xlo, xhi := d.Bounds.X.Lo, d.Bounds.X.Hi
	ylo, yhi := d.Bounds.Y.Lo, d.Bounds.Y.Hi
	k := int(math.Floor(s))
	frac := s - float64(k)
	switch k {
	case 0:
		return r2.Point{X: xlo + frac*(xhi-xlo), Y: ylo}
	case 1:
		return r2.Point{X: xhi, Y: ylo + frac*(yhi-ylo)}
	case 2:
		return r2.Point{X: xhi - frac*(xhi-xlo), Y: yhi}
	default:
		return r2.Point{X: xlo, Y: yhi - frac*(yhi-ylo)}
	}
}

// cornersOnWalk lists the corners passed strictly between border positions
// s1 and s2, in walk order.
func cornersOnWalk(s1, s2 float64, ccw bool) []int {
	if !ccw {
		corners := cornersOnWalk(s2, s1, true)
		slices.Reverse(corners)
		return corners
	}
	dist := wrap4(s2 - s1)
	type step struct {
		corner int
		off    float64
	}
	var steps []step
	for c := range 4 {
		off := wrap4(float64(c) - s1)
		if off > 1e-12 && off < dist-1e-12 {
			steps = append(steps, step{corner: c, off: off})
		}
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].off < steps[j].off })
	corners := make([]int, len(steps))
	for i, s := range steps {
		corners[i] = s.corner
	}
	return corners
}

func wrap4(s float64) float64 {
	s = math.Mod(s, 4)
	if s < 0 {
		s += 4
	}
	if s >= 4 {
		s = 0
	}
	return s
}

func lessYX(a, b r2.Point) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
