// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
)

// The sweep processes site events in ascending (Y, X) order and maintains the
// beachline as a threaded red-black tree of parabola arcs. Breakpoints
// between neighboring arcs trace out the diagram edges; circle events retire
// arcs and pin edge endpoints at the circumcenters.

const sweepEps = 1e-9

// sweepEdge is a diagram edge under construction. lSite and rSite index the
// input sites whose bisector carries the edge. Endpoints stay unset until a
// circle event or the clipping stage produces them.
type sweepEdge struct {
	lSite, rSite int
	va, vb       r2.Point
	hasVa, hasVb bool
}

type beachSection struct {
	node        *rbNode
	site        int
	circleEvent *circleEvent
	edge        *sweepEdge
}

func (b *beachSection) bindToNode(n *rbNode) { b.node = n }

type circleEvent struct {
	node    *rbNode
	arc     *beachSection
	x       float64
	y       float64
	ycenter float64
}

func (c *circleEvent) bindToNode(n *rbNode) { c.node = n }

type sweep struct {
	sites []r2.Point

	// rep maps every site to the first site sharing its coordinates.
	// Representatives map to themselves.
	rep []int

	edges []*sweepEdge

	beachline        rbTree
	circleEvents     rbTree
	firstCircleEvent *circleEvent
}

func newSweep(sites []r2.Point) *sweep {
	s := &sweep{sites: sites, rep: make([]int, len(sites))}
	for i := range s.rep {
		s.rep[i] = i
	}
	return s
}

// run consumes all site and circle events. Coincident sites are folded onto
// their first occurrence and recorded in rep.
func (s *sweep) run() {
	order := make([]int, len(s.sites))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		pa, pb := s.sites[order[a]], s.sites[order[b]]
		if pa.Y != pb.Y {
			return pa.Y < pb.Y
		}
		if pa.X != pb.X {
			return pa.X < pb.X
		}
		return order[a] < order[b]
	})

	cursor := 0
	pop := func() int {
		if cursor == len(order) {
			return -1
		}
		i := order[cursor]
		cursor++
		return i
	}

	siteIdx := pop()
	var lastX, lastY float64
	var lastRep int
	haveLast := false
	for {
		circle := s.firstCircleEvent

		if siteIdx >= 0 && (circle == nil ||
			s.sites[siteIdx].Y < circle.y ||
			(s.sites[siteIdx].Y == circle.y && s.sites[siteIdx].X < circle.x)) {
			p := s.sites[siteIdx]
			if !haveLast || p.X != lastX || p.Y != lastY {
				s.addBeachSection(siteIdx)
				lastX, lastY, lastRep = p.X, p.Y, siteIdx
				haveLast = true
			} else {
				s.rep[siteIdx] = lastRep
			}
			siteIdx = pop()
		} else if circle != nil {
			s.removeBeachSection(circle.arc)
		} else {
			break
		}
	}
}

func (s *sweep) createEdge(lSite, rSite int, va, vb r2.Point, hasVa, hasVb bool) *sweepEdge {
	edge := &sweepEdge{lSite: lSite, rSite: rSite}
	s.edges = append(s.edges, edge)
	if hasVa {
		s.setEdgeStart(edge, lSite, rSite, va)
	}
	if hasVb {
		s.setEdgeEnd(edge, lSite, rSite, vb)
	}
	return edge
}

func (s *sweep) setEdgeStart(edge *sweepEdge, lSite, rSite int, vertex r2.Point) {
	switch {
	case !edge.hasVa && !edge.hasVb:
		edge.va = vertex
		edge.hasVa = true
		edge.lSite = lSite
		edge.rSite = rSite
	case edge.lSite == rSite:
		edge.vb = vertex
		edge.hasVb = true
	default:
		edge.va = vertex
		edge.hasVa = true
	}
}

func (s *sweep) setEdgeEnd(edge *sweepEdge, lSite, rSite int, vertex r2.Point) {
	s.setEdgeStart(edge, rSite, lSite, vertex)
}

// leftBreakPoint computes the X coordinate of the breakpoint between arc and
// its beachline predecessor for the given directrix.
func (s *sweep) leftBreakPoint(arc *beachSection, directrix float64) float64 {
	site := s.sites[arc.site]
	rfocx, rfocy := site.X, site.Y
	pby2 := rfocy - directrix
	// Arc focus on the directrix: the breakpoint degenerates to the focus.
	if pby2 == 0 {
		return rfocx
	}
	lNode := arc.node.previous
	if lNode == nil {
		return math.Inf(-1)
	}
	lSite := s.sites[lNode.value.(*beachSection).site]
	lfocx, lfocy := lSite.X, lSite.Y
	plby2 := lfocy - directrix
	if plby2 == 0 {
		return lfocx
	}
	hl := lfocx - rfocx
	aby2 := 1/pby2 - 1/plby2
	b := hl / plby2
	if aby2 != 0 {
		return (-b+math.Sqrt(b*b-2*aby2*(hl*hl/(-2*plby2)-lfocy+plby2/2+rfocy-pby2/2)))/aby2 + rfocx
	}
	// Both parabolas have the same latus rectum: the breakpoint sits midway.
	return (rfocx + lfocx) / 2
}

func (s *sweep) rightBreakPoint(arc *beachSection, directrix float64) float64 {
	rNode := arc.node.next
	if rNode != nil {
		return s.leftBreakPoint(rNode.value.(*beachSection), directrix)
	}
	site := s.sites[arc.site]
	if site.Y == directrix {
		return site.X
	}
	return math.Inf(1)
}

func (s *sweep) detachBeachSection(arc *beachSection) {
	s.detachCircleEvent(arc)
	s.beachline.removeNode(arc.node)
}

func (s *sweep) removeBeachSection(arc *beachSection) {
	circle := arc.circleEvent
	x := circle.x
	y := circle.ycenter
	vertex := r2.Point{X: x, Y: y}
	previous := arc.node.previous
	next := arc.node.next
	disappearing := []*beachSection{arc}

	s.detachBeachSection(arc)

	// Collapsed arcs to the left may share the same circle event vertex.
	lArc := previous.value.(*beachSection)
	for lArc.circleEvent != nil &&
		math.Abs(x-lArc.circleEvent.x) < sweepEps &&
		math.Abs(y-lArc.circleEvent.ycenter) < sweepEps {
		previous = lArc.node.previous
		disappearing = append([]*beachSection{lArc}, disappearing...)
		s.detachBeachSection(lArc)
		lArc = previous.value.(*beachSection)
	}
	// The arc left of the collapse survives but needs a circle event refresh.
	disappearing = append([]*beachSection{lArc}, disappearing...)
	s.detachCircleEvent(lArc)

	rArc := next.value.(*beachSection)
	for rArc.circleEvent != nil &&
		math.Abs(x-rArc.circleEvent.x) < sweepEps &&
		math.Abs(y-rArc.circleEvent.ycenter) < sweepEps {
		next = rArc.node.next
		disappearing = append(disappearing, rArc)
		s.detachBeachSection(rArc)
		rArc = next.value.(*beachSection)
	}
	disappearing = append(disappearing, rArc)
	s.detachCircleEvent(rArc)

	// Every transition between consecutive collapsed arcs ends at the vertex.
	nArcs := len(disappearing)
	for iArc := 1; iArc < nArcs; iArc++ {
		rArc = disappearing[iArc]
		lArc = disappearing[iArc-1]
		s.setEdgeStart(rArc.edge, lArc.site, rArc.site, vertex)
	}

	// A new transition appears between the outermost survivors.
	lArc = disappearing[0]
	rArc = disappearing[nArcs-1]
	rArc.edge = s.createEdge(lArc.site, rArc.site, r2.Point{}, vertex, false, true)

	s.attachCircleEvent(lArc)
	s.attachCircleEvent(rArc)
}

func (s *sweep) addBeachSection(siteIdx int) {
	site := s.sites[siteIdx]
	x := site.X
	directrix := site.Y

	// Locate the arc straddling the new site's sweep position.
	var lArc, rArc *beachSection
	node := s.beachline.root
	for node != nil {
		arc := node.value.(*beachSection)
		dxl := s.leftBreakPoint(arc, directrix) - x
		if dxl > sweepEps {
			node = node.left
			continue
		}
		dxr := x - s.rightBreakPoint(arc, directrix)
		if dxr > sweepEps {
			if node.right == nil {
				lArc = arc
				break
			}
			node = node.right
			continue
		}
		switch {
		case dxl > -sweepEps:
			lArc = prevSection(arc)
			rArc = arc
		case dxr > -sweepEps:
			lArc = arc
			rArc = nextSection(arc)
		default:
			lArc = arc
			rArc = arc
		}
		break
	}

	newArc := &beachSection{site: siteIdx}
	if lArc == nil {
		s.beachline.insertSuccessor(nil, newArc)
	} else {
		s.beachline.insertSuccessor(lArc.node, newArc)
	}

	switch {
	case lArc == nil && rArc == nil:
		// First beach section, no transitions yet.
		return

	case lArc == rArc:
		// The new section splits an existing one.
		s.detachCircleEvent(lArc)

		rArc = &beachSection{site: lArc.site}
		s.beachline.insertSuccessor(newArc.node, rArc)

		newArc.edge = s.createEdge(lArc.site, newArc.site, r2.Point{}, r2.Point{}, false, false)
		rArc.edge = newArc.edge

		s.attachCircleEvent(lArc)
		s.attachCircleEvent(rArc)

	case lArc != nil && rArc == nil:
		// The new section lands past the beachline's last arc.
		newArc.edge = s.createEdge(lArc.site, newArc.site, r2.Point{}, r2.Point{}, false, false)

	default:
		// The new section falls exactly on a breakpoint between two arcs.
		s.detachCircleEvent(lArc)
		s.detachCircleEvent(rArc)

		// The breakpoint's position is the circumcenter of the two old
		// sites and the new one.
		lSite := s.sites[lArc.site]
		ax := lSite.X
		ay := lSite.Y
		bx := site.X - ax
		by := site.Y - ay
		rSite := s.sites[rArc.site]
		cx := rSite.X - ax
		cy := rSite.Y - ay
		d := 2 * (bx*cy - by*cx)
		hb := bx*bx + by*by
		hc := cx*cx + cy*cy
		vertex := r2.Point{
			X: (cy*hb-by*hc)/d + ax,
			Y: (bx*hc-cx*hb)/d + ay,
		}

		s.setEdgeStart(rArc.edge, lArc.site, rArc.site, vertex)

		newArc.edge = s.createEdge(lArc.site, newArc.site, r2.Point{}, vertex, false, true)
		rArc.edge = s.createEdge(newArc.site, rArc.site, r2.Point{}, vertex, false, true)

		s.attachCircleEvent(lArc)
		s.attachCircleEvent(rArc)
	}
}

func (s *sweep) attachCircleEvent(arc *beachSection) {
	lNode := arc.node.previous
	rNode := arc.node.next
	if lNode == nil || rNode == nil {
		return
	}
	lArc := lNode.value.(*beachSection)
	rArc := rNode.value.(*beachSection)
	if lArc.site == rArc.site {
		return
	}

	lSite := s.sites[lArc.site]
	cSite := s.sites[arc.site]
	rSite := s.sites[rArc.site]

	bx := cSite.X
	by := cSite.Y
	ax := lSite.X - bx
	ay := lSite.Y - by
	cx := rSite.X - bx
	cy := rSite.Y - by

	// The arc collapses only if the three sites turn clockwise, i.e. the
	// breakpoints converge.
	d := 2 * (ax*cy - ay*cx)
	if d >= -2e-12 {
		return
	}

	ha := ax*ax + ay*ay
	hc := cx*cx + cy*cy
	x := (cy*ha - ay*hc) / d
	y := (ax*hc - cx*ha) / d
	ycenter := y + by

	circle := &circleEvent{
		arc:     arc,
		x:       x + bx,
		y:       ycenter + math.Sqrt(x*x+y*y),
		ycenter: ycenter,
	}
	arc.circleEvent = circle

	// Insert ordered by (y, x) and keep the cached front of the queue.
	var predecessor *rbNode
	node := s.circleEvents.root
	for node != nil {
		nodeValue := node.value.(*circleEvent)
		if circle.y < nodeValue.y || (circle.y == nodeValue.y && circle.x <= nodeValue.x) {
			if node.left != nil {
				node = node.left
			} else {
				predecessor = node.previous
				break
			}
		} else {
			if node.right != nil {
				node = node.right
			} else {
				predecessor = node
				break
			}
		}
	}
	s.circleEvents.insertSuccessor(predecessor, circle)
	if predecessor == nil {
		s.firstCircleEvent = circle
	}
}

func (s *sweep) detachCircleEvent(arc *beachSection) {
	circle := arc.circleEvent
	if circle == nil {
		return
	}
	if circle.node.previous == nil {
		if circle.node.next != nil {
			s.firstCircleEvent = circle.node.next.value.(*circleEvent)
		} else {
			s.firstCircleEvent = nil
		}
	}
	s.circleEvents.removeNode(circle.node)
	arc.circleEvent = nil
}

func prevSection(arc *beachSection) *beachSection {
	if arc.node.previous == nil {
		return nil
	}
	return arc.node.previous.value.(*beachSection)
}

func nextSection(arc *beachSection) *beachSection {
	if arc.node.next == nil {
		return nil
	}
	return arc.node.next.value.(*beachSection)
}
