// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"math"

	"github.com/golang/geo/r2"
)

// connectEdge extends an edge with a missing endpoint until it meets the clip
// rectangle. Reports false when the bisector never enters the rectangle.
func (s *sweep) connectEdge(edge *sweepEdge, clip r2.Rect) bool {
	if edge.hasVb {
		return true
	}
	xlo, xhi := clip.X.Lo, clip.X.Hi
	ylo, yhi := clip.Y.Lo, clip.Y.Hi
	lSite, rSite := s.sites[edge.lSite], s.sites[edge.rSite]
	lx, ly := lSite.X, lSite.Y
	rx, ry := rSite.X, rSite.Y
	fx, fy := (lx+rx)/2, (ly+ry)/2

	// Bisector as y = fm*x + fb unless the sites share a Y coordinate.
	var fm, fb float64
	vertical := math.Abs(ry-ly) < sweepEps
	if !vertical {
		fm = (lx - rx) / (ry - ly)
		fb = fy - fm*fx
	}

	va, hasVa := edge.va, edge.hasVa
	var vb r2.Point
	switch {
	case vertical:
		if fx < xlo || fx >= xhi {
			return false
		}
		if lx > rx { // open end heads toward high Y
			if !hasVa {
				va = r2.Point{X: fx, Y: ylo}
			} else if va.Y >= yhi {
				return false
			}
			vb = r2.Point{X: fx, Y: yhi}
		} else { // toward low Y
			if !hasVa {
				va = r2.Point{X: fx, Y: yhi}
			} else if va.Y < ylo {
				return false
			}
			vb = r2.Point{X: fx, Y: ylo}
		}

	case fm < -1 || fm > 1:
		// Steeper than the diagonal: pin the open end to a horizontal border.
		if lx > rx {
			if !hasVa {
				va = r2.Point{X: (ylo - fb) / fm, Y: ylo}
			} else if va.Y >= yhi {
				return false
			}
			vb = r2.Point{X: (yhi - fb) / fm, Y: yhi}
		} else {
			if !hasVa {
				va = r2.Point{X: (yhi - fb) / fm, Y: yhi}
			} else if va.Y < ylo {
				return false
			}
			vb = r2.Point{X: (ylo - fb) / fm, Y: ylo}
		}

	default:
		// Shallow: pin the open end to a vertical border.
		if ly < ry {
			if !hasVa {
				va = r2.Point{X: xlo, Y: fm*xlo + fb}
			} else if va.X >= xhi {
				return false
			}
			vb = r2.Point{X: xhi, Y: fm*xhi + fb}
		} else {
			if !hasVa {
				va = r2.Point{X: xhi, Y: fm*xhi + fb}
			} else if va.X < xlo {
				return false
			}
			vb = r2.Point{X: xlo, Y: fm*xlo + fb}
		}
	}

	edge.va = va
	edge.hasVa = true
	edge.vb = vb
	edge.hasVb = true
	return true
}

// clipEdgeToRect trims the edge to the clip rectangle with the Liang-Barsky
// parameter walk. Reports false when nothing of the edge remains inside.
func clipEdgeToRect(edge *sweepEdge, clip r2.Rect) bool {
	ax, ay := edge.va.X, edge.va.Y
	bx, by := edge.vb.X, edge.vb.Y
	t0, t1 := 0.0, 1.0
	dx, dy := bx-ax, by-ay

	// left border
	q := ax - clip.X.Lo
	if dx == 0 && q < 0 {
		return false
	}
	r := -q / dx
	if dx < 0 {
		if r < t0 {
			return false
		}
		if r < t1 {
			t1 = r
		}
	} else if dx > 0 {
		if r > t1 {
			return false
		}
		if r > t0 {
			t0 = r
		}
	}

	// right border
	q = clip.X.Hi - ax
	if dx == 0 && q < 0 {
		return false
	}
	r = q / dx
	if dx < 0 {
		if r > t1 {
			return false
		}
		if r > t0 {
			t0 = r
		}
	} else if dx > 0 {
		if r < t0 {
			return false
		}
		if r < t1 {
			t1 = r
		}
	}

	// low Y border
	q = ay - clip.Y.Lo
	if dy == 0 && q < 0 {
		return false
	}
	r = -q / dy
	if dy < 0 {
		if r < t0 {
			return false
		}
		if r < t1 {
			t1 = r
		}
	} else if dy > 0 {
		if r > t1 {
			return false
		}
		if r > t0 {
			t0 = r
		}
	}

	// high Y border
	q = clip.Y.Hi - ay
	if dy == 0 && q < 0 {
		return false
	}
	r = q / dy
	if dy < 0 {
		if r > t1 {
			return false
		}
		if r > t0 {
			t0 = r
		}
	} else if dy > 0 {
		if r < t0 {
			return false
		}
		if r < t1 {
			t1 = r
		}
	}

	if t0 > 0 {
		edge.va = r2.Point{X: ax + t0*dx, Y: ay + t0*dy}
	}
	if t1 < 1 {
		edge.vb = r2.Point{X: ax + t1*dx, Y: ay + t1*dy}
	}
	return true
}

// snapToRect pulls coordinates within sweepEps of a border exactly onto it,
// so border membership survives the floating point of the clip stage.
func snapToRect(p r2.Point, r r2.Rect) r2.Point {
	if math.Abs(p.X-r.X.Lo) < sweepEps {
		p.X = r.X.Lo
	} else if math.Abs(p.X-r.X.Hi) < sweepEps {
		p.X = r.X.Hi
	}
	if math.Abs(p.Y-r.Y.Lo) < sweepEps {
		p.Y = r.Y.Lo
	} else if math.Abs(p.Y-r.Y.Hi) < sweepEps {
		p.Y = r.Y.Hi
	}
	return p
}

// clipEdges connects dangling edges to the clip rectangle, trims everything
// to it and drops edges that fall outside or collapse to a point.
func (s *sweep) clipEdges(clip r2.Rect) {
	kept := s.edges[:0]
	for _, edge := range s.edges {
		if !s.connectEdge(edge, clip) || !clipEdgeToRect(edge, clip) {
			continue
		}
		edge.va = snapToRect(edge.va, clip)
		edge.vb = snapToRect(edge.vb, clip)
		if math.Abs(edge.va.X-edge.vb.X) < sweepEps && math.Abs(edge.va.Y-edge.vb.Y) < sweepEps {
			continue
		}
		kept = append(kept, edge)
	}
	s.edges = kept
}
