package r2geom

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
)

func TestSegment_Midpoint(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
		want r2.Point
	}{
		{
			name: "axis aligned",
			seg:  Segment{A: r2.Point{X: 0, Y: 0}, B: r2.Point{X: 4, Y: 0}},
			want: r2.Point{X: 2, Y: 0},
		},
		{
			name: "diagonal",
			seg:  Segment{A: r2.Point{X: -1, Y: -1}, B: r2.Point{X: 3, Y: 5}},
			want: r2.Point{X: 1, Y: 2},
		},
		{
			name: "degenerate",
			seg:  Segment{A: r2.Point{X: 2, Y: 3}, B: r2.Point{X: 2, Y: 3}},
			want: r2.Point{X: 2, Y: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.seg.Midpoint(); got != tt.want {
				t.Errorf("seg.Midpoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegment_Length(t *testing.T) {
	seg := Segment{A: r2.Point{X: 1, Y: 1}, B: r2.Point{X: 4, Y: 5}}
	if got, want := seg.Length(), 5.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("seg.Length() = %v, want %v", got, want)
	}
}

func TestSegment_Reversed(t *testing.T) {
	seg := Segment{A: r2.Point{X: 1, Y: 2}, B: r2.Point{X: 3, Y: 4}}
	got := seg.Reversed()
	want := Segment{A: r2.Point{X: 3, Y: 4}, B: r2.Point{X: 1, Y: 2}}
	if got != want {
		t.Errorf("seg.Reversed() = %v, want %v", got, want)
	}
}

func TestSegment_Lerp(t *testing.T) {
	seg := Segment{A: r2.Point{X: 0, Y: 0}, B: r2.Point{X: 10, Y: 20}}
	tests := []struct {
		name string
		t    float64
		want r2.Point
	}{
		{"start", 0, r2.Point{X: 0, Y: 0}},
		{"end", 1, r2.Point{X: 10, Y: 20}},
		{"middle", 0.5, r2.Point{X: 5, Y: 10}},
		{"extrapolated", 2, r2.Point{X: 20, Y: 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := seg.Lerp(tt.t); got != tt.want {
				t.Errorf("seg.Lerp(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestSegment_ContainsPoint(t *testing.T) {
	seg := Segment{A: r2.Point{X: 0, Y: 0}, B: r2.Point{X: 10, Y: 0}}
	tests := []struct {
		name string
		p    r2.Point
		want bool
	}{
		{"interior", r2.Point{X: 5, Y: 0}, true},
		{"endpoint a", r2.Point{X: 0, Y: 0}, true},
		{"endpoint b", r2.Point{X: 10, Y: 0}, true},
		{"off line", r2.Point{X: 5, Y: 1}, false},
		{"beyond b", r2.Point{X: 11, Y: 0}, false},
		{"before a", r2.Point{X: -1, Y: 0}, false},
		{"within tolerance", r2.Point{X: 5, Y: 1e-12}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := seg.ContainsPoint(tt.p, 1e-9); got != tt.want {
				t.Errorf("seg.ContainsPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestSegment_Intersection(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Segment
		want   r2.Point
		wantOK bool
	}{
		{
			name:   "crossing",
			a:      Segment{A: r2.Point{X: 0, Y: 0}, B: r2.Point{X: 10, Y: 10}},
			b:      Segment{A: r2.Point{X: 0, Y: 10}, B: r2.Point{X: 10, Y: 0}},
			want:   r2.Point{X: 5, Y: 5},
			wantOK: true,
		},
		{
			name:   "endpoint touch",
			a:      Segment{A: r2.Point{X: 0, Y: 0}, B: r2.Point{X: 5, Y: 5}},
			b:      Segment{A: r2.Point{X: 5, Y: 5}, B: r2.Point{X: 10, Y: 0}},
			want:   r2.Point{X: 5, Y: 5},
			wantOK: true,
		},
		{
			name:   "parallel",
			a:      Segment{A: r2.Point{X: 0, Y: 0}, B: r2.Point{X: 10, Y: 0}},
			b:      Segment{A: r2.Point{X: 0, Y: 1}, B: r2.Point{X: 10, Y: 1}},
			wantOK: false,
		},
		{
			name:   "lines cross but segments do not",
			a:      Segment{A: r2.Point{X: 0, Y: 0}, B: r2.Point{X: 1, Y: 1}},
			b:      Segment{A: r2.Point{X: 0, Y: 10}, B: r2.Point{X: 10, Y: 0}},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersection(tt.b)
			if ok != tt.wantOK {
				t.Fatalf("a.Intersection(b) ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.Sub(tt.want).Norm() > 1e-9 {
				t.Errorf("a.Intersection(b) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegment_IntersectsRect(t *testing.T) {
	rect := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 10})
	tests := []struct {
		name string
		seg  Segment
		want bool
	}{
		{
			name: "fully inside",
			seg:  Segment{A: r2.Point{X: 2, Y: 2}, B: r2.Point{X: 8, Y: 8}},
			want: true,
		},
		{
			name: "crossing through",
			seg:  Segment{A: r2.Point{X: -5, Y: 5}, B: r2.Point{X: 15, Y: 5}},
			want: true,
		},
		{
			name: "one endpoint inside",
			seg:  Segment{A: r2.Point{X: 5, Y: 5}, B: r2.Point{X: 20, Y: 20}},
			want: true,
		},
		{
			name: "fully outside",
			seg:  Segment{A: r2.Point{X: 20, Y: 20}, B: r2.Point{X: 30, Y: 20}},
			want: false,
		},
		{
			name: "passes beside",
			seg:  Segment{A: r2.Point{X: -5, Y: 20}, B: r2.Point{X: 15, Y: 20}},
			want: false,
		},
		{
			name: "touches border",
			seg:  Segment{A: r2.Point{X: -5, Y: 10}, B: r2.Point{X: 15, Y: 10}},
			want: true,
		},
		{
			name: "diagonal corner miss",
			seg:  Segment{A: r2.Point{X: 15, Y: 8}, B: r2.Point{X: 8, Y: 15}},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.seg.IntersectsRect(rect); got != tt.want {
				t.Errorf("seg.IntersectsRect() = %v, want %v", got, tt.want)
			}
		})
	}
}
