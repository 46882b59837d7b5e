// Package geom provides the plain geometry value types stored in raw
// map snapshots. All coordinates are in map space (meters east/north
// of the map origin), not lon/lat. Geometry algorithms (clipping,
// triangulation, projections) live in the street-network engine, not
// here.
package geom

import (
	"fmt"
	"math"
)

// A Pt2D is a point in map space.
type Pt2D struct {
	X float64
	Y float64
}

func (p Pt2D) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", p.X, p.Y)
}

// DistanceTo returns the euclidean distance to other.
func (p Pt2D) DistanceTo(other Pt2D) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// A PolyLine is an ordered sequence of points. Route shapes may extend
// beyond the map boundary.
type PolyLine []Pt2D

// Length returns the summed length of all segments.
func (pl PolyLine) Length() float64 {
	total := 0.0
	for i := 1; i < len(pl); i++ {
		total += pl[i-1].DistanceTo(pl[i])
	}
	return total
}

// A Polygon is a single closed ring of points. The first point is not
// repeated at the end.
type Polygon []Pt2D

// Center returns the average of all ring points. This is not a true
// centroid, but it is stable and cheap, which is all the tooling needs.
func (p Polygon) Center() Pt2D {
	if len(p) == 0 {
		return Pt2D{}
	}
	var x, y float64
	for _, pt := range p {
		x += pt.X
		y += pt.Y
	}
	n := float64(len(p))
	return Pt2D{X: x / n, Y: y / n}
}
