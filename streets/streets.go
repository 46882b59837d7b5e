// Package streets holds the street-network subgraph owned by a raw
// map. Only the data shape lives here: topology algorithms (merging
// intersections, trimming roads, lane inference) belong to the
// street-network engine that consumes the snapshot.
package streets

import (
	osm "github.com/omniscale/go-osm"

	"github.com/mapcraft/rawmap/element"
	"github.com/mapcraft/rawmap/geom"
)

// A RoadID identifies one road within a single network. It is assigned
// sequentially during parsing and is not stable across imports; the
// originating way ID is.
type RoadID int64

// A Road is one road segment between two intersections.
type Road struct {
	// OsmWayID is the source way this road was split from. Synthetic
	// (negative) for roads invented by the pipeline.
	OsmWayID element.WayID
	Center   geom.PolyLine
	Tags     osm.Tags
}

// An Intersection is the endpoint shared by one or more roads.
type Intersection struct {
	Point geom.Pt2D
	Tags  osm.Tags
}

// A StreetNetwork is the primary topology of a raw map. Road and
// intersection IDs participate in the map-wide identifier namespace:
// synthetic way/node allocation scans them for collisions.
type StreetNetwork struct {
	Roads         map[RoadID]*Road
	Intersections map[element.NodeID]*Intersection
}

// Blank returns an empty network.
func Blank() StreetNetwork {
	return StreetNetwork{
		Roads:         make(map[RoadID]*Road),
		Intersections: make(map[element.NodeID]*Intersection),
	}
}

// NextRoadID returns the lowest unused road ID. Road IDs are dense,
// so this is just the current count.
func (sn *StreetNetwork) NextRoadID() RoadID {
	return RoadID(len(sn.Roads))
}

func (sn *StreetNetwork) NumRoads() int { return len(sn.Roads) }

func (sn *StreetNetwork) NumIntersections() int { return len(sn.Intersections) }
