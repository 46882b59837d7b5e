// Package rawmap models the intermediate representation produced by
// the map import pipeline. Parsing raw source data is expensive;
// storing this partially-processed form lets the later conversion
// stages and the visual editor iterate against a cheap, reloadable
// snapshot instead of re-reading source files.
package rawmap

import (
	osm "github.com/omniscale/go-osm"

	"github.com/mapcraft/rawmap/element"
	"github.com/mapcraft/rawmap/geom"
	"github.com/mapcraft/rawmap/mapname"
	"github.com/mapcraft/rawmap/streets"
)

// A RawMap is the aggregate the parser fills in and the pipeline
// snapshots. It exclusively owns all nested collections; children
// never point back at it. One RawMap is built and snapshotted by one
// pipeline run, so there is no internal locking.
type RawMap struct {
	Name    mapname.MapName
	Streets streets.StreetNetwork

	// Buildings is keyed by the originating way or node.
	Buildings map[element.OsmID]*RawBuilding
	Areas     []RawArea

	ParkingLots []RawParkingLot
	// ParkingAisles are aisle centerlines, not yet structured geometry.
	ParkingAisles []ParkingAisle

	TransitRoutes []RawTransitRoute
	// TransitStops is keyed by the stop's GTFS ID. The parser only
	// inserts stops within the map boundary.
	TransitStops map[string]*RawTransitStop

	// BusRoutesOnRoads records which bus routes run along each road.
	// It is scraped from source relations for every map, unlike
	// TransitRoutes which come from GTFS for a few maps, and is only
	// used to identify roads that are part of bus routes. Best-effort:
	// not robust to later edits or transformations.
	BusRoutesOnRoads element.MultiMap
}

// Blank returns a map with an empty street network and no features.
func Blank(name mapname.MapName) *RawMap {
	return &RawMap{
		Name:         name,
		Streets:      streets.Blank(),
		Buildings:    make(map[element.OsmID]*RawBuilding),
		TransitStops: make(map[string]*RawTransitStop),
	}
}

// CityName returns the city this map belongs to.
func (m *RawMap) CityName() mapname.CityName {
	return m.Name.City
}

// NewOsmWayID returns a synthetic way ID for this map, scanning
// downwards from start until the candidate collides with neither a
// road's originating way ID nor a way-keyed building. Deterministic
// for a fixed map state and start, so repeated pipeline runs allocate
// the same IDs. Panics if start is not negative.
//
// Known gap: areas and parking lots are not checked, so a collision
// with their source IDs is possible. Callers needing full safety must
// pre-screen those collections themselves.
func (m *RawMap) NewOsmWayID(start int64) element.WayID {
	if start >= 0 {
		panic("synthetic way IDs must start negative")
	}
	// Slow, but deterministic.
	id := start
	for {
		candidate := element.WayID(id)
		if m.wayIDTaken(candidate) {
			id--
			continue
		}
		return candidate
	}
}

// NewOsmNodeID returns a synthetic node ID for this map, scanning
// downwards from start past all intersection IDs. Deterministic, see
// NewOsmWayID. Panics if start is not negative.
func (m *RawMap) NewOsmNodeID(start int64) element.NodeID {
	if start >= 0 {
		panic("synthetic node IDs must start negative")
	}
	// Slow, but deterministic.
	id := start
	for {
		if _, ok := m.Streets.Intersections[element.NodeID(id)]; ok {
			id--
			continue
		}
		return element.NodeID(id)
	}
}

func (m *RawMap) wayIDTaken(id element.WayID) bool {
	for _, r := range m.Streets.Roads {
		if r.OsmWayID == id {
			return true
		}
	}
	_, ok := m.Buildings[element.Way(id)]
	return ok
}

// A SnapshotWriter persists one serialized RawMap per map name,
// overwriting any previous snapshot for the same name.
type SnapshotWriter interface {
	PutRawMap(m *RawMap) error
}

// Snapshot writes the whole aggregate through w, keyed by the map's
// name. Failures of the writer are returned as-is; there is no
// partial-write recovery here.
func (m *RawMap) Snapshot(w SnapshotWriter) error {
	return w.PutRawMap(m)
}

// A RawBuilding is one building footprint from a single source way or
// node. The parser creates it; nothing mutates it afterwards.
type RawBuilding struct {
	Polygon geom.Polygon
	OsmTags osm.Tags
	// PublicGarageName is set for buildings tagged as public parking
	// garages; empty otherwise.
	PublicGarageName string
	NumParkingSpots  int
	Amenities        []Amenity
}

// A RawArea is a park, body of water, or similar landuse feature.
type RawArea struct {
	AreaType AreaType
	Polygon  geom.Polygon
	OsmTags  osm.Tags
	OsmID    element.OsmID
}

// A RawParkingLot is a surface parking lot footprint.
type RawParkingLot struct {
	OsmID   element.OsmID
	Polygon geom.Polygon
	OsmTags osm.Tags
}

// A ParkingAisle is an aisle centerline within a parking lot.
type ParkingAisle struct {
	OsmWayID element.WayID
	Points   []geom.Pt2D
}

// A RawTransitRoute is one GTFS route.
type RawTransitRoute struct {
	LongName  string
	ShortName string
	GtfsID    string
	// Shape may begin and/or end outside the map boundary.
	Shape geom.PolyLine
	// Stops reference keys of RawMap.TransitStops. Integrity is
	// advisory: nothing here validates the references.
	Stops     []string
	RouteType RouteType
}

// A RawTransitStop is one GTFS stop inside the map boundary.
type RawTransitStop struct {
	GtfsID   string
	Position geom.Pt2D
	Name     string
}
