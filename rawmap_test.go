package rawmap

import (
	"testing"

	"github.com/mapcraft/rawmap/element"
	"github.com/mapcraft/rawmap/geom"
	"github.com/mapcraft/rawmap/mapname"
	"github.com/mapcraft/rawmap/streets"
)

func testName() mapname.MapName {
	return mapname.New("gb", "london", "southbank")
}

func TestBlank(t *testing.T) {
	m := Blank(testName())

	if m.Streets.NumRoads() != 0 || m.Streets.NumIntersections() != 0 {
		t.Error("blank map has a non-empty street network")
	}
	if len(m.Buildings) != 0 || len(m.Areas) != 0 || len(m.ParkingLots) != 0 ||
		len(m.ParkingAisles) != 0 || len(m.TransitRoutes) != 0 || len(m.TransitStops) != 0 {
		t.Error("blank map has features")
	}
	if m.BusRoutesOnRoads.Len() != 0 {
		t.Error("blank map has bus route entries")
	}
	if m.CityName() != mapname.NewCityName("gb", "london") {
		t.Errorf("city name %v", m.CityName())
	}
}

func addRoad(m *RawMap, wayID element.WayID) {
	m.Streets.Roads[m.Streets.NextRoadID()] = &streets.Road{
		OsmWayID: wayID,
		Center:   geom.PolyLine{{X: 0, Y: 0}, {X: 10, Y: 0}},
	}
}

func TestNewOsmWayID(t *testing.T) {
	m := Blank(testName())
	addRoad(m, 5)

	// No collision: the start itself is free.
	if id := m.NewOsmWayID(-1); id != -1 {
		t.Errorf("allocated %d, expected -1", id)
	}

	// A building keyed by way -1 forces the next candidate.
	m.Buildings[element.Way(-1)] = &RawBuilding{}
	if id := m.NewOsmWayID(-1); id != -2 {
		t.Errorf("allocated %d, expected -2", id)
	}

	// A road at -2 as well: scan continues by single decrements.
	addRoad(m, -2)
	if id := m.NewOsmWayID(-1); id != -3 {
		t.Errorf("allocated %d, expected -3", id)
	}

	// Node-keyed buildings don't occupy the way namespace.
	m2 := Blank(testName())
	m2.Buildings[element.Node(-1)] = &RawBuilding{}
	if id := m2.NewOsmWayID(-1); id != -1 {
		t.Errorf("allocated %d, expected -1", id)
	}
}

func TestNewOsmWayIDIdempotent(t *testing.T) {
	m := Blank(testName())
	addRoad(m, -1)
	addRoad(m, -2)

	first := m.NewOsmWayID(-1)
	second := m.NewOsmWayID(-1)
	if first != second {
		t.Errorf("allocation not deterministic: %d then %d", first, second)
	}
	if first != -3 {
		t.Errorf("allocated %d, expected -3", first)
	}
}

func TestNewOsmNodeID(t *testing.T) {
	m := Blank(testName())
	m.Streets.Intersections[-1] = &streets.Intersection{Point: geom.Pt2D{X: 1, Y: 1}}
	m.Streets.Intersections[-2] = &streets.Intersection{Point: geom.Pt2D{X: 2, Y: 2}}
	m.Streets.Intersections[7] = &streets.Intersection{Point: geom.Pt2D{X: 3, Y: 3}}

	if id := m.NewOsmNodeID(-1); id != -3 {
		t.Errorf("allocated %d, expected -3", id)
	}
	if id := m.NewOsmNodeID(-5); id != -5 {
		t.Errorf("allocated %d, expected -5", id)
	}
}

func TestAllocatorRejectsSourceRange(t *testing.T) {
	m := Blank(testName())
	for _, start := range []int64{0, 1, 42} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewOsmWayID(%d) did not panic", start)
				}
			}()
			m.NewOsmWayID(start)
		}()
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewOsmNodeID(%d) did not panic", start)
				}
			}()
			m.NewOsmNodeID(start)
		}()
	}
}

type fakeWriter struct {
	got *RawMap
	err error
}

func (w *fakeWriter) PutRawMap(m *RawMap) error {
	w.got = m
	return w.err
}

func TestSnapshot(t *testing.T) {
	m := Blank(testName())
	w := &fakeWriter{}
	if err := m.Snapshot(w); err != nil {
		t.Fatal(err)
	}
	if w.got != m {
		t.Error("snapshot did not pass the map through")
	}
}

func TestCategorizeAmenity(t *testing.T) {
	if tp, ok := CategorizeAmenity("supermarket"); !ok || tp != AmenityGroceries {
		t.Errorf("supermarket categorized as %v, %v", tp, ok)
	}
	if _, ok := CategorizeAmenity("car_wash"); ok {
		t.Error("unknown kind categorized")
	}
}
