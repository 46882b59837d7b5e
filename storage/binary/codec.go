// Package binary implements the snapshot encoding of a RawMap. The
// encoding is deterministic: map collections are written in sorted key
// order and sets in sorted value order, so encoding the same map twice
// yields identical bytes. Varints keep small IDs and counts compact;
// coordinates are stored as full float64 bits so snapshots round-trip
// exactly.
package binary

import (
	bin "encoding/binary"
	"math"
	"sort"

	osm "github.com/omniscale/go-osm"
	"github.com/pkg/errors"

	"github.com/mapcraft/rawmap"
	"github.com/mapcraft/rawmap/element"
	"github.com/mapcraft/rawmap/geom"
	"github.com/mapcraft/rawmap/mapname"
	"github.com/mapcraft/rawmap/streets"
)

const (
	magic = "RWMP"
	// formatVersion is bumped on any layout change. There is no
	// migration: old snapshots are re-imported from source.
	formatVersion = 1
)

// MarshalRawMap encodes the whole aggregate, street network included.
func MarshalRawMap(m *rawmap.RawMap) ([]byte, error) {
	e := &encoder{buf: make([]byte, 0, 4096)}
	e.raw(magic)
	e.uvarint(formatVersion)

	e.str(m.Name.City.Country)
	e.str(m.Name.City.City)
	e.str(m.Name.Map)

	e.streetNetwork(&m.Streets)
	e.buildings(m.Buildings)
	e.areas(m.Areas)
	e.parkingLots(m.ParkingLots)
	e.parkingAisles(m.ParkingAisles)
	e.transitRoutes(m.TransitRoutes)
	e.transitStops(m.TransitStops)
	e.multiMap(&m.BusRoutesOnRoads)

	return e.buf, nil
}

// UnmarshalRawMap decodes a snapshot produced by MarshalRawMap.
func UnmarshalRawMap(data []byte) (*rawmap.RawMap, error) {
	d := &decoder{buf: data}
	if string(d.raw(len(magic))) != magic {
		return nil, errors.New("unmarshal raw map: bad magic")
	}
	if v := d.uvarint(); v != formatVersion {
		return nil, errors.Errorf("unmarshal raw map: unsupported snapshot version %d", v)
	}

	country := d.str()
	city := d.str()
	mapName := d.str()
	m := rawmap.Blank(mapname.New(country, city, mapName))

	d.streetNetwork(&m.Streets)
	d.buildings(m.Buildings)
	m.Areas = d.areas()
	m.ParkingLots = d.parkingLots()
	m.ParkingAisles = d.parkingAisles()
	m.TransitRoutes = d.transitRoutes()
	d.transitStops(m.TransitStops)
	d.multiMap(&m.BusRoutesOnRoads)

	if d.err != nil {
		return nil, errors.Wrap(d.err, "unmarshal raw map")
	}
	if d.off != len(d.buf) {
		return nil, errors.Errorf("unmarshal raw map: %d trailing bytes", len(d.buf)-d.off)
	}
	return m, nil
}

type encoder struct {
	buf []byte
	tmp [bin.MaxVarintLen64]byte
}

func (e *encoder) raw(s string) {
	e.buf = append(e.buf, s...)
}

func (e *encoder) uvarint(v uint64) {
	n := bin.PutUvarint(e.tmp[:], v)
	e.buf = append(e.buf, e.tmp[:n]...)
}

func (e *encoder) varint(v int64) {
	n := bin.PutVarint(e.tmp[:], v)
	e.buf = append(e.buf, e.tmp[:n]...)
}

func (e *encoder) str(s string) {
	e.uvarint(uint64(len(s)))
	e.buf = append(e.buf, s...)
}

func (e *encoder) float(f float64) {
	var b [8]byte
	bin.LittleEndian.PutUint64(b[:], math.Float64bits(f))
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) pt(p geom.Pt2D) {
	e.float(p.X)
	e.float(p.Y)
}

func (e *encoder) pts(ps []geom.Pt2D) {
	e.uvarint(uint64(len(ps)))
	for _, p := range ps {
		e.pt(p)
	}
}

func (e *encoder) tags(t osm.Tags) {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	e.uvarint(uint64(len(keys)))
	for _, k := range keys {
		e.str(k)
		e.str(t[k])
	}
}

func (e *encoder) osmID(id element.OsmID) {
	e.uvarint(uint64(id.Type))
	e.varint(id.ID)
}

func (e *encoder) streetNetwork(sn *streets.StreetNetwork) {
	roadIDs := make([]streets.RoadID, 0, len(sn.Roads))
	for id := range sn.Roads {
		roadIDs = append(roadIDs, id)
	}
	sort.Slice(roadIDs, func(i, j int) bool { return roadIDs[i] < roadIDs[j] })
	e.uvarint(uint64(len(roadIDs)))
	for _, id := range roadIDs {
		r := sn.Roads[id]
		e.varint(int64(id))
		e.varint(int64(r.OsmWayID))
		e.pts(r.Center)
		e.tags(r.Tags)
	}

	nodeIDs := make([]element.NodeID, 0, len(sn.Intersections))
	for id := range sn.Intersections {
		nodeIDs = append(nodeIDs, id)
	}
	sort.Slice(nodeIDs, func(i, j int) bool { return nodeIDs[i] < nodeIDs[j] })
	e.uvarint(uint64(len(nodeIDs)))
	for _, id := range nodeIDs {
		i := sn.Intersections[id]
		e.varint(int64(id))
		e.pt(i.Point)
		e.tags(i.Tags)
	}
}

func (e *encoder) buildings(bs map[element.OsmID]*rawmap.RawBuilding) {
	ids := make([]element.OsmID, 0, len(bs))
	for id := range bs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	e.uvarint(uint64(len(ids)))
	for _, id := range ids {
		b := bs[id]
		e.osmID(id)
		e.pts(b.Polygon)
		e.tags(b.OsmTags)
		e.str(b.PublicGarageName)
		e.uvarint(uint64(b.NumParkingSpots))
		e.uvarint(uint64(len(b.Amenities)))
		for _, a := range b.Amenities {
			e.str(a.Name)
			e.str(a.Kind)
			e.tags(a.OsmTags)
		}
	}
}

func (e *encoder) areas(as []rawmap.RawArea) {
	e.uvarint(uint64(len(as)))
	for _, a := range as {
		e.uvarint(uint64(a.AreaType))
		e.pts(a.Polygon)
		e.tags(a.OsmTags)
		e.osmID(a.OsmID)
	}
}

func (e *encoder) parkingLots(ls []rawmap.RawParkingLot) {
	e.uvarint(uint64(len(ls)))
	for _, l := range ls {
		e.osmID(l.OsmID)
		e.pts(l.Polygon)
		e.tags(l.OsmTags)
	}
}

func (e *encoder) parkingAisles(as []rawmap.ParkingAisle) {
	e.uvarint(uint64(len(as)))
	for _, a := range as {
		e.varint(int64(a.OsmWayID))
		e.pts(a.Points)
	}
}

func (e *encoder) transitRoutes(rs []rawmap.RawTransitRoute) {
	e.uvarint(uint64(len(rs)))
	for _, r := range rs {
		e.str(r.LongName)
		e.str(r.ShortName)
		e.str(r.GtfsID)
		e.pts(r.Shape)
		e.uvarint(uint64(len(r.Stops)))
		for _, s := range r.Stops {
			e.str(s)
		}
		e.uvarint(uint64(r.RouteType))
	}
}

func (e *encoder) transitStops(ss map[string]*rawmap.RawTransitStop) {
	keys := make([]string, 0, len(ss))
	for k := range ss {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	e.uvarint(uint64(len(keys)))
	for _, k := range keys {
		s := ss[k]
		e.str(k)
		e.str(s.GtfsID)
		e.pt(s.Position)
		e.str(s.Name)
	}
}

func (e *encoder) multiMap(mm *element.MultiMap) {
	keys := mm.Keys()
	e.uvarint(uint64(len(keys)))
	for _, id := range keys {
		values := mm.Values(id)
		e.varint(int64(id))
		e.uvarint(uint64(len(values)))
		for _, v := range values {
			e.str(v)
		}
	}
}

type decoder struct {
	buf []byte
	off int
	err error
}

var errTruncated = errors.New("truncated snapshot")

func (d *decoder) raw(n int) []byte {
	if d.err != nil {
		return nil
	}
	if len(d.buf)-d.off < n {
		d.err = errTruncated
		return nil
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b
}

func (d *decoder) uvarint() uint64 {
	if d.err != nil {
		return 0
	}
	v, n := bin.Uvarint(d.buf[d.off:])
	if n <= 0 {
		d.err = errTruncated
		return 0
	}
	d.off += n
	return v
}

func (d *decoder) varint() int64 {
	if d.err != nil {
		return 0
	}
	v, n := bin.Varint(d.buf[d.off:])
	if n <= 0 {
		d.err = errTruncated
		return 0
	}
	d.off += n
	return v
}

// count reads a collection length and sanity-checks it against the
// remaining input, each entry being at least one byte. Without this, a
// corrupted length prefix could allocate gigabytes.
func (d *decoder) count() int {
	n := d.uvarint()
	if d.err == nil && n > uint64(len(d.buf)-d.off) {
		d.err = errTruncated
		return 0
	}
	return int(n)
}

func (d *decoder) str() string {
	n := d.count()
	return string(d.raw(n))
}

func (d *decoder) float() float64 {
	b := d.raw(8)
	if d.err != nil {
		return 0
	}
	return math.Float64frombits(bin.LittleEndian.Uint64(b))
}

func (d *decoder) pt() geom.Pt2D {
	return geom.Pt2D{X: d.float(), Y: d.float()}
}

func (d *decoder) pts() []geom.Pt2D {
	n := d.count()
	if n == 0 {
		return nil
	}
	ps := make([]geom.Pt2D, n)
	for i := range ps {
		ps[i] = d.pt()
	}
	return ps
}

func (d *decoder) tags() osm.Tags {
	n := d.count()
	if n == 0 {
		return nil
	}
	t := make(osm.Tags, n)
	for i := 0; i < n; i++ {
		k := d.str()
		t[k] = d.str()
	}
	return t
}

func (d *decoder) osmID() element.OsmID {
	return element.OsmID{Type: element.ElemType(d.uvarint()), ID: d.varint()}
}

func (d *decoder) streetNetwork(sn *streets.StreetNetwork) {
	for i, n := 0, d.count(); i < n; i++ {
		id := streets.RoadID(d.varint())
		sn.Roads[id] = &streets.Road{
			OsmWayID: element.WayID(d.varint()),
			Center:   d.pts(),
			Tags:     d.tags(),
		}
	}
	for i, n := 0, d.count(); i < n; i++ {
		id := element.NodeID(d.varint())
		sn.Intersections[id] = &streets.Intersection{
			Point: d.pt(),
			Tags:  d.tags(),
		}
	}
}

func (d *decoder) buildings(bs map[element.OsmID]*rawmap.RawBuilding) {
	for i, n := 0, d.count(); i < n; i++ {
		id := d.osmID()
		b := &rawmap.RawBuilding{
			Polygon:          d.pts(),
			OsmTags:          d.tags(),
			PublicGarageName: d.str(),
			NumParkingSpots:  int(d.uvarint()),
		}
		if na := d.count(); na > 0 {
			b.Amenities = make([]rawmap.Amenity, na)
			for j := range b.Amenities {
				b.Amenities[j] = rawmap.Amenity{
					Name:    d.str(),
					Kind:    d.str(),
					OsmTags: d.tags(),
				}
			}
		}
		if d.err != nil {
			return
		}
		bs[id] = b
	}
}

func (d *decoder) areas() []rawmap.RawArea {
	n := d.count()
	if n == 0 {
		return nil
	}
	as := make([]rawmap.RawArea, n)
	for i := range as {
		as[i] = rawmap.RawArea{
			AreaType: rawmap.AreaType(d.uvarint()),
			Polygon:  d.pts(),
			OsmTags:  d.tags(),
			OsmID:    d.osmID(),
		}
	}
	return as
}

func (d *decoder) parkingLots() []rawmap.RawParkingLot {
	n := d.count()
	if n == 0 {
		return nil
	}
	ls := make([]rawmap.RawParkingLot, n)
	for i := range ls {
		ls[i] = rawmap.RawParkingLot{
			OsmID:   d.osmID(),
			Polygon: d.pts(),
			OsmTags: d.tags(),
		}
	}
	return ls
}

func (d *decoder) parkingAisles() []rawmap.ParkingAisle {
	n := d.count()
	if n == 0 {
		return nil
	}
	as := make([]rawmap.ParkingAisle, n)
	for i := range as {
		as[i] = rawmap.ParkingAisle{
			OsmWayID: element.WayID(d.varint()),
			Points:   d.pts(),
		}
	}
	return as
}

func (d *decoder) transitRoutes() []rawmap.RawTransitRoute {
	n := d.count()
	if n == 0 {
		return nil
	}
	rs := make([]rawmap.RawTransitRoute, n)
	for i := range rs {
		r := rawmap.RawTransitRoute{
			LongName:  d.str(),
			ShortName: d.str(),
			GtfsID:    d.str(),
			Shape:     d.pts(),
		}
		if ns := d.count(); ns > 0 {
			r.Stops = make([]string, ns)
			for j := range r.Stops {
				r.Stops[j] = d.str()
			}
		}
		r.RouteType = rawmap.RouteType(d.uvarint())
		rs[i] = r
	}
	return rs
}

func (d *decoder) transitStops(ss map[string]*rawmap.RawTransitStop) {
	for i, n := 0, d.count(); i < n; i++ {
		k := d.str()
		s := &rawmap.RawTransitStop{
			GtfsID:   d.str(),
			Position: d.pt(),
			Name:     d.str(),
		}
		if d.err != nil {
			return
		}
		ss[k] = s
	}
}

func (d *decoder) multiMap(mm *element.MultiMap) {
	for i, n := 0, d.count(); i < n; i++ {
		id := element.WayID(d.varint())
		for j, nv := 0, d.count(); j < nv; j++ {
			v := d.str()
			if d.err != nil {
				return
			}
			mm.Add(id, v)
		}
	}
}
