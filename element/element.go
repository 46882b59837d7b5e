// Package element defines the shared identifier namespace for raw map
// features. Ways and nodes have separate ID spaces, as in the source
// data. IDs parsed from source files are non-negative; negative IDs
// are synthetic, allocated by the pipeline when a feature has no
// source element (see rawmap.NewOsmWayID/NewOsmNodeID).
package element

import "fmt"

// ElemType distinguishes the two identifier kinds.
type ElemType uint8

const (
	NodeElem ElemType = 0
	WayElem  ElemType = 1
)

func (t ElemType) String() string {
	switch t {
	case NodeElem:
		return "node"
	case WayElem:
		return "way"
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

// A NodeID identifies a source node.
type NodeID int64

// A WayID identifies a source way.
type WayID int64

// Synthetic reports whether the ID was allocated by the pipeline
// instead of parsed from source data.
func (id NodeID) Synthetic() bool { return id < 0 }

func (id WayID) Synthetic() bool { return id < 0 }

// An OsmID identifies a source element of either kind. It makes the
// way/node partition explicit instead of relying on callers to keep
// two int64s apart. The zero value is node 0.
type OsmID struct {
	Type ElemType
	ID   int64
}

// Way wraps a way ID.
func Way(id WayID) OsmID { return OsmID{Type: WayElem, ID: int64(id)} }

// Node wraps a node ID.
func Node(id NodeID) OsmID { return OsmID{Type: NodeElem, ID: int64(id)} }

// Way returns the way ID, if this is a way-based ID.
func (i OsmID) Way() (WayID, bool) {
	if i.Type != WayElem {
		return 0, false
	}
	return WayID(i.ID), true
}

// Node returns the node ID, if this is a node-based ID.
func (i OsmID) Node() (NodeID, bool) {
	if i.Type != NodeElem {
		return 0, false
	}
	return NodeID(i.ID), true
}

// Less orders IDs by kind, then by plain int64 comparison within the
// kind. Snapshots serialize map keys in this order.
func (i OsmID) Less(other OsmID) bool {
	if i.Type != other.Type {
		return i.Type < other.Type
	}
	return i.ID < other.ID
}

func (i OsmID) String() string {
	return fmt.Sprintf("%s/%d", i.Type, i.ID)
}
