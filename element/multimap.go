package element

import "sort"

// A MultiMap maps way IDs to an unordered set of strings. The zero
// value is an empty MultiMap ready to use.
//
// It backs the bus-routes-per-road index, which is derived once from
// source relations and is best-effort: it is not kept consistent when
// the map is edited or transformed afterwards.
type MultiMap struct {
	items map[WayID]map[string]struct{}
}

// Add inserts value into the set for id. Duplicates are ignored.
func (mm *MultiMap) Add(id WayID, value string) {
	if mm.items == nil {
		mm.items = make(map[WayID]map[string]struct{})
	}
	set, ok := mm.items[id]
	if !ok {
		set = make(map[string]struct{})
		mm.items[id] = set
	}
	set[value] = struct{}{}
}

// Get returns the set for id, or nil if id has no entries. The
// returned map is shared; callers must not modify it.
func (mm *MultiMap) Get(id WayID) map[string]struct{} {
	return mm.items[id]
}

// Values returns the set for id as a sorted slice.
func (mm *MultiMap) Values(id WayID) []string {
	set := mm.items[id]
	if len(set) == 0 {
		return nil
	}
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Keys returns all keys with at least one entry, sorted.
func (mm *MultiMap) Keys() []WayID {
	keys := make([]WayID, 0, len(mm.items))
	for id := range mm.items {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Len returns the number of keys.
func (mm *MultiMap) Len() int { return len(mm.items) }

// Equal reports whether both multimaps hold the same sets, ignoring
// insertion order.
func (mm *MultiMap) Equal(other *MultiMap) bool {
	if len(mm.items) != len(other.items) {
		return false
	}
	for id, set := range mm.items {
		otherSet, ok := other.items[id]
		if !ok || len(set) != len(otherSet) {
			return false
		}
		for v := range set {
			if _, ok := otherSet[v]; !ok {
				return false
			}
		}
	}
	return true
}
