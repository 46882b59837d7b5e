package element

import "testing"

func TestOsmIDAccessors(t *testing.T) {
	id := Way(42)
	if w, ok := id.Way(); !ok || w != 42 {
		t.Errorf("Way() = %v, %v", w, ok)
	}
	if _, ok := id.Node(); ok {
		t.Error("way ID reported as node")
	}

	id = Node(-3)
	if n, ok := id.Node(); !ok || n != -3 {
		t.Errorf("Node() = %v, %v", n, ok)
	}
	if _, ok := id.Way(); ok {
		t.Error("node ID reported as way")
	}
}

func TestOsmIDLess(t *testing.T) {
	// Nodes order before ways, IDs numerically within a kind.
	if !Node(100).Less(Way(-100)) {
		t.Error("expected node/100 < way/-100")
	}
	if !Way(-2).Less(Way(-1)) {
		t.Error("expected way/-2 < way/-1")
	}
	if Way(5).Less(Way(5)) {
		t.Error("id not less than itself")
	}
}

func TestSynthetic(t *testing.T) {
	if WayID(7).Synthetic() || NodeID(0).Synthetic() {
		t.Error("source IDs reported synthetic")
	}
	if !WayID(-1).Synthetic() || !NodeID(-10).Synthetic() {
		t.Error("negative IDs not reported synthetic")
	}
}

func TestMultiMapSetSemantics(t *testing.T) {
	mm := MultiMap{}
	mm.Add(10, "Route 2")
	mm.Add(10, "Route 1")
	mm.Add(10, "Route 1")

	values := mm.Values(10)
	if len(values) != 2 || values[0] != "Route 1" || values[1] != "Route 2" {
		t.Errorf("values %v", values)
	}
	if mm.Len() != 1 {
		t.Errorf("len %d, expected 1", mm.Len())
	}
	if mm.Values(11) != nil {
		t.Error("missing key returned values")
	}
}

func TestMultiMapEqualIgnoresOrder(t *testing.T) {
	a := MultiMap{}
	a.Add(10, "Route 1")
	a.Add(10, "Route 2")
	a.Add(12, "Route 3")

	b := MultiMap{}
	b.Add(12, "Route 3")
	b.Add(10, "Route 2")
	b.Add(10, "Route 1")

	if !a.Equal(&b) || !b.Equal(&a) {
		t.Error("multimaps with same sets not equal")
	}

	b.Add(10, "Route 4")
	if a.Equal(&b) {
		t.Error("different multimaps reported equal")
	}
}

func TestMultiMapKeysSorted(t *testing.T) {
	mm := MultiMap{}
	mm.Add(30, "c")
	mm.Add(-5, "a")
	mm.Add(10, "b")

	keys := mm.Keys()
	if len(keys) != 3 || keys[0] != -5 || keys[1] != 10 || keys[2] != 30 {
		t.Errorf("keys %v", keys)
	}
}
