package skillmap

import "testing"

func TestFocusRingCycle(t *testing.T) {
	content := BuildContent(mustParse(t, testDocJSON), testLayout())
	r := NewFocusRing(content)
	if r.Len() != 4 {
		t.Fatalf("Len = %d, want 4", r.Len())
	}
	if r.Current() != nil {
		t.Error("new ring should have no focus")
	}

	var got []string
	for i := 0; i < 5; i++ {
		got = append(got, r.Next().Item.Name)
	}
	want := []string{"Go", "SQL", "Kafka", "CSS", "Go"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Next sequence = %v, want %v", got, want)
		}
	}
}

func TestFocusRingPrevWraps(t *testing.T) {
	content := BuildContent(mustParse(t, testDocJSON), testLayout())
	r := NewFocusRing(content)
	if n := r.Prev(); n.Item.Name != "CSS" {
		t.Errorf("Prev from nothing = %q, want CSS", n.Item.Name)
	}
	r.Next() // wraps to Go
	if n := r.Prev(); n.Item.Name != "CSS" {
		t.Errorf("Prev from first = %q, want CSS", n.Item.Name)
	}
	if n := r.Prev(); n.Item.Name != "Kafka" {
		t.Errorf("Prev = %q, want Kafka", n.Item.Name)
	}
}

func TestFocusRingSetAndClear(t *testing.T) {
	content := BuildContent(mustParse(t, testDocJSON), testLayout())
	r := NewFocusRing(content)
	cells := SelectableCells(content)

	if !r.Set(cells[2]) || r.Current() != cells[2] {
		t.Error("Set did not focus the cell")
	}
	if r.Next() != cells[3] {
		t.Error("Next should continue from the set cell")
	}
	if r.Set(NewNode("stray", NodeKindCell, 1, 1)) {
		t.Error("Set accepted a cell outside the ring")
	}
	if r.Current() != cells[3] {
		t.Error("failed Set changed focus")
	}
	r.Clear()
	if r.Current() != nil {
		t.Error("Clear left focus")
	}
}

func TestFocusRingEmpty(t *testing.T) {
	r := NewFocusRing(nil)
	if r.Next() != nil || r.Prev() != nil || r.Current() != nil {
		t.Error("empty ring returned a node")
	}
}

func TestFocusRingReset(t *testing.T) {
	r := NewFocusRing(BuildContent(mustParse(t, testDocJSON), testLayout()))
	r.Next()
	r.Reset(BuildContent(mustParse(t, `{"A": {"skills": {"x": {}}}}`), testLayout()))
	if r.Len() != 1 || r.Current() != nil {
		t.Errorf("after Reset Len = %d, Current = %v", r.Len(), r.Current())
	}
}
