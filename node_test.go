package skillmap

import "testing"

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test")
	assertNodeDefaults(t, n, "test", NodeKindContainer)
}

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("cell", NodeKindCell, 120, 100)
	assertNodeDefaults(t, n, "cell", NodeKindCell)
	if n.Width != 120 || n.Height != 100 {
		t.Errorf("size = %vx%v, want 120x100", n.Width, n.Height)
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, kind NodeKind) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Kind != kind {
		t.Errorf("Kind = %d, want %d", n.Kind, kind)
	}
	if n.Color != (Color{1, 1, 1, 1}) {
		t.Errorf("Color = %v, want white", n.Color)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewNode("c", NodeKindCell, 1, 1)
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Errorf("IDs should be unique: %d, %d, %d", a.ID, b.ID, c.ID)
	}
}

// --- Tree manipulation ---

func TestAddChildBasic(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Error("child not appended")
	}
}

func TestAddChildReparent(t *testing.T) {
	p1 := NewContainer("p1")
	p2 := NewContainer("p2")
	child := NewContainer("child")

	p1.AddChild(child)
	p2.AddChild(child)
	if p1.NumChildren() != 0 {
		t.Error("p1 should have 0 children after reparent")
	}
	if p2.NumChildren() != 1 || child.Parent != p2 {
		t.Error("child should belong to p2")
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil child", func() { NewContainer("p").AddChild(nil) }},
		{"self", func() {
			n := NewContainer("n")
			n.AddChild(n)
		}},
		{"cycle", func() {
			a := NewContainer("a")
			b := NewContainer("b")
			a.AddChild(b)
			b.AddChild(a)
		}},
		{"remove non-child", func() {
			NewContainer("a").RemoveChild(NewContainer("b"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestRemoveChildKeepsOrder(t *testing.T) {
	p := NewContainer("p")
	a, b, c := NewContainer("a"), NewContainer("b"), NewContainer("c")
	p.AddChild(a)
	p.AddChild(b)
	p.AddChild(c)

	p.RemoveChild(b)
	if p.NumChildren() != 2 || p.ChildAt(0) != a || p.ChildAt(1) != c {
		t.Error("remaining children out of order")
	}
	if b.Parent != nil {
		t.Error("removed child still has a parent")
	}

	c.RemoveFromParent()
	if p.NumChildren() != 1 {
		t.Error("RemoveFromParent did not detach")
	}
	c.RemoveFromParent() // no-op

	p.RemoveChildren()
	if p.NumChildren() != 0 || a.Parent != nil {
		t.Error("RemoveChildren left children attached")
	}
}

// --- Disposal ---

func TestDisposeRecursive(t *testing.T) {
	root := NewContainer("root")
	island := NewNode("island", NodeKindIsland, 10, 10)
	cell := NewNode("cell", NodeKindCell, 5, 5)
	root.AddChild(island)
	island.AddChild(cell)

	island.Dispose()
	if !island.IsDisposed() || !cell.IsDisposed() {
		t.Error("island and cell should be disposed")
	}
	if root.NumChildren() != 0 {
		t.Error("disposed island still attached")
	}
	if cell.Selectable() {
		t.Error("disposed cell is selectable")
	}
	if cell.AttachedTo(root) {
		t.Error("disposed cell reports attached")
	}
	island.Dispose() // second call is a no-op
}

// --- Queries ---

func TestWorldBounds(t *testing.T) {
	root := NewContainer("root")
	root.X, root.Y = 5, 5
	island := NewNode("island", NodeKindIsland, 300, 200)
	island.X, island.Y = 100, 50
	cell := NewNode("cell", NodeKindCell, 40, 40)
	cell.X, cell.Y = 10, 20
	root.AddChild(island)
	island.AddChild(cell)

	if got := cell.WorldBounds(); got != (Rect{X: 115, Y: 75, Width: 40, Height: 40}) {
		t.Errorf("WorldBounds = %+v", got)
	}
	lx, ly := cell.WorldToLocal(120, 80)
	assertNear(t, "lx", lx, 5)
	assertNear(t, "ly", ly, 5)
	if cell.Bounds() != (Rect{X: 10, Y: 20, Width: 40, Height: 40}) {
		t.Errorf("Bounds = %+v", cell.Bounds())
	}
}

func TestIslandAndAttachedTo(t *testing.T) {
	root := NewContainer("root")
	island := NewNode("island", NodeKindIsland, 10, 10)
	cell := NewNode("cell", NodeKindCell, 5, 5)
	root.AddChild(island)
	island.AddChild(cell)

	if cell.Island() != island || island.Island() != island {
		t.Error("Island() should find the wrapper")
	}
	if root.Island() != nil {
		t.Error("content root has no island")
	}
	if !cell.AttachedTo(root) || !cell.AttachedTo(cell) {
		t.Error("cell should be attached to root and itself")
	}
	other := NewContainer("other")
	if cell.AttachedTo(other) {
		t.Error("cell attached to an unrelated root")
	}
	var nilNode *Node
	if nilNode.AttachedTo(root) {
		t.Error("nil node reports attached")
	}
}

func TestSelectable(t *testing.T) {
	tests := []struct {
		name string
		n    *Node
		want bool
	}{
		{"cell", NewNode("c", NodeKindCell, 1, 1), true},
		{"placeholder cell", &Node{Kind: NodeKindCell, Placeholder: true}, false},
		{"island", NewNode("i", NodeKindIsland, 1, 1), false},
		{"title", NewNode("t", NodeKindTitle, 1, 1), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.Selectable(); got != tt.want {
				t.Errorf("Selectable = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWalkSkipsSubtree(t *testing.T) {
	root := NewContainer("root")
	a := NewContainer("a")
	b := NewContainer("b")
	a.AddChild(NewContainer("a1"))
	root.AddChild(a)
	root.AddChild(b)

	var visited []string
	root.Walk(func(n *Node) bool {
		visited = append(visited, n.Name)
		return n.Name != "a"
	})
	want := []string{"root", "a", "b"}
	if len(visited) != len(want) {
		t.Fatalf("visited = %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited = %v, want %v", visited, want)
			break
		}
	}
}

func TestDebugDisposedAccessPanics(t *testing.T) {
	m := NewMap(MapOptions{Logger: discardLogger()})
	m.SetDebugMode(true)
	defer m.SetDebugMode(false)

	n := NewContainer("gone")
	n.Dispose()
	defer func() {
		if recover() == nil {
			t.Error("expected panic adding a disposed child in debug mode")
		}
	}()
	NewContainer("p").AddChild(n)
}
