package cadence

import "testing"

// --- Constructor defaults ---

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("test")
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != "test" {
		t.Errorf("Name = %q, want %q", n.Name, "test")
	}
	if !n.ActiveSelf() || !n.ActiveInHierarchy() {
		t.Error("new node should be active")
	}
	if n.Parent != nil || n.NumChildren() != 0 {
		t.Error("new node should be detached and childless")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Errorf("IDs should be unique: %d, %d, %d", a.ID, b.ID, c.ID)
	}
}

// --- Activity ---

func TestActiveInHierarchyFollowsAncestors(t *testing.T) {
	root := NewNode("root")
	mid := NewNode("mid")
	leaf := NewNode("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	root.SetActive(false)
	if leaf.ActiveInHierarchy() {
		t.Error("leaf should be inactive while root is inactive")
	}
	if !leaf.ActiveSelf() {
		t.Error("leaf's own flag should be unchanged")
	}
	root.SetActive(true)
	if !leaf.ActiveInHierarchy() {
		t.Error("leaf should be active again")
	}

	leaf.RemoveFromParent()
	root.SetActive(false)
	if !leaf.ActiveInHierarchy() {
		t.Error("detached leaf should not follow its former ancestors")
	}
}

func TestActiveInHierarchyNilAndDisposed(t *testing.T) {
	var n *Node
	if n.ActiveInHierarchy() {
		t.Error("nil node should be inactive")
	}
	d := NewNode("d")
	d.Dispose()
	if d.ActiveInHierarchy() {
		t.Error("disposed node should be inactive")
	}
}

func TestGenerationBumpsOnDeactivation(t *testing.T) {
	root := NewNode("root")
	leaf := NewNode("leaf")
	root.AddChild(leaf)
	g0, l0 := root.Generation(), leaf.Generation()

	root.SetActive(true)
	if root.Generation() != g0 {
		t.Error("activating an active node should not change its generation")
	}
	root.SetActive(false)
	root.SetActive(true)
	if root.Generation() == g0 || leaf.Generation() == l0 {
		t.Error("deactivation should advance the generation of the node and its descendants")
	}

	l1 := leaf.Generation()
	leaf.Dispose()
	if leaf.Generation() == l1 {
		t.Error("Dispose should advance the generation")
	}
	var n *Node
	if n.Generation() != 0 {
		t.Error("nil node generation should be 0")
	}
}

// --- AddChild ---

func TestAddChildBasic(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
	if parent.ChildAt(0) != child {
		t.Error("ChildAt(0) should be child")
	}
}

func TestAddChildReparent(t *testing.T) {
	p1 := NewNode("p1")
	p2 := NewNode("p2")
	child := NewNode("child")

	p1.AddChild(child)
	p2.AddChild(child)
	if p1.NumChildren() != 0 {
		t.Error("p1 should have 0 children after reparent")
	}
	if p2.NumChildren() != 1 {
		t.Error("p2 should have 1 child")
	}
	if child.Parent != p2 {
		t.Error("child.Parent should be p2")
	}
}

func TestAddChildCyclePanic(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	grandchild := NewNode("grandchild")
	parent.AddChild(child)
	child.AddChild(grandchild)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for cycle, got none")
		}
	}()
	grandchild.AddChild(parent)
}

func TestAddChildSelfPanic(t *testing.T) {
	n := NewNode("n")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic adding node to itself")
		}
	}()
	n.AddChild(n)
}

func TestAddChildNilPanic(t *testing.T) {
	n := NewNode("n")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil child")
		}
	}()
	n.AddChild(nil)
}

func TestAddChildAt(t *testing.T) {
	parent := NewNode("parent")
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	parent.AddChild(a)
	parent.AddChild(c)
	parent.AddChildAt(b, 1)

	for i, want := range []*Node{a, b, c} {
		if parent.ChildAt(i) != want {
			t.Errorf("ChildAt(%d) = %s, want %s", i, parent.ChildAt(i).Name, want.Name)
		}
	}
}

func TestAddChildAtOutOfRangeLeavesTreeIntact(t *testing.T) {
	old := NewNode("old")
	child := NewNode("child")
	old.AddChild(child)
	parent := NewNode("parent")

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic for out-of-range index")
			}
		}()
		parent.AddChildAt(child, 5)
	}()
	if child.Parent != old || old.NumChildren() != 1 {
		t.Error("failed AddChildAt should not detach child from its old parent")
	}
}

// --- Remove ---

func TestRemoveChild(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)
	parent.RemoveChild(child)

	if child.Parent != nil {
		t.Error("child.Parent should be nil")
	}
	if parent.NumChildren() != 0 {
		t.Error("parent should have 0 children")
	}
}

func TestRemoveChildWrongParentPanic(t *testing.T) {
	p1 := NewNode("p1")
	p2 := NewNode("p2")
	child := NewNode("child")
	p1.AddChild(child)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic removing from wrong parent")
		}
	}()
	p2.RemoveChild(child)
}

func TestRemoveChildAt(t *testing.T) {
	parent := NewNode("parent")
	a := NewNode("a")
	b := NewNode("b")
	parent.AddChild(a)
	parent.AddChild(b)

	removed := parent.RemoveChildAt(0)
	if removed != a {
		t.Error("RemoveChildAt(0) should return a")
	}
	if a.Parent != nil {
		t.Error("removed child should be detached")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != b {
		t.Error("b should be the only remaining child")
	}
}

func TestRemoveFromParentNoOp(t *testing.T) {
	n := NewNode("n")
	n.RemoveFromParent()
	if n.Parent != nil {
		t.Error("orphan should stay orphaned")
	}
}

func TestRemoveChildren(t *testing.T) {
	parent := NewNode("parent")
	kids := []*Node{NewNode("a"), NewNode("b"), NewNode("c")}
	for _, k := range kids {
		parent.AddChild(k)
	}
	parent.RemoveChildren()

	if parent.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", parent.NumChildren())
	}
	for _, k := range kids {
		if k.Parent != nil || k.IsDisposed() {
			t.Errorf("%s should be detached but not disposed", k.Name)
		}
	}
}

// --- Ordering and lookup ---

func TestSetChildIndex(t *testing.T) {
	parent := NewNode("parent")
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	parent.AddChild(a)
	parent.AddChild(b)
	parent.AddChild(c)

	parent.SetChildIndex(a, 2)
	for i, want := range []*Node{b, c, a} {
		if parent.ChildAt(i) != want {
			t.Errorf("after move to end: ChildAt(%d) = %s, want %s", i, parent.ChildAt(i).Name, want.Name)
		}
	}
	parent.SetChildIndex(a, 0)
	for i, want := range []*Node{a, b, c} {
		if parent.ChildAt(i) != want {
			t.Errorf("after move to front: ChildAt(%d) = %s, want %s", i, parent.ChildAt(i).Name, want.Name)
		}
	}
}

func TestFindChildDepthFirst(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	deep := NewNode("target")
	b := NewNode("target")
	root.AddChild(a)
	a.AddChild(deep)
	root.AddChild(b)

	if got := root.FindChild("target"); got != deep {
		t.Error("FindChild should return the first match in depth-first order")
	}
	if root.FindChild("root") != nil {
		t.Error("FindChild should not match the receiver")
	}
	if root.FindChild("missing") != nil {
		t.Error("FindChild should return nil when nothing matches")
	}
}

// --- Dispose ---

func TestDispose(t *testing.T) {
	root := NewNode("root")
	parent := NewNode("parent")
	child := NewNode("child")
	grandchild := NewNode("grandchild")
	root.AddChild(parent)
	parent.AddChild(child)
	child.AddChild(grandchild)

	var order []string
	for _, n := range []*Node{parent, child, grandchild} {
		n.OnDispose = func(d *Node) { order = append(order, d.Name) }
	}

	parent.Dispose()

	for _, n := range []*Node{parent, child, grandchild} {
		if !n.IsDisposed() {
			t.Errorf("%s should be disposed", n.Name)
		}
		if n.ID != 0 {
			t.Errorf("%s ID = %d, want 0", n.Name, n.ID)
		}
	}
	if root.NumChildren() != 0 {
		t.Error("root should have 0 children after dispose")
	}
	if len(order) != 3 || order[0] != "parent" || order[2] != "grandchild" {
		t.Errorf("OnDispose order = %v, want parent first", order)
	}
}

func TestDisposeIdempotent(t *testing.T) {
	n := NewNode("n")
	calls := 0
	n.OnDispose = func(*Node) { calls++ }
	n.Dispose()
	n.Dispose()
	if !n.IsDisposed() {
		t.Error("should still be disposed")
	}
	if calls != 1 {
		t.Errorf("OnDispose called %d times, want 1", calls)
	}
}

// --- Scope ---

func TestScopeLifecycle(t *testing.T) {
	s := NewScope(nil)
	if !s.ActiveInHierarchy() || s.Closed() {
		t.Fatal("new scope should be open")
	}
	s.Close()
	s.Close()
	if s.ActiveInHierarchy() || !s.Closed() {
		t.Error("closed scope should be inactive")
	}
	var nilScope *Scope
	if nilScope.ActiveInHierarchy() {
		t.Error("nil scope should be inactive")
	}
}

func TestScopeFollowsParent(t *testing.T) {
	n := NewNode("n")
	s := NewScope(n)
	n.SetActive(false)
	if s.ActiveInHierarchy() {
		t.Error("scope should be inactive while its parent is")
	}
	n.SetActive(true)
	if !s.ActiveInHierarchy() {
		t.Error("scope should be active again")
	}
	inner := NewScope(s)
	s.Close()
	if inner.ActiveInHierarchy() {
		t.Error("nested scope should close with its parent")
	}
}
