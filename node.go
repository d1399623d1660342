package cadence

// --- ID counter ---

// nodeIDCounter is a plain counter, not atomic: cadence is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is an element of the owner tree. Tasks scheduled against a Node run
// only while the node and all of its ancestors are active and the node has
// not been disposed.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Metadata
	UserData any

	// OnDispose is called once, before the node's children are disposed.
	OnDispose func(*Node)

	// Internal
	active   bool
	disposed bool
	gen      uint64
}

// NewNode creates an active node with no parent.
func NewNode(name string) *Node {
	return &Node{ID: nextNodeID(), Name: name, active: true}
}

// --- Activity ---

// SetActive sets the node's own active flag. Deactivating a node suspends
// nothing by itself; the scheduler cancels tasks owned by it (or by any
// descendant) the next time it inspects them.
func (n *Node) SetActive(active bool) {
	if globalDebug {
		debugCheckDisposed(n, "SetActive")
	}
	if n.active && !active {
		n.bumpGeneration()
	}
	n.active = active
}

// Generation counts how often the node has been deactivated or disposed,
// directly or through an ancestor. Tasks record it when they start and end
// once it changes, so a deactivate/reactivate pair between two scheduler
// passes still stops them.
func (n *Node) Generation() uint64 {
	if n == nil {
		return 0
	}
	return n.gen
}

// bumpGeneration advances the generation of n and all its descendants.
func (n *Node) bumpGeneration() {
	n.gen++
	for _, c := range n.children {
		c.bumpGeneration()
	}
}

// ActiveSelf returns the node's own active flag, ignoring ancestors.
func (n *Node) ActiveSelf() bool {
	return n.active
}

// ActiveInHierarchy reports whether the node and every ancestor is active and
// the node is not disposed. A nil node is never active, so a typed-nil *Node
// passed as an Owner behaves like a missing owner.
func (n *Node) ActiveInHierarchy() bool {
	if n == nil || n.disposed {
		return false
	}
	for p := n; p != nil; p = p.Parent {
		if !p.active {
			return false
		}
	}
	return true
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("cadence: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("cadence: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if !n.ActiveInHierarchy() {
		child.bumpGeneration()
	}
	child.Parent = n
	n.children = append(n.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("cadence: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, n) {
		panic("cadence: adding child would create a cycle")
	}
	if index < 0 || index > len(n.children) {
		panic("cadence: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index > len(n.children) {
		index = len(n.children)
	}
	if !n.ActiveInHierarchy() {
		child.bumpGeneration()
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("cadence: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("cadence: child index out of range")
	}
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.Parent = nil
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// SetChildIndex moves child to a new index among its siblings.
func (n *Node) SetChildIndex(child *Node, index int) {
	if child.Parent != n {
		panic("cadence: child's parent is not this node")
	}
	if index < 0 || index >= len(n.children) {
		panic("cadence: child index out of range")
	}
	oldIndex := -1
	for i, c := range n.children {
		if c == child {
			oldIndex = i
			break
		}
	}
	if oldIndex == index {
		return
	}
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = child
}

// FindChild returns the first descendant named name in depth-first order,
// or nil. The receiver itself is not considered.
func (n *Node) FindChild(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
		if found := c.FindChild(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Tasks owned by any disposed
// node stop at their next resumption point.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	if n.OnDispose != nil {
		n.OnDispose(n)
	}
	n.disposed = true
	n.gen++
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.UserData = nil
	n.OnDispose = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
