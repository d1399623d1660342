package cadence

// Owner gates whether a task may start and whether it may keep running.
// The scheduler checks it before starting a task, at every resumption point,
// and once per pass for every suspended task.
type Owner interface {
	ActiveInHierarchy() bool
}

// Generational is implemented by owners that can be deactivated and
// reactivated. A task records its owner's generation when it starts and
// ends once the generation changes, even if the owner is active again by the
// time the scheduler looks.
type Generational interface {
	Generation() uint64
}

// generation returns owner's generation, and false if it does not track one.
func generation(owner Owner) (uint64, bool) {
	g, ok := owner.(Generational)
	if !ok {
		return 0, false
	}
	return g.Generation(), true
}

// alive reports whether owner is usable. Typed-nil owners are expected to
// report false from their own ActiveInHierarchy.
func alive(owner Owner) bool {
	return owner != nil && owner.ActiveInHierarchy()
}

// Scope is an explicit cancellation token. Tasks scheduled against a Scope
// stop once it is closed or once its parent owner goes inactive.
type Scope struct {
	parent Owner
	closed bool
}

// NewScope creates an open scope. A nil parent makes a root scope that is
// active until closed.
func NewScope(parent Owner) *Scope {
	return &Scope{parent: parent}
}

// Close invalidates the scope. Closing twice is a no-op.
func (s *Scope) Close() {
	s.closed = true
}

// Closed reports whether Close has been called.
func (s *Scope) Closed() bool {
	return s.closed
}

// ActiveInHierarchy reports whether the scope is open and its parent, if any,
// is active.
func (s *Scope) ActiveInHierarchy() bool {
	if s == nil || s.closed {
		return false
	}
	return s.parent == nil || s.parent.ActiveInHierarchy()
}

// Generation follows the parent's generation when the parent tracks one.
// Closing is permanent, so it needs no generation of its own.
func (s *Scope) Generation() uint64 {
	if s == nil || s.parent == nil {
		return 0
	}
	g, _ := generation(s.parent)
	return g
}
