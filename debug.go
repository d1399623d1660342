package cadence

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// defaultLogger writes human-readable lines to stderr, tagged like the rest
// of the framework's diagnostics.
func defaultLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		With().Timestamp().Str("component", "cadence").Logger()
}

// SetLogger replaces the scheduler's logger. The logger's own level is
// respected except in debug mode, which forces debug level.
func (s *Scheduler) SetLogger(l zerolog.Logger) {
	s.base = l
	s.log = l
	if s.debug {
		s.log = l.Level(zerolog.DebugLevel)
	}
}

// Logger returns the logger the scheduler currently writes to.
func (s *Scheduler) Logger() zerolog.Logger {
	return s.log
}

// SetDebugMode enables or disables debug logging of task starts, finishes
// and fixed-step budget overruns.
func (s *Scheduler) SetDebugMode(enabled bool) {
	s.debug = enabled
	if enabled {
		s.log = s.base.Level(zerolog.DebugLevel)
		return
	}
	s.log = s.base
}

func (s *Scheduler) applyLogLevel(lvl zerolog.Level) {
	s.base = s.base.Level(lvl)
	s.log = s.base
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("cadence debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[cadence] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[cadence] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}
