package cadence

// InjectDelta queues a synthetic frame delta. Each queued value replaces the
// real delta of exactly one subsequent Step, in FIFO order. Negative values
// are clamped to 0.
func (s *Scene) InjectDelta(dt float64) {
	if dt < 0 {
		dt = 0
	}
	s.injectQueue = append(s.injectQueue, dt)
}

// InjectHitch is a convenience that queues one long frame of the given
// length, simulating a stall in the game loop.
func (s *Scene) InjectHitch(seconds float64) {
	s.InjectDelta(seconds)
}

// InjectFrames queues frames frames of dt each.
func (s *Scene) InjectFrames(dt float64, frames int) {
	for i := 0; i < frames; i++ {
		s.InjectDelta(dt)
	}
}

// popInjectedDelta pops one queued delta.
func (s *Scene) popInjectedDelta() (float64, bool) {
	if len(s.injectQueue) == 0 {
		return 0, false
	}
	dt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	return dt, true
}
