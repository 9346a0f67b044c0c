package platform

// Stepper decides whether the simulation advances on a given tick while the
// game can be paused from the debug overlay.
type Stepper struct {
	Paused bool

	steps   int
	advance float64
	elapsed float64
}

// Step queues single ticks to run while paused.
func (s *Stepper) Step(ticks int) {
	s.steps += ticks
}

// Advance runs the simulation for seconds of game time while paused.
func (s *Stepper) Advance(seconds float64) {
	s.advance = seconds
	s.elapsed = 0
}

func (s *Stepper) Resume() {
	*s = Stepper{}
}

// Progress returns the seconds advanced and requested by the last Advance.
func (s *Stepper) Progress() (elapsed, total float64) {
	return s.elapsed, s.advance
}

// ShouldUpdate reports whether the tick of length dt runs the simulation.
func (s *Stepper) ShouldUpdate(dt float64) bool {
	if !s.Paused {
		return true
	}
	if s.steps > 0 {
		s.steps--
		return true
	}
	if s.advance > 0 {
		s.elapsed += dt
		if s.elapsed >= s.advance {
			s.advance, s.elapsed = 0, 0
		}
		return true
	}
	return false
}
