package libgesturego

// SignalSmoother is a fixed-width moving average. The window starts out
// filled with zeros, so the first width-1 averages are pulled towards zero.
type SignalSmoother struct {
	window []float64
	next   int
}

func NewSignalSmoother(width int) *SignalSmoother {
	if width < 1 {
		width = 1
	}
	return &SignalSmoother{
		window: make([]float64, width),
	}
}

// Add pushes v into the window, evicting the oldest value, and returns the
// new average.
func (s *SignalSmoother) Add(v float64) float64 {
	s.window[s.next] = v
	s.next = (s.next + 1) % len(s.window)
	return s.Average()
}

// Average is recomputed from the window on every call so that a window of
// zeros averages to exactly zero.
func (s *SignalSmoother) Average() float64 {
	sum := 0.0
	for _, v := range s.window {
		sum += v
	}
	return sum / float64(len(s.window))
}

func (s *SignalSmoother) Width() int {
	return len(s.window)
}

func (s *SignalSmoother) Reset() {
	for i := range s.window {
		s.window[i] = 0
	}
	s.next = 0
}
