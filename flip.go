package libgesturego

// The z axis reads close to +g when the screen faces up and -g when it faces
// down.
const (
	FaceUpMinZ   = 9.0
	FaceUpMaxZ   = 10.0
	FaceDownMinZ = -10.0
	FaceDownMaxZ = -9.0
)

// FlipDetector reports face-up and face-down transitions. Unlike the light and
// proximity detectors it is edge-triggered: the same face is never reported
// twice in a row, even if the device passes through neither band in between.
type FlipDetector struct {
	sensorDetector
	last EventKind
}

func NewFlipDetector() *FlipDetector {
	return &FlipDetector{
		sensorDetector: sensorDetector{channels: []ChannelKind{ChannelAcceleration}},
		last:           EventNone,
	}
}

func (d *FlipDetector) OnSample(s Sample) (GestureEvent, bool) {
	if !d.accepts(s.Kind) {
		return GestureEvent{}, false
	}

	z := s.Values[2]
	var kind EventKind
	switch {
	case z > FaceUpMinZ && z < FaceUpMaxZ:
		kind = EventFaceUp
	case z > FaceDownMinZ && z < FaceDownMaxZ:
		kind = EventFaceDown
	default:
		return GestureEvent{}, false
	}

	if kind == d.last {
		return GestureEvent{}, false
	}
	d.last = kind
	return newEvent(kind, s.Timestamp), true
}
