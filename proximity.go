package libgesturego

const DefaultProximityThreshold = 3.0

// ProximityDetector reports Near or Far on every sample (level-triggered).
// Units are whatever the sensor reports, usually centimeters.
type ProximityDetector struct {
	sensorDetector
	Threshold float64
}

func NewProximityDetector(threshold float64) *ProximityDetector {
	return &ProximityDetector{
		sensorDetector: sensorDetector{channels: []ChannelKind{ChannelProximity}},
		Threshold:      threshold,
	}
}

func (d *ProximityDetector) OnSample(s Sample) (GestureEvent, bool) {
	if !d.accepts(s.Kind) {
		return GestureEvent{}, false
	}
	if s.Values[0] < d.Threshold {
		return newEvent(EventNear, s.Timestamp), true
	}
	return newEvent(EventFar, s.Timestamp), true
}
