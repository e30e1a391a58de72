package libgesturego

const DefaultLightThreshold = 3.0 // lux

// LightDetector reports Dark or Light on every sample (level-triggered).
type LightDetector struct {
	sensorDetector
	Threshold float64
}

func NewLightDetector(threshold float64) *LightDetector {
	return &LightDetector{
		sensorDetector: sensorDetector{channels: []ChannelKind{ChannelLight}},
		Threshold:      threshold,
	}
}

func (d *LightDetector) OnSample(s Sample) (GestureEvent, bool) {
	if !d.accepts(s.Kind) {
		return GestureEvent{}, false
	}
	if s.Values[0] < d.Threshold {
		return newEvent(EventDark, s.Timestamp), true
	}
	return newEvent(EventLight, s.Timestamp), true
}
