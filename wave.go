package libgesturego

const DefaultWaveThresholdMs = 1000

const (
	proximityFar = iota
	proximityNear
)

// WaveDetector reports a wave when the proximity sensor goes from near to
// far within ThresholdMs. Only an exact zero distance counts as near.
type WaveDetector struct {
	sensorDetector
	ThresholdMs int64

	lastState     int
	lastTimestamp int64
}

func NewWaveDetector(thresholdMs int64) *WaveDetector {
	return &WaveDetector{
		sensorDetector: sensorDetector{channels: []ChannelKind{ChannelProximity}},
		ThresholdMs:    thresholdMs,
		lastState:      proximityFar,
	}
}

func (d *WaveDetector) OnSample(s Sample) (GestureEvent, bool) {
	if !d.accepts(s.Kind) {
		return GestureEvent{}, false
	}

	state := proximityFar
	if s.Values[0] == 0 {
		state = proximityNear
	}

	var (
		event GestureEvent
		fired bool
	)
	deltaNs := s.Timestamp - d.lastTimestamp
	if deltaNs < d.ThresholdMs*nsPerMs &&
		d.lastState == proximityNear &&
		state == proximityFar {
		event, fired = newEvent(EventWave, s.Timestamp), true
	}

	d.lastTimestamp = s.Timestamp
	d.lastState = state
	return event, fired
}
