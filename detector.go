package libgesturego

// Detector turns a stream of sensor samples into semantic events. A detector
// owns all of its rolling state and must not be fed concurrently.
type Detector interface {
	// Channels lists every channel the detector needs. A detector is only
	// started if all of them are available.
	Channels() []ChannelKind

	// OnSample consumes one sample and returns at most one event. Samples
	// from channels the detector did not ask for are ignored.
	OnSample(s Sample) (GestureEvent, bool)
}

// sensorDetector holds the channel list shared by every detector variant.
type sensorDetector struct {
	channels []ChannelKind
}

func (d *sensorDetector) Channels() []ChannelKind {
	return d.channels
}

func (d *sensorDetector) accepts(kind ChannelKind) bool {
	for _, c := range d.channels {
		if c == kind {
			return true
		}
	}
	return false
}
