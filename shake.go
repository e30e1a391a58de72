package libgesturego

import "math"

const (
	DefaultShakeThreshold = 3.0

	// Weight of the previous accumulator value. Anything below 1 decays
	// isolated spikes.
	shakeDecay = 0.9
)

// ShakeDetector fires whenever the decayed sum of acceleration magnitude
// deltas exceeds the threshold. There is no cooldown: sustained shaking
// fires on every qualifying sample.
type ShakeDetector struct {
	sensorDetector
	Threshold float64

	accel        float64
	accelCurrent float64
}

func NewShakeDetector(threshold float64) *ShakeDetector {
	return &ShakeDetector{
		sensorDetector: sensorDetector{channels: []ChannelKind{ChannelAcceleration}},
		Threshold:      threshold,
		accelCurrent:   GravityEarth,
	}
}

func (d *ShakeDetector) OnSample(s Sample) (GestureEvent, bool) {
	if !d.accepts(s.Kind) {
		return GestureEvent{}, false
	}

	x, y, z := s.Values[0], s.Values[1], s.Values[2]
	last := d.accelCurrent
	d.accelCurrent = math.Sqrt(x*x + y*y + z*z)
	d.accel = d.accel*shakeDecay + (d.accelCurrent - last)

	if d.accel > d.Threshold {
		return newEvent(EventShake, s.Timestamp), true
	}
	return GestureEvent{}, false
}

// Accumulator returns the current smoothed magnitude delta.
func (d *ShakeDetector) Accumulator() float64 {
	return d.accel
}
