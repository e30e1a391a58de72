package libgesturego

import (
	"fmt"
	"math"
	"strings"
)

// ChannelKind identifies a typed stream of sensor samples.
type ChannelKind int

const (
	ChannelAcceleration ChannelKind = iota
	ChannelMagneticField
	ChannelLight
	ChannelProximity
)

// AllChannelKinds lists every channel kind a detector can ask for.
var AllChannelKinds = []ChannelKind{
	ChannelAcceleration,
	ChannelMagneticField,
	ChannelLight,
	ChannelProximity,
}

var channelNames = map[ChannelKind]string{
	ChannelAcceleration:  "accel",
	ChannelMagneticField: "magnetic",
	ChannelLight:         "light",
	ChannelProximity:     "proximity",
}

func (k ChannelKind) String() string {
	if name, ok := channelNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ChannelKind(%d)", int(k))
}

// ParseChannelKind maps the names used in sensor logs and config files back
// to a ChannelKind.
func ParseChannelKind(name string) (ChannelKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "accelerometer", "acceleration":
		return ChannelAcceleration, nil
	case "magnetic_field", "mag":
		return ChannelMagneticField, nil
	}
	for kind, known := range channelNames {
		if known == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownChannel, name)
}

// Standard gravity in m/s^2.
const GravityEarth = 9.80665

// Sample is a single timestamped reading from one channel. Scalar channels
// (light, proximity) only use Values[0].
type Sample struct {
	Kind      ChannelKind
	Values    [3]float64
	Timestamp int64 // ns
}

// Valid reports whether every value is a finite number. Samples that fail
// this check are dropped before they reach a detector.
func (s Sample) Valid() bool {
	for _, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
