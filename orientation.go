package libgesturego

import "math"

const DefaultOrientationSmoothness = 1

// Orientation is the coarse screen orientation derived from pitch and roll.
type Orientation int

const (
	OrientationPortrait Orientation = iota
	OrientationPortraitReverse
	OrientationLandscape
	OrientationLandscapeReverse
)

func (o Orientation) String() string {
	switch o {
	case OrientationPortrait:
		return "portrait"
	case OrientationPortraitReverse:
		return "portrait_reverse"
	case OrientationLandscape:
		return "landscape"
	case OrientationLandscapeReverse:
		return "landscape_reverse"
	}
	return "unknown"
}

// Tilt, in degrees, past which the device leaves the portrait band.
const orientationBandDegrees = 30

// OrientationDetector combines the latest accelerometer and magnetometer
// readings into smoothed pitch and roll angles and reports which side of the
// device is up. It reports on every sample once both channels have been seen.
type OrientationDetector struct {
	sensorDetector

	pitches *SignalSmoother
	rolls   *SignalSmoother

	gravity     [3]float64
	geomagnetic [3]float64
	haveGravity bool
	haveField   bool

	averagePitch float64
	averageRoll  float64
	orientation  Orientation
}

func NewOrientationDetector(smoothness int) *OrientationDetector {
	return &OrientationDetector{
		sensorDetector: sensorDetector{channels: []ChannelKind{ChannelAcceleration, ChannelMagneticField}},
		pitches:        NewSignalSmoother(smoothness),
		rolls:          NewSignalSmoother(smoothness),
		orientation:    OrientationPortrait,
	}
}

func (d *OrientationDetector) OnSample(s Sample) (GestureEvent, bool) {
	switch s.Kind {
	case ChannelAcceleration:
		d.gravity = s.Values
		d.haveGravity = true
	case ChannelMagneticField:
		d.geomagnetic = s.Values
		d.haveField = true
	default:
		return GestureEvent{}, false
	}

	if !d.haveGravity || !d.haveField {
		return GestureEvent{}, false
	}

	r, ok := rotationMatrix(d.gravity, d.geomagnetic)
	if !ok {
		return GestureEvent{}, false
	}
	pitch, roll := pitchRoll(r)

	d.averagePitch = d.pitches.Add(roundDegrees(pitch))
	d.averageRoll = d.rolls.Add(roundDegrees(roll))
	d.orientation = nextOrientation(d.orientation, d.averagePitch, d.averageRoll)

	var kind EventKind
	switch d.orientation {
	case OrientationLandscape:
		kind = EventRightSideUp
	case OrientationLandscapeReverse:
		kind = EventLeftSideUp
	case OrientationPortrait:
		kind = EventTopSideUp
	case OrientationPortraitReverse:
		kind = EventBottomSideUp
	}
	return newEvent(kind, s.Timestamp), true
}

func (d *OrientationDetector) Orientation() Orientation {
	return d.orientation
}

// Angles returns the smoothed pitch and roll in degrees.
func (d *OrientationDetector) Angles() (pitch, roll float64) {
	return d.averagePitch, d.averageRoll
}

// nextOrientation keeps the device in the portrait family while the roll stays
// inside the band, which stops the reported side from flickering near 30°.
func nextOrientation(current Orientation, pitch, roll float64) Orientation {
	portrait := current == OrientationPortrait || current == OrientationPortraitReverse
	if portrait && roll > -orientationBandDegrees && roll < orientationBandDegrees {
		if pitch > 0 {
			return OrientationPortraitReverse
		}
		return OrientationPortrait
	}

	if math.Abs(pitch) >= orientationBandDegrees {
		if pitch > 0 {
			return OrientationPortraitReverse
		}
		return OrientationPortrait
	}
	if roll > 0 {
		return OrientationLandscapeReverse
	}
	return OrientationLandscape
}

func roundDegrees(rad float64) float64 {
	return math.Floor(rad*180/math.Pi + 0.5)
}

// rotationMatrix builds the row-major 3x3 matrix that maps device coordinates
// to world coordinates (east, north, up). It fails when the device is in free
// fall or close to the magnetic pole, where the basis is degenerate.
func rotationMatrix(gravity, geomagnetic [3]float64) ([9]float64, bool) {
	var r [9]float64

	ax, ay, az := gravity[0], gravity[1], gravity[2]
	normsqA := ax*ax + ay*ay + az*az
	const freeFallGravitySquared = 0.01 * GravityEarth * GravityEarth
	if normsqA < freeFallGravitySquared {
		return r, false
	}

	ex, ey, ez := geomagnetic[0], geomagnetic[1], geomagnetic[2]
	hx := ey*az - ez*ay
	hy := ez*ax - ex*az
	hz := ex*ay - ey*ax
	normH := math.Sqrt(hx*hx + hy*hy + hz*hz)
	if normH < 0.1 {
		return r, false
	}

	invH := 1.0 / normH
	hx *= invH
	hy *= invH
	hz *= invH

	invA := 1.0 / math.Sqrt(normsqA)
	ax *= invA
	ay *= invA
	az *= invA

	mx := ay*hz - az*hy
	my := az*hx - ax*hz
	mz := ax*hy - ay*hx

	r = [9]float64{
		hx, hy, hz,
		mx, my, mz,
		ax, ay, az,
	}
	return r, true
}

// pitchRoll extracts the pitch (rotation about x) and roll (rotation about y)
// from a rotation matrix, in radians.
func pitchRoll(r [9]float64) (pitch, roll float64) {
	pitch = math.Asin(-r[7])
	roll = math.Atan2(-r[6], r[8])
	return
}
