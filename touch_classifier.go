package libgesturego

import "math"

const (
	// This gets set in frameworks/base/core/java/android/view/ViewConfiguration.java
	// based on device config. For the Nexus 6, this works out to 28 pixels. This is
	// esentially the wiggle room we have in any direction for a click.
	TouchSlopScaled = 28

	// Maximum distance between the first and second down of a double tap,
	// 100dp scaled for the Nexus 6.
	DoubleTapSlopScaled = 350

	SwipeMinDistance       = 120
	SwipeThresholdVelocity = 200
)

// TouchParams controls the timing windows and distances used by the
// TouchGestureClassifier. Distances are in pixels, velocities in px/s.
type TouchParams struct {
	TouchSlop              int     `json:"touch_slop" yaml:"touch_slop" toml:"touch_slop" env:"SLOP"`
	DoubleTapSlop          int     `json:"double_tap_slop" yaml:"double_tap_slop" toml:"double_tap_slop" env:"DOUBLE_TAP_SLOP"`
	TapTimeoutMs           int64   `json:"tap_timeout_ms" yaml:"tap_timeout_ms" toml:"tap_timeout_ms" env:"TAP_TIMEOUT_MS"`
	LongPressTimeoutMs     int64   `json:"long_press_timeout_ms" yaml:"long_press_timeout_ms" toml:"long_press_timeout_ms" env:"LONG_PRESS_TIMEOUT_MS"`
	DoubleTapTimeoutMs     int64   `json:"double_tap_timeout_ms" yaml:"double_tap_timeout_ms" toml:"double_tap_timeout_ms" env:"DOUBLE_TAP_TIMEOUT_MS"`
	DoubleTapMinTimeMs     int64   `json:"double_tap_min_time_ms" yaml:"double_tap_min_time_ms" toml:"double_tap_min_time_ms" env:"DOUBLE_TAP_MIN_TIME_MS"`
	SwipeMinDistance       float64 `json:"swipe_min_distance" yaml:"swipe_min_distance" toml:"swipe_min_distance" env:"SWIPE_MIN_DISTANCE"`
	SwipeThresholdVelocity float64 `json:"swipe_threshold_velocity" yaml:"swipe_threshold_velocity" toml:"swipe_threshold_velocity" env:"SWIPE_THRESHOLD_VELOCITY"`
	MinFlingVelocity       float64 `json:"min_fling_velocity" yaml:"min_fling_velocity" toml:"min_fling_velocity" env:"MIN_FLING_VELOCITY"`
	VelocityHorizonMs      int64   `json:"velocity_horizon_ms" yaml:"velocity_horizon_ms" toml:"velocity_horizon_ms" env:"VELOCITY_HORIZON_MS"`
}

// Create a new TouchParams with the Android defaults.
func DefaultTouchParams() *TouchParams {
	return &TouchParams{
		TouchSlop:              TouchSlopScaled,
		DoubleTapSlop:          DoubleTapSlopScaled,
		TapTimeoutMs:           100,
		LongPressTimeoutMs:     500,
		DoubleTapTimeoutMs:     300,
		DoubleTapMinTimeMs:     40,
		SwipeMinDistance:       SwipeMinDistance,
		SwipeThresholdVelocity: SwipeThresholdVelocity,
		MinFlingVelocity:       50,
		VelocityHorizonMs:      100,
	}
}

// Coarse classifier state, mostly useful for tests and debugging.
const (
	GestureStateNone = iota
	GestureStateTapping
	GestureStateScrolling
	GestureStateLongPress
	GestureStateDoubleTapping
)

type touchPoint struct {
	x, y float64
	ts   int64
}

// TouchGestureClassifier turns raw touch events into taps, double taps, long
// presses, multi-finger taps, scrolls and swipes. It follows the Android
// GestureDetector state machine, except that the single tap confirmation and
// long press timers are deadlines checked against event timestamps instead of
// scheduled callbacks. Call Advance to flush them when no events arrive.
type TouchGestureClassifier struct {
	Params *TouchParams

	// internal state
	touchSlopSquare     float64
	doubleTapSlopSquare float64

	stillDown               bool
	inLongPress             bool
	isDoubleTapping         bool
	deferConfirmSingleTap   bool
	alwaysInTapRegion       bool
	alwaysInBiggerTapRegion bool

	tapPending        bool
	tapDeadline       int64
	longPressPending  bool
	longPressDeadline int64

	hasCurrentDown bool
	currentDown    touchPoint
	hasPreviousUp  bool
	previousUp     touchPoint

	downFocusX float64
	downFocusY float64
	lastFocusX float64
	lastFocusY float64

	velocity velocityTracker
}

func NewTouchGestureClassifier(params *TouchParams) *TouchGestureClassifier {
	if params == nil {
		params = DefaultTouchParams()
	}
	slop := float64(params.TouchSlop)
	doubleTapSlop := float64(params.DoubleTapSlop)
	return &TouchGestureClassifier{
		Params:              params,
		touchSlopSquare:     slop * slop,
		doubleTapSlopSquare: doubleTapSlop * doubleTapSlop,
		velocity:            velocityTracker{horizonMs: params.VelocityHorizonMs},
	}
}

// Advance fires any single tap confirmation or long press whose deadline is
// at or before now.
func (c *TouchGestureClassifier) Advance(now int64) []GestureEvent {
	return c.fireTimers(now, nil)
}

func (c *TouchGestureClassifier) OnTouchEvent(event TouchEvent) []GestureEvent {
	out := c.fireTimers(event.Timestamp, nil)

	action := event.MaskedAction()

	// Multi-finger taps are decided the moment the extra finger lands,
	// independently of the single pointer state machine.
	if action == ACTION_POINTER_DOWN {
		switch event.PointerCount() {
		case 3:
			out = append(out, newEvent(EventThreeFingerTap, event.Timestamp))
		case 2:
			out = append(out, newEvent(EventTwoFingerTap, event.Timestamp))
		}
	}

	if action == ACTION_DOWN {
		c.velocity.clear()
	}
	c.velocity.addEvent(&event)

	focusX, focusY := event.Focus(event.skipIndex())

	switch action {
	case ACTION_POINTER_DOWN:
		c.setFocus(focusX, focusY)
		c.cancelTaps()

	case ACTION_POINTER_UP:
		c.setFocus(focusX, focusY)
		if idx := event.ActionIndex(); idx < len(event.Pointers) {
			c.velocity.remove(event.Pointers[idx].Id)
		}

	case ACTION_DOWN:
		hadTapPending := c.tapPending
		c.tapPending = false
		if hadTapPending && c.hasCurrentDown && c.hasPreviousUp && c.isConsideredDoubleTap(event) {
			c.isDoubleTapping = true
			out = append(out, newEvent(EventDoubleTap, event.Timestamp))
		} else {
			c.tapPending = true
			c.tapDeadline = event.Timestamp + c.Params.DoubleTapTimeoutMs*nsPerMs
		}

		c.setFocus(focusX, focusY)
		c.currentDown = touchPoint{x: event.X(), y: event.Y(), ts: event.Timestamp}
		c.hasCurrentDown = true
		c.alwaysInTapRegion = true
		c.alwaysInBiggerTapRegion = true
		c.stillDown = true
		c.inLongPress = false
		c.deferConfirmSingleTap = false

		c.longPressPending = true
		c.longPressDeadline = event.Timestamp + (c.Params.TapTimeoutMs+c.Params.LongPressTimeoutMs)*nsPerMs

	case ACTION_MOVE:
		if !c.stillDown || c.inLongPress || c.isDoubleTapping {
			break
		}

		scrollX := c.lastFocusX - focusX
		scrollY := c.lastFocusY - focusY

		if c.alwaysInTapRegion {
			deltaX := focusX - c.downFocusX
			deltaY := focusY - c.downFocusY
			distance := (deltaX * deltaX) + (deltaY * deltaY)
			if distance > c.touchSlopSquare {
				out = c.onScroll(event, out)
				c.lastFocusX = focusX
				c.lastFocusY = focusY
				c.alwaysInTapRegion = false
				c.alwaysInBiggerTapRegion = false
				c.tapPending = false
				c.longPressPending = false
			}
		} else if math.Abs(scrollX) >= 1.0 || math.Abs(scrollY) >= 1.0 {
			out = c.onScroll(event, out)
			c.lastFocusX = focusX
			c.lastFocusY = focusY
		}

	case ACTION_UP:
		if !c.stillDown {
			break
		}
		c.stillDown = false

		switch {
		case c.isDoubleTapping:
			// The double tap was reported on the second down.
		case c.inLongPress:
			c.tapPending = false
			c.inLongPress = false
		case c.alwaysInTapRegion:
			if c.deferConfirmSingleTap {
				out = append(out, newEvent(EventSingleTap, event.Timestamp))
			}
		default:
			// Only the finger that is still down can fling.
			var vx, vy float64
			if len(event.Pointers) > 0 {
				vx, vy = c.velocity.velocity(event.Pointers[0].Id)
			}
			if math.Abs(vx) > c.Params.MinFlingVelocity || math.Abs(vy) > c.Params.MinFlingVelocity {
				out = c.onFling(event, vx, vy, out)
			}
		}

		c.previousUp = touchPoint{x: event.X(), y: event.Y(), ts: event.Timestamp}
		c.hasPreviousUp = true
		c.isDoubleTapping = false
		c.deferConfirmSingleTap = false
		c.longPressPending = false
		c.velocity.clear()

	case ACTION_CANCEL:
		c.Cancel()
	}

	return out
}

func (c *TouchGestureClassifier) State() int {
	switch {
	case !c.stillDown:
		return GestureStateNone
	case c.inLongPress:
		return GestureStateLongPress
	case c.isDoubleTapping:
		return GestureStateDoubleTapping
	case c.alwaysInTapRegion:
		return GestureStateTapping
	}
	return GestureStateScrolling
}

// Cancel drops the current gesture along with any pending timers.
func (c *TouchGestureClassifier) Cancel() {
	c.tapPending = false
	c.longPressPending = false
	c.velocity.clear()
	c.isDoubleTapping = false
	c.stillDown = false
	c.alwaysInTapRegion = false
	c.alwaysInBiggerTapRegion = false
	c.deferConfirmSingleTap = false
	c.inLongPress = false
}

func (c *TouchGestureClassifier) cancelTaps() {
	c.tapPending = false
	c.longPressPending = false
	c.isDoubleTapping = false
	c.alwaysInTapRegion = false
	c.alwaysInBiggerTapRegion = false
	c.deferConfirmSingleTap = false
	c.inLongPress = false
}

func (c *TouchGestureClassifier) setFocus(x, y float64) {
	c.downFocusX = x
	c.lastFocusX = x
	c.downFocusY = y
	c.lastFocusY = y
}

// fireTimers runs due timers in deadline order.
func (c *TouchGestureClassifier) fireTimers(now int64, out []GestureEvent) []GestureEvent {
	for {
		tapDue := c.tapPending && c.tapDeadline <= now
		longPressDue := c.longPressPending && c.longPressDeadline <= now

		switch {
		case tapDue && (!longPressDue || c.tapDeadline <= c.longPressDeadline):
			c.tapPending = false
			if c.stillDown {
				c.deferConfirmSingleTap = true
			} else {
				out = append(out, newEvent(EventSingleTap, c.tapDeadline))
			}
		case longPressDue:
			c.longPressPending = false
			c.tapPending = false
			c.deferConfirmSingleTap = false
			c.inLongPress = true
			out = append(out, newEvent(EventLongPress, c.longPressDeadline))
		default:
			return out
		}
	}
}

func (c *TouchGestureClassifier) isConsideredDoubleTap(secondDown TouchEvent) bool {
	if !c.alwaysInBiggerTapRegion {
		return false
	}

	deltaMs := (secondDown.Timestamp - c.previousUp.ts) / nsPerMs
	if deltaMs > c.Params.DoubleTapTimeoutMs || deltaMs < c.Params.DoubleTapMinTimeMs {
		return false
	}

	deltaX := c.currentDown.x - secondDown.X()
	deltaY := c.currentDown.y - secondDown.Y()
	return (deltaX*deltaX)+(deltaY*deltaY) < c.doubleTapSlopSquare
}

func (c *TouchGestureClassifier) onScroll(event TouchEvent, out []GestureEvent) []GestureEvent {
	deltaX := event.X() - c.currentDown.x
	deltaY := event.Y() - c.currentDown.y

	if dir, ok := dominantDirection(deltaX, deltaY, c.Params.SwipeMinDistance); ok {
		ev := newEvent(EventScroll, event.Timestamp)
		ev.Direction = dir
		out = append(out, ev)
	}
	return out
}

func (c *TouchGestureClassifier) onFling(event TouchEvent, velocityX, velocityY float64, out []GestureEvent) []GestureEvent {
	deltaX := event.X() - c.currentDown.x
	deltaY := event.Y() - c.currentDown.y

	dir, ok := dominantDirection(deltaX, deltaY, c.Params.SwipeMinDistance)
	if !ok {
		return out
	}

	velocity := velocityY
	if dir == DirectionLeft || dir == DirectionRight {
		velocity = velocityX
	}
	if math.Abs(velocity) <= c.Params.SwipeThresholdVelocity {
		return out
	}

	ev := newEvent(EventSwipe, event.Timestamp)
	ev.Direction = dir
	return append(out, ev)
}

// dominantDirection picks the horizontal axis when |dx| > |dy| and the
// vertical axis otherwise, ties included. It fails if the displacement along
// the chosen axis does not exceed minDistance.
func dominantDirection(deltaX, deltaY, minDistance float64) (Direction, bool) {
	if math.Abs(deltaX) > math.Abs(deltaY) {
		if math.Abs(deltaX) <= minDistance {
			return DirectionNone, false
		}
		if deltaX > 0 {
			return DirectionRight, true
		}
		return DirectionLeft, true
	}

	if math.Abs(deltaY) <= minDistance {
		return DirectionNone, false
	}
	if deltaY > 0 {
		return DirectionDown, true
	}
	return DirectionUp, true
}
