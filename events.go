package libgesturego

import "fmt"

// EventKind is the semantic event a detector, classifier or tracker emits.
type EventKind int

const (
	EventNone EventKind = iota

	// Touch
	EventSingleTap
	EventDoubleTap
	EventLongPress
	EventTwoFingerTap
	EventThreeFingerTap
	EventScroll
	EventSwipe

	// Pinch
	EventScaleStart
	EventScale
	EventScaleEnd

	// Sensors
	EventShake
	EventWave
	EventFaceUp
	EventFaceDown
	EventNear
	EventFar
	EventDark
	EventLight
	EventTopSideUp
	EventBottomSideUp
	EventRightSideUp
	EventLeftSideUp
)

var eventNames = [...]string{
	EventNone:           "none",
	EventSingleTap:      "single_tap",
	EventDoubleTap:      "double_tap",
	EventLongPress:      "long_press",
	EventTwoFingerTap:   "two_finger_tap",
	EventThreeFingerTap: "three_finger_tap",
	EventScroll:         "scroll",
	EventSwipe:          "swipe",
	EventScaleStart:     "scale_start",
	EventScale:          "scale",
	EventScaleEnd:       "scale_end",
	EventShake:          "shake",
	EventWave:           "wave",
	EventFaceUp:         "face_up",
	EventFaceDown:       "face_down",
	EventNear:           "near",
	EventFar:            "far",
	EventDark:           "dark",
	EventLight:          "light",
	EventTopSideUp:      "top_side_up",
	EventBottomSideUp:   "bottom_side_up",
	EventRightSideUp:    "right_side_up",
	EventLeftSideUp:     "left_side_up",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Direction of a scroll or swipe. These values are part of the public
// contract and must not be renumbered:
//
//	DirectionUp    = 1
//	DirectionRight = 2
//	DirectionDown  = 3
//	DirectionLeft  = 4
//
// Scrolls and swipes share these codes. Code ported from listeners that
// number swipes separately as 5..8 must branch on GestureEvent.Kind instead of
// the direction value.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionRight
	DirectionDown
	DirectionLeft
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionRight:
		return "right"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	}
	return "none"
}

// GestureEvent is a single emitted event. Direction is only set for scrolls
// and swipes, Outward and ScaleFactor only for EventScale.
type GestureEvent struct {
	Kind        EventKind `json:"kind"`
	Direction   Direction `json:"direction,omitempty"`
	Outward     bool      `json:"outward,omitempty"`
	ScaleFactor float64   `json:"scale_factor,omitempty"`
	Timestamp   int64     `json:"ts"`
}

func (e GestureEvent) String() string {
	switch e.Kind {
	case EventScroll, EventSwipe:
		return fmt.Sprintf("%v(%v)@%d", e.Kind, e.Direction, e.Timestamp)
	case EventScale:
		return fmt.Sprintf("%v(outward=%v)@%d", e.Kind, e.Outward, e.Timestamp)
	}
	return fmt.Sprintf("%v@%d", e.Kind, e.Timestamp)
}

func newEvent(kind EventKind, ts int64) GestureEvent {
	return GestureEvent{Kind: kind, Timestamp: ts}
}
