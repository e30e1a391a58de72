package libgesturego

// The following constants are taken directly from the Android java code in
// frameworks/base/core/java/android/view/MotionEvent.java.

const ACTION_MASK = 0xff

const (
	ACTION_DOWN                = 0
	ACTION_UP                  = 1
	ACTION_MOVE                = 2
	ACTION_CANCEL              = 3
	ACTION_OUTSIDE             = 4
	ACTION_POINTER_DOWN        = 5
	ACTION_POINTER_UP          = 6
	ACTION_POINTER_INDEX_MASK  = 0xff00
	ACTION_POINTER_INDEX_SHIFT = 8
)

// Pointer is the position of one finger at the time of a TouchEvent.
type Pointer struct {
	Id int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// TouchEvent is a raw pointer event as delivered by the touch source. Like an
// Android MotionEvent, Pointers holds every finger currently down, including
// the one going up on an ACTION_POINTER_UP/ACTION_UP.
type TouchEvent struct {
	Action    int       `json:"action"`
	Pointers  []Pointer `json:"pointers"`
	Timestamp int64     `json:"ts"` // ns
}

func (event *TouchEvent) MaskedAction() int {
	return event.Action & ACTION_MASK
}

func (event *TouchEvent) ActionIndex() int {
	return (event.Action & ACTION_POINTER_INDEX_MASK) >> ACTION_POINTER_INDEX_SHIFT
}

func (event *TouchEvent) PointerCount() int {
	return len(event.Pointers)
}

// X and Y of the primary pointer, or 0 if there are no pointers.
func (event *TouchEvent) X() float64 {
	if len(event.Pointers) == 0 {
		return 0
	}
	return event.Pointers[0].X
}

func (event *TouchEvent) Y() float64 {
	if len(event.Pointers) == 0 {
		return 0
	}
	return event.Pointers[0].Y
}

// Get the focus point of all the pointers that are down, ignoring the pointer
// at index skip (pass -1 to include all of them). If no pointers are counted,
// this returns (-1, -1).
func (event *TouchEvent) Focus(skip int) (focusX, focusY float64) {
	count := 0
	for i, ptr := range event.Pointers {
		if i == skip {
			continue
		}
		focusX += ptr.X
		focusY += ptr.Y
		count++
	}

	if count == 0 {
		return -1.0, -1.0
	}

	focusX /= float64(count)
	focusY /= float64(count)
	return
}

// skipIndex is the index of the pointer going up, which must be left out of
// focus and span calculations, or -1.
func (event *TouchEvent) skipIndex() int {
	if event.MaskedAction() == ACTION_POINTER_UP {
		return event.ActionIndex()
	}
	return -1
}
