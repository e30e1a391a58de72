package libgesturego

import (
	"golang.org/x/mobile/event/touch"
)

// MobileTouchTranslator turns gomobile touch events, which carry a single
// finger each, into TouchEvents that describe every finger that is down.
// Pointers keep the order in which they touched down.
type MobileTouchTranslator struct {
	pointers []Pointer
}

func NewMobileTouchTranslator() *MobileTouchTranslator {
	return &MobileTouchTranslator{
		pointers: make([]Pointer, 0, 4),
	}
}

// Translate converts e, observed at ts (ns). It returns false for moves and
// ends of a sequence that never began.
func (t *MobileTouchTranslator) Translate(e touch.Event, ts int64) (TouchEvent, bool) {
	id := int(e.Sequence)
	x, y := float64(e.X), float64(e.Y)
	index := t.indexOf(id)

	switch e.Type {
	case touch.TypeBegin:
		if index >= 0 {
			// Repeated begin; treat it as a move.
			t.pointers[index].X, t.pointers[index].Y = x, y
			return t.event(ACTION_MOVE, ts), true
		}
		t.pointers = append(t.pointers, Pointer{Id: id, X: x, Y: y})
		if len(t.pointers) == 1 {
			return t.event(ACTION_DOWN, ts), true
		}
		return t.event(ACTION_POINTER_DOWN|(len(t.pointers)-1)<<ACTION_POINTER_INDEX_SHIFT, ts), true

	case touch.TypeMove:
		if index < 0 {
			return TouchEvent{}, false
		}
		t.pointers[index].X, t.pointers[index].Y = x, y
		return t.event(ACTION_MOVE, ts), true

	case touch.TypeEnd:
		if index < 0 {
			return TouchEvent{}, false
		}
		t.pointers[index].X, t.pointers[index].Y = x, y
		action := ACTION_UP
		if len(t.pointers) > 1 {
			action = ACTION_POINTER_UP | index<<ACTION_POINTER_INDEX_SHIFT
		}
		event := t.event(action, ts)
		t.pointers = append(t.pointers[:index], t.pointers[index+1:]...)
		return event, true
	}

	return TouchEvent{}, false
}

// Reset forgets every finger, e.g. after the host lost focus.
func (t *MobileTouchTranslator) Reset() {
	t.pointers = t.pointers[:0]
}

func (t *MobileTouchTranslator) indexOf(id int) int {
	for i, ptr := range t.pointers {
		if ptr.Id == id {
			return i
		}
	}
	return -1
}

func (t *MobileTouchTranslator) event(action int, ts int64) TouchEvent {
	pointers := make([]Pointer, len(t.pointers))
	copy(pointers, t.pointers)
	return TouchEvent{
		Action:    action,
		Pointers:  pointers,
		Timestamp: ts,
	}
}
