package libgesturego

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/touch"
	"testing"
)

func TestMobileTouchTranslator(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	tr := NewMobileTouchTranslator()

	ev, ok := tr.Translate(touch.Event{X: 10, Y: 20, Sequence: 7, Type: touch.TypeBegin}, 1)
	require.True(ok)
	assert.Equal(ACTION_DOWN, ev.Action)
	assert.Equal([]Pointer{{Id: 7, X: 10, Y: 20}}, ev.Pointers)
	assert.Equal(int64(1), ev.Timestamp)

	ev, ok = tr.Translate(touch.Event{X: 100, Y: 20, Sequence: 9, Type: touch.TypeBegin}, 2)
	require.True(ok)
	assert.Equal(ACTION_POINTER_DOWN, ev.MaskedAction())
	assert.Equal(1, ev.ActionIndex())
	assert.Equal(2, ev.PointerCount())

	ev, ok = tr.Translate(touch.Event{X: 12, Y: 22, Sequence: 7, Type: touch.TypeMove}, 3)
	require.True(ok)
	assert.Equal(ACTION_MOVE, ev.Action)
	assert.Equal([]Pointer{{Id: 7, X: 12, Y: 22}, {Id: 9, X: 100, Y: 20}}, ev.Pointers)

	// The first finger lifts; it is still part of the event.
	ev, ok = tr.Translate(touch.Event{X: 12, Y: 22, Sequence: 7, Type: touch.TypeEnd}, 4)
	require.True(ok)
	assert.Equal(ACTION_POINTER_UP, ev.MaskedAction())
	assert.Equal(0, ev.ActionIndex())
	assert.Equal(2, ev.PointerCount())

	ev, ok = tr.Translate(touch.Event{X: 101, Y: 21, Sequence: 9, Type: touch.TypeEnd}, 5)
	require.True(ok)
	assert.Equal(ACTION_UP, ev.Action)
	assert.Equal([]Pointer{{Id: 9, X: 101, Y: 21}}, ev.Pointers)

	// Nothing is down any more.
	_, ok = tr.Translate(touch.Event{Sequence: 9, Type: touch.TypeMove}, 6)
	assert.False(ok)
	_, ok = tr.Translate(touch.Event{Sequence: 9, Type: touch.TypeEnd}, 6)
	assert.False(ok)
}

func TestMobileTouchTranslatorEventsAreCopies(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	tr := NewMobileTouchTranslator()
	down, _ := tr.Translate(touch.Event{X: 1, Y: 1, Sequence: 1, Type: touch.TypeBegin}, 0)
	tr.Translate(touch.Event{X: 50, Y: 50, Sequence: 1, Type: touch.TypeMove}, 1)

	assert.Equal(1.0, down.Pointers[0].X)
}

func TestMobileTouchTranslatorFeedsClassifier(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	tr := NewMobileTouchTranslator()
	c := NewTouchGestureClassifier(nil)

	var events []GestureEvent
	feed := func(e touch.Event, ts int64) {
		if ev, ok := tr.Translate(e, ts); ok {
			events = append(events, c.OnTouchEvent(ev)...)
		}
	}

	t0 := int64(5 * nsPerSec)
	feed(touch.Event{X: 100, Y: 100, Sequence: 1, Type: touch.TypeBegin}, t0)
	feed(touch.Event{X: 300, Y: 100, Sequence: 2, Type: touch.TypeBegin}, t0+10*nsPerMs)
	feed(touch.Event{X: 300, Y: 100, Sequence: 2, Type: touch.TypeEnd}, t0+50*nsPerMs)
	feed(touch.Event{X: 100, Y: 100, Sequence: 1, Type: touch.TypeEnd}, t0+60*nsPerMs)
	events = append(events, c.Advance(t0+nsPerSec)...)

	assert.Equal([]EventKind{EventTwoFingerTap}, kindsOf(events))

	tr.Reset()
	_, ok := tr.Translate(touch.Event{Sequence: 1, Type: touch.TypeMove}, t0)
	assert.False(ok)
}
