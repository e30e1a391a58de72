package libgesturego

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"reflect"
	"testing"
)

func TestParseIFMotionEvent(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	payload := `{"msg":"dispatch","ts":64159277303000,"dev":5,"src":4098,"pflags":1644167168,"action":0,"a_btn":0,"flags":0,"meta":0,"btn_state":0,"eflags":0,"x_p":1.000000,"y_p":1.000000,"dtime":64159277303000,"ptrs":[{"id":0,"tool":1,"x":836.000000,"y":2279.000000,"pr":0.337500,"sz":0.003922,"tch_mj":41.476997,"tch_mn":41.476997,"tl_mj":41.476997,"tl_mn":41.476997,"orient":0.000000}]}`

	parser := NewIFMotionEventParser()
	require.NotNil(parser)

	log, err := parser.Parse(payload)
	assert.Nil(err)
	assert.NotNil(log)
	typedLog, ok := log.(*IFMotionEventLog)
	require.True(ok)

	expected := &IFMotionEventLog{
		Msg:          "dispatch",
		Timestamp:    64159277303000,
		DeviceId:     5,
		Source:       4098,
		PolicyFlags:  1644167168,
		Action:       0,
		ActionButton: 0,
		Flags:        0,
		MetaState:    0,
		ButtonState:  0,
		EdgeFlags:    0,
		XPrecision:   1.0,
		YPrecision:   1.0,
		Downtime:     64159277303000,
		PointerData: []*IFPointerData{
			&IFPointerData{
				Id:          0,
				ToolType:    1,
				XPos:        836.0,
				YPos:        2279.0,
				Pressure:    0.337500,
				Size:        0.003922,
				TouchMajor:  41.476997,
				TouchMinor:  41.476997,
				ToolMajor:   41.476997,
				ToolMinor:   41.476997,
				Orientation: 0.0,
			},
		},
	}

	require.True(reflect.DeepEqual(expected, typedLog))

	event := typedLog.TouchEvent()
	assert.Equal(ACTION_DOWN, event.MaskedAction())
	assert.Equal(int64(64159277303000), event.Timestamp)
	assert.Equal([]Pointer{{Id: 0, X: 836.0, Y: 2279.0}}, event.Pointers)
}

func TestMotionEventToTouchEventTwoPointers(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	log := &IFMotionEventLog{
		Action:    ACTION_POINTER_UP | 1<<ACTION_POINTER_INDEX_SHIFT,
		Timestamp: 1000,
		PointerData: []*IFPointerData{
			&IFPointerData{Id: 0, XPos: 10, YPos: 20},
			nil,
			&IFPointerData{Id: 3, XPos: 30, YPos: 40},
		},
	}

	event := log.TouchEvent()
	assert.Equal(ACTION_POINTER_UP, event.MaskedAction())
	assert.Equal(1, event.ActionIndex())
	assert.Equal(2, event.PointerCount())
	assert.Equal(3, event.Pointers[1].Id)
}

func TestActionMasked(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	tests := []struct {
		action   int
		expected int
	}{
		{ACTION_DOWN, ACTION_DOWN},
		{ACTION_UP, ACTION_UP},
		{ACTION_MOVE, ACTION_MOVE},
		{ACTION_CANCEL, ACTION_CANCEL},
		{ACTION_POINTER_UP, ACTION_POINTER_UP},
		{ACTION_POINTER_UP | 0x0100, ACTION_POINTER_UP},
		{ACTION_POINTER_UP | 0x0200, ACTION_POINTER_UP},
		{ACTION_POINTER_DOWN, ACTION_POINTER_DOWN},
		{ACTION_POINTER_DOWN | 0x0100, ACTION_POINTER_DOWN},
		{ACTION_POINTER_DOWN | 0x0200, ACTION_POINTER_DOWN},
	}

	for _, test := range tests {
		event := &TouchEvent{
			Action: test.action,
		}
		res := event.MaskedAction()
		assert.Equal(test.expected, res)
	}
}

func TestActionPointerIndex(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	tests := []struct {
		action   int
		expected int
	}{
		{ACTION_POINTER_DOWN, 0},
		{ACTION_POINTER_UP, 0},
		{ACTION_UP, 0},
		{ACTION_MOVE, 0},
		{ACTION_CANCEL, 0},
		{ACTION_POINTER_UP | 0x0100, 1},
		{ACTION_POINTER_UP | 0x0200, 2},
		{ACTION_POINTER_DOWN | 0x0100, 1},
		{ACTION_POINTER_DOWN | 0x0200, 2},
	}

	for _, test := range tests {
		event := &TouchEvent{
			Action: test.action,
		}
		res := event.ActionIndex()
		assert.Equal(test.expected, res)
	}
}

func TestTouchEventFocus(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	event := &TouchEvent{
		Action: ACTION_POINTER_UP | 0x0200,
		Pointers: []Pointer{
			{Id: 0, X: 0, Y: 0},
			{Id: 1, X: 100, Y: 50},
			{Id: 2, X: 900, Y: 900},
		},
	}

	x, y := event.Focus(event.skipIndex())
	assert.Equal(50.0, x)
	assert.Equal(25.0, y)

	x, y = (&TouchEvent{}).Focus(-1)
	assert.Equal(-1.0, x)
	assert.Equal(-1.0, y)
}
