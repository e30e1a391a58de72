package libgesturego

import (
	phonelab "github.com/shaseley/phonelab-go"
)

const IFMotionEventTag = "InputDispatcher-MotionEvent"

type IFPointerData struct {
	Id          int     `json:"id"`
	ToolType    int     `json:"tool"`
	XPos        float64 `json:"x"`
	YPos        float64 `json:"y"`
	Pressure    float64 `json:"pr"`
	Size        float64 `json:"sz"`
	TouchMajor  float64 `json:"tch_mj"`
	TouchMinor  float64 `json:"tch_mn"`
	ToolMajor   float64 `json:"tl_mj"`
	ToolMinor   float64 `json:"tl_mn"`
	Orientation float64 `json:"orient"`
}

// A MotionEvent as logged by the InputDispatcher. Timestamp and Downtime are
// in ns of uptime.
type IFMotionEventLog struct {
	Seq          int64            `json:"seq"`
	Msg          string           `json:"msg"`
	Timestamp    int64            `json:"ts"`
	DeviceId     int              `json:"dev"`
	Source       int              `json:"src"`
	PolicyFlags  int              `json:"pflags"`
	Action       int              `json:"action"`
	ActionButton int              `json:"a_btn"`
	Flags        int              `json:"flags"`
	MetaState    int              `json:"meta"`
	ButtonState  int              `json:"btn_state"`
	EdgeFlags    int              `json:"eflags"`
	XPrecision   float64          `json:"x_p"`
	YPrecision   float64          `json:"y_p"`
	Downtime     int64            `json:"dtime"`
	PointerData  []*IFPointerData `json:"ptrs"`
}

// TouchEvent strips the log down to what the touch classifier and pinch
// tracker need. Nil pointer entries are skipped.
func (event *IFMotionEventLog) TouchEvent() TouchEvent {
	pointers := make([]Pointer, 0, len(event.PointerData))
	for _, ptr := range event.PointerData {
		if ptr == nil {
			continue
		}
		pointers = append(pointers, Pointer{
			Id: ptr.Id,
			X:  ptr.XPos,
			Y:  ptr.YPos,
		})
	}
	return TouchEvent{
		Action:    event.Action,
		Pointers:  pointers,
		Timestamp: event.Timestamp,
	}
}

type IFMotionEventParserProps struct{}

func (p *IFMotionEventParserProps) New() interface{} {
	return &IFMotionEventLog{}
}

func NewIFMotionEventParser() phonelab.Parser {
	return phonelab.NewJSONParser(&IFMotionEventParserProps{})
}
