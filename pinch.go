package libgesturego

import "math"

// PinchParams are the span thresholds, in pixels, used by PinchScaleTracker.
type PinchParams struct {
	SpanSlop float64 `json:"span_slop" yaml:"span_slop" toml:"span_slop" env:"SPAN_SLOP"`
	MinSpan  float64 `json:"min_span" yaml:"min_span" toml:"min_span" env:"MIN_SPAN"`
}

func DefaultPinchParams() *PinchParams {
	return &PinchParams{
		SpanSlop: 2 * TouchSlopScaled,
		MinSpan:  100,
	}
}

// PinchScaleTracker follows the distance between two or more pointers and
// reports scale begin, scale updates and scale end.
type PinchScaleTracker struct {
	Params *PinchParams

	inProgress  bool
	initialSpan float64
	prevSpan    float64
	currSpan    float64
}

func NewPinchScaleTracker(params *PinchParams) *PinchScaleTracker {
	if params == nil {
		params = DefaultPinchParams()
	}
	return &PinchScaleTracker{Params: params}
}

func (p *PinchScaleTracker) InProgress() bool {
	return p.inProgress
}

// ScaleFactor is the ratio of the current span to the previous one.
func (p *PinchScaleTracker) ScaleFactor() float64 {
	if p.prevSpan > 0 {
		return p.currSpan / p.prevSpan
	}
	return 1.0
}

func (p *PinchScaleTracker) OnTouchEvent(event TouchEvent) []GestureEvent {
	var out []GestureEvent
	action := event.MaskedAction()

	streamComplete := action == ACTION_UP || action == ACTION_CANCEL
	if action == ACTION_DOWN || streamComplete {
		// Any previous gesture is over; a new stream is starting or this
		// one just ended.
		if p.inProgress {
			out = append(out, newEvent(EventScaleEnd, event.Timestamp))
			p.inProgress = false
			p.initialSpan = 0
		}
		if streamComplete {
			return out
		}
	}

	configChanged := action == ACTION_DOWN || action == ACTION_POINTER_UP || action == ACTION_POINTER_DOWN
	span := pointerSpan(&event)

	wasInProgress := p.inProgress
	if p.inProgress && (span < p.Params.MinSpan || configChanged) {
		out = append(out, newEvent(EventScaleEnd, event.Timestamp))
		p.inProgress = false
		p.initialSpan = span
	}
	if configChanged {
		p.initialSpan = span
		p.prevSpan = span
		p.currSpan = span
	}

	if !p.inProgress && span >= p.Params.MinSpan &&
		(wasInProgress || math.Abs(span-p.initialSpan) > p.Params.SpanSlop) {
		p.prevSpan = span
		p.currSpan = span
		p.inProgress = true
		out = append(out, newEvent(EventScaleStart, event.Timestamp))
	}

	if action == ACTION_MOVE {
		p.currSpan = span
		if p.inProgress {
			factor := p.ScaleFactor()
			ev := newEvent(EventScale, event.Timestamp)
			ev.ScaleFactor = factor
			ev.Outward = factor > 1.0
			out = append(out, ev)
		}
		p.prevSpan = p.currSpan
	}

	return out
}

// Cancel drops the current gesture without reporting its end.
func (p *PinchScaleTracker) Cancel() {
	p.inProgress = false
	p.initialSpan = 0
	p.prevSpan = 0
	p.currSpan = 0
}

// pointerSpan is the diagonal of twice the average distance of the pointers
// from their focus point, leaving out a pointer that is going up.
func pointerSpan(event *TouchEvent) float64 {
	skip := event.skipIndex()
	focusX, focusY := event.Focus(skip)

	var devX, devY float64
	count := 0
	for i, ptr := range event.Pointers {
		if i == skip {
			continue
		}
		devX += math.Abs(ptr.X - focusX)
		devY += math.Abs(ptr.Y - focusY)
		count++
	}
	if count == 0 {
		return 0
	}

	spanX := devX / float64(count) * 2
	spanY := devY / float64(count) * 2
	return math.Hypot(spanX, spanY)
}
