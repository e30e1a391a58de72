package libgesturego

import (
	"fmt"
	"log/slog"

	phonelab "github.com/shaseley/phonelab-go"
)

// DetectedGesture is what the gesture processor emits. TraceTime is the trace
// time of the log line that triggered the event.
type DetectedGesture struct {
	GestureEvent
	Family    Family  `json:"family"`
	TraceTime float64 `json:"trace_time"`
}

// GestureProcessor replays InputDispatcher motion events and SensorService
// samples through a Registry and emits a *DetectedGesture for every listener
// callback. *TimeSyncMsg offsets from an upstream timesync processor are
// applied when GlobalConf.UseSysTime is set. Other log lines are dropped.
type GestureProcessor struct {
	Source   phonelab.Processor
	Families []Family
	Config   *Config
	Logger   *slog.Logger
}

func (p *GestureProcessor) Process() <-chan interface{} {
	outChan := make(chan interface{})
	inChan := p.Source.Process()

	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	conf := p.Config
	if conf == nil {
		conf = DefaultConfig()
	}

	go func() {
		hub := NewSensorHub(AllChannelKinds...)
		registry := NewRegistry(hub, WithConfig(conf), WithLogger(logger))
		emitter := &gestureEmitter{out: outChan}

		for _, family := range p.Families {
			if !emitter.start(registry, family) {
				logger.Warn("detection did not start", "family", family)
			}
		}

		var lastTs int64
		for raw := range inChan {
			if msg, ok := raw.(*TimeSyncMsg); ok && msg != nil {
				emitter.offsetNs = msg.OffsetNs
				continue
			}
			log, ok := raw.(*phonelab.Logline)
			if !ok || log == nil {
				continue
			}
			emitter.traceTime = log.TraceTime

			switch typed := log.Payload.(type) {
			case *IFMotionEventLog:
				event := typed.TouchEvent()
				emitter.ts, lastTs = event.Timestamp, event.Timestamp
				registry.DispatchTouch(event)

			case *SensorSampleLog:
				sample, err := typed.Sample()
				if err != nil {
					logger.Warn("skipping sensor sample", "trace_time", log.TraceTime, "error", err)
					continue
				}
				emitter.ts, lastTs = sample.Timestamp, sample.Timestamp
				// Sensors share the uptime clock with touch events, so they
				// also move the tap and long press deadlines along.
				registry.Tick(sample.Timestamp)
				hub.Publish(sample)
			}
		}

		// Confirm a trailing single tap.
		if lastTs > 0 {
			flushTs := lastTs + conf.Touch.DoubleTapTimeoutMs*nsPerMs
			emitter.ts = flushTs
			registry.Tick(flushTs)
		}
		registry.StopAll()
		close(outChan)
	}()

	return outChan
}

// gestureEmitter implements every listener interface and turns each callback
// into a DetectedGesture on out.
type gestureEmitter struct {
	out       chan interface{}
	traceTime float64
	ts        int64
	offsetNs  int64
}

func (e *gestureEmitter) start(r *Registry, family Family) bool {
	var ok bool
	switch family {
	case FamilyShake:
		_, ok = r.StartShakeDetection(e)
	case FamilyFlip:
		_, ok = r.StartFlipDetection(e)
	case FamilyLight:
		_, ok = r.StartLightDetection(e)
	case FamilyProximity:
		_, ok = r.StartProximityDetection(e)
	case FamilyWave:
		_, ok = r.StartWaveDetection(e)
	case FamilyOrientation:
		_, ok = r.StartOrientationDetection(e)
	case FamilyTouch:
		ok = r.StartTouchTypeDetection(e)
	case FamilyPinch:
		ok = r.StartPinchScaleDetection(e)
	}
	return ok
}

func (e *gestureEmitter) emit(family Family, kind EventKind, mutate ...func(*GestureEvent)) {
	event := newEvent(kind, e.ts)
	for _, m := range mutate {
		m(&event)
	}
	traceTime := e.traceTime
	if GlobalConf.UseSysTime {
		traceTime = adjustTimestampNsToS(e.ts, e.offsetNs)
	}
	e.out <- &DetectedGesture{
		GestureEvent: event,
		Family:       family,
		TraceTime:    traceTime,
	}
}

func withDirection(dir Direction) func(*GestureEvent) {
	return func(ev *GestureEvent) { ev.Direction = dir }
}

func (e *gestureEmitter) OnShakeDetected() { e.emit(FamilyShake, EventShake) }
func (e *gestureEmitter) OnFaceUp()        { e.emit(FamilyFlip, EventFaceUp) }
func (e *gestureEmitter) OnFaceDown()      { e.emit(FamilyFlip, EventFaceDown) }
func (e *gestureEmitter) OnDark()          { e.emit(FamilyLight, EventDark) }
func (e *gestureEmitter) OnLight()         { e.emit(FamilyLight, EventLight) }
func (e *gestureEmitter) OnNear()          { e.emit(FamilyProximity, EventNear) }
func (e *gestureEmitter) OnFar()           { e.emit(FamilyProximity, EventFar) }
func (e *gestureEmitter) OnWave()          { e.emit(FamilyWave, EventWave) }
func (e *gestureEmitter) OnTopSideUp()     { e.emit(FamilyOrientation, EventTopSideUp) }
func (e *gestureEmitter) OnBottomSideUp()  { e.emit(FamilyOrientation, EventBottomSideUp) }
func (e *gestureEmitter) OnRightSideUp()   { e.emit(FamilyOrientation, EventRightSideUp) }
func (e *gestureEmitter) OnLeftSideUp()    { e.emit(FamilyOrientation, EventLeftSideUp) }

func (e *gestureEmitter) OnSingleTap()            { e.emit(FamilyTouch, EventSingleTap) }
func (e *gestureEmitter) OnDoubleTap()            { e.emit(FamilyTouch, EventDoubleTap) }
func (e *gestureEmitter) OnLongPress()            { e.emit(FamilyTouch, EventLongPress) }
func (e *gestureEmitter) OnTwoFingerSingleTap()   { e.emit(FamilyTouch, EventTwoFingerTap) }
func (e *gestureEmitter) OnThreeFingerSingleTap() { e.emit(FamilyTouch, EventThreeFingerTap) }

func (e *gestureEmitter) OnScroll(dir Direction) {
	e.emit(FamilyTouch, EventScroll, withDirection(dir))
}

func (e *gestureEmitter) OnSwipe(dir Direction) {
	e.emit(FamilyTouch, EventSwipe, withDirection(dir))
}

func (e *gestureEmitter) OnScaleStart() { e.emit(FamilyPinch, EventScaleStart) }
func (e *gestureEmitter) OnScaleEnd()   { e.emit(FamilyPinch, EventScaleEnd) }

func (e *gestureEmitter) OnScale(outward bool) {
	e.emit(FamilyPinch, EventScale, func(ev *GestureEvent) { ev.Outward = outward })
}

// GestureProcessorGenerator builds a GestureProcessor from pipeline kwargs:
//
//	detect: [shake, touch, pinch]
//	shake_threshold: 4.5
//	touch:
//	  touch_slop: 32
//
// With no "detect" key every family is started.
type GestureProcessorGenerator struct {
	Base   *Config
	Logger *slog.Logger
}

func (g *GestureProcessorGenerator) GenerateProcessor(source *phonelab.PipelineSourceInstance,
	kwargs map[string]interface{}) phonelab.Processor {

	families, err := familiesFromKwargs(kwargs)
	if err != nil {
		// The generator interface has no error return.
		panic(err)
	}
	conf, err := ConfigFromKwargs(g.Base, kwargs)
	if err != nil {
		panic(err)
	}

	return &GestureProcessor{
		Source:   source.Processor,
		Families: families,
		Config:   conf,
		Logger:   g.Logger,
	}
}

func familiesFromKwargs(kwargs map[string]interface{}) ([]Family, error) {
	v, ok := kwargs["detect"]
	if !ok {
		return []Family{
			FamilyShake, FamilyFlip, FamilyLight, FamilyProximity,
			FamilyWave, FamilyOrientation, FamilyTouch, FamilyPinch,
		}, nil
	}

	var names []string
	switch typed := v.(type) {
	case string:
		names = []string{typed}
	case []string:
		names = typed
	case []interface{}:
		for _, item := range typed {
			name, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("detect: expected family name, got %T", item)
			}
			names = append(names, name)
		}
	default:
		return nil, fmt.Errorf("detect: expected list of family names, got %T", v)
	}

	families := make([]Family, 0, len(names))
	for _, name := range names {
		family, err := ParseFamily(name)
		if err != nil {
			return nil, fmt.Errorf("detect: %w", err)
		}
		families = append(families, family)
	}
	return families, nil
}
