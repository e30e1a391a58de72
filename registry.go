package libgesturego

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Family is a category of detection a client can start and stop.
type Family int

const (
	FamilyShake Family = iota
	FamilyFlip
	FamilyLight
	FamilyProximity
	FamilyWave
	FamilyOrientation
	FamilyTouch
	FamilyPinch
)

var familyNames = [...]string{
	FamilyShake:       "shake",
	FamilyFlip:        "flip",
	FamilyLight:       "light",
	FamilyProximity:   "proximity",
	FamilyWave:        "wave",
	FamilyOrientation: "orientation",
	FamilyTouch:       "touch",
	FamilyPinch:       "pinch",
}

func (f Family) String() string {
	if f >= 0 && int(f) < len(familyNames) {
		return familyNames[f]
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

func (f Family) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func ParseFamily(name string) (Family, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, known := range familyNames {
		if known == name {
			return Family(f), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
}

// Handle identifies one live sensor detection. It is issued by the Start
// calls and can be passed to Stop.
type Handle struct {
	ID     uuid.UUID
	Family Family
}

func (h Handle) IsZero() bool {
	return h.ID == uuid.Nil
}

// DetectionOption overrides a configured default for a single Start call.
type DetectionOption func(*detectionOptions)

type detectionOptions struct {
	threshold  *float64
	smoothness *int
}

// WithThreshold sets the detector threshold: m/s^2 for shake, lux for light,
// sensor units for proximity and milliseconds for wave.
func WithThreshold(threshold float64) DetectionOption {
	return func(o *detectionOptions) {
		o.threshold = &threshold
	}
}

// WithSmoothness sets the orientation smoothing window.
func WithSmoothness(smoothness int) DetectionOption {
	return func(o *detectionOptions) {
		o.smoothness = &smoothness
	}
}

func (o *detectionOptions) thresholdOr(def float64) float64 {
	if o.threshold != nil {
		return *o.threshold
	}
	return def
}

func (o *detectionOptions) smoothnessOr(def int) int {
	if o.smoothness != nil {
		return *o.smoothness
	}
	return def
}

type RegistryOption func(*Registry)

func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithConfig sets the defaults used when a Start call has no options.
func WithConfig(conf *Config) RegistryOption {
	return func(r *Registry) {
		if conf != nil {
			r.conf = conf
		}
	}
}

type registrationKey struct {
	family   Family
	listener any
}

// registration ties one detector to its listener and to the channels it is
// subscribed to. It is the SampleListener handed to the SensorSource.
type registration struct {
	registry *Registry
	handle   Handle
	key      registrationKey
	detector Detector
	channels []ChannelHandle
	notify   func(GestureEvent)
	live     bool
}

func (reg *registration) OnSample(s Sample) {
	r := reg.registry

	r.mu.Lock()
	if !reg.live {
		r.mu.Unlock()
		return
	}
	if !s.Valid() {
		r.mu.Unlock()
		r.logger.Debug("dropping invalid sample", "family", reg.handle.Family, "channel", s.Kind, "ts", s.Timestamp)
		return
	}
	ev, ok := reg.detector.OnSample(s)
	r.mu.Unlock()

	if ok {
		reg.notify(ev)
	}
}

type touchRegistration struct {
	classifier *TouchGestureClassifier
	notify     func(GestureEvent)
}

type pinchRegistration struct {
	tracker *PinchScaleTracker
	notify  func(GestureEvent)
}

// Registry maps client listeners to the detectors started for them, keeps
// their sensor subscriptions, and routes touch events to the active touch
// classifier and pinch tracker.
//
// A single mutex covers start, stop and dispatch. Listener callbacks run
// after it is released, so a callback may stop its own detection; the stop
// applies from the next sample on.
type Registry struct {
	mu     sync.Mutex
	source SensorSource
	conf   *Config
	logger *slog.Logger

	byKey    map[registrationKey]*registration
	byHandle map[Handle]*registration

	touch *touchRegistration
	pinch *pinchRegistration
}

func NewRegistry(source SensorSource, opts ...RegistryOption) *Registry {
	r := &Registry{
		source:   source,
		conf:     DefaultConfig(),
		logger:   slog.Default(),
		byKey:    make(map[registrationKey]*registration),
		byHandle: make(map[Handle]*registration),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func collectOptions(opts []DetectionOption) *detectionOptions {
	o := &detectionOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (r *Registry) StartShakeDetection(l ShakeListener, opts ...DetectionOption) (Handle, bool) {
	o := collectOptions(opts)
	return r.start(FamilyShake, l, func() Detector {
		return NewShakeDetector(o.thresholdOr(r.conf.ShakeThreshold))
	}, notifyShake(l))
}

func (r *Registry) StopShakeDetection(l ShakeListener) {
	r.stopListener(FamilyShake, l)
}

func (r *Registry) StartFlipDetection(l FlipListener) (Handle, bool) {
	return r.start(FamilyFlip, l, func() Detector {
		return NewFlipDetector()
	}, notifyFlip(l))
}

func (r *Registry) StopFlipDetection(l FlipListener) {
	r.stopListener(FamilyFlip, l)
}

func (r *Registry) StartLightDetection(l LightListener, opts ...DetectionOption) (Handle, bool) {
	o := collectOptions(opts)
	return r.start(FamilyLight, l, func() Detector {
		return NewLightDetector(o.thresholdOr(r.conf.LightThreshold))
	}, notifyLight(l))
}

func (r *Registry) StopLightDetection(l LightListener) {
	r.stopListener(FamilyLight, l)
}

func (r *Registry) StartProximityDetection(l ProximityListener, opts ...DetectionOption) (Handle, bool) {
	o := collectOptions(opts)
	return r.start(FamilyProximity, l, func() Detector {
		return NewProximityDetector(o.thresholdOr(r.conf.ProximityThreshold))
	}, notifyProximity(l))
}

func (r *Registry) StopProximityDetection(l ProximityListener) {
	r.stopListener(FamilyProximity, l)
}

func (r *Registry) StartWaveDetection(l WaveListener, opts ...DetectionOption) (Handle, bool) {
	o := collectOptions(opts)
	return r.start(FamilyWave, l, func() Detector {
		return NewWaveDetector(int64(o.thresholdOr(float64(r.conf.WaveThresholdMs))))
	}, notifyWave(l))
}

func (r *Registry) StopWaveDetection(l WaveListener) {
	r.stopListener(FamilyWave, l)
}

func (r *Registry) StartOrientationDetection(l OrientationListener, opts ...DetectionOption) (Handle, bool) {
	o := collectOptions(opts)
	return r.start(FamilyOrientation, l, func() Detector {
		return NewOrientationDetector(o.smoothnessOr(r.conf.OrientationSmoothness))
	}, notifyOrientation(l))
}

func (r *Registry) StopOrientationDetection(l OrientationListener) {
	r.stopListener(FamilyOrientation, l)
}

// start registers a detector for listener unless one is already live for the
// same family, in which case the existing handle is returned. Invalid
// listeners and missing channels are logged and reported through the bool.
func (r *Registry) start(family Family, listener any, newDetector func() Detector, notify func(GestureEvent)) (Handle, bool) {
	if !validListener(listener) {
		r.logger.Debug("ignoring invalid listener", "family", family)
		return Handle{}, false
	}
	key := registrationKey{family: family, listener: listener}

	r.mu.Lock()
	defer r.mu.Unlock()

	if reg, ok := r.byKey[key]; ok {
		r.logger.Debug("listener already registered", "family", family, "handle", reg.handle.ID)
		return reg.handle, true
	}

	detector := newDetector()
	channels := make([]ChannelHandle, 0, len(detector.Channels()))
	for _, kind := range detector.Channels() {
		ch, ok := r.source.Channel(kind)
		if !ok {
			r.logger.Info("sensor channel unavailable, detection not started", "family", family, "channel", kind)
			return Handle{}, false
		}
		channels = append(channels, ch)
	}

	reg := &registration{
		registry: r,
		handle:   Handle{ID: uuid.New(), Family: family},
		key:      key,
		detector: detector,
		channels: channels,
		notify:   notify,
		live:     true,
	}

	for i, ch := range channels {
		if err := r.source.Subscribe(ch, reg); err != nil {
			for _, done := range channels[:i] {
				r.source.Unsubscribe(done, reg)
			}
			r.logger.Warn("sensor subscription failed, detection not started",
				"family", family, "channel", ch.Kind, "error", err)
			return Handle{}, false
		}
	}

	r.byKey[key] = reg
	r.byHandle[reg.handle] = reg
	r.logger.Debug("detection started", "family", family, "handle", reg.handle.ID)
	return reg.handle, true
}

func (r *Registry) stopListener(family Family, listener any) {
	if !validListener(listener) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if reg, ok := r.byKey[registrationKey{family: family, listener: listener}]; ok {
		r.remove(reg)
	}
}

// Stop removes the detection identified by h. Unknown handles are ignored.
func (r *Registry) Stop(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reg, ok := r.byHandle[h]; ok {
		r.remove(reg)
	}
}

// remove must be called with r.mu held.
func (r *Registry) remove(reg *registration) {
	reg.live = false
	delete(r.byKey, reg.key)
	delete(r.byHandle, reg.handle)
	for _, ch := range reg.channels {
		r.source.Unsubscribe(ch, reg)
	}
	r.logger.Debug("detection stopped", "family", reg.handle.Family, "handle", reg.handle.ID)
}

// StartTouchTypeDetection installs a new touch classifier for l, replacing
// any previous one.
func (r *Registry) StartTouchTypeDetection(l TouchTypeListener) bool {
	if !validListener(l) {
		return false
	}
	params := r.conf.Touch

	r.mu.Lock()
	defer r.mu.Unlock()

	r.touch = &touchRegistration{
		classifier: NewTouchGestureClassifier(&params),
		notify:     notifyTouchType(l),
	}
	r.logger.Debug("detection started", "family", FamilyTouch)
	return true
}

func (r *Registry) StopTouchTypeDetection() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch = nil
}

// StartPinchScaleDetection installs a new pinch tracker for l, replacing any
// previous one.
func (r *Registry) StartPinchScaleDetection(l PinchScaleListener) bool {
	if !validListener(l) {
		return false
	}
	params := r.conf.Pinch

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pinch = &pinchRegistration{
		tracker: NewPinchScaleTracker(&params),
		notify:  notifyPinchScale(l),
	}
	r.logger.Debug("detection started", "family", FamilyPinch)
	return true
}

func (r *Registry) StopPinchScaleDetection() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pinch = nil
}

// DispatchTouch hands event to the active touch classifier and pinch tracker,
// if any, and delivers whatever they emit.
func (r *Registry) DispatchTouch(event TouchEvent) {
	var (
		touchEvents, pinchEvents []GestureEvent
		touchNotify, pinchNotify func(GestureEvent)
	)

	r.mu.Lock()
	if r.touch != nil {
		touchEvents = r.touch.classifier.OnTouchEvent(event)
		touchNotify = r.touch.notify
	}
	if r.pinch != nil {
		pinchEvents = r.pinch.tracker.OnTouchEvent(event)
		pinchNotify = r.pinch.notify
	}
	r.mu.Unlock()

	deliver(touchNotify, touchEvents)
	deliver(pinchNotify, pinchEvents)
}

// Tick lets the touch classifier fire timers that are due at now without
// waiting for the next touch event.
func (r *Registry) Tick(now int64) {
	var (
		events []GestureEvent
		notify func(GestureEvent)
	)

	r.mu.Lock()
	if r.touch != nil {
		events = r.touch.classifier.Advance(now)
		notify = r.touch.notify
	}
	r.mu.Unlock()

	deliver(notify, events)
}

// StopAll unsubscribes and discards every detector, including the touch
// classifier and pinch tracker.
func (r *Registry) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, reg := range r.byHandle {
		r.remove(reg)
	}
	r.touch = nil
	r.pinch = nil
}

// Len returns the number of live sensor detections.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byHandle)
}

// Active reports whether the family has at least one live detection.
func (r *Registry) Active(family Family) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch family {
	case FamilyTouch:
		return r.touch != nil
	case FamilyPinch:
		return r.pinch != nil
	}
	for key := range r.byKey {
		if key.family == family {
			return true
		}
	}
	return false
}

func deliver(notify func(GestureEvent), events []GestureEvent) {
	if notify == nil {
		return
	}
	for _, ev := range events {
		notify(ev)
	}
}

// validListener rejects nil listeners and values that cannot serve as a map
// key, including comparable types whose interface fields hold slices, maps or
// funcs.
func validListener(listener any) bool {
	if listener == nil {
		return false
	}
	v := reflect.ValueOf(listener)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.Slice:
		if v.IsNil() {
			return false
		}
	}
	return v.Comparable()
}
