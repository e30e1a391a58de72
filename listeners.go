package libgesturego

// Listener interfaces, one per detection family. Implementations must be
// comparable (typically pointers): the registry uses the listener value
// itself to detect duplicate registrations.

type ShakeListener interface {
	OnShakeDetected()
}

type FlipListener interface {
	OnFaceUp()
	OnFaceDown()
}

type LightListener interface {
	OnDark()
	OnLight()
}

type ProximityListener interface {
	OnNear()
	OnFar()
}

type WaveListener interface {
	OnWave()
}

type OrientationListener interface {
	OnTopSideUp()
	OnBottomSideUp()
	OnRightSideUp()
	OnLeftSideUp()
}

type TouchTypeListener interface {
	OnSingleTap()
	OnDoubleTap()
	OnLongPress()
	OnTwoFingerSingleTap()
	OnThreeFingerSingleTap()
	OnScroll(direction Direction)
	OnSwipe(direction Direction)
}

type PinchScaleListener interface {
	OnScaleStart()
	OnScale(outward bool)
	OnScaleEnd()
}

// The notify functions translate an event into the matching listener call.
// Events that do not belong to the family are ignored.

func notifyShake(l ShakeListener) func(GestureEvent) {
	return func(ev GestureEvent) {
		if ev.Kind == EventShake {
			l.OnShakeDetected()
		}
	}
}

func notifyFlip(l FlipListener) func(GestureEvent) {
	return func(ev GestureEvent) {
		switch ev.Kind {
		case EventFaceUp:
			l.OnFaceUp()
		case EventFaceDown:
			l.OnFaceDown()
		}
	}
}

func notifyLight(l LightListener) func(GestureEvent) {
	return func(ev GestureEvent) {
		switch ev.Kind {
		case EventDark:
			l.OnDark()
		case EventLight:
			l.OnLight()
		}
	}
}

func notifyProximity(l ProximityListener) func(GestureEvent) {
	return func(ev GestureEvent) {
		switch ev.Kind {
		case EventNear:
			l.OnNear()
		case EventFar:
			l.OnFar()
		}
	}
}

func notifyWave(l WaveListener) func(GestureEvent) {
	return func(ev GestureEvent) {
		if ev.Kind == EventWave {
			l.OnWave()
		}
	}
}

func notifyOrientation(l OrientationListener) func(GestureEvent) {
	return func(ev GestureEvent) {
		switch ev.Kind {
		case EventTopSideUp:
			l.OnTopSideUp()
		case EventBottomSideUp:
			l.OnBottomSideUp()
		case EventRightSideUp:
			l.OnRightSideUp()
		case EventLeftSideUp:
			l.OnLeftSideUp()
		}
	}
}

func notifyTouchType(l TouchTypeListener) func(GestureEvent) {
	return func(ev GestureEvent) {
		switch ev.Kind {
		case EventSingleTap:
			l.OnSingleTap()
		case EventDoubleTap:
			l.OnDoubleTap()
		case EventLongPress:
			l.OnLongPress()
		case EventTwoFingerTap:
			l.OnTwoFingerSingleTap()
		case EventThreeFingerTap:
			l.OnThreeFingerSingleTap()
		case EventScroll:
			l.OnScroll(ev.Direction)
		case EventSwipe:
			l.OnSwipe(ev.Direction)
		}
	}
}

func notifyPinchScale(l PinchScaleListener) func(GestureEvent) {
	return func(ev GestureEvent) {
		switch ev.Kind {
		case EventScaleStart:
			l.OnScaleStart()
		case EventScale:
			l.OnScale(ev.Outward)
		case EventScaleEnd:
			l.OnScaleEnd()
		}
	}
}
