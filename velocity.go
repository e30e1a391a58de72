package libgesturego

const velocityHistory = 20

type movement struct {
	x, y float64
	ts   int64
}

type pointerTrack struct {
	samples [velocityHistory]movement
	head    int
	count   int
}

// velocityTracker estimates per pointer velocities in px/s from the positions
// each pointer id reported over the last horizonMs. Tracks are kept after a
// clear so a steady stream of gestures does not allocate.
type velocityTracker struct {
	horizonMs int64
	tracks    map[int]*pointerTrack
}

// addEvent records every pointer of event under its id.
func (v *velocityTracker) addEvent(event *TouchEvent) {
	for _, p := range event.Pointers {
		v.add(p.Id, p.X, p.Y, event.Timestamp)
	}
}

func (v *velocityTracker) add(id int, x, y float64, ts int64) {
	if v.tracks == nil {
		v.tracks = make(map[int]*pointerTrack)
	}
	track, ok := v.tracks[id]
	if !ok {
		track = &pointerTrack{}
		v.tracks[id] = track
	}
	track.head = (track.head + 1) % velocityHistory
	track.samples[track.head] = movement{x: x, y: y, ts: ts}
	if track.count < velocityHistory {
		track.count++
	}
}

// remove forgets a pointer that went up. Its id may be reused by the next
// finger to land.
func (v *velocityTracker) remove(id int) {
	if track, ok := v.tracks[id]; ok {
		track.count = 0
	}
}

func (v *velocityTracker) clear() {
	for _, track := range v.tracks {
		track.count = 0
	}
}

// velocity compares the newest sample of pointer id with the oldest one still
// inside the horizon. It returns zero if there is only one usable sample.
func (v *velocityTracker) velocity(id int) (vx, vy float64) {
	track, ok := v.tracks[id]
	if !ok || track.count < 2 {
		return 0, 0
	}

	newest := track.samples[track.head]
	oldest := newest
	for i := 1; i < track.count; i++ {
		s := track.samples[(track.head-i+velocityHistory)%velocityHistory]
		if newest.ts-s.ts > v.horizonMs*nsPerMs {
			break
		}
		oldest = s
	}

	dt := float64(newest.ts-oldest.ts) / nsPerSecF
	if dt <= 0 {
		return 0, 0
	}
	return (newest.x - oldest.x) / dt, (newest.y - oldest.y) / dt
}
