package libgesturego

import (
	phonelab "github.com/shaseley/phonelab-go"
)

// There can be clock skew between the jiffy-based tracetime monotonic clock and
// the uptime clock that stamps input and sensor events. This processor emits
// offsets to enable tighter time sync.
type TimeSyncPreprocessor struct {
	Source phonelab.Processor
	// Offset changes smaller than this are not reported.
	ToleranceNs int64
}

const (
	nsPerSec  = int64(1 * 1000 * 1000 * 1000)
	nsPerMs   = int64(1 * 1000 * 1000)
	nsPerSecF = float64(nsPerSec)
	nsPerMsF  = float64(nsPerMs)
)

const DefaultTimeSyncToleranceNs = nsPerMs

type TimeSyncMsg struct {
	OffsetNs    int64
	TraceTimeNs int64
	SysTimeNs   int64
}

func adjustTimestamp(ts, offset, unitsPerSec int64) float64 {
	ts += offset
	secs := ts / unitsPerSec
	rem := ts - (secs * unitsPerSec)
	return float64(secs) + (float64(rem) / float64(unitsPerSec))
}

func adjustTimestampNsToS(ts, offset int64) float64 {
	return adjustTimestamp(ts, offset, nsPerSec)
}

// eventTimestamp returns the uptime stamp of payloads that carry one.
func eventTimestamp(payload interface{}) (int64, bool) {
	switch typed := payload.(type) {
	case *IFMotionEventLog:
		return typed.Timestamp, true
	case *SensorSampleLog:
		return typed.SensorTs, true
	}
	return 0, false
}

func (p *TimeSyncPreprocessor) Process() <-chan interface{} {

	outChan := make(chan interface{})

	go func() {
		inChan := p.Source.Process()

		// Clock skew between different monotonic clocks.
		// Add this to event timestamps to get trace timestamp.
		curOffset := int64(0)
		haveOffset := false

		for iLog := range inChan {
			if ll, ok := iLog.(*phonelab.Logline); ok && ll != nil {
				if sysTs, ok := eventTimestamp(ll.Payload); ok {
					traceTsNanos := int64(ll.TraceTime * nsPerSecF)
					newOffset := traceTsNanos - sysTs
					diff := newOffset - curOffset
					if diff < 0 {
						diff = -diff
					}
					if !haveOffset || diff > p.ToleranceNs {
						curOffset = newOffset
						haveOffset = true
						outChan <- &TimeSyncMsg{
							OffsetNs:    curOffset,
							TraceTimeNs: traceTsNanos,
							SysTimeNs:   sysTs,
						}
					}
				}
				outChan <- iLog
			}
		}
		close(outChan)
	}()

	return outChan
}

type TimeSyncPreprocessorGenerator struct{}

func (g *TimeSyncPreprocessorGenerator) GenerateProcessor(source *phonelab.PipelineSourceInstance,
	kwargs map[string]interface{}) phonelab.Processor {

	tolerance := DefaultTimeSyncToleranceNs
	if v, ok := kwargs["toleranceMs"]; ok {
		switch typed := v.(type) {
		case int:
			tolerance = int64(typed) * nsPerMs
		case float64:
			tolerance = int64(typed * nsPerMsF)
		}
	}

	return &TimeSyncPreprocessor{
		Source:      source.Processor,
		ToleranceNs: tolerance,
	}
}
