package libgesturego

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// EventCollector is a DataCollector that keeps every *DetectedGesture it sees
// and can write them out as JSON.
type EventCollector struct {
	Events          []*DetectedGesture
	Families        map[Family]bool // nil keeps everything
	PersistOnFinish bool
	Filename        string
	Logger          *slog.Logger
	sync.Mutex
}

func NewEventCollector() *EventCollector {
	return &EventCollector{
		Events: make([]*DetectedGesture, 0),
	}
}

func (ec *EventCollector) OnData(data interface{}) {
	event, ok := data.(*DetectedGesture)
	if !ok || event == nil {
		return
	}

	ec.Lock()
	defer ec.Unlock()

	if ec.Families == nil || ec.Families[event.Family] {
		ec.Events = append(ec.Events, event)
	}
}

func (ec *EventCollector) Finish() {
	if !ec.PersistOnFinish {
		return
	}
	if err := ec.DumpJson(ec.Filename); err != nil {
		logger := ec.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("persisting gestures", "file", ec.Filename, "error", err)
	}
}

// Counts returns how many events of each kind were collected.
func (ec *EventCollector) Counts() map[EventKind]int {
	ec.Lock()
	defer ec.Unlock()

	counts := make(map[EventKind]int)
	for _, event := range ec.Events {
		counts[event.Kind]++
	}
	return counts
}

// DumpJson writes the collected events to outFile, or to stdout if outFile is
// empty.
func (ec *EventCollector) DumpJson(outFile string) error {
	ec.Lock()
	outputBytes, err := json.MarshalIndent(ec.Events, "", "\t")
	ec.Unlock()

	if err != nil {
		return fmt.Errorf("marshal gestures: %w", err)
	} else if len(outFile) == 0 {
		fmt.Println(string(outputBytes))
	} else {
		return os.WriteFile(outFile, outputBytes, 0644)
	}
	return nil
}
