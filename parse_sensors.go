package libgesturego

import (
	"fmt"

	phonelab "github.com/shaseley/phonelab-go"
)

const SensorSamplePhoneLabTag = "SensorService-Sample"

// A raw sensor reading logged by the SensorService, e.g.
//
//	{"sensor":"accel","values":[0.1,0.2,9.8],"ts":158108566813,...}
//
// SensorTs is the event timestamp in ns of uptime.
type SensorSampleLog struct {
	phonelab.PLLog
	Sensor   string    `json:"sensor"`
	Values   []float64 `json:"values"`
	SensorTs int64     `json:"ts"`
}

// Sample converts the log into a Sample. Values beyond the third are
// ignored and missing ones are left at zero.
func (log *SensorSampleLog) Sample() (Sample, error) {
	kind, err := ParseChannelKind(log.Sensor)
	if err != nil {
		return Sample{}, err
	}
	if len(log.Values) == 0 {
		return Sample{}, fmt.Errorf("sensor sample %v at %d has no values", log.Sensor, log.SensorTs)
	}

	s := Sample{Kind: kind, Timestamp: log.SensorTs}
	copy(s.Values[:], log.Values)
	return s, nil
}

type SensorSampleLogProps struct{}

func (p *SensorSampleLogProps) New() interface{} {
	return &SensorSampleLog{}
}

func NewSensorSampleParser() phonelab.Parser {
	return phonelab.NewJSONParser(&SensorSampleLogProps{})
}
