package libgesturego

import (
	phonelab "github.com/shaseley/phonelab-go"
)

// config.go has global configuration and setup functions.

// Global library configuration options.
var GlobalConf = struct {
	// Whether the gesture processor should stamp events with the logged
	// uptime timestamp, shifted by the latest timesync offset, instead of the
	// trace time of the log line that was being processed.
	UseSysTime bool
}{
	false,
}

func AddParsers(env *phonelab.Environment) {
	// InputFlinger
	env.RegisterParserGenerator(IFMotionEventTag, NewIFMotionEventParser)

	// SensorService
	env.RegisterParserGenerator(SensorSamplePhoneLabTag, NewSensorSampleParser)
}

// Add all known processors to the enviroment. Any arguments needed for the
// processors are configured through yaml args.
func AddProcessors(env *phonelab.Environment, base *Config) {
	env.Processors["gestures"] = &GestureProcessorGenerator{Base: base}

	// Time sync (preprocessor)
	env.Processors["timesync"] = &TimeSyncPreprocessorGenerator{}
}
