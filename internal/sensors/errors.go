package sensors

import "fmt"

// ParseError means the output of a sensor could not be interpreted as a temperature.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse temperature from %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SensorAbsentError means no matching device exists on this machine.
// It is not a failure, the sensor is simply not available.
type SensorAbsentError struct {
	Sensor string
	Reason string
}

func (e *SensorAbsentError) Error() string {
	return fmt.Sprintf("%s sensor not available: %s", e.Sensor, e.Reason)
}
