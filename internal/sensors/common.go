package sensors

import (
	"context"

	"github.com/markusressel/temp2go/internal/util"
)

const (
	SensorIdCpu = "cpu"
	SensorIdGpu = "gpu"
)

type Sensor interface {
	GetId() string

	GetLabel() string

	// GetValue returns the current value of this sensor
	GetValue(ctx context.Context) (Temperature, error)

	// Format renders a value of this sensor as display text
	Format(value Temperature) string
}

// NewSensors creates a sensor for every located command, GPU first.
func NewSensors(located Located, runner util.CommandRunner) []Sensor {
	var result []Sensor
	if located.GPU != nil {
		result = append(result, NewGpuSensor(located.GPUKind, located.GPU, runner))
	}
	if located.CPU != nil {
		result = append(result, NewCpuSensor(located.CPU, runner))
	}
	return result
}
