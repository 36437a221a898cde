package sensors

import (
	"context"
	"fmt"

	"github.com/markusressel/temp2go/internal/util"
)

// CmdSensor reads its value from the output of an external command.
type CmdSensor struct {
	ID      string             `json:"id"`
	Label   string             `json:"label"`
	Command util.SensorCommand `json:"command"`

	runner util.CommandRunner
	parse  func(raw string) (Temperature, error)
	format func(value Temperature) string
}

func NewCpuSensor(command util.SensorCommand, runner util.CommandRunner) *CmdSensor {
	return &CmdSensor{
		ID:      SensorIdCpu,
		Label:   "CPU Package",
		Command: command,
		runner:  runner,
		parse:   ParseMillidegrees,
		format:  FormatCPU,
	}
}

func NewGpuSensor(kind GPUKind, command util.SensorCommand, runner util.CommandRunner) *CmdSensor {
	return &CmdSensor{
		ID:      SensorIdGpu,
		Label:   "GPU (" + kind.String() + ")",
		Command: command,
		runner:  runner,
		parse:   ParseDegrees,
		format:  FormatGPU,
	}
}

func (sensor *CmdSensor) GetId() string {
	return sensor.ID
}

func (sensor *CmdSensor) GetLabel() string {
	return sensor.Label
}

func (sensor *CmdSensor) GetValue(ctx context.Context) (Temperature, error) {
	output, err := sensor.runner.Run(ctx, sensor.Command)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %w", sensor.GetId(), err)
	}

	value, err := sensor.parse(output)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %w", sensor.GetId(), err)
	}

	return value, nil
}

func (sensor *CmdSensor) Format(value Temperature) string {
	return sensor.format(value)
}
