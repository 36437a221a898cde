package sensors

import (
	"context"
	"errors"

	"github.com/markusressel/temp2go/internal/ui"
	"github.com/markusressel/temp2go/internal/util"
	"github.com/spf13/afero"
)

// Located holds the sensor commands found on this machine, each may be nil.
type Located struct {
	GPUKind GPUKind
	GPU     util.SensorCommand
	CPU     util.SensorCommand
}

func (l Located) Empty() bool {
	return l.GPU == nil && l.CPU == nil
}

type Locator struct {
	Runner      util.CommandRunner
	Fs          afero.Fs
	ThermalRoot string
}

func NewLocator(runner util.CommandRunner, fs afero.Fs, thermalRoot string) *Locator {
	if len(thermalRoot) <= 0 {
		thermalRoot = DefaultThermalRoot
	}
	return &Locator{
		Runner:      runner,
		Fs:          fs,
		ThermalRoot: thermalRoot,
	}
}

// Locate resolves the CPU and GPU sensor commands. Errors are logged and the
// affected sensor is left out, so the result may be empty.
func (l *Locator) Locate(ctx context.Context) Located {
	result := Located{}

	kind, err := DetectGPU(ctx, l.Runner)
	if err != nil {
		ui.Warning("Unable to detect GPU: %v", err)
	}
	result.GPUKind = kind
	if command, ok := kind.Command(); ok {
		result.GPU = command
		ui.Info("Detected %s GPU, using: %s", kind, command)
	} else if kind != GPUNone {
		ui.Info("Detected %s GPU, but reading its temperature is not supported", kind)
	} else {
		ui.Debug("No supported GPU found")
	}

	command, err := LocateCPU(l.Fs, l.ThermalRoot)
	var absent *SensorAbsentError
	switch {
	case errors.As(err, &absent):
		ui.Info("%v", err)
	case err != nil:
		ui.Warning("Unable to locate CPU sensor: %v", err)
	default:
		result.CPU = command
		ui.Info("Found CPU package sensor, using: %s", command)
	}

	return result
}
