package sensors

import (
	"context"
	"strings"

	"github.com/markusressel/temp2go/internal/util"
)

type GPUKind int

const (
	GPUNone GPUKind = iota
	GPUAMD
	GPUNvidia
)

var (
	lspciCommand = util.NewSensorCommand("lspci", "-nnk")

	nvidiaTemperatureCommand = util.NewSensorCommand("nvidia-settings", "-q", "gpucoretemp", "-t")
)

func (k GPUKind) String() string {
	switch k {
	case GPUAMD:
		return "amd"
	case GPUNvidia:
		return "nvidia"
	default:
		return "none"
	}
}

// Command returns the command that prints the temperature of this kind of GPU in degrees.
// There is no such command for AMD (yet) and, obviously, none for GPUNone.
func (k GPUKind) Command() (util.SensorCommand, bool) {
	switch k {
	case GPUNvidia:
		return util.NewSensorCommand(nvidiaTemperatureCommand...), true
	default:
		return nil, false
	}
}

// ParseGPUKind scans lspci output for the first display controller with a known vendor.
// Controllers of unknown vendors are skipped.
func ParseGPUKind(lspciOutput string) GPUKind {
	for _, line := range strings.Split(lspciOutput, "\n") {
		line = strings.ToLower(line)

		if !strings.Contains(line, "vga") && !strings.Contains(line, "3d") {
			continue
		}

		if strings.Contains(line, "nvidia") {
			return GPUNvidia
		} else if strings.Contains(line, "amd") || strings.Contains(line, "radeon") {
			return GPUAMD
		}
	}

	return GPUNone
}

// DetectGPU enumerates PCI devices using lspci
func DetectGPU(ctx context.Context, runner util.CommandRunner) (GPUKind, error) {
	output, err := runner.Run(ctx, lspciCommand)
	if err != nil {
		return GPUNone, err
	}
	return ParseGPUKind(output), nil
}
