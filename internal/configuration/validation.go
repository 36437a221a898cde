package configuration

import (
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/exp/slices"
)

const minPollingRate = 100 * time.Millisecond

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	if config.PollingRate < minPollingRate {
		return fmt.Errorf("pollingRate must be at least %s, was %s", minPollingRate, config.PollingRate)
	}
	if config.CommandTimeout < 0 {
		return fmt.Errorf("commandTimeout must not be negative, was %s", config.CommandTimeout)
	}
	if len(config.ThermalRoot) <= 0 || !filepath.IsAbs(config.ThermalRoot) {
		return fmt.Errorf("thermalRoot must be an absolute path, was '%s'", config.ThermalRoot)
	}
	if config.HistorySize <= 0 {
		return fmt.Errorf("historySize must be >= 1, was %d", config.HistorySize)
	}

	err := validateDisplay(&config.Display)
	if err != nil {
		return err
	}

	ports := map[string]int{}
	if config.Api.Enabled {
		ports["api"] = config.Api.Port
	}
	if config.Statistics.Enabled {
		ports["statistics"] = config.Statistics.Port
	}
	if config.Profiling.Enabled {
		ports["profiling"] = config.Profiling.Port
	}
	return validatePorts(ports)
}

func validateDisplay(config *DisplayConfig) error {
	files := []string{}
	for _, file := range []string{config.CpuFile, config.GpuFile} {
		if len(file) <= 0 {
			continue
		}
		if slices.Contains(files, file) {
			return fmt.Errorf("display: cpuFile and gpuFile must not be the same file: %s", file)
		}
		files = append(files, file)
	}
	return nil
}

func validatePorts(ports map[string]int) error {
	used := map[int]string{}
	for _, name := range []string{"api", "statistics", "profiling"} {
		port, enabled := ports[name]
		if !enabled {
			continue
		}
		if port <= 0 || port > 65535 {
			return fmt.Errorf("%s: invalid port %d", name, port)
		}
		if other, exists := used[port]; exists {
			return fmt.Errorf("%s: port %d is already used by %s", name, port, other)
		}
		used[port] = name
	}
	return nil
}
