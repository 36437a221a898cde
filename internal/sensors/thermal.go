package sensors

import (
	"path/filepath"
	"strings"

	"github.com/markusressel/temp2go/internal/util"
	"github.com/spf13/afero"
)

const (
	DefaultThermalRoot = "/sys/class/thermal"

	// CpuPackageZoneType is the type of the thermal zone reporting the x86 CPU package temperature
	CpuPackageZoneType = "x86_pkg_temp"

	thermalZonePrefix = "thermal_zone"
)

type ThermalZone struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Path string `json:"path"`
}

func (z ThermalZone) TempPath() string {
	return filepath.Join(z.Path, "temp")
}

// ListThermalZones returns all thermal zones below root, in directory order.
// Zones without a readable type file are returned with an empty Type.
func ListThermalZones(fs afero.Fs, root string) ([]ThermalZone, error) {
	entries, err := afero.ReadDir(fs, root)
	if err != nil {
		return nil, err
	}

	var zones []ThermalZone
	for _, entry := range entries {
		name := entry.Name()
		if !strings.Contains(name, thermalZonePrefix) {
			continue
		}

		path := filepath.Join(root, name)
		zoneType, err := util.ReadStringFromFile(fs, filepath.Join(path, "type"))
		if err != nil {
			zoneType = ""
		}

		zones = append(zones, ThermalZone{
			Name: name,
			Type: zoneType,
			Path: path,
		})
	}

	return zones, nil
}

// LocateCPU finds the thermal zone of the CPU package and returns the command reading its temperature.
func LocateCPU(fs afero.Fs, root string) (util.SensorCommand, error) {
	zones, err := ListThermalZones(fs, root)
	if err != nil {
		return nil, err
	}

	for _, zone := range zones {
		if zone.Type == CpuPackageZoneType {
			return util.NewSensorCommand("cat", zone.TempPath()), nil
		}
	}

	return nil, &SensorAbsentError{
		Sensor: SensorIdCpu,
		Reason: "no thermal zone of type " + CpuPackageZoneType + " in " + root,
	}
}
