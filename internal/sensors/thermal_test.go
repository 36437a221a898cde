package sensors

import (
	"errors"
	"testing"

	"github.com/markusressel/temp2go/internal/util"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createThermalZone(fs afero.Fs, name string, zoneType string, temp string) {
	_ = afero.WriteFile(fs, DefaultThermalRoot+"/"+name+"/type", []byte(zoneType+"\n"), 0644)
	_ = afero.WriteFile(fs, DefaultThermalRoot+"/"+name+"/temp", []byte(temp+"\n"), 0644)
}

func TestLocateCPU(t *testing.T) {
	// GIVEN
	fs := afero.NewMemMapFs()
	createThermalZone(fs, "thermal_zone0", "acpitz", "27800")
	createThermalZone(fs, "thermal_zone1", "x86_pkg_temp", "45000")

	// WHEN
	command, err := LocateCPU(fs, DefaultThermalRoot)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, util.SensorCommand{"cat", "/sys/class/thermal/thermal_zone1/temp"}, command)
}

func TestLocateCPU_IgnoresNonZoneEntries(t *testing.T) {
	// GIVEN
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, DefaultThermalRoot+"/cooling_device0/type", []byte("x86_pkg_temp\n"), 0644)
	createThermalZone(fs, "thermal_zone3", "iwlwifi_1", "40000")
	createThermalZone(fs, "thermal_zone7", "x86_pkg_temp", "51000")

	// WHEN
	command, err := LocateCPU(fs, DefaultThermalRoot)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "/sys/class/thermal/thermal_zone7/temp", command.Args()[0])
}

func TestLocateCPU_SkipsZonesWithoutType(t *testing.T) {
	// GIVEN
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll(DefaultThermalRoot+"/thermal_zone0", 0755)
	createThermalZone(fs, "thermal_zone1", "x86_pkg_temp", "45000")

	// WHEN
	command, err := LocateCPU(fs, DefaultThermalRoot)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "/sys/class/thermal/thermal_zone1/temp", command.Args()[0])
}

func TestLocateCPU_NoPackageZone(t *testing.T) {
	// GIVEN
	fs := afero.NewMemMapFs()
	createThermalZone(fs, "thermal_zone0", "acpitz", "27800")

	// WHEN
	command, err := LocateCPU(fs, DefaultThermalRoot)

	// THEN
	assert.Nil(t, command)
	var absent *SensorAbsentError
	require.True(t, errors.As(err, &absent))
	assert.Equal(t, SensorIdCpu, absent.Sensor)
}

func TestLocateCPU_MissingRoot(t *testing.T) {
	// GIVEN
	fs := afero.NewMemMapFs()

	// WHEN
	command, err := LocateCPU(fs, DefaultThermalRoot)

	// THEN
	assert.Nil(t, command)
	assert.Error(t, err)
}

func TestListThermalZones(t *testing.T) {
	// GIVEN
	fs := afero.NewMemMapFs()
	createThermalZone(fs, "thermal_zone1", "x86_pkg_temp", "45000")
	createThermalZone(fs, "thermal_zone0", "acpitz", "27800")

	// WHEN
	zones, err := ListThermalZones(fs, DefaultThermalRoot)

	// THEN
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, "thermal_zone0", zones[0].Name)
	assert.Equal(t, "acpitz", zones[0].Type)
	assert.Equal(t, "/sys/class/thermal/thermal_zone1/temp", zones[1].TempPath())
}
