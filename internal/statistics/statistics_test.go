package statistics

import (
	"strings"
	"testing"

	"github.com/markusressel/temp2go/internal/poller"
	"github.com/markusressel/temp2go/internal/readings"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSensorCollector(t *testing.T) {
	// GIVEN
	store := readings.NewStore(10)
	store.Record("cpu", "CPU Package", 40, "C: 40 °C")
	store.Record("cpu", "CPU Package", 50, "C: 50 °C")
	collector := NewSensorCollector(store)

	// WHEN
	expected := `
# HELP temp2go_sensor_celsius Current temperature of the sensor
# TYPE temp2go_sensor_celsius gauge
temp2go_sensor_celsius{id="cpu"} 50
# HELP temp2go_sensor_max_celsius Maximum temperature of the sensor over the history window
# TYPE temp2go_sensor_max_celsius gauge
temp2go_sensor_max_celsius{id="cpu"} 50
`
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"temp2go_sensor_celsius", "temp2go_sensor_max_celsius")

	// THEN
	assert.NoError(t, err)
}

type pollerSource struct {
	p *poller.TemperaturePoller
}

func (s pollerSource) Poller() *poller.TemperaturePoller {
	return s.p
}

func TestPollerCollector_NoPoller(t *testing.T) {
	// GIVEN
	collector := NewPollerCollector(pollerSource{})

	// WHEN
	expected := `
# HELP temp2go_poller_running 1 while temperatures are polled, 0 after polling stopped or if no sensor was found
# TYPE temp2go_poller_running gauge
temp2go_poller_running 0
`
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected), "temp2go_poller_running")

	// THEN
	assert.NoError(t, err)
}
