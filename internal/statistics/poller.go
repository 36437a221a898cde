package statistics

import (
	"github.com/markusressel/temp2go/internal/poller"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemPoller = "poller"

// PollerState is implemented by the component owning the poller, which may be replaced or absent.
type PollerState interface {
	Poller() *poller.TemperaturePoller
}

type PollerCollector struct {
	source  PollerState
	running *prometheus.Desc
	sensors *prometheus.Desc
}

func NewPollerCollector(source PollerState) *PollerCollector {
	return &PollerCollector{
		source: source,
		running: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemPoller, "running"),
			"1 while temperatures are polled, 0 after polling stopped or if no sensor was found",
			nil, nil,
		),
		sensors: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemPoller, "sensors"),
			"Number of sensors polled",
			nil, nil,
		),
	}
}

func (collector *PollerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.running
	ch <- collector.sensors
}

func (collector *PollerCollector) Collect(ch chan<- prometheus.Metric) {
	running := 0.0
	sensorCount := 0.0
	if p := collector.source.Poller(); p != nil {
		if p.State() == poller.Scheduled {
			running = 1
		}
		sensorCount = float64(len(p.Bindings()))
	}
	ch <- prometheus.MustNewConstMetric(collector.running, prometheus.GaugeValue, running)
	ch <- prometheus.MustNewConstMetric(collector.sensors, prometheus.GaugeValue, sensorCount)
}
