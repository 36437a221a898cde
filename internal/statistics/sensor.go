package statistics

import (
	"github.com/markusressel/temp2go/internal/readings"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemSensor = "sensor"

// SensorCollector exports the last values seen by the poller, it never reads sensors itself.
type SensorCollector struct {
	store   *readings.Store
	value   *prometheus.Desc
	avg     *prometheus.Desc
	max     *prometheus.Desc
	samples *prometheus.Desc
}

func NewSensorCollector(store *readings.Store) *SensorCollector {
	return &SensorCollector{
		store: store,
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "celsius"),
			"Current temperature of the sensor",
			[]string{"id"}, nil,
		),
		avg: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "avg_celsius"),
			"Average temperature of the sensor over the history window",
			[]string{"id"}, nil,
		),
		max: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "max_celsius"),
			"Maximum temperature of the sensor over the history window",
			[]string{"id"}, nil,
		),
		samples: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "samples_total"),
			"Number of successful reads of the sensor",
			[]string{"id"}, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
	ch <- collector.avg
	ch <- collector.max
	ch <- collector.samples
}

// Collect implements required collect function for all prometheus collectors
func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	for id, reading := range collector.store.Snapshot() {
		ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, float64(reading.Value), id)
		ch <- prometheus.MustNewConstMetric(collector.avg, prometheus.GaugeValue, reading.Avg, id)
		ch <- prometheus.MustNewConstMetric(collector.max, prometheus.GaugeValue, reading.Max, id)
		ch <- prometheus.MustNewConstMetric(collector.samples, prometheus.CounterValue, float64(reading.Samples), id)
	}
}
