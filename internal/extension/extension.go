package extension

import (
	"context"
	"sync"
	"time"

	"github.com/markusressel/temp2go/internal/display"
	"github.com/markusressel/temp2go/internal/poller"
	"github.com/markusressel/temp2go/internal/readings"
	"github.com/markusressel/temp2go/internal/scheduler"
	"github.com/markusressel/temp2go/internal/sensors"
	"github.com/markusressel/temp2go/internal/ui"
	"github.com/markusressel/temp2go/internal/util"
	"github.com/spf13/afero"
)

const DefaultPollingRate = 2 * time.Second

// SinkFactory creates the sink showing the values of the sensor with the given id
type SinkFactory func(sensorId string) display.Sink

type Options struct {
	Runner      util.CommandRunner
	Fs          afero.Fs
	Scheduler   scheduler.Scheduler
	Sinks       SinkFactory
	Store       *readings.Store
	ThermalRoot string
	PollingRate time.Duration

	// Notify is called when polling stopped because of an error, may be nil
	Notify func(err error)
}

// Extension owns everything that lives between Enable and Disable:
// the located sensors, their sinks and the poller.
type Extension struct {
	options Options

	mu      sync.Mutex
	enabled bool
	located sensors.Located
	sinks   []display.Sink
	poller  *poller.TemperaturePoller
}

func New(options Options) *Extension {
	if options.Fs == nil {
		options.Fs = afero.NewOsFs()
	}
	if options.Runner == nil {
		options.Runner = util.NewExecRunner(0)
	}
	if options.Scheduler == nil {
		options.Scheduler = scheduler.NewTimerScheduler(context.Background())
	}
	if options.PollingRate <= 0 {
		options.PollingRate = DefaultPollingRate
	}
	if options.Store == nil {
		options.Store = readings.NewStore(readings.DefaultHistorySize)
	}
	if options.Sinks == nil {
		options.Sinks = func(string) display.Sink {
			return display.NewLabel()
		}
	}
	return &Extension{options: options}
}

// Enable locates the sensors and starts polling them. Finding no sensor at all
// is not an error, the extension simply stays idle.
func (e *Extension) Enable(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.enabled {
		return nil
	}
	e.enabled = true

	locator := sensors.NewLocator(e.options.Runner, e.options.Fs, e.options.ThermalRoot)
	e.located = locator.Locate(ctx)
	if e.located.Empty() {
		ui.Warning("No temperature sensor found, nothing to display")
		return nil
	}

	var bindings []poller.Binding
	for _, sensor := range sensors.NewSensors(e.located, e.options.Runner) {
		sink := e.options.Sinks(sensor.GetId())
		e.sinks = append(e.sinks, sink)
		bindings = append(bindings, poller.Binding{Sensor: sensor, Sink: sink})
	}

	options := []poller.Option{poller.WithStore(e.options.Store)}
	if e.options.Notify != nil {
		options = append(options, poller.WithFailureNotification(e.options.Notify))
	}
	p, err := poller.New(bindings, options...)
	if err != nil {
		return err
	}
	e.poller = p

	ui.Info("Polling %d sensor(s) every %s", len(bindings), e.options.PollingRate)
	p.Start(e.options.Scheduler, e.options.PollingRate)
	return nil
}

// Disable stops polling and releases all sinks. It may be called any number of times,
// also after the poller stopped itself.
func (e *Extension) Disable() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled {
		return
	}
	e.enabled = false

	if e.poller != nil {
		e.poller.Stop()
		e.poller = nil
	}
	for _, sink := range e.sinks {
		display.Release(sink)
	}
	e.sinks = nil
	e.options.Store.Clear()
	e.located = sensors.Located{}
}

func (e *Extension) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled
}

// Poller returns the active poller, or nil if there is none
func (e *Extension) Poller() *poller.TemperaturePoller {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.poller
}

func (e *Extension) Located() sensors.Located {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.located
}

func (e *Extension) Store() *readings.Store {
	return e.options.Store
}
