package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/markusressel/temp2go/internal/display"
	"github.com/markusressel/temp2go/internal/readings"
	"github.com/markusressel/temp2go/internal/scheduler"
	"github.com/markusressel/temp2go/internal/sensors"
	"github.com/markusressel/temp2go/internal/ui"
)

type State int

const (
	Scheduled State = iota
	Stopped
)

func (s State) String() string {
	if s == Stopped {
		return "stopped"
	}
	return "scheduled"
}

// Binding connects a sensor to the sink showing its value
type Binding struct {
	Sensor sensors.Sensor
	Sink   display.Sink
}

// PollResult is the outcome of a single tick
type PollResult struct {
	Action scheduler.Result
	// Texts holds the published label per sensor id, only set when Action is Continue
	Texts map[string]string
}

type Option func(p *TemperaturePoller)

// WithStore records every successful reading in the given store
func WithStore(store *readings.Store) Option {
	return func(p *TemperaturePoller) {
		p.store = store
	}
}

// WithFailureNotification is called once, with the error that stopped the poller
func WithFailureNotification(notify func(err error)) Option {
	return func(p *TemperaturePoller) {
		p.notify = notify
	}
}

func WithErrorLogger(logError func(format string, a ...interface{})) Option {
	return func(p *TemperaturePoller) {
		p.logError = logError
	}
}

// TemperaturePoller reads all bound sensors on every tick and publishes their values.
// The first error stops it for good.
type TemperaturePoller struct {
	bindings []Binding

	store    *readings.Store
	notify   func(err error)
	logError func(format string, a ...interface{})

	// tickMu is held for the duration of a tick
	tickMu sync.Mutex

	mu        sync.Mutex
	state     State
	lastError error
	scheduler scheduler.Scheduler
	handle    scheduler.Handle
	started   bool
}

// New creates a poller for the given bindings, which are polled in order.
// Returns an error if there is nothing to poll.
func New(bindings []Binding, options ...Option) (*TemperaturePoller, error) {
	if len(bindings) <= 0 {
		return nil, fmt.Errorf("no sensors to poll")
	}

	p := &TemperaturePoller{
		bindings: bindings,
		logError: ui.Error,
		state:    Scheduled,
	}
	for _, option := range options {
		option(p)
	}
	return p, nil
}

// Tick reads every sensor once and publishes the formatted values.
func (p *TemperaturePoller) Tick(ctx context.Context) PollResult {
	p.tickMu.Lock()
	defer p.tickMu.Unlock()

	if p.State() == Stopped {
		return PollResult{Action: scheduler.Stop}
	}

	texts := map[string]string{}
	for _, binding := range p.bindings {
		sensor := binding.Sensor

		value, err := sensor.GetValue(ctx)
		if err != nil {
			p.fail(err)
			return PollResult{Action: scheduler.Stop}
		}

		text := sensor.Format(value)
		binding.Sink.SetText(text)
		texts[sensor.GetId()] = text

		if p.store != nil {
			p.store.Record(sensor.GetId(), sensor.GetLabel(), int(value), text)
		}
	}

	return PollResult{Action: scheduler.Continue, Texts: texts}
}

func (p *TemperaturePoller) fail(err error) {
	p.mu.Lock()
	if p.state == Stopped {
		p.mu.Unlock()
		return
	}
	p.state = Stopped
	p.lastError = err
	p.mu.Unlock()

	p.logError("Temperature polling stopped: %v", err)
	if p.notify != nil {
		p.notify(err)
	}
}

// Start schedules the poller with a low priority, calling it more than once has no effect
func (p *TemperaturePoller) Start(s scheduler.Scheduler, interval time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.state == Stopped {
		return
	}
	p.started = true
	p.scheduler = s
	p.handle = s.ScheduleRepeating(interval, scheduler.PriorityLow, func(ctx context.Context) scheduler.Result {
		return p.Tick(ctx).Action
	})
}

// Stop removes the poller from its scheduler and waits for a running tick to finish.
// It is safe to call this on a poller that already stopped itself, or more than once.
func (p *TemperaturePoller) Stop() {
	p.mu.Lock()
	p.state = Stopped
	started, s, handle := p.started, p.scheduler, p.handle
	p.started = false
	p.mu.Unlock()

	if started {
		s.Cancel(handle)
	}

	// wait for a tick that is still running
	p.tickMu.Lock()
	p.tickMu.Unlock()
}

func (p *TemperaturePoller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// LastError returns the error that stopped the poller, if any
func (p *TemperaturePoller) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastError
}

func (p *TemperaturePoller) Bindings() []Binding {
	return p.bindings
}
