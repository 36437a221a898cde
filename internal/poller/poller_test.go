package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/markusressel/temp2go/internal/display"
	"github.com/markusressel/temp2go/internal/readings"
	"github.com/markusressel/temp2go/internal/scheduler"
	"github.com/markusressel/temp2go/internal/sensors"
	"github.com/markusressel/temp2go/internal/testingutils"
	"github.com/markusressel/temp2go/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cpuCommand = util.NewSensorCommand("cat", "/sys/class/thermal/thermal_zone1/temp")
	gpuCommand = util.NewSensorCommand("nvidia-settings", "-q", "gpucoretemp", "-t")
)

type errorLog struct {
	mu       sync.Mutex
	messages []string
}

func (l *errorLog) log(format string, a ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf(format, a...))
}

func (l *errorLog) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}

type fixture struct {
	runner   *testingutils.FakeRunner
	cpuLabel *display.Label
	gpuLabel *display.Label
	errors   *errorLog
	poller   *TemperaturePoller
}

func createFixture(t *testing.T, withGpu bool, options ...Option) *fixture {
	f := &fixture{
		runner:   testingutils.NewFakeRunner(),
		cpuLabel: display.NewLabel(),
		gpuLabel: display.NewLabel(),
		errors:   &errorLog{},
	}

	var bindings []Binding
	if withGpu {
		bindings = append(bindings, Binding{
			Sensor: sensors.NewGpuSensor(sensors.GPUNvidia, gpuCommand, f.runner),
			Sink:   f.gpuLabel,
		})
	}
	bindings = append(bindings, Binding{
		Sensor: sensors.NewCpuSensor(cpuCommand, f.runner),
		Sink:   f.cpuLabel,
	})

	options = append(options, WithErrorLogger(f.errors.log))
	p, err := New(bindings, options...)
	require.NoError(t, err)
	f.poller = p
	return f
}

func TestNew_NothingToPoll(t *testing.T) {
	// WHEN
	p, err := New(nil)

	// THEN
	assert.Error(t, err)
	assert.Nil(t, p)
}

func TestTick_PublishesBothSensors(t *testing.T) {
	// GIVEN
	f := createFixture(t, true)
	f.runner.On(gpuCommand, "62", nil)
	f.runner.On(cpuCommand, "45000", nil)

	// WHEN
	result := f.poller.Tick(context.Background())

	// THEN
	assert.Equal(t, scheduler.Continue, result.Action)
	assert.Equal(t, map[string]string{"gpu": "G: 62 °C", "cpu": "C: 45 °C"}, result.Texts)
	assert.Equal(t, "G: 62 °C", f.gpuLabel.Text())
	assert.Equal(t, "C: 45 °C", f.cpuLabel.Text())
	assert.Equal(t, Scheduled, f.poller.State())
	assert.Equal(t, 0, f.errors.count())
}

func TestTick_CpuOnly(t *testing.T) {
	// GIVEN
	f := createFixture(t, false)
	f.runner.On(cpuCommand, "38999\n", nil)

	// WHEN
	result := f.poller.Tick(context.Background())

	// THEN
	assert.Equal(t, scheduler.Continue, result.Action)
	assert.Equal(t, "C: 38 °C", f.cpuLabel.Text())
	assert.Equal(t, 0, f.runner.CallCount(gpuCommand))
}

func TestTick_CommandFailureStopsPolling(t *testing.T) {
	// GIVEN
	var notified []error
	f := createFixture(t, true, WithFailureNotification(func(err error) {
		notified = append(notified, err)
	}))
	exitErr := &util.ExitError{Executable: "nvidia-settings", Status: 1, Stderr: "no such device"}
	f.runner.On(gpuCommand, "", exitErr)
	f.runner.On(cpuCommand, "45000", nil)

	// WHEN
	result := f.poller.Tick(context.Background())

	// THEN
	assert.Equal(t, scheduler.Stop, result.Action)
	assert.Nil(t, result.Texts)
	assert.Equal(t, Stopped, f.poller.State())
	assert.Equal(t, 1, f.errors.count())
	assert.Contains(t, f.errors.messages[0], "no such device")
	require.Len(t, notified, 1)
	assert.True(t, errors.As(f.poller.LastError(), &exitErr))
	// cpu is not read after the gpu failed
	assert.Equal(t, 0, f.runner.CallCount(cpuCommand))
	assert.Equal(t, "", f.cpuLabel.Text())
}

func TestTick_AfterStopDoesNothing(t *testing.T) {
	// GIVEN
	f := createFixture(t, false)
	f.runner.On(cpuCommand, "", &util.ExitError{Status: 1, Stderr: "no such device"})
	f.poller.Tick(context.Background())

	// WHEN
	result := f.poller.Tick(context.Background())

	// THEN
	assert.Equal(t, scheduler.Stop, result.Action)
	assert.Equal(t, 1, f.runner.CallCount(cpuCommand))
	assert.Equal(t, 1, f.errors.count())
}

func TestTick_ParseFailureStopsPolling(t *testing.T) {
	// GIVEN
	f := createFixture(t, true)
	f.runner.On(gpuCommand, "62", nil)
	f.runner.On(cpuCommand, "garbage", nil)

	// WHEN
	result := f.poller.Tick(context.Background())

	// THEN
	assert.Equal(t, scheduler.Stop, result.Action)
	assert.Equal(t, Stopped, f.poller.State())
	var parseErr *sensors.ParseError
	assert.True(t, errors.As(f.poller.LastError(), &parseErr))
	// values published before the failure stay visible
	assert.Equal(t, "G: 62 °C", f.gpuLabel.Text())
}

func TestTick_RecordsReadings(t *testing.T) {
	// GIVEN
	store := readings.NewStore(10)
	f := createFixture(t, true, WithStore(store))
	f.runner.On(gpuCommand, "62", nil)
	f.runner.On(cpuCommand, "45000", nil)

	// WHEN
	f.poller.Tick(context.Background())
	f.poller.Tick(context.Background())

	// THEN
	cpu, ok := store.Get("cpu")
	require.True(t, ok)
	assert.Equal(t, 45, cpu.Value)
	assert.Equal(t, 2, cpu.Samples)
	gpu, ok := store.Get("gpu")
	require.True(t, ok)
	assert.Equal(t, "G: 62 °C", gpu.Text)
}

func TestStart_FailureRemovesTimer(t *testing.T) {
	// GIVEN
	s := scheduler.NewTimerScheduler(context.Background())
	defer s.Close()
	f := createFixture(t, false)
	f.runner.On(cpuCommand, "", &util.ExitError{Status: 1, Stderr: "no such device"})

	// WHEN
	f.poller.Start(s, 5*time.Millisecond)

	// THEN
	assert.Eventually(t, func() bool {
		return s.Count() == 0
	}, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, f.runner.CallCount(cpuCommand))
	assert.Equal(t, 1, f.errors.count())
}

func TestStart_PollsRepeatedly(t *testing.T) {
	// GIVEN
	s := scheduler.NewTimerScheduler(context.Background())
	defer s.Close()
	f := createFixture(t, false)
	f.runner.On(cpuCommand, "45000", nil)

	// WHEN
	f.poller.Start(s, 5*time.Millisecond)
	f.poller.Start(s, 5*time.Millisecond)

	// THEN
	assert.Eventually(t, func() bool {
		return f.runner.CallCount(cpuCommand) >= 3
	}, time.Second, time.Millisecond)
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, "C: 45 °C", f.cpuLabel.Text())

	f.poller.Stop()
	assert.Equal(t, 0, s.Count())
}

func TestStop_Idempotent(t *testing.T) {
	// GIVEN
	s := scheduler.NewTimerScheduler(context.Background())
	defer s.Close()
	f := createFixture(t, false)
	f.runner.On(cpuCommand, "", &util.ExitError{Status: 1})
	f.poller.Start(s, 5*time.Millisecond)
	assert.Eventually(t, func() bool {
		return f.poller.State() == Stopped
	}, time.Second, time.Millisecond)

	// WHEN
	assert.NotPanics(t, func() {
		f.poller.Stop()
		f.poller.Stop()
	})

	// THEN
	assert.Equal(t, Stopped, f.poller.State())
}

func TestStop_NeverStarted(t *testing.T) {
	f := createFixture(t, false)
	assert.NotPanics(t, f.poller.Stop)
	assert.Equal(t, Stopped, f.poller.State())
}
