package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/markusressel/temp2go/internal/api"
	"github.com/markusressel/temp2go/internal/configuration"
	"github.com/markusressel/temp2go/internal/display"
	"github.com/markusressel/temp2go/internal/extension"
	"github.com/markusressel/temp2go/internal/readings"
	"github.com/markusressel/temp2go/internal/scheduler"
	"github.com/markusressel/temp2go/internal/sensors"
	"github.com/markusressel/temp2go/internal/statistics"
	"github.com/markusressel/temp2go/internal/ui"
	"github.com/markusressel/temp2go/internal/util"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"
)

const shutdownTimeout = 5 * time.Second

func RunDaemon() error {
	config := configuration.CurrentConfig

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewTimerScheduler(ctx)
	store := readings.NewStore(config.HistorySize)
	ext := extension.New(extension.Options{
		Runner:      util.NewExecRunner(config.CommandTimeout),
		Fs:          afero.NewOsFs(),
		Scheduler:   sched,
		Sinks:       createSinkFactory(config.Display),
		Store:       store,
		ThermalRoot: config.ThermalRoot,
		PollingRate: config.PollingRate,
		Notify:      createFailureNotification(config.NotifyOnFailure),
	})

	statistics.Register(statistics.NewSensorCollector(store))
	statistics.Register(statistics.NewPollerCollector(ext))

	var g run.Group
	{
		// === temperature extension
		g.Add(func() error {
			if err := ext.Enable(ctx); err != nil {
				return err
			}
			<-ctx.Done()
			return nil
		}, func(err error) {
			cancel()
			ext.Disable()
			sched.Close()
			ui.Info("Temperature polling stopped.")
		})
	}
	if config.Api.Enabled {
		// === REST api
		rest := api.CreateRestService(ext, prometheus.DefaultRegisterer)
		addr := net.JoinHostPort(config.Api.Host, strconv.Itoa(config.Api.Port))
		g.Add(func() error {
			ui.Info("Starting REST api on %s", addr)
			if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("cannot start REST api: %w", err)
			}
			return nil
		}, func(err error) {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer shutdownCancel()
			if err := rest.Shutdown(shutdownCtx); err != nil {
				ui.Warning("Error stopping REST api: %v", err)
			}
		})
	}
	if config.Statistics.Enabled {
		// === Prometheus Exporter
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		addServer(&g, "statistics", fmt.Sprintf(":%d", config.Statistics.Port), mux)
	}
	if config.Profiling.Enabled {
		mux := http.NewServeMux()
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
		addr := net.JoinHostPort(config.Profiling.Host, strconv.Itoa(config.Profiling.Port))
		addServer(&g, "profiling", addr, mux)
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	err := g.Run()
	if err == nil {
		ui.Info("Done.")
	}
	return err
}

func addServer(g *run.Group, name string, addr string, handler http.Handler) {
	server := &http.Server{Addr: addr, Handler: handler}
	g.Add(func() error {
		ui.Info("Starting %s server on %s", name, addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("cannot start %s server: %w", name, err)
		}
		return nil
	}, func(err error) {
		ui.Info("Stopping %s server...", name)
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer timeoutCancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping %s server: %v", name, err)
		}
	})
}

func createSinkFactory(config configuration.DisplayConfig) extension.SinkFactory {
	var panel *display.Panel
	if config.Terminal {
		panel = display.NewTerminalPanel()
	}

	return func(sensorId string) display.Sink {
		var sinks []display.Sink
		if panel != nil {
			sinks = append(sinks, panel.Slot(sensorId))
		}

		file := ""
		switch sensorId {
		case sensors.SensorIdCpu:
			file = config.CpuFile
		case sensors.SensorIdGpu:
			file = config.GpuFile
		}
		if len(file) > 0 {
			sinks = append(sinks, display.NewFileSink(file))
		}

		return display.Multi(sinks...)
	}
}

func createFailureNotification(enabled bool) func(err error) {
	if !enabled {
		return nil
	}
	return func(err error) {
		ui.NotifyError("temp2go", fmt.Sprintf("Temperature polling stopped: %v", err))
	}
}
