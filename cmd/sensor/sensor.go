package sensor

import (
	"context"
	"fmt"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/temp2go/internal/configuration"
	"github.com/markusressel/temp2go/internal/sensors"
	"github.com/markusressel/temp2go/internal/util"
	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	sensorId string
	samples  int
)

var Command = &cobra.Command{
	Use:              "sensor",
	Short:            "Read the current value of a sensor",
	Long:             ``,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		configuration.DetectAndReadConfigFile()
		configuration.LoadConfig()
		config := configuration.CurrentConfig

		sensor, err := getSensor(cmd.Context(), sensorId, config)
		if err != nil {
			return err
		}

		if samples <= 1 {
			value, err := sensor.GetValue(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%d", int(value))
			return nil
		}

		values, err := sample(cmd.Context(), sensor, samples, config.PollingRate)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(
			values,
			asciigraph.Height(10),
			asciigraph.Caption(fmt.Sprintf("%s (°C)", sensor.GetLabel())),
		)
		fmt.Println(graph)
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&sensorId,
		"id", "i",
		"",
		fmt.Sprintf("Sensor ID, one of: %s, %s", sensors.SensorIdCpu, sensors.SensorIdGpu),
	)
	_ = Command.MarkPersistentFlagRequired("id")
	Command.PersistentFlags().IntVarP(
		&samples,
		"samples", "n",
		1,
		"Number of samples to take and plot, one sample per polling interval",
	)
}

func getSensor(ctx context.Context, id string, config configuration.Configuration) (sensors.Sensor, error) {
	runner := util.NewExecRunner(config.CommandTimeout)
	locator := sensors.NewLocator(runner, afero.NewOsFs(), config.ThermalRoot)
	located := locator.Locate(ctx)

	availableSensorIds := []string{}
	for _, sensor := range sensors.NewSensors(located, runner) {
		availableSensorIds = append(availableSensorIds, sensor.GetId())
		if sensor.GetId() == id {
			return sensor, nil
		}
	}

	return nil, fmt.Errorf("no sensor with id found: %s, options: %s", id, availableSensorIds)
}

func sample(ctx context.Context, sensor sensors.Sensor, count int, interval time.Duration) ([]float64, error) {
	values := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return values, ctx.Err()
			case <-time.After(interval):
			}
		}
		value, err := sensor.GetValue(ctx)
		if err != nil {
			return values, err
		}
		values = append(values, float64(value))
	}
	return values, nil
}
