package cmd

import (
	"bytes"
	"context"
	"strconv"

	"github.com/markusressel/temp2go/cmd/global"
	"github.com/markusressel/temp2go/internal/configuration"
	"github.com/markusressel/temp2go/internal/sensors"
	"github.com/markusressel/temp2go/internal/ui"
	"github.com/markusressel/temp2go/internal/util"
	"github.com/mgutz/ansi"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect devices",
	Long:  `Detects the GPU and all thermal zones and prints them as a list`,
	Run: func(cmd *cobra.Command, args []string) {
		configuration.DetectAndReadConfigFile()
		configuration.LoadConfig()
		config := configuration.CurrentConfig

		runner := util.NewExecRunner(config.CommandTimeout)
		fs := afero.NewOsFs()

		tableConfig := &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		}

		// === GPU ===
		kind, err := sensors.DetectGPU(context.Background(), runner)
		if err != nil {
			ui.Warning("Unable to detect GPU: %v", err)
		}
		commandText := "N/A"
		if command, ok := kind.Command(); ok {
			commandText = command.String()
		}
		gpuTable := table.Table{
			Headers: []string{"GPU    ", "Kind", "Command"},
			Rows: [][]string{
				{"", kind.String(), commandText},
			},
		}

		// === Thermal zones ===
		zones, err := sensors.ListThermalZones(fs, config.ThermalRoot)
		if err != nil {
			ui.Warning("Unable to list thermal zones in %s: %v", config.ThermalRoot, err)
		}

		var zoneRows [][]string
		for _, zone := range zones {
			valueText := "N/A"
			value, err := util.ReadIntFromFile(fs, zone.TempPath())
			if err == nil {
				valueText = strconv.Itoa(value)
			}

			cpuText := ""
			if zone.Type == sensors.CpuPackageZoneType {
				cpuText = "*"
			}

			zoneRows = append(zoneRows, []string{
				"", zone.Name, zone.Type, valueText, cpuText,
			})
		}
		zoneTable := table.Table{
			Headers: []string{"Zones  ", "Name", "Type", "Value", "CPU"},
			Rows:    zoneRows,
		}

		tables := []table.Table{gpuTable, zoneTable}
		for idx, t := range tables {
			if t.Rows == nil {
				continue
			}
			var buf bytes.Buffer
			tableErr := t.WriteTable(&buf, tableConfig)
			if tableErr != nil {
				ui.Fatal("Error printing table: %v", tableErr)
			}
			tableString := buf.String()
			if idx < (len(tables) - 1) {
				ui.Printf(tableString)
			} else {
				ui.Printfln(tableString)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
