package cmd

import (
	"fmt"
	"os"

	"github.com/markusressel/temp2go/cmd/config"
	"github.com/markusressel/temp2go/cmd/global"
	"github.com/markusressel/temp2go/cmd/sensor"
	"github.com/markusressel/temp2go/internal"
	"github.com/markusressel/temp2go/internal/configuration"
	"github.com/markusressel/temp2go/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "temp2go",
	Short: "A daemon showing CPU and GPU temperatures in your status bar.",
	Long: `temp2go is a small daemon that periodically reads the CPU package
and GPU temperature and renders them as labels for a status bar.`,
	SilenceUsage: true,
	// this is the default command to run when no subcommand is specified
	RunE: func(cmd *cobra.Command, args []string) error {
		setupUi()

		configPath := configuration.DetectAndReadConfigFile()
		if len(configPath) > 0 {
			ui.Info("Using configuration file at: %s", configPath)
		}
		configuration.LoadConfig()
		err := configuration.Validate()
		if err != nil {
			ui.Error("Config Validation Error: %v", err)
			return err
		}

		return internal.RunDaemon()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $HOME/temp2go.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.AddCommand(config.Command)
	rootCmd.AddCommand(sensor.Command)
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		setupUi()
		configuration.InitConfig(global.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
