package configuration

import (
	"errors"
	"os"
	"time"

	"github.com/markusressel/temp2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	// PollingRate is the interval between two sensor reads
	PollingRate time.Duration `json:"pollingRate"`
	// CommandTimeout limits the runtime of sensor commands, 0 disables the limit
	CommandTimeout time.Duration `json:"commandTimeout"`
	ThermalRoot    string        `json:"thermalRoot"`
	HistorySize    int           `json:"historySize"`

	// NotifyOnFailure sends a desktop notification when polling stops because of an error
	NotifyOnFailure bool `json:"notifyOnFailure"`

	Display    DisplayConfig    `json:"display"`
	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
	Profiling  ProfilingConfig  `json:"profiling"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("temp2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/temp2go/")
	}

	viper.SetEnvPrefix("temp2go")
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("pollingRate", 2*time.Second)
	viper.SetDefault("commandTimeout", 0)
	viper.SetDefault("thermalRoot", "/sys/class/thermal")
	viper.SetDefault("historySize", 60)
	viper.SetDefault("notifyOnFailure", true)

	viper.SetDefault("display.terminal", true)
	viper.SetDefault("display.cpuFile", "")
	viper.SetDefault("display.gpuFile", "")

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("profiling.enabled", false)
	viper.SetDefault("profiling.host", "localhost")
	viper.SetDefault("profiling.port", 6060)
}

// DetectAndReadConfigFile reads the config file, if there is one.
// Returns the path of the file used, or an empty string when running on defaults.
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			ui.Debug("No configuration file found, using defaults")
			return ""
		}
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
