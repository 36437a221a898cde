package configuration

type DisplayConfig struct {
	// Terminal prints the panel line to stdout on every change
	Terminal bool `json:"terminal"`
	// CpuFile and GpuFile receive the respective label, if set
	CpuFile string `json:"cpuFile"`
	GpuFile string `json:"gpuFile"`
}
