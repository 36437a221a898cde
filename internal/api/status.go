package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/temp2go/internal/util"
)

type Status struct {
	GPUKind    string             `json:"gpuKind"`
	GPUCommand util.SensorCommand `json:"gpuCommand,omitempty"`
	CPUCommand util.SensorCommand `json:"cpuCommand,omitempty"`
	Polling    string             `json:"polling"`
	LastError  string             `json:"lastError,omitempty"`
}

func registerStatusEndpoints(rest *echo.Echo, source Source) {
	rest.GET("/status/", func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, getStatus(source), indentationChar)
	})
}

func getStatus(source Source) Status {
	located := source.Located()
	status := Status{
		GPUKind:    located.GPUKind.String(),
		GPUCommand: located.GPU,
		CPUCommand: located.CPU,
		Polling:    "disabled",
	}

	if p := source.Poller(); p != nil {
		status.Polling = p.State().String()
		if err := p.LastError(); err != nil {
			status.LastError = err.Error()
		}
	}
	return status
}
