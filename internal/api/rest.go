package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/markusressel/temp2go/internal/poller"
	"github.com/markusressel/temp2go/internal/readings"
	"github.com/markusressel/temp2go/internal/sensors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	urlParamId      = "id"
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// Source is the running temperature extension, as seen by the API
type Source interface {
	Store() *readings.Store
	Located() sensors.Located
	Poller() *poller.TemperaturePoller
}

// CreateRestService builds the REST API, request metrics are registered with the given registerer.
func CreateRestService(source Source, registerer prometheus.Registerer) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true
	echoRest.HidePort = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())
	echoRest.Use(middleware.Recover())
	echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "temp2go_api",
		Registerer: registerer,
	}))

	echoRest.GET("/alive/", isAlive)

	registerSensorEndpoints(echoRest, source)
	registerStatusEndpoints(echoRest, source)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}
