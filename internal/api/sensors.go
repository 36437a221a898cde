package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/temp2go/internal/readings"
	"github.com/markusressel/temp2go/internal/util"
)

func registerSensorEndpoints(rest *echo.Echo, source Source) {
	group := rest.Group("/sensor")

	group.GET("/", func(c echo.Context) error {
		return getSensors(c, source)
	})
	group.GET("/:"+urlParamId+"/", func(c echo.Context) error {
		return getSensor(c, source)
	})
}

func getSensors(c echo.Context, source Source) error {
	snapshot := source.Store().Snapshot()
	data := make([]readings.Reading, 0, len(snapshot))
	for _, id := range util.SortedKeys(snapshot) {
		data = append(data, snapshot[id])
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getSensor(c echo.Context, source Source) error {
	id := c.Param(urlParamId)

	data, exists := source.Store().Get(id)
	if !exists {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
