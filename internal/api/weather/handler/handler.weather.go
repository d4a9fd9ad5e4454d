// Package weatherhdl - handler proxy thời tiết.
package weatherhdl

import (
	basehdl "agri_connect/internal/api/base/handler"
	weathersvc "agri_connect/internal/api/weather/service"
	"agri_connect/internal/global"
	"agri_connect/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// WeatherHandler xử lý các request thời tiết
type WeatherHandler struct {
	weatherService *weathersvc.WeatherService
}

// NewWeatherHandler tạo instance mới của WeatherHandler
func NewWeatherHandler() *WeatherHandler {
	return &WeatherHandler{
		weatherService: weathersvc.NewWeatherService(global.MongoDB_ServerConfig),
	}
}

// HandleCurrent thời tiết hiện tại. Query: province
func (h *WeatherHandler) HandleCurrent(c fiber.Ctx) error {
	report, err := h.weatherService.Current(c.Context(), c.Query("province"))
	basehdl.WriteResponse(c, report, err)
	return nil
}

// HandleForecast dự báo tối đa 7 ngày. Query: province, days
func (h *WeatherHandler) HandleForecast(c fiber.Ctx) error {
	days := int(utility.P2Int64(c.Query("days", "3")))
	forecast, err := h.weatherService.Forecast(c.Context(), c.Query("province"), days)
	basehdl.WriteResponse(c, forecast, err)
	return nil
}
