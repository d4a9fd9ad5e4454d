// Package router đăng ký các route thuộc domain weather.
package router

import (
	"github.com/gofiber/fiber/v3"

	"agri_connect/internal/api/middleware"
	apirouter "agri_connect/internal/api/router"
	weatherhdl "agri_connect/internal/api/weather/handler"
)

// Register đăng ký tất cả route weather lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	weatherHandler := weatherhdl.NewWeatherHandler()

	authedChain := []fiber.Handler{middleware.AuthMiddleware()}

	// GET /weather/current: thời tiết hiện tại. Query: province
	apirouter.RegisterRouteWithMiddleware(v1, "/weather", "GET", "/current", authedChain, weatherHandler.HandleCurrent)
	// GET /weather/forecast: dự báo tối đa 7 ngày. Query: province, days
	apirouter.RegisterRouteWithMiddleware(v1, "/weather", "GET", "/forecast", authedChain, weatherHandler.HandleForecast)

	return nil
}
