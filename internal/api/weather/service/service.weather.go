// Package weathersvc - service proxy thời tiết.
// Không lưu trữ gì: request được chuyển tới provider (thật hoặc mock).
package weathersvc

import (
	"context"

	"agri_connect/config"
	models "agri_connect/internal/api/weather/models"
	"agri_connect/internal/common"
)

// maxForecastDays là số ngày dự báo tối đa
const maxForecastDays = 7

// WeatherProvider trừu tượng hóa nguồn dữ liệu thời tiết
type WeatherProvider interface {
	Current(ctx context.Context, province string) (*models.WeatherReport, error)
	Forecast(ctx context.Context, province string, days int) (*models.Forecast, error)
}

// WeatherService chuyển request thời tiết tới provider đã cấu hình
type WeatherService struct {
	provider WeatherProvider
}

// NewWeatherService tạo mới WeatherService. Thiếu WEATHER_API_URL/KEY thì
// âm thầm dùng mock provider, không bao giờ lỗi vì thiếu cấu hình.
func NewWeatherService(cfg *config.Configuration) *WeatherService {
	return &WeatherService{provider: NewProviderFromConfig(cfg)}
}

// NewWeatherServiceWithProvider tạo WeatherService với provider chỉ định
func NewWeatherServiceWithProvider(provider WeatherProvider) *WeatherService {
	return &WeatherService{provider: provider}
}

// Current trả về thời tiết hiện tại của một tỉnh
func (s *WeatherService) Current(ctx context.Context, province string) (*models.WeatherReport, error) {
	if province == "" {
		return nil, common.NewError(common.ErrCodeValidationInput, "Thiếu tên tỉnh", common.StatusBadRequest, nil)
	}
	return s.provider.Current(ctx, province)
}

// Forecast trả về dự báo tối đa 7 ngày của một tỉnh
func (s *WeatherService) Forecast(ctx context.Context, province string, days int) (*models.Forecast, error) {
	if province == "" {
		return nil, common.NewError(common.ErrCodeValidationInput, "Thiếu tên tỉnh", common.StatusBadRequest, nil)
	}
	if days <= 0 {
		days = 3
	}
	if days > maxForecastDays {
		days = maxForecastDays
	}
	return s.provider.Forecast(ctx, province, days)
}
