// Package models - các cấu trúc dữ liệu thời tiết (không lưu trữ).
package models

// WeatherReport là thời tiết hiện tại của một tỉnh
type WeatherReport struct {
	Province    string  `json:"province"`
	Condition   string  `json:"condition"` // nắng, mây, mưa...
	TempC       float64 `json:"tempC"`
	HumidityPct float64 `json:"humidityPct"`
	WindKmh     float64 `json:"windKmh"`
	RainMm      float64 `json:"rainMm"`
	ObservedAt  int64   `json:"observedAt"` // unix millis
	Source      string  `json:"source"`     // external | mock
}

// ForecastDay là dự báo thời tiết của một ngày
type ForecastDay struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	Condition string  `json:"condition"`
	TempMinC  float64 `json:"tempMinC"`
	TempMaxC  float64 `json:"tempMaxC"`
	RainMm    float64 `json:"rainMm"`
}

// Forecast là dự báo nhiều ngày của một tỉnh
type Forecast struct {
	Province string        `json:"province"`
	Days     []ForecastDay `json:"days"`
	Source   string        `json:"source"`
}
