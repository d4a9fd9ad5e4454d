package weathersvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockProvider_CurrentDeterministic(t *testing.T) {
	provider := &MockProvider{}
	ctx := context.Background()

	first, err := provider.Current(ctx, "An Giang")
	assert.NoError(t, err)
	second, err := provider.Current(ctx, "An Giang")
	assert.NoError(t, err)

	assert.Equal(t, first.Condition, second.Condition, "cùng tỉnh cùng ngày phải trả về cùng kết quả")
	assert.Equal(t, first.TempC, second.TempC)
	assert.Equal(t, first.HumidityPct, second.HumidityPct)
	assert.Equal(t, "mock", first.Source)
}

func TestMockProvider_CurrentRanges(t *testing.T) {
	provider := &MockProvider{}

	for _, province := range []string{"An Giang", "Đắk Lắk", "Lâm Đồng", "Cần Thơ"} {
		report, err := provider.Current(context.Background(), province)
		assert.NoError(t, err)
		assert.Equal(t, province, report.Province)
		assert.NotEmpty(t, report.Condition)
		assert.GreaterOrEqual(t, report.TempC, float64(22))
		assert.LessOrEqual(t, report.TempC, float64(33))
		assert.GreaterOrEqual(t, report.HumidityPct, float64(55))
		assert.Less(t, report.HumidityPct, float64(95))
	}
}

func TestMockProvider_ForecastDayCount(t *testing.T) {
	provider := &MockProvider{}

	forecast, err := provider.Forecast(context.Background(), "An Giang", 5)
	assert.NoError(t, err)
	assert.Len(t, forecast.Days, 5)

	for _, day := range forecast.Days {
		assert.NotEmpty(t, day.Date)
		assert.NotEmpty(t, day.Condition)
		assert.Greater(t, day.TempMaxC, day.TempMinC, "nhiệt độ cao nhất phải lớn hơn thấp nhất")
	}
}

func TestWeatherService_ForecastClampsDays(t *testing.T) {
	service := NewWeatherServiceWithProvider(&MockProvider{})
	ctx := context.Background()

	// Vượt giới hạn: cắt xuống 7
	forecast, err := service.Forecast(ctx, "An Giang", 30)
	assert.NoError(t, err)
	assert.Len(t, forecast.Days, 7, "số ngày dự báo phải bị cắt xuống tối đa 7")

	// Không truyền days: mặc định 3
	forecast, err = service.Forecast(ctx, "An Giang", 0)
	assert.NoError(t, err)
	assert.Len(t, forecast.Days, 3)
}

func TestWeatherService_RequiresProvince(t *testing.T) {
	service := NewWeatherServiceWithProvider(&MockProvider{})
	ctx := context.Background()

	_, err := service.Current(ctx, "")
	assert.Error(t, err, "thiếu tỉnh phải bị từ chối")

	_, err = service.Forecast(ctx, "", 3)
	assert.Error(t, err, "thiếu tỉnh phải bị từ chối")
}
