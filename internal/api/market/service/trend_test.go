package marketsvc

import (
	"context"
	"testing"

	models "agri_connect/internal/api/market/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeTrend_RisingPrices(t *testing.T) {
	prices := []models.MarketPrice{
		{Product: "lúa", Province: "An Giang", Price: 8000, RecordedAt: 1000},
		{Product: "lúa", Province: "An Giang", Price: 8400, RecordedAt: 2000},
		{Product: "lúa", Province: "An Giang", Price: 8800, RecordedAt: 3000},
	}

	trend := ComputeTrend("lúa", "An Giang", prices)

	assert.Equal(t, float64(8000), trend.FirstPrice)
	assert.Equal(t, float64(8800), trend.LastPrice)
	assert.InDelta(t, 10.0, trend.ChangePercent, 0.001, "8000 lên 8800 là tăng 10%%")
	assert.Equal(t, int64(3), trend.Points)
	assert.Equal(t, int64(1000), trend.FromAt)
	assert.Equal(t, int64(3000), trend.ToAt)
}

func TestComputeTrend_FallingPrices(t *testing.T) {
	prices := []models.MarketPrice{
		{Price: 10000, RecordedAt: 1000},
		{Price: 9000, RecordedAt: 2000},
	}

	trend := ComputeTrend("cà phê", "Đắk Lắk", prices)

	assert.InDelta(t, -10.0, trend.ChangePercent, 0.001)
	assert.Equal(t, int64(2), trend.Points)
}

func TestComputeTrend_SinglePoint(t *testing.T) {
	prices := []models.MarketPrice{
		{Price: 8500, RecordedAt: 1000},
	}

	trend := ComputeTrend("lúa", "An Giang", prices)

	assert.Equal(t, float64(8500), trend.FirstPrice)
	assert.Equal(t, float64(8500), trend.LastPrice)
	assert.Equal(t, float64(0), trend.ChangePercent)
	assert.Equal(t, int64(1), trend.Points)
}

func TestComputeTrend_ZeroFirstPrice(t *testing.T) {
	prices := []models.MarketPrice{
		{Price: 0, RecordedAt: 1000},
		{Price: 8500, RecordedAt: 2000},
	}

	trend := ComputeTrend("lúa", "An Giang", prices)

	assert.Equal(t, float64(0), trend.ChangePercent, "giá đầu bằng 0 không được chia cho 0")
}

func TestMockFeedProvider_Deterministic(t *testing.T) {
	provider := &MockFeedProvider{}
	ctx := context.Background()

	first, err := provider.Fetch(ctx, "An Giang")
	assert.NoError(t, err)
	second, err := provider.Fetch(ctx, "An Giang")
	assert.NoError(t, err)

	assert.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Product, second[i].Product)
		assert.Equal(t, first[i].Price, second[i].Price, "cùng tỉnh trong cùng giờ phải trả về cùng giá")
	}
}

func TestMockFeedProvider_VariesByProvince(t *testing.T) {
	provider := &MockFeedProvider{}
	ctx := context.Background()

	anGiang, err := provider.Fetch(ctx, "An Giang")
	assert.NoError(t, err)
	dakLak, err := provider.Fetch(ctx, "Đắk Lắk")
	assert.NoError(t, err)

	different := false
	for i := range anGiang {
		if anGiang[i].Price != dakLak[i].Price {
			different = true
			break
		}
	}
	assert.True(t, different, "hai tỉnh khác nhau phải có bộ giá khác nhau")
}

func TestMockFeedProvider_RecordShape(t *testing.T) {
	provider := &MockFeedProvider{}

	prices, err := provider.Fetch(context.Background(), "An Giang")
	assert.NoError(t, err)
	assert.NotEmpty(t, prices)

	for _, p := range prices {
		assert.NotEmpty(t, p.Product)
		assert.NotEmpty(t, p.Market)
		assert.NotEmpty(t, p.Unit)
		assert.Greater(t, p.Price, float64(0))
		assert.Equal(t, models.SourceMock, p.Source)
		assert.Greater(t, p.RecordedAt, int64(0))
	}
}
