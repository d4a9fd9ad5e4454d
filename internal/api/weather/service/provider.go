package weathersvc

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"time"

	"agri_connect/config"
	models "agri_connect/internal/api/weather/models"
	"agri_connect/internal/common"

	"github.com/sirupsen/logrus"
)

// NewProviderFromConfig chọn provider theo cấu hình: có đủ URL + key thì
// gọi dịch vụ thật, không thì dùng mock xác định theo tỉnh.
func NewProviderFromConfig(cfg *config.Configuration) WeatherProvider {
	if cfg != nil && cfg.WeatherAPIURL != "" && cfg.WeatherAPIKey != "" {
		return &httpProvider{
			apiURL: cfg.WeatherAPIURL,
			apiKey: cfg.WeatherAPIKey,
			client: &http.Client{Timeout: 10 * time.Second},
		}
	}
	logrus.Info("🌤️ [WEATHER] Chưa cấu hình WEATHER_API_URL/KEY, dùng mock provider")
	return &MockProvider{}
}

// httpProvider gọi dịch vụ thời tiết bên ngoài
type httpProvider struct {
	apiURL string
	apiKey string
	client *http.Client
}

func (p *httpProvider) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return common.NewError(common.ErrCodeUpstream, "Không tạo được request tới dịch vụ thời tiết", common.StatusBadGateway, err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return common.NewError(common.ErrCodeUpstream, "Dịch vụ thời tiết không phản hồi", common.StatusBadGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return common.NewError(common.ErrCodeUpstream, fmt.Sprintf("Dịch vụ thời tiết trả về mã %d", resp.StatusCode), common.StatusBadGateway, nil)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return common.NewError(common.ErrCodeUpstream, "Dữ liệu từ dịch vụ thời tiết không hợp lệ", common.StatusBadGateway, err)
	}
	return nil
}

func (p *httpProvider) Current(ctx context.Context, province string) (*models.WeatherReport, error) {
	var report models.WeatherReport
	url := fmt.Sprintf("%s/current?province=%s", p.apiURL, province)
	if err := p.get(ctx, url, &report); err != nil {
		return nil, err
	}
	report.Province = province
	report.Source = "external"
	return &report, nil
}

func (p *httpProvider) Forecast(ctx context.Context, province string, days int) (*models.Forecast, error) {
	var forecast models.Forecast
	url := fmt.Sprintf("%s/forecast?province=%s&days=%d", p.apiURL, province, days)
	if err := p.get(ctx, url, &forecast); err != nil {
		return nil, err
	}
	forecast.Province = province
	forecast.Source = "external"
	return &forecast, nil
}

// conditions là bộ trạng thái thời tiết của mock provider
var conditions = []string{"nắng", "nắng nhẹ", "nhiều mây", "mưa rào", "mưa dông"}

// MockProvider sinh dữ liệu xác định theo tỉnh + ngày: cùng tỉnh cùng ngày
// luôn trả về cùng kết quả, đủ cho môi trường dev/test.
type MockProvider struct{}

// seed sinh giá trị ổn định từ tỉnh + ngày
func (p *MockProvider) seed(province, date string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(province + "|" + date))
	return h.Sum32()
}

func (p *MockProvider) Current(ctx context.Context, province string) (*models.WeatherReport, error) {
	now := time.Now()
	s := p.seed(province, now.Format("2006-01-02"))

	return &models.WeatherReport{
		Province:    province,
		Condition:   conditions[s%uint32(len(conditions))],
		TempC:       22 + float64(s%12),       // 22..33
		HumidityPct: 55 + float64(s%40),       // 55..94
		WindKmh:     5 + float64(s%20),        // 5..24
		RainMm:      float64(s%80) / 10,       // 0..7.9
		ObservedAt:  now.UnixMilli(),
		Source:      "mock",
	}, nil
}

func (p *MockProvider) Forecast(ctx context.Context, province string, days int) (*models.Forecast, error) {
	now := time.Now()
	forecastDays := make([]models.ForecastDay, 0, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, i).Format("2006-01-02")
		s := p.seed(province, date)
		min := 20 + float64(s%8)
		forecastDays = append(forecastDays, models.ForecastDay{
			Date:      date,
			Condition: conditions[s%uint32(len(conditions))],
			TempMinC:  min,
			TempMaxC:  min + 5 + float64(s%6),
			RainMm:    float64(s%120) / 10,
		})
	}

	return &models.Forecast{
		Province: province,
		Days:     forecastDays,
		Source:   "mock",
	}, nil
}
