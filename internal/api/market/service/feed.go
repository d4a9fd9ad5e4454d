package marketsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"time"

	"agri_connect/config"
	models "agri_connect/internal/api/market/models"
	"agri_connect/internal/common"

	"github.com/sirupsen/logrus"
)

// FeedPrice là một bản ghi giá trả về từ nguồn feed
type FeedPrice struct {
	Product    string  `json:"product"`
	Market     string  `json:"market"`
	Price      float64 `json:"price"`
	Unit       string  `json:"unit"`
	Source     string  `json:"-"`
	RecordedAt int64   `json:"recordedAt"`
}

// PriceFeedProvider trừu tượng hóa nguồn giá nông sản bên ngoài
type PriceFeedProvider interface {
	Fetch(ctx context.Context, province string) ([]FeedPrice, error)
}

// NewFeedProviderFromConfig chọn provider theo cấu hình: thiếu URL hoặc key
// thì âm thầm dùng mock, không bao giờ trả lỗi vì thiếu cấu hình.
func NewFeedProviderFromConfig(cfg *config.Configuration) PriceFeedProvider {
	if cfg != nil && cfg.MarketAPIURL != "" && cfg.MarketAPIKey != "" {
		return &httpFeedProvider{
			apiURL: cfg.MarketAPIURL,
			apiKey: cfg.MarketAPIKey,
			client: &http.Client{Timeout: 10 * time.Second},
		}
	}
	logrus.Info("📈 [MARKET] Chưa cấu hình MARKET_API_URL/KEY, dùng mock feed provider")
	return &MockFeedProvider{}
}

// httpFeedProvider kéo giá từ API bên ngoài
type httpFeedProvider struct {
	apiURL string
	apiKey string
	client *http.Client
}

func (p *httpFeedProvider) Fetch(ctx context.Context, province string) ([]FeedPrice, error) {
	url := fmt.Sprintf("%s/prices?province=%s", p.apiURL, province)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, common.NewError(common.ErrCodeUpstream, "Không tạo được request tới nguồn giá", common.StatusBadGateway, err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, common.NewError(common.ErrCodeUpstream, "Nguồn giá nông sản không phản hồi", common.StatusBadGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, common.NewError(common.ErrCodeUpstream, fmt.Sprintf("Nguồn giá nông sản trả về mã %d", resp.StatusCode), common.StatusBadGateway, nil)
	}

	var prices []FeedPrice
	if err := json.NewDecoder(resp.Body).Decode(&prices); err != nil {
		return nil, common.NewError(common.ErrCodeUpstream, "Dữ liệu từ nguồn giá không hợp lệ", common.StatusBadGateway, err)
	}
	for i := range prices {
		prices[i].Source = models.SourceExternal
		if prices[i].RecordedAt == 0 {
			prices[i].RecordedAt = time.Now().UnixMilli()
		}
	}
	return prices, nil
}

// mockProducts là danh mục sản phẩm cố định của mock provider
var mockProducts = []struct {
	Name      string
	BasePrice float64
	Unit      string
}{
	{"lúa", 8500, "kg"},
	{"cà phê", 120000, "kg"},
	{"hồ tiêu", 150000, "kg"},
	{"thanh long", 25000, "kg"},
	{"xoài", 30000, "kg"},
}

// MockFeedProvider sinh giá xác định theo tỉnh: cùng một tỉnh luôn trả về
// cùng một bộ giá trong cùng một giờ, đủ cho môi trường dev/test.
type MockFeedProvider struct{}

func (p *MockFeedProvider) Fetch(ctx context.Context, province string) ([]FeedPrice, error) {
	h := fnv.New32a()
	h.Write([]byte(province))
	seed := float64(h.Sum32()%200) / 1000 // 0..0.199

	now := time.Now()
	hourBucket := float64(now.Hour()%5) / 100

	prices := make([]FeedPrice, 0, len(mockProducts))
	for _, mp := range mockProducts {
		prices = append(prices, FeedPrice{
			Product:    mp.Name,
			Market:     "Chợ đầu mối " + province,
			Price:      mp.BasePrice * (1 + seed + hourBucket),
			Unit:       mp.Unit,
			Source:     models.SourceMock,
			RecordedAt: now.UnixMilli(),
		})
	}
	return prices, nil
}
