// Package marketsvc - service giá nông sản.
package marketsvc

import (
	"context"
	"fmt"
	"time"

	basemodels "agri_connect/internal/api/base/models"
	basesvc "agri_connect/internal/api/base/service"
	marketdto "agri_connect/internal/api/market/dto"
	models "agri_connect/internal/api/market/models"
	outboxmodels "agri_connect/internal/api/outbox/models"
	outboxsvc "agri_connect/internal/api/outbox/service"
	"agri_connect/internal/common"
	"agri_connect/internal/global"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MarketService là cấu trúc chứa các phương thức liên quan đến giá nông sản
type MarketService struct {
	*basesvc.BaseServiceMongoImpl[models.MarketPrice]
	outboxService *outboxsvc.OutboxService
	feedProvider  PriceFeedProvider
}

// NewMarketService tạo mới MarketService. Provider feed được chọn theo cấu
// hình: có MARKET_API_URL + key thì dùng feed thật, không thì mock.
func NewMarketService() (*MarketService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.MarketPrices)
	if !exist {
		return nil, fmt.Errorf("failed to get market prices collection: %v", common.ErrNotFound)
	}
	outboxService, err := outboxsvc.NewOutboxService()
	if err != nil {
		return nil, err
	}

	return &MarketService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.MarketPrice](collection),
		outboxService:        outboxService,
		feedProvider:         NewFeedProviderFromConfig(global.MongoDB_ServerConfig),
	}, nil
}

// emitPriceEvent ghi outbox market.price cho room market:<province>
func (s *MarketService) emitPriceEvent(ctx context.Context, price *models.MarketPrice) {
	if err := s.outboxService.Emit(ctx, outboxmodels.TopicMarketPrice, "market:"+price.Province, map[string]interface{}{
		"priceId":    price.ID.Hex(),
		"product":    price.Product,
		"market":     price.Market,
		"province":   price.Province,
		"price":      price.Price,
		"unit":       price.Unit,
		"source":     price.Source,
		"recordedAt": price.RecordedAt,
	}); err != nil {
		logrus.Errorf("❌ [MARKET] Ghi outbox market.price thất bại: %v", err)
	}
}

// RecordPrice ghi nhận một bản ghi giá mới (officer/admin).
// Bản ghi là append-only, mỗi bản ghi sinh một outbox event market.price.
func (s *MarketService) RecordPrice(ctx context.Context, recordedBy primitive.ObjectID, input *marketdto.RecordPriceInput) (*models.MarketPrice, error) {
	recordedAt := input.RecordedAt
	if recordedAt == 0 {
		recordedAt = time.Now().UnixMilli()
	}

	price := models.MarketPrice{
		Product:    input.Product,
		Market:     input.Market,
		Province:   input.Province,
		Price:      input.Price,
		Unit:       input.Unit,
		Source:     models.SourceOfficer,
		RecordedAt: recordedAt,
	}
	created, err := s.InsertOne(ctx, price)
	if err != nil {
		return nil, err
	}

	s.emitPriceEvent(ctx, &created)
	return &created, nil
}

// LatestPrices trả về bản ghi mới nhất của mỗi cặp sản phẩm/chợ,
// lọc tùy chọn theo province và product
func (s *MarketService) LatestPrices(ctx context.Context, province, product string) ([]models.MarketPrice, error) {
	match := bson.M{}
	if province != "" {
		match["province"] = province
	}
	if product != "" {
		match["product"] = product
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$sort": bson.M{"recordedAt": -1}},
		{"$group": bson.M{
			"_id":    bson.M{"product": "$product", "market": "$market", "province": "$province"},
			"latest": bson.M{"$first": "$$ROOT"},
		}},
		{"$replaceRoot": bson.M{"newRoot": "$latest"}},
		{"$sort": bson.M{"product": 1}},
	}

	cursor, err := s.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	prices := make([]models.MarketPrice, 0)
	if err := cursor.All(ctx, &prices); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return prices, nil
}

// PriceHistory trả về chuỗi giá của một sản phẩm theo trang, cũ nhất trước
func (s *MarketService) PriceHistory(ctx context.Context, query *marketdto.PriceHistoryQuery, page, limit int64) (*basemodels.PaginateResult[models.MarketPrice], error) {
	if query.Product == "" {
		return nil, common.NewError(common.ErrCodeValidationInput, "Thiếu tên sản phẩm", common.StatusBadRequest, nil)
	}

	filter := bson.M{"product": query.Product}
	if query.Province != "" {
		filter["province"] = query.Province
	}
	timeRange := bson.M{}
	if query.FromAt > 0 {
		timeRange["$gte"] = query.FromAt
	}
	if query.ToAt > 0 {
		timeRange["$lte"] = query.ToAt
	}
	if len(timeRange) > 0 {
		filter["recordedAt"] = timeRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "recordedAt", Value: 1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// Trend tính phần trăm thay đổi giá giữa điểm đầu và điểm cuối của một
// cửa sổ thời gian
func (s *MarketService) Trend(ctx context.Context, query *marketdto.PriceHistoryQuery) (*models.PriceTrend, error) {
	if query.Product == "" {
		return nil, common.NewError(common.ErrCodeValidationInput, "Thiếu tên sản phẩm", common.StatusBadRequest, nil)
	}

	filter := bson.M{"product": query.Product}
	if query.Province != "" {
		filter["province"] = query.Province
	}
	timeRange := bson.M{}
	if query.FromAt > 0 {
		timeRange["$gte"] = query.FromAt
	}
	if query.ToAt > 0 {
		timeRange["$lte"] = query.ToAt
	}
	if len(timeRange) > 0 {
		filter["recordedAt"] = timeRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "recordedAt", Value: 1}})
	prices, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	if len(prices) == 0 {
		return nil, common.ErrNotFound
	}

	return ComputeTrend(query.Product, query.Province, prices), nil
}

// ComputeTrend tính xu hướng từ chuỗi giá đã sắp theo recordedAt tăng dần
func ComputeTrend(product, province string, prices []models.MarketPrice) *models.PriceTrend {
	first := prices[0]
	last := prices[len(prices)-1]

	changePercent := float64(0)
	if first.Price != 0 {
		changePercent = (last.Price - first.Price) / first.Price * 100
	}

	return &models.PriceTrend{
		Product:       product,
		Province:      province,
		FirstPrice:    first.Price,
		LastPrice:     last.Price,
		ChangePercent: changePercent,
		Points:        int64(len(prices)),
		FromAt:        first.RecordedAt,
		ToAt:          last.RecordedAt,
	}
}

// PullFeed kéo giá từ feed bên ngoài (hoặc mock khi chưa cấu hình key)
// và ghi vào chuỗi giá. Mỗi bản ghi sinh một outbox event market.price.
func (s *MarketService) PullFeed(ctx context.Context, province string) ([]models.MarketPrice, error) {
	feedPrices, err := s.feedProvider.Fetch(ctx, province)
	if err != nil {
		return nil, err
	}

	inserted := make([]models.MarketPrice, 0, len(feedPrices))
	for _, fp := range feedPrices {
		price := models.MarketPrice{
			Product:    fp.Product,
			Market:     fp.Market,
			Province:   province,
			Price:      fp.Price,
			Unit:       fp.Unit,
			Source:     fp.Source,
			RecordedAt: fp.RecordedAt,
		}
		created, err := s.InsertOne(ctx, price)
		if err != nil {
			logrus.Errorf("❌ [MARKET] Ghi bản ghi giá từ feed thất bại: %v", err)
			continue
		}
		s.emitPriceEvent(ctx, &created)
		inserted = append(inserted, created)
	}
	return inserted, nil
}
