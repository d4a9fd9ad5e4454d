// Package markethdl - handler giá nông sản.
package markethdl

import (
	"fmt"

	basehdl "agri_connect/internal/api/base/handler"
	marketdto "agri_connect/internal/api/market/dto"
	models "agri_connect/internal/api/market/models"
	marketsvc "agri_connect/internal/api/market/service"
	"agri_connect/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MarketHandler xử lý các request giá nông sản
type MarketHandler struct {
	*basehdl.BaseHandler[models.MarketPrice, marketdto.RecordPriceInput, marketdto.RecordPriceInput]
	marketService *marketsvc.MarketService
}

// NewMarketHandler tạo instance mới của MarketHandler
func NewMarketHandler() (*MarketHandler, error) {
	marketService, err := marketsvc.NewMarketService()
	if err != nil {
		return nil, fmt.Errorf("failed to create market service: %v", err)
	}
	return &MarketHandler{
		BaseHandler:   basehdl.NewBaseHandler[models.MarketPrice, marketdto.RecordPriceInput, marketdto.RecordPriceInput](marketService),
		marketService: marketService,
	}, nil
}

// requesterID lấy ObjectID của user đang đăng nhập
func requesterID(c fiber.Ctx) (primitive.ObjectID, error) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return primitive.NilObjectID, common.ErrTokenMissing
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err)
	}
	return objID, nil
}

// HandleRecordPrice ghi nhận bản ghi giá mới (officer/admin)
func (h *MarketHandler) HandleRecordPrice(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requesterID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input marketdto.RecordPriceInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		price, err := h.marketService.RecordPrice(c.Context(), userID, &input)
		h.HandleResponse(c, price, err)
		return nil
	})
}

// HandleLatestPrices giá mới nhất theo từng sản phẩm/chợ. Query: province, product
func (h *MarketHandler) HandleLatestPrices(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		prices, err := h.marketService.LatestPrices(c.Context(), c.Query("province"), c.Query("product"))
		h.HandleResponse(c, prices, err)
		return nil
	})
}

// HandlePriceHistory chuỗi giá theo trang. Query: product, province, fromAt, toAt, page, limit
func (h *MarketHandler) HandlePriceHistory(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var query marketdto.PriceHistoryQuery
		if err := c.Bind().Query(&query); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Tham số truy vấn không hợp lệ", common.StatusBadRequest, err))
			return nil
		}
		page, limit := h.ParsePagination(c)
		result, err := h.marketService.PriceHistory(c.Context(), &query, page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleTrend phần trăm thay đổi giá trong cửa sổ thời gian. Query: product, province, fromAt, toAt
func (h *MarketHandler) HandleTrend(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var query marketdto.PriceHistoryQuery
		if err := c.Bind().Query(&query); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Tham số truy vấn không hợp lệ", common.StatusBadRequest, err))
			return nil
		}
		trend, err := h.marketService.Trend(c.Context(), &query)
		h.HandleResponse(c, trend, err)
		return nil
	})
}

// HandlePullFeed kéo giá từ feed bên ngoài (officer/admin). Query: province
func (h *MarketHandler) HandlePullFeed(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		province := c.Query("province")
		if province == "" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Thiếu tên tỉnh", common.StatusBadRequest, nil))
			return nil
		}
		prices, err := h.marketService.PullFeed(c.Context(), province)
		h.HandleResponse(c, prices, err)
		return nil
	})
}
