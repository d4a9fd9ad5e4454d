// Package router đăng ký các route thuộc domain market.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "agri_connect/internal/api/auth/models"
	markethdl "agri_connect/internal/api/market/handler"
	"agri_connect/internal/api/middleware"
	apirouter "agri_connect/internal/api/router"
)

// Register đăng ký tất cả route market lên v1.
// Đọc yêu cầu đăng nhập; ghi giá chỉ officer/admin.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	marketHandler, err := markethdl.NewMarketHandler()
	if err != nil {
		return fmt.Errorf("tạo MarketHandler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	authedChain := []fiber.Handler{authMiddleware}
	officerChain := []fiber.Handler{authMiddleware, middleware.RequireRoles(authmodels.RoleOfficer, authmodels.RoleAdmin)}

	// POST /market/price: ghi nhận giá (officer/admin)
	apirouter.RegisterRouteWithMiddleware(v1, "/market", "POST", "/price", officerChain, marketHandler.HandleRecordPrice)
	// GET /market/latest: giá mới nhất theo sản phẩm/chợ. Query: province, product
	apirouter.RegisterRouteWithMiddleware(v1, "/market", "GET", "/latest", authedChain, marketHandler.HandleLatestPrices)
	// GET /market/history: chuỗi giá. Query: product, province, fromAt, toAt, page, limit
	apirouter.RegisterRouteWithMiddleware(v1, "/market", "GET", "/history", authedChain, marketHandler.HandlePriceHistory)
	// GET /market/trend: xu hướng giá trong cửa sổ thời gian
	apirouter.RegisterRouteWithMiddleware(v1, "/market", "GET", "/trend", authedChain, marketHandler.HandleTrend)
	// POST /market/pull-feed: kéo giá từ feed bên ngoài (officer/admin). Query: province
	apirouter.RegisterRouteWithMiddleware(v1, "/market", "POST", "/pull-feed", officerChain, marketHandler.HandlePullFeed)

	return nil
}
