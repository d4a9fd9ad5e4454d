// Package router đăng ký các route thuộc domain product.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"agri_connect/internal/api/middleware"
	producthdl "agri_connect/internal/api/product/handler"
	apirouter "agri_connect/internal/api/router"
)

// Register đăng ký tất cả route product lên v1. Mọi route đều yêu cầu đăng
// nhập; quyền sửa/xóa (người bán hoặc admin) được kiểm tra trong service.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	productHandler, err := producthdl.NewProductHandler()
	if err != nil {
		return fmt.Errorf("tạo ProductHandler: %w", err)
	}

	authedChain := []fiber.Handler{middleware.AuthMiddleware()}

	// POST /product: đăng bán sản phẩm
	apirouter.RegisterRouteWithMiddleware(v1, "/product", "POST", "/", authedChain, productHandler.HandleCreate)
	// GET /product: danh sách. Query: category, province, minPrice, maxPrice, status, page, limit
	apirouter.RegisterRouteWithMiddleware(v1, "/product", "GET", "/", authedChain, productHandler.HandleList)
	// GET /product/search: tìm theo tên. Query: q, page, limit
	apirouter.RegisterRouteWithMiddleware(v1, "/product", "GET", "/search", authedChain, productHandler.HandleSearch)
	// GET /product/:id: chi tiết sản phẩm
	apirouter.RegisterRouteWithMiddleware(v1, "/product", "GET", "/:id", authedChain, productHandler.HandleGet)
	// PUT /product/:id: sửa sản phẩm
	apirouter.RegisterRouteWithMiddleware(v1, "/product", "PUT", "/:id", authedChain, productHandler.HandleUpdate)
	// DELETE /product/:id: xóa sản phẩm
	apirouter.RegisterRouteWithMiddleware(v1, "/product", "DELETE", "/:id", authedChain, productHandler.HandleDelete)
	// POST /product/:id/mark-sold: đánh dấu đã bán
	apirouter.RegisterRouteWithMiddleware(v1, "/product", "POST", "/:id/mark-sold", authedChain, productHandler.HandleMarkSold)

	return nil
}
