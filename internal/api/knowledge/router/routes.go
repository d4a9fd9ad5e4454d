// Package router đăng ký các route thuộc domain knowledge.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "agri_connect/internal/api/auth/models"
	knowledgehdl "agri_connect/internal/api/knowledge/handler"
	"agri_connect/internal/api/middleware"
	apirouter "agri_connect/internal/api/router"
)

// Register đăng ký tất cả route knowledge lên v1.
// Đọc yêu cầu đăng nhập; ghi (insert/update/delete) chỉ officer/admin.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	knowledgeHandler, err := knowledgehdl.NewKnowledgeHandler()
	if err != nil {
		return fmt.Errorf("tạo KnowledgeHandler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	authedChain := []fiber.Handler{authMiddleware}
	officerChain := []fiber.Handler{authMiddleware, middleware.RequireRoles(authmodels.RoleOfficer, authmodels.RoleAdmin)}

	// CRUD chuẩn với cấu hình nội dung biên tập: tạo giới hạn officer/admin
	r.RegisterCRUDRoutes(v1, "/knowledge", knowledgeHandler, apirouter.CuratedContentConfig,
		authmodels.RoleOfficer, authmodels.RoleAdmin)

	// PUT /knowledge/:id: sửa bài viết, gồm cả gỡ publish (officer/admin)
	apirouter.RegisterRouteWithMiddleware(v1, "/knowledge", "PUT", "/:id", officerChain, knowledgeHandler.HandleUpdate)
	// DELETE /knowledge/:id: xóa bài viết (officer/admin)
	apirouter.RegisterRouteWithMiddleware(v1, "/knowledge", "DELETE", "/:id", officerChain, knowledgeHandler.HandleDelete)

	// GET /knowledge/list: danh sách đã publish. Query: category, crop, page, limit
	apirouter.RegisterRouteWithMiddleware(v1, "/knowledge", "GET", "/list", authedChain, knowledgeHandler.HandleList)
	// GET /knowledge/search: tìm kiếm full-text. Query: q, page, limit
	apirouter.RegisterRouteWithMiddleware(v1, "/knowledge", "GET", "/search", authedChain, knowledgeHandler.HandleSearch)
	// GET /knowledge/:id/view: chi tiết bài viết, tăng viewCount
	apirouter.RegisterRouteWithMiddleware(v1, "/knowledge", "GET", "/:id/view", authedChain, knowledgeHandler.HandleGetWithView)
	// POST /knowledge/:id/like: đảo trạng thái thích
	apirouter.RegisterRouteWithMiddleware(v1, "/knowledge", "POST", "/:id/like", authedChain, knowledgeHandler.HandleToggleLike)

	return nil
}
