// Package router đăng ký các route thuộc domain consultation.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "agri_connect/internal/api/auth/models"
	consultationhdl "agri_connect/internal/api/consultation/handler"
	"agri_connect/internal/api/middleware"
	apirouter "agri_connect/internal/api/router"
)

// Register đăng ký tất cả route consultation lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	consultationHandler, err := consultationhdl.NewConsultationHandler()
	if err != nil {
		return fmt.Errorf("tạo ConsultationHandler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	authedChain := []fiber.Handler{authMiddleware}
	farmerChain := []fiber.Handler{authMiddleware, middleware.RequireRoles(authmodels.RoleFarmer)}
	officerChain := []fiber.Handler{authMiddleware, middleware.RequireRoles(authmodels.RoleOfficer, authmodels.RoleAdmin)}

	// POST /consultation: tạo phiên tư vấn (farmer)
	apirouter.RegisterRouteWithMiddleware(v1, "/consultation", "POST", "/", farmerChain, consultationHandler.HandleCreate)
	// GET /consultation: danh sách theo phạm vi role. Query: page, limit
	apirouter.RegisterRouteWithMiddleware(v1, "/consultation", "GET", "/", authedChain, consultationHandler.HandleList)
	// GET /consultation/:id
	apirouter.RegisterRouteWithMiddleware(v1, "/consultation", "GET", "/:id", authedChain, consultationHandler.HandleGet)
	// PUT /consultation/:id/status: chuyển trạng thái (officer/admin)
	apirouter.RegisterRouteWithMiddleware(v1, "/consultation", "PUT", "/:id/status", officerChain, consultationHandler.HandleTransition)
	// POST /consultation/:id/notes: thêm ghi chú
	apirouter.RegisterRouteWithMiddleware(v1, "/consultation", "POST", "/:id/notes", authedChain, consultationHandler.HandleAddNote)
	// POST /consultation/:id/feedback: đánh giá của nông dân (đúng một lần)
	apirouter.RegisterRouteWithMiddleware(v1, "/consultation", "POST", "/:id/feedback", farmerChain, consultationHandler.HandleSubmitFeedback)

	return nil
}
