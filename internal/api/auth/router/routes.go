// Package router đăng ký các route thuộc domain auth: đăng ký, đăng nhập,
// quản lý tài khoản và các route quản trị người dùng.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "agri_connect/internal/api/auth/handler"
	models "agri_connect/internal/api/auth/models"
	basehdl "agri_connect/internal/api/base/handler"
	"agri_connect/internal/api/middleware"
	apirouter "agri_connect/internal/api/router"
	"agri_connect/internal/global"
	"agri_connect/internal/mailer"
)

// Register đăng ký tất cả route auth lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	userHandler, err := authhdl.NewUserHandler(mailer.NewMailer(global.MongoDB_ServerConfig))
	if err != nil {
		return fmt.Errorf("tạo UserHandler: %w", err)
	}
	systemHandler := basehdl.NewSystemHandler()

	authMiddleware := middleware.AuthMiddleware()
	authedChain := []fiber.Handler{authMiddleware}
	adminChain := []fiber.Handler{authMiddleware, middleware.RequireRoles(models.RoleAdmin)}

	// Route công khai, không cần đăng nhập
	// POST /auth/register
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/register", nil, userHandler.HandleRegister)
	// POST /auth/login
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/login", nil, userHandler.HandleLogin)
	// POST /auth/request-password-reset: gửi mã 6 số qua email
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/request-password-reset", nil, userHandler.HandleRequestPasswordReset)
	// POST /auth/reset-password: đặt lại mật khẩu bằng mã
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/reset-password", nil, userHandler.HandleResetPassword)

	// Route yêu cầu đăng nhập
	// POST /auth/logout: tăng tokenVersion, thu hồi toàn bộ token cũ
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/logout", authedChain, userHandler.HandleLogout)
	// GET /auth/me
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "GET", "/me", authedChain, userHandler.HandleGetProfile)
	// PUT /auth/profile
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "PUT", "/profile", authedChain, userHandler.HandleUpdateProfile)
	// PUT /auth/change-password
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "PUT", "/change-password", authedChain, userHandler.HandleChangePassword)

	// Route quản trị (admin only)
	// POST /admin/user/block
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/user", "POST", "/block", adminChain, userHandler.HandleBlockUser)
	// POST /admin/user/unblock
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/user", "POST", "/unblock", adminChain, userHandler.HandleUnBlockUser)

	// Đọc danh sách user chỉ dành cho admin nên không dùng RegisterCRUDRoutes
	// (read route ở đó chỉ yêu cầu đăng nhập)
	apirouter.RegisterRouteWithMiddleware(v1, "/user", "GET", "/find", adminChain, userHandler.Find)
	apirouter.RegisterRouteWithMiddleware(v1, "/user", "GET", "/find-with-pagination", adminChain, userHandler.FindWithPagination)
	apirouter.RegisterRouteWithMiddleware(v1, "/user", "GET", "/find-by-id/:id", adminChain, userHandler.FindOneById)
	apirouter.RegisterRouteWithMiddleware(v1, "/user", "GET", "/count", adminChain, userHandler.CountDocuments)

	// GET /system/health: không yêu cầu đăng nhập
	apirouter.RegisterRouteWithMiddleware(v1, "/system", "GET", "/health", nil, systemHandler.HandleHealth)

	return nil
}
