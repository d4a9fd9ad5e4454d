package realtime

import (
	"github.com/gofiber/fiber/v3"

	basehdl "agri_connect/internal/api/base/handler"
	"agri_connect/internal/api/middleware"
	apirouter "agri_connect/internal/api/router"
)

// RouteRegister trả về hàm đăng ký route cho realtime.
// Nhận hub từ caller vì hub được tạo và chạy ở main trước khi setup route.
func RouteRegister(hub *Hub) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		return registerRoutes(v1, hub)
	}
}

func registerRoutes(v1 fiber.Router, hub *Hub) error {
	handler, err := NewHandler(hub)
	if err != nil {
		return err
	}

	authMiddleware := middleware.AuthMiddleware()
	authedChain := []fiber.Handler{authMiddleware}

	// Endpoint websocket: tự xác thực qua ?token= nên không đi qua authMiddleware
	apirouter.RegisterRouteWithMiddleware(v1, "/realtime", "GET", "/ws", nil, handler.HandleUpgrade)

	// Presence chỉ đọc qua REST, trạng thái ghi do hub quản lý
	apirouter.RegisterRouteWithMiddleware(v1, "/realtime", "GET", "/presence/:id", authedChain, func(c fiber.Ctx) error {
		userID := c.Params("id")
		basehdl.WriteResponse(c, fiber.Map{
			"userId": userID,
			"online": hub.IsOnline(userID),
		}, nil)
		return nil
	})
	apirouter.RegisterRouteWithMiddleware(v1, "/realtime", "GET", "/online", authedChain, func(c fiber.Ctx) error {
		basehdl.WriteResponse(c, fiber.Map{"users": hub.OnlineUsers()}, nil)
		return nil
	})

	return nil
}
