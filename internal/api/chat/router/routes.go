// Package router đăng ký các route thuộc domain chat.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	chathdl "agri_connect/internal/api/chat/handler"
	"agri_connect/internal/api/middleware"
	apirouter "agri_connect/internal/api/router"
)

// Register đăng ký tất cả route chat lên v1. Mọi route đều yêu cầu đăng nhập.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	chatHandler, err := chathdl.NewChatHandler()
	if err != nil {
		return fmt.Errorf("tạo ChatHandler: %w", err)
	}

	authedChain := []fiber.Handler{middleware.AuthMiddleware()}

	// POST /chat/open: find-or-create hội thoại với người dùng khác
	apirouter.RegisterRouteWithMiddleware(v1, "/chat", "POST", "/open", authedChain, chatHandler.HandleOpenChat)
	// GET /chat/list: danh sách hội thoại của user
	apirouter.RegisterRouteWithMiddleware(v1, "/chat", "GET", "/list", authedChain, chatHandler.HandleListChats)
	// GET /chat/:id/messages: tin nhắn theo trang. Query: page, limit
	apirouter.RegisterRouteWithMiddleware(v1, "/chat", "GET", "/:id/messages", authedChain, chatHandler.HandleListMessages)
	// POST /chat/:id/messages: gửi tin nhắn
	apirouter.RegisterRouteWithMiddleware(v1, "/chat", "POST", "/:id/messages", authedChain, chatHandler.HandleSendMessage)
	// POST /chat/:id/read: đánh dấu đã đọc
	apirouter.RegisterRouteWithMiddleware(v1, "/chat", "POST", "/:id/read", authedChain, chatHandler.HandleMarkRead)

	return nil
}
