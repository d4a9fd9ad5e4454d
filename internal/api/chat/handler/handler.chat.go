// Package chathdl - handler hội thoại chat 1-1.
package chathdl

import (
	"fmt"

	basehdl "agri_connect/internal/api/base/handler"
	chatdto "agri_connect/internal/api/chat/dto"
	models "agri_connect/internal/api/chat/models"
	chatsvc "agri_connect/internal/api/chat/service"
	"agri_connect/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatHandler xử lý các request hội thoại chat
type ChatHandler struct {
	*basehdl.BaseHandler[models.Chat, chatdto.OpenChatInput, chatdto.OpenChatInput]
	chatService *chatsvc.ChatService
}

// NewChatHandler tạo instance mới của ChatHandler
func NewChatHandler() (*ChatHandler, error) {
	chatService, err := chatsvc.NewChatService()
	if err != nil {
		return nil, fmt.Errorf("failed to create chat service: %v", err)
	}
	return &ChatHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Chat, chatdto.OpenChatInput, chatdto.OpenChatInput](chatService),
		chatService: chatService,
	}, nil
}

// requesterID lấy ObjectID của user đang đăng nhập từ context
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

// chatIDFromParams lấy ObjectID của hội thoại từ path param
func (h *ChatHandler) chatIDFromParams(c fiber.Ctx) (primitive.ObjectID, error) {
	id := h.GetIDFromContext(c)
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "ID hội thoại không hợp lệ", common.StatusBadRequest, err)
	}
	return objID, nil
}

// HandleOpenChat mở (find-or-create) hội thoại với một người dùng khác
func (h *ChatHandler) HandleOpenChat(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requesterID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input chatdto.OpenChatInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		chat, err := h.chatService.OpenChat(c.Context(), userID, &input)
		h.HandleResponse(c, chat, err)
		return nil
	})
}

// HandleListChats trả về các hội thoại của user đang đăng nhập
func (h *ChatHandler) HandleListChats(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requesterID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		chats, err := h.chatService.ListChats(c.Context(), userID)
		h.HandleResponse(c, chats, err)
		return nil
	})
}

// HandleSendMessage gửi tin nhắn vào hội thoại
func (h *ChatHandler) HandleSendMessage(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requesterID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		chatID, err := h.chatIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input chatdto.SendMessageInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		message, err := h.chatService.SendMessage(c.Context(), chatID, userID, &input)
		h.HandleResponse(c, message, err)
		return nil
	})
}

// HandleMarkRead đánh dấu đã đọc toàn bộ tin nhắn của hội thoại
func (h *ChatHandler) HandleMarkRead(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requesterID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		chatID, err := h.chatIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		err = h.chatService.MarkRead(c.Context(), chatID, userID)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleListMessages trả về tin nhắn của hội thoại theo trang
func (h *ChatHandler) HandleListMessages(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requesterID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		chatID, err := h.chatIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		page, limit := h.ParsePagination(c)
		result, err := h.chatService.ListMessages(c.Context(), chatID, userID, page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}
