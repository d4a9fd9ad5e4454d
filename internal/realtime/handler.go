package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	authsvc "agri_connect/internal/api/auth/service"
	chatdto "agri_connect/internal/api/chat/dto"
	chatsvc "agri_connect/internal/api/chat/service"
	"agri_connect/internal/common"
	"agri_connect/internal/global"
	"agri_connect/internal/utility"

	"github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler xử lý handshake websocket và các frame từ client.
// send-message đi qua chatService nên socket và REST hội tụ về một đường:
// mutation → outbox → relay → hub.
type Handler struct {
	hub         *Hub
	chatService *chatsvc.ChatService
	userService *authsvc.UserService
	upgrader    websocket.FastHTTPUpgrader
}

// NewHandler tạo realtime handler
func NewHandler(hub *Hub) (*Handler, error) {
	chatService, err := chatsvc.NewChatService()
	if err != nil {
		return nil, fmt.Errorf("failed to create chat service: %v", err)
	}
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	return &Handler{
		hub:         hub,
		chatService: chatService,
		userService: userService,
		upgrader: websocket.FastHTTPUpgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(ctx *fasthttp.RequestCtx) bool { return true },
		},
	}, nil
}

// verifyToken xác thực token theo đúng luật của REST: chữ ký, hạn,
// tokenVersion và trạng thái khóa tài khoản
func (h *Handler) verifyToken(ctx context.Context, token string) (userID, role string, err error) {
	if token == "" {
		return "", "", common.ErrTokenMissing
	}
	claims, err := utility.ParseToken(global.MongoDB_ServerConfig.JwtSecret, token)
	if err != nil {
		return "", "", err
	}
	user, err := h.userService.FindOneById(ctx, utility.String2ObjectID(claims.UserID))
	if err != nil {
		return "", "", common.ErrTokenInvalid
	}
	if claims.TokenVersion != user.TokenVersion {
		return "", "", common.ErrTokenRevoked
	}
	if user.IsBlock {
		return "", "", common.ErrAccountBlocked
	}
	return claims.UserID, user.Role, nil
}

// HandleUpgrade xác thực ?token= rồi upgrade kết nối.
// Token hỏng hoặc hết hạn bị từ chối trước khi client join bất kỳ room nào.
func (h *Handler) HandleUpgrade(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	userID, role, err := h.verifyToken(ctx, c.Query("token"))
	cancel()
	if err != nil {
		logrus.Warnf("⚠️ [REALTIME] Từ chối handshake: %v", err)
		return c.Status(common.StatusUnauthorized).JSON(fiber.Map{
			"code":    common.ErrCodeAuthToken.Code,
			"message": "Token không hợp lệ",
			"status":  "error",
		})
	}

	return h.upgrader.Upgrade(c.Context(), func(conn *websocket.Conn) {
		client := NewClient(h.hub, conn, userID, role, h.handleFrame)
		h.hub.Register(client)

		go client.WritePump()
		client.ReadPump()
	})
}

// handleFrame xử lý một frame {event, data} từ client
func (h *Handler) handleFrame(client *Client, frame *InboundFrame) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch frame.Event {
	case "join-chat":
		h.handleJoinChat(ctx, client, frame.Data)
	case "leave-chat":
		var data struct {
			ChatID string `json:"chatId"`
		}
		if json.Unmarshal(frame.Data, &data) == nil && data.ChatID != "" {
			h.hub.LeaveRoom(client, "chat:"+data.ChatID)
		}
	case "send-message":
		h.handleSendMessage(ctx, client, frame.Data)
	case "typing-stop":
		h.handleTypingStop(client, frame.Data)
	case "message-read":
		h.handleMessageRead(ctx, client, frame.Data)
	case "join-market":
		var data struct {
			Province string `json:"province"`
		}
		if json.Unmarshal(frame.Data, &data) == nil && data.Province != "" {
			h.hub.JoinRoom(client, "market:"+data.Province)
		}
	case "subscribe-price-alert":
		var sub PriceAlertSub
		if json.Unmarshal(frame.Data, &sub) == nil && sub.Product != "" {
			h.hub.SubscribePriceAlert(client, sub)
		}
	default:
		client.Send("error", map[string]string{"message": "Event không được hỗ trợ: " + frame.Event})
	}
}

// handleJoinChat kiểm tra client là participant trước khi join room chat
func (h *Handler) handleJoinChat(ctx context.Context, client *Client, raw json.RawMessage) {
	var data struct {
		ChatID string `json:"chatId"`
	}
	if err := json.Unmarshal(raw, &data); err != nil || data.ChatID == "" {
		client.Send("error", map[string]string{"message": "Thiếu chatId"})
		return
	}

	chatID, err := primitive.ObjectIDFromHex(data.ChatID)
	if err != nil {
		client.Send("error", map[string]string{"message": "chatId không hợp lệ"})
		return
	}
	// Membership kiểm tra qua ListMessages logic: dùng service để xác nhận participant
	if _, err := h.chatService.ListMessages(ctx, chatID, utility.String2ObjectID(client.userID), 1, 1); err != nil {
		client.Send("error", map[string]string{"message": "Không có quyền vào hội thoại này"})
		return
	}

	h.hub.JoinRoom(client, "chat:"+data.ChatID)
	client.Send("joined", map[string]string{"room": "chat:" + data.ChatID})
}

// handleSendMessage chuyển frame gửi tin về chatService: cùng đường với REST
func (h *Handler) handleSendMessage(ctx context.Context, client *Client, raw json.RawMessage) {
	var data struct {
		ChatID  string `json:"chatId"`
		Content string `json:"content"`
		Type    string `json:"type"`
	}
	if err := json.Unmarshal(raw, &data); err != nil || data.ChatID == "" || data.Content == "" {
		client.Send("error", map[string]string{"message": "Thiếu chatId hoặc content"})
		return
	}

	chatID, err := primitive.ObjectIDFromHex(data.ChatID)
	if err != nil {
		client.Send("error", map[string]string{"message": "chatId không hợp lệ"})
		return
	}

	_, err = h.chatService.SendMessage(ctx, chatID, utility.String2ObjectID(client.userID), &chatdto.SendMessageInput{
		Content: data.Content,
		Type:    data.Type,
	})
	if err != nil {
		client.Send("error", map[string]string{"message": "Gửi tin nhắn thất bại"})
	}
	// Không gửi trực tiếp: tin sẽ về qua outbox → relay → room chat:<id>
}

// handleTypingStop phát trạng thái dừng gõ cho room chat, không qua outbox
// vì là tín hiệu tức thời không cần bền vững
func (h *Handler) handleTypingStop(client *Client, raw json.RawMessage) {
	var data struct {
		ChatID string `json:"chatId"`
	}
	if err := json.Unmarshal(raw, &data); err != nil || data.ChatID == "" {
		return
	}
	h.hub.BroadcastEvent("chat:"+data.ChatID, "typing-stop", map[string]string{
		"chatId": data.ChatID,
		"userId": client.userID,
	})
}

// handleMessageRead chuyển frame đánh dấu đã đọc về chatService
func (h *Handler) handleMessageRead(ctx context.Context, client *Client, raw json.RawMessage) {
	var data struct {
		ChatID string `json:"chatId"`
	}
	if err := json.Unmarshal(raw, &data); err != nil || data.ChatID == "" {
		return
	}
	chatID, err := primitive.ObjectIDFromHex(data.ChatID)
	if err != nil {
		return
	}
	if err := h.chatService.MarkRead(ctx, chatID, utility.String2ObjectID(client.userID)); err != nil {
		client.Send("error", map[string]string{"message": "Đánh dấu đã đọc thất bại"})
	}
}
