// Package chatsvc - service hội thoại chat 1-1.
package chatsvc

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	basemodels "agri_connect/internal/api/base/models"
	basesvc "agri_connect/internal/api/base/service"
	chatdto "agri_connect/internal/api/chat/dto"
	models "agri_connect/internal/api/chat/models"
	outboxmodels "agri_connect/internal/api/outbox/models"
	outboxsvc "agri_connect/internal/api/outbox/service"
	"agri_connect/internal/common"
	"agri_connect/internal/global"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChatService là cấu trúc chứa các phương thức liên quan đến hội thoại chat
type ChatService struct {
	*basesvc.BaseServiceMongoImpl[models.Chat]
	messageService *basesvc.BaseServiceMongoImpl[models.ChatMessage]
	outboxService  *outboxsvc.OutboxService
}

// NewChatService tạo mới ChatService
func NewChatService() (*ChatService, error) {
	chatCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Chats)
	if !exist {
		return nil, fmt.Errorf("failed to get chats collection: %v", common.ErrNotFound)
	}
	messageCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ChatMessages)
	if !exist {
		return nil, fmt.Errorf("failed to get chat messages collection: %v", common.ErrNotFound)
	}
	outboxService, err := outboxsvc.NewOutboxService()
	if err != nil {
		return nil, err
	}

	return &ChatService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Chat](chatCollection),
		messageService:       basesvc.NewBaseServiceMongo[models.ChatMessage](messageCollection),
		outboxService:        outboxService,
	}, nil
}

// sortParticipants chuẩn hóa cặp participant theo hex tăng dần
// để (a,b) và (b,a) trỏ về cùng một document
func sortParticipants(a, b primitive.ObjectID) []primitive.ObjectID {
	pair := []primitive.ObjectID{a, b}
	sort.Slice(pair, func(i, j int) bool {
		return pair[i].Hex() < pair[j].Hex()
	})
	return pair
}

// isParticipant kiểm tra userID có thuộc hội thoại không
func isParticipant(chat *models.Chat, userID primitive.ObjectID) bool {
	for _, p := range chat.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OpenChat tìm hoặc tạo hội thoại giữa hai người dùng
func (s *ChatService) OpenChat(ctx context.Context, userID primitive.ObjectID, input *chatdto.OpenChatInput) (*models.Chat, error) {
	otherID, err := primitive.ObjectIDFromHex(input.UserID)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "UserID không hợp lệ", common.StatusBadRequest, err)
	}
	if otherID == userID {
		return nil, common.NewError(common.ErrCodeValidationInput, "Không thể tự chat với chính mình", common.StatusBadRequest, nil)
	}

	participants := sortParticipants(userID, otherID)
	chat, err := s.Upsert(ctx, bson.M{"participants": participants}, &basesvc.UpdateData{
		SetOnInsert: map[string]interface{}{
			"participants": participants,
			"unread":       map[string]int64{},
		},
	})
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// ListChats trả về các hội thoại của một người dùng, mới nhất trước
func (s *ChatService) ListChats(ctx context.Context, userID primitive.ObjectID) ([]models.Chat, error) {
	opts := options.Find().SetSort(bson.D{{Key: "lastMessageAt", Value: -1}})
	return s.Find(ctx, bson.M{"participants": userID}, opts)
}

// SendMessage gửi tin nhắn vào hội thoại. Người gửi phải là participant.
// Ghi outbox event chat.message để relay phát lên room chat:<id>.
func (s *ChatService) SendMessage(ctx context.Context, chatID, senderID primitive.ObjectID, input *chatdto.SendMessageInput) (*models.ChatMessage, error) {
	chat, err := s.FindOneById(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !isParticipant(&chat, senderID) {
		return nil, common.ErrForbidden
	}

	msgType := input.Type
	if msgType == "" {
		msgType = models.MessageTypeText
	}

	message, err := s.messageService.InsertOne(ctx, models.ChatMessage{
		ChatID:   chatID,
		SenderID: senderID,
		Content:  input.Content,
		Type:     msgType,
		ReadBy:   []primitive.ObjectID{senderID},
	})
	if err != nil {
		return nil, err
	}

	// Cập nhật lastMessage và tăng unread cho participant còn lại
	chatUpdate := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"lastMessage":   input.Content,
			"lastMessageAt": time.Now().UnixMilli(),
		},
		Inc: map[string]interface{}{},
	}
	for _, p := range chat.Participants {
		if p != senderID {
			chatUpdate.Inc["unread."+p.Hex()] = int64(1)
		}
	}
	if _, err := s.UpdateById(ctx, chatID, chatUpdate); err != nil {
		logrus.Errorf("❌ [CHAT] Cập nhật lastMessage thất bại: %v", err)
	}

	if err := s.outboxService.Emit(ctx, outboxmodels.TopicChatMessage, "chat:"+chatID.Hex(), map[string]interface{}{
		"messageId": message.ID.Hex(),
		"chatId":    chatID.Hex(),
		"senderId":  senderID.Hex(),
		"content":   message.Content,
		"type":      message.Type,
		"createdAt": message.CreatedAt,
	}); err != nil {
		logrus.Errorf("❌ [CHAT] Ghi outbox chat.message thất bại: %v", err)
	}

	return &message, nil
}

// MarkRead đánh dấu đã đọc toàn bộ tin nhắn của hội thoại.
// Ghi outbox event chat.read để participant còn lại thấy trạng thái đã đọc.
func (s *ChatService) MarkRead(ctx context.Context, chatID, userID primitive.ObjectID) error {
	chat, err := s.FindOneById(ctx, chatID)
	if err != nil {
		return err
	}
	if !isParticipant(&chat, userID) {
		return common.ErrForbidden
	}

	// Thêm user vào readBy của các tin chưa đọc do người khác gửi
	_, err = s.messageService.UpdateMany(ctx, bson.M{
		"chatId":   chatID,
		"senderId": bson.M{"$ne": userID},
		"readBy":   bson.M{"$ne": userID},
	}, &basesvc.UpdateData{
		AddToSet: map[string]interface{}{"readBy": userID},
	}, nil)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return err
	}

	// Reset bộ đếm unread của user
	if _, err := s.UpdateById(ctx, chatID, &basesvc.UpdateData{
		Set: map[string]interface{}{"unread." + userID.Hex(): int64(0)},
	}); err != nil {
		return err
	}

	if err := s.outboxService.Emit(ctx, outboxmodels.TopicChatRead, "chat:"+chatID.Hex(), map[string]interface{}{
		"chatId": chatID.Hex(),
		"userId": userID.Hex(),
		"readAt": time.Now().UnixMilli(),
	}); err != nil {
		logrus.Errorf("❌ [CHAT] Ghi outbox chat.read thất bại: %v", err)
	}
	return nil
}

// ListMessages trả về tin nhắn của hội thoại theo trang, mới nhất trước.
// Người đọc phải là participant.
func (s *ChatService) ListMessages(ctx context.Context, chatID, userID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[models.ChatMessage], error) {
	chat, err := s.FindOneById(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !isParticipant(&chat, userID) {
		return nil, common.ErrForbidden
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.messageService.FindWithPagination(ctx, bson.M{"chatId": chatID}, page, limit, opts)
}
