// Package outboxsvc - service ghi và relay các OutboxEvent.
package outboxsvc

import (
	"context"
	"fmt"
	"time"

	models "agri_connect/internal/api/outbox/models"
	basesvc "agri_connect/internal/api/base/service"
	"agri_connect/internal/common"
	"agri_connect/internal/global"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// maxDeliveryAttempts là số lần relay thử phát một event trước khi đánh dấu failed
const maxDeliveryAttempts = 5

// OutboxService là cấu trúc chứa các phương thức ghi/đọc outbox event
type OutboxService struct {
	*basesvc.BaseServiceMongoImpl[models.OutboxEvent]
}

// NewOutboxService tạo mới OutboxService
func NewOutboxService() (*OutboxService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.OutboxEvents)
	if !exist {
		return nil, fmt.Errorf("failed to get outbox events collection: %v", common.ErrNotFound)
	}

	return &OutboxService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.OutboxEvent](collection),
	}, nil
}

// Emit ghi một event pending. Gọi trong cùng lời gọi service với mutation
// sinh ra event để mutation và event không tách rời nhau.
func (s *OutboxService) Emit(ctx context.Context, topic string, room string, payload map[string]interface{}) error {
	event := models.OutboxEvent{
		Topic:   topic,
		Room:    room,
		Payload: payload,
		Status:  models.StatusPending,
	}
	_, err := s.InsertOne(ctx, event)
	if err != nil {
		logrus.WithFields(logrus.Fields{"topic": topic, "room": room}).Errorf("❌ [OUTBOX] Ghi event thất bại: %v", err)
		return err
	}
	return nil
}

// FindPending trả về các event pending theo thứ tự createdAt tăng dần
func (s *OutboxService) FindPending(ctx context.Context, limit int64) ([]models.OutboxEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetLimit(limit)
	events, err := s.Find(ctx, bson.M{"status": models.StatusPending}, opts)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// MarkDelivered đánh dấu event đã phát thành công
func (s *OutboxService) MarkDelivered(ctx context.Context, id primitive.ObjectID) error {
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status":      models.StatusDelivered,
			"deliveredAt": time.Now().UnixMilli(),
		},
	}
	_, err := s.UpdateById(ctx, id, update)
	return err
}

// MarkFailedAttempt tăng attempts; vượt quá maxDeliveryAttempts thì chuyển failed
func (s *OutboxService) MarkFailedAttempt(ctx context.Context, event models.OutboxEvent) error {
	update := &basesvc.UpdateData{
		Inc: map[string]interface{}{"attempts": int64(1)},
	}
	if event.Attempts+1 >= maxDeliveryAttempts {
		update.Set = map[string]interface{}{"status": models.StatusFailed}
		logrus.WithFields(logrus.Fields{
			"event_id": event.ID.Hex(),
			"topic":    event.Topic,
		}).Warn("⚠️ [OUTBOX] Event vượt quá số lần retry, chuyển sang failed")
	}
	_, err := s.UpdateById(ctx, event.ID, update)
	return err
}
