// Package models - model OutboxEvent cho realtime relay.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của một outbox event
const (
	StatusPending   = "pending"   // Chưa phát
	StatusDelivered = "delivered" // Đã phát tới hub
	StatusFailed    = "failed"    // Vượt quá số lần retry
)

// Topic của các outbox event. Topic đồng thời là tên event phía client nhận.
const (
	TopicChatMessage        = "chat.message"
	TopicChatRead           = "chat.read"
	TopicConsultationStatus = "consultation.status"
	TopicMarketPrice        = "market.price"
)

// OutboxEvent là một sự kiện realtime được ghi trong cùng lời gọi service
// với mutation sinh ra nó. Relay worker poll các event pending theo createdAt,
// phát lên hub rồi đánh dấu delivered. Delivery là at-least-once, client
// idempotent theo event id.
type OutboxEvent struct {
	ID          primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	Topic       string                 `json:"topic" bson:"topic"`
	Room        string                 `json:"room" bson:"room"` // Room đích trên hub, ví dụ "chat:<id>", "market:<province>", "user:<id>"
	Payload     map[string]interface{} `json:"payload" bson:"payload"`
	Status      string                 `json:"status" bson:"status" default:"pending"`
	Attempts    int64                  `json:"attempts" bson:"attempts"`
	DeliveredAt int64                  `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	CreatedAt   int64                  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64                  `json:"updatedAt" bson:"updatedAt"`
}
