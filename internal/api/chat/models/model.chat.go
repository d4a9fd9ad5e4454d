// Package models - model hội thoại chat 1-1 và tin nhắn.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Loại tin nhắn
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
)

// Chat là hội thoại 1-1 giữa hai người dùng.
// Participants luôn được lưu theo thứ tự hex tăng dần để cặp (a,b) và (b,a)
// cùng trỏ về một document khi find-or-create.
type Chat struct {
	ID            primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Participants  []primitive.ObjectID `json:"participants" bson:"participants"`
	LastMessage   string               `json:"lastMessage,omitempty" bson:"lastMessage,omitempty"`
	LastMessageAt int64                `json:"lastMessageAt,omitempty" bson:"lastMessageAt,omitempty"`
	Unread        map[string]int64     `json:"unread,omitempty" bson:"unread,omitempty"` // Số tin chưa đọc theo userId hex
	CreatedAt     int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64                `json:"updatedAt" bson:"updatedAt"`
}

// ChatMessage là một tin nhắn trong hội thoại
type ChatMessage struct {
	ID        primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	ChatID    primitive.ObjectID   `json:"chatId" bson:"chatId"`
	SenderID  primitive.ObjectID   `json:"senderId" bson:"senderId"`
	Content   string               `json:"content" bson:"content"`
	Type      string               `json:"type" bson:"type" default:"text"`
	ReadBy    []primitive.ObjectID `json:"readBy,omitempty" bson:"readBy,omitempty"`
	CreatedAt int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64                `json:"updatedAt" bson:"updatedAt"`
}
