// Package models - model phiên tư vấn giữa nông dân và cán bộ khuyến nông.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các trạng thái của phiên tư vấn
const (
	StatusPending    = "pending"
	StatusScheduled  = "scheduled"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// ConsultationNote là ghi chú trong phiên tư vấn
type ConsultationNote struct {
	AuthorID  primitive.ObjectID `json:"authorId" bson:"authorId"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
}

// ConsultationFeedback là đánh giá của nông dân sau khi phiên hoàn thành.
// Mỗi phiên chỉ có tối đa một feedback, đảm bảo bằng conditional update
// với filter feedback == null.
type ConsultationFeedback struct {
	Rating    int64  `json:"rating" bson:"rating"` // 1..5
	Comment   string `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
}

// StatusChange là một mục trong lịch sử chuyển trạng thái
type StatusChange struct {
	From     string             `json:"from" bson:"from"`
	To       string             `json:"to" bson:"to"`
	ByUserID primitive.ObjectID `json:"byUserId" bson:"byUserId"`
	At       int64              `json:"at" bson:"at"`
}

// Consultation là một phiên tư vấn
type Consultation struct {
	ID          primitive.ObjectID    `json:"id,omitempty" bson:"_id,omitempty"`
	FarmerID    primitive.ObjectID    `json:"farmerId" bson:"farmerId"`
	OfficerID   primitive.ObjectID    `json:"officerId,omitempty" bson:"officerId,omitempty"`
	Topic       string                `json:"topic" bson:"topic"`
	Description string                `json:"description,omitempty" bson:"description,omitempty"`
	Crop        string                `json:"crop,omitempty" bson:"crop,omitempty"`
	Status      string                `json:"status" bson:"status" default:"pending"`
	ScheduledAt int64                 `json:"scheduledAt,omitempty" bson:"scheduledAt,omitempty"`
	Notes       []ConsultationNote    `json:"notes,omitempty" bson:"notes,omitempty"`
	Feedback    *ConsultationFeedback `json:"feedback,omitempty" bson:"feedback"`
	History     []StatusChange        `json:"history,omitempty" bson:"history,omitempty"`
	CreatedAt   int64                 `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64                 `json:"updatedAt" bson:"updatedAt"`
}
