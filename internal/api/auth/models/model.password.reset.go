// Package models - model mã đặt lại mật khẩu thuộc domain auth.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PasswordReset lưu mã đặt lại mật khẩu đã được hash (không bao giờ lưu mã gốc).
// ExpiresAt là BSON date để TTL index tự dọn các mã hết hạn.
type PasswordReset struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	CodeHash  string             `json:"-" bson:"codeHash"`
	ExpiresAt time.Time          `json:"expiresAt" bson:"expiresAt"`
	Used      bool               `json:"used" bson:"used"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
