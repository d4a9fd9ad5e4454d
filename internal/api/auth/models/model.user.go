// Package models - model người dùng (User) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các role của hệ thống. Farmer là role mặc định khi đăng ký.
const (
	RoleFarmer  = "farmer"  // Nông dân
	RoleOfficer = "officer" // Cán bộ khuyến nông
	RoleAdmin   = "admin"   // Quản trị viên
)

// UserLocation chứa thông tin vị trí của người dùng
type UserLocation struct {
	Province    string    `json:"province,omitempty" bson:"province,omitempty"`       // Tỉnh/thành
	District    string    `json:"district,omitempty" bson:"district,omitempty"`       // Quận/huyện
	Coordinates []float64 `json:"coordinates,omitempty" bson:"coordinates,omitempty"` // [lng, lat]
}

// User định nghĩa mô hình người dùng.
// TokenVersion dùng để thu hồi token: logout, đổi mật khẩu hoặc block tài khoản
// sẽ tăng version, mọi JWT mang version cũ bị từ chối khi xác thực.
type User struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty" index:"unique,sparse"`
	Password     string             `json:"-" bson:"password,omitempty"`
	Role         string             `json:"role" bson:"role" default:"farmer"`
	Location     UserLocation       `json:"location,omitempty" bson:"location,omitempty"`
	Crops        []string           `json:"crops,omitempty" bson:"crops,omitempty"`       // Cây trồng đang canh tác
	FarmSize     float64            `json:"farmSize,omitempty" bson:"farmSize,omitempty"` // Diện tích canh tác (ha)
	AvatarURL    string             `json:"avatarUrl,omitempty" bson:"avatarUrl,omitempty"`
	Bio          string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Expertise    string             `json:"expertise,omitempty" bson:"expertise,omitempty"` // Chuyên môn (chỉ dành cho officer)
	TokenVersion int64              `json:"-" bson:"tokenVersion"`
	IsBlock      bool               `json:"-" bson:"isBlock"`
	BlockNote    string             `json:"-" bson:"blockNote"`
	LastActiveAt int64              `json:"lastActiveAt,omitempty" bson:"lastActiveAt,omitempty"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}
