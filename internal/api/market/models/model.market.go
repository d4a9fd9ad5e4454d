// Package models - model giá nông sản tại các chợ.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Nguồn của bản ghi giá
const (
	SourceOfficer  = "officer"  // Cán bộ nhập tay
	SourceExternal = "external" // Kéo từ feed bên ngoài
	SourceMock     = "mock"     // Provider giả lập khi chưa có API key
)

// MarketPrice là một bản ghi giá, chỉ thêm không sửa.
// Chuỗi giá theo thời gian của một sản phẩm tại một chợ được đọc bằng
// cách lọc product + market và sắp theo recordedAt.
type MarketPrice struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Product    string             `json:"product" bson:"product"`
	Market     string             `json:"market,omitempty" bson:"market,omitempty"`
	Province   string             `json:"province" bson:"province"`
	Price      float64            `json:"price" bson:"price"`
	Unit       string             `json:"unit,omitempty" bson:"unit,omitempty"`
	Source     string             `json:"source" bson:"source" default:"officer"`
	RecordedAt int64              `json:"recordedAt" bson:"recordedAt"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}

// PriceTrend là kết quả tính xu hướng giá trong một cửa sổ thời gian
type PriceTrend struct {
	Product       string  `json:"product"`
	Province      string  `json:"province"`
	FirstPrice    float64 `json:"firstPrice"`
	LastPrice     float64 `json:"lastPrice"`
	ChangePercent float64 `json:"changePercent"`
	Points        int64   `json:"points"`
	FromAt        int64   `json:"fromAt"`
	ToAt          int64   `json:"toAt"`
}
