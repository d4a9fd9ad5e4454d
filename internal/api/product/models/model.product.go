// Package models - model sản phẩm chợ nông sản.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của sản phẩm
const (
	StatusAvailable = "available"
	StatusSold      = "sold"
	StatusHidden    = "hidden"
)

// ProductLocation là nơi bán sản phẩm
type ProductLocation struct {
	Province string `json:"province,omitempty" bson:"province,omitempty"`
	District string `json:"district,omitempty" bson:"district,omitempty"`
}

// Product là sản phẩm rao bán trên chợ nông sản
type Product struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SellerID    primitive.ObjectID `json:"sellerId" bson:"sellerId"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Category    string             `json:"category,omitempty" bson:"category,omitempty"`
	Price       float64            `json:"price" bson:"price"`
	Unit        string             `json:"unit,omitempty" bson:"unit,omitempty"` // kg, tấn, bó...
	Quantity    float64            `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Images      []string           `json:"images,omitempty" bson:"images,omitempty"`
	Location    ProductLocation    `json:"location,omitempty" bson:"location,omitempty"`
	Status      string             `json:"status" bson:"status" default:"available"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
