// Package models - model bài viết thư viện kiến thức nông nghiệp.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KnowledgeArticle là bài viết kiến thức do cán bộ khuyến nông biên soạn
type KnowledgeArticle struct {
	ID        primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  primitive.ObjectID   `json:"authorId,omitempty" bson:"authorId,omitempty"`
	Title     string               `json:"title" bson:"title"`
	Content   string               `json:"content" bson:"content"`
	Category  string               `json:"category,omitempty" bson:"category,omitempty"`
	Crop      string               `json:"crop,omitempty" bson:"crop,omitempty"`
	Tags      []string             `json:"tags,omitempty" bson:"tags,omitempty"`
	Images    []string             `json:"images,omitempty" bson:"images,omitempty"`
	Likes     []primitive.ObjectID `json:"likes,omitempty" bson:"likes,omitempty"`
	LikeCount int64                `json:"likeCount" bson:"likeCount"`
	ViewCount int64                `json:"viewCount" bson:"viewCount"`
	Published bool                 `json:"published" bson:"published" default:"true"`
	CreatedAt int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64                `json:"updatedAt" bson:"updatedAt"`
}
