// Package models - model bài viết diễn đàn cộng đồng.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ForumComment là bình luận nhúng trong bài viết
type ForumComment struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id"`
	AuthorID  primitive.ObjectID   `json:"authorId" bson:"authorId"`
	Content   string               `json:"content" bson:"content"`
	Likes     []primitive.ObjectID `json:"likes,omitempty" bson:"likes,omitempty"`
	CreatedAt int64                `json:"createdAt" bson:"createdAt"`
}

// ForumPost là bài viết diễn đàn.
// Likes lưu danh sách userId; LikeCount được duy trì bằng $inc trong cùng
// update với $addToSet/$pull nên luôn khớp với độ dài Likes.
type ForumPost struct {
	ID           primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID     primitive.ObjectID   `json:"authorId" bson:"authorId"`
	Title        string               `json:"title" bson:"title"`
	Content      string               `json:"content" bson:"content"`
	Tags         []string             `json:"tags,omitempty" bson:"tags,omitempty"`
	Images       []string             `json:"images,omitempty" bson:"images,omitempty"`
	Likes        []primitive.ObjectID `json:"likes,omitempty" bson:"likes,omitempty"`
	LikeCount    int64                `json:"likeCount" bson:"likeCount"`
	Comments     []ForumComment       `json:"comments,omitempty" bson:"comments,omitempty"`
	CommentCount int64                `json:"commentCount" bson:"commentCount"`
	ViewCount    int64                `json:"viewCount" bson:"viewCount"`
	CreatedAt    int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64                `json:"updatedAt" bson:"updatedAt"`
}
