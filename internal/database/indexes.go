// Package database - Index cho các collections của nền tảng.
// Unique sparse cho định danh tài khoản, text index cho tìm kiếm diễn đàn
// và thư viện kiến thức, compound index cho các truy vấn thường dùng.
package database

import (
	"context"
	"strings"

	"agri_connect/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIndexes tạo toàn bộ index cần thiết cho các collections.
// Gọi một lần khi khởi động server, sau khi registry collections đã sẵn sàng.
func CreateIndexes(ctx context.Context, db *mongo.Database) error {
	// users: email và phone unique sparse (cho phép thiếu một trong hai)
	users := db.Collection(global.MongoDB_ColNames.Users)
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("user_email_unique").SetUnique(true).SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().SetName("user_phone_unique").SetUnique(true).SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// chats: tra cứu theo participant, sắp theo hoạt động mới nhất
	chats := db.Collection(global.MongoDB_ColNames.Chats)
	if _, err := chats.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "participants", Value: 1},
			{Key: "lastMessageAt", Value: -1},
		},
		Options: options.Index().SetName("chat_participant_activity"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// chat_messages: phân trang tin nhắn theo chat
	chatMessages := db.Collection(global.MongoDB_ColNames.ChatMessages)
	if _, err := chatMessages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "chatId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("chat_message_chat_time"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// consultations: danh sách theo farmer / officer / trạng thái
	consultations := db.Collection(global.MongoDB_ColNames.Consultations)
	if _, err := consultations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "farmerId", Value: 1},
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("consultation_farmer_status"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}
	if _, err := consultations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "officerId", Value: 1},
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("consultation_officer_status").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// forum_posts: text search trên tiêu đề, nội dung và tags
	forumPosts := db.Collection(global.MongoDB_ColNames.ForumPosts)
	if _, err := forumPosts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "content", Value: "text"},
			{Key: "tags", Value: "text"},
		},
		Options: options.Index().SetName("forum_post_text"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}
	if _, err := forumPosts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "authorId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("forum_post_author_time"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// knowledge_articles: text search trên tiêu đề, nội dung, tags và cây trồng
	knowledge := db.Collection(global.MongoDB_ColNames.KnowledgeArticles)
	if _, err := knowledge.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "content", Value: "text"},
			{Key: "tags", Value: "text"},
			{Key: "crop", Value: "text"},
		},
		Options: options.Index().SetName("knowledge_article_text"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}
	if _, err := knowledge.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "category", Value: 1},
			{Key: "crop", Value: 1},
		},
		Options: options.Index().SetName("knowledge_article_category_crop"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// products: lọc theo danh mục / tỉnh / trạng thái
	products := db.Collection(global.MongoDB_ColNames.Products)
	if _, err := products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "category", Value: 1},
			{Key: "location.province", Value: 1},
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("product_category_province_status"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// market_prices: chuỗi giá theo sản phẩm / chợ / thời gian
	marketPrices := db.Collection(global.MongoDB_ColNames.MarketPrices)
	if _, err := marketPrices.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "product", Value: 1},
			{Key: "province", Value: 1},
			{Key: "recordedAt", Value: -1},
		},
		Options: options.Index().SetName("market_price_product_province_time"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// outbox_events: relay worker quét theo status + createdAt
	outbox := db.Collection(global.MongoDB_ColNames.OutboxEvents)
	if _, err := outbox.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "createdAt", Value: 1},
		},
		Options: options.Index().SetName("outbox_event_status_time"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// password_resets: một code đang hiệu lực cho mỗi user, tự hết hạn
	passwordResets := db.Collection(global.MongoDB_ColNames.PasswordResets)
	if _, err := passwordResets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("password_reset_user"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}
	if _, err := passwordResets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetName("password_reset_ttl").SetExpireAfterSeconds(0),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
