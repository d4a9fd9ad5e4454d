package global

import (
	"agri_connect/config"
	"agri_connect/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName chứa tên các collection trong MongoDB
type CollectionName struct {
	Users             string // Tên collection cho người dùng
	Chats             string // Tên collection cho hội thoại chat 1-1
	ChatMessages      string // Tên collection cho tin nhắn chat
	Consultations     string // Tên collection cho phiên tư vấn
	ForumPosts        string // Tên collection cho bài viết diễn đàn
	KnowledgeArticles string // Tên collection cho bài viết thư viện kiến thức
	Products          string // Tên collection cho sản phẩm chợ nông sản
	MarketPrices      string // Tên collection cho giá nông sản
	OutboxEvents      string // Tên collection cho outbox events (realtime relay)
	PasswordResets    string // Tên collection cho mã đặt lại mật khẩu
}

// Các biến toàn cục
var Validate *validator.Validate                                 // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration                   // Cấu hình của server
var MongoDB_ColNames CollectionName = *new(CollectionName)       // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
