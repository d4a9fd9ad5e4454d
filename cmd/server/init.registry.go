package main

import (
	"agri_connect/config"
	"agri_connect/internal/global"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

func InitRegistry() {
	// Khởi tạo registry và đăng ký các collections
	err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")
}

// InitCollections khởi tạo và đăng ký các collections MongoDB
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)
	colNames := []string{
		global.MongoDB_ColNames.Users,
		global.MongoDB_ColNames.Chats,
		global.MongoDB_ColNames.ChatMessages,
		global.MongoDB_ColNames.Consultations,
		global.MongoDB_ColNames.ForumPosts,
		global.MongoDB_ColNames.KnowledgeArticles,
		global.MongoDB_ColNames.Products,
		global.MongoDB_ColNames.MarketPrices,
		global.MongoDB_ColNames.OutboxEvents,
		global.MongoDB_ColNames.PasswordResets,
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}

		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Errorf("Collection %s already registered", name)
		}
	}

	return nil
}
