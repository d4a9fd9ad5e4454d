package main

import (
	"context"
	"errors"
	"time"

	authmodels "agri_connect/internal/api/auth/models"
	authsvc "agri_connect/internal/api/auth/service"
	"agri_connect/internal/common"
	"agri_connect/internal/global"
	"agri_connect/internal/logger"
	"agri_connect/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
)

// InitDefaultData seed tài khoản admin mặc định từ ADMIN_EMAIL / ADMIN_PASSWORD.
// Không có config thì bỏ qua, tài khoản admin sẽ được tạo thủ công qua database.
func InitDefaultData() {
	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Info("ADMIN_EMAIL / ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	userService, err := authsvc.NewUserService()
	if err != nil {
		log.Fatalf("Failed to initialize user service: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existing, err := userService.FindOne(ctx, bson.M{"email": cfg.AdminEmail}, nil)
	if err == nil {
		log.WithFields(map[string]interface{}{
			"email": cfg.AdminEmail,
			"role":  existing.Role,
		}).Info("Admin user already exists, skipping seed")
		return
	}
	if !errors.Is(err, common.ErrNotFound) {
		log.Fatalf("Failed to check admin user: %v", err)
	}

	hashed, err := utility.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin, err := userService.InsertOne(ctx, authmodels.User{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: hashed,
		Role:     authmodels.RoleAdmin,
	})
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	log.WithFields(map[string]interface{}{
		"email":  admin.Email,
		"userId": admin.ID.Hex(),
	}).Info("Seeded default admin user")
}
