package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"agri_connect/internal/global"
	"agri_connect/internal/logger"
	"agri_connect/internal/realtime"
	"agri_connect/internal/worker"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger sẽ tự động đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// main_thread khởi tạo và chạy Fiber server, block cho đến khi shutdown
func main_thread(app *fiber.App) {
	cfg := global.MongoDB_ServerConfig
	log := logger.GetAppLogger()

	log.WithFields(map[string]interface{}{
		"address":  cfg.Address,
		"protocol": "HTTP",
	}).Info("Starting Fiber server...")

	listenConfig := fiber.ListenConfig{
		DisableStartupMessage: true,
	}
	if err := app.Listen(cfg.Address, listenConfig); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	// Khởi tạo dữ liệu mặc định
	InitDefaultData()

	log := logger.GetAppLogger()

	// Context dừng toàn bộ background worker khi nhận SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Khởi tạo hub realtime và chạy event loop trong goroutine riêng
	hub := realtime.NewHub()
	go hub.Run(ctx)
	log.Info("🔌 [REALTIME] Hub started successfully")

	// Khởi tạo và chạy Outbox Relay Worker (chuyển sự kiện outbox lên hub)
	relay, err := worker.NewOutboxRelayWorker(hub, time.Second, 100)
	if err != nil {
		log.WithError(err).Error("Failed to create outbox relay worker, continuing without realtime relay")
	} else {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(map[string]interface{}{
						"panic": r,
					}).Error("🔌 [RELAY] Relay goroutine panic")
				}
			}()
			relay.Start(ctx)
		}()
	}

	// Khởi tạo Fiber app với đầy đủ route và middleware
	app := InitFiberApp(hub)

	// Shutdown server khi context bị hủy để Listen thoát ra
	go func() {
		<-ctx.Done()
		log.Info("Shutdown signal received, stopping server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Error during server shutdown")
		}
	}()

	// Chạy Fiber server trên main thread
	main_thread(app)

	log.Info("Server stopped")
}
