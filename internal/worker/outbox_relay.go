package worker

import (
	"context"
	"time"

	outboxsvc "agri_connect/internal/api/outbox/service"
	"agri_connect/internal/logger"
	"agri_connect/internal/realtime"
)

// OutboxRelayWorker đọc sự kiện pending từ outbox và phát lên hub realtime.
// Mutation và ghi outbox nằm trong cùng một lời gọi service, relay chỉ lo
// chuyển tiếp: sự kiện được giữ lại khi server restart giữa chừng.
type OutboxRelayWorker struct {
	outboxService *outboxsvc.OutboxService
	hub           *realtime.Hub
	interval      time.Duration
	batchSize     int64
}

// NewOutboxRelayWorker tạo mới OutboxRelayWorker.
// Tham số:
//   - hub: hub realtime nhận sự kiện
//   - interval: khoảng thời gian giữa các lần poll (mặc định: 1 giây)
//   - batchSize: số sự kiện tối đa mỗi lần (mặc định: 100)
func NewOutboxRelayWorker(hub *realtime.Hub, interval time.Duration, batchSize int64) (*OutboxRelayWorker, error) {
	outboxService, err := outboxsvc.NewOutboxService()
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &OutboxRelayWorker{
		outboxService: outboxService,
		hub:           hub,
		interval:      interval,
		batchSize:     batchSize,
	}, nil
}

// Start chạy worker trong vòng lặp: mỗi interval đọc batch pending theo thứ tự
// createdAt tăng dần, phát từng sự kiện lên hub rồi đánh dấu delivered.
func (w *OutboxRelayWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval":  w.interval.String(),
		"batchSize": w.batchSize,
	}).Info("🔌 [RELAY] Starting Outbox Relay Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🔌 [RELAY] Outbox Relay Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("🔌 [RELAY] Panic khi relay outbox, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				events, err := w.outboxService.FindPending(ctx, w.batchSize)
				if err != nil {
					log.WithError(err).Error("🔌 [RELAY] Lỗi lấy danh sách sự kiện pending")
					return
				}
				if len(events) == 0 {
					return
				}

				delivered := 0
				for _, event := range events {
					w.hub.DispatchOutbox(event.Topic, event.Room, event.Payload)

					if err := w.outboxService.MarkDelivered(ctx, event.ID); err != nil {
						log.WithError(err).WithFields(map[string]interface{}{
							"eventId": event.ID.Hex(),
							"topic":   event.Topic,
						}).Warn("🔌 [RELAY] MarkDelivered thất bại")
						if err := w.outboxService.MarkFailedAttempt(ctx, event); err != nil {
							log.WithError(err).WithFields(map[string]interface{}{
								"eventId": event.ID.Hex(),
							}).Warn("🔌 [RELAY] MarkFailedAttempt thất bại")
						}
						continue
					}
					delivered++
				}

				if delivered > 0 {
					log.WithFields(map[string]interface{}{
						"delivered": delivered,
						"total":     len(events),
					}).Info("🔌 [RELAY] Đã relay sự kiện outbox")
				}
			}()
		}
	}
}
