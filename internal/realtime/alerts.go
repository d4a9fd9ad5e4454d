package realtime

import (
	outboxmodels "agri_connect/internal/api/outbox/models"
)

// PriceAlertSub là một đăng ký cảnh báo giá của một kết nối.
// Cảnh báo phát khi có bản ghi giá mới của đúng sản phẩm + tỉnh với giá
// đạt ngưỡng trở lên.
type PriceAlertSub struct {
	Product   string  `json:"product"`
	Province  string  `json:"province"`
	Threshold float64 `json:"threshold"`
}

// SubscribePriceAlert thêm một đăng ký cảnh báo giá cho client.
// Đăng ký sống theo kết nối, đóng socket là mất.
func (h *Hub) SubscribePriceAlert(client *Client, sub PriceAlertSub) {
	h.mu.Lock()
	client.alerts = append(client.alerts, sub)
	h.mu.Unlock()
}

// DispatchOutbox phát một outbox event lên room của nó. Với market.price,
// các đăng ký cảnh báo giá được so khớp thêm và client khớp nhận price-alert
// trên personal room bên cạnh broadcast thường.
func (h *Hub) DispatchOutbox(topic, room string, payload map[string]interface{}) {
	h.BroadcastEvent(room, topic, payload)

	if topic == outboxmodels.TopicMarketPrice {
		h.matchPriceAlerts(payload)
	}
}

// matchPriceAlerts so khớp một event market.price với mọi đăng ký cảnh báo
func (h *Hub) matchPriceAlerts(payload map[string]interface{}) {
	product, _ := payload["product"].(string)
	province, _ := payload["province"].(string)
	price := toFloat(payload["price"])
	if product == "" || price == 0 {
		return
	}

	h.mu.RLock()
	matched := make([]*Client, 0)
	for userID := range h.presence {
		for member := range h.rooms["user:"+userID] {
			for _, sub := range member.alerts {
				if sub.Product == product && (sub.Province == "" || sub.Province == province) && price >= sub.Threshold {
					matched = append(matched, member)
					break
				}
			}
		}
	}
	h.mu.RUnlock()

	for _, client := range matched {
		client.Send("price-alert", payload)
	}
}

// toFloat ép một giá trị payload về float64
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}
