package realtime

import (
	"encoding/json"
	"testing"
	"time"

	outboxmodels "agri_connect/internal/api/outbox/models"

	"github.com/stretchr/testify/assert"
)

// recvEnvelope đọc một tin từ send buffer của client, fail nếu không có
func recvEnvelope(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case payload := <-c.send:
		var env Envelope
		if err := json.Unmarshal(payload, &env); err != nil {
			t.Fatalf("payload không phải Envelope hợp lệ: %v", err)
		}
		return env
	default:
		t.Fatal("client không nhận được tin nào")
		return Envelope{}
	}
}

// drain xả hết send buffer của client
func drain(c *Client) {
	for {
		select {
		case <-c.send:
		default:
			return
		}
	}
}

func TestHub_AddClientJoinsPersonalAndPresenceRooms(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, nil, "user-a", "farmer", nil)

	hub.addClient(client)

	assert.Equal(t, 1, hub.RoomSize("user:user-a"), "client phải ở trong personal room")
	assert.Equal(t, 1, hub.RoomSize(PresenceRoom), "client phải ở trong presence room")
	assert.True(t, hub.IsOnline("user-a"))
}

func TestHub_PresenceRefcount(t *testing.T) {
	hub := NewHub()
	c1 := NewClient(hub, nil, "user-a", "farmer", nil)
	c2 := NewClient(hub, nil, "user-a", "farmer", nil)

	hub.addClient(c1)
	hub.addClient(c2)
	assert.True(t, hub.IsOnline("user-a"))
	assert.Equal(t, 2, hub.RoomSize("user:user-a"), "hai kết nối của cùng user phải cùng ở personal room")

	// Đóng một kết nối: user vẫn online
	hub.removeClient(c1)
	assert.True(t, hub.IsOnline("user-a"), "user còn kết nối mở phải vẫn online")

	// Đóng kết nối cuối: user offline
	hub.removeClient(c2)
	assert.False(t, hub.IsOnline("user-a"))
	assert.Equal(t, 0, hub.RoomSize("user:user-a"))
}

func TestHub_OnlineUsers(t *testing.T) {
	hub := NewHub()
	hub.addClient(NewClient(hub, nil, "user-a", "farmer", nil))
	hub.addClient(NewClient(hub, nil, "user-b", "officer", nil))

	users := hub.OnlineUsers()
	assert.Len(t, users, 2)
	assert.Contains(t, users, "user-a")
	assert.Contains(t, users, "user-b")
}

func TestHub_JoinLeaveRoomCleanup(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, nil, "user-a", "farmer", nil)
	hub.addClient(client)

	hub.JoinRoom(client, "chat:123")
	assert.Equal(t, 1, hub.RoomSize("chat:123"))

	hub.LeaveRoom(client, "chat:123")
	assert.Equal(t, 0, hub.RoomSize("chat:123"), "room rỗng phải bị xóa khỏi registry")
}

func TestHub_RemoveClientLeavesAllRooms(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, nil, "user-a", "farmer", nil)
	hub.addClient(client)
	hub.JoinRoom(client, "chat:123")
	hub.JoinRoom(client, "market:An Giang")

	hub.removeClient(client)

	assert.Equal(t, 0, hub.RoomSize("chat:123"))
	assert.Equal(t, 0, hub.RoomSize("market:An Giang"))
	assert.Equal(t, 0, hub.RoomSize(PresenceRoom))
}

func TestHub_DeliverRoutesToRoomMembersOnly(t *testing.T) {
	hub := NewHub()
	inRoom := NewClient(hub, nil, "user-a", "farmer", nil)
	outRoom := NewClient(hub, nil, "user-b", "farmer", nil)
	hub.addClient(inRoom)
	hub.addClient(outRoom)
	hub.JoinRoom(inRoom, "chat:123")
	drain(inRoom)
	drain(outRoom)

	payload, _ := json.Marshal(Envelope{Event: "chat.message", Data: map[string]string{"content": "xin chào"}})
	hub.deliver("chat:123", payload)

	env := recvEnvelope(t, inRoom)
	assert.Equal(t, "chat.message", env.Event)

	select {
	case <-outRoom.send:
		t.Error("client ngoài room không được nhận tin")
	default:
	}
}

func TestHub_DeliverSkipsSlowConsumer(t *testing.T) {
	hub := NewHub()
	slow := NewClient(hub, nil, "user-a", "farmer", nil)
	hub.addClient(slow)
	hub.JoinRoom(slow, "chat:123")

	// Lấp đầy send buffer
	filler := []byte(`{"event":"x"}`)
	for i := 0; i < sendBufferSize; i++ {
		select {
		case slow.send <- filler:
		default:
			t.Fatalf("send buffer đầy sớm hơn dự kiến tại %d", i)
		}
	}

	// deliver không được block dù buffer đầy
	done := make(chan struct{})
	go func() {
		hub.deliver("chat:123", filler)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("deliver bị block bởi slow consumer")
	}
}

func TestHub_DispatchOutboxMatchesPriceAlerts(t *testing.T) {
	hub := NewHub()
	subscribed := NewClient(hub, nil, "user-a", "farmer", nil)
	other := NewClient(hub, nil, "user-b", "farmer", nil)
	hub.addClient(subscribed)
	hub.addClient(other)
	hub.SubscribePriceAlert(subscribed, PriceAlertSub{Product: "lúa", Province: "An Giang", Threshold: 8000})
	drain(subscribed)
	drain(other)

	hub.DispatchOutbox(outboxmodels.TopicMarketPrice, "market:An Giang", map[string]interface{}{
		"product":  "lúa",
		"province": "An Giang",
		"price":    float64(8500),
	})

	env := recvEnvelope(t, subscribed)
	assert.Equal(t, "price-alert", env.Event, "client đăng ký phải nhận price-alert")

	select {
	case <-other.send:
		t.Error("client không đăng ký không được nhận price-alert")
	default:
	}
}

func TestHub_PriceAlertBelowThresholdNotMatched(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, nil, "user-a", "farmer", nil)
	hub.addClient(client)
	hub.SubscribePriceAlert(client, PriceAlertSub{Product: "lúa", Threshold: 9000})
	drain(client)

	hub.DispatchOutbox(outboxmodels.TopicMarketPrice, "market:An Giang", map[string]interface{}{
		"product":  "lúa",
		"province": "An Giang",
		"price":    float64(8500),
	})

	select {
	case <-client.send:
		t.Error("giá dưới ngưỡng không được phát cảnh báo")
	default:
	}
}

func TestHub_PriceAlertEmptyProvinceMatchesAll(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, nil, "user-a", "farmer", nil)
	hub.addClient(client)
	hub.SubscribePriceAlert(client, PriceAlertSub{Product: "cà phê", Threshold: 100000})
	drain(client)

	hub.DispatchOutbox(outboxmodels.TopicMarketPrice, "market:Đắk Lắk", map[string]interface{}{
		"product":  "cà phê",
		"province": "Đắk Lắk",
		"price":    float64(125000),
	})

	env := recvEnvelope(t, client)
	assert.Equal(t, "price-alert", env.Event, "đăng ký không ghim tỉnh phải khớp mọi tỉnh")
}
