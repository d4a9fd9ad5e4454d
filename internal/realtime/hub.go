// Package realtime - hub websocket: quản lý kết nối, room và presence.
package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// PresenceRoom là room mọi client được join khi kết nối để nhận
// thông báo online/offline
const PresenceRoom = "presence"

// Envelope là khung tin gửi xuống client
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// broadcastMessage là một tin cần phát tới một room
type broadcastMessage struct {
	room    string
	payload []byte
}

// Hub sở hữu toàn bộ registry kết nối. Mọi thay đổi registry đi qua các
// channel và được xử lý tuần tự trong Run; đọc room map từ ngoài dùng RWMutex.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMessage

	mu       sync.RWMutex
	rooms    map[string]map[*Client]bool
	presence map[string]int // userID hex → số kết nối đang mở
}

// NewHub tạo hub mới
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMessage, 256),
		rooms:      make(map[string]map[*Client]bool),
		presence:   make(map[string]int),
	}
}

// Run chạy vòng lặp chính của hub cho tới khi context bị hủy.
// Chạy trong một goroutine riêng từ lúc khởi động server.
func (h *Hub) Run(ctx context.Context) {
	logrus.Info("🔌 [REALTIME] Hub bắt đầu chạy")
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			logrus.Info("🔌 [REALTIME] Hub dừng")
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.deliver(msg.room, msg.payload)
		}
	}
}

// Register đăng ký một client mới với hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister gỡ một client khỏi hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast phát payload tới mọi client trong room
func (h *Hub) Broadcast(room string, payload []byte) {
	h.broadcast <- broadcastMessage{room: room, payload: payload}
}

// BroadcastEvent phát một Envelope {event, data} tới room
func (h *Hub) BroadcastEvent(room string, event string, data interface{}) {
	payload, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		logrus.Errorf("❌ [REALTIME] Marshal event %s thất bại: %v", event, err)
		return
	}
	h.Broadcast(room, payload)
}

// addClient join client vào personal room + presence room và tăng refcount
// presence. Kết nối đầu tiên của một user phát presence online.
func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.joinLocked(client, "user:"+client.userID)
	h.joinLocked(client, PresenceRoom)
	h.presence[client.userID]++
	first := h.presence[client.userID] == 1
	h.mu.Unlock()

	if first {
		h.BroadcastEvent(PresenceRoom, "presence", map[string]interface{}{
			"userId": client.userID,
			"online": true,
		})
	}
}

// removeClient gỡ client khỏi mọi room và giảm refcount presence.
// Kết nối cuối cùng của một user đóng thì phát presence offline.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	for room := range client.rooms {
		h.leaveLocked(client, room)
	}
	last := false
	if h.presence[client.userID] > 0 {
		h.presence[client.userID]--
		if h.presence[client.userID] == 0 {
			delete(h.presence, client.userID)
			last = true
		}
	}
	h.mu.Unlock()

	close(client.send)

	if last {
		h.BroadcastEvent(PresenceRoom, "presence", map[string]interface{}{
			"userId": client.userID,
			"online": false,
		})
	}
}

// JoinRoom join client vào một room
func (h *Hub) JoinRoom(client *Client, room string) {
	h.mu.Lock()
	h.joinLocked(client, room)
	h.mu.Unlock()
}

// LeaveRoom gỡ client khỏi một room
func (h *Hub) LeaveRoom(client *Client, room string) {
	h.mu.Lock()
	h.leaveLocked(client, room)
	h.mu.Unlock()
}

func (h *Hub) joinLocked(client *Client, room string) {
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
	client.rooms[room] = true
}

func (h *Hub) leaveLocked(client *Client, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(client.rooms, room)
}

// deliver gửi payload tới mọi client trong room. Client có send buffer đầy
// (slow consumer) bị bỏ qua thay vì chặn cả hub.
func (h *Hub) deliver(room string, payload []byte) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[room]))
	for client := range h.rooms[room] {
		members = append(members, client)
	}
	h.mu.RUnlock()

	for _, client := range members {
		select {
		case client.send <- payload:
		default:
			logrus.Warnf("⚠️ [REALTIME] Client %s nhận chậm, bỏ qua tin trong room %s", client.userID, room)
		}
	}
}

// IsOnline kiểm tra user có ít nhất một kết nối đang mở không
func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.presence[userID] > 0
}

// OnlineUsers trả về danh sách userID đang online
func (h *Hub) OnlineUsers() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	users := make([]string, 0, len(h.presence))
	for userID := range h.presence {
		users = append(users, userID)
	}
	return users
}

// RoomSize trả về số client trong một room
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// closeAll đóng toàn bộ client khi hub dừng
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	closed := make(map[*Client]bool)
	for _, members := range h.rooms {
		for client := range members {
			if !closed[client] {
				close(client.send)
				closed[client] = true
			}
		}
	}
	h.rooms = make(map[string]map[*Client]bool)
	h.presence = make(map[string]int)
}
