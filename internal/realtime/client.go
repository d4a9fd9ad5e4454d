package realtime

import (
	"encoding/json"
	"time"

	"github.com/fasthttp/websocket"
	"github.com/sirupsen/logrus"
)

const (
	// writeWait là thời gian tối đa cho một lần ghi xuống socket
	writeWait = 10 * time.Second

	// pongWait là thời gian chờ pong trước khi coi kết nối đã chết
	pongWait = 60 * time.Second

	// pingPeriod phải nhỏ hơn pongWait
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize là giới hạn kích thước frame client gửi lên
	maxMessageSize = 8 * 1024

	// sendBufferSize là kích thước buffer gửi của mỗi client
	sendBufferSize = 256
)

// InboundFrame là khung tin client gửi lên: {event, data}
type InboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// FrameHandler xử lý một frame từ client. Do realtime handler cung cấp
// để client không phụ thuộc trực tiếp vào các domain service.
type FrameHandler func(client *Client, frame *InboundFrame)

// Client là một kết nối websocket của một user đã xác thực
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID string
	role   string
	rooms  map[string]bool

	// alerts là các đăng ký cảnh báo giá của riêng kết nối này,
	// chỉ đọc/ghi từ goroutine readPump và hub
	alerts []PriceAlertSub

	onFrame FrameHandler
}

// NewClient tạo client cho một kết nối đã upgrade
func NewClient(hub *Hub, conn *websocket.Conn, userID, role string, onFrame FrameHandler) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		userID:  userID,
		role:    role,
		rooms:   make(map[string]bool),
		onFrame: onFrame,
	}
}

// UserID trả về id của user sở hữu kết nối
func (c *Client) UserID() string {
	return c.userID
}

// Role trả về role của user sở hữu kết nối
func (c *Client) Role() string {
	return c.role
}

// Send đẩy một Envelope xuống riêng kết nối này
func (c *Client) Send(event string, data interface{}) {
	payload, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

// ReadPump đọc frame từ socket cho tới khi kết nối đóng.
// Chạy trong goroutine riêng cho mỗi kết nối.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.Warnf("⚠️ [REALTIME] Kết nối của %s đóng bất thường: %v", c.userID, err)
			}
			return
		}

		var frame InboundFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			c.Send("error", map[string]string{"message": "Khung tin không hợp lệ"})
			continue
		}
		if c.onFrame != nil {
			c.onFrame(c, &frame)
		}
	}
}

// WritePump ghi tin từ send channel xuống socket và ping định kỳ.
// Chạy trong goroutine riêng cho mỗi kết nối.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub đã đóng client
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
