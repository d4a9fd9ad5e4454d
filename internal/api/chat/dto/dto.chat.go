// Package chatdto - các DTO đầu vào cho domain chat.
package chatdto

// OpenChatInput đầu vào mở (find-or-create) hội thoại với một người dùng khác.
type OpenChatInput struct {
	UserID string `json:"userId" validate:"required,len=24"`
}

// SendMessageInput đầu vào gửi tin nhắn.
type SendMessageInput struct {
	Content string `json:"content" validate:"required,max=4000"`
	Type    string `json:"type,omitempty" validate:"omitempty,oneof=text image"`
}
