// Package knowledgedto - các DTO đầu vào cho domain knowledge.
package knowledgedto

// KnowledgeCreateInput đầu vào tạo bài viết kiến thức (officer/admin).
type KnowledgeCreateInput struct {
	Title     string   `json:"title" validate:"required,no_xss,max=200"`
	Content   string   `json:"content" validate:"required"`
	Category  string   `json:"category,omitempty" validate:"omitempty,no_xss,max=100"`
	Crop      string   `json:"crop,omitempty" validate:"omitempty,no_xss,max=100"`
	Tags      []string `json:"tags,omitempty" validate:"omitempty,max=10,dive,no_xss,max=50"`
	Images    []string `json:"images,omitempty" validate:"omitempty,max=10,dive,url"`
	Published bool     `json:"published,omitempty"`
}

// KnowledgeUpdateInput dùng con trỏ cho Published để phân biệt
// "không đổi" với "gỡ publish". đầu vào sửa bài viết kiến thức (officer/admin).
type KnowledgeUpdateInput struct {
	Title     string   `json:"title,omitempty" validate:"omitempty,no_xss,max=200"`
	Content   string   `json:"content,omitempty"`
	Category  string   `json:"category,omitempty" validate:"omitempty,no_xss,max=100"`
	Crop      string   `json:"crop,omitempty" validate:"omitempty,no_xss,max=100"`
	Tags      []string `json:"tags,omitempty" validate:"omitempty,max=10,dive,no_xss,max=50"`
	Images    []string `json:"images,omitempty" validate:"omitempty,max=10,dive,url"`
	Published *bool    `json:"published,omitempty"`
}
