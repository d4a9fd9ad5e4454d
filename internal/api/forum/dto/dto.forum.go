// Package forumdto - các DTO đầu vào cho domain forum.
package forumdto

// ForumPostCreateInput đầu vào tạo bài viết.
type ForumPostCreateInput struct {
	Title   string   `json:"title" validate:"required,no_xss,max=200"`
	Content string   `json:"content" validate:"required,max=20000"`
	Tags    []string `json:"tags,omitempty" validate:"omitempty,max=10,dive,no_xss,max=50"`
	Images  []string `json:"images,omitempty" validate:"omitempty,max=10,dive,url"`
}

// ForumPostUpdateInput đầu vào sửa bài viết (tác giả hoặc admin).
type ForumPostUpdateInput struct {
	Title   string   `json:"title,omitempty" validate:"omitempty,no_xss,max=200"`
	Content string   `json:"content,omitempty" validate:"omitempty,max=20000"`
	Tags    []string `json:"tags,omitempty" validate:"omitempty,max=10,dive,no_xss,max=50"`
	Images  []string `json:"images,omitempty" validate:"omitempty,max=10,dive,url"`
}

// ForumCommentInput đầu vào thêm bình luận.
type ForumCommentInput struct {
	Content string `json:"content" validate:"required,max=4000"`
}
