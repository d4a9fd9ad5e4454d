// Package router đăng ký các route thuộc domain forum.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	forumhdl "agri_connect/internal/api/forum/handler"
	"agri_connect/internal/api/middleware"
	apirouter "agri_connect/internal/api/router"
)

// Register đăng ký tất cả route forum lên v1. Mọi route đều yêu cầu đăng nhập;
// quyền sửa/xóa (tác giả hoặc admin) được kiểm tra trong service.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	forumHandler, err := forumhdl.NewForumHandler()
	if err != nil {
		return fmt.Errorf("tạo ForumHandler: %w", err)
	}

	authedChain := []fiber.Handler{middleware.AuthMiddleware()}

	// POST /forum: tạo bài viết
	apirouter.RegisterRouteWithMiddleware(v1, "/forum", "POST", "/", authedChain, forumHandler.HandleCreate)
	// GET /forum: danh sách. Query: tag, page, limit
	apirouter.RegisterRouteWithMiddleware(v1, "/forum", "GET", "/", authedChain, forumHandler.HandleList)
	// GET /forum/trending: bài viết nổi bật
	apirouter.RegisterRouteWithMiddleware(v1, "/forum", "GET", "/trending", authedChain, forumHandler.HandleTrending)
	// GET /forum/search: tìm kiếm full-text. Query: q, page, limit
	apirouter.RegisterRouteWithMiddleware(v1, "/forum", "GET", "/search", authedChain, forumHandler.HandleSearch)
	// GET /forum/:id: chi tiết bài viết (tăng viewCount)
	apirouter.RegisterRouteWithMiddleware(v1, "/forum", "GET", "/:id", authedChain, forumHandler.HandleGet)
	// PUT /forum/:id: sửa bài viết
	apirouter.RegisterRouteWithMiddleware(v1, "/forum", "PUT", "/:id", authedChain, forumHandler.HandleUpdate)
	// DELETE /forum/:id: xóa bài viết
	apirouter.RegisterRouteWithMiddleware(v1, "/forum", "DELETE", "/:id", authedChain, forumHandler.HandleDelete)
	// POST /forum/:id/like: đảo trạng thái thích bài viết
	apirouter.RegisterRouteWithMiddleware(v1, "/forum", "POST", "/:id/like", authedChain, forumHandler.HandleToggleLike)
	// POST /forum/:id/comments: thêm bình luận
	apirouter.RegisterRouteWithMiddleware(v1, "/forum", "POST", "/:id/comments", authedChain, forumHandler.HandleAddComment)
	// DELETE /forum/:id/comments/:commentId: xóa bình luận
	apirouter.RegisterRouteWithMiddleware(v1, "/forum", "DELETE", "/:id/comments/:commentId", authedChain, forumHandler.HandleDeleteComment)
	// POST /forum/:id/comments/:commentId/like: đảo trạng thái thích bình luận
	apirouter.RegisterRouteWithMiddleware(v1, "/forum", "POST", "/:id/comments/:commentId/like", authedChain, forumHandler.HandleToggleLikeComment)

	return nil
}
