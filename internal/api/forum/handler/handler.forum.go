// Package forumhdl - handler diễn đàn cộng đồng.
package forumhdl

import (
	"fmt"

	basehdl "agri_connect/internal/api/base/handler"
	forumdto "agri_connect/internal/api/forum/dto"
	models "agri_connect/internal/api/forum/models"
	forumsvc "agri_connect/internal/api/forum/service"
	"agri_connect/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ForumHandler xử lý các request diễn đàn
type ForumHandler struct {
	*basehdl.BaseHandler[models.ForumPost, forumdto.ForumPostCreateInput, forumdto.ForumPostUpdateInput]
	forumService *forumsvc.ForumService
}

// NewForumHandler tạo instance mới của ForumHandler
func NewForumHandler() (*ForumHandler, error) {
	forumService, err := forumsvc.NewForumService()
	if err != nil {
		return nil, fmt.Errorf("failed to create forum service: %v", err)
	}
	return &ForumHandler{
		BaseHandler:  basehdl.NewBaseHandler[models.ForumPost, forumdto.ForumPostCreateInput, forumdto.ForumPostUpdateInput](forumService),
		forumService: forumService,
	}, nil
}

// requesterIdentity lấy ObjectID và role của user đang đăng nhập
func requesterIdentity(c fiber.Ctx) (primitive.ObjectID, string, error) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return primitive.NilObjectID, "", common.ErrTokenMissing
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, "", common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err)
	}
	role, _ := c.Locals("role").(string)
	return objID, role, nil
}

// paramObjectID lấy một ObjectID từ path param
func paramObjectID(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "ID không hợp lệ", common.StatusBadRequest, err)
	}
	return objID, nil
}

// HandleCreate tạo bài viết mới
func (h *ForumHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, _, err := requesterIdentity(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input forumdto.ForumPostCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		post, err := h.forumService.Create(c.Context(), userID, &input)
		h.HandleResponse(c, post, err)
		return nil
	})
}

// HandleList danh sách bài viết theo trang. Query: tag, page, limit
func (h *ForumHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := h.ParsePagination(c)
		result, err := h.forumService.List(c.Context(), c.Query("tag"), page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleTrending bài viết nổi bật theo lượt thích và bình luận
func (h *ForumHandler) HandleTrending(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := h.ParsePagination(c)
		result, err := h.forumService.Trending(c.Context(), page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleSearch tìm kiếm full-text. Query: q, page, limit
func (h *ForumHandler) HandleSearch(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		query := c.Query("q")
		if query == "" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Thiếu từ khóa tìm kiếm", common.StatusBadRequest, nil))
			return nil
		}
		page, limit := h.ParsePagination(c)
		result, err := h.forumService.Search(c.Context(), query, page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleGet trả về bài viết và tăng viewCount
func (h *ForumHandler) HandleGet(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := paramObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		post, err := h.forumService.Get(c.Context(), id)
		h.HandleResponse(c, post, err)
		return nil
	})
}

// HandleUpdate sửa bài viết (tác giả hoặc admin)
func (h *ForumHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, role, err := requesterIdentity(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := paramObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input forumdto.ForumPostUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		post, err := h.forumService.Update(c.Context(), id, userID, role, &input)
		h.HandleResponse(c, post, err)
		return nil
	})
}

// HandleDelete xóa bài viết (tác giả hoặc admin)
func (h *ForumHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, role, err := requesterIdentity(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := paramObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		err = h.forumService.Delete(c.Context(), id, userID, role)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleToggleLike đảo trạng thái thích bài viết
func (h *ForumHandler) HandleToggleLike(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, _, err := requesterIdentity(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := paramObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		post, err := h.forumService.ToggleLikePost(c.Context(), id, userID)
		h.HandleResponse(c, post, err)
		return nil
	})
}

// HandleAddComment thêm bình luận vào bài viết
func (h *ForumHandler) HandleAddComment(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, _, err := requesterIdentity(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := paramObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input forumdto.ForumCommentInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		post, err := h.forumService.AddComment(c.Context(), id, userID, &input)
		h.HandleResponse(c, post, err)
		return nil
	})
}

// HandleDeleteComment xóa bình luận (tác giả bình luận hoặc admin)
func (h *ForumHandler) HandleDeleteComment(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, role, err := requesterIdentity(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		postID, err := paramObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		commentID, err := paramObjectID(c, "commentId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		post, err := h.forumService.DeleteComment(c.Context(), postID, commentID, userID, role)
		h.HandleResponse(c, post, err)
		return nil
	})
}

// HandleToggleLikeComment đảo trạng thái thích một bình luận
func (h *ForumHandler) HandleToggleLikeComment(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, _, err := requesterIdentity(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		postID, err := paramObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		commentID, err := paramObjectID(c, "commentId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		post, err := h.forumService.ToggleLikeComment(c.Context(), postID, commentID, userID)
		h.HandleResponse(c, post, err)
		return nil
	})
}
