// Package knowledgehdl - handler thư viện kiến thức nông nghiệp.
package knowledgehdl

import (
	"fmt"

	basehdl "agri_connect/internal/api/base/handler"
	knowledgedto "agri_connect/internal/api/knowledge/dto"
	models "agri_connect/internal/api/knowledge/models"
	knowledgesvc "agri_connect/internal/api/knowledge/service"
	"agri_connect/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KnowledgeHandler xử lý các request thư viện kiến thức.
// Các route CRUD chuẩn đi qua BaseHandler; InsertOne được override để gán
// tác giả từ context.
type KnowledgeHandler struct {
	*basehdl.BaseHandler[models.KnowledgeArticle, knowledgedto.KnowledgeCreateInput, knowledgedto.KnowledgeUpdateInput]
	knowledgeService *knowledgesvc.KnowledgeService
}

// NewKnowledgeHandler tạo instance mới của KnowledgeHandler
func NewKnowledgeHandler() (*KnowledgeHandler, error) {
	knowledgeService, err := knowledgesvc.NewKnowledgeService()
	if err != nil {
		return nil, fmt.Errorf("failed to create knowledge service: %v", err)
	}
	return &KnowledgeHandler{
		BaseHandler:      basehdl.NewBaseHandler[models.KnowledgeArticle, knowledgedto.KnowledgeCreateInput, knowledgedto.KnowledgeUpdateInput](knowledgeService),
		knowledgeService: knowledgeService,
	}, nil
}

// requesterID lấy ObjectID của user đang đăng nhập từ context
func requesterID(c fiber.Ctx) (primitive.ObjectID, error) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return primitive.NilObjectID, common.ErrTokenMissing
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err)
	}
	return objID, nil
}

// InsertOne tạo bài viết kiến thức, gán tác giả là user đang đăng nhập
func (h *KnowledgeHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		authorID, err := requesterID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input knowledgedto.KnowledgeCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		model, err := h.TransformCreateInputToModel(&input)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Lỗi transform dữ liệu: %v", err), common.StatusBadRequest, err))
			return nil
		}
		model.AuthorID = authorID

		article, err := h.knowledgeService.InsertOne(c.Context(), *model)
		h.HandleResponse(c, article, err)
		return nil
	})
}

// HandleUpdate sửa bài viết kiến thức (officer/admin)
func (h *KnowledgeHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := primitive.ObjectIDFromHex(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "ID bài viết không hợp lệ", common.StatusBadRequest, err))
			return nil
		}
		var input knowledgedto.KnowledgeUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		article, err := h.knowledgeService.Update(c.Context(), id, &input)
		h.HandleResponse(c, article, err)
		return nil
	})
}

// HandleDelete xóa bài viết kiến thức (officer/admin)
func (h *KnowledgeHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := primitive.ObjectIDFromHex(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "ID bài viết không hợp lệ", common.StatusBadRequest, err))
			return nil
		}
		err = h.knowledgeService.Delete(c.Context(), id)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleList danh sách bài viết đã publish. Query: category, crop, page, limit
func (h *KnowledgeHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := h.ParsePagination(c)
		result, err := h.knowledgeService.List(c.Context(), c.Query("category"), c.Query("crop"), page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleSearch tìm kiếm full-text. Query: q, page, limit
func (h *KnowledgeHandler) HandleSearch(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		query := c.Query("q")
		if query == "" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Thiếu từ khóa tìm kiếm", common.StatusBadRequest, nil))
			return nil
		}
		page, limit := h.ParsePagination(c)
		result, err := h.knowledgeService.Search(c.Context(), query, page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleGetWithView chi tiết bài viết, tăng viewCount
func (h *KnowledgeHandler) HandleGetWithView(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := primitive.ObjectIDFromHex(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "ID bài viết không hợp lệ", common.StatusBadRequest, err))
			return nil
		}
		article, err := h.knowledgeService.GetWithView(c.Context(), id)
		h.HandleResponse(c, article, err)
		return nil
	})
}

// HandleToggleLike đảo trạng thái thích bài viết
func (h *KnowledgeHandler) HandleToggleLike(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := requesterID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := primitive.ObjectIDFromHex(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "ID bài viết không hợp lệ", common.StatusBadRequest, err))
			return nil
		}
		article, err := h.knowledgeService.ToggleLike(c.Context(), id, userID)
		h.HandleResponse(c, article, err)
		return nil
	})
}
