// Package consultationhdl - handler phiên tư vấn.
package consultationhdl

import (
	"fmt"

	basehdl "agri_connect/internal/api/base/handler"
	consultationdto "agri_connect/internal/api/consultation/dto"
	models "agri_connect/internal/api/consultation/models"
	consultationsvc "agri_connect/internal/api/consultation/service"
	"agri_connect/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConsultationHandler xử lý các request phiên tư vấn
type ConsultationHandler struct {
	*basehdl.BaseHandler[models.Consultation, consultationdto.ConsultationCreateInput, consultationdto.ConsultationNoteInput]
	consultationService *consultationsvc.ConsultationService
}

// NewConsultationHandler tạo instance mới của ConsultationHandler
func NewConsultationHandler() (*ConsultationHandler, error) {
	consultationService, err := consultationsvc.NewConsultationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create consultation service: %v", err)
	}
	return &ConsultationHandler{
		BaseHandler:         basehdl.NewBaseHandler[models.Consultation, consultationdto.ConsultationCreateInput, consultationdto.ConsultationNoteInput](consultationService),
		consultationService: consultationService,
	}, nil
}

// requesteridentity lấy ObjectID và role của user đang đăng nhập
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

// consultationIDFromParams lấy ObjectID của phiên từ path param
func (h *ConsultationHandler) consultationIDFromParams(c fiber.Ctx) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(h.GetIDFromContext(c))
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "ID phiên tư vấn không hợp lệ", common.StatusBadRequest, err)
	}
	return objID, nil
}

// HandleCreate tạo phiên tư vấn mới (farmer)
func (h *ConsultationHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, _, err := requesterIdentity(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input consultationdto.ConsultationCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		consultation, err := h.consultationService.Create(c.Context(), userID, &input)
		h.HandleResponse(c, consultation, err)
		return nil
	})
}

// HandleList trả về phiên tư vấn theo phạm vi role, phân trang
func (h *ConsultationHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, role, err := requesterIdentity(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		page, limit := h.ParsePagination(c)
		result, err := h.consultationService.List(c.Context(), userID, role, page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleGet trả về một phiên tư vấn
func (h *ConsultationHandler) HandleGet(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, role, err := requesterIdentity(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := h.consultationIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		consultation, err := h.consultationService.Get(c.Context(), id, userID, role)
		h.HandleResponse(c, consultation, err)
		return nil
	})
}

// HandleTransition chuyển trạng thái phiên (officer/admin)
func (h *ConsultationHandler) HandleTransition(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, role, err := requesterIdentity(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := h.consultationIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input consultationdto.ConsultationTransitionInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		consultation, err := h.consultationService.Transition(c.Context(), id, userID, role, &input)
		h.HandleResponse(c, consultation, err)
		return nil
	})
}

// HandleAddNote thêm ghi chú vào phiên
func (h *ConsultationHandler) HandleAddNote(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, role, err := requesterIdentity(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := h.consultationIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input consultationdto.ConsultationNoteInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		consultation, err := h.consultationService.AddNote(c.Context(), id, userID, role, &input)
		h.HandleResponse(c, consultation, err)
		return nil
	})
}

// HandleSubmitFeedback ghi đánh giá của nông dân sau khi phiên hoàn thành
func (h *ConsultationHandler) HandleSubmitFeedback(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, _, err := requesterIdentity(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := h.consultationIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input consultationdto.ConsultationFeedbackInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		consultation, err := h.consultationService.SubmitFeedback(c.Context(), id, userID, &input)
		h.HandleResponse(c, consultation, err)
		return nil
	})
}
