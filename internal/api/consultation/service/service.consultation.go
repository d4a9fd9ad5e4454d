// Package consultationsvc - service phiên tư vấn.
package consultationsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	authmodels "agri_connect/internal/api/auth/models"
	basemodels "agri_connect/internal/api/base/models"
	basesvc "agri_connect/internal/api/base/service"
	consultationdto "agri_connect/internal/api/consultation/dto"
	models "agri_connect/internal/api/consultation/models"
	outboxmodels "agri_connect/internal/api/outbox/models"
	outboxsvc "agri_connect/internal/api/outbox/service"
	"agri_connect/internal/common"
	"agri_connect/internal/global"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConsultationService là cấu trúc chứa các phương thức liên quan đến phiên tư vấn
type ConsultationService struct {
	*basesvc.BaseServiceMongoImpl[models.Consultation]
	outboxService *outboxsvc.OutboxService
}

// NewConsultationService tạo mới ConsultationService
func NewConsultationService() (*ConsultationService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Consultations)
	if !exist {
		return nil, fmt.Errorf("failed to get consultations collection: %v", common.ErrNotFound)
	}
	outboxService, err := outboxsvc.NewOutboxService()
	if err != nil {
		return nil, err
	}

	return &ConsultationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Consultation](collection),
		outboxService:        outboxService,
	}, nil
}

// Create tạo phiên tư vấn mới ở trạng thái pending (farmer)
func (s *ConsultationService) Create(ctx context.Context, farmerID primitive.ObjectID, input *consultationdto.ConsultationCreateInput) (*models.Consultation, error) {
	consultation := models.Consultation{
		FarmerID:    farmerID,
		Topic:       input.Topic,
		Description: input.Description,
		Crop:        input.Crop,
		Status:      models.StatusPending,
	}
	created, err := s.InsertOne(ctx, consultation)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// scopeFilter trả về filter theo phạm vi của role:
// farmer thấy phiên của mình, officer thấy phiên được gán + pool pending,
// admin thấy tất cả.
func scopeFilter(userID primitive.ObjectID, role string) bson.M {
	switch role {
	case authmodels.RoleFarmer:
		return bson.M{"farmerId": userID}
	case authmodels.RoleOfficer:
		return bson.M{"$or": []bson.M{
			{"officerId": userID},
			{"status": models.StatusPending},
		}}
	default:
		return bson.M{}
	}
}

// List trả về phiên tư vấn theo phạm vi của role, mới nhất trước
func (s *ConsultationService) List(ctx context.Context, userID primitive.ObjectID, role string, page, limit int64) (*basemodels.PaginateResult[models.Consultation], error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, scopeFilter(userID, role), page, limit, opts)
}

// Get trả về một phiên tư vấn nếu người gọi thuộc phạm vi truy cập
func (s *ConsultationService) Get(ctx context.Context, id, userID primitive.ObjectID, role string) (*models.Consultation, error) {
	consultation, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canAccess(&consultation, userID, role) {
		return nil, common.ErrForbidden
	}
	return &consultation, nil
}

// canAccess kiểm tra quyền truy cập một phiên cụ thể
func canAccess(c *models.Consultation, userID primitive.ObjectID, role string) bool {
	switch role {
	case authmodels.RoleAdmin:
		return true
	case authmodels.RoleOfficer:
		return c.OfficerID == userID || c.Status == models.StatusPending
	default:
		return c.FarmerID == userID
	}
}

// Transition chuyển trạng thái phiên tư vấn (officer/admin).
// Update có điều kiện trên trạng thái hiện tại nên hai request đua nhau
// chỉ có một request thắng; request thua nhận lỗi trạng thái không hợp lệ.
func (s *ConsultationService) Transition(ctx context.Context, id, byUserID primitive.ObjectID, role string, input *consultationdto.ConsultationTransitionInput) (*models.Consultation, error) {
	consultation, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ValidateTransition(consultation.Status, input.Status, role); err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{"status": input.Status},
		Push: map[string]interface{}{
			"history": models.StatusChange{
				From:     consultation.Status,
				To:       input.Status,
				ByUserID: byUserID,
				At:       now,
			},
		},
	}
	// Officer nhận phiên từ pool pending thì được gán luôn
	if consultation.OfficerID.IsZero() && role == authmodels.RoleOfficer {
		update.Set["officerId"] = byUserID
	}
	if input.Status == models.StatusScheduled && input.ScheduledAt > 0 {
		update.Set["scheduledAt"] = input.ScheduledAt
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	updated, err := s.FindOneAndUpdate(ctx, bson.M{"_id": id, "status": consultation.Status}, update, opts)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrCodeValidationInput, "Trạng thái phiên đã thay đổi, vui lòng thử lại", common.StatusBadRequest, nil)
		}
		return nil, err
	}

	if err := s.outboxService.Emit(ctx, outboxmodels.TopicConsultationStatus, "user:"+updated.FarmerID.Hex(), map[string]interface{}{
		"consultationId": updated.ID.Hex(),
		"from":           consultation.Status,
		"to":             updated.Status,
		"byUserId":       byUserID.Hex(),
		"at":             now,
	}); err != nil {
		logrus.Errorf("❌ [CONSULTATION] Ghi outbox consultation.status thất bại: %v", err)
	}

	return &updated, nil
}

// AddNote thêm ghi chú vào phiên. Chỉ farmer chủ phiên, officer được gán
// hoặc admin được thêm.
func (s *ConsultationService) AddNote(ctx context.Context, id, authorID primitive.ObjectID, role string, input *consultationdto.ConsultationNoteInput) (*models.Consultation, error) {
	consultation, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != authmodels.RoleAdmin && consultation.FarmerID != authorID && consultation.OfficerID != authorID {
		return nil, common.ErrForbidden
	}

	updated, err := s.UpdateById(ctx, id, &basesvc.UpdateData{
		Push: map[string]interface{}{
			"notes": models.ConsultationNote{
				AuthorID:  authorID,
				Content:   input.Content,
				CreatedAt: time.Now().UnixMilli(),
			},
		},
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// pendingFeedbackFilter chọn phiên completed của đúng nông dân và chưa có
// feedback (so khớp tường minh với null)
func pendingFeedbackFilter(id, farmerID primitive.ObjectID) bson.M {
	return bson.M{
		"_id":      id,
		"farmerId": farmerID,
		"status":   models.StatusCompleted,
		"feedback": nil,
	}
}

// SubmitFeedback ghi đánh giá của nông dân, đúng một lần, chỉ khi phiên
// đã completed. Toàn bộ điều kiện nằm trong filter của một update duy nhất
// nên hai request trùng nhau không thể tạo hai feedback.
func (s *ConsultationService) SubmitFeedback(ctx context.Context, id, farmerID primitive.ObjectID, input *consultationdto.ConsultationFeedbackInput) (*models.Consultation, error) {
	filter := pendingFeedbackFilter(id, farmerID)
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"feedback": models.ConsultationFeedback{
				Rating:    input.Rating,
				Comment:   input.Comment,
				CreatedAt: time.Now().UnixMilli(),
			},
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	updated, err := s.FindOneAndUpdate(ctx, filter, update, opts)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	// Filter không khớp: tìm nguyên nhân cụ thể để trả lỗi chính xác
	consultation, findErr := s.FindOneById(ctx, id)
	if findErr != nil {
		return nil, findErr
	}
	if consultation.FarmerID != farmerID {
		return nil, common.ErrForbidden
	}
	if consultation.Status != models.StatusCompleted {
		return nil, common.NewError(common.ErrCodeBusinessState, "Chỉ đánh giá được phiên đã hoàn thành", common.StatusBadRequest, nil)
	}
	return nil, common.NewError(common.ErrCodeBusinessState, "Phiên này đã được đánh giá", common.StatusBadRequest, nil)
}
