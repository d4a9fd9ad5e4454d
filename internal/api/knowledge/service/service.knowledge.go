// Package knowledgesvc - service thư viện kiến thức nông nghiệp.
package knowledgesvc

import (
	"context"
	"errors"
	"fmt"

	basemodels "agri_connect/internal/api/base/models"
	basesvc "agri_connect/internal/api/base/service"
	knowledgedto "agri_connect/internal/api/knowledge/dto"
	models "agri_connect/internal/api/knowledge/models"
	"agri_connect/internal/common"
	"agri_connect/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// KnowledgeService là cấu trúc chứa các phương thức liên quan đến thư viện kiến thức
type KnowledgeService struct {
	*basesvc.BaseServiceMongoImpl[models.KnowledgeArticle]
}

// NewKnowledgeService tạo mới KnowledgeService
func NewKnowledgeService() (*KnowledgeService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.KnowledgeArticles)
	if !exist {
		return nil, fmt.Errorf("failed to get knowledge articles collection: %v", common.ErrNotFound)
	}

	return &KnowledgeService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.KnowledgeArticle](collection),
	}, nil
}

// GetWithView trả về bài viết đã publish và tăng viewCount trong cùng thao tác
func (s *KnowledgeService) GetWithView(ctx context.Context, id primitive.ObjectID) (*models.KnowledgeArticle, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	article, err := s.FindOneAndUpdate(ctx, bson.M{"_id": id, "published": true}, &basesvc.UpdateData{
		Inc: map[string]interface{}{"viewCount": int64(1)},
	}, opts)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// List trả về bài viết đã publish theo trang, lọc tùy chọn theo category/crop
func (s *KnowledgeService) List(ctx context.Context, category, crop string, page, limit int64) (*basemodels.PaginateResult[models.KnowledgeArticle], error) {
	filter := bson.M{"published": true}
	if category != "" {
		filter["category"] = category
	}
	if crop != "" {
		filter["crop"] = crop
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// Update sửa bài viết kiến thức. Quyền officer/admin đã được gate ở route.
func (s *KnowledgeService) Update(ctx context.Context, id primitive.ObjectID, input *knowledgedto.KnowledgeUpdateInput) (*models.KnowledgeArticle, error) {
	update := &basesvc.UpdateData{Set: map[string]interface{}{}}
	if input.Title != "" {
		update.Set["title"] = input.Title
	}
	if input.Content != "" {
		update.Set["content"] = input.Content
	}
	if input.Category != "" {
		update.Set["category"] = input.Category
	}
	if input.Crop != "" {
		update.Set["crop"] = input.Crop
	}
	if input.Tags != nil {
		update.Set["tags"] = input.Tags
	}
	if input.Images != nil {
		update.Set["images"] = input.Images
	}
	if input.Published != nil {
		update.Set["published"] = *input.Published
	}

	updated, err := s.UpdateById(ctx, id, update)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete xóa bài viết kiến thức. Quyền officer/admin đã được gate ở route.
func (s *KnowledgeService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.DeleteById(ctx, id)
}

// Search tìm kiếm full-text trên title, content, tags và crop
func (s *KnowledgeService) Search(ctx context.Context, query string, page, limit int64) (*basemodels.PaginateResult[models.KnowledgeArticle], error) {
	filter := bson.M{
		"$text":     bson.M{"$search": query},
		"published": true,
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// ToggleLike đảo trạng thái thích bài viết, cùng mẫu nguyên tử với diễn đàn:
// điều kiện membership nằm trong filter của một update duy nhất.
func (s *KnowledgeService) ToggleLike(ctx context.Context, id, userID primitive.ObjectID) (*models.KnowledgeArticle, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	liked, err := s.FindOneAndUpdate(ctx, bson.M{
		"_id":   id,
		"likes": bson.M{"$ne": userID},
	}, &basesvc.UpdateData{
		AddToSet: map[string]interface{}{"likes": userID},
		Inc:      map[string]interface{}{"likeCount": int64(1)},
	}, opts)
	if err == nil {
		return &liked, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	unliked, err := s.FindOneAndUpdate(ctx, bson.M{
		"_id":   id,
		"likes": userID,
	}, &basesvc.UpdateData{
		Pull: map[string]interface{}{"likes": userID},
		Inc:  map[string]interface{}{"likeCount": int64(-1)},
	}, opts)
	if err != nil {
		return nil, err
	}
	return &unliked, nil
}
