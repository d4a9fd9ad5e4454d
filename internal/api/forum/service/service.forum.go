// Package forumsvc - service diễn đàn cộng đồng.
package forumsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	authmodels "agri_connect/internal/api/auth/models"
	basemodels "agri_connect/internal/api/base/models"
	basesvc "agri_connect/internal/api/base/service"
	forumdto "agri_connect/internal/api/forum/dto"
	models "agri_connect/internal/api/forum/models"
	"agri_connect/internal/common"
	"agri_connect/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ForumService là cấu trúc chứa các phương thức liên quan đến diễn đàn
type ForumService struct {
	*basesvc.BaseServiceMongoImpl[models.ForumPost]
}

// NewForumService tạo mới ForumService
func NewForumService() (*ForumService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ForumPosts)
	if !exist {
		return nil, fmt.Errorf("failed to get forum posts collection: %v", common.ErrNotFound)
	}

	return &ForumService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.ForumPost](collection),
	}, nil
}

// Create tạo bài viết mới
func (s *ForumService) Create(ctx context.Context, authorID primitive.ObjectID, input *forumdto.ForumPostCreateInput) (*models.ForumPost, error) {
	post := models.ForumPost{
		AuthorID: authorID,
		Title:    input.Title,
		Content:  input.Content,
		Tags:     input.Tags,
		Images:   input.Images,
		Likes:    []primitive.ObjectID{},
		Comments: []models.ForumComment{},
	}
	created, err := s.InsertOne(ctx, post)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// requireAuthorOrAdmin kiểm tra quyền sửa/xóa trên bài viết
func requireAuthorOrAdmin(post *models.ForumPost, userID primitive.ObjectID, role string) error {
	if role == authmodels.RoleAdmin || post.AuthorID == userID {
		return nil
	}
	return common.ErrForbidden
}

// Update sửa bài viết (tác giả hoặc admin)
func (s *ForumService) Update(ctx context.Context, id, userID primitive.ObjectID, role string, input *forumdto.ForumPostUpdateInput) (*models.ForumPost, error) {
	post, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireAuthorOrAdmin(&post, userID, role); err != nil {
		return nil, err
	}

	update := &basesvc.UpdateData{Set: map[string]interface{}{}}
	if input.Title != "" {
		update.Set["title"] = input.Title
	}
	if input.Content != "" {
		update.Set["content"] = input.Content
	}
	if input.Tags != nil {
		update.Set["tags"] = input.Tags
	}
	if input.Images != nil {
		update.Set["images"] = input.Images
	}

	updated, err := s.UpdateById(ctx, id, update)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete xóa bài viết (tác giả hoặc admin)
func (s *ForumService) Delete(ctx context.Context, id, userID primitive.ObjectID, role string) error {
	post, err := s.FindOneById(ctx, id)
	if err != nil {
		return err
	}
	if err := requireAuthorOrAdmin(&post, userID, role); err != nil {
		return err
	}
	return s.DeleteById(ctx, id)
}

// Get trả về bài viết và tăng viewCount trong cùng một thao tác
func (s *ForumService) Get(ctx context.Context, id primitive.ObjectID) (*models.ForumPost, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	post, err := s.FindOneAndUpdate(ctx, bson.M{"_id": id}, &basesvc.UpdateData{
		Inc: map[string]interface{}{"viewCount": int64(1)},
	}, opts)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List trả về bài viết theo trang, mới nhất trước. Lọc tùy chọn theo tag.
func (s *ForumService) List(ctx context.Context, tag string, page, limit int64) (*basemodels.PaginateResult[models.ForumPost], error) {
	filter := bson.M{}
	if tag != "" {
		filter["tags"] = tag
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// Trending trả về bài viết nổi bật, xếp theo lượt thích rồi lượt bình luận
func (s *ForumService) Trending(ctx context.Context, page, limit int64) (*basemodels.PaginateResult[models.ForumPost], error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "likeCount", Value: -1},
		{Key: "commentCount", Value: -1},
		{Key: "createdAt", Value: -1},
	})
	return s.FindWithPagination(ctx, bson.M{}, page, limit, opts)
}

// Search tìm kiếm full-text trên title, content và tags
func (s *ForumService) Search(ctx context.Context, query string, page, limit int64) (*basemodels.PaginateResult[models.ForumPost], error) {
	filter := bson.M{"$text": bson.M{"$search": query}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// notYetLikedFilter chọn bài viết mà user CHƯA nằm trong likes
func notYetLikedFilter(id, userID primitive.ObjectID) bson.M {
	return bson.M{
		"_id":   id,
		"likes": bson.M{"$ne": userID},
	}
}

// alreadyLikedFilter chọn bài viết mà user ĐÃ nằm trong likes
func alreadyLikedFilter(id, userID primitive.ObjectID) bson.M {
	return bson.M{
		"_id":   id,
		"likes": userID,
	}
}

// ToggleLikePost đảo trạng thái thích bài viết của một user.
// Like và unlike đều là một update duy nhất với điều kiện membership nằm
// trong filter, nên hai request trùng nhau chỉ net về một lần đảo:
// request thua điều kiện $ne/$eq sẽ rơi sang nhánh còn lại hoặc không khớp.
func (s *ForumService) ToggleLikePost(ctx context.Context, id, userID primitive.ObjectID) (*models.ForumPost, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	// Chưa thích: thêm vào likes và tăng likeCount
	liked, err := s.FindOneAndUpdate(ctx, notYetLikedFilter(id, userID), &basesvc.UpdateData{
		AddToSet: map[string]interface{}{"likes": userID},
		Inc:      map[string]interface{}{"likeCount": int64(1)},
	}, opts)
	if err == nil {
		return &liked, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	// Đã thích: gỡ khỏi likes và giảm likeCount
	unliked, err := s.FindOneAndUpdate(ctx, alreadyLikedFilter(id, userID), &basesvc.UpdateData{
		Pull: map[string]interface{}{"likes": userID},
		Inc:  map[string]interface{}{"likeCount": int64(-1)},
	}, opts)
	if err != nil {
		return nil, err
	}
	return &unliked, nil
}

// ToggleLikeComment đảo trạng thái thích một bình luận, cùng mẫu nguyên tử
// với ToggleLikePost nhưng định vị phần tử mảng bằng $elemMatch.
func (s *ForumService) ToggleLikeComment(ctx context.Context, postID, commentID, userID primitive.ObjectID) (*models.ForumPost, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	liked, err := s.FindOneAndUpdate(ctx, bson.M{
		"_id": postID,
		"comments": bson.M{"$elemMatch": bson.M{
			"_id":   commentID,
			"likes": bson.M{"$ne": userID},
		}},
	}, &basesvc.UpdateData{
		AddToSet: map[string]interface{}{"comments.$.likes": userID},
	}, opts)
	if err == nil {
		return &liked, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	unliked, err := s.FindOneAndUpdate(ctx, bson.M{
		"_id": postID,
		"comments": bson.M{"$elemMatch": bson.M{
			"_id":   commentID,
			"likes": userID,
		}},
	}, &basesvc.UpdateData{
		Pull: map[string]interface{}{"comments.$.likes": userID},
	}, opts)
	if err != nil {
		return nil, err
	}
	return &unliked, nil
}

// AddComment thêm bình luận vào bài viết
func (s *ForumService) AddComment(ctx context.Context, postID, authorID primitive.ObjectID, input *forumdto.ForumCommentInput) (*models.ForumPost, error) {
	comment := models.ForumComment{
		ID:        primitive.NewObjectID(),
		AuthorID:  authorID,
		Content:   input.Content,
		Likes:     []primitive.ObjectID{},
		CreatedAt: time.Now().UnixMilli(),
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	updated, err := s.FindOneAndUpdate(ctx, bson.M{"_id": postID}, &basesvc.UpdateData{
		Push: map[string]interface{}{"comments": comment},
		Inc:  map[string]interface{}{"commentCount": int64(1)},
	}, opts)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteComment xóa bình luận (tác giả bình luận hoặc admin)
func (s *ForumService) DeleteComment(ctx context.Context, postID, commentID, userID primitive.ObjectID, role string) (*models.ForumPost, error) {
	post, err := s.FindOneById(ctx, postID)
	if err != nil {
		return nil, err
	}

	var found *models.ForumComment
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			found = &post.Comments[i]
			break
		}
	}
	if found == nil {
		return nil, common.ErrNotFound
	}
	if role != authmodels.RoleAdmin && found.AuthorID != userID {
		return nil, common.ErrForbidden
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	updated, err := s.FindOneAndUpdate(ctx, bson.M{
		"_id":          postID,
		"comments._id": commentID,
	}, &basesvc.UpdateData{
		Pull: map[string]interface{}{"comments": bson.M{"_id": commentID}},
		Inc:  map[string]interface{}{"commentCount": int64(-1)},
	}, opts)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
