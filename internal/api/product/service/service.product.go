// Package productsvc - service chợ nông sản.
package productsvc

import (
	"context"
	"fmt"

	authmodels "agri_connect/internal/api/auth/models"
	basemodels "agri_connect/internal/api/base/models"
	basesvc "agri_connect/internal/api/base/service"
	productdto "agri_connect/internal/api/product/dto"
	models "agri_connect/internal/api/product/models"
	"agri_connect/internal/common"
	"agri_connect/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductService là cấu trúc chứa các phương thức liên quan đến sản phẩm
type ProductService struct {
	*basesvc.BaseServiceMongoImpl[models.Product]
}

// NewProductService tạo mới ProductService
func NewProductService() (*ProductService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("failed to get products collection: %v", common.ErrNotFound)
	}

	return &ProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Product](collection),
	}, nil
}

// Create đăng bán sản phẩm mới
func (s *ProductService) Create(ctx context.Context, sellerID primitive.ObjectID, input *productdto.ProductCreateInput) (*models.Product, error) {
	product := models.Product{
		SellerID:    sellerID,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Unit:        input.Unit,
		Quantity:    input.Quantity,
		Images:      input.Images,
		Location: models.ProductLocation{
			Province: input.Province,
			District: input.District,
		},
		Status: models.StatusAvailable,
	}
	created, err := s.InsertOne(ctx, product)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// requireSellerOrAdmin kiểm tra quyền sửa/xóa sản phẩm
func requireSellerOrAdmin(product *models.Product, userID primitive.ObjectID, role string) error {
	if role == authmodels.RoleAdmin || product.SellerID == userID {
		return nil
	}
	return common.ErrForbidden
}

// Update sửa sản phẩm (người bán hoặc admin)
func (s *ProductService) Update(ctx context.Context, id, userID primitive.ObjectID, role string, input *productdto.ProductUpdateInput) (*models.Product, error) {
	product, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireSellerOrAdmin(&product, userID, role); err != nil {
		return nil, err
	}

	update := &basesvc.UpdateData{Set: map[string]interface{}{}}
	if input.Name != "" {
		update.Set["name"] = input.Name
	}
	if input.Description != "" {
		update.Set["description"] = input.Description
	}
	if input.Category != "" {
		update.Set["category"] = input.Category
	}
	if input.Price > 0 {
		update.Set["price"] = input.Price
	}
	if input.Unit != "" {
		update.Set["unit"] = input.Unit
	}
	if input.Quantity > 0 {
		update.Set["quantity"] = input.Quantity
	}
	if input.Images != nil {
		update.Set["images"] = input.Images
	}
	if input.Province != "" {
		update.Set["location.province"] = input.Province
	}
	if input.District != "" {
		update.Set["location.district"] = input.District
	}
	if input.Status != "" {
		update.Set["status"] = input.Status
	}

	updated, err := s.UpdateById(ctx, id, update)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete xóa sản phẩm (người bán hoặc admin)
func (s *ProductService) Delete(ctx context.Context, id, userID primitive.ObjectID, role string) error {
	product, err := s.FindOneById(ctx, id)
	if err != nil {
		return err
	}
	if err := requireSellerOrAdmin(&product, userID, role); err != nil {
		return err
	}
	return s.DeleteById(ctx, id)
}

// List trả về sản phẩm theo trang với các filter danh mục / tỉnh / khoảng giá.
// Mặc định chỉ hiện sản phẩm available.
func (s *ProductService) List(ctx context.Context, query *productdto.ProductListQuery, page, limit int64) (*basemodels.PaginateResult[models.Product], error) {
	filter := bson.M{}
	if query.Status != "" {
		filter["status"] = query.Status
	} else {
		filter["status"] = models.StatusAvailable
	}
	if query.Category != "" {
		filter["category"] = query.Category
	}
	if query.Province != "" {
		filter["location.province"] = query.Province
	}
	priceRange := bson.M{}
	if query.MinPrice > 0 {
		priceRange["$gte"] = query.MinPrice
	}
	if query.MaxPrice > 0 {
		priceRange["$lte"] = query.MaxPrice
	}
	if len(priceRange) > 0 {
		filter["price"] = priceRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// Search tìm sản phẩm theo tên (không phân biệt hoa thường)
func (s *ProductService) Search(ctx context.Context, query string, page, limit int64) (*basemodels.PaginateResult[models.Product], error) {
	filter := bson.M{
		"name":   bson.M{"$regex": query, "$options": "i"},
		"status": models.StatusAvailable,
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// MarkSold đánh dấu sản phẩm đã bán (người bán hoặc admin)
func (s *ProductService) MarkSold(ctx context.Context, id, userID primitive.ObjectID, role string) (*models.Product, error) {
	product, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireSellerOrAdmin(&product, userID, role); err != nil {
		return nil, err
	}

	updated, err := s.UpdateById(ctx, id, &basesvc.UpdateData{
		Set: map[string]interface{}{"status": models.StatusSold},
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
