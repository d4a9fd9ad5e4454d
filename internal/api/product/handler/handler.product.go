// Package producthdl - handler chợ nông sản.
package producthdl

import (
	"fmt"

	basehdl "agri_connect/internal/api/base/handler"
	productdto "agri_connect/internal/api/product/dto"
	models "agri_connect/internal/api/product/models"
	productsvc "agri_connect/internal/api/product/service"
	"agri_connect/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductHandler xử lý các request chợ nông sản
type ProductHandler struct {
	*basehdl.BaseHandler[models.Product, productdto.ProductCreateInput, productdto.ProductUpdateInput]
	productService *productsvc.ProductService
}

// NewProductHandler tạo instance mới của ProductHandler
func NewProductHandler() (*ProductHandler, error) {
	productService, err := productsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %v", err)
	}
	return &ProductHandler{
		BaseHandler:    basehdl.NewBaseHandler[models.Product, productdto.ProductCreateInput, productdto.ProductUpdateInput](productService),
		productService: productService,
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

// productIDFromParams lấy ObjectID của sản phẩm từ path param
func (h *ProductHandler) productIDFromParams(c fiber.Ctx) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(h.GetIDFromContext(c))
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "ID sản phẩm không hợp lệ", common.StatusBadRequest, err)
	}
	return objID, nil
}

// HandleCreate đăng bán sản phẩm mới
func (h *ProductHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, _, err := requesterIdentity(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input productdto.ProductCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		product, err := h.productService.Create(c.Context(), userID, &input)
		h.HandleResponse(c, product, err)
		return nil
	})
}

// HandleList danh sách sản phẩm. Query: category, province, minPrice, maxPrice, status, page, limit
func (h *ProductHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var query productdto.ProductListQuery
		if err := c.Bind().Query(&query); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Tham số truy vấn không hợp lệ", common.StatusBadRequest, err))
			return nil
		}
		page, limit := h.ParsePagination(c)
		result, err := h.productService.List(c.Context(), &query, page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleSearch tìm sản phẩm theo tên. Query: q, page, limit
func (h *ProductHandler) HandleSearch(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		query := c.Query("q")
		if query == "" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Thiếu từ khóa tìm kiếm", common.StatusBadRequest, nil))
			return nil
		}
		page, limit := h.ParsePagination(c)
		result, err := h.productService.Search(c.Context(), query, page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleGet chi tiết sản phẩm
func (h *ProductHandler) HandleGet(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.productIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		product, err := h.productService.FindOneById(c.Context(), id)
		h.HandleResponse(c, product, err)
		return nil
	})
}

// HandleUpdate sửa sản phẩm (người bán hoặc admin)
func (h *ProductHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, role, err := requesterIdentity(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := h.productIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input productdto.ProductUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		product, err := h.productService.Update(c.Context(), id, userID, role, &input)
		h.HandleResponse(c, product, err)
		return nil
	})
}

// HandleDelete xóa sản phẩm (người bán hoặc admin)
func (h *ProductHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, role, err := requesterIdentity(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := h.productIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		err = h.productService.Delete(c.Context(), id, userID, role)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleMarkSold đánh dấu sản phẩm đã bán
func (h *ProductHandler) HandleMarkSold(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, role, err := requesterIdentity(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := h.productIDFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		product, err := h.productService.MarkSold(c.Context(), id, userID, role)
		h.HandleResponse(c, product, err)
		return nil
	})
}
