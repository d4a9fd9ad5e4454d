// Package productdto - các DTO đầu vào cho domain product.
package productdto

// ProductCreateInput đầu vào đăng bán sản phẩm.
type ProductCreateInput struct {
	Name        string   `json:"name" validate:"required,no_xss,max=200"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=4000"`
	Category    string   `json:"category,omitempty" validate:"omitempty,no_xss,max=100"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Unit        string   `json:"unit,omitempty" validate:"omitempty,no_xss,max=20"`
	Quantity    float64  `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Images      []string `json:"images,omitempty" validate:"omitempty,max=10,dive,url"`
	Province    string   `json:"province,omitempty" validate:"omitempty,no_xss,max=100"`
	District    string   `json:"district,omitempty" validate:"omitempty,no_xss,max=100"`
}

// ProductUpdateInput đầu vào sửa sản phẩm (người bán hoặc admin).
type ProductUpdateInput struct {
	Name        string   `json:"name,omitempty" validate:"omitempty,no_xss,max=200"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=4000"`
	Category    string   `json:"category,omitempty" validate:"omitempty,no_xss,max=100"`
	Price       float64  `json:"price,omitempty" validate:"omitempty,gt=0"`
	Unit        string   `json:"unit,omitempty" validate:"omitempty,no_xss,max=20"`
	Quantity    float64  `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Images      []string `json:"images,omitempty" validate:"omitempty,max=10,dive,url"`
	Province    string   `json:"province,omitempty" validate:"omitempty,no_xss,max=100"`
	District    string   `json:"district,omitempty" validate:"omitempty,no_xss,max=100"`
	Status      string   `json:"status,omitempty" validate:"omitempty,oneof=available sold hidden"`
}

// ProductListQuery các filter danh sách sản phẩm trên query string.
type ProductListQuery struct {
	Category string  `query:"category"`
	Province string  `query:"province"`
	MinPrice float64 `query:"minPrice"`
	MaxPrice float64 `query:"maxPrice"`
	Status   string  `query:"status"`
}
