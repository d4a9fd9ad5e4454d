// Package marketdto - các DTO đầu vào cho domain market.
package marketdto

// RecordPriceInput đầu vào ghi nhận giá (officer/admin).
// RecordedAt (unix millis) để trống thì lấy thời điểm hiện tại.
type RecordPriceInput struct {
	Product    string  `json:"product" validate:"required,no_xss,max=100"`
	Market     string  `json:"market,omitempty" validate:"omitempty,no_xss,max=200"`
	Province   string  `json:"province" validate:"required,no_xss,max=100"`
	Price      float64 `json:"price" validate:"required,gt=0"`
	Unit       string  `json:"unit,omitempty" validate:"omitempty,no_xss,max=20"`
	RecordedAt int64   `json:"recordedAt,omitempty" validate:"omitempty,gt=0"`
}

// PriceHistoryQuery các tham số truy vấn lịch sử giá.
type PriceHistoryQuery struct {
	Product  string `query:"product"`
	Province string `query:"province"`
	FromAt   int64  `query:"fromAt"` // unix millis
	ToAt     int64  `query:"toAt"`   // unix millis
}
