// Package consultationdto - các DTO đầu vào cho domain consultation.
package consultationdto

// ConsultationCreateInput đầu vào tạo phiên tư vấn (farmer).
type ConsultationCreateInput struct {
	Topic       string `json:"topic" validate:"required,no_xss,max=200"`
	Description string `json:"description,omitempty" validate:"omitempty,max=4000"`
	Crop        string `json:"crop,omitempty" validate:"omitempty,no_xss,max=100"`
}

// ConsultationTransitionInput đầu vào chuyển trạng thái (officer/admin).
// ScheduledAt (unix millis) chỉ có nghĩa khi chuyển sang scheduled.
type ConsultationTransitionInput struct {
	Status      string `json:"status" validate:"required"`
	ScheduledAt int64  `json:"scheduledAt,omitempty" validate:"omitempty,gt=0"`
}

// ConsultationNoteInput đầu vào thêm ghi chú.
type ConsultationNoteInput struct {
	Content string `json:"content" validate:"required,max=4000"`
}

// ConsultationFeedbackInput đầu vào đánh giá của nông dân.
type ConsultationFeedbackInput struct {
	Rating  int64  `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}
