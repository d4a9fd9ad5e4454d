package consultationsvc

import (
	authmodels "agri_connect/internal/api/auth/models"
	models "agri_connect/internal/api/consultation/models"
	"agri_connect/internal/common"
)

// allowedTransitions định nghĩa các cạnh hợp lệ của máy trạng thái tư vấn.
// completed và cancelled là trạng thái kết thúc, không có cạnh đi ra.
var allowedTransitions = map[string][]string{
	models.StatusPending:    {models.StatusScheduled, models.StatusInProgress, models.StatusCancelled},
	models.StatusScheduled:  {models.StatusInProgress, models.StatusCancelled},
	models.StatusInProgress: {models.StatusCompleted},
	models.StatusCompleted:  {},
	models.StatusCancelled:  {},
}

// isKnownStatus kiểm tra status có thuộc máy trạng thái không
func isKnownStatus(status string) bool {
	_, ok := allowedTransitions[status]
	return ok
}

// ValidateTransition kiểm tra một chuyển trạng thái theo role của người gọi.
// Chỉ officer/admin được chuyển trạng thái, farmer bị từ chối trước khi xét
// cạnh chuyển. Cạnh không hợp lệ trả về lỗi validation kèm cả hai trạng thái.
func ValidateTransition(current, target, role string) error {
	if role != authmodels.RoleOfficer && role != authmodels.RoleAdmin {
		return common.ErrForbidden
	}
	if !isKnownStatus(target) {
		return common.NewError(common.ErrCodeValidationInput, "Trạng thái đích không hợp lệ", common.StatusBadRequest, map[string]string{
			"current": current,
			"target":  target,
		})
	}
	for _, next := range allowedTransitions[current] {
		if next == target {
			return nil
		}
	}
	return common.NewError(common.ErrCodeValidationInput, "Không thể chuyển trạng thái "+current+" sang "+target, common.StatusBadRequest, map[string]string{
		"current": current,
		"target":  target,
	})
}
