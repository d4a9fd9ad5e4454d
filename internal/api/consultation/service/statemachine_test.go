// Package consultationsvc - Test máy trạng thái phiên tư vấn.
package consultationsvc

import (
	"errors"
	"testing"

	authmodels "agri_connect/internal/api/auth/models"
	models "agri_connect/internal/api/consultation/models"
	"agri_connect/internal/common"
)

func TestValidateTransition_FullMatrix(t *testing.T) {
	allStatuses := []string{
		models.StatusPending,
		models.StatusScheduled,
		models.StatusInProgress,
		models.StatusCompleted,
		models.StatusCancelled,
	}

	allowed := map[string]map[string]bool{
		models.StatusPending: {
			models.StatusScheduled:  true,
			models.StatusInProgress: true,
			models.StatusCancelled:  true,
		},
		models.StatusScheduled: {
			models.StatusInProgress: true,
			models.StatusCancelled:  true,
		},
		models.StatusInProgress: {
			models.StatusCompleted: true,
		},
		models.StatusCompleted: {},
		models.StatusCancelled: {},
	}

	for _, current := range allStatuses {
		for _, target := range allStatuses {
			err := ValidateTransition(current, target, authmodels.RoleOfficer)
			if allowed[current][target] && err != nil {
				t.Errorf("chuyển %s -> %s phải hợp lệ, nhận lỗi: %v", current, target, err)
			}
			if !allowed[current][target] && err == nil {
				t.Errorf("chuyển %s -> %s phải bị từ chối", current, target)
			}
		}
	}
}

func TestValidateTransition_TerminalStatesHaveNoExit(t *testing.T) {
	for _, terminal := range []string{models.StatusCompleted, models.StatusCancelled} {
		for _, target := range []string{models.StatusPending, models.StatusScheduled, models.StatusInProgress} {
			if err := ValidateTransition(terminal, target, authmodels.RoleAdmin); err == nil {
				t.Errorf("trạng thái kết thúc %s không được có cạnh đi ra (%s)", terminal, target)
			}
		}
	}
}

func TestValidateTransition_FarmerForbiddenBeforeEdgeCheck(t *testing.T) {
	// Farmer bị chặn kể cả với cạnh hợp lệ
	err := ValidateTransition(models.StatusPending, models.StatusScheduled, authmodels.RoleFarmer)
	if !errors.Is(err, common.ErrForbidden) {
		t.Errorf("farmer chuyển trạng thái phải nhận ErrForbidden, nhận: %v", err)
	}

	// Và cả với cạnh không hợp lệ: role được xét trước cạnh
	err = ValidateTransition(models.StatusCompleted, models.StatusPending, authmodels.RoleFarmer)
	if !errors.Is(err, common.ErrForbidden) {
		t.Errorf("farmer phải nhận ErrForbidden trước khi xét cạnh, nhận: %v", err)
	}
}

func TestValidateTransition_AdminAllowed(t *testing.T) {
	if err := ValidateTransition(models.StatusScheduled, models.StatusInProgress, authmodels.RoleAdmin); err != nil {
		t.Errorf("admin chuyển scheduled -> in-progress phải hợp lệ, nhận lỗi: %v", err)
	}
}

func TestValidateTransition_UnknownTargetRejected(t *testing.T) {
	err := ValidateTransition(models.StatusPending, "archived", authmodels.RoleOfficer)
	if err == nil {
		t.Fatal("trạng thái đích không tồn tại phải bị từ chối")
	}

	var appErr *common.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("lỗi phải thuộc taxonomy của hệ thống, nhận: %T", err)
	}
	if appErr.StatusCode != common.StatusBadRequest {
		t.Errorf("lỗi cạnh không hợp lệ phải là 400, nhận: %d", appErr.StatusCode)
	}
}
