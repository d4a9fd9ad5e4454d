// Package authsvc - service đặt lại mật khẩu qua email.
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	authdto "agri_connect/internal/api/auth/dto"
	models "agri_connect/internal/api/auth/models"
	basesvc "agri_connect/internal/api/base/service"
	"agri_connect/internal/common"
	"agri_connect/internal/global"
	"agri_connect/internal/mailer"
	"agri_connect/internal/utility"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// Thời gian hiệu lực của mã đặt lại mật khẩu
const resetCodeTTLMinutes = 15

// PasswordResetService xử lý luồng quên mật khẩu: phát mã qua email, xác thực mã, đặt mật khẩu mới.
// Mã được lưu dưới dạng bcrypt hash, bản ghi hết hạn do TTL index tự dọn.
type PasswordResetService struct {
	*basesvc.BaseServiceMongoImpl[models.PasswordReset]
	userService *UserService
	mailer      *mailer.Mailer
}

// NewPasswordResetService tạo mới PasswordResetService
func NewPasswordResetService(m *mailer.Mailer) (*PasswordResetService, error) {
	resetCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.PasswordResets)
	if !exist {
		return nil, fmt.Errorf("failed to get password_resets collection: %v", common.ErrNotFound)
	}
	userService, err := NewUserService()
	if err != nil {
		return nil, err
	}

	return &PasswordResetService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.PasswordReset](resetCollection),
		userService:          userService,
		mailer:               m,
	}, nil
}

// RequestReset phát mã đặt lại mật khẩu và gửi qua email.
// Email không tồn tại vẫn trả về thành công để tránh dò tài khoản,
// nhưng lỗi gửi email (kể cả thiếu cấu hình SMTP) được trả về nguyên vẹn.
func (s *PasswordResetService) RequestReset(ctx context.Context, input *authdto.RequestPasswordResetInput) error {
	user, err := s.userService.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			logrus.WithFields(logrus.Fields{"email": input.Email}).Warn("RequestReset: Email không tồn tại, bỏ qua")
			return nil
		}
		return err
	}

	code, err := utility.RandomDigits(6)
	if err != nil {
		return common.NewError(common.ErrCodeInternalServer, "Không thể sinh mã đặt lại mật khẩu", common.StatusInternalServerError, err)
	}

	codeHash, err := utility.HashPassword(code)
	if err != nil {
		return common.NewError(common.ErrCodeInternalServer, "Không thể xử lý mã đặt lại mật khẩu", common.StatusInternalServerError, err)
	}

	// Vô hiệu các mã cũ chưa dùng trước khi phát mã mới
	_, err = s.BaseServiceMongoImpl.UpdateMany(ctx,
		bson.M{"userId": user.ID, "used": false},
		&basesvc.UpdateData{Set: map[string]interface{}{"used": true}},
		nil,
	)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return err
	}

	reset := models.PasswordReset{
		UserID:    user.ID,
		CodeHash:  codeHash,
		ExpiresAt: time.Now().Add(resetCodeTTLMinutes * time.Minute),
		Used:      false,
	}
	if _, err := s.BaseServiceMongoImpl.InsertOne(ctx, reset); err != nil {
		return err
	}

	// Gửi mã qua email. Thiếu cấu hình SMTP sẽ trả về UPS_002 thay vì im lặng.
	if err := s.mailer.SendPasswordResetCode(user.Email, user.Name, code, resetCodeTTLMinutes); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID.Hex()}).Info("RequestReset: Đã gửi mã đặt lại mật khẩu")
	return nil
}

// ResetPassword xác thực mã và đặt mật khẩu mới.
// Mã sai, đã dùng hoặc hết hạn đều trả về cùng một lỗi xác thực.
func (s *PasswordResetService) ResetPassword(ctx context.Context, input *authdto.ResetPasswordInput) error {
	user, err := s.userService.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrInvalidCredentials
		}
		return err
	}

	// Lấy mã mới nhất còn hiệu lực của user
	opts := mongoopts.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	reset, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{
		"userId":    user.ID,
		"used":      false,
		"expiresAt": bson.M{"$gt": time.Now()},
	}, opts)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrInvalidCredentials
		}
		return err
	}

	if !utility.CheckPassword(reset.CodeHash, input.Code) {
		logrus.WithFields(logrus.Fields{"user_id": user.ID.Hex()}).Warn("ResetPassword: Mã không đúng")
		return common.ErrInvalidCredentials
	}

	hash, err := utility.HashPassword(input.NewPassword)
	if err != nil {
		return common.NewError(common.ErrCodeInternalServer, "Không thể xử lý mật khẩu", common.StatusInternalServerError, err)
	}

	// Đánh dấu mã đã dùng trước khi đổi mật khẩu (mỗi mã chỉ dùng một lần)
	if _, err := s.BaseServiceMongoImpl.UpdateById(ctx, reset.ID, &basesvc.UpdateData{
		Set: map[string]interface{}{"used": true},
	}); err != nil {
		return err
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{"password": hash},
		Inc: map[string]interface{}{"tokenVersion": int64(1)},
	}
	if _, err := s.userService.UpdateById(ctx, user.ID, updateData); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID.Hex()}).Info("ResetPassword: Đặt lại mật khẩu thành công")
	return nil
}
