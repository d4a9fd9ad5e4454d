// Package authsvc - service người dùng (User).
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
	"agri_connect/internal/utility"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}

	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](userCollection),
	}, nil
}

// Register đăng ký tài khoản mới với mật khẩu được băm bcrypt.
// Email trùng trả về lỗi AUTH_005 (duplicate account).
func (s *UserService) Register(ctx context.Context, input *authdto.UserRegisterInput) (*models.User, error) {
	hash, err := utility.HashPassword(input.Password)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Không thể xử lý mật khẩu", common.StatusInternalServerError, err)
	}

	role := input.Role
	if role == "" {
		role = models.RoleFarmer
	}

	user := models.User{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Password:  hash,
		Role:      role,
		Crops:     input.Crops,
		FarmSize:  input.FarmSize,
		Expertise: input.Expertise,
	}
	if input.Location != nil {
		user.Location = models.UserLocation{
			Province:    input.Location.Province,
			District:    input.Location.District,
			Coordinates: input.Location.Coordinates,
		}
	}

	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrMongoDuplicate) {
			return nil, common.ErrDuplicateAccount
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": created.ID.Hex(), "role": created.Role}).Info("Register: Đăng ký tài khoản thành công")
	return &created, nil
}

// Login xác thực email + mật khẩu và phát hành access token.
// Token mang tokenVersion hiện tại của user để có thể thu hồi về sau.
func (s *UserService) Login(ctx context.Context, input *authdto.UserLoginInput) (*models.User, string, error) {
	user, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Không tiết lộ email có tồn tại hay không
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !utility.CheckPassword(user.Password, input.Password) {
		logrus.WithFields(logrus.Fields{"email": input.Email}).Warn("Login: Sai mật khẩu")
		return nil, "", common.ErrInvalidCredentials
	}

	if user.IsBlock {
		return nil, "", common.ErrAccountBlocked
	}

	ttl := time.Duration(global.MongoDB_ServerConfig.JwtTTLHours) * time.Hour
	token, err := utility.CreateToken(global.MongoDB_ServerConfig.JwtSecret, user.ID.Hex(), user.Role, user.TokenVersion, ttl)
	if err != nil {
		return nil, "", common.NewError(common.ErrCodeInternalServer, "Không thể tạo token", common.StatusInternalServerError, err)
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID.Hex(), "email": user.Email}).Info("Login: Đăng nhập thành công")
	return &user, token, nil
}

// Logout thu hồi toàn bộ token đang lưu hành của user bằng cách tăng tokenVersion
func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	updateData := &basesvc.UpdateData{
		Inc: map[string]interface{}{"tokenVersion": int64(1)},
	}
	_, err := s.BaseServiceMongoImpl.UpdateById(ctx, userID, updateData)
	return err
}

// ChangePassword đổi mật khẩu sau khi xác thực mật khẩu cũ.
// Tăng tokenVersion để thu hồi mọi token đã phát hành trước đó.
func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, input *authdto.ChangePasswordInput) error {
	user, err := s.BaseServiceMongoImpl.FindOneById(ctx, userID)
	if err != nil {
		return err
	}

	if !utility.CheckPassword(user.Password, input.OldPassword) {
		return common.ErrInvalidCredentials
	}

	hash, err := utility.HashPassword(input.NewPassword)
	if err != nil {
		return common.NewError(common.ErrCodeInternalServer, "Không thể xử lý mật khẩu", common.StatusInternalServerError, err)
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{"password": hash},
		Inc: map[string]interface{}{"tokenVersion": int64(1)},
	}
	_, err = s.BaseServiceMongoImpl.UpdateById(ctx, userID, updateData)
	return err
}

// BlockUser khóa tài khoản theo email và thu hồi token đang lưu hành
func (s *UserService) BlockUser(ctx context.Context, input *authdto.BlockUserInput) (*models.User, error) {
	user, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		return nil, err
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"isBlock":   true,
			"blockNote": input.Note,
		},
		Inc: map[string]interface{}{"tokenVersion": int64(1)},
	}
	updated, err := s.BaseServiceMongoImpl.UpdateById(ctx, user.ID, updateData)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": updated.ID.Hex(), "note": input.Note}).Info("BlockUser: Đã khóa tài khoản")
	return &updated, nil
}

// UnBlockUser mở khóa tài khoản theo email
func (s *UserService) UnBlockUser(ctx context.Context, input *authdto.UnBlockUserInput) (*models.User, error) {
	user, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		return nil, err
	}

	updateData := &basesvc.UpdateData{
		Set:   map[string]interface{}{"isBlock": false},
		Unset: map[string]interface{}{"blockNote": ""},
	}
	updated, err := s.BaseServiceMongoImpl.UpdateById(ctx, user.ID, updateData)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": updated.ID.Hex()}).Info("UnBlockUser: Đã mở khóa tài khoản")
	return &updated, nil
}
