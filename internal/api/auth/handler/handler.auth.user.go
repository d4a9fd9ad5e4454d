// Package authhdl - handler xác thực và quản lý người dùng.
package authhdl

import (
	"fmt"

	authdto "agri_connect/internal/api/auth/dto"
	models "agri_connect/internal/api/auth/models"
	authsvc "agri_connect/internal/api/auth/service"
	basehdl "agri_connect/internal/api/base/handler"
	basesvc "agri_connect/internal/api/base/service"
	"agri_connect/internal/api/middleware"
	"agri_connect/internal/common"
	"agri_connect/internal/logger"
	"agri_connect/internal/mailer"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler xử lý các request xác thực và quản lý người dùng
type UserHandler struct {
	*basehdl.BaseHandler[models.User, authdto.UserRegisterInput, authdto.UserChangeInfoInput]
	userService  *authsvc.UserService
	resetService *authsvc.PasswordResetService
}

// NewUserHandler tạo instance mới của UserHandler
func NewUserHandler(m *mailer.Mailer) (*UserHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	resetService, err := authsvc.NewPasswordResetService(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create password reset service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.User, authdto.UserRegisterInput, authdto.UserChangeInfoInput](userService)
	return &UserHandler{
		BaseHandler:  baseHandler,
		userService:  userService,
		resetService: resetService,
	}, nil
}

// currentUserID lấy ObjectID của user đã đăng nhập từ context
func currentUserID(c fiber.Ctx) (primitive.ObjectID, error) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return primitive.NilObjectID, common.ErrTokenMissing
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err)
	}
	return objID, nil
}

// sanitizeUser xóa các field nhạy cảm trước khi trả về client
func sanitizeUser(user *models.User) *models.User {
	user.Password = ""
	return user
}

// HandleRegister đăng ký tài khoản mới
func (h *UserHandler) HandleRegister(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UserRegisterInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		user, err := h.userService.Register(c.Context(), &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogAuth("register", c, map[string]interface{}{"user_id": user.ID.Hex()})
		h.HandleResponse(c, sanitizeUser(user), nil)
		return nil
	})
}

// HandleLogin đăng nhập và phát hành access token
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UserLoginInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		user, token, err := h.userService.Login(c.Context(), &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogAuth("login", c, map[string]interface{}{"user_id": user.ID.Hex()})
		h.HandleResponse(c, fiber.Map{
			"user":  sanitizeUser(user),
			"token": token,
		}, nil)
		return nil
	})
}

// HandleLogout thu hồi toàn bộ token của user đang đăng nhập
func (h *UserHandler) HandleLogout(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		objID, err := currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.userService.Logout(c.Context(), objID); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		// Xóa cache xác thực để tokenVersion mới có hiệu lực ngay
		middleware.GetAuthManager().InvalidateUser(objID.Hex())
		logger.LogAuth("logout", c, nil)
		h.HandleResponse(c, nil, nil)
		return nil
	})
}

// HandleGetProfile lấy thông tin profile của người dùng đang đăng nhập
func (h *UserHandler) HandleGetProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		objID, err := currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		user, err := h.userService.FindOneById(c.Context(), objID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, sanitizeUser(&user), nil)
		return nil
	})
}

// HandleUpdateProfile cập nhật thông tin profile
func (h *UserHandler) HandleUpdateProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		objID, err := currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input authdto.UserChangeInfoInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		update := &basesvc.UpdateData{Set: map[string]interface{}{}}
		if input.Name != "" {
			update.Set["name"] = input.Name
		}
		if input.Location != nil {
			update.Set["location"] = models.UserLocation{
				Province:    input.Location.Province,
				District:    input.Location.District,
				Coordinates: input.Location.Coordinates,
			}
		}
		if input.Crops != nil {
			update.Set["crops"] = input.Crops
		}
		if input.FarmSize > 0 {
			update.Set["farmSize"] = input.FarmSize
		}
		if input.AvatarURL != "" {
			update.Set["avatarUrl"] = input.AvatarURL
		}
		if input.Bio != "" {
			update.Set["bio"] = input.Bio
		}
		if input.Expertise != "" {
			update.Set["expertise"] = input.Expertise
		}

		updatedUser, err := h.userService.UpdateById(c.Context(), objID, update)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		// User record trong cache xác thực đã cũ
		middleware.GetAuthManager().InvalidateUser(objID.Hex())
		h.HandleResponse(c, sanitizeUser(&updatedUser), nil)
		return nil
	})
}

// HandleChangePassword đổi mật khẩu và thu hồi token cũ
func (h *UserHandler) HandleChangePassword(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		objID, err := currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input authdto.ChangePasswordInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.userService.ChangePassword(c.Context(), objID, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		middleware.GetAuthManager().InvalidateUser(objID.Hex())
		logger.LogAuth("change_password", c, nil)
		h.HandleResponse(c, nil, nil)
		return nil
	})
}

// HandleRequestPasswordReset gửi mã đặt lại mật khẩu qua email
func (h *UserHandler) HandleRequestPasswordReset(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.RequestPasswordResetInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		err := h.resetService.RequestReset(c.Context(), &input)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleResetPassword đặt lại mật khẩu bằng mã đã nhận qua email
func (h *UserHandler) HandleResetPassword(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.ResetPasswordInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.resetService.ResetPassword(c.Context(), &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogAuth("reset_password", c, nil)
		h.HandleResponse(c, nil, nil)
		return nil
	})
}
