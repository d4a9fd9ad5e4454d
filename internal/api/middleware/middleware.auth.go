package middleware

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	models "agri_connect/internal/api/auth/models"
	authsvc "agri_connect/internal/api/auth/service"
	"agri_connect/internal/common"
	"agri_connect/internal/global"
	"agri_connect/internal/logger"
	"agri_connect/internal/utility"
)

// AuthManager quản lý xác thực người dùng.
// User record được cache để không phải query database cho mỗi request,
// các thao tác thu hồi token (logout, đổi mật khẩu, khóa tài khoản) phải gọi
// InvalidateUser để xóa cache ngay lập tức.
type AuthManager struct {
	UserCRUD *authsvc.UserService
	Cache    *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		var err error
		authManagerInstance, err = newAuthManager()
		if err != nil {
			panic(err)
		}
	})
	return authManagerInstance
}

// newAuthManager khởi tạo một instance mới của AuthManager (private constructor)
func newAuthManager() (*AuthManager, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}

	return &AuthManager{
		UserCRUD: userService,
		// Cache với thời gian sống 5 phút và thời gian dọn dẹp 10 phút
		Cache: utility.NewCache(5*time.Minute, 10*time.Minute),
	}, nil
}

// userCacheKey tạo cache key cho user record
func userCacheKey(userID string) string {
	return "auth_user:" + userID
}

// InvalidateUser xóa user khỏi cache xác thực.
// Gọi sau khi logout, đổi mật khẩu, block/unblock để tokenVersion mới có hiệu lực ngay.
func (am *AuthManager) InvalidateUser(userID string) {
	am.Cache.Delete(userCacheKey(userID))
}

// getUser lấy user từ cache hoặc database
func (am *AuthManager) getUser(ctx context.Context, userID string) (models.User, error) {
	cacheKey := userCacheKey(userID)
	if cached, found := am.Cache.Get(cacheKey); found {
		return cached.(models.User), nil
	}

	user, err := am.UserCRUD.FindOneById(ctx, utility.String2ObjectID(userID))
	if err != nil {
		return models.User{}, err
	}

	am.Cache.Set(cacheKey, user)
	return user, nil
}

// AuthMiddleware middleware xác thực JWT cho Fiber.
// Token được xác thực stateless (chữ ký + thời hạn), sau đó đối chiếu tokenVersion
// với user record: token mang version cũ hơn bị coi là đã thu hồi.
func AuthMiddleware() fiber.Handler {
	// Sử dụng singleton instance của AuthManager
	authManager := GetAuthManager()

	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			// Chỉ log khi thiếu token (lỗi quan trọng)
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Xác thực chữ ký và thời hạn
		claims, err := utility.ParseToken(global.MongoDB_ServerConfig.JwtSecret, parts[1])
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token verification failed")
			HandleErrorResponse(c, err)
			return nil
		}

		// Lấy user record để đối chiếu tokenVersion
		user, err := authManager.getUser(c.Context(), claims.UserID)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id": claims.UserID,
				"path":    c.Path(),
				"error":   err.Error(),
			}).Warn("❌ [AUTH] User not found for valid token")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Token mang version cũ hơn hiện tại nghĩa là đã bị thu hồi
		if claims.TokenVersion != user.TokenVersion {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id":       user.ID.Hex(),
				"token_version": claims.TokenVersion,
				"user_version":  user.TokenVersion,
				"path":          c.Path(),
			}).Warn("❌ [AUTH] Token revoked (version mismatch)")
			HandleErrorResponse(c, common.ErrTokenRevoked)
			return nil
		}

		// Kiểm tra user có bị block không
		if user.IsBlock {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthCredentials,
				"Tài khoản đã bị khóa: "+user.BlockNote,
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		// Lưu thông tin user vào context
		c.Locals("user_id", user.ID.Hex())
		c.Locals("user", user)
		c.Locals("role", user.Role)

		return c.Next()
	}
}

// RequireRoles middleware kiểm tra role của user sau khi đã qua AuthMiddleware.
// Nếu role của user không nằm trong danh sách cho phép, trả về 403.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || role == "" {
			HandleErrorResponse(c, common.ErrForbidden)
			return nil
		}

		if !utility.Contains(roles, role) {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id":        c.Locals("user_id"),
				"role":           role,
				"required_roles": roles,
				"path":           c.Path(),
			}).Warn("❌ [AUTH] User role not allowed for this route")
			HandleErrorResponse(c, common.ErrForbidden)
			return nil
		}

		return c.Next()
	}
}
