package utility

import (
	"errors"
	"time"

	"agri_connect/internal/common"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims là claims của access token.
// TokenVersion dùng để thu hồi token: logout tăng version trên user record,
// mọi token mang version cũ sẽ bị từ chối khi xác thực
type AccessClaims struct {
	UserID       string `json:"userId"`
	Role         string `json:"role"`
	TokenVersion int64  `json:"tokenVersion"`
	jwt.RegisteredClaims
}

// CreateToken tạo access token ký HMAC-SHA256
func CreateToken(secret string, userID string, role string, tokenVersion int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID:       userID,
		Role:         role,
		TokenVersion: tokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken xác thực chữ ký và thời hạn của token, trả về claims.
// Lỗi trả về thuộc taxonomy của hệ thống (ErrTokenExpired / ErrTokenInvalid)
func ParseToken(secret string, tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrTokenInvalid
	}
	return claims, nil
}
