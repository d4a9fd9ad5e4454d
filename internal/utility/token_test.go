package utility

import (
	"errors"
	"strings"
	"testing"
	"time"

	"agri_connect/internal/common"

	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key"

func TestCreateToken_ParseRoundtrip(t *testing.T) {
	token, err := CreateToken(testSecret, "64f000000000000000000001", "farmer", 3, time.Hour)
	assert.NoError(t, err, "tạo token không được lỗi")
	assert.NotEmpty(t, token)

	claims, err := ParseToken(testSecret, token)
	assert.NoError(t, err, "parse token hợp lệ không được lỗi")
	assert.Equal(t, "64f000000000000000000001", claims.UserID)
	assert.Equal(t, "farmer", claims.Role)
	assert.Equal(t, int64(3), claims.TokenVersion)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := CreateToken(testSecret, "64f000000000000000000001", "farmer", 0, -time.Minute)
	assert.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.True(t, errors.Is(err, common.ErrTokenExpired), "token hết hạn phải trả về ErrTokenExpired, nhận: %v", err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := CreateToken(testSecret, "64f000000000000000000001", "farmer", 0, time.Hour)
	assert.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.True(t, errors.Is(err, common.ErrTokenInvalid), "token ký bằng secret khác phải bị từ chối, nhận: %v", err)
}

func TestParseToken_Tampered(t *testing.T) {
	token, err := CreateToken(testSecret, "64f000000000000000000001", "farmer", 0, time.Hour)
	assert.NoError(t, err)

	// Sửa một ký tự trong phần payload
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = ParseToken(testSecret, tampered)
	assert.Error(t, err, "token bị sửa payload phải bị từ chối")
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken(testSecret, "not-a-jwt")
	assert.True(t, errors.Is(err, common.ErrTokenInvalid), "chuỗi không phải JWT phải trả về ErrTokenInvalid, nhận: %v", err)
}
