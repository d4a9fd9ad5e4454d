package authhdl

import (
	authdto "agri_connect/internal/api/auth/dto"
	"agri_connect/internal/api/middleware"
	"agri_connect/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// HandleBlockUser khóa tài khoản người dùng theo email (admin only)
func (h *UserHandler) HandleBlockUser(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.BlockUserInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		user, err := h.userService.BlockUser(c.Context(), &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		// Token đang hoạt động của user bị khóa phải hết hiệu lực ngay
		middleware.GetAuthManager().InvalidateUser(user.ID.Hex())
		logger.LogAuth("block_user", c, map[string]interface{}{"target_user_id": user.ID.Hex()})
		h.HandleResponse(c, sanitizeUser(user), nil)
		return nil
	})
}

// HandleUnBlockUser mở khóa tài khoản người dùng theo email (admin only)
func (h *UserHandler) HandleUnBlockUser(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UnBlockUserInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		user, err := h.userService.UnBlockUser(c.Context(), &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		middleware.GetAuthManager().InvalidateUser(user.ID.Hex())
		logger.LogAuth("unblock_user", c, map[string]interface{}{"target_user_id": user.ID.Hex()})
		h.HandleResponse(c, sanitizeUser(user), nil)
		return nil
	})
}
