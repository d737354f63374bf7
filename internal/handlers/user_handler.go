package handlers

import (
	"net/http"

	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{BaseHandler: base, userService: userService}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.userService.GetProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.userService.UpdateProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.userService.ChangePassword(h.GetDB(c), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}
