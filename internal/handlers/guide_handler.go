package handlers

import (
	"net/http"

	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/middleware"
	"guidehub_backend/internal/models"
	"guidehub_backend/internal/repositories"
	"guidehub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type GuideHandler struct {
	*BaseHandler
	guideService services.GuideService
	userRepo     repositories.UserRepository
}

func NewGuideHandler(base *BaseHandler, guideService services.GuideService, userRepo repositories.UserRepository) *GuideHandler {
	return &GuideHandler{BaseHandler: base, guideService: guideService, userRepo: userRepo}
}

func (h *GuideHandler) List(c *gin.Context) {
	var criteria dto.GuideCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	includeUnpublished := middleware.GetRole(c) == models.UserRoleAdmin
	resp, err := h.guideService.List(h.GetDB(c), criteria, includeUnpublished)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetBySlug serves one guide. Identity is optional here; it only decides
// whether a premium body is unlocked.
func (h *GuideHandler) GetBySlug(c *gin.Context) {
	db := h.GetDB(c)

	var reader *models.User
	if userID := middleware.GetUserID(c); userID != "" {
		if user, err := h.userRepo.FindByID(db, userID); err == nil {
			reader = user
		}
	}

	resp, err := h.guideService.GetBySlug(db, c.Param("slug"), reader)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GuideHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGuideRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.guideService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *GuideHandler) Update(c *gin.Context) {
	var req dto.UpdateGuideRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.guideService.Update(h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GuideHandler) Delete(c *gin.Context) {
	if err := h.guideService.Delete(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "guide deleted"})
}
