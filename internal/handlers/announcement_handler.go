package handlers

import (
	"net/http"

	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AnnouncementHandler struct {
	*BaseHandler
	announcementService services.AnnouncementService
}

func NewAnnouncementHandler(base *BaseHandler, announcementService services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{BaseHandler: base, announcementService: announcementService}
}

func (h *AnnouncementHandler) ListActive(c *gin.Context) {
	resp, err := h.announcementService.ListActive(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcements": resp})
}

func (h *AnnouncementHandler) ListAll(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	resp, total, err := h.announcementService.ListAll(h.GetDB(c), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"announcements": resp,
		"total":         total,
		"page":          page,
		"page_size":     pageSize,
	})
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAnnouncementRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.announcementService.Create(h.GetDB(c), adminID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AnnouncementHandler) Update(c *gin.Context) {
	var req dto.UpdateAnnouncementRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.announcementService.Update(h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if err := h.announcementService.Delete(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "announcement deleted"})
}
