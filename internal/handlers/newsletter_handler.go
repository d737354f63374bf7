package handlers

import (
	"net/http"

	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type NewsletterHandler struct {
	*BaseHandler
	newsletterService services.NewsletterService
}

func NewNewsletterHandler(base *BaseHandler, newsletterService services.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{BaseHandler: base, newsletterService: newsletterService}
}

func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req dto.NewsletterSubscribeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.newsletterService.Subscribe(h.GetDB(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "subscribed"})
}

func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	if err := h.newsletterService.Unsubscribe(h.GetDB(c), c.Query("token")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed"})
}

func (h *NewsletterHandler) Send(c *gin.Context) {
	var req dto.SendNewsletterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.newsletterService.Send(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
