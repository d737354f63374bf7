package handlers

import (
	"net/http"

	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/middleware"
	"guidehub_backend/internal/models"
	"guidehub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	*BaseHandler
	commentService services.CommentService
}

func NewCommentHandler(base *BaseHandler, commentService services.CommentService) *CommentHandler {
	return &CommentHandler{BaseHandler: base, commentService: commentService}
}

func (h *CommentHandler) List(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	resp, err := h.commentService.ListComments(h.GetDB(c), c.Param("id"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.commentService.AddComment(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	isAdmin := middleware.GetRole(c) == models.UserRoleAdmin
	if err := h.commentService.DeleteComment(h.GetDB(c), c.Param("commentId"), userID, isAdmin); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

func (h *CommentHandler) Rate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RateGuideRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.commentService.RateGuide(h.GetDB(c), userID, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "rating recorded"})
}
