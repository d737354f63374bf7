package handlers

import (
	"net/http"

	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/services"
	"guidehub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// PremiumHandler exposes the manual UPI payment flow: features, submission,
// screenshot upload, cancellation and the reconciled status read.
type PremiumHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
}

func NewPremiumHandler(base *BaseHandler, subscriptionService services.SubscriptionService) *PremiumHandler {
	return &PremiumHandler{BaseHandler: base, subscriptionService: subscriptionService}
}

// Features is public: it lists plans, prices and payment instructions.
func (h *PremiumHandler) Features(c *gin.Context) {
	resp, err := h.subscriptionService.Features(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PremiumHandler) ConfirmManualPayment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ConfirmManualPaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.subscriptionService.SubmitManualPayment(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "payment submitted, awaiting verification",
		"subscription": resp,
	})
}

func (h *PremiumHandler) UploadScreenshot(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	subscriptionID := c.PostForm("subscriptionId")
	if subscriptionID == "" {
		h.HandleServiceError(c, apperrors.NewBadRequestError("subscriptionId form field is required"))
		return
	}

	fileHeader, err := c.FormFile("screenshot")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("screenshot file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	upload := &dto.ScreenshotUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	}

	resp, err := h.subscriptionService.AttachScreenshot(c.Request.Context(), h.GetDB(c), userID, subscriptionID, upload)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "screenshot uploaded",
		"subscription": resp,
	})
}

func (h *PremiumHandler) Cancel(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.subscriptionService.Cancel(h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subscription cancelled"})
}

func (h *PremiumHandler) Status(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.subscriptionService.Status(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
