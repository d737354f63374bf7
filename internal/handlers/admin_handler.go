package handlers

import (
	"fmt"
	"net/http"
	"time"

	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/logger"
	"guidehub_backend/internal/repositories"
	"guidehub_backend/internal/services"
	"guidehub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// AdminHandler groups the admin panel: user listing, the payment review
// queue, settings, stats and the spreadsheet export.
type AdminHandler struct {
	*BaseHandler
	userService         services.UserService
	subscriptionService services.SubscriptionService
	settingService      services.SettingService
	userRepo            repositories.UserRepository
	subscriptionRepo    repositories.SubscriptionRepository
	guideRepo           repositories.GuideRepository
}

func NewAdminHandler(
	base *BaseHandler,
	userService services.UserService,
	subscriptionService services.SubscriptionService,
	settingService services.SettingService,
	userRepo repositories.UserRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	guideRepo repositories.GuideRepository,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:         base,
		userService:         userService,
		subscriptionService: subscriptionService,
		settingService:      settingService,
		userRepo:            userRepo,
		subscriptionRepo:    subscriptionRepo,
		guideRepo:           guideRepo,
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var criteria dto.UserCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	resp, err := h.userService.ListUsers(h.GetDB(c), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) ListSubscriptions(c *gin.Context) {
	var criteria dto.SubscriptionCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	resp, err := h.subscriptionService.List(h.GetDB(c), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DecideSubscription is the manual verification decision: activate, fail or
// cancel a submitted payment.
func (h *AdminHandler) DecideSubscription(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AdminDecisionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.subscriptionService.AdminDecision(h.GetDB(c), adminID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) ListSettings(c *gin.Context) {
	resp, err := h.settingService.All(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": resp})
}

func (h *AdminHandler) UpdateSetting(c *gin.Context) {
	var req dto.UpdateSettingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	name := c.Param("name")
	if name == "" {
		h.HandleServiceError(c, apperrors.NewBadRequestError("setting name is required"))
		return
	}

	if err := h.settingService.Set(h.GetDB(c), name, req.Value); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, &dto.SettingResponse{Name: name, Value: req.Value})
}

func (h *AdminHandler) Stats(c *gin.Context) {
	db := h.GetDB(c)
	stats := &dto.PlatformStats{}

	var err error
	if stats.TotalUsers, err = h.userRepo.CountAll(db); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if stats.PremiumUsers, err = h.userRepo.CountPremium(db); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if stats.TotalGuides, err = h.guideRepo.CountAll(db); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if stats.SubscriptionsByState, err = h.subscriptionRepo.CountByStatus(db); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if stats.SubscriptionsByPlan, err = h.subscriptionRepo.CountByPlan(db); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportSubscriptions streams the filtered subscription list as an .xlsx
// workbook for offline reconciliation.
func (h *AdminHandler) ExportSubscriptions(c *gin.Context) {
	var criteria dto.SubscriptionCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}
	criteria.Page = 1
	criteria.PageSize = 10000

	subs, _, err := h.subscriptionRepo.FindWithFilter(h.GetDB(c), criteria)
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}

	f := excelize.NewFile()
	sheetName := "Subscriptions"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"No", "ID", "User ID", "Plan", "Status", "Amount", "Currency",
		"Reference Code", "Transaction ID", "Submitted", "Verified By", "Verified At", "End Date"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	styleHeader, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F46E5"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetCellStyle(sheetName, "A1", "M1", styleHeader)

	formatTime := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("02-01-2006 15:04")
	}

	row := 2
	for i, sub := range subs {
		refCode := ""
		if sub.ReferenceCode != nil {
			refCode = *sub.ReferenceCode
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), sub.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), sub.UserID)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), string(sub.Plan))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), string(sub.Status))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), sub.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), sub.Currency)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), refCode)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), sub.TransactionID)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), formatTime(sub.SubmittedAt))
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), sub.VerifiedBy)
		f.SetCellValue(sheetName, fmt.Sprintf("L%d", row), formatTime(sub.VerifiedAt))
		f.SetCellValue(sheetName, fmt.Sprintf("M%d", row), formatTime(sub.EndDate))
		row++
	}

	f.SetColWidth(sheetName, "A", "A", 5)
	f.SetColWidth(sheetName, "B", "C", 38)
	f.SetColWidth(sheetName, "D", "G", 12)
	f.SetColWidth(sheetName, "H", "M", 22)

	fileName := fmt.Sprintf("subscriptions_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))

	if err := f.Write(c.Writer); err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to stream subscription export", err)
	}
}
