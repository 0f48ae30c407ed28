package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/acctsys/accounting_backend/internal/apperrors"
	"github.com/acctsys/accounting_backend/internal/core/domain"
	portssvc "github.com/acctsys/accounting_backend/internal/core/ports/services"
	"github.com/acctsys/accounting_backend/internal/dto"
	"github.com/acctsys/accounting_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// voucherHandler handles HTTP requests for the voucher workflow.
type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

func newVoucherHandler(voucherService portssvc.VoucherSvcFacade) *voucherHandler {
	return &voucherHandler{voucherService: voucherService}
}

// pathID parses an int64 path parameter, responding 400 on garbage.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// respondServiceError maps domain errors onto HTTP statuses. The concrete
// error text is only surfaced for caller mistakes; internals stay generic.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Not found", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidState):
		logger.Warn("Invalid state", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Service error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// actorOr401 fetches the audited identity established by the middleware.
func actorOr401(c *gin.Context, logger *slog.Logger) (string, bool) {
	actor, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return actor, true
}

func (h *voucherHandler) createVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := pathID(c, "tenantID")
	if !ok {
		return
	}

	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := actorOr401(c, logger)
	if !ok {
		return
	}

	voucher, err := h.voucherService.CreateVoucher(c.Request.Context(), tenantID, req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "create voucher")
		return
	}

	logger.Info("Voucher created", slog.Int64("voucher_id", voucher.VoucherID), slog.String("voucher_no", voucher.VoucherNo))
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

func (h *voucherHandler) updateVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := pathID(c, "tenantID")
	if !ok {
		return
	}
	voucherID, ok := pathID(c, "voucherID")
	if !ok {
		return
	}

	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := actorOr401(c, logger)
	if !ok {
		return
	}

	voucher, err := h.voucherService.UpdateVoucher(c.Request.Context(), tenantID, voucherID, req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "update voucher")
		return
	}

	logger.Info("Voucher updated", slog.Int64("voucher_id", voucher.VoucherID))
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

func (h *voucherHandler) verifyVoucher(c *gin.Context) {
	h.transition(c, "verify voucher", h.voucherService.VerifyVoucher)
}

func (h *voucherHandler) approveVoucher(c *gin.Context) {
	h.transition(c, "approve voucher", h.voucherService.ApproveVoucher)
}

// transition factors the shared shape of verify and approve; reject differs
// because it carries a mandatory comment body.
func (h *voucherHandler) transition(c *gin.Context, action string, apply func(ctx context.Context, tenantID, voucherID int64, actor string) (*domain.Voucher, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := pathID(c, "tenantID")
	if !ok {
		return
	}
	voucherID, ok := pathID(c, "voucherID")
	if !ok {
		return
	}
	actor, ok := actorOr401(c, logger)
	if !ok {
		return
	}

	voucher, err := apply(c.Request.Context(), tenantID, voucherID, actor)
	if err != nil {
		respondServiceError(c, logger, err, action)
		return
	}

	logger.Info("Voucher transitioned", slog.Int64("voucher_id", voucher.VoucherID), slog.String("status", string(voucher.Status)))
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

func (h *voucherHandler) rejectVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := pathID(c, "tenantID")
	if !ok {
		return
	}
	voucherID, ok := pathID(c, "voucherID")
	if !ok {
		return
	}

	var req dto.RejectVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for rejectVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A rejection comment is required"})
		return
	}

	actor, ok := actorOr401(c, logger)
	if !ok {
		return
	}

	voucher, err := h.voucherService.RejectVoucher(c.Request.Context(), tenantID, voucherID, actor, req.Comment)
	if err != nil {
		respondServiceError(c, logger, err, "reject voucher")
		return
	}

	logger.Info("Voucher rejected", slog.Int64("voucher_id", voucher.VoucherID))
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

func (h *voucherHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := pathID(c, "tenantID")
	if !ok {
		return
	}
	voucherID, ok := pathID(c, "voucherID")
	if !ok {
		return
	}

	voucher, err := h.voucherService.GetVoucherByID(c.Request.Context(), tenantID, voucherID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve voucher")
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

func (h *voucherHandler) listVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := pathID(c, "tenantID")
	if !ok {
		return
	}

	var params dto.ListVouchersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listVouchers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	page, err := h.voucherService.ListVouchers(c.Request.Context(), tenantID, params)
	if err != nil {
		respondServiceError(c, logger, err, "list vouchers")
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *voucherHandler) getWorkflowLog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := pathID(c, "tenantID")
	if !ok {
		return
	}
	voucherID, ok := pathID(c, "voucherID")
	if !ok {
		return
	}

	logs, err := h.voucherService.GetWorkflowLog(c.Request.Context(), tenantID, voucherID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve workflow log")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": dto.ToWorkflowLogResponses(logs)})
}

// registerVoucherRoutes registers voucher workflow routes on the tenant group.
func registerVoucherRoutes(group *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade) {
	h := newVoucherHandler(voucherService)

	vouchers := group.Group("/vouchers")
	{
		vouchers.POST("", h.createVoucher)
		vouchers.GET("", h.listVouchers)
		vouchers.GET("/:voucherID", h.getVoucher)
		vouchers.PUT("/:voucherID", h.updateVoucher)
		vouchers.POST("/:voucherID/verify", h.verifyVoucher)
		vouchers.POST("/:voucherID/approve", h.approveVoucher)
		vouchers.POST("/:voucherID/reject", h.rejectVoucher)
		vouchers.GET("/:voucherID/workflow-log", h.getWorkflowLog)
	}
}
