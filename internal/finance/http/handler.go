package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playamar/beach-admin-backend/internal/auth"
	"github.com/playamar/beach-admin-backend/internal/finance"
	"github.com/playamar/beach-admin-backend/internal/pkg/request"
	"github.com/playamar/beach-admin-backend/internal/pkg/response"
)

type FinanceHandler struct {
	service finance.Service
}

func NewHandler(service finance.Service) *FinanceHandler {
	return &FinanceHandler{service: service}
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, finance.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Message: "finance record not found"})
	case errors.Is(err, finance.ErrPayoutNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Message: "payout not found"})
	default:
		response.Error(c, err)
	}
}

func (h *FinanceHandler) ListRecords(c *gin.Context) {
	var req ListRecordsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid query parameters"})
		return
	}

	records, total, err := h.service.ListRecords(c.Request.Context(), finance.RecordFilter{
		Type:     req.Type,
		BeachID:  req.BeachID,
		Month:    req.Month,
		Year:     req.Year,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	items := make([]RecordResponse, len(records))
	for i, r := range records {
		items[i] = NewRecordResponse(r)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *FinanceHandler) CreateRecord(c *gin.Context) {
	var req CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid request body"})
		return
	}

	input := finance.RecordInput{
		Type:        finance.RecordType(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
		BeachID:     req.BeachID,
	}
	if req.RecordDate != "" {
		input.RecordDate, _ = time.Parse("2006-01-02", req.RecordDate)
	}

	rec, err := h.service.CreateRecord(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewRecordResponse(rec))
}

func (h *FinanceHandler) DeleteRecord(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid record id"})
		return
	}

	if err := h.service.DeleteRecord(c.Request.Context(), req.ID); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FinanceHandler) Summary(c *gin.Context) {
	totals, err := h.service.SummaryByType(c.Request.Context(), c.Query("beachId"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *FinanceHandler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// ------------------------
//     Payout endpoints
// ------------------------

func (h *FinanceHandler) ListPayouts(c *gin.Context) {
	var req ListPayoutsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid query parameters"})
		return
	}

	payouts, total, err := h.service.ListPayouts(c.Request.Context(), finance.PayoutFilter{
		BeachID:  req.BeachID,
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	items := make([]PayoutResponse, len(payouts))
	for i, p := range payouts {
		items[i] = NewPayoutResponse(p)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *FinanceHandler) CreatePayout(c *gin.Context) {
	var req CreatePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid request body"})
		return
	}

	p, err := h.service.RequestPayout(c.Request.Context(), finance.PayoutInput{
		BeachID: req.BeachID,
		Amount:  req.Amount,
		Notes:   req.Notes,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewPayoutResponse(p))
}

func (h *FinanceHandler) GetPayout(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid payout id"})
		return
	}

	p, err := h.service.GetPayout(c.Request.Context(), req.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPayoutResponse(p))
}

func (h *FinanceHandler) ProcessPayout(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid payout id"})
		return
	}
	var req ProcessPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid request body"})
		return
	}

	p, err := h.service.ProcessPayout(
		c.Request.Context(), uri.ID,
		finance.PayoutStatus(req.Status), auth.GetUserID(c), req.Notes,
	)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPayoutResponse(p))
}

func (h *FinanceHandler) DeletePayout(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid payout id"})
		return
	}

	if err := h.service.DeletePayout(c.Request.Context(), req.ID); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
