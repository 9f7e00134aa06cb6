package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "appledger/internal/errors"
	"appledger/internal/ledger"
	"appledger/internal/models"
	"appledger/internal/pagination"
	"appledger/internal/services"
)

// LedgerHandler handles ledger entry requests.
type LedgerHandler struct {
	ledgerService services.LedgerServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService services.LedgerServicer) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// CreateEntryRequest is the payload for recording a completed entry. Type is
// in the caller's vocabulary; category and user_id are honoured for admins only.
type CreateEntryRequest struct {
	Type            models.EntryType      `json:"type" binding:"required,entry_type"`
	Category        models.LedgerCategory `json:"category" binding:"omitempty,ledger_category"`
	Amount          decimal.Decimal       `json:"amount" binding:"required,gt=0" swaggertype:"number"`
	Description     string                `json:"description" binding:"required,max=500"`
	TransactionDate *string               `json:"transaction_date"`
	ApplicationID   *string               `json:"application_id"`
	UserID          string                `json:"user_id"`
}

// UpdateEntryRequest is a partial update; omitted fields are left unchanged.
type UpdateEntryRequest struct {
	Type            *models.EntryType      `json:"type" binding:"omitempty,entry_type"`
	Category        *models.LedgerCategory `json:"category" binding:"omitempty,ledger_category"`
	Amount          *decimal.Decimal       `json:"amount" binding:"omitempty,gt=0" swaggertype:"number"`
	Description     *string                `json:"description" binding:"omitempty,max=500"`
	TransactionDate *string                `json:"transaction_date"`
	ApplicationID   *string                `json:"application_id"`
}

// EntryResponse wraps a single entry.
type EntryResponse struct {
	Entry ledger.EntryView `json:"entry"`
}

// CreateEntry records a completed ledger entry
// @Summary     Create a ledger entry
// @Description Record a completed income or expense. Clients write in their own vocabulary and the entry is mirrored onto the operator's books.
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateEntryRequest true "Entry details"
// @Success     201 {object} EntryResponse "Entry created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User or application not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ledger [post]
func (h *LedgerHandler) CreateEntry(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.CreateEntryInput{
		Type:          req.Type,
		Category:      req.Category,
		Amount:        req.Amount,
		Description:   req.Description,
		ApplicationID: req.ApplicationID,
		UserID:        req.UserID,
	}
	if req.TransactionDate != nil {
		input.TransactionDate, err = parseOptionalTime(*req.TransactionDate)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	entry, err := h.ledgerService.CreateEntry(c.Request.Context(), actor, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, EntryResponse{Entry: *entry})
}

// GetEntries lists ledger entries
// @Summary     List ledger entries
// @Description List the entries visible to the caller, newest first. Clients see only their own entries with types mirrored; the type filter uses the caller's vocabulary.
// @Tags        ledger
// @Produce     json
// @Security    BearerAuth
// @Param       type           query string false "income or expense"
// @Param       status         query string false "pending, completed or cancelled"
// @Param       category       query string false "Stored category"
// @Param       from_date      query string false "Start date (RFC 3339 or YYYY-MM-DD)"
// @Param       to_date        query string false "End date (RFC 3339 or YYYY-MM-DD)"
// @Param       application_id query string false "Application ID"
// @Param       user_id        query string false "Owner ID (admin only)"
// @Param       page           query int    false "Page number"
// @Param       page_size      query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[ledger.EntryView] "Entries"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ledger [get]
func (h *LedgerHandler) GetEntries(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := parseLedgerFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.ledgerService.GetEntries(c.Request.Context(), actor, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetStatistics summarizes ledger entries
// @Summary     Ledger statistics
// @Description Counts and completed totals for the entries matching the filter, labelled from the caller's perspective
// @Tags        ledger
// @Produce     json
// @Security    BearerAuth
// @Param       from_date      query string false "Start date"
// @Param       to_date        query string false "End date"
// @Param       status         query string false "Status filter"
// @Param       application_id query string false "Application ID"
// @Param       user_id        query string false "Owner ID (admin only)"
// @Success     200 {object} ledger.Summary "Statistics"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ledger/statistics [get]
func (h *LedgerHandler) GetStatistics(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := parseLedgerFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.ledgerService.GetStatistics(c.Request.Context(), actor, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"statistics": summary})
}

// GetEntry returns a single ledger entry
// @Summary     Get a ledger entry
// @Tags        ledger
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Entry ID"
// @Success     200 {object} EntryResponse "Entry"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ledger/{id} [get]
func (h *LedgerHandler) GetEntry(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, EntryResponse{Entry: *entry})
}

// UpdateEntry changes a ledger entry
// @Summary     Update a ledger entry
// @Description Partial update. Cancelled entries are read-only and the amount and type of a payment request are locked.
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Entry ID"
// @Param       request body UpdateEntryRequest true "Fields to change"
// @Success     200 {object} EntryResponse "Entry updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Entry not editable by caller"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     409 {object} ErrorResponse "Entry locked"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ledger/{id} [put]
func (h *LedgerHandler) UpdateEntry(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.UpdateEntryInput{
		Type:          req.Type,
		Category:      req.Category,
		Amount:        req.Amount,
		Description:   req.Description,
		ApplicationID: req.ApplicationID,
	}
	if req.TransactionDate != nil {
		input.TransactionDate, err = parseOptionalTime(*req.TransactionDate)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	entry, err := h.ledgerService.UpdateEntry(c.Request.Context(), actor, c.Param("id"), input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, EntryResponse{Entry: *entry})
}

// CancelEntry cancels a pending entry
// @Summary     Cancel a pending entry
// @Description Moves a pending entry to cancelled, for example a payment request that will never be paid
// @Tags        ledger
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Entry ID"
// @Success     200 {object} EntryResponse "Entry cancelled"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     409 {object} ErrorResponse "Entry is not pending"
// @Router      /ledger/{id}/cancel [post]
func (h *LedgerHandler) CancelEntry(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.ledgerService.CancelEntry(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, EntryResponse{Entry: *entry})
}

// CompleteEntry settles a pending entry by hand
// @Summary     Complete a pending entry
// @Description Admin only. Marks a pending entry completed without bank reconciliation data.
// @Tags        ledger
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Entry ID"
// @Success     200 {object} EntryResponse "Entry completed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     409 {object} ErrorResponse "Entry is not pending"
// @Router      /ledger/{id}/complete [post]
func (h *LedgerHandler) CompleteEntry(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.ledgerService.CompleteEntry(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, EntryResponse{Entry: *entry})
}

// DeleteEntry removes an entry
// @Summary     Delete a ledger entry
// @Description Admin only
// @Tags        ledger
// @Security    BearerAuth
// @Param       id path string true "Entry ID"
// @Success     204 "Entry deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /ledger/{id} [delete]
func (h *LedgerHandler) DeleteEntry(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.ledgerService.DeleteEntry(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseLedgerFilter(c *gin.Context) (services.LedgerFilter, error) {
	filter := services.LedgerFilter{
		Type:          models.EntryType(c.Query("type")),
		Status:        models.EntryStatus(c.Query("status")),
		Category:      models.LedgerCategory(c.Query("category")),
		ApplicationID: c.Query("application_id"),
		UserID:        c.Query("user_id"),
	}

	var err error
	if filter.FromDate, err = parseQueryDate(c, "from_date", false); err != nil {
		return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	if filter.ToDate, err = parseQueryDate(c, "to_date", true); err != nil {
		return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return filter, nil
}
