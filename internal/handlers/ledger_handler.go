package handlers

import (
	"net/http"

	"committee-backend/internal/models"
	"committee-backend/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LedgerHandler handles the month lifecycle HTTP requests: token assignment,
// winner declaration and advancing the scheme.
type LedgerHandler struct {
	ledgerService services.LedgerService
	sequence      *models.Sequence
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService services.LedgerService, sequence *models.Sequence) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
		sequence:      sequence,
	}
}

// GetMonths handles GET /months
func (h *LedgerHandler) GetMonths(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"months": h.sequence.Months()})
}

// AssignTokens handles POST /months/:month/tokens/assign
func (h *LedgerHandler) AssignTokens(c *gin.Context) {
	members, err := h.ledgerService.AssignTokens(c.Request.Context(), c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// DeclareWinner handles POST /months/:month/winner/:id
func (h *LedgerHandler) DeclareWinner(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	winner, err := h.ledgerService.DeclareWinner(c.Request.Context(), c.Param("month"), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, winner)
}

// AdvanceToNextMonth handles POST /months/:month/advance
func (h *LedgerHandler) AdvanceToNextMonth(c *gin.Context) {
	nextMonth, err := h.ledgerService.AdvanceToNextMonth(c.Request.Context(), c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"nextMonth": nextMonth})
}

// MonthSummary handles GET /months/:month/summary
func (h *LedgerHandler) MonthSummary(c *gin.Context) {
	summary, err := h.ledgerService.MonthSummary(c.Request.Context(), c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
