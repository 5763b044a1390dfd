package handlers

import (
	"net/http"

	"committee-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// HistoryHandler handles cross-month query HTTP requests
type HistoryHandler struct {
	historyService services.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(historyService services.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
	}
}

// GetMemberHistory handles GET /history/members?name=&mobile=
func (h *HistoryHandler) GetMemberHistory(c *gin.Context) {
	history, err := h.historyService.GetMemberHistory(c.Request.Context(), c.Query("name"), c.Query("mobile"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// GetAllWinners handles GET /history/winners
func (h *HistoryHandler) GetAllWinners(c *gin.Context) {
	history, err := h.historyService.GetAllWinners(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}
