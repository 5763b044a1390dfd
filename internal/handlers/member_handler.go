package handlers

import (
	"net/http"

	"committee-backend/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberHandler handles member CRUD HTTP requests
type MemberHandler struct {
	ledgerService services.LedgerService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(ledgerService services.LedgerService) *MemberHandler {
	return &MemberHandler{
		ledgerService: ledgerService,
	}
}

// ListMembers handles GET /months/:month/members
func (h *MemberHandler) ListMembers(c *gin.Context) {
	members, err := h.ledgerService.ListMembers(c.Request.Context(), c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// AddMember handles POST /months/:month/members
func (h *MemberHandler) AddMember(c *gin.Context) {
	var input services.CreateMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.ledgerService.AddMember(c.Request.Context(), c.Param("month"), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

// UpdateMember handles PUT /months/:month/members/:id
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var patch services.UpdateMemberInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.ledgerService.UpdateMember(c.Request.Context(), c.Param("month"), id, &patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// DeleteMember handles DELETE /months/:month/members/:id
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.ledgerService.DeleteMember(c.Request.Context(), c.Param("month"), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member deleted successfully"})
}
