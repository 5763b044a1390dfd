package handlers

import (
	"errors"
	"net/http"

	"committee-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError maps engine errors onto HTTP statuses. The message is passed
// through verbatim; the dashboard renders it as-is.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
		invariantErr  *services.InvariantViolationError
		duplicateErr  *services.DuplicateWinnerError
		emptyErr      *services.EmptyRosterError
		seededErr     *services.AlreadySeededError
		endErr        *services.EndOfSequenceError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
	case errors.As(err, &invariantErr):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &duplicateErr), errors.As(err, &emptyErr),
		errors.As(err, &seededErr), errors.As(err, &endErr):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
