package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/venueflow/portal-backend/internal/common"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Lock conflicts are handled separately by the lock handler because the 409
// payload carries holder details.
func writeServiceError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, common.ErrNotFound), errors.Is(err, common.ErrContentTypeNotFound):
		common.ErrorResponse(c, http.StatusNotFound, message, err)
	case errors.Is(err, common.ErrDuplicateKey), errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, http.StatusBadRequest, message, err)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, http.StatusForbidden, message, err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, message, err)
	}
}
