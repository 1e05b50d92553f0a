package httpserver

import (
	"errors"
	"log"
	"net/http"

	"storefront-api/internal/domain"
	"github.com/gin-gonic/gin"
)

// respondError translates the domain error taxonomy to HTTP. Validation and
// conflict messages are caller-safe and passed through verbatim; anything
// unrecognized is logged server-side and hidden behind a generic 500 body.
func respondError(c *gin.Context, logger *log.Logger, err error, notFoundMessage string) {
	switch {
	case domain.IsValidation(err), domain.IsConflict(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage})
	default:
		logger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "something went wrong"})
	}
}
