package api

import (
	"errors"
	"net/http"

	"inovatrust/domain"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondError maps domain errors onto HTTP statuses. Unknown errors
// become opaque 500s; the detail goes to the log, not the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrBelowMinimum),
		errors.Is(err, domain.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{"error": rootMessage(err)})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": rootMessage(err)})
	case errors.Is(err, domain.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": rootMessage(err)})
	case errors.Is(err, domain.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": rootMessage(err)})
	case errors.Is(err, domain.ErrStakingDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": rootMessage(err)})
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// rootMessage unwraps to the sentinel's message so clients see
// "insufficient balance", not the wrapping context.
func rootMessage(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}

// respondBadRequest reports a malformed request body or parameter
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
