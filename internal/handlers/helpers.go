package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/backend"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondBackendError maps a failed backend call to a short actionable
// message, never raw transport error text.
func respondBackendError(c *gin.Context, route string, err error) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		log.Printf("[%s] backend error %d: %s", route, apiErr.Status, apiErr.Message)
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr.Message})
		return
	}
	log.Printf("[%s] backend unreachable: %v", route, err)
	c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "service temporarily unavailable, please retry"})
}
