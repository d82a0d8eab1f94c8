package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/tracking"
)

// TrackOrder validates the order id before any backend call, then
// returns the combined tracking view.
func TrackOrder(svc *tracking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/:id/track"
		defer handlePanic(c, route)

		orderID, err := tracking.ParseOrderID(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "order id must be a positive number")
			return
		}

		result, err := svc.Lookup(c.Request.Context(), orderID)
		if err != nil {
			respondBackendError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
