package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"storefront/internal/backend"
	"storefront/internal/models"
)

type statusChangeRequest struct {
	Status         models.OrderStatus `json:"statut"`
	Comment        string             `json:"commentaire"`
	TrackingNumber string             `json:"numeroSuivi"`
	Carrier        string             `json:"transporteur"`
	ShippedAt      string             `json:"dateExpedition"`
	DeliveredAt    string             `json:"dateLivraison"`
	Reason         string             `json:"raison"`
}

func AdminListOrders(api *backend.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/orders"
		defer handlePanic(c, route)

		orders, err := api.ListOrders(c.Request.Context())
		if err != nil {
			respondBackendError(c, route, err)
			return
		}
		if orders == nil {
			orders = []models.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

func AdminGetOrder(api *backend.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/orders/:id"
		defer handlePanic(c, route)

		id, ok := orderIDParam(c, route)
		if !ok {
			return
		}

		order, err := api.GetOrder(c.Request.Context(), id)
		if err != nil {
			respondBackendError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// AdminSetOrderStatus rejects unknown statuses before touching the
// backend.
func AdminSetOrderStatus(api *backend.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/orders/:id/status"
		defer handlePanic(c, route)

		id, ok := orderIDParam(c, route)
		if !ok {
			return
		}

		var req statusChangeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if !req.Status.Valid() {
			respondWithError(c, http.StatusBadRequest, route, "unknown order status")
			return
		}

		order, err := api.SetOrderStatus(c.Request.Context(), id, backend.StatusChange{
			Status:  req.Status,
			Comment: req.Comment,
			Actor:   adminActor(c),
		})
		if err != nil {
			respondBackendError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func AdminShipOrder(api *backend.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/orders/:id/ship"
		defer handlePanic(c, route)

		id, ok := orderIDParam(c, route)
		if !ok {
			return
		}

		var req statusChangeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if req.TrackingNumber == "" || req.Carrier == "" {
			respondWithError(c, http.StatusBadRequest, route, "tracking number and carrier are required")
			return
		}

		order, err := api.ShipOrder(c.Request.Context(), id, backend.StatusChange{
			TrackingNumber: req.TrackingNumber,
			Carrier:        req.Carrier,
			ShippedAt:      req.ShippedAt,
			Comment:        req.Comment,
			Actor:          adminActor(c),
		})
		if err != nil {
			respondBackendError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func AdminDeliverOrder(api *backend.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/orders/:id/deliver"
		defer handlePanic(c, route)

		id, ok := orderIDParam(c, route)
		if !ok {
			return
		}

		var req statusChangeRequest
		if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		order, err := api.DeliverOrder(c.Request.Context(), id, backend.StatusChange{
			DeliveredAt: req.DeliveredAt,
			Comment:     req.Comment,
			Actor:       adminActor(c),
		})
		if err != nil {
			respondBackendError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func AdminCancelOrder(api *backend.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/orders/:id/cancel"
		defer handlePanic(c, route)

		id, ok := orderIDParam(c, route)
		if !ok {
			return
		}

		var req statusChangeRequest
		if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		order, err := api.CancelOrder(c.Request.Context(), id, backend.StatusChange{
			Reason:  req.Reason,
			Comment: req.Comment,
			Actor:   adminActor(c),
		})
		if err != nil {
			respondBackendError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func orderIDParam(c *gin.Context, route string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondWithError(c, http.StatusBadRequest, route, "invalid order id")
		return 0, false
	}
	return id, true
}

// adminActor resolves the console user recorded in status history.
func adminActor(c *gin.Context) string {
	if claims, ok := c.Get("claims"); ok {
		if m, ok := claims.(jwt.MapClaims); ok {
			if email, _ := m["email"].(string); email != "" {
				return email
			}
		}
	}
	return "admin"
}
