package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/checkout"
	"storefront/internal/middleware"
)

type payRequest struct {
	Card *checkout.CardDetails `json:"carte"`
}

// GetCheckoutState returns the wizard state together with the order
// summary computed from the live cart.
func GetCheckoutState(svc *checkout.Service, carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/checkout"
		defer handlePanic(c, route)

		sessionID := middleware.SessionID(c)
		state, err := svc.Wizard().State(c.Request.Context(), sessionID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not load checkout state")
			return
		}

		view, err := carts.View(c.Request.Context(), sessionID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not load cart")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"state":  state,
			"cart":   view,
			"totals": checkout.ComputeTotals(view),
		})
	}
}

func SubmitIdentity(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/checkout/identity"
		defer handlePanic(c, route)

		var identity checkout.Identity
		if err := c.ShouldBindJSON(&identity); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		state, err := svc.Wizard().SubmitIdentity(c.Request.Context(), middleware.SessionID(c), identity)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "all identity fields are required")
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

func SubmitShipping(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/checkout/shipping"
		defer handlePanic(c, route)

		var shipping checkout.Shipping
		if err := c.ShouldBindJSON(&shipping); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		state, err := svc.Wizard().SubmitShipping(c.Request.Context(), middleware.SessionID(c), shipping)
		switch err {
		case nil:
			c.JSON(http.StatusOK, state)
		case checkout.ErrStepOrder:
			respondWithError(c, http.StatusConflict, route, "complete the identity step first")
		default:
			respondWithError(c, http.StatusBadRequest, route, "all shipping fields are required")
		}
	}
}

func CheckoutBack(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/checkout/back"
		defer handlePanic(c, route)

		state, err := svc.Wizard().Back(c.Request.Context(), middleware.SessionID(c))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not update checkout state")
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

// SubmitPayment runs the payment step. The embedded variant expects
// card details in the body; the hosted variant answers with a redirect
// URL instead of a settled order.
func SubmitPayment(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/checkout/payment"
		defer handlePanic(c, route)

		var req payRequest
		if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		outcome, err := svc.Pay(c.Request.Context(), middleware.SessionID(c), req.Card)
		switch err {
		case nil:
			c.JSON(http.StatusOK, outcome)
		case checkout.ErrStepOrder:
			respondWithError(c, http.StatusConflict, route, "complete the previous checkout steps first")
		case checkout.ErrEmptyCart:
			respondWithError(c, http.StatusBadRequest, route, "cart is empty")
		case checkout.ErrCardRequired:
			respondWithError(c, http.StatusBadRequest, route, "card details are required")
		default:
			respondBackendError(c, route, err)
		}
	}
}

// ConfirmPayment settles a hosted payment session after the processor
// redirect. Verification failures are a 200 with success=false so the
// storefront can render the support message.
func ConfirmPayment(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/checkout/confirm"
		defer handlePanic(c, route)

		result, err := svc.Confirm(c.Request.Context(), middleware.SessionID(c), c.Query("session_id"))
		if err != nil {
			respondBackendError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
