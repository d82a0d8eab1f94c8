package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/middleware"
)

type addToCartRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantite"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantite"`
}

func GetCart(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/cart"
		defer handlePanic(c, route)

		view, err := carts.View(c.Request.Context(), middleware.SessionID(c))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not load cart")
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func AddToCart(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/cart"
		defer handlePanic(c, route)

		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if req.Quantity < 1 {
			req.Quantity = 1
		}

		view, err := carts.Add(c.Request.Context(), middleware.SessionID(c), req.ProductID, req.Quantity)
		switch err {
		case nil:
			c.JSON(http.StatusOK, view)
		case cart.ErrUnknownProduct:
			respondWithError(c, http.StatusNotFound, route, "product not found")
		case cart.ErrOutOfStock:
			respondWithError(c, http.StatusBadRequest, route, "product is out of stock")
		default:
			respondWithError(c, http.StatusInternalServerError, route, "could not update cart")
		}
	}
}

func SetCartQuantity(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/cart/:productId"
		defer handlePanic(c, route)

		productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		view, err := carts.SetQuantity(c.Request.Context(), middleware.SessionID(c), productID, req.Quantity)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not update cart")
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func RemoveFromCart(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/cart/:productId"
		defer handlePanic(c, route)

		productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		view, err := carts.Remove(c.Request.Context(), middleware.SessionID(c), productID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not update cart")
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func ClearCart(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/cart"
		defer handlePanic(c, route)

		if err := carts.Clear(c.Request.Context(), middleware.SessionID(c)); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not clear cart")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
	}
}
