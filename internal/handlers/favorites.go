package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/favorites"
	"storefront/internal/middleware"
)

func GetFavorites(favs *favorites.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/favorites"
		defer handlePanic(c, route)

		products, err := favs.List(c.Request.Context(), middleware.SessionID(c))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not load favorites")
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func AddFavorite(favs *favorites.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/favorites/:productId"
		defer handlePanic(c, route)

		productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		if err := favs.Add(c.Request.Context(), middleware.SessionID(c), productID); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not update favorites")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "favorite added"})
	}
}

func RemoveFavorite(favs *favorites.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/favorites/:productId"
		defer handlePanic(c, route)

		productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		if err := favs.Remove(c.Request.Context(), middleware.SessionID(c), productID); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not update favorites")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "favorite removed"})
	}
}
