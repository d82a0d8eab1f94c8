package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
)

/*
GET /api/products
- filters: category, search
- pagination only when page + limit are both present
- refresh=1 forces a backend reload before serving
*/
func GetProducts(cache *catalog.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products"
		defer handlePanic(c, route)

		if c.Query("refresh") == "1" {
			if _, err := cache.Load(c.Request.Context(), false); err != nil {
				log.Printf("[%s] degraded reload: %v", route, err)
			}
		}

		products := cache.Filter(c.Query("category"), c.Query("search"))

		pageStr := c.Query("page")
		limitStr := c.Query("limit")
		if pageStr != "" && limitStr != "" {
			page, limit, err := parsePaginationParams(pageStr, limitStr)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"data": paginate(products, page, limit),
				"pagination": gin.H{
					"page":  page,
					"limit": limit,
					"total": len(products),
				},
			})
			return
		}

		log.Printf("[%s] returning %d products", route, len(products))
		c.JSON(http.StatusOK, products)
	}
}

func GetProduct(cache *catalog.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products/:id"
		defer handlePanic(c, route)

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		product, ok := cache.Get(id)
		if !ok {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func GetCategories(cache *catalog.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/categories"
		defer handlePanic(c, route)

		c.JSON(http.StatusOK, cache.Categories())
	}
}
