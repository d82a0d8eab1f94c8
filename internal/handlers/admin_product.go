package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/backend"
	"storefront/internal/catalog"
)

type updateProductRequest struct {
	Name        *string  `json:"nom"`
	Price       *float64 `json:"prix"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"categorie"`
	Description *string  `json:"description"`
}

// AdminListProducts serves the console list straight from the backend,
// bypassing the storefront cache so edits show immediately.
func AdminListProducts(api *backend.Client, imageBaseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/products"
		defer handlePanic(c, route)

		raw, err := api.FetchProducts(c.Request.Context())
		if err != nil {
			respondBackendError(c, route, err)
			return
		}

		products := make([]interface{}, 0, len(raw))
		for i, record := range raw {
			product, mapErr := catalog.MapRecord(record, imageBaseURL)
			if mapErr != nil {
				log.Printf("[%s] dropping record %d: %v", route, i, mapErr)
				continue
			}
			products = append(products, product)
		}
		c.JSON(http.StatusOK, products)
	}
}

func AdminCreateProduct(api *backend.Client, cache *catalog.Cache, imageBaseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/products"
		defer handlePanic(c, route)

		input, err := parseMultipartProductRequest(c)
		if err != nil {
			respondMultipartError(c, route, err)
			return
		}
		if !input.NameSet || input.Name == "" || !input.PriceSet {
			respondWithError(c, http.StatusBadRequest, route, "name and price are required")
			return
		}

		contentType, body, err := buildMultipartBody(input)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not encode product form")
			return
		}

		record, err := api.UploadProduct(c.Request.Context(), contentType, body)
		if err != nil {
			respondBackendError(c, route, err)
			return
		}

		refreshCatalog(c, cache, route)
		respondMappedProduct(c, route, http.StatusCreated, record, imageBaseURL)
	}
}

func AdminUpdateProduct(api *backend.Client, cache *catalog.Cache, imageBaseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/products/:id"
		defer handlePanic(c, route)

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		var record json.RawMessage
		if isMultipart(c) {
			input, parseErr := parseMultipartProductRequest(c)
			if parseErr != nil {
				respondMultipartError(c, route, parseErr)
				return
			}
			contentType, body, encodeErr := buildMultipartBody(input)
			if encodeErr != nil {
				respondWithError(c, http.StatusInternalServerError, route, "could not encode product form")
				return
			}
			record, err = api.UpdateProductUpload(c.Request.Context(), id, contentType, body)
		} else {
			var req updateProductRequest
			if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid request body")
				return
			}
			record, err = api.UpdateProduct(c.Request.Context(), id, req)
		}
		if err != nil {
			respondBackendError(c, route, err)
			return
		}

		refreshCatalog(c, cache, route)
		respondMappedProduct(c, route, http.StatusOK, record, imageBaseURL)
	}
}

func AdminDeleteProduct(api *backend.Client, cache *catalog.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/products/:id"
		defer handlePanic(c, route)

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		if err := api.DeleteProduct(c.Request.Context(), id); err != nil {
			respondBackendError(c, route, err)
			return
		}

		refreshCatalog(c, cache, route)
		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}

// AdminApplySale validates the percentage before any backend call: it
// must fall strictly between 0 and 100.
func AdminApplySale(api *backend.Client, cache *catalog.Cache, imageBaseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/products/:id/sale/:percent"
		defer handlePanic(c, route)

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		percent, err := strconv.ParseFloat(c.Param("percent"), 64)
		if err != nil || percent <= 0 || percent >= 100 {
			respondWithError(c, http.StatusBadRequest, route, "sale percentage must be between 0 and 100")
			return
		}

		record, err := api.ApplySale(c.Request.Context(), id, percent)
		if err != nil {
			respondBackendError(c, route, err)
			return
		}

		refreshCatalog(c, cache, route)
		respondMappedProduct(c, route, http.StatusOK, record, imageBaseURL)
	}
}

func AdminRemoveSale(api *backend.Client, cache *catalog.Cache, imageBaseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/products/:id/sale/remove"
		defer handlePanic(c, route)

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		record, err := api.RemoveSale(c.Request.Context(), id)
		if err != nil {
			respondBackendError(c, route, err)
			return
		}

		refreshCatalog(c, cache, route)
		respondMappedProduct(c, route, http.StatusOK, record, imageBaseURL)
	}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data")
}

// refreshCatalog reloads the storefront cache after a console mutation;
// the mutation already succeeded, so a reload failure is only logged.
func refreshCatalog(c *gin.Context, cache *catalog.Cache, route string) {
	if _, err := cache.Load(c.Request.Context(), true); err != nil {
		log.Printf("[%s] catalog refresh failed: %v", route, err)
	}
}

func respondMappedProduct(c *gin.Context, route string, status int, record json.RawMessage, imageBaseURL string) {
	product, err := catalog.MapRecord(record, imageBaseURL)
	if err != nil {
		// mutation succeeded; surface the raw record rather than fail
		log.Printf("[%s] could not map backend response: %v", route, err)
		c.Data(status, "application/json", record)
		return
	}
	c.JSON(status, product)
}
