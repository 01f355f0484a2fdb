package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brandsift/brandsift/models"
)

const (
	defaultListLimit = 25
	maxListLimit     = 100
)

// ListBrands returns the handler for GET /api/v1/brands.
func ListBrands(brands BrandStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := intQuery(c, "limit", defaultListLimit)
		if limit < 1 || limit > maxListLimit {
			limit = defaultListLimit
		}
		offset := intQuery(c, "offset", 0)
		if offset < 0 {
			offset = 0
		}

		items, err := brands.List(c.Request.Context(), limit, offset)
		if err != nil {
			respondError(c, http.StatusInternalServerError, models.ErrCategoryInternal,
				"failed to list brands")
			return
		}

		c.JSON(http.StatusOK, models.BrandListResponse{
			Brands: items,
			Count:  len(items),
			Limit:  limit,
			Offset: offset,
		})
	}
}

// GetBrand returns the handler for GET /api/v1/brands/:id.
func GetBrand(brands BrandStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		brand, err := brands.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				respondError(c, http.StatusNotFound, models.ErrCategoryNotFound, "brand not found")
				return
			}
			respondError(c, http.StatusInternalServerError, models.ErrCategoryInternal,
				"failed to load brand")
			return
		}

		c.JSON(http.StatusOK, brand)
	}
}

// UpdateBrand returns the handler for PUT /api/v1/brands/:id.
func UpdateBrand(brands BrandStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		var req models.UpdateBrandRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, models.ErrCategoryInvalidInput, err.Error())
			return
		}
		if req.BrandName == nil && req.Description == nil {
			respondError(c, http.StatusBadRequest, models.ErrCategoryInvalidInput,
				"at least one of brand_name or description is required")
			return
		}

		brand, err := brands.Update(c.Request.Context(), id, req.BrandName, req.Description)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				respondError(c, http.StatusNotFound, models.ErrCategoryNotFound, "brand not found")
				return
			}
			respondError(c, http.StatusInternalServerError, models.ErrCategoryInternal,
				"failed to update brand")
			return
		}

		c.JSON(http.StatusOK, brand)
	}
}

// DeleteBrand returns the handler for DELETE /api/v1/brands/:id.
func DeleteBrand(brands BrandStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		if err := brands.Delete(c.Request.Context(), id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				respondError(c, http.StatusNotFound, models.ErrCategoryNotFound, "brand not found")
				return
			}
			respondError(c, http.StatusInternalServerError, models.ErrCategoryInternal,
				"failed to delete brand")
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// parseID reads the :id path parameter as a UUID, responding 400 on failure.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCategoryInvalidInput, "invalid brand id")
		return uuid.Nil, false
	}
	return id, true
}

func intQuery(c *gin.Context, key string, fallback int) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
