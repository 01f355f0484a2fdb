package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brandsift/brandsift/models"
)

// Analyze returns the handler for POST /api/v1/analyze.
//
// Orchestration flow:
//  1. Parse request, apply defaults.
//  2. Extractor.Extract → brand name + raw description (or categorized failure).
//  3. If enhancement requested: Enhancer.Enhance rewrites the description.
//     Enhancement never fails the operation; worst case is the local cleanup.
//  4. Persist the record, return 201.
func Analyze(ext Extractor, enh Enhancer, brands BrandStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, models.ErrCategoryInvalidInput, err.Error())
			return
		}
		req.Defaults()

		result := ext.Extract(c.Request.Context(), req.URL)
		if !result.Success {
			respondScrapeFailure(c, result)
			return
		}

		if *req.Enhance && result.RawDescription != nil {
			brandName := ""
			if result.BrandName != nil {
				brandName = *result.BrandName
			}
			outcome := enh.Enhance(c.Request.Context(), *result.RawDescription, brandName, result.URL)
			result.Description = &outcome.Text
			result.Enhanced = !outcome.UsedFallback
		}

		brand := models.FromScrapeResult(result)
		if err := brands.Create(c.Request.Context(), brand); err != nil {
			respondError(c, http.StatusInternalServerError, models.ErrCategoryInternal,
				"failed to persist analysis result")
			return
		}

		c.JSON(http.StatusCreated, models.AnalyzeResponse{
			Success: true,
			Brand:   brand,
			Result:  result,
		})
	}
}
