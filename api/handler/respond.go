package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brandsift/brandsift/models"
)

// respondScrapeFailure maps a failed ScrapeResult to the right HTTP status
// and writes a structured error response.
func respondScrapeFailure(c *gin.Context, result *models.ScrapeResult) {
	category := models.ErrCategoryUnknown
	if result.ErrorCategory != nil {
		category = *result.ErrorCategory
	}
	message := models.CategoryMessage(category)
	if result.Error != nil {
		message = *result.Error
	}

	c.JSON(categoryToStatus(category), models.AnalyzeResponse{
		Success: false,
		Result:  result,
		Error:   &models.ErrorDetail{Category: category, Message: message},
	})
}

// respondError writes a structured error response for non-scrape failures.
func respondError(c *gin.Context, status int, category, message string) {
	c.JSON(status, models.AnalyzeResponse{
		Success: false,
		Error:   &models.ErrorDetail{Category: category, Message: message},
	})
}

// categoryToStatus translates scrape error categories to HTTP status codes.
func categoryToStatus(category string) int {
	switch category {
	case models.ErrCategoryInvalidURL:
		return http.StatusBadRequest // 400
	case models.ErrCategoryTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCategoryDomainNotFound,
		models.ErrCategoryConnectionRefused,
		models.ErrCategorySSL,
		models.ErrCategoryRedirect:
		return http.StatusBadGateway // 502
	default:
		return http.StatusInternalServerError // 500
	}
}
