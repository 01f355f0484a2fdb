package models

import "fmt"

// Error categories used in API responses and internal error handling.
const (
	ErrCategoryInvalidURL        = "INVALID_URL"
	ErrCategoryDomainNotFound    = "DOMAIN_NOT_FOUND"
	ErrCategoryConnectionRefused = "CONNECTION_REFUSED"
	ErrCategoryTimeout           = "TIMEOUT"
	ErrCategorySSL               = "SSL_ERROR"
	ErrCategoryRedirect          = "REDIRECT_ERROR"
	ErrCategoryUnknown           = "UNKNOWN_ERROR"

	ErrCategoryInvalidInput = "INVALID_INPUT"
	ErrCategoryRateLimited  = "RATE_LIMITED"
	ErrCategoryNotFound     = "NOT_FOUND"
	ErrCategoryInternal     = "INTERNAL_ERROR"
)

// categoryMessages maps each category to its fixed user-facing message.
// The raw underlying error is kept separately on ScrapeError for diagnostics.
var categoryMessages = map[string]string{
	ErrCategoryInvalidURL:        "the provided URL is not a valid http or https address",
	ErrCategoryDomainNotFound:    "the website's domain could not be found",
	ErrCategoryConnectionRefused: "the website refused the connection",
	ErrCategoryTimeout:           "the website took too long to respond",
	ErrCategorySSL:               "the website's SSL certificate could not be verified",
	ErrCategoryRedirect:          "the website redirected too many times",
	ErrCategoryUnknown:           "an unexpected error occurred while loading the website",
}

// CategoryMessage returns the fixed user-facing message for a category.
func CategoryMessage(category string) string {
	if msg, ok := categoryMessages[category]; ok {
		return msg
	}
	return categoryMessages[ErrCategoryUnknown]
}

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// ScrapeError is the internal error type carrying a stable category tag.
// It implements the error interface and supports error wrapping via Unwrap.
type ScrapeError struct {
	Category string
	Message  string
	Err      error // wrapped original error
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// NewScrapeError creates a new ScrapeError with an explicit message.
func NewScrapeError(category, message string, err error) *ScrapeError {
	return &ScrapeError{Category: category, Message: message, Err: err}
}

// NewCategorizedError creates a ScrapeError carrying the category's fixed
// user-facing message, wrapping the raw underlying error.
func NewCategorizedError(category string, err error) *ScrapeError {
	return &ScrapeError{Category: category, Message: CategoryMessage(category), Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *ScrapeError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Category: e.Category, Message: e.Message}
}
