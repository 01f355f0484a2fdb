package scraper

import (
	"context"
	"errors"
	"strings"

	"github.com/brandsift/brandsift/models"
)

// categoryPatterns maps lowercase substrings of Chromium net errors (and the
// occasional Go transport error) to stable categories. Rod only exposes the
// navigation failure as text, so this substring matcher is the classifier;
// it is kept as a single pure function so it can be tested in isolation.
//
// Order matters: earlier patterns win.
var categoryPatterns = []struct {
	substr   string
	category string
}{
	{"err_name_not_resolved", models.ErrCategoryDomainNotFound},
	{"err_name_resolution_failed", models.ErrCategoryDomainNotFound},
	{"no such host", models.ErrCategoryDomainNotFound},
	{"err_connection_refused", models.ErrCategoryConnectionRefused},
	{"connection refused", models.ErrCategoryConnectionRefused},
	{"err_connection_timed_out", models.ErrCategoryTimeout},
	{"err_timed_out", models.ErrCategoryTimeout},
	{"context deadline exceeded", models.ErrCategoryTimeout},
	{"timeout", models.ErrCategoryTimeout},
	{"err_cert_", models.ErrCategorySSL},
	{"err_ssl_", models.ErrCategorySSL},
	{"ssl handshake", models.ErrCategorySSL},
	{"certificate", models.ErrCategorySSL},
	{"err_too_many_redirects", models.ErrCategoryRedirect},
	{"redirect loop", models.ErrCategoryRedirect},
	{"too many redirects", models.ErrCategoryRedirect},
}

// Classify maps a navigation failure to a ScrapeError carrying a stable
// category and that category's fixed user-facing message. The raw error is
// wrapped for diagnostics.
func Classify(err error) *models.ScrapeError {
	return models.NewCategorizedError(ClassifyCategory(err), err)
}

// ClassifyCategory returns the error category for a navigation failure.
func ClassifyCategory(err error) string {
	if err == nil {
		return models.ErrCategoryUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return models.ErrCategoryTimeout
	}

	text := strings.ToLower(err.Error())
	for _, p := range categoryPatterns {
		if strings.Contains(text, p.substr) {
			return p.category
		}
	}
	return models.ErrCategoryUnknown
}
