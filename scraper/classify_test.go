package scraper

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/brandsift/brandsift/models"
)

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"chromium dns", errors.New("net::ERR_NAME_NOT_RESOLVED"), models.ErrCategoryDomainNotFound},
		{"go dns", errors.New(`dial tcp: lookup nope.invalid: no such host`), models.ErrCategoryDomainNotFound},
		{"chromium refused", errors.New("net::ERR_CONNECTION_REFUSED"), models.ErrCategoryConnectionRefused},
		{"go refused", errors.New("dial tcp 127.0.0.1:81: connect: connection refused"), models.ErrCategoryConnectionRefused},
		{"chromium timed out", errors.New("net::ERR_TIMED_OUT"), models.ErrCategoryTimeout},
		{"connection timed out", errors.New("net::ERR_CONNECTION_TIMED_OUT"), models.ErrCategoryTimeout},
		{"cert error", errors.New("net::ERR_CERT_AUTHORITY_INVALID"), models.ErrCategorySSL},
		{"ssl protocol error", errors.New("net::ERR_SSL_PROTOCOL_ERROR"), models.ErrCategorySSL},
		{"redirect loop", errors.New("net::ERR_TOO_MANY_REDIRECTS"), models.ErrCategoryRedirect},
		{"unmatched", errors.New("net::ERR_EMPTY_RESPONSE"), models.ErrCategoryUnknown},
		{"nil", nil, models.ErrCategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyCategory(tt.err); got != tt.want {
				t.Errorf("ClassifyCategory(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyCategory_ContextDeadline(t *testing.T) {
	err := fmt.Errorf("navigate: %w", context.DeadlineExceeded)
	if got := ClassifyCategory(err); got != models.ErrCategoryTimeout {
		t.Errorf("wrapped deadline error = %q, want TIMEOUT", got)
	}
}

func TestClassify_FixedMessageAndWrappedRaw(t *testing.T) {
	raw := errors.New("net::ERR_NAME_NOT_RESOLVED at https://nope.invalid")
	scrapeErr := Classify(raw)

	if scrapeErr.Category != models.ErrCategoryDomainNotFound {
		t.Fatalf("unexpected category %q", scrapeErr.Category)
	}
	if scrapeErr.Message != models.CategoryMessage(models.ErrCategoryDomainNotFound) {
		t.Errorf("message should be the category's fixed text, got %q", scrapeErr.Message)
	}
	if !errors.Is(scrapeErr, raw) {
		t.Error("raw error should be preserved via Unwrap for diagnostics")
	}
}
