package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brandsift/brandsift/enhance"
	"github.com/brandsift/brandsift/models"
)

type fakeExtractor struct {
	result *models.ScrapeResult
}

func (f *fakeExtractor) Extract(_ context.Context, url string) *models.ScrapeResult {
	f.result.URL = url
	return f.result
}

type fakeEnhancer struct {
	outcome enhance.Outcome
	calls   int
}

func (f *fakeEnhancer) Enhance(_ context.Context, _, _, _ string) enhance.Outcome {
	f.calls++
	return f.outcome
}

func (f *fakeEnhancer) Status() enhance.Status {
	return enhance.Status{Enabled: true, Model: "test-model"}
}

type fakeStore struct {
	created []*models.Brand
	failing bool
}

func (f *fakeStore) Create(_ context.Context, brand *models.Brand) error {
	if f.failing {
		return sql.ErrConnDone
	}
	brand.ID = uuid.New()
	f.created = append(f.created, brand)
	return nil
}

func (f *fakeStore) GetByID(context.Context, uuid.UUID) (*models.Brand, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeStore) List(context.Context, int, int) ([]*models.Brand, error) {
	return nil, nil
}

func (f *fakeStore) Update(context.Context, uuid.UUID, *string, *string) (*models.Brand, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeStore) Delete(context.Context, uuid.UUID) error {
	return sql.ErrNoRows
}

func performAnalyze(t *testing.T, ext Extractor, enh Enhancer, store BrandStore, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/analyze", Analyze(ext, enh, store))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func successResult() *models.ScrapeResult {
	return models.NewExtractedResult("https://acme.test", "Acme", "acme makes widgets and stuff")
}

func TestAnalyze_InvalidBody(t *testing.T) {
	w := performAnalyze(t, &fakeExtractor{}, &fakeEnhancer{}, &fakeStore{}, `{"enhance": true}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAnalyze_ExtractionFailureNotPersisted(t *testing.T) {
	ext := &fakeExtractor{
		result: models.NewFailedResult("", models.NewCategorizedError(models.ErrCategoryDomainNotFound, nil)),
	}
	store := &fakeStore{}
	w := performAnalyze(t, ext, &fakeEnhancer{}, store, `{"url":"https://nope.invalid"}`)

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
	if len(store.created) != 0 {
		t.Error("failed extractions must not be persisted")
	}

	var resp models.AnalyzeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Success {
		t.Error("response success must be false")
	}
	if resp.Error == nil || resp.Error.Category != models.ErrCategoryDomainNotFound {
		t.Errorf("unexpected error detail: %+v", resp.Error)
	}
}

func TestAnalyze_FailureCategoryStatusMapping(t *testing.T) {
	tests := []struct {
		category string
		want     int
	}{
		{models.ErrCategoryInvalidURL, http.StatusBadRequest},
		{models.ErrCategoryTimeout, http.StatusGatewayTimeout},
		{models.ErrCategoryDomainNotFound, http.StatusBadGateway},
		{models.ErrCategoryConnectionRefused, http.StatusBadGateway},
		{models.ErrCategorySSL, http.StatusBadGateway},
		{models.ErrCategoryRedirect, http.StatusBadGateway},
		{models.ErrCategoryUnknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			ext := &fakeExtractor{
				result: models.NewFailedResult("", models.NewCategorizedError(tt.category, nil)),
			}
			w := performAnalyze(t, ext, &fakeEnhancer{}, &fakeStore{}, `{"url":"https://acme.test"}`)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}

			var resp models.AnalyzeResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid response body: %v", err)
			}
			if resp.Error == nil || resp.Error.Category != tt.category {
				t.Errorf("unexpected error detail: %+v", resp.Error)
			}
		})
	}
}

func TestAnalyze_SuccessWithEnhancement(t *testing.T) {
	ext := &fakeExtractor{result: successResult()}
	enh := &fakeEnhancer{outcome: enhance.Outcome{Text: "Acme crafts premium widgets.", UsedFallback: false}}
	store := &fakeStore{}

	w := performAnalyze(t, ext, enh, store, `{"url":"https://acme.test"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if enh.calls != 1 {
		t.Errorf("enhancer called %d times, want 1", enh.calls)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected one persisted brand, got %d", len(store.created))
	}

	brand := store.created[0]
	if brand.Description == nil || *brand.Description != "Acme crafts premium widgets." {
		t.Errorf("persisted description = %v, want enhanced text", brand.Description)
	}
	if brand.RawDescription == nil || *brand.RawDescription != "acme makes widgets and stuff" {
		t.Errorf("raw description must be preserved, got %v", brand.RawDescription)
	}
	if !brand.Enhanced {
		t.Error("brand must be marked enhanced when the model rewrote the text")
	}
}

// Enhancement falling back must never flip the operation's success flag.
func TestAnalyze_FallbackKeepsSuccess(t *testing.T) {
	ext := &fakeExtractor{result: successResult()}
	enh := &fakeEnhancer{outcome: enhance.Outcome{Text: "Acme makes widgets and stuff.", UsedFallback: true}}
	store := &fakeStore{}

	w := performAnalyze(t, ext, enh, store, `{"url":"https://acme.test"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	var resp models.AnalyzeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Success {
		t.Error("fallback enhancement must not fail the operation")
	}
	if len(store.created) != 1 || store.created[0].Enhanced {
		t.Error("fallback-enhanced brand must not be marked enhanced")
	}
}

func TestAnalyze_EnhanceFalseSkipsEnhancer(t *testing.T) {
	ext := &fakeExtractor{result: successResult()}
	enh := &fakeEnhancer{}
	store := &fakeStore{}

	w := performAnalyze(t, ext, enh, store, `{"url":"https://acme.test","enhance":false}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if enh.calls != 0 {
		t.Errorf("enhancer called %d times, want 0", enh.calls)
	}

	brand := store.created[0]
	if brand.Description == nil || *brand.Description != "acme makes widgets and stuff" {
		t.Errorf("description must stay raw when enhancement is off, got %v", brand.Description)
	}
}

func TestStatusEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/status", Status(&fakeEnhancer{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var st enhance.Status
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !st.Enabled || st.Model != "test-model" {
		t.Errorf("unexpected status payload: %+v", st)
	}
}
