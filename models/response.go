package models

// AnalyzeResponse is the response for POST /api/v1/analyze.
type AnalyzeResponse struct {
	// Success indicates whether extraction completed without errors.
	// Enhancement failures never flip this flag.
	Success bool `json:"success"`

	// Brand is the persisted record. Populated only on success.
	Brand *Brand `json:"brand,omitempty"`

	// Result carries the full scrape outcome, including the raw
	// description and the error category on failure.
	Result *ScrapeResult `json:"result,omitempty"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// BrandListResponse is the response for GET /api/v1/brands.
type BrandListResponse struct {
	Brands []*Brand `json:"brands"`
	Count  int      `json:"count"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status   string `json:"status"` // "healthy" or "degraded"
	Uptime   string `json:"uptime"`
	Database string `json:"database"` // "ok" or "unreachable"
	Version  string `json:"version"`
}
