package models

// ScrapeResult is the unified outcome of one scrape-and-enhance operation.
// It is constructed once per request and never mutated after the API layer
// hands it back to the caller.
//
// On failure every content field is nil and Error/ErrorCategory are set;
// on success the error fields are nil.
type ScrapeResult struct {
	URL            string  `json:"url"`
	BrandName      *string `json:"brand_name"`
	Description    *string `json:"description"`
	RawDescription *string `json:"raw_description"`
	Enhanced       bool    `json:"enhanced"`
	Success        bool    `json:"success"`
	Error          *string `json:"error"`
	ErrorCategory  *string `json:"error_category"`
}

// NewFailedResult builds a failure ScrapeResult from a categorized error.
func NewFailedResult(url string, err *ScrapeError) *ScrapeResult {
	msg := err.Message
	category := err.Category
	return &ScrapeResult{
		URL:           url,
		Success:       false,
		Error:         &msg,
		ErrorCategory: &category,
	}
}

// NewExtractedResult builds a success ScrapeResult from freshly extracted
// fields. Description starts out equal to the raw description; the caller
// swaps it for the enhanced text when enhancement runs.
func NewExtractedResult(url, brandName, description string) *ScrapeResult {
	raw := description
	desc := description
	return &ScrapeResult{
		URL:            url,
		BrandName:      &brandName,
		Description:    &desc,
		RawDescription: &raw,
		Success:        true,
	}
}
