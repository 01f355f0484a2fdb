package models

// AnalyzeRequest is the payload for POST /api/v1/analyze.
type AnalyzeRequest struct {
	// URL is the target page to analyze. Required.
	URL string `json:"url" binding:"required"`

	// Enhance controls whether the extracted description is rewritten by
	// the enhancement engine. Default: true.
	Enhance *bool `json:"enhance,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *AnalyzeRequest) Defaults() {
	if r.Enhance == nil {
		t := true
		r.Enhance = &t
	}
}

// UpdateBrandRequest is the payload for PUT /api/v1/brands/:id.
// Nil fields are left untouched.
type UpdateBrandRequest struct {
	BrandName   *string `json:"brand_name,omitempty"`
	Description *string `json:"description,omitempty"`
}
