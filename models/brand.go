package models

import (
	"time"

	"github.com/google/uuid"
)

// Brand is the persisted record produced by one analyze operation.
type Brand struct {
	ID             uuid.UUID `json:"id" db:"id"`
	URL            string    `json:"url" db:"url"`
	BrandName      *string   `json:"brand_name" db:"brand_name"`
	Description    *string   `json:"description" db:"description"`
	RawDescription *string   `json:"raw_description" db:"raw_description"`
	Enhanced       bool      `json:"enhanced" db:"enhanced"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// FromScrapeResult shapes a successful ScrapeResult into a Brand ready for
// insertion. The store fills ID and the timestamps.
func FromScrapeResult(r *ScrapeResult) *Brand {
	return &Brand{
		URL:            r.URL,
		BrandName:      r.BrandName,
		Description:    r.Description,
		RawDescription: r.RawDescription,
		Enhanced:       r.Enhanced,
	}
}
