package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/brandsift/brandsift/enhance"
	"github.com/brandsift/brandsift/models"
)

// Extractor renders a page and produces a structured scrape result.
// Satisfied by *scraper.Extractor.
type Extractor interface {
	Extract(ctx context.Context, url string) *models.ScrapeResult
}

// Enhancer rewrites extracted descriptions, never failing the caller.
// Satisfied by *enhance.Enhancer.
type Enhancer interface {
	Enhance(ctx context.Context, rawText, brandName, sourceURL string) enhance.Outcome
	Status() enhance.Status
}

// BrandStore is the persistence boundary. Satisfied by *store.BrandRepository.
type BrandStore interface {
	Create(ctx context.Context, brand *models.Brand) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	List(ctx context.Context, limit, offset int) ([]*models.Brand, error)
	Update(ctx context.Context, id uuid.UUID, brandName, description *string) (*models.Brand, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
