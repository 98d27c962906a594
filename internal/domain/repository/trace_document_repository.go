package repository

import (
	"context"

	"github.com/trace-microservice/internal/domain"
)

// TraceDocumentRepository is the payload store: raw trace documents keyed by
// a generated id that the hike row cross-references.
type TraceDocumentRepository interface {
	Insert(ctx context.Context, doc *domain.TraceDocument) (string, error)
	Get(ctx context.Context, id string) (*domain.TraceDocument, error)
}
