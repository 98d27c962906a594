package repository

import (
	"context"

	"github.com/trace-microservice/internal/domain"
)

type HikeRepository interface {
	// ExistsByFilename is the intake idempotency check.
	ExistsByFilename(ctx context.Context, filename string) (bool, error)
	Create(ctx context.Context, hike *domain.Hike) (int64, error)
	// SetDocumentRef patches the document back-reference after the trace
	// document has been written.
	SetDocumentRef(ctx context.Context, hikeID int64, documentRef string) error
	GetByID(ctx context.Context, id int64) (*domain.Hike, error)
}
