package repository

import (
	"context"

	"github.com/trace-microservice/internal/domain"
)

type SpotRepository interface {
	// ExistsByExternalID is the per-source dedup check.
	ExistsByExternalID(ctx context.Context, externalID string, sourceID int64) (bool, error)
	Create(ctx context.Context, spot *domain.Spot) (int64, error)
}

type POIRepository interface {
	// GetIDByExternalID returns 0 when no row matches.
	GetIDByExternalID(ctx context.Context, externalID string, sourceID int64) (int64, error)
	Create(ctx context.Context, poi *domain.POI) (int64, error)
}

type ServiceRepository interface {
	GetOrCreate(ctx context.Context, name string, category string) (int64, error)
	LinkSpot(ctx context.Context, spotID, serviceID int64) error
	LinkPOI(ctx context.Context, poiID, serviceID int64) error
}

type SourceRepository interface {
	GetOrCreate(ctx context.Context, name string) (int64, error)
}
