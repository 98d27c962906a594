package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/trace-microservice/internal/domain/repository"
	"github.com/trace-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type sourceRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewSourceRepository(db *DB) repository.SourceRepository {
	return &sourceRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *sourceRepository) GetOrCreate(ctx context.Context, name string) (int64, error) {
	query := `
		INSERT INTO sources (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, name).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to get or create source", zap.String("name", name), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return id, nil
}
