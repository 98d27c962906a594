package document

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/trace-microservice/internal/domain"
	"github.com/trace-microservice/internal/domain/repository"
	"github.com/trace-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

const traceKeyPrefix = "trace:"

type traceDocumentRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewTraceDocumentRepository(store *Store) repository.TraceDocumentRepository {
	return &traceDocumentRepository{
		client: store.Client(),
		logger: store.logger,
	}
}

func (r *traceDocumentRepository) Insert(ctx context.Context, doc *domain.TraceDocument) (string, error) {
	id := uuid.New().String()
	doc.ID = id

	data, err := json.Marshal(doc)
	if err != nil {
		r.logger.Error("Failed to marshal trace document",
			zap.String("filename", doc.Filename),
			zap.Error(err))
		return "", errors.ErrDocumentStoreError
	}

	// Documents are permanent, no TTL.
	if err := r.client.Set(ctx, traceKeyPrefix+id, data, 0).Err(); err != nil {
		r.logger.Error("Failed to store trace document",
			zap.String("id", id),
			zap.String("filename", doc.Filename),
			zap.Error(err))
		return "", errors.ErrDocumentStoreError
	}

	return id, nil
}

func (r *traceDocumentRepository) Get(ctx context.Context, id string) (*domain.TraceDocument, error) {
	data, err := r.client.Get(ctx, traceKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, errors.ErrHikeNotFound
	}
	if err != nil {
		r.logger.Error("Failed to read trace document", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDocumentStoreError
	}

	var doc domain.TraceDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		r.logger.Error("Failed to unmarshal trace document", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDocumentStoreError
	}

	return &doc, nil
}
