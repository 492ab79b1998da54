package contract

import (
	"context"

	"medisos-be/internal/entity"
	"medisos-be/internal/repository/specification"
)

// ResponseRecordRepository is append-only: records are never updated or
// deleted once written.
type ResponseRecordRepository interface {
	Create(ctx context.Context, record *entity.ResponseRecord) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ResponseRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
