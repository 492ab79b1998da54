package contract

import (
	"context"

	"medisos-be/internal/entity"
	"medisos-be/internal/repository/specification"
)

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Report, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Report, error)
}

type PsychologistRepository interface {
	Create(ctx context.Context, psychologist *entity.Psychologist) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Psychologist, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Psychologist, error)
}
