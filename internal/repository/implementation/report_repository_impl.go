package implementation

import (
	"context"
	"errors"

	"medisos-be/internal/entity"
	"medisos-be/internal/mapper"
	"medisos-be/internal/model"
	"medisos-be/internal/repository/contract"
	"medisos-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ReportRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReportMapper
}

func NewReportRepository(db *gorm.DB) contract.ReportRepository {
	return &ReportRepositoryImpl{
		db:     db,
		mapper: mapper.NewReportMapper(),
	}
}

func (r *ReportRepositoryImpl) Create(ctx context.Context, report *entity.Report) error {
	modelReport := r.mapper.ToModel(report)
	if err := r.db.WithContext(ctx).Create(modelReport).Error; err != nil {
		return err
	}
	*report = *r.mapper.ToEntity(modelReport)
	return nil
}

func (r *ReportRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Report, error) {
	var modelReport model.Report
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelReport).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelReport), nil
}

func (r *ReportRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Report, error) {
	var modelReports []*model.Report
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelReports).Error; err != nil {
		return nil, err
	}

	reports := make([]*entity.Report, len(modelReports))
	for i, m := range modelReports {
		reports[i] = r.mapper.ToEntity(m)
	}
	return reports, nil
}

type PsychologistRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReportMapper
}

func NewPsychologistRepository(db *gorm.DB) contract.PsychologistRepository {
	return &PsychologistRepositoryImpl{
		db:     db,
		mapper: mapper.NewReportMapper(),
	}
}

func (r *PsychologistRepositoryImpl) Create(ctx context.Context, psychologist *entity.Psychologist) error {
	modelPsych := r.mapper.PsychologistToModel(psychologist)
	if err := r.db.WithContext(ctx).Create(modelPsych).Error; err != nil {
		return err
	}
	*psychologist = *r.mapper.PsychologistToEntity(modelPsych)
	return nil
}

func (r *PsychologistRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Psychologist, error) {
	var modelPsych model.Psychologist
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelPsych).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.PsychologistToEntity(&modelPsych), nil
}

func (r *PsychologistRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Psychologist, error) {
	var modelPsychs []*model.Psychologist
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelPsychs).Error; err != nil {
		return nil, err
	}

	return r.mapper.PsychologistsToEntities(modelPsychs), nil
}
