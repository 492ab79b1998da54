package implementation

import (
	"context"

	"medisos-be/internal/entity"
	"medisos-be/internal/mapper"
	"medisos-be/internal/model"
	"medisos-be/internal/repository/contract"
	"medisos-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ResponseRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ResponseRecordMapper
}

func NewResponseRecordRepository(db *gorm.DB) contract.ResponseRecordRepository {
	return &ResponseRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewResponseRecordMapper(),
	}
}

func (r *ResponseRecordRepositoryImpl) Create(ctx context.Context, record *entity.ResponseRecord) error {
	modelRecord := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(modelRecord).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(modelRecord)
	return nil
}

func (r *ResponseRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ResponseRecord, error) {
	var modelRecords []*model.ResponseRecord
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelRecords).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelRecords), nil
}

func (r *ResponseRecordRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.ResponseRecord{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
