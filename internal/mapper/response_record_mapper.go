package mapper

import (
	"medisos-be/internal/entity"
	"medisos-be/internal/model"
)

type ResponseRecordMapper struct{}

func NewResponseRecordMapper() *ResponseRecordMapper {
	return &ResponseRecordMapper{}
}

func (m *ResponseRecordMapper) ToEntity(r *model.ResponseRecord) *entity.ResponseRecord {
	if r == nil {
		return nil
	}
	return &entity.ResponseRecord{
		Id:           r.Id,
		UserEmail:    r.UserEmail,
		QuestionId:   r.QuestionId,
		QuestionText: r.QuestionText,
		Response:     r.Response,
		CreatedAt:    r.CreatedAt,
	}
}

func (m *ResponseRecordMapper) ToModel(r *entity.ResponseRecord) *model.ResponseRecord {
	if r == nil {
		return nil
	}
	return &model.ResponseRecord{
		Id:           r.Id,
		UserEmail:    r.UserEmail,
		QuestionId:   r.QuestionId,
		QuestionText: r.QuestionText,
		Response:     r.Response,
		CreatedAt:    r.CreatedAt,
	}
}

func (m *ResponseRecordMapper) ToEntities(records []*model.ResponseRecord) []*entity.ResponseRecord {
	entities := make([]*entity.ResponseRecord, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
