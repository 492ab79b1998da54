package mapper

import (
	"encoding/json"

	"medisos-be/internal/entity"
	"medisos-be/internal/model"

	"gorm.io/datatypes"
)

type QuestionMapper struct{}

func NewQuestionMapper() *QuestionMapper {
	return &QuestionMapper{}
}

func (m *QuestionMapper) ToEntity(q *model.Question) *entity.Question {
	if q == nil {
		return nil
	}
	var options []string
	if len(q.Options) > 0 {
		// Malformed options are treated as absent rather than failing the read.
		_ = json.Unmarshal(q.Options, &options)
	}
	return &entity.Question{
		Id:       q.Id,
		Category: q.Category,
		Text:     q.Text,
		Options:  options,
	}
}

func (m *QuestionMapper) ToModel(q *entity.Question) *model.Question {
	if q == nil {
		return nil
	}
	var options datatypes.JSON
	if len(q.Options) > 0 {
		raw, err := json.Marshal(q.Options)
		if err == nil {
			options = datatypes.JSON(raw)
		}
	}
	return &model.Question{
		Id:       q.Id,
		Category: q.Category,
		Text:     q.Text,
		Options:  options,
	}
}

func (m *QuestionMapper) ToEntities(questions []*model.Question) []*entity.Question {
	entities := make([]*entity.Question, len(questions))
	for i, q := range questions {
		entities[i] = m.ToEntity(q)
	}
	return entities
}
