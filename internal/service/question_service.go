package service

import (
	"context"

	"medisos-be/internal/dto"
	"medisos-be/internal/repository/specification"
	"medisos-be/internal/repository/unitofwork"
)

type IQuestionService interface {
	GetQuestions(ctx context.Context, category string) ([]*dto.QuestionResponse, error)
}

type questionService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewQuestionService(uowFactory unitofwork.RepositoryFactory) IQuestionService {
	return &questionService{uowFactory: uowFactory}
}

// GetQuestions lists the question bank in ascending id order, optionally
// narrowed to one category.
func (s *questionService) GetQuestions(ctx context.Context, category string) ([]*dto.QuestionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "id", Desc: false},
	}
	if category != "" {
		specs = append(specs, specification.ByCategory{Category: category})
	}

	questions, err := uow.QuestionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, &dto.QuestionResponse{
			Id:       q.Id,
			Text:     q.Text,
			Category: q.Category,
			Options:  q.Options,
		})
	}
	return out, nil
}
