package service

import (
	"context"
	"time"

	"medisos-be/internal/dto"
	"medisos-be/internal/entity"
	"medisos-be/internal/repository/unitofwork"
)

type IResponseService interface {
	SaveResponse(ctx context.Context, userEmail string, req *dto.SaveResponseRequest) error
}

type responseService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewResponseService(uowFactory unitofwork.RepositoryFactory) IResponseService {
	return &responseService{uowFactory: uowFactory}
}

// SaveResponse appends one answered question for the user. Duplicate answers
// to the same question are allowed; every call inserts a new row.
func (s *responseService) SaveResponse(ctx context.Context, userEmail string, req *dto.SaveResponseRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	questionId := req.QuestionId
	record := &entity.ResponseRecord{
		UserEmail:    userEmail,
		QuestionId:   &questionId,
		QuestionText: req.QuestionText,
		Response:     req.Response,
		CreatedAt:    time.Now(),
	}
	return uow.ResponseRecordRepository().Create(ctx, record)
}
