package service

import (
	"context"
	"errors"
	"time"

	"medisos-be/internal/dto"
	"medisos-be/internal/entity"
	"medisos-be/internal/repository/specification"
	"medisos-be/internal/repository/unitofwork"
)

type IPsychologistService interface {
	Create(ctx context.Context, req *dto.CreatePsychologistRequest) (*dto.PsychologistResponse, error)
	List(ctx context.Context) ([]*dto.PsychologistResponse, error)
	AssignToUser(ctx context.Context, userId, psychologistId uint) error
}

type psychologistService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPsychologistService(uowFactory unitofwork.RepositoryFactory) IPsychologistService {
	return &psychologistService{uowFactory: uowFactory}
}

func (s *psychologistService) Create(ctx context.Context, req *dto.CreatePsychologistRequest) (*dto.PsychologistResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	psych := &entity.Psychologist{
		Name:      req.Name,
		Email:     req.Email,
		CreatedAt: time.Now(),
	}
	if req.Phone != "" {
		psych.Phone = &req.Phone
	}
	if err := uow.PsychologistRepository().Create(ctx, psych); err != nil {
		return nil, err
	}
	return toPsychologistResponse(psych), nil
}

func (s *psychologistService) List(ctx context.Context) ([]*dto.PsychologistResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	psychs, err := uow.PsychologistRepository().FindAll(ctx, specification.OrderBy{Field: "id", Desc: false})
	if err != nil {
		return nil, err
	}

	out := make([]*dto.PsychologistResponse, 0, len(psychs))
	for _, p := range psychs {
		out = append(out, toPsychologistResponse(p))
	}
	return out, nil
}

func (s *psychologistService) AssignToUser(ctx context.Context, userId, psychologistId uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	psych, err := uow.PsychologistRepository().FindOne(ctx, specification.ByID{ID: psychologistId})
	if err != nil {
		return err
	}
	if psych == nil {
		return errors.New("psychologist not found")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	return uow.UserRepository().AssignPsychologist(ctx, userId, psychologistId)
}

func toPsychologistResponse(p *entity.Psychologist) *dto.PsychologistResponse {
	resp := &dto.PsychologistResponse{
		Id:    p.Id,
		Name:  p.Name,
		Email: p.Email,
	}
	if p.Phone != nil {
		resp.Phone = *p.Phone
	}
	return resp
}
