package mapper

import (
	"medisos-be/internal/entity"
	"medisos-be/internal/model"
)

type ReportMapper struct{}

func NewReportMapper() *ReportMapper {
	return &ReportMapper{}
}

func (m *ReportMapper) ToEntity(r *model.Report) *entity.Report {
	if r == nil {
		return nil
	}
	return &entity.Report{
		Id:             r.Id,
		UserId:         r.UserId,
		ChatSessionId:  r.ChatSessionId,
		PsychologistId: r.PsychologistId,
		Summary:        r.Summary,
		RiskScore:      r.RiskScore,
		Urgency:        entity.ReportUrgency(r.Urgency),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func (m *ReportMapper) ToModel(r *entity.Report) *model.Report {
	if r == nil {
		return nil
	}
	return &model.Report{
		Id:             r.Id,
		UserId:         r.UserId,
		ChatSessionId:  r.ChatSessionId,
		PsychologistId: r.PsychologistId,
		Summary:        r.Summary,
		RiskScore:      r.RiskScore,
		Urgency:        string(r.Urgency),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func (m *ReportMapper) PsychologistToEntity(p *model.Psychologist) *entity.Psychologist {
	if p == nil {
		return nil
	}
	return &entity.Psychologist{
		Id:        p.Id,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}

func (m *ReportMapper) PsychologistToModel(p *entity.Psychologist) *model.Psychologist {
	if p == nil {
		return nil
	}
	return &model.Psychologist{
		Id:        p.Id,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}

func (m *ReportMapper) PsychologistsToEntities(ps []*model.Psychologist) []*entity.Psychologist {
	entities := make([]*entity.Psychologist, len(ps))
	for i, p := range ps {
		entities[i] = m.PsychologistToEntity(p)
	}
	return entities
}
