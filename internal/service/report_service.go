package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"medisos-be/internal/dto"
	"medisos-be/internal/entity"
	"medisos-be/internal/pkg/logger"
	"medisos-be/internal/repository/specification"
	"medisos-be/internal/repository/unitofwork"
	"medisos-be/pkg/events"
	"medisos-be/pkg/llm"
	pktNats "medisos-be/pkg/nats"
)

var ErrNoActiveSession = errors.New("no active assessment session")

const summaryPreamble = "You are a clinical assistant. Summarize the following " +
	"mental health assessment conversation in 3-4 sentences for a reviewing " +
	"psychologist. Note mood, main concerns, and any risk indicators."

type IReportService interface {
	EndSession(ctx context.Context, userEmail string, chatSessionId uint) (*dto.ReportResponse, error)
	ListReports(ctx context.Context, userEmail string) ([]*dto.ReportResponse, error)
}

type reportService struct {
	uowFactory       unitofwork.RepositoryFactory
	provider         llm.LLMProvider
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	log              logger.ILogger
	llmTimeout       time.Duration
}

func NewReportService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.LLMProvider,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	llmTimeout time.Duration,
) IReportService {
	return &reportService{
		uowFactory:       uowFactory,
		provider:         provider,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
		llmTimeout:       llmTimeout,
	}
}

// EndSession closes the named chat session, summarizes its transcript and
// files a report. Only the session's owner may end it; non-owned sessions
// answer identically to missing ones. The report email to the assigned
// psychologist goes out asynchronously via the report topic.
func (s *reportService) EndSession(ctx context.Context, userEmail string, chatSessionId uint) (*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: userEmail})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	chatSession, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: chatSessionId})
	if err != nil {
		return nil, err
	}
	if chatSession == nil || chatSession.UserId == nil || *chatSession.UserId != user.Id {
		return nil, ErrSessionNotFound
	}
	if chatSession.Status != entity.ChatSessionActive {
		return nil, ErrNoActiveSession
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionId{SessionId: chatSession.Id},
		specification.OrderBy{Field: "id", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	risk := 0
	for _, m := range messages {
		if m.RiskScore != nil && *m.RiskScore > risk {
			risk = *m.RiskScore
		}
	}

	summary := s.summarize(ctx, messages)

	report := &entity.Report{
		UserId:         &user.Id,
		ChatSessionId:  &chatSession.Id,
		PsychologistId: user.PsychologistId,
		Summary:        summary,
		RiskScore:      risk,
		Urgency:        urgencyForRisk(risk),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ReportRepository().Create(ctx, report); err != nil {
		return nil, err
	}
	now := time.Now()
	chatSession.Status = entity.ChatSessionEnded
	chatSession.EndedAt = &now
	chatSession.UpdatedAt = now
	if err := uow.ChatSessionRepository().Update(ctx, chatSession); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishReportCreated(ctx, report)

	return &dto.ReportResponse{
		Id:        report.Id,
		UserEmail: user.Email,
		Summary:   report.Summary,
		RiskScore: report.RiskScore,
		Urgency:   string(report.Urgency),
		CreatedAt: report.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *reportService) ListReports(ctx context.Context, userEmail string) ([]*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: userEmail})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	reports, err := uow.ReportRepository().FindAll(ctx,
		specification.ByUserId{UserId: user.Id},
		specification.OrderBy{Field: "id", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, &dto.ReportResponse{
			Id:        r.Id,
			UserEmail: user.Email,
			Summary:   r.Summary,
			RiskScore: r.RiskScore,
			Urgency:   string(r.Urgency),
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func (s *reportService) summarize(ctx context.Context, messages []*entity.ChatMessage) string {
	if len(messages) == 0 {
		return "No conversation recorded for this session."
	}

	var b strings.Builder
	b.WriteString(summaryPreamble)
	b.WriteString("\n\n")
	for _, m := range messages {
		b.WriteString(m.Sender)
		b.WriteString(": ")
		b.WriteString(m.Text)
		b.WriteString("\n")
	}

	callCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	summary, err := s.provider.Generate(callCtx, b.String())
	if outcome := llm.Classify(err); outcome != llm.OutcomeSuccess {
		s.log.Warn("report", "summary generation failed, storing transcript note", map[string]interface{}{
			"outcome": string(outcome),
			"error":   err.Error(),
		})
		return fmt.Sprintf("Automatic summary unavailable. Session had %d messages.", len(messages))
	}
	return strings.TrimSpace(summary)
}

func (s *reportService) publishReportCreated(ctx context.Context, report *entity.Report) {
	payload, err := json.Marshal(dto.ReportCreatedMessage{ReportId: report.Id})
	if err == nil && s.publisherService != nil {
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			s.log.Warn("report", "failed to publish report-created message", map[string]interface{}{"error": err.Error()})
		}
	}

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypeReportCreated,
			Data: map[string]interface{}{
				"report_id":  report.Id,
				"risk_score": report.RiskScore,
				"urgency":    string(report.Urgency),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.log.Warn("report", "failed to publish audit event", map[string]interface{}{"error": err.Error()})
		}
	}
}

func urgencyForRisk(risk int) entity.ReportUrgency {
	switch {
	case risk >= 70:
		return entity.UrgencyHigh
	case risk >= 40:
		return entity.UrgencyModerate
	default:
		return entity.UrgencyNormal
	}
}
