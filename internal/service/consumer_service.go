package service

import (
	"context"
	"encoding/json"
	"log"

	"medisos-be/internal/dto"
	"medisos-be/internal/pkg/mailer"
	"medisos-be/internal/repository/specification"
	"medisos-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the report topic and emails each new report to the
// patient's assigned psychologist.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		emailService: emailService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ReportCreatedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal report message: %v", err)
		msg.Ack() // invalid payloads would retry forever
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	report, err := uow.ReportRepository().FindOne(ctx, specification.ByID{ID: payload.ReportId})
	if err != nil {
		log.Printf("[ERROR] Failed to load report %d: %v", payload.ReportId, err)
		msg.Nack()
		return
	}
	if report == nil {
		log.Printf("[WARN] Report %d not found, skipping", payload.ReportId)
		msg.Ack()
		return
	}
	if report.PsychologistId == nil {
		log.Printf("[INFO] Report %d has no assigned psychologist, skipping email", report.Id)
		msg.Ack()
		return
	}

	psych, err := uow.PsychologistRepository().FindOne(ctx, specification.ByID{ID: *report.PsychologistId})
	if err != nil {
		log.Printf("[ERROR] Failed to load psychologist %d: %v", *report.PsychologistId, err)
		msg.Nack()
		return
	}
	if psych == nil {
		log.Printf("[WARN] Psychologist %d not found, skipping email", *report.PsychologistId)
		msg.Ack()
		return
	}

	patientName := "Unknown patient"
	patientEmail := ""
	if report.UserId != nil {
		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: *report.UserId})
		if err == nil && user != nil {
			patientName = user.FullName()
			patientEmail = user.Email
		}
	}

	if err := cs.emailService.SendAssessmentReport(psych.Email, patientName, patientEmail, report.Summary, string(report.Urgency), report.RiskScore); err != nil {
		log.Printf("[ERROR] Failed to email report %d to %s: %v", report.Id, psych.Email, err)
		msg.Nack()
		return
	}

	log.Printf("[INFO] Report %d emailed to %s", report.Id, psych.Email)
	msg.Ack()
}
