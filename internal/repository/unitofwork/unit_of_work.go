package unitofwork

import (
	"context"

	"medisos-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	QuestionRepository() contract.QuestionRepository
	ResponseRecordRepository() contract.ResponseRecordRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ReportRepository() contract.ReportRepository
	PsychologistRepository() contract.PsychologistRepository
}
