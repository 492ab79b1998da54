package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"medisos-be/internal/dto"
	"medisos-be/internal/entity"
	"medisos-be/internal/pkg/logger"
	"medisos-be/internal/repository/specification"
	"medisos-be/internal/repository/unitofwork"
	"medisos-be/pkg/llm"
	"medisos-be/pkg/store"
)

// AnonymousUser identifies relay calls that arrive without a session. The
// endpoint deliberately accepts them; their turns are stored under this
// sentinel email.
const AnonymousUser = "anonymous"

// FallbackReply is returned whenever the upstream model fails; the turn is
// persisted regardless.
const FallbackReply = "I'm here to listen."

// EmergencyReply answers any message that trips the urgent-keyword screen.
// Those messages never reach the upstream model.
const EmergencyReply = "I'm very sorry you're feeling this way. If you are in " +
	"immediate danger, please contact local emergency services now."

const historyWindow = 5

const promptPreamble = "You are an empathetic mental health assistant for MEDISOS. " +
	"Based on the conversation history below, either ask the next assessment question " +
	"or give brief supportive advice. Keep replies short and warm."

// urgentKeywords trigger the crisis path: the upstream call is skipped,
// EmergencyReply is returned, and the stored chat message carries the maximum
// risk score so a psychologist reviewing the transcript sees it first.
var urgentKeywords = []string{
	"suicide",
	"kill myself",
	"end my life",
	"self-harm",
	"hurt myself",
}

var ErrSessionNotFound = errors.New("chat session not found")

type IChatbotService interface {
	Relay(ctx context.Context, session *store.Session, req *dto.ChatRequest) (*dto.ChatReply, error)
	SessionMessages(ctx context.Context, userEmail string, chatSessionId uint) ([]*dto.ChatMessageResponse, error)
}

type chatbotService struct {
	uowFactory unitofwork.RepositoryFactory
	provider   llm.LLMProvider
	log        logger.ILogger
	maxTokens  int
	timeout    time.Duration
}

func NewChatbotService(uowFactory unitofwork.RepositoryFactory, provider llm.LLMProvider, log logger.ILogger, maxTokens int, timeout time.Duration) IChatbotService {
	return &chatbotService{
		uowFactory: uowFactory,
		provider:   provider,
		log:        log,
		maxTokens:  maxTokens,
		timeout:    timeout,
	}
}

// historyPair is the shape the prompt serializes prior turns into.
type historyPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Relay forwards one user message to the model and persists the turn. It
// never fails on upstream errors: those are logged, classified, and replaced
// with FallbackReply so the caller always receives a non-empty reply. Messages
// that trip the urgent-keyword screen are answered with EmergencyReply without
// ever calling the model.
func (s *chatbotService) Relay(ctx context.Context, session *store.Session, req *dto.ChatRequest) (*dto.ChatReply, error) {
	userEmail := AnonymousUser
	if session != nil {
		userEmail = session.UserEmail
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if riskScore(req.Message) > 0 {
		s.log.Warn("chatbot", "urgent keyword detected, answering with emergency reply", map[string]interface{}{
			"user": userEmail,
		})
		return s.persistTurn(ctx, uow, userEmail, req.Message, EmergencyReply)
	}

	history, err := s.loadHistory(ctx, uow, userEmail)
	if err != nil {
		s.log.Warn("chatbot", "failed to load history, proceeding without it", map[string]interface{}{
			"user":  userEmail,
			"error": err.Error(),
		})
		history = nil
	}

	prompt := s.buildPrompt(history, req.Message)

	reply := s.complete(ctx, userEmail, prompt)

	return s.persistTurn(ctx, uow, userEmail, req.Message, reply)
}

// persistTurn stores the turn even when the reply is the fallback or the
// emergency text.
func (s *chatbotService) persistTurn(ctx context.Context, uow unitofwork.UnitOfWork, userEmail, message, reply string) (*dto.ChatReply, error) {
	record := &entity.ResponseRecord{
		UserEmail:    userEmail,
		QuestionText: message,
		Response:     reply,
		CreatedAt:    time.Now(),
	}
	if err := uow.ResponseRecordRepository().Create(ctx, record); err != nil {
		return nil, err
	}

	s.logChatTurn(ctx, uow, userEmail, message, reply)

	return &dto.ChatReply{Reply: reply}, nil
}

func (s *chatbotService) loadHistory(ctx context.Context, uow unitofwork.UnitOfWork, userEmail string) ([]historyPair, error) {
	records, err := uow.ResponseRecordRepository().FindAll(ctx,
		specification.ByUserEmail{Email: userEmail},
		specification.OrderBy{Field: "id", Desc: true},
		specification.Limit{N: historyWindow},
	)
	if err != nil {
		return nil, err
	}

	// Newest-first from the query; the prompt reads oldest-first.
	pairs := make([]historyPair, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		pairs = append(pairs, historyPair{
			Question: records[i].QuestionText,
			Answer:   records[i].Response,
		})
	}
	return pairs, nil
}

func (s *chatbotService) buildPrompt(history []historyPair, message string) string {
	if history == nil {
		history = []historyPair{}
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		historyJSON = []byte("[]")
	}

	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n\nConversation history:\n")
	b.Write(historyJSON)
	b.WriteString("\n\nUser: ")
	b.WriteString(message)
	return b.String()
}

func (s *chatbotService) complete(ctx context.Context, userEmail, prompt string) string {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	reply, err := s.provider.Generate(callCtx, prompt, llm.WithMaxTokens(s.maxTokens))
	outcome := llm.Classify(err)

	if outcome != llm.OutcomeSuccess {
		s.log.Warn("chatbot", "upstream completion failed, using fallback", map[string]interface{}{
			"user":     userEmail,
			"outcome":  string(outcome),
			"duration": time.Since(start).String(),
			"error":    err.Error(),
		})
		return FallbackReply
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return FallbackReply
	}

	s.log.Info("chatbot", "completion ok", map[string]interface{}{
		"user":     userEmail,
		"duration": time.Since(start).String(),
	})
	return reply
}

// logChatTurn mirrors the turn into the chat session transcript. Failures
// here never surface to the caller; the relay already persisted the turn.
func (s *chatbotService) logChatTurn(ctx context.Context, uow unitofwork.UnitOfWork, userEmail, message, reply string) {
	var userId *uint
	if userEmail != AnonymousUser {
		user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: userEmail})
		if err == nil && user != nil {
			userId = &user.Id
		}
	}

	chatSession, err := s.activeSession(ctx, uow, userId)
	if err != nil {
		s.log.Warn("chatbot", "failed to resolve chat session", map[string]interface{}{"error": err.Error()})
		return
	}

	risk := riskScore(message)
	userMsg := &entity.ChatMessage{
		ChatSessionId: chatSession.Id,
		Sender:        entity.SenderUser,
		Text:          message,
		CreatedAt:     time.Now(),
	}
	if risk > 0 {
		userMsg.RiskScore = &risk
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMsg); err != nil {
		s.log.Warn("chatbot", "failed to store user message", map[string]interface{}{"error": err.Error()})
		return
	}

	botMsg := &entity.ChatMessage{
		ChatSessionId: chatSession.Id,
		Sender:        entity.SenderAssistant,
		Text:          reply,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, botMsg); err != nil {
		s.log.Warn("chatbot", "failed to store assistant message", map[string]interface{}{"error": err.Error()})
	}
}

func (s *chatbotService) activeSession(ctx context.Context, uow unitofwork.UnitOfWork, userId *uint) (*entity.ChatSession, error) {
	specs := []specification.Specification{
		specification.ByStatus{Status: string(entity.ChatSessionActive)},
		specification.OrderBy{Field: "id", Desc: true},
	}
	if userId != nil {
		specs = append(specs, specification.ByUserId{UserId: *userId})
	} else {
		// Anonymous callers share the newest active unowned session rather
		// than spawning a fresh row per message.
		specs = append(specs, specification.ByAnonymousUser{})
	}

	existing, err := uow.ChatSessionRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	chatSession := &entity.ChatSession{
		UserId:    userId,
		Status:    entity.ChatSessionActive,
		StartedAt: time.Now(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, chatSession); err != nil {
		return nil, err
	}
	return chatSession, nil
}

// SessionMessages lists a transcript, but only to its owner.
func (s *chatbotService) SessionMessages(ctx context.Context, userEmail string, chatSessionId uint) ([]*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: userEmail})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}

	chatSession, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: chatSessionId})
	if err != nil {
		return nil, err
	}
	// Non-owned sessions answer identically to missing ones.
	if chatSession == nil || chatSession.UserId == nil || *chatSession.UserId != user.Id {
		return nil, ErrSessionNotFound
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionId{SessionId: chatSessionId},
		specification.OrderBy{Field: "id", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, &dto.ChatMessageResponse{
			Id:        m.Id,
			Sender:    m.Sender,
			Content:   m.Text,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// riskScore screens a message for urgent phrasing. Matches score 100 so they
// surface immediately in psychologist review.
func riskScore(message string) int {
	lowered := strings.ToLower(message)
	for _, kw := range urgentKeywords {
		if strings.Contains(lowered, kw) {
			return 100
		}
	}
	return 0
}
