package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"medisos-be/internal/dto"
	"medisos-be/internal/entity"
	"medisos-be/pkg/llm"
	"medisos-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatbotFixture(provider *fakeLLM) (IChatbotService, *fakeUow) {
	uow := newFakeUow()
	svc := NewChatbotService(&fakeUowFactory{uow: uow}, provider, nopLogger{}, 150, 5*time.Second)
	return svc, uow
}

func userSession(email string) *store.Session {
	return &store.Session{Token: "tok", UserEmail: email, FirstName: "Test", LastName: "User"}
}

func TestRelayEmptyHistory(t *testing.T) {
	provider := &fakeLLM{reply: "Hello, how are you feeling today?"}
	svc, _ := newChatbotFixture(provider)

	reply, err := svc.Relay(context.Background(), userSession("a@b.com"), &dto.ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, how are you feeling today?", reply.Reply)

	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "Conversation history:\n[]")
	assert.Contains(t, provider.prompts[0], "User: hi")
}

func TestRelayHistoryWindowIsFiveNewestOldestFirst(t *testing.T) {
	provider := &fakeLLM{reply: "ok"}
	svc, uow := newChatbotFixture(provider)

	for i := 1; i <= 7; i++ {
		uow.records.Create(context.Background(), &entity.ResponseRecord{
			UserEmail:    "a@b.com",
			QuestionText: fmt.Sprintf("q%d", i),
			Response:     fmt.Sprintf("a%d", i),
		})
	}

	_, err := svc.Relay(context.Background(), userSession("a@b.com"), &dto.ChatRequest{Message: "next"})
	require.NoError(t, err)

	prompt := provider.prompts[0]
	assert.NotContains(t, prompt, `"q1"`)
	assert.NotContains(t, prompt, `"q2"`)
	for i := 3; i <= 7; i++ {
		assert.Contains(t, prompt, fmt.Sprintf(`"q%d"`, i))
	}
	// Oldest of the window serialized before the newest.
	assert.Less(t, strings.Index(prompt, `"q3"`), strings.Index(prompt, `"q7"`))
}

func TestRelayFallbackOnUpstreamFailureStillPersists(t *testing.T) {
	provider := &fakeLLM{err: &llm.UpstreamError{StatusCode: 502, Body: "bad gateway"}}
	svc, uow := newChatbotFixture(provider)

	reply, err := svc.Relay(context.Background(), userSession("a@b.com"), &dto.ChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply.Reply)
	assert.NotEmpty(t, reply.Reply)

	require.Len(t, uow.records.records, 1)
	assert.Equal(t, "hello", uow.records.records[0].QuestionText)
	assert.Equal(t, FallbackReply, uow.records.records[0].Response)
}

func TestRelayTimeoutUsesFallback(t *testing.T) {
	provider := &fakeLLM{err: llm.ErrTimeout}
	svc, _ := newChatbotFixture(provider)

	reply, err := svc.Relay(context.Background(), userSession("a@b.com"), &dto.ChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply.Reply)
}

func TestRelayAnonymousWithoutSession(t *testing.T) {
	provider := &fakeLLM{reply: "welcome"}
	svc, uow := newChatbotFixture(provider)

	reply, err := svc.Relay(context.Background(), nil, &dto.ChatRequest{Message: "hi there"})
	require.NoError(t, err)
	assert.Equal(t, "welcome", reply.Reply)

	require.Len(t, uow.records.records, 1)
	assert.Equal(t, AnonymousUser, uow.records.records[0].UserEmail)
}

func TestRelayStorageFailureSurfaces(t *testing.T) {
	provider := &fakeLLM{reply: "ok"}
	svc, uow := newChatbotFixture(provider)
	uow.records.failing = true

	_, err := svc.Relay(context.Background(), userSession("a@b.com"), &dto.ChatRequest{Message: "hi"})
	assert.Error(t, err)
}

func TestRelayUrgentKeywordSkipsUpstream(t *testing.T) {
	provider := &fakeLLM{reply: "this must never be returned"}
	svc, uow := newChatbotFixture(provider)

	uow.users.Create(context.Background(), &entity.User{Email: "a@b.com", FirstName: "A", LastName: "B"})

	reply, err := svc.Relay(context.Background(), userSession("a@b.com"), &dto.ChatRequest{Message: "I want to kill myself"})
	require.NoError(t, err)

	// The crisis message never reaches the model.
	assert.Empty(t, provider.prompts)
	assert.Equal(t, EmergencyReply, reply.Reply)

	require.Len(t, uow.records.records, 1)
	assert.Equal(t, EmergencyReply, uow.records.records[0].Response)
}

func TestRelayUrgentKeywordFlagsRisk(t *testing.T) {
	provider := &fakeLLM{reply: "unused"}
	svc, uow := newChatbotFixture(provider)

	uow.users.Create(context.Background(), &entity.User{Email: "a@b.com", FirstName: "A", LastName: "B"})

	_, err := svc.Relay(context.Background(), userSession("a@b.com"), &dto.ChatRequest{Message: "I want to end my life"})
	require.NoError(t, err)

	require.Len(t, uow.messages.messages, 2)
	userMsg := uow.messages.messages[0]
	require.NotNil(t, userMsg.RiskScore)
	assert.Equal(t, 100, *userMsg.RiskScore)
	assert.Equal(t, entity.SenderUser, userMsg.Sender)

	botMsg := uow.messages.messages[1]
	assert.Equal(t, EmergencyReply, botMsg.Text)
	assert.Nil(t, botMsg.RiskScore)
	assert.Equal(t, entity.SenderAssistant, botMsg.Sender)
}

func TestRelayReusesActiveChatSession(t *testing.T) {
	provider := &fakeLLM{reply: "ok"}
	svc, uow := newChatbotFixture(provider)

	uow.users.Create(context.Background(), &entity.User{Email: "a@b.com"})

	_, err := svc.Relay(context.Background(), userSession("a@b.com"), &dto.ChatRequest{Message: "first"})
	require.NoError(t, err)
	_, err = svc.Relay(context.Background(), userSession("a@b.com"), &dto.ChatRequest{Message: "second"})
	require.NoError(t, err)

	assert.Len(t, uow.chats.sessions, 1)
	assert.Len(t, uow.messages.messages, 4)
}

func TestRelayAnonymousReusesActiveSession(t *testing.T) {
	provider := &fakeLLM{reply: "ok"}
	svc, uow := newChatbotFixture(provider)

	_, err := svc.Relay(context.Background(), nil, &dto.ChatRequest{Message: "first"})
	require.NoError(t, err)
	_, err = svc.Relay(context.Background(), nil, &dto.ChatRequest{Message: "second"})
	require.NoError(t, err)

	require.Len(t, uow.chats.sessions, 1)
	assert.Nil(t, uow.chats.sessions[0].UserId)
	assert.Len(t, uow.messages.messages, 4)
}

func TestRelayAnonymousDoesNotReuseOwnedSession(t *testing.T) {
	provider := &fakeLLM{reply: "ok"}
	svc, uow := newChatbotFixture(provider)
	ctx := context.Background()

	uow.users.Create(ctx, &entity.User{Email: "a@b.com"})
	userId := uow.users.users[0].Id
	uow.chats.Create(ctx, &entity.ChatSession{UserId: &userId, Status: entity.ChatSessionActive})

	_, err := svc.Relay(ctx, nil, &dto.ChatRequest{Message: "hi"})
	require.NoError(t, err)

	require.Len(t, uow.chats.sessions, 2)
	assert.Nil(t, uow.chats.sessions[1].UserId)
}

func TestSessionMessagesOwnershipEnforced(t *testing.T) {
	provider := &fakeLLM{reply: "ok"}
	svc, uow := newChatbotFixture(provider)
	ctx := context.Background()

	uow.users.Create(ctx, &entity.User{Email: "owner@b.com"})
	uow.users.Create(ctx, &entity.User{Email: "other@b.com"})

	_, err := svc.Relay(ctx, userSession("owner@b.com"), &dto.ChatRequest{Message: "hi"})
	require.NoError(t, err)
	sessionId := uow.chats.sessions[0].Id

	messages, err := svc.SessionMessages(ctx, "owner@b.com", sessionId)
	require.NoError(t, err)
	assert.Len(t, messages, 2)

	_, err = svc.SessionMessages(ctx, "other@b.com", sessionId)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.SessionMessages(ctx, "owner@b.com", 999)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRiskScore(t *testing.T) {
	tests := []struct {
		message string
		want    int
	}{
		{"I feel fine today", 0},
		{"sometimes I think about suicide", 100},
		{"I might HURT MYSELF", 100},
		{"just tired", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, riskScore(tt.message), tt.message)
	}
}
