package service

import (
	"context"
	"errors"
	"sort"

	"medisos-be/internal/entity"
	"medisos-be/internal/repository/contract"
	"medisos-be/internal/repository/specification"
	"medisos-be/internal/repository/unitofwork"
	"medisos-be/pkg/llm"
	"medisos-be/pkg/store"
)

var errStorage = errors.New("storage failure")

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// In-memory repositories backing the service tests. Specifications are
// interpreted by type switch instead of SQL.

type querySpec struct {
	byEmail     string
	byUserEmail string
	byId        *uint
	byUserId    *uint
	bySessionId *uint
	byStatus    string
	byCategory  string
	anonymous   bool
	orderDesc   bool
	limit       int
}

func parseSpecs(specs []specification.Specification) querySpec {
	q := querySpec{}
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByEmail:
			q.byEmail = v.Email
		case specification.ByUserEmail:
			q.byUserEmail = v.Email
		case specification.ByID:
			id := v.ID
			q.byId = &id
		case specification.ByUserId:
			id := v.UserId
			q.byUserId = &id
		case specification.ByChatSessionId:
			id := v.SessionId
			q.bySessionId = &id
		case specification.ByStatus:
			q.byStatus = v.Status
		case specification.ByAnonymousUser:
			q.anonymous = true
		case specification.ByCategory:
			q.byCategory = v.Category
		case specification.OrderBy:
			q.orderDesc = v.Desc
		case specification.Limit:
			q.limit = v.N
		}
	}
	return q
}

type fakeUserRepo struct {
	users  []*entity.User
	nextId uint
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.nextId++
	user.Id = r.nextId
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	for i, u := range r.users {
		if u.Id == user.Id {
			r.users[i] = user
		}
	}
	return nil
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	q := parseSpecs(specs)
	for _, u := range r.users {
		if q.byEmail != "" && u.Email != q.byEmail {
			continue
		}
		if q.byId != nil && u.Id != *q.byId {
			continue
		}
		return u, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.User, error) {
	return r.users, nil
}

func (r *fakeUserRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) AssignPsychologist(_ context.Context, userId, psychologistId uint) error {
	for _, u := range r.users {
		if u.Id == userId {
			id := psychologistId
			u.PsychologistId = &id
		}
	}
	return nil
}

func (r *fakeUserRepo) CreateRefreshToken(_ context.Context, _ *entity.UserRefreshToken) error {
	return nil
}

func (r *fakeUserRepo) FindRefreshToken(_ context.Context, _ ...specification.Specification) (*entity.UserRefreshToken, error) {
	return nil, nil
}

func (r *fakeUserRepo) RevokeRefreshToken(_ context.Context, _ string) error {
	return nil
}

type fakeQuestionRepo struct {
	questions []*entity.Question
	nextId    uint
}

func (r *fakeQuestionRepo) Create(_ context.Context, q *entity.Question) error {
	r.nextId++
	q.Id = r.nextId
	r.questions = append(r.questions, q)
	return nil
}

func (r *fakeQuestionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Question, error) {
	q := parseSpecs(specs)
	for _, question := range r.questions {
		if q.byId != nil && question.Id != *q.byId {
			continue
		}
		return question, nil
	}
	return nil, nil
}

func (r *fakeQuestionRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Question, error) {
	q := parseSpecs(specs)
	out := make([]*entity.Question, 0, len(r.questions))
	for _, question := range r.questions {
		if q.byCategory != "" && question.Category != q.byCategory {
			continue
		}
		out = append(out, question)
	}
	sort.Slice(out, func(i, j int) bool {
		if q.orderDesc {
			return out[i].Id > out[j].Id
		}
		return out[i].Id < out[j].Id
	})
	return out, nil
}

func (r *fakeQuestionRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.questions)), nil
}

type fakeResponseRecordRepo struct {
	records []*entity.ResponseRecord
	nextId  uint
	failing bool
}

func (r *fakeResponseRecordRepo) Create(_ context.Context, record *entity.ResponseRecord) error {
	if r.failing {
		return errStorage
	}
	r.nextId++
	record.Id = r.nextId
	r.records = append(r.records, record)
	return nil
}

func (r *fakeResponseRecordRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ResponseRecord, error) {
	q := parseSpecs(specs)
	out := make([]*entity.ResponseRecord, 0, len(r.records))
	for _, rec := range r.records {
		if q.byUserEmail != "" && rec.UserEmail != q.byUserEmail {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if q.orderDesc {
			return out[i].Id > out[j].Id
		}
		return out[i].Id < out[j].Id
	})
	if q.limit > 0 && len(out) > q.limit {
		out = out[:q.limit]
	}
	return out, nil
}

func (r *fakeResponseRecordRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.records)), nil
}

type fakeChatSessionRepo struct {
	sessions []*entity.ChatSession
	nextId   uint
}

func (r *fakeChatSessionRepo) Create(_ context.Context, s *entity.ChatSession) error {
	r.nextId++
	s.Id = r.nextId
	r.sessions = append(r.sessions, s)
	return nil
}

func (r *fakeChatSessionRepo) Update(_ context.Context, s *entity.ChatSession) error {
	for i, existing := range r.sessions {
		if existing.Id == s.Id {
			r.sessions[i] = s
		}
	}
	return nil
}

func (r *fakeChatSessionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	q := parseSpecs(specs)
	var match *entity.ChatSession
	for _, s := range r.sessions {
		if q.byId != nil && s.Id != *q.byId {
			continue
		}
		if q.byUserId != nil && (s.UserId == nil || *s.UserId != *q.byUserId) {
			continue
		}
		if q.anonymous && s.UserId != nil {
			continue
		}
		if q.byStatus != "" && string(s.Status) != q.byStatus {
			continue
		}
		if match == nil || s.Id > match.Id {
			match = s
		}
	}
	return match, nil
}

type fakeChatMessageRepo struct {
	messages []*entity.ChatMessage
	nextId   uint
}

func (r *fakeChatMessageRepo) Create(_ context.Context, m *entity.ChatMessage) error {
	r.nextId++
	m.Id = r.nextId
	r.messages = append(r.messages, m)
	return nil
}

func (r *fakeChatMessageRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	q := parseSpecs(specs)
	out := make([]*entity.ChatMessage, 0, len(r.messages))
	for _, m := range r.messages {
		if q.bySessionId != nil && m.ChatSessionId != *q.bySessionId {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeChatMessageRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.messages)), nil
}

type fakeReportRepo struct {
	reports []*entity.Report
	nextId  uint
}

func (r *fakeReportRepo) Create(_ context.Context, report *entity.Report) error {
	r.nextId++
	report.Id = r.nextId
	r.reports = append(r.reports, report)
	return nil
}

func (r *fakeReportRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Report, error) {
	q := parseSpecs(specs)
	for _, rep := range r.reports {
		if q.byId != nil && rep.Id != *q.byId {
			continue
		}
		return rep, nil
	}
	return nil, nil
}

func (r *fakeReportRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Report, error) {
	return r.reports, nil
}

type fakePsychologistRepo struct {
	psychs []*entity.Psychologist
	nextId uint
}

func (r *fakePsychologistRepo) Create(_ context.Context, p *entity.Psychologist) error {
	r.nextId++
	p.Id = r.nextId
	r.psychs = append(r.psychs, p)
	return nil
}

func (r *fakePsychologistRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Psychologist, error) {
	q := parseSpecs(specs)
	for _, p := range r.psychs {
		if q.byId != nil && p.Id != *q.byId {
			continue
		}
		return p, nil
	}
	return nil, nil
}

func (r *fakePsychologistRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Psychologist, error) {
	return r.psychs, nil
}

// fakeUow wires the fakes behind the UnitOfWork contracts.
type fakeUow struct {
	users     *fakeUserRepo
	questions *fakeQuestionRepo
	records   *fakeResponseRecordRepo
	chats     *fakeChatSessionRepo
	messages  *fakeChatMessageRepo
	reports   *fakeReportRepo
	psychs    *fakePsychologistRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		users:     &fakeUserRepo{},
		questions: &fakeQuestionRepo{},
		records:   &fakeResponseRecordRepo{},
		chats:     &fakeChatSessionRepo{},
		messages:  &fakeChatMessageRepo{},
		reports:   &fakeReportRepo{},
		psychs:    &fakePsychologistRepo{},
	}
}

func (u *fakeUow) Begin(_ context.Context) error { return nil }
func (u *fakeUow) Commit() error                 { return nil }
func (u *fakeUow) Rollback() error               { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository                     { return u.users }
func (u *fakeUow) QuestionRepository() contract.QuestionRepository             { return u.questions }
func (u *fakeUow) ResponseRecordRepository() contract.ResponseRecordRepository { return u.records }
func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository       { return u.chats }
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository       { return u.messages }
func (u *fakeUow) ReportRepository() contract.ReportRepository                 { return u.reports }
func (u *fakeUow) PsychologistRepository() contract.PsychologistRepository     { return u.psychs }

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// fakeSessionStore keeps sessions in a plain map.
type fakeSessionStore struct {
	sessions map[string]*store.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*store.Session{}}
}

func (s *fakeSessionStore) Save(_ context.Context, session *store.Session) error {
	s.sessions[session.Token] = session
	return nil
}

func (s *fakeSessionStore) Get(_ context.Context, token string) (*store.Session, bool) {
	session, ok := s.sessions[token]
	return session, ok
}

func (s *fakeSessionStore) Delete(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

// fakeLLM records prompts and returns a scripted reply or error.
type fakeLLM struct {
	reply   string
	err     error
	prompts []string
}

func (p *fakeLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return p.reply, p.err
}

func (p *fakeLLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	p.prompts = append(p.prompts, prompt)
	return p.reply, p.err
}
