package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"medisos-be/internal/dto"
	"medisos-be/internal/entity"
	"medisos-be/internal/repository/specification"
	"medisos-be/internal/repository/unitofwork"
	"medisos-be/pkg/events"
	pktNats "medisos-be/pkg/nats"
	"medisos-be/pkg/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmailTaken = errors.New("email already registered")

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*store.Session, error)
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*store.Session, *dto.AuthTokens, error)
	Logout(ctx context.Context, sessionToken string) error
	Me(ctx context.Context, userEmail string) (*dto.MeResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	sessions       store.SessionStore
	eventPublisher *pktNats.Publisher
	jwtSecret      string
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, sessions store.SessionStore, eventPublisher *pktNats.Publisher, jwtSecret string) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		sessions:       sessions,
		eventPublisher: eventPublisher,
		jwtSecret:      jwtSecret,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*store.Session, error) {
	if req.Password != req.ConfirmPassword {
		return nil, errors.New("passwords do not match")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Pre-check is not atomic with the insert; the unique index on email is
	// the real guard.
	existing, _ := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		AgeGroup:     req.Age,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	session, err := s.establishSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeUserRegistered, map[string]interface{}{
		"user_id": user.Id,
		"email":   user.Email,
		"time":    time.Now().Format(time.RFC822),
	})

	return session, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*store.Session, *dto.AuthTokens, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Unknown email and wrong password answer identically so the endpoint
	// does not confirm which accounts exist.
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil || user == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.establishSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	claims := jwt.MapClaims{
		"user_id": user.Id,
		"email":   user.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, nil, err
	}

	rawRefreshToken := uuid.New().String()
	hasher := sha256.New()
	hasher.Write([]byte(rawRefreshToken))
	refreshToken := &entity.UserRefreshToken{
		UserId:    user.Id,
		TokenHash: hex.EncodeToString(hasher.Sum(nil)),
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
		IpAddress: ipAddress,
		UserAgent: userAgent,
		CreatedAt: time.Now(),
	}
	if err := uow.UserRepository().CreateRefreshToken(ctx, refreshToken); err != nil {
		return nil, nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	s.publishEvent(ctx, events.TypeUserLogin, map[string]interface{}{
		"user_id": user.Id,
		"device":  userAgent,
		"time":    time.Now().Format(time.RFC822),
	})

	return session, &dto.AuthTokens{AccessToken: signedToken, RefreshToken: rawRefreshToken}, nil
}

func (s *authService) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionToken)
}

func (s *authService) Me(ctx context.Context, userEmail string) (*dto.MeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: userEmail})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	return &dto.MeResponse{
		Id:        user.Id,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		AgeGroup:  user.AgeGroup,
	}, nil
}

func (s *authService) establishSession(ctx context.Context, user *entity.User) (*store.Session, error) {
	session := &store.Session{
		Token:     uuid.New().String(),
		UserEmail: user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *authService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		fmt.Printf("[WARN] failed to publish %s event: %v\n", eventType, err)
	}
}
