package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"rapidreads/internal/apperrors"
	"rapidreads/internal/models"
	"rapidreads/internal/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const lastLoginTimeout = 5 * time.Second

// RegisterInput is the validated registration payload.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	Token string
	User  models.PublicUser
}

// AuthService handles business logic for registration and login.
type AuthService struct {
	userRepo   repositories.UserRepository
	tokens     *TokenService
	bcryptCost int
	log        *zap.Logger
	now        func() time.Time

	// tracks in-flight last-login updates
	wg sync.WaitGroup
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, tokens *TokenService, bcryptCost int, log *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		log:        log,
		now:        time.Now,
	}
}

// Register creates a user account and returns a token for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, apperrors.ErrDuplicateEmail
	case err != nil && !errors.Is(err, repositories.ErrNotFound):
		return nil, apperrors.Internal("Registration failed", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.Internal("Registration failed", fmt.Errorf("failed to hash password: %w", err))
	}

	now := s.now()
	user := &models.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration may win the unique index.
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, apperrors.Internal("Registration failed", err)
	}

	token, err := s.tokens.Issue(user.Identity())
	if err != nil {
		return nil, apperrors.Internal("Registration failed", err)
	}

	s.log.Info("user registered", zap.String("user_id", user.ID))
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Login checks the credentials and returns a token. Unknown email and wrong
// password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Internal("Login failed", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Identity())
	if err != nil {
		return nil, apperrors.Internal("Login failed", err)
	}

	s.stampLastLogin(user.ID)
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// stampLastLogin records the login time in the background. Failures are
// logged and never reach the client.
func (s *AuthService) stampLastLogin(userID string) {
	at := s.now()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), lastLoginTimeout)
		defer cancel()
		if err := s.userRepo.UpdateLastLogin(ctx, userID, at); err != nil {
			s.log.Warn("failed to update last login", zap.String("user_id", userID), zap.Error(err))
		}
	}()
}

// Wait blocks until every pending last-login update has finished.
func (s *AuthService) Wait() {
	s.wg.Wait()
}

func normalizeEmail(email string) string {
	return strings.ToLower(email)
}
