package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/nhanstudio/portfolio-api/internal/core/domain"
	"github.com/nhanstudio/portfolio-api/internal/core/ports"
)

// AuthService implements registration, login and account self-service.
type AuthService struct {
	repo     ports.UserRepository
	tokens   ports.TokenService
	throttle ports.LoginThrottle
	logger   zerolog.Logger

	hashCost  int
	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService wires the credential store. A nil throttle disables login
// throttling.
func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, throttle ports.LoginThrottle, logger zerolog.Logger) *AuthService {
	if throttle == nil {
		throttle = noopThrottle{}
	}
	return &AuthService{
		repo:     repo,
		tokens:   tokens,
		throttle: throttle,
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	email := domain.NormalizeEmail(in.Email)

	if err := firstErr(
		domain.ValidateName("firstName", firstName),
		domain.ValidateName("lastName", lastName),
		domain.ValidateEmail(email),
		domain.ValidatePassword("password", in.Password),
	); err != nil {
		return nil, err
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return s.issue(created)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Authenticate checks a password against the stored hash. An unknown email
// and a wrong password are indistinguishable to the caller, both in the
// returned error and in the work performed.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	key := domain.NormalizeEmail(email)
	if key == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	blocked, err := s.throttle.Blocked(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login throttle check failed, continuing")
	} else if blocked {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByEmail(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("authenticate: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		s.recordFailure(ctx, key)
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, key)
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.throttle.Reset(ctx, key); err != nil {
		s.logger.Warn().Err(err).Msg("failed to reset login throttle")
	}
	return user, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile applies the present profile fields. Credentials are never
// touched here.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in ports.ProfileInput) (*domain.User, error) {
	var upd ports.ProfileUpdate
	if in.FirstName != nil {
		v := strings.TrimSpace(*in.FirstName)
		if err := domain.ValidateName("firstName", v); err != nil {
			return nil, err
		}
		upd.FirstName = &v
	}
	if in.LastName != nil {
		v := strings.TrimSpace(*in.LastName)
		if err := domain.ValidateName("lastName", v); err != nil {
			return nil, err
		}
		upd.LastName = &v
	}
	if in.Avatar != nil {
		v := strings.TrimSpace(*in.Avatar)
		upd.Avatar = &v
	}

	if upd.FirstName == nil && upd.LastName == nil && upd.Avatar == nil {
		return s.repo.FindByID(ctx, userID)
	}
	return s.repo.UpdateProfile(ctx, userID, upd)
}

// ChangePassword replaces the stored hash after verifying the current
// password. It is the only path that rewrites a hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if err := domain.ValidatePassword("newPassword", next); err != nil {
		return err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hash(next)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

// EnsureSeedUser creates the superuser account unless the email is already
// registered. created reports whether a new account was written.
func (s *AuthService) EnsureSeedUser(ctx context.Context, in ports.SeedInput) (user *domain.User, created bool, err error) {
	email := domain.NormalizeEmail(in.Email)
	if err := domain.ValidateEmail(email); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("seed user lookup: %w", err)
	}

	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	if err := firstErr(
		domain.ValidateName("firstName", firstName),
		domain.ValidateName("lastName", lastName),
		domain.ValidatePassword("password", in.Password),
	); err != nil {
		return nil, false, err
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, false, err
	}

	now := time.Now().UTC()
	user, err = s.repo.Create(ctx, &domain.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleMe,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *AuthService) issue(user *domain.User) (*ports.AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *AuthService) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// dummy returns a hash of the same cost as real ones so that lookups for
// unknown accounts still pay for one comparison.
func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("portfolio-api-placeholder"), s.hashCost)
		if err != nil {
			h = []byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z/0Vbs8PlKS8g7F6DPRWz4Ki")
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

func (s *AuthService) recordFailure(ctx context.Context, key string) {
	if err := s.throttle.RecordFailure(ctx, key); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record login failure")
	}
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

type noopThrottle struct{}

func (noopThrottle) Blocked(context.Context, string) (bool, error) { return false, nil }
func (noopThrottle) RecordFailure(context.Context, string) error   { return nil }
func (noopThrottle) Reset(context.Context, string) error           { return nil }
