// internal/service/auth/auth.go
package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"bookstore-service/internal/domain/user"
	xerrors "bookstore-service/internal/pkg/errors"
	"bookstore-service/internal/pkg/jwt"
	"bookstore-service/internal/pkg/ratelimit"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Repository is the user persistence surface this service needs.
type Repository interface {
	Create(ctx context.Context, u *user.User) error
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id int64) (*user.User, error)
	GetProfile(ctx context.Context, userID int64) (*user.Profile, error)
	UpsertAddress(ctx context.Context, userID int64, addr *user.SaveAddressRequest) error
}

type Service struct {
	repo    Repository
	tokens  *jwt.Manager
	limiter *ratelimit.RateLimiter
	logger  *zap.Logger
}

func NewService(repo Repository, tokens *jwt.Manager, limiter *ratelimit.RateLimiter, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		tokens:  tokens,
		limiter: limiter,
		logger:  logger,
	}
}

// Register creates a local customer account.
func (s *Service) Register(ctx context.Context, req *user.RegisterRequest) (*user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to hash password")
	}

	u := &user.User{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: sql.NullString{String: string(hash), Valid: true},
		Provider:     "local",
		Role:         user.RoleCustomer,
		Status:       user.StatusActive,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, xerrors.ErrDuplicateEntry) {
			return nil, xerrors.Wrap(xerrors.ErrConflict, "email already registered")
		}
		s.logger.Error("failed to register user", zap.String("email", u.Email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", u.ID))
	return u, nil
}

// Login verifies local credentials and issues an access token. Attempts are
// rate limited per (ip, email); social accounts without a password hash are
// rejected the same way as a wrong password.
func (s *Service) Login(ctx context.Context, ip string, req *user.LoginRequest) (*user.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	allowed, remaining, err := s.limiter.CheckLoginAttempt(ctx, ip, email)
	if err != nil {
		s.logger.Warn("login rate limiter unavailable", zap.Error(err))
	} else if !allowed {
		s.logger.Warn("login rate limited",
			zap.String("ip", ip),
			zap.String("email", email),
			zap.Int64("remaining", remaining),
		)
		return nil, xerrors.ErrRateLimited
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.Wrap(xerrors.ErrUnauthorized, "invalid credentials")
	}
	if err != nil {
		return nil, err
	}

	if u.Status != user.StatusActive {
		return nil, xerrors.Wrap(xerrors.ErrForbidden, "account is blocked")
	}

	if u.Provider != "local" || !u.PasswordHash.Valid {
		return nil, xerrors.Wrap(xerrors.ErrUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash.String), []byte(req.Password)); err != nil {
		return nil, xerrors.Wrap(xerrors.ErrUnauthorized, "invalid credentials")
	}

	token, _, err := s.tokens.Generate(u.ID, u.Role)
	if err != nil {
		s.logger.Error("failed to issue token", zap.Int64("user_id", u.ID), zap.Error(err))
		return nil, xerrors.ErrInternal
	}

	if err := s.limiter.ResetLoginAttempts(ctx, ip, email); err != nil {
		s.logger.Warn("failed to reset login attempts", zap.Error(err))
	}

	u.PasswordHash = sql.NullString{}
	return &user.LoginResponse{Token: token, User: u}, nil
}

// Me retrieves the authenticated user without the credential hash.
func (s *Service) Me(ctx context.Context, userID int64) (*user.User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = sql.NullString{}
	return u, nil
}

// Profile retrieves the user joined with their shipping address.
func (s *Service) Profile(ctx context.Context, userID int64) (*user.Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

// SaveAddress stores the user's single shipping address.
func (s *Service) SaveAddress(ctx context.Context, userID int64, req *user.SaveAddressRequest) error {
	return s.repo.UpsertAddress(ctx, userID, req)
}
