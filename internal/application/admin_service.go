package application

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/nordstad/booking-backend/internal/auth"
	"github.com/nordstad/booking-backend/internal/domain"
	"github.com/nordstad/booking-backend/internal/domain/admin"
)

// AdminService handles back-office account registration and login.
type AdminService struct {
	repo   admin.Repository
	jwt    *auth.JWTManager
	logger *zap.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(repo admin.Repository, jwt *auth.JWTManager, logger *zap.Logger) *AdminService {
	return &AdminService{repo: repo, jwt: jwt, logger: logger}
}

// Register creates a new admin account with a bcrypt-hashed password.
func (s *AdminService) Register(ctx context.Context, username, password string) (*admin.Admin, error) {
	if len(password) < 8 {
		return nil, domain.NewValidationError("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password")
	}

	a, err := admin.NewAdmin(username, string(hash))
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.logger.Info("admin registered", zap.String("username", a.Username))
	return a, nil
}

// Login verifies credentials and returns a signed JWT. A wrong username and a
// wrong password produce the same error, so the endpoint leaks nothing about
// which accounts exist.
func (s *AdminService) Login(ctx context.Context, username, password string) (string, error) {
	a, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return "", domain.NewForbiddenError("invalid credentials")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return "", domain.NewForbiddenError("invalid credentials")
	}

	token, err := s.jwt.GenerateToken(a.ID, a.Username)
	if err != nil {
		return "", domain.NewInternalError("failed to issue token")
	}
	return token, nil
}
