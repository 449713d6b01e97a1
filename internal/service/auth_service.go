package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/storefront-labs/storefront/internal/auth"
	"github.com/storefront-labs/storefront/internal/config"
	"github.com/storefront-labs/storefront/pkg/util"
)

// TokenStore persists the bearer token of a session.
type TokenStore interface {
	Set(ctx context.Context, sessionID, token string) error
	Clear(ctx context.Context, sessionID string) error
}

// LoginInput is the login form.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Email           string `json:"email" validate:"required,email"`
	Username        string `json:"username" validate:"required,min=3"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	AcceptTerms     bool   `json:"accept_terms" validate:"required"`
}

// LoginResult describes a freshly issued session token.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Policy    auth.Policy
	Redirect  string
}

// AuthService coordinates the mocked login, registration and logout flows.
type AuthService struct {
	accounts *auth.Directory
	tokenMgr *auth.TokenManager
	tokens   TokenStore
	logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, tokens TokenStore, logger *zap.Logger) (*AuthService, error) {
	accounts, err := auth.NewDirectory(cfg.Auth.DemoAccounts, cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		accounts: accounts,
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		tokens:   tokens,
		logger:   logger,
	}, nil
}

// Login signs a session in. Demo accounts must present their password; any
// other username is let in as a plain buyer.
func (s *AuthService) Login(ctx context.Context, sessionID string, in LoginInput) (*LoginResult, error) {
	if err := util.ValidateStruct(in); err != nil {
		return nil, err
	}

	account, known, err := s.accounts.Authenticate(in.Username, in.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.logger.Info("demo login rejected", zap.String("username", in.Username))
		return nil, util.NewUnauthorized("invalid credentials")
	} else if err != nil {
		return nil, err
	}

	roles := []string{auth.RoleUser}
	if known {
		roles = account.Roles
	}
	return s.issue(ctx, sessionID, in.Username, in.Username, roles)
}

// Register validates the form and signs the new user in as a buyer.
func (s *AuthService) Register(ctx context.Context, sessionID string, in RegisterInput) (*LoginResult, error) {
	if err := util.ValidateStruct(in); err != nil {
		return nil, err
	}
	if s.accounts.Has(in.Username) {
		return nil, util.NewConflict("username already taken", map[string]any{"username": in.Username})
	}
	result, err := s.issue(ctx, sessionID, in.Email, in.Username, []string{auth.RoleUser})
	if err != nil {
		return nil, err
	}
	result.Redirect = auth.RootPath
	return result, nil
}

// Logout forgets the session token.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.tokens.Clear(ctx, sessionID)
}

// BecomeSeller records a buyer's request for seller status. Applications are
// acknowledged and logged only.
func (s *AuthService) BecomeSeller(_ context.Context, session *auth.Session) (string, error) {
	if !session.HasToken() {
		return "", util.NewUnauthorized(loginRequired)
	}
	if !session.Policy.IsBuyer() {
		return "", util.NewConflict("only buyers can apply for seller status", map[string]any{
			"access": session.Policy.Access().String(),
		})
	}
	s.logger.Info("seller application received",
		zap.String("session_id", session.ID),
		zap.String("subject", session.Claims.Subject),
	)
	return "Application sent. A manager will contact you within 24 hours.", nil
}

func (s *AuthService) issue(ctx context.Context, sessionID, subject, name string, roles []string) (*LoginResult, error) {
	token, exp, err := s.tokenMgr.GenerateToken(subject, name, roles)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Set(ctx, sessionID, token); err != nil {
		return nil, err
	}
	policy := auth.PolicyForToken(token)
	s.logger.Info("session signed in",
		zap.String("session_id", sessionID),
		zap.String("access", policy.Access().String()),
	)
	return &LoginResult{
		Token:     token,
		ExpiresAt: exp,
		Policy:    policy,
		Redirect:  auth.LandingPath(policy),
	}, nil
}
