package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/fieldlens-cli/internal/core/domain"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fieldlens-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fieldlens-cli/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// KeyAuthSession stores the dashboard session token between runs.
//
//nolint:gosec // G101: config key name, not a credential.
const KeyAuthSession = "auth.session"

// AuthService manages the dashboard session.
type AuthService struct {
	api         driven.JobAPI
	configStore driven.ConfigStore
}

// NewAuthService creates a new auth service.
func NewAuthService(api driven.JobAPI, configStore driven.ConfigStore) *AuthService {
	return &AuthService{api: api, configStore: configStore}
}

// Session returns the stored session token, or "".
func (s *AuthService) Session() string {
	return s.configStore.GetString(KeyAuthSession)
}

// Login authenticates and stores the session token.
func (s *AuthService) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	session, err := s.api.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if session != "" {
		if err := s.configStore.Set(KeyAuthSession, session); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}
	logger.Info("Logged in as %s", username)
	return nil
}

// Logout ends the session on the backend and forgets it locally. A
// session the backend no longer knows is still forgotten.
func (s *AuthService) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)
	if uerr := s.configStore.Unset(KeyAuthSession); uerr != nil {
		return fmt.Errorf("clear session: %w", uerr)
	}
	if err != nil && !errors.Is(err, domain.ErrUnauthorized) {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// WhoAmI returns the current user.
func (s *AuthService) WhoAmI(ctx context.Context) (*domain.User, error) {
	u, err := s.api.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return u, nil
}
