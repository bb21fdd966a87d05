// Package services contains application services for the MindCare client.
// This file defines the authentication service: login, registration, logout
// and restoring the persisted session at startup.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mindcare/internal/client/client"
	"github.com/dmitrijs2005/mindcare/internal/client/models"
	"github.com/dmitrijs2005/mindcare/internal/client/session"
	"github.com/dmitrijs2005/mindcare/internal/cryptox"
	"github.com/dmitrijs2005/mindcare/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the API and store the session.
//   - Register: create a student or parent account; the user logs in afterwards.
//   - Logout: end the session locally even when the API cannot be reached.
//   - Restore: load the persisted session. An expired access token is dropped
//     but the refresh token is kept. Storage that cannot be read with the
//     current secret counts as no session.
//   - Current: snapshot of the session.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, req models.RegisterRequest) error
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (session.Session, error)
	Current() session.Session
}

type authService struct {
	api     client.Auth
	session *session.Store
	logger  logging.Logger
}

// NewAuthService constructs an AuthService bound to the auth API and session store.
func NewAuthService(api client.Auth, store *session.Store, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &authService{api: api, session: store, logger: logger}
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", models.ErrInvalidPayload)
	}

	resp, err := a.api.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := a.session.Login(ctx, resp.User, resp.AccessToken, resp.RefreshToken); err != nil {
		return nil, err
	}

	a.logger.Info(ctx, "logged in", "user_id", resp.User.UserID, "role", resp.User.Role)
	user := resp.User
	return &user, nil
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	if err := a.api.Register(ctx, req); err != nil {
		return err
	}
	a.logger.Info(ctx, "registered", "role", req.Role)
	return nil
}

// Logout tells the API to revoke the refresh token, then clears the session.
// A failed API call is logged and does not keep the user logged in.
func (a *authService) Logout(ctx context.Context) error {
	if a.session.Snapshot().IsAuthenticated {
		if err := a.api.Logout(ctx); err != nil {
			a.logger.Warn(ctx, "server logout failed", "error", err)
		}
	}
	if err := a.session.Clear(ctx); err != nil {
		return err
	}
	a.logger.Info(ctx, "logged out")
	return nil
}

func (a *authService) Restore(ctx context.Context) (session.Session, error) {
	err := a.session.Load(ctx)
	if errors.Is(err, cryptox.ErrDecrypt) || errors.Is(err, session.ErrCorrupt) {
		a.logger.Warn(ctx, "discarding unreadable session", "error", err)
		if err := a.session.Clear(ctx); err != nil {
			return session.Session{}, err
		}
		return session.Session{}, nil
	}
	if err != nil {
		return session.Session{}, err
	}
	return a.session.Snapshot(), nil
}

func (a *authService) Current() session.Session {
	return a.session.Snapshot()
}
