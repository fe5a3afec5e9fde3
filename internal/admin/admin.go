// Package admin signs the console in and out of the portfolio API.
// Tokens are issued by the API; this package only stores and presents them.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/portfolio-admin/internal/records"
	"github.com/JaimeStill/portfolio-admin/pkg/client"
	"github.com/JaimeStill/portfolio-admin/pkg/session"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrNoToken            = errors.New("login response carried no token")
	ErrNotSignedIn        = errors.New("not signed in")
)

// Profile is the signed-in administrator.
type Profile struct {
	ID       records.ID `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email,omitempty"`
}

// Credentials are posted to the login endpoint.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// System manages the admin session.
type System struct {
	client  *client.Client
	session session.Store
	logger  *slog.Logger
}

// New creates the admin System. The client should share store.
func New(c *client.Client, store session.Store, logger *slog.Logger) *System {
	return &System{
		client:  c,
		session: store,
		logger:  logger.With("system", "admin"),
	}
}

// Login exchanges credentials for a token and persists it.
func (s *System) Login(ctx context.Context, creds Credentials) (*Profile, error) {
	if creds.Username == "" || creds.Password == "" {
		return nil, ErrMissingCredentials
	}

	p, err := s.client.Do(ctx, http.MethodPost, client.AdminLogin, creds)
	if err != nil {
		return nil, err
	}

	token := p.Token
	if token == "" {
		var nested struct {
			Token string `json:"token"`
		}
		if err := p.Decode(&nested); err != nil {
			return nil, err
		}
		token = nested.Token
	}
	if token == "" {
		return nil, ErrNoToken
	}

	if err := s.session.SetToken(ctx, token); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	var profile Profile
	if err := p.DecodeAdmin(&profile); err != nil {
		s.logger.Warn("login profile unreadable", "error", err)
	}

	s.logger.Info("signed in", "username", creds.Username)
	return &profile, nil
}

// Me returns the profile of the stored session. A session the server
// rejects is cleared.
func (s *System) Me(ctx context.Context) (*Profile, error) {
	token, err := s.session.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNotSignedIn
	}

	p, err := s.client.Do(ctx, http.MethodGet, client.AdminMe, nil)
	if err != nil {
		if client.Unauthorized(err) {
			if cerr := s.session.Clear(ctx); cerr != nil {
				s.logger.Warn("clear rejected session failed", "error", cerr)
			}
		}
		return nil, err
	}

	var profile Profile
	if err := p.DecodeAdmin(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Logout forgets the stored token.
func (s *System) Logout(ctx context.Context) error {
	return s.session.Clear(ctx)
}
