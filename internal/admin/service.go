// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package admin authenticates the single back-office account.

The account is configured, not stored: a username and a bcrypt hash come
from the environment. A successful login returns an RS256 access token
carrying the admin role, which guards lead review and deck publishing.
*/
package admin

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	"github.com/taibuivan/revenuegear/internal/platform/apperr"
	"github.com/taibuivan/revenuegear/internal/platform/sec"
	"github.com/taibuivan/revenuegear/internal/platform/validate"
)

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Credentials is the configured admin account.
type Credentials struct {
	Username     string
	PasswordHash string
}

// LoginInput is the login payload.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginSession is returned on a successful login.
type LoginSession struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ErrInvalidCredentials hides which half of the credentials was wrong.
var ErrInvalidCredentials = apperr.Unauthorized("Invalid username or password")

// Service verifies admin credentials and issues tokens.
type Service struct {
	credentials Credentials
	tokens      TokenIssuer
	logger      *slog.Logger
	ttl         time.Duration
	now         func() time.Time
}

// NewService constructs an admin [Service].
func NewService(credentials Credentials, tokens TokenIssuer, logger *slog.Logger, ttl time.Duration) *Service {
	return &Service{
		credentials: credentials,
		tokens:      tokens,
		logger:      logger,
		ttl:         ttl,
		now:         time.Now,
	}
}

/*
Login checks the credentials and issues an access token.

The bcrypt comparison always runs so an unknown username costs the same
as a wrong password.

Returns:
  - *LoginSession: Bearer token and expiry
  - error: VALIDATION_ERROR or UNAUTHORIZED
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	validator := &validate.Validator{}
	validator.Required("username", input.Username)
	validator.Required("password", input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(service.credentials.Username)) == 1
	passwordOK := sec.CheckPasswordHash(input.Password, service.credentials.PasswordHash)

	if !usernameOK || !passwordOK {
		service.logger.WarnContext(ctx, "admin_login_rejected", slog.String("username", input.Username))
		return nil, ErrInvalidCredentials
	}

	token, err := service.tokens.GenerateAccessToken(service.credentials.Username, service.credentials.Username, string(sec.RoleAdmin), service.ttl)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.InfoContext(ctx, "admin_login", slog.String("username", input.Username))

	return &LoginSession{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   service.now().Add(service.ttl),
	}, nil
}
