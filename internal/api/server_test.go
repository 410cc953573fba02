// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/revenuegear/internal/admin"
	"github.com/taibuivan/revenuegear/internal/api"
	"github.com/taibuivan/revenuegear/internal/contact"
	"github.com/taibuivan/revenuegear/internal/deck"
	"github.com/taibuivan/revenuegear/internal/platform/sec"
	"github.com/taibuivan/revenuegear/internal/session"
)

type corsConfig struct{}

func (corsConfig) IsDevelopment() bool { return false }

func (corsConfig) AllowedOrigin(origin string) bool { return strings.HasSuffix(origin, "revenuegear.app") }

type roleVerifier struct{}

func (roleVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	switch token {
	case "admin":
		return &sec.AuthClaims{Username: "ops", Role: string(sec.RoleAdmin)}, nil
	case "editor":
		return &sec.AuthClaims{Username: "ed", Role: string(sec.RoleEditor)}, nil
	}
	return nil, errors.New("invalid token")
}

type tokenIssuer struct{}

func (tokenIssuer) GenerateAccessToken(_, _, _ string, _ time.Duration) (string, error) {
	return "token", nil
}

type leadRepository struct{}

func (leadRepository) Create(_ context.Context, lead *contact.Lead) error { return nil }

func (leadRepository) UpdateStatus(context.Context, string, contact.Status, string) error {
	return nil
}

func (leadRepository) List(context.Context, int, int) ([]*contact.Lead, int, error) {
	return []*contact.Lead{}, 0, nil
}

func newServer(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.DiscardHandler)

	decks := deck.NewService(nil, logger, deck.DefaultSlug)
	sessions := session.NewService(decks, nil, logger, session.Options{})
	contacts := contact.NewService(leadRepository{}, contact.NewLogMailer(logger), logger, contact.Options{
		From:      "relay@revenuegear.app",
		Recipient: "sales@revenuegear.app",
	})

	hash, err := sec.HashPassword("correct horse")
	require.NoError(t, err)
	admins := admin.NewService(admin.Credentials{Username: "admin", PasswordHash: hash}, tokenIssuer{}, logger, time.Hour)

	if deps.ActiveSessions == nil {
		deps.ActiveSessions = sessions.Len
	}
	liveness, readiness := api.NewHealthHandlers(deps, logger)

	server := api.NewServer(ctx, api.Settings{Port: "0", CORS: corsConfig{}}, logger, roleVerifier{}, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Decks:     deck.NewHandler(decks),
		Readers:   session.NewHandler(sessions),
		Contact:   contact.NewHandler(contacts, nil),
		Admin:     admin.NewHandler(admins),
	})
	return server.Handler()
}

func call(handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestHealth(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{})

	recorder := call(handler, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"ok"`)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}

/*
TestReadiness verifies dependency checks on /ready.

1. All checks pass: 200 with the session count.
2. One check fails: 503 and the failing dependency is reported.
*/
func TestReadiness(t *testing.T) {
	healthy := newServer(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return nil },
	})
	recorder := call(healthy, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"sessions":0`)

	degraded := newServer(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return errors.New("connection refused") },
	})
	recorder = call(degraded, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "connection refused")
	assert.Contains(t, recorder.Body.String(), `"degraded"`)
}

func TestVisitorRoutes(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{})

	assert.Equal(t, http.StatusOK, call(handler, http.MethodGet, "/api/v1/decks", "", "").Code)
	assert.Equal(t, http.StatusOK, call(handler, http.MethodGet, "/api/v1/decks/"+deck.DefaultSlug, "", "").Code)

	created := call(handler, http.MethodPost, "/api/v1/readers", "", `{}`)
	assert.Equal(t, http.StatusCreated, created.Code)
	assert.Contains(t, created.Body.String(), `"phase":"closed"`)

	mailto := call(handler, http.MethodPost, "/api/v1/contact/mailto", "", `{"name":"Ana Ruiz","email":"ana@dealer.example"}`)
	assert.Equal(t, http.StatusOK, mailto.Code)
	assert.Contains(t, mailto.Body.String(), "mailto:")
}

func TestLegacySendEmail(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{})

	recorder := call(handler, http.MethodPost, "/api/send-email", "",
		`{"firstName":"Ana","lastName":"Ruiz","email":"ana@dealer.example","message":"Demo please"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"success":true}`, recorder.Body.String())
}

/*
TestAdminRoutes verifies the role guards on the back office.

1. Login is reachable anonymously and rejects bad credentials.
2. Leads need the admin role.
3. Deck publishing accepts an editor.
*/
func TestAdminRoutes(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{})

	login := call(handler, http.MethodPost, "/api/v1/admin/login", "", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, login.Code)

	login = call(handler, http.MethodPost, "/api/v1/admin/login", "", `{"username":"admin","password":"correct horse"}`)
	assert.Equal(t, http.StatusOK, login.Code)

	assert.Equal(t, http.StatusUnauthorized, call(handler, http.MethodGet, "/api/v1/admin/leads", "", "").Code)
	assert.Equal(t, http.StatusForbidden, call(handler, http.MethodGet, "/api/v1/admin/leads", "editor", "").Code)
	assert.Equal(t, http.StatusOK, call(handler, http.MethodGet, "/api/v1/admin/leads", "admin", "").Code)

	assert.Equal(t, http.StatusUnauthorized, call(handler, http.MethodPut, "/api/v1/admin/decks/x", "", "{}").Code)
	assert.Equal(t, http.StatusBadRequest, call(handler, http.MethodPut, "/api/v1/admin/decks/x", "editor", "not json").Code)
}

func TestCORSPreflight(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{})

	request := httptest.NewRequest(http.MethodOptions, "/api/send-email", nil)
	request.Header.Set("Origin", "https://www.revenuegear.app")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "https://www.revenuegear.app", recorder.Header().Get("Access-Control-Allow-Origin"))
}
