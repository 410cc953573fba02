// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/revenuegear/internal/admin"
	"github.com/taibuivan/revenuegear/internal/platform/apperr"
	"github.com/taibuivan/revenuegear/internal/platform/sec"
)

func newService(t *testing.T) (*admin.Service, *sec.TokenService) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "revenuegear.app")

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	credentials := admin.Credentials{Username: "admin", PasswordHash: string(hash)}
	return admin.NewService(credentials, tokens, slog.New(slog.DiscardHandler), time.Hour), tokens
}

func TestService_Login(t *testing.T) {
	service, tokens := newService(t)
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		session, err := service.Login(ctx, admin.LoginInput{Username: "admin", Password: "s3cret"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", session.TokenType)

		claims, err := tokens.VerifyToken(session.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, string(sec.RoleAdmin), claims.Role)
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := service.Login(ctx, admin.LoginInput{Username: "admin", Password: "nope"})
		assert.True(t, apperr.HasCode(err, "UNAUTHORIZED"))
	})

	t.Run("wrong_username", func(t *testing.T) {
		_, err := service.Login(ctx, admin.LoginInput{Username: "root", Password: "s3cret"})
		assert.True(t, apperr.HasCode(err, "UNAUTHORIZED"))
	})

	t.Run("missing_fields", func(t *testing.T) {
		_, err := service.Login(ctx, admin.LoginInput{})
		assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
	})
}

func TestHandler_Login(t *testing.T) {
	service, _ := newService(t)
	router := admin.NewHandler(service).Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"s3cret"}`)))
	require.Equal(t, http.StatusOK, recorder.Code)

	var env struct {
		Data admin.LoginSession `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &env))
	assert.NotEmpty(t, env.Data.AccessToken)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"bad"}`)))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{bad json`)))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
