// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/revenuegear/internal/contact"
	"github.com/taibuivan/revenuegear/internal/platform/middleware"
)

func newHandler(t *testing.T, mailer contact.Mailer, burst int) *contact.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	limiter := middleware.NewIPLimiter(ctx, 0.001, burst)
	return contact.NewHandler(newService(newMemoryRepository(), mailer), limiter)
}

func post(handler http.Handler, path, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.RemoteAddr = "198.51.100.9:4242"
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_Mailto(t *testing.T) {
	router := newHandler(t, &recordingMailer{}, 3).Routes()

	recorder := post(router, "/mailto", `{"name":"Jane","email":"jane@dealer.com"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var env struct {
		Data contact.MailtoLink `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &env))
	assert.True(t, strings.HasPrefix(env.Data.URL, "mailto:"))

	recorder = post(router, "/mailto", `{"name":"","email":""}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_SubmitRateLimited(t *testing.T) {
	router := newHandler(t, &recordingMailer{}, 3).Routes()
	body := `{"name":"Jane","email":"jane@dealer.com"}`

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusCreated, post(router, "/", body).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, post(router, "/", body).Code)

	// The mailto route is not behind the stricter limiter.
	assert.Equal(t, http.StatusOK, post(router, "/mailto", body).Code)
}

func TestHandler_SubmitRelayFailure(t *testing.T) {
	router := newHandler(t, &recordingMailer{err: errors.New("smtp down")}, 3).Routes()

	recorder := post(router, "/", `{"name":"Jane","email":"jane@dealer.com"}`)
	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "RELAY_FAILED")
}

func TestHandler_SendEmail(t *testing.T) {
	body := `{"firstName":"Bob","lastName":"Smith","email":"bob@dealer.com","dealership":"Smith Motors","phone":"555"}`

	t.Run("success", func(t *testing.T) {
		recorder := post(newHandler(t, &recordingMailer{}, 3).SendEmail(), "/api/send-email", body)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"success":true}`, recorder.Body.String())
	})

	t.Run("relay_failure", func(t *testing.T) {
		recorder := post(newHandler(t, &recordingMailer{err: errors.New("smtp down")}, 3).SendEmail(), "/api/send-email", body)
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.JSONEq(t, `{"success":false,"error":"Failed to send email"}`, recorder.Body.String())
	})

	t.Run("invalid", func(t *testing.T) {
		recorder := post(newHandler(t, &recordingMailer{}, 3).SendEmail(), "/api/send-email", `{"firstName":"Bob"}`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.JSONEq(t, `{"success":false,"error":"Validation failed"}`, recorder.Body.String())
	})
}

func TestHandler_ListLeads(t *testing.T) {
	repo := newMemoryRepository()
	service := newService(repo, &recordingMailer{})
	for i := 0; i < 3; i++ {
		_, err := service.Submit(context.Background(), contact.Request{Name: "Jane", Email: "jane@dealer.com"}, "")
		require.NoError(t, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	router := contact.NewHandler(service, middleware.NewIPLimiter(ctx, 1, 1)).AdminRoutes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/?limit=2&page=2", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var env struct {
		Data []contact.Lead `json:"data"`
		Meta struct {
			Total      int `json:"total"`
			TotalPages int `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &env))
	assert.Len(t, env.Data, 1)
	assert.Equal(t, 3, env.Meta.Total)
	assert.Equal(t, 2, env.Meta.TotalPages)
}
