// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/revenuegear/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/revenuegear/internal/platform/request"
	"github.com/taibuivan/revenuegear/internal/platform/respond"
	"github.com/taibuivan/revenuegear/internal/platform/validate"
	"github.com/taibuivan/revenuegear/internal/reader"
	"github.com/taibuivan/revenuegear/pkg/uuidv7"
)

// Handler implements the HTTP layer for reader sessions.
type Handler struct {
	service *Service
}

// NewHandler constructs a new session [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for /api/v1/readers.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createSession)

	router.Route("/{id}", func(session chi.Router) {
		session.Use(annotateSession)
		session.Get("/", handler.getSession)
		session.Delete("/", handler.deleteSession)
		session.Post("/gesture", handler.gesture)
		session.Post("/{command}", handler.command)
	})

	return router
}

type createRequest struct {
	Deck string `json:"deck"`
}

type gestureRequest struct {
	Start *reader.Point `json:"start"`
	End   *reader.Point `json:"end"`
}

/*
POST /api/v1/readers.

Request (Body):
  - deck: string (optional, defaults to the configured deck)

Response:
  - 201: Result: Closed reader
  - 404: NOT_FOUND: Unknown deck
*/
func (handler *Handler) createSession(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Create(request.Context(), input.Deck)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

// GET /api/v1/readers/{id}.
func (handler *Handler) getSession(writer http.ResponseWriter, request *http.Request) {
	id, err := sessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
POST /api/v1/readers/{id}/{open|next|prev|close}.

Description: Absorbed commands still answer 200 with accepted=false.

Response:
  - 200: Result
  - 400: VALIDATION_ERROR: Unknown command
*/
func (handler *Handler) command(writer http.ResponseWriter, request *http.Request) {
	id, err := sessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	command := requestutil.Param(request, "command")
	validator := &validate.Validator{}
	validator.OneOf("command", command,
		string(CommandOpen), string(CommandNext), string(CommandPrev), string(CommandClose))
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Command(request.Context(), id, Command(command))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
POST /api/v1/readers/{id}/gesture.

Request (Body):
  - start: {x, y}
  - end: {x, y}
*/
func (handler *Handler) gesture(writer http.ResponseWriter, request *http.Request) {
	id, err := sessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input gestureRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Custom("start", input.Start == nil, "This field is required")
	validator.Custom("end", input.End == nil, "This field is required")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Gesture(request.Context(), id, *input.Start, *input.End)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// DELETE /api/v1/readers/{id}.
func (handler *Handler) deleteSession(writer http.ResponseWriter, request *http.Request) {
	id, err := sessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func sessionID(request *http.Request) (string, error) {
	id := requestutil.Param(request, "id")
	if !uuidv7.Valid(id) {
		return "", validate.RequiredError("id", "Must be a valid UUID")
	}
	return id, nil
}

// annotateSession tags the request logger with the session id from the path.
func annotateSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := ctxutil.Annotate(request.Context(), slog.String("session_id", requestutil.Param(request, "id")))
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
