// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/revenuegear/internal/platform/apperr"
	"github.com/taibuivan/revenuegear/internal/platform/constants"
	"github.com/taibuivan/revenuegear/internal/platform/middleware"
	requestutil "github.com/taibuivan/revenuegear/internal/platform/request"
	"github.com/taibuivan/revenuegear/internal/platform/respond"
	"github.com/taibuivan/revenuegear/pkg/pagination"
)

// Handler implements the HTTP layer for contact requests.
type Handler struct {
	service *Service
	limiter *middleware.IPLimiter
}

// NewHandler constructs a contact [Handler]. limiter guards the endpoints
// that send email.
func NewHandler(service *Service, limiter *middleware.IPLimiter) *Handler {
	return &Handler{service: service, limiter: limiter}
}

// Routes returns a [chi.Router] for /api/v1/contact.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/mailto", handler.mailto)
	router.With(handler.limiter.Middleware).Post("/", handler.submit)

	return router
}

// SendEmail serves the original relay route, POST /api/send-email.
func (handler *Handler) SendEmail() http.Handler {
	return handler.limiter.Middleware(http.HandlerFunc(handler.sendEmail))
}

// AdminRoutes returns lead review endpoints mounted behind admin authentication.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listLeads)

	return router
}

/*
POST /api/v1/contact/mailto.

Response:
  - 200: MailtoLink
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) mailto(writer http.ResponseWriter, request *http.Request) {
	var input Request
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	link, err := handler.service.Mailto(input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, link)
}

/*
POST /api/v1/contact.

Response:
  - 201: Lead: Relayed
  - 400: VALIDATION_ERROR
  - 429: RATE_LIMITED
  - 502: RELAY_FAILED: Stored but not delivered
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input Request
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	lead, err := handler.service.Submit(request.Context(), input, middleware.RealIP(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, lead)
}

/*
POST /api/send-email.

Description: Keeps the response shape of the original route:
{"success": true} or {"success": false, "error": "..."}. Relay failures
answer 500 here rather than 502.
*/
func (handler *Handler) sendEmail(writer http.ResponseWriter, request *http.Request) {
	var input Request
	err := requestutil.DecodeJSON(writer, request, &input)
	if err == nil {
		_, err = handler.service.Submit(request.Context(), input, middleware.RealIP(request))
	}

	if err == nil {
		respond.JSON(writer, http.StatusOK, map[string]any{constants.FieldSuccess: true})
		return
	}

	status := respond.Status(request, err)
	message := "Failed to send email"
	if appError := apperr.As(err); appError != nil && status < http.StatusInternalServerError {
		message = appError.Message
	} else {
		status = http.StatusInternalServerError
	}

	respond.JSON(writer, status, map[string]any{
		constants.FieldSuccess: false,
		constants.FieldError:   message,
	})
}

/*
GET /api/v1/admin/leads.

Request:
  - page, limit: int

Response:
  - 200: []Lead: Paginated, newest first
*/
func (handler *Handler) listLeads(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	leads, total, err := handler.service.ListLeads(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, leads, pagination.NewMeta(params.Page, params.Limit, total))
}
