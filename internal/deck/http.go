// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/revenuegear/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/revenuegear/internal/platform/request"
	"github.com/taibuivan/revenuegear/internal/platform/respond"
)

// Handler implements the HTTP layer for the deck catalogue.
type Handler struct {
	service *Service
}

// NewHandler constructs a new deck [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the public, read-only deck endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listDecks)
	router.Get("/{slug}", handler.getDeck)

	return router
}

// AdminRoutes returns the deck endpoints mounted behind admin authentication.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Put("/{slug}", handler.upsertDeck)

	return router
}

// Summary is the list representation of a deck.
type Summary struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Cover   string `json:"cover"`
	Spreads int    `json:"spreads"`
}

/*
GET /api/v1/decks.

Response:
  - 200: []Summary
*/
func (handler *Handler) listDecks(writer http.ResponseWriter, request *http.Request) {
	decks := handler.service.List()

	summaries := make([]Summary, 0, len(decks))
	for _, d := range decks {
		summaries = append(summaries, Summary{Slug: d.Slug, Title: d.Title, Cover: d.Cover, Spreads: d.Len()})
	}

	respond.OK(writer, summaries)
}

/*
GET /api/v1/decks/{slug}.

Response:
  - 200: Deck
  - 404: NOT_FOUND
*/
func (handler *Handler) getDeck(writer http.ResponseWriter, request *http.Request) {
	d, err := handler.service.Get(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, d)
}

/*
PUT /api/v1/admin/decks/{slug}.

Description: Creates or replaces a deck. Sessions already reading the old
version keep it until they are deleted.

Response:
  - 200: Deck
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) upsertDeck(writer http.ResponseWriter, request *http.Request) {
	var input Deck
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ctx := request.Context()
	if err := handler.service.Upsert(ctx, requestutil.Param(request, "slug"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ctxutil.GetLogger(ctx).Info("deck_published",
		slog.String("slug", input.Slug),
		slog.String("by", ctxutil.AdminName(ctx)),
	)

	respond.OK(writer, &input)
}
