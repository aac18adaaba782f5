package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tickerlookup/internal/format"
	"tickerlookup/internal/lookup"
	"tickerlookup/internal/provider"
)

type searchResponse struct {
	Query   string                        `json:"query"`
	Results []provider.TickerSearchResult `json:"results"`
	Error   string                        `json:"error,omitempty"`
}

type rankView struct {
	Value string       `json:"value"`
	Label string       `json:"label"`
	Color format.Color `json:"color"`
}

type quoteResponse struct {
	Quote   provider.Quote `json:"quote"`
	Rank    rankView       `json:"rank"`
	Details []format.Row   `json:"details"`
	Links   struct {
		Quote string `json:"quote"`
		Icon  string `json:"icon"`
	} `json:"links"`
}

type recentItem struct {
	provider.RecentTicker
	Quote *provider.Quote `json:"quote,omitempty"`
	Error string          `json:"error,omitempty"`
}

type recentsResponse struct {
	Recents []recentItem `json:"recents"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	svc *lookup.Service
}

func newRouter(svc *lookup.Service, access zerolog.Logger) http.Handler {
	h := handlers{svc: svc}

	r := chi.NewRouter()
	r.Use(middleware.RealIP, withRequestID, withAccessLog(access), recoverPanic, withCORS(), withGzip, withJSONHeaders)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/search", h.search)
		r.Get("/quotes/{ticker}", h.quote)
		r.Get("/recents", h.recents)
		r.Delete("/recents", h.clearRecents)
		r.Delete("/recents/{symbol}", h.removeRecent)
	})
	return r
}

// search never fails the request: an upstream failure is an empty result
// list with the reason alongside.
func (h handlers) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results, err := h.svc.Search(r.Context(), q)
	resp := searchResponse{Query: q, Results: results}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h handlers) quote(w http.ResponseWriter, r *http.Request) {
	ticker := strings.TrimSpace(chi.URLParam(r, "ticker"))
	if ticker == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{"missing ticker"})
		return
	}
	q, err := h.svc.Lookup(r.Context(), ticker)
	switch {
	case provider.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{err.Error()})
		return
	case err != nil:
		writeJSON(w, http.StatusBadGateway, errorResponse{err.Error()})
		return
	}

	resp := quoteResponse{
		Quote:   *q,
		Rank:    rankView{Value: q.ZacksRank, Label: format.RankLabel(q.ZacksRank), Color: format.RankColor(q.ZacksRank)},
		Details: format.Details(*q),
	}
	resp.Links.Quote = format.QuoteURL(q.Ticker)
	resp.Links.Icon = format.IconURL(q.Ticker)
	writeJSON(w, http.StatusOK, resp)
}

func (h handlers) recents(w http.ResponseWriter, r *http.Request) {
	views := h.svc.Recents(r.Context())
	resp := recentsResponse{Recents: make([]recentItem, 0, len(views))}
	for _, v := range views {
		item := recentItem{RecentTicker: v.RecentTicker, Quote: v.Quote}
		if v.Err != nil {
			item.Error = v.Err.Error()
		}
		resp.Recents = append(resp.Recents, item)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h handlers) removeRecent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Remove(r.Context(), chi.URLParam(r, "symbol")); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h handlers) clearRecents(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Clear(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Warn().Err(err).Msg("writing response")
	}
}
