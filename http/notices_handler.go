package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/yourorg/noticefeed/internal/store"
)

// NoticeLister is the read slice of the store the listing endpoint needs.
type NoticeLister interface {
	ListNotices(ctx context.Context, f store.ListFilter) ([]store.Notice, error)
}

type NoticesDeps struct {
	Store NoticeLister
}

func RegisterNotices(r chi.Router, d NoticesDeps) {
	r.Get("/notices", func(w http.ResponseWriter, req *http.Request) {
		if d.Store == nil {
			render.Status(req, http.StatusServiceUnavailable)
			render.JSON(w, req, map[string]any{"error": "store_unavailable", "detail": "no database configured"})
			return
		}
		q := req.URL.Query()
		limit := 50
		if v := q.Get("limit"); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				limit = i
			}
		}
		page := 1
		if v := q.Get("page"); v != "" {
			if i, err := strconv.Atoi(v); err == nil && i > 0 {
				page = i
			}
		}
		f := store.ListFilter{
			Trust:  q.Get("trust"),
			Region: q.Get("region"),
			Limit:  limit,
			Offset: (page - 1) * limit,
		}
		notices, err := d.Store.ListNotices(req.Context(), f)
		if err != nil {
			render.Status(req, http.StatusInternalServerError)
			render.JSON(w, req, map[string]any{"error": "store_error", "detail": err.Error()})
			return
		}
		render.JSON(w, req, map[string]any{
			"ok":      true,
			"count":   len(notices),
			"page":    page,
			"notices": notices,
		})
	})
}
