package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/yourorg/noticefeed/internal/extract"
)

type ExtractDeps struct {
	Extractor *extract.Extractor
}

type ExtractRequest struct {
	Title string `json:"title"`
}

func RegisterExtract(r chi.Router, d ExtractDeps) {
	// POST: JSON body
	r.Post("/extract", func(w http.ResponseWriter, req *http.Request) {
		var body ExtractRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}
		handleExtract(w, req, d, body.Title)
	})

	// GET: query param (compatibility)
	r.Get("/extract", func(w http.ResponseWriter, req *http.Request) {
		handleExtract(w, req, d, req.URL.Query().Get("title"))
	})
}

func handleExtract(w http.ResponseWriter, req *http.Request, d ExtractDeps, title string) {
	if strings.TrimSpace(title) == "" {
		render.Status(req, http.StatusBadRequest)
		render.JSON(w, req, map[string]any{"error": "title_required", "detail": "title is required"})
		return
	}
	fields := d.Extractor.Fields(title)
	render.JSON(w, req, map[string]any{
		"ok":        true,
		"title":     title,
		"fields":    fields,
		"officetel": strings.Contains(title, "오피스텔"),
	})
}
