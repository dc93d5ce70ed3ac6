package v1

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/yourorg/noticefeed/internal/extract"
	"github.com/yourorg/noticefeed/internal/redisx"
	"github.com/yourorg/noticefeed/internal/store"
)

// NoticeCounter is the read slice of the store the resolver needs.
type NoticeCounter interface {
	CountByAddress(ctx context.Context, address string) (int, error)
	DuplicateInfoByAddress(ctx context.Context, address string) (store.DuplicateInfo, error)
}

type ResolveDeps struct {
	Redis     *redisx.Client // optional, disables caching when nil
	Store     NoticeCounter  // optional, disables duplicate lookup when nil
	Extractor *extract.Extractor
	CacheTTL  time.Duration
}

type ResolveRequest struct {
	Title string `json:"title"`
}

type resolveEnvelope struct {
	Fields    extract.Fields       `json:"fields"`
	Officetel bool                 `json:"officetel"`
	Dup       *store.DuplicateInfo `json:"duplicates,omitempty"`
	Meta      struct {
		ResolvedAt time.Time `json:"resolved_at"`
		TTLSeconds int       `json:"ttl_seconds"`
	} `json:"meta"`
}

func RegisterResolve(r chi.Router, d ResolveDeps) {
	r.Route("/v1/titles", func(r chi.Router) {
		r.Post("/resolve", func(w http.ResponseWriter, req *http.Request) {
			var body ResolveRequest
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				render.Status(req, http.StatusBadRequest)
				render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
				return
			}
			resolve(w, req, d, body.Title)
		})
		r.Get("/resolve", func(w http.ResponseWriter, req *http.Request) {
			resolve(w, req, d, req.URL.Query().Get("title"))
		})
	})
}

func resolve(w http.ResponseWriter, req *http.Request, d ResolveDeps, title string) {
	if strings.TrimSpace(title) == "" {
		render.Status(req, http.StatusBadRequest)
		render.JSON(w, req, map[string]any{"error": "title_required", "detail": "title is required"})
		return
	}
	ctx := req.Context()
	sum := sha256.Sum256([]byte(title))
	cacheKey := "title:resolve:" + hex.EncodeToString(sum[:16])

	if d.Redis != nil {
		if val, err := d.Redis.Get(ctx, cacheKey); err == nil && val != "" {
			var env resolveEnvelope
			if err := json.Unmarshal([]byte(val), &env); err == nil {
				render.JSON(w, req, map[string]any{
					"ok":     true,
					"source": "cache",
					"result": env,
				})
				return
			}
		}
	}

	env := resolveEnvelope{
		Fields:    d.Extractor.Fields(title),
		Officetel: strings.Contains(title, "오피스텔"),
	}
	if d.Store != nil && env.Fields.Address != "" {
		if n, err := d.Store.CountByAddress(ctx, env.Fields.Address); err == nil && n > 0 {
			if info, err := d.Store.DuplicateInfoByAddress(ctx, env.Fields.Address); err == nil {
				env.Dup = &info
			}
		}
	}
	ttl := d.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	env.Meta.ResolvedAt = time.Now()
	env.Meta.TTLSeconds = int(ttl.Seconds())

	if d.Redis != nil {
		if b, err := json.Marshal(env); err == nil {
			_ = d.Redis.Set(ctx, cacheKey, string(b), ttl)
		}
	}

	render.JSON(w, req, map[string]any{
		"ok":     true,
		"source": "live",
		"result": env,
	})
}
