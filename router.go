package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	httpapi "github.com/yourorg/noticefeed/http"
	httpv1 "github.com/yourorg/noticefeed/http/v1"
	"github.com/yourorg/noticefeed/internal/extract"
	"github.com/yourorg/noticefeed/internal/redisx"
	"github.com/yourorg/noticefeed/internal/store"
)

type RouterDeps struct {
	Extractor *extract.Extractor
	Store     *store.Store   // optional
	Redis     *redisx.Client // optional
	CacheTTL  time.Duration
}

func BuildRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(httprate.LimitByIP(100, 1*time.Minute))
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"ok":true}`)) })

	httpapi.RegisterExtract(r, httpapi.ExtractDeps{Extractor: deps.Extractor})

	var lister httpapi.NoticeLister
	var counter httpv1.NoticeCounter
	if deps.Store != nil {
		lister = deps.Store
		counter = deps.Store
	}
	httpapi.RegisterNotices(r, httpapi.NoticesDeps{Store: lister})

	httpv1.RegisterResolve(r, httpv1.ResolveDeps{
		Redis:     deps.Redis,
		Store:     counter,
		Extractor: deps.Extractor,
		CacheTTL:  deps.CacheTTL,
	})

	return r
}
