package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourorg/noticefeed/internal/env"
	"github.com/yourorg/noticefeed/internal/extract"
	"github.com/yourorg/noticefeed/internal/logger"
	"github.com/yourorg/noticefeed/internal/redisx"
	"github.com/yourorg/noticefeed/internal/store"
)

func main() {
	_ = godotenv.Load()

	port := env.GetInt("PORT", 4010)
	deps := RouterDeps{
		Extractor: extract.New(nil),
		CacheTTL:  time.Duration(env.GetInt("RESOLVE_CACHE_TTL_SECONDS", 600)) * time.Second,
	}

	// Postgres and Redis are optional; without them the API still serves
	// /extract and /v1/titles/resolve from the engine alone.
	if dsn := os.Getenv("PG_DSN"); dsn != "" {
		st, err := store.Open(dsn)
		if err != nil {
			log.Fatalf("store open error: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := st.Ping(ctx); err != nil {
			cancel()
			log.Fatalf("postgres ping error: %v", err)
		}
		if err := st.Migrate(ctx); err != nil {
			cancel()
			log.Fatalf("postgres migrate error: %v", err)
		}
		cancel()
		deps.Store = st
	} else {
		log.Printf("[WARN] PG_DSN not set, /notices disabled")
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redisx.New(addr, os.Getenv("REDIS_PASSWORD"), env.GetInt("REDIS_DB", 0))
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(ctx); err != nil {
			cancel()
			log.Fatalf("redis ping error: %v", err)
		}
		cancel()
		deps.Redis = rdb
	} else {
		log.Printf("[WARN] REDIS_ADDR not set, resolve responses are not cached")
	}

	router := BuildRouter(deps)

	log.Printf("[INFO] noticefeed api listening on :%d", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), logger.Middleware(router)); err != nil {
		log.Fatal(err)
	}
}
