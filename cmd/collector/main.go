package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourorg/noticefeed/internal/collect"
	"github.com/yourorg/noticefeed/internal/dedup"
	"github.com/yourorg/noticefeed/internal/env"
	"github.com/yourorg/noticefeed/internal/events"
	"github.com/yourorg/noticefeed/internal/extract"
	"github.com/yourorg/noticefeed/internal/redisx"
	"github.com/yourorg/noticefeed/internal/store"
	"github.com/yourorg/noticefeed/kbret"
	"github.com/yourorg/noticefeed/kyobo"
	"github.com/yourorg/noticefeed/mghat"
)

func main() {
	_ = godotenv.Load()

	dsn := env.Must("PG_DSN")

	sources := splitList(env.Get("COLLECTOR_SOURCES", "mghat"))
	if len(sources) == 0 {
		log.Fatal("COLLECTOR_SOURCES must name at least one source")
	}

	startPage := parseInt(os.Getenv("COLLECTOR_START_PAGE"), 1)
	endPage := parseInt(os.Getenv("COLLECTOR_END_PAGE"), 0)
	step := parseInt(os.Getenv("COLLECTOR_STEP"), 1)
	interval := parseDuration(os.Getenv("COLLECTOR_INTERVAL"), 6*time.Hour)
	pause := parseDuration(os.Getenv("COLLECTOR_PAUSE"), 1500*time.Millisecond)
	requestTimeout := parseDuration(os.Getenv("COLLECTOR_REQUEST_TIMEOUT"), 12*time.Second)
	ratePerSecond := parseInt(os.Getenv("COLLECTOR_RATE_PER_SECOND"), 1)
	resume := parseBool(os.Getenv("COLLECTOR_RESUME"), true)
	runOnce := parseBool(os.Getenv("COLLECTOR_RUN_ONCE"), false)

	st, err := store.Open(dsn)
	if err != nil {
		log.Fatalf("store open error: %v", err)
	}
	defer st.DB.Close()

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

	var seen collect.SeenSet
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redisx.New(addr, os.Getenv("REDIS_PASSWORD"), env.GetInt("REDIS_DB", 0))
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx); err != nil {
			pingCancel()
			log.Fatalf("redis ping error: %v", err)
		}
		pingCancel()
		seen = rdb
	} else {
		log.Printf("[WARN] REDIS_ADDR not set, crawl runs without seen-set or checkpoints")
	}

	pub := events.NewInMemory(256)
	marker := dedup.New(256, 2, pub, st.MarkAddressDuplicates)

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go marker.Run(rootCtx)

	extractor := extract.New(nil)
	cfg := collect.Config{
		StartPage:      startPage,
		EndPage:        endPage,
		Step:           step,
		Interval:       interval,
		Pause:          pause,
		RequestTimeout: requestTimeout,
		RatePerSecond:  float64(ratePerSecond),
		Resume:         resume,
	}
	if runOnce {
		cfg.Interval = 0
	}

	var wg sync.WaitGroup
	for _, name := range sources {
		src, err := buildSource(name)
		if err != nil {
			log.Fatalf("collector source: %v", err)
		}
		jobCfg := cfg
		if jobCfg.EndPage <= 0 {
			jobCfg.EndPage = boardEnd(rootCtx, src, jobCfg.StartPage)
		}
		job := &collect.Job{
			Source:    src,
			Store:     st,
			Seen:      seen,
			Pub:       pub,
			Extractor: extractor,
			Config:    jobCfg,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := job.Run(rootCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("[WARN] collector %s stopped with error: %v", job.Source.Name(), err)
			}
		}()
	}
	wg.Wait()
}

// boardEnd picks a walk end when COLLECTOR_END_PAGE is unset. The kbret
// board is keyed by detail id, so its end is discovered by probing forward.
func boardEnd(ctx context.Context, src collect.Source, start int) int {
	if k, ok := src.(*kbret.Client); ok {
		probeCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
		if last, err := k.Latest(probeCtx, start); err == nil && last > 0 {
			return last
		}
		log.Printf("[WARN] collector kbret: could not discover latest notice id, walking 50 ids")
		return start + 50
	}
	return 10
}

func buildSource(name string) (collect.Source, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mghat":
		return mghat.NewClient(), nil
	case "kbret":
		return kbret.NewClient(), nil
	case "kyobo":
		return kyobo.NewClient(), nil
	default:
		return nil, errors.New("unknown source " + name)
	}
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	fields := strings.FieldsFunc(v, func(r rune) bool {
		switch r {
		case ',', ';', '\n', '\r', '\t':
			return true
		default:
			return false
		}
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func parseDuration(v string, def time.Duration) time.Duration {
	if v == "" {
		return def
	}
	dur, err := time.ParseDuration(v)
	if err == nil {
		return dur
	}
	if i, err2 := strconv.Atoi(v); err2 == nil {
		return time.Duration(i) * time.Second
	}
	return def
}

func parseInt(v string, def int) int {
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func parseBool(v string, def bool) bool {
	if v == "" {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
