// Package collect walks trust-company notice boards and persists every row
// with its extracted title fields. Boards list newest posts on the lowest
// page numbers, so a crawl starts at the configured start page and steps
// toward the end page.
package collect

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/yourorg/noticefeed/internal/events"
	"github.com/yourorg/noticefeed/internal/extract"
	"github.com/yourorg/noticefeed/internal/store"
)

// Notice is one board row as the source client scraped it.
type Notice struct {
	No       int
	Title    string
	PostDate string
	URL      string
}

// Source is a trust-company board client.
type Source interface {
	Name() string
	Fetch(ctx context.Context, page int) ([]Notice, error)
}

// Writer is the slice of the store the collector needs.
type Writer interface {
	HasURL(ctx context.Context, url string) (bool, error)
	UpsertNotice(ctx context.Context, in store.NoticeInput) (store.UpsertResult, error)
}

// SeenSet tracks URLs already collected so a re-crawl skips them cheaply.
type SeenSet interface {
	SAdd(ctx context.Context, key string, member string) error
	SIsMember(ctx context.Context, key string, member string) (bool, error)
	SetCheckpoint(ctx context.Context, source string, page int) error
	Checkpoint(ctx context.Context, source string) (int, error)
}

type Config struct {
	StartPage      int
	EndPage        int
	Step           int
	Interval       time.Duration
	Pause          time.Duration
	RequestTimeout time.Duration
	RatePerSecond  float64
	Resume         bool
}

type Job struct {
	Source    Source
	Store     Writer
	Seen      SeenSet // optional
	Pub       events.Publisher
	Extractor *extract.Extractor
	Logger    *log.Logger
	Config    Config

	limiter *rate.Limiter
}

func (j *Job) logf(format string, args ...any) {
	if j.Logger != nil {
		j.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

func (j *Job) validate() error {
	if j == nil {
		return errors.New("nil collect job")
	}
	if j.Source == nil {
		return errors.New("collect job missing source")
	}
	if j.Store == nil {
		return errors.New("collect job missing store")
	}
	if j.Extractor == nil {
		j.Extractor = extract.New(nil)
	}
	if j.Config.StartPage <= 0 {
		j.Config.StartPage = 1
	}
	if j.Config.EndPage <= 0 {
		j.Config.EndPage = j.Config.StartPage
	}
	if j.Config.Step == 0 {
		j.Config.Step = 1
	}
	if j.limiter == nil {
		rps := j.Config.RatePerSecond
		if rps <= 0 {
			rps = 1
		}
		j.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return nil
}

func (j *Job) Run(ctx context.Context) error {
	if err := j.validate(); err != nil {
		return err
	}
	interval := j.Config.Interval
	if interval <= 0 {
		return j.RunOnce(ctx)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	j.logf("[INFO] collector %s starting with interval %s", j.Source.Name(), interval)
	if err := j.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
		j.logf("[WARN] collector %s initial run error: %v", j.Source.Name(), err)
	}
	for {
		select {
		case <-ctx.Done():
			j.logf("[INFO] collector %s stopping: %v", j.Source.Name(), ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if err := j.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
				j.logf("[WARN] collector %s iteration error: %v", j.Source.Name(), err)
			}
		}
	}
}

// RunOnce walks the configured page range a single time. A failing page is
// logged and skipped so one bad response never aborts the crawl.
func (j *Job) RunOnce(ctx context.Context) error {
	if err := j.validate(); err != nil {
		return err
	}
	start := j.Config.StartPage
	if j.Config.Resume && j.Seen != nil {
		if cp, err := j.Seen.Checkpoint(ctx, j.Source.Name()); err == nil && cp > 0 {
			start = cp
		}
	}
	stored := 0
	for page := start; inRange(page, j.Config.EndPage, j.Config.Step); page += j.Config.Step {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := j.limiter.Wait(ctx); err != nil {
			return err
		}
		n, err := j.collectPage(ctx, page)
		if err != nil {
			j.logf("[WARN] collector %s page %d: %v", j.Source.Name(), page, err)
			continue
		}
		stored += n
		if j.Seen != nil {
			if err := j.Seen.SetCheckpoint(ctx, j.Source.Name(), page); err != nil {
				j.logf("[WARN] collector %s checkpoint page %d: %v", j.Source.Name(), page, err)
			}
		}
		if j.Config.Pause > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(j.Config.Pause):
			}
		}
	}
	if stored > 0 {
		j.logf("[INFO] collector %s stored %d notice(s)", j.Source.Name(), stored)
	}
	return nil
}

func inRange(page, end, step int) bool {
	if step < 0 {
		return page >= end
	}
	return page <= end
}

func (j *Job) collectPage(ctx context.Context, page int) (int, error) {
	timeout := j.Config.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	rows, err := j.Source.Fetch(reqCtx, page)
	cancel()
	if err != nil {
		return 0, fmt.Errorf("fetch: %w", err)
	}
	stored := 0
	seenKey := "crawl:seen:" + j.Source.Name()
	for _, row := range rows {
		if ctx.Err() != nil {
			return stored, ctx.Err()
		}
		if row.URL == "" || row.Title == "" {
			continue
		}
		if j.Seen != nil {
			if ok, err := j.Seen.SIsMember(ctx, seenKey, row.URL); err == nil && ok {
				continue
			}
		}
		if ok, err := j.Store.HasURL(ctx, row.URL); err == nil && ok {
			if j.Seen != nil {
				_ = j.Seen.SAdd(ctx, seenKey, row.URL)
			}
			continue
		}
		if err := j.persistRow(ctx, row); err != nil {
			j.logf("[WARN] collector %s notice %q: %v", j.Source.Name(), row.URL, err)
			continue
		}
		if j.Seen != nil {
			_ = j.Seen.SAdd(ctx, seenKey, row.URL)
		}
		stored++
	}
	return stored, nil
}

func (j *Job) persistRow(ctx context.Context, row Notice) error {
	fields := j.Extractor.Fields(row.Title)
	in := store.NoticeInput{
		Trust:            j.Source.Name(),
		BoardNo:          row.No,
		Title:            row.Title,
		PostDate:         row.PostDate,
		URL:              row.URL,
		Address:          fields.Address,
		ProvinceDistrict: fields.ProvinceDistrict,
		District:         fields.DistrictOnly,
		Building:         fields.Building,
		SaleContent:      fields.SaleContent,
		Officetel:        strings.Contains(row.Title, "오피스텔"),
	}
	if _, err := j.Store.UpsertNotice(ctx, in); err != nil {
		return err
	}
	if j.Pub != nil {
		j.Pub.PublishNoticeStored(ctx, events.NoticeStored{URL: row.URL, Address: fields.Address})
	}
	return nil
}
