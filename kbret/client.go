// Package kbret fetches KB부동산신탁 auction notices. The board has no usable
// list view, so notices are read one detail page at a time by sequential id;
// a run of missing ids marks the end of the board.
package kbret

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/yourorg/noticefeed/internal/collect"
)

type Client struct {
	http    *retryablehttp.Client
	baseURL string

	// MissRun is how many consecutive empty detail pages Fetch tolerates
	// before reporting the end of the board.
	MissRun int
}

func NewClient() *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 300 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = nil

	return &Client{
		http:    rc,
		baseURL: "https://www.kbret.co.kr",
		MissRun: 5,
	}
}

func (c *Client) Name() string { return "kbret" }

// Fetch treats the page number as a detail-page id. Missing ids yield an
// empty result so the collector keeps walking; only transport failures error.
func (c *Client) Fetch(ctx context.Context, page int) ([]collect.Notice, error) {
	n, ok, err := c.fetchDetail(ctx, page)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return []collect.Notice{n}, nil
}

// Latest probes forward from id until MissRun consecutive ids are missing
// and returns the highest id that exists. It lets a crawl discover the end
// of the board before walking it backwards.
func (c *Client) Latest(ctx context.Context, from int) (int, error) {
	missRun := c.MissRun
	if missRun <= 0 {
		missRun = 5
	}
	last := 0
	misses := 0
	for id := from; ; id++ {
		if ctx.Err() != nil {
			return last, ctx.Err()
		}
		_, ok, err := c.fetchDetail(ctx, id)
		if err != nil {
			return last, err
		}
		if ok {
			last = id
			misses = 0
			continue
		}
		misses++
		if misses >= missRun {
			return last, nil
		}
	}
}

func (c *Client) fetchDetail(ctx context.Context, id int) (collect.Notice, bool, error) {
	u := fmt.Sprintf("%s/auction/%d", c.baseURL, id)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return collect.Notice{}, false, err
	}
	req.Header.Set("accept", "text/html")

	resp, err := c.http.Do(req)
	if err != nil {
		return collect.Notice{}, false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return collect.Notice{}, false, nil
	}
	if resp.StatusCode >= 400 {
		return collect.Notice{}, false, fmt.Errorf("kbret detail %d: status %d", id, resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return collect.Notice{}, false, err
	}
	n, ok := parseDetail(doc, id)
	if !ok {
		return collect.Notice{}, false, nil
	}
	n.URL = u
	return n, true, nil
}
