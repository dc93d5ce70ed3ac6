// Package mghat fetches the 무궁화신탁 disposal notice board. The board is
// served inconsistently across scheme and host variants, so the client
// probes a candidate list and sticks with the first base URL that answers.
package mghat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/yourorg/noticefeed/internal/collect"
)

const listPath = "/auction/disposal/list.do"

type Client struct {
	http     *retryablehttp.Client
	baseURLs []string

	mu   sync.Mutex
	base string // first candidate that answered
}

func NewClient() *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 300 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = nil

	return &Client{
		http: rc,
		baseURLs: []string{
			"https://mghat.com",
			"https://www.mghat.com",
			"http://mghat.com",
			"http://www.mghat.com",
		},
	}
}

func (c *Client) Name() string { return "mghat" }

// Fetch downloads one board page and returns its notice rows.
func (c *Client) Fetch(ctx context.Context, page int) ([]collect.Notice, error) {
	c.mu.Lock()
	sticky := c.base
	c.mu.Unlock()
	bases := c.baseURLs
	if sticky != "" {
		bases = append([]string{sticky}, bases...)
	}
	var lastErr error
	for _, base := range bases {
		rows, err := c.fetchFrom(ctx, base, page)
		if err != nil {
			lastErr = err
			continue
		}
		c.mu.Lock()
		c.base = base
		c.mu.Unlock()
		return rows, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no base url configured")
	}
	return nil, fmt.Errorf("mghat page %d: %w", page, lastErr)
}

func (c *Client) fetchFrom(ctx context.Context, base string, page int) ([]collect.Notice, error) {
	u := fmt.Sprintf("%s%s?page=%d", base, listPath, page)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "text/html")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	return parseBoard(doc, baseURL), nil
}
