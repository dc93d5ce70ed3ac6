// Package kyobo fetches the 교보자산신탁 disposal notice board (BBS_0005).
// Rows carry no href; the detail id rides in an onclick handler and the
// detail URL is rebuilt from it.
package kyobo

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/yourorg/noticefeed/internal/collect"
)

const (
	baseURL  = "https://www.kyobotrust.co.kr"
	listPath = "/front/bbsList.do"
	bbsID    = "BBS_0005"
)

type Client struct {
	http *retryablehttp.Client
	base string
}

func NewClient() *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 300 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = nil

	return &Client{http: rc, base: baseURL}
}

func (c *Client) Name() string { return "kyobo" }

func (c *Client) Fetch(ctx context.Context, page int) ([]collect.Notice, error) {
	u := fmt.Sprintf("%s%s?bbsId=%s&pageIndex=%d", c.base, listPath, bbsID, page)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "text/html")
	req.Header.Set("referer", c.base)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kyobo page %d: %w", page, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("kyobo page %d: status %d", page, resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}
	return parseBoard(doc, c.base), nil
}
