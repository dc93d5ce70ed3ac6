package mghat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.HTTPClient.Timeout = 2 * time.Second
	rc.Logger = nil
	return &Client{http: rc, baseURLs: []string{baseURL}}
}

func TestFetchSticksToAnsweringBase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(boardPage))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.baseURLs = append([]string{"http://127.0.0.1:1"}, c.baseURLs...)

	rows, err := c.Fetch(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, srv.URL, c.base)
}

// A shared client must survive concurrent fetches; the sticky base is the
// only mutable field.
func TestFetchConcurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(boardPage))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			rows, err := c.Fetch(context.Background(), page)
			assert.NoError(t, err)
			assert.Len(t, rows, 2)
		}(i + 1)
	}
	wg.Wait()
}
