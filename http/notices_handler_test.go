package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/noticefeed/internal/store"
)

type fakeLister struct {
	got  store.ListFilter
	rows []store.Notice
}

func (f *fakeLister) ListNotices(_ context.Context, filter store.ListFilter) ([]store.Notice, error) {
	f.got = filter
	return f.rows, nil
}

func TestNoticesList(t *testing.T) {
	lister := &fakeLister{rows: []store.Notice{
		{Trust: "mghat", Title: "세종특별자치시 반곡동 123 일괄매각", Address: "세종특별자치시 반곡동 123"},
	}}
	r := chi.NewRouter()
	RegisterNotices(r, NoticesDeps{Store: lister})
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/notices?trust=mghat&region=%EC%84%B8%EC%A2%85%ED%8A%B9%EB%B3%84%EC%9E%90%EC%B9%98%EC%8B%9C&limit=20&page=3")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "mghat", lister.got.Trust)
	assert.Equal(t, "세종특별자치시", lister.got.Region)
	assert.Equal(t, 20, lister.got.Limit)
	assert.Equal(t, 40, lister.got.Offset)

	var body struct {
		OK    bool `json:"ok"`
		Count int  `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.OK)
	assert.Equal(t, 1, body.Count)
}

func TestNoticesWithoutStore(t *testing.T) {
	r := chi.NewRouter()
	RegisterNotices(r, NoticesDeps{})
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/notices")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
