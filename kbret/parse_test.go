package kbret

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detailPage = `<!DOCTYPE html>
<html><body>
<div class="board_tit">
  <strong>1. 인천시 남동구 만수동 3필지 외 2개 개별 매각</strong>
  <span>등록일 2024.03.15</span>
</div>
<div class="board_cont">공매 공고문 첨부</div>
</body></html>`

func TestParseDetail(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(detailPage))
	require.NoError(t, err)

	n, ok := parseDetail(doc, 412)
	require.True(t, ok)
	assert.Equal(t, 412, n.No)
	assert.Equal(t, "1. 인천시 남동구 만수동 3필지 외 2개 개별 매각", n.Title)
	assert.Equal(t, "2024-03-15", n.PostDate)
}

func TestParseDetailMissing(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body><h1>404</h1></body></html>`))
	require.NoError(t, err)

	_, ok := parseDetail(doc, 1)
	assert.False(t, ok)
}
