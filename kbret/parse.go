package kbret

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/yourorg/noticefeed/internal/collect"
)

var reDate = regexp.MustCompile(`\d{4}[-./]\d{2}[-./]\d{2}`)

func parseDetail(doc *goquery.Document, id int) (collect.Notice, bool) {
	title := strings.TrimSpace(doc.Find("div.board_tit strong").First().Text())
	if title == "" {
		return collect.Notice{}, false
	}
	n := collect.Notice{No: id, Title: title}
	doc.Find("div.board_tit span, div.board_info td, div.board_info span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if d := reDate.FindString(s.Text()); d != "" {
			n.PostDate = strings.NewReplacer(".", "-", "/", "-").Replace(d)
			return false
		}
		return true
	})
	return n, true
}
