package mghat

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/yourorg/noticefeed/internal/collect"
)

var (
	reDate       = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	reRowNo      = regexp.MustCompile(`^\d+$`)
	reDetailHref = regexp.MustCompile(`view\.do|seq=|idx=`)
)

// parseBoard extracts notice rows from a board list page. The board renders
// a .board-lst table; when that structure is missing (mobile variant, markup
// changes) it falls back to scanning every detail-link anchor on the page.
func parseBoard(doc *goquery.Document, base *url.URL) []collect.Notice {
	var notices []collect.Notice
	doc.Find(".board-lst table tbody tr").Each(func(_ int, row *goquery.Selection) {
		a := row.Find("td.tit a[href]").First()
		href, ok := a.Attr("href")
		if !ok || !reDetailHref.MatchString(href) {
			return
		}
		n := collect.Notice{
			Title: strings.TrimSpace(a.Text()),
			URL:   absoluteURL(base, href),
		}
		row.Find("td.txt-gray").EachWithBreak(func(_ int, td *goquery.Selection) bool {
			if d := reDate.FindString(td.Text()); d != "" {
				n.PostDate = d
				return false
			}
			return true
		})
		row.Find("td").EachWithBreak(func(_ int, td *goquery.Selection) bool {
			txt := strings.TrimSpace(td.Text())
			if reRowNo.MatchString(txt) {
				n.No, _ = strconv.Atoi(txt)
				return false
			}
			return true
		})
		if n.Title != "" && n.URL != "" {
			notices = append(notices, n)
		}
	})
	if len(notices) > 0 {
		return notices
	}
	// fallback: anchors that look like detail links
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !reDetailHref.MatchString(href) {
			return
		}
		title := strings.TrimSpace(a.Text())
		if title == "" {
			return
		}
		notices = append(notices, collect.Notice{
			Title: title,
			URL:   absoluteURL(base, href),
		})
	})
	return notices
}

func absoluteURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
