package kyobo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/yourorg/noticefeed/internal/collect"
)

var (
	reViewArticle = regexp.MustCompile(`fnViewArticle\('(\d+)'\s*,\s*'` + bbsID + `'\)`)
	reDate        = regexp.MustCompile(`\d{4}[.\-]\d{2}[.\-]\d{2}`)
)

// parseBoard extracts notice rows from the .boardList markup. Each a.row
// holds number, status, title and registration date cells; the last .narw
// cell is the date.
func parseBoard(doc *goquery.Document, base string) []collect.Notice {
	var notices []collect.Notice
	doc.Find(".boardList .body a.row").Each(func(_ int, row *goquery.Selection) {
		onclick, _ := row.Attr("onclick")
		url := detailURL(base, onclick)
		if url == "" {
			return
		}
		n := collect.Notice{
			Title: strings.TrimSpace(row.Find(".link").First().Text()),
			URL:   url,
		}
		if no := strings.TrimSpace(row.Find(".number").First().Text()); no != "" {
			n.No, _ = strconv.Atoi(no)
		}
		if d := reDate.FindString(row.Find(".narw").Last().Text()); d != "" {
			n.PostDate = strings.ReplaceAll(d, ".", "-")
		}
		if n.Title != "" {
			notices = append(notices, n)
		}
	})
	return notices
}

// detailURL rebuilds the detail-page address from the row's onclick handler.
// The path spelling (viewAritcle) is the site's own.
func detailURL(base, onclick string) string {
	m := reViewArticle.FindStringSubmatch(onclick)
	if m == nil {
		return ""
	}
	return fmt.Sprintf("%s/front/viewAritcle.do?bbsId=%s&nttId=%s", base, bbsID, m[1])
}
