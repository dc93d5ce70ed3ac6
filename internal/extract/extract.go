// Package extract derives structured fields from free-text Korean
// auction/disposal notice titles: the administrative address span, a
// province+district summary, a standalone building name and the residual
// sale description. Every query is pure and fails soft to "".
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/yourorg/noticefeed/internal/lexicon"
)

// Extractor runs the extraction queries against one shared Lexicon.
// Safe for concurrent use; each call is independent and stateless.
type Extractor struct {
	lex *lexicon.Lexicon
}

func New(lex *lexicon.Lexicon) *Extractor {
	if lex == nil {
		lex = lexicon.New()
	}
	return &Extractor{lex: lex}
}

// Fields bundles the four derived fields for one title.
type Fields struct {
	Address          string `json:"address"`
	ProvinceDistrict string `json:"province_district"`
	DistrictOnly     string `json:"district_only"`
	Building         string `json:"building"`
	SaleContent      string `json:"sale_content"`
}

func (e *Extractor) Fields(title string) Fields {
	return Fields{
		Address:          e.Address(title),
		ProvinceDistrict: e.ProvinceDistrict(title, true),
		DistrictOnly:     e.DistrictOnly(title, true),
		Building:         e.BuildingName(title),
		SaleContent:      e.SaleContent(title),
	}
}

// Leading ordinal ("1. ") and bracketed status tags ("[공매] ", "[재공매] ")
// carry no address information and are stripped before anchoring.
var rePrefix = regexp.MustCompile(`^(?:\d+\.\s*)?(?:\[[^\[\]]*\]\s*)*`)

// stripPrefix removes the leading ordinal/bracket-tag prefix and any
// surrounding whitespace, returning the anchored body.
func stripPrefix(title string) string {
	s := strings.TrimSpace(title)
	if loc := rePrefix.FindStringIndex(s); loc != nil {
		s = s[loc[1]:]
	}
	return strings.TrimSpace(s)
}

// token is a whitespace-delimited run with its byte offsets.
type token struct {
	text       string
	start, end int
}

func tokenize(s string) []token {
	var toks []token
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				toks = append(toks, token{s[start:i], start, i})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		toks = append(toks, token{s[start:], start, len(s)})
	}
	return toks
}
