package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// Text after a sale/announcement keyword is sale metadata, never a
	// building name. 매각공고 precedes the bare 공고 so the longer keyword
	// wins at the same position.
	reBuildingStop = regexp.MustCompile(
		`(?:일괄매각|개별매각|매각\s*공고|재공매|재매각|입찰공고|후\s*개별수의계약\s*공고|공고)`)

	// Unit numbers (동/층/호 with a digit or 제-prefixed alphanumeric core).
	reUnitTokens = regexp.MustCompile(
		`(?:제?[0-9A-Za-z\-]+동|제?[0-9A-Za-z\-]+층|제?[0-9A-Za-z\-]+호)`)

	reBracketAside = regexp.MustCompile(`[\[\(].*?[\]\)]`)

	// Segment separators: comma, middle dot, slash, or 외 in isolation.
	reSeparators = regexp.MustCompile(`[,·/]|(?:\s+외\s+)`)

	// Candidate tokens: contiguous alphanumeric/Korean/hyphen/middle-dot runs.
	reCandidate = regexp.MustCompile(`[가-힣A-Za-z0-9\-·]+`)

	// Pure lot-number and quantity tokens are never building names.
	reQuantity = regexp.MustCompile(
		`^(?:외\s*\d+\s*)?(?:\d+(?:-\d+)?(?:번지)?|\d+\s*개(?:\s*(?:호|호실|세대|필지))?|(?:호|호실|세대|필지)$)`)
)

const minCandidateLen = 3

// BuildingName extracts the most plausible proper-noun building name from
// the text following the address span, or "" when nothing qualifies.
func (e *Extractor) BuildingName(title string) string {
	body := stripPrefix(title)
	tail := body
	if m := e.matchAddress(body); m.Branch != BranchNone {
		tail = body[m.End:]
	}

	tail = reBracketAside.ReplaceAllString(tail, " ")
	tail = reUnitTokens.ReplaceAllString(tail, " ")
	if loc := reBuildingStop.FindStringIndex(tail); loc != nil {
		tail = tail[:loc[0]]
	}

	best := ""
	for _, part := range reSeparators.Split(tail, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pick := ""
		for _, run := range reCandidate.FindAllString(part, -1) {
			cand := strings.TrimSpace(strings.Trim(run, "-·"))
			if utf8.RuneCountInString(cand) < minCandidateLen {
				continue
			}
			if reQuantity.MatchString(cand) || e.lex.IsAdministrative(cand) {
				continue
			}
			if e.better(cand, pick) {
				pick = cand
			}
		}
		if e.better(pick, best) {
			best = pick
		}
	}
	return best
}

// better reports whether a scores strictly higher than b: a recognized
// building-type suffix beats any unsuffixed token, then length breaks ties.
func (e *Extractor) better(a, b string) bool {
	if a == "" {
		return false
	}
	if b == "" {
		return true
	}
	as, bs := e.lex.HasBuildingSuffix(a), e.lex.HasBuildingSuffix(b)
	if as != bs {
		return as
	}
	return utf8.RuneCountInString(a) > utf8.RuneCountInString(b)
}
