package extract

import "strings"

// Branch identifies which address grammar matched. The branches are tried
// in declaration order and the first match wins, so at most one applies to
// any title.
type Branch int

const (
	BranchNone Branch = iota
	// BranchSejong: the single-tier special city, which has no
	// city/county/district level under it.
	BranchSejong
	// BranchGeneral: province/metro followed by one or more
	// city/county/district tokens.
	BranchGeneral
	// BranchDistrictOnly: the title omits the province and opens with
	// city/county/district tokens.
	BranchDistrictOnly
	// BranchProvinceRawCityTown: province followed by a bare city name with
	// no administrative suffix, confirmed by at least one town token.
	BranchProvinceRawCityTown
	// BranchProvinceTown: province followed directly by town tokens.
	BranchProvinceTown
)

func (b Branch) String() string {
	switch b {
	case BranchSejong:
		return "sejong"
	case BranchGeneral:
		return "general"
	case BranchDistrictOnly:
		return "district-only"
	case BranchProvinceRawCityTown:
		return "province-raw-city-town"
	case BranchProvinceTown:
		return "province-town"
	}
	return "none"
}

// addrMatch is an address span with byte offsets into the prefix-stripped
// title. Downstream removal slices the span out instead of re-searching the
// text, so a lot number that repeats later in the title cannot be hit by
// mistake.
type addrMatch struct {
	Text       string
	Start, End int
	Branch     Branch
}

// Address returns the administrative-to-lot-number span anchored at the
// start of the prefix-stripped title, or "" when no branch matches.
func (e *Extractor) Address(title string) string {
	return e.matchAddress(stripPrefix(title)).Text
}

// AddressBranch reports which grammar branch recognized the title.
func (e *Extractor) AddressBranch(title string) Branch {
	return e.matchAddress(stripPrefix(title)).Branch
}

func (e *Extractor) matchAddress(body string) addrMatch {
	toks := tokenize(body)
	if len(toks) == 0 {
		return addrMatch{}
	}
	p := &addrParser{e: e, toks: toks}
	for _, try := range []struct {
		branch Branch
		parse  func() (int, bool)
	}{
		{BranchSejong, p.sejong},
		{BranchGeneral, p.general},
		{BranchDistrictOnly, p.districtOnly},
		{BranchProvinceRawCityTown, p.provinceRawCityTown},
		{BranchProvinceTown, p.provinceTown},
	} {
		if end, ok := try.parse(); ok {
			last := toks[end-1]
			stop := last.end
			// a trailing comma on the last lot token belongs to the
			// remainder, not the address
			if strings.HasSuffix(last.text, ",") {
				stop--
			}
			return addrMatch{
				Text:   body[toks[0].start:stop],
				Start:  toks[0].start,
				End:    stop,
				Branch: try.branch,
			}
		}
	}
	return addrMatch{}
}

// addrParser parses the five branches over the title's tokens. Token-level
// classification enforces the whitespace-or-end boundary the grammar
// requires on city/county/district names.
type addrParser struct {
	e    *Extractor
	toks []token
}

func (p *addrParser) sejong() (int, bool) {
	if !p.e.lex.IsSejong(p.toks[0].text) {
		return 0, false
	}
	return p.tail(1, 0)
}

func (p *addrParser) general() (int, bool) {
	if !p.e.lex.IsProvince(p.toks[0].text) {
		return 0, false
	}
	i := 1
	for i < len(p.toks) && p.e.lex.IsCityDistrict(p.toks[i].text) {
		i++
	}
	if i == 1 {
		return 0, false
	}
	return p.tail(i, 0)
}

func (p *addrParser) districtOnly() (int, bool) {
	i := 0
	for i < len(p.toks) && p.e.lex.IsCityDistrict(p.toks[i].text) {
		i++
	}
	if i == 0 {
		return 0, false
	}
	return p.tail(i, 0)
}

func (p *addrParser) provinceRawCityTown() (int, bool) {
	if len(p.toks) < 3 || !p.e.lex.IsProvince(p.toks[0].text) || !p.e.lex.IsRawCity(p.toks[1].text) {
		return 0, false
	}
	return p.tail(2, 1)
}

func (p *addrParser) provinceTown() (int, bool) {
	if !p.e.lex.IsProvince(p.toks[0].text) {
		return 0, false
	}
	return p.tail(1, 1)
}

// tail consumes the shared optional suffix of every branch: up to three
// town tokens (at least minTowns), an optional planning district, an
// optional road and an optional lot-number list. A lot glued onto a unit
// token ("고사동408-3") ends the unit sequence and continues as a lot list.
func (p *addrParser) tail(i, minTowns int) (int, bool) {
	lex := p.e.lex
	j := i
	glued := false
	towns := 0
	for towns < 3 && j < len(p.toks) {
		_, lot, ok := lex.CutTown(p.toks[j].text)
		if !ok {
			break
		}
		j++
		towns++
		if lot != "" {
			glued = true
			break
		}
	}
	if towns < minTowns {
		return 0, false
	}
	if !glued && j < len(p.toks) {
		if _, lot, ok := lex.CutPlanDistrict(p.toks[j].text); ok {
			j++
			glued = lot != ""
		}
	}
	if !glued && j < len(p.toks) {
		if _, lot, ok := lex.CutRoad(p.toks[j].text); ok {
			j++
			glued = lot != ""
		}
	}
	if glued {
		return p.lotConts(j), true
	}
	return p.lots(j), true
}

// lots consumes an optional lot-number list starting at i: an optional
// standalone 산 marker, the first lot number, an optional detached
// 번지/일원 qualifier and comma-separated continuations.
func (p *addrParser) lots(i int) int {
	lex := p.e.lex
	j := i
	switch {
	case j+1 < len(p.toks) && lex.IsMountainMark(p.toks[j].text) && lex.IsLotNumber(p.toks[j+1].text):
		j += 2
	case j < len(p.toks) && lex.IsLotHead(p.toks[j].text):
		j++
	default:
		return i
	}
	if j < len(p.toks) && lex.IsLotQualifier(p.toks[j].text) {
		j++
	}
	return p.lotConts(j)
}

func (p *addrParser) lotConts(i int) int {
	lex := p.e.lex
	j := i
	for j < len(p.toks) {
		cur := p.toks[j].text
		// a detached comma joins too: "408-3 , 410"
		if cur == "," && j+1 < len(p.toks) && lex.IsLotCont(p.toks[j+1].text) {
			j += 2
			continue
		}
		prev := p.toks[j-1].text
		joined := strings.HasSuffix(prev, ",") || strings.HasPrefix(cur, ",")
		if !joined || !lex.IsLotCont(cur) {
			break
		}
		j++
	}
	return j
}
