package extract

import "strings"

type regionKind int

const (
	regionNone regionKind = iota
	regionProvinceDistrict
	regionSejong
	regionDistrictOnly
	regionProvinceRawCity
	regionProvinceTown
)

// regionMatch is the tagged result the two region views derive from, so
// province+district and district-only can never disagree about which rule
// fired.
type regionMatch struct {
	kind      regionKind
	province  string
	districts []string
	rawCity   string
}

// ProvinceDistrict returns the best available "province + district"
// summary for the title: canonical province plus one or two district
// tokens, the canonical Sejong name alone, a bare district sequence, or
// canonical province plus a raw city name. When fallback is set and the
// raw title matches no rule, the cascade is retried against the extracted
// address span.
func (e *Extractor) ProvinceDistrict(title string, fallback bool) string {
	m := e.matchRegionWithFallback(title, fallback)
	lex := e.lex
	switch m.kind {
	case regionProvinceDistrict:
		return lex.Canonicalize(m.province) + " " + strings.Join(m.districts, " ")
	case regionSejong:
		return lex.Canonicalize(m.province)
	case regionDistrictOnly:
		return strings.Join(m.districts, " ")
	case regionProvinceRawCity:
		return lex.Canonicalize(m.province) + " " + m.rawCity
	case regionProvinceTown:
		return lex.Canonicalize(m.province)
	}
	return ""
}

// DistrictOnly returns just the district portion of the region summary:
// the district token(s), the raw city name, or "" when the title resolves
// to a province or Sejong alone.
func (e *Extractor) DistrictOnly(title string, fallback bool) string {
	m := e.matchRegionWithFallback(title, fallback)
	switch m.kind {
	case regionProvinceDistrict, regionDistrictOnly:
		return strings.Join(m.districts, " ")
	case regionProvinceRawCity:
		return m.rawCity
	}
	return ""
}

func (e *Extractor) matchRegionWithFallback(title string, fallback bool) regionMatch {
	body := stripPrefix(title)
	m := e.matchRegion(body)
	if m.kind == regionNone && fallback {
		if addr := e.matchAddress(body); addr.Branch != BranchNone {
			m = e.matchRegion(addr.Text)
		}
	}
	return m
}

// matchRegion tries the five region rules in precedence order against an
// anchored, prefix-stripped string.
func (e *Extractor) matchRegion(body string) regionMatch {
	lex := e.lex
	toks := tokenize(body)
	if len(toks) == 0 {
		return regionMatch{}
	}
	t0 := toks[0].text

	// province + one or two district tokens
	if lex.IsProvince(t0) && len(toks) >= 2 && lex.IsCityDistrict(toks[1].text) {
		m := regionMatch{kind: regionProvinceDistrict, province: t0, districts: []string{toks[1].text}}
		if len(toks) >= 3 && lex.IsCityDistrict(toks[2].text) {
			m.districts = append(m.districts, toks[2].text)
		}
		return m
	}

	// Sejong alone; it has no district level
	if lex.IsSejong(t0) {
		return regionMatch{kind: regionSejong, province: t0}
	}

	// bare district sequence, no leading province
	if lex.IsCityDistrict(t0) {
		m := regionMatch{kind: regionDistrictOnly, districts: []string{t0}}
		if len(toks) >= 2 && lex.IsCityDistrict(toks[1].text) {
			m.districts = append(m.districts, toks[1].text)
		}
		return m
	}

	// province + raw city name, confirmed by a town token
	if lex.IsProvince(t0) && len(toks) >= 3 && lex.IsRawCity(toks[1].text) {
		if _, _, ok := lex.CutTown(toks[2].text); ok {
			return regionMatch{kind: regionProvinceRawCity, province: t0, rawCity: toks[1].text}
		}
	}

	// province directly followed by a town
	if lex.IsProvince(t0) && len(toks) >= 2 {
		if _, _, ok := lex.CutTown(toks[1].text); ok {
			return regionMatch{kind: regionProvinceTown, province: t0}
		}
	}

	return regionMatch{}
}
