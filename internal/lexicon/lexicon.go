package lexicon

import (
	"regexp"
	"strings"
)

// hy matches ASCII '-' plus the Unicode hyphen/dash glyphs that show up in
// pasted lot numbers (U+2010..U+2015, U+2212).
const hy = "[-‐‑‒–—―−]"

// Lexicon is the read-only administrative vocabulary shared by the
// extraction queries. Build it once with New and pass it around; every
// method is safe for concurrent use.
type Lexicon struct {
	sejong    map[string]struct{}
	provinces map[string]struct{}
	canonical map[string]string

	reCityDistrict *regexp.Regexp
	reRawCity      *regexp.Regexp
	reTownLot      *regexp.Regexp
	reRoadLot      *regexp.Regexp
	rePlanLot      *regexp.Regexp
	reLotHead      *regexp.Regexp
	reLotNumber    *regexp.Regexp
	reLotCont      *regexp.Regexp

	buildingSuffixes []string
}

var sejongForms = []string{"세종특별자치시", "세종시", "세종"}

// provinceForms lists every non-Sejong province/metro surface form,
// official names and the board abbreviations side by side.
var provinceForms = []string{
	"서울특별시", "서울시", "서울",
	"부산광역시", "부산시", "부산",
	"대구광역시", "대구시", "대구",
	"인천광역시", "인천시", "인천",
	"광주광역시", "광주시", "광주",
	"대전광역시", "대전시", "대전",
	"울산광역시", "울산시", "울산",
	"경기도", "경기",
	"강원특별자치도", "강원도", "강원",
	"충청북도", "충북",
	"충청남도", "충남",
	"전북특별자치도", "전라북도", "전북",
	"전라남도", "전남",
	"경상북도", "경북",
	"경상남도", "경남",
	"제주특별자치도", "제주도", "제주",
}

// canonicalNames maps abbreviated surface forms to official names.
// Anything absent canonicalizes to itself, so the mapping is total.
var canonicalNames = map[string]string{
	"서울": "서울특별시", "서울시": "서울특별시",
	"부산": "부산광역시", "부산시": "부산광역시",
	"대구": "대구광역시", "대구시": "대구광역시",
	"인천": "인천광역시", "인천시": "인천광역시",
	"광주": "광주광역시", "광주시": "광주광역시",
	"대전": "대전광역시", "대전시": "대전광역시",
	"울산": "울산광역시", "울산시": "울산광역시",
	"경기": "경기도",
	"강원": "강원특별자치도", "강원도": "강원특별자치도",
	"충북": "충청북도",
	"충남": "충청남도",
	"전라북도": "전북특별자치도", "전북": "전북특별자치도",
	"전남": "전라남도",
	"경북": "경상북도",
	"경남": "경상남도",
	"제주": "제주특별자치도", "제주도": "제주특별자치도",
	"세종": "세종특별자치시", "세종시": "세종특별자치시",
}

var buildingSuffixForms = []string{
	"타워", "팰리스", "캐슬", "캐슬플러스", "팰리움", "밸리", "스퀘어", "시티",
	"힐스", "힐스테이트", "아이파크", "자이", "더힐", "프라자", "프라임",
	"스카이", "에버빌", "해링턴타워", "해링턴", "아파트", "오피스텔",
	"연립주택", "주건축물", "몰", "빌라", "빌리지", "스포츠몰",
	"블록", "블럭", "롯트", "로트",
}

func New() *Lexicon {
	l := &Lexicon{
		sejong:           make(map[string]struct{}, len(sejongForms)),
		provinces:        make(map[string]struct{}, len(provinceForms)),
		canonical:        canonicalNames,
		buildingSuffixes: buildingSuffixForms,
	}
	for _, s := range sejongForms {
		l.sejong[s] = struct{}{}
	}
	for _, s := range provinceForms {
		l.provinces[s] = struct{}{}
	}

	// Classifiers match whole tokens. Full-token matching is what enforces
	// the whitespace-or-end boundary on 시/군/구 names: a town like 강구면
	// never yields the district-looking 강구.
	l.reCityDistrict = regexp.MustCompile(`^[가-힣]+[시군구]$`)
	l.reRawCity = regexp.MustCompile(`^[가-힣]{2,}$`)

	// Town/road/planning-district tokens, each with an optional glued lot
	// tail ("고사동408-3"). The town core tolerates digits but must contain
	// a Korean letter, so a bare number never classifies as a town.
	lot := `(?:산)?\d+(?:` + hy + `\d+)?(?:번지|일원)?`
	l.reTownLot = regexp.MustCompile(`^([0-9]*[가-힣][가-힣0-9]*[읍면동가리])(` + lot + `)?$`)
	l.reRoadLot = regexp.MustCompile(`^([가-힣0-9]+(?:대로|번길|로|길))(` + lot + `)?$`)
	l.rePlanLot = regexp.MustCompile(`^([가-힣0-9]+(?:지구|구역))(` + lot + `)?$`)

	// Lot-number list tokens: "산35", "408-3", "1026-11번지", "123 일원",
	// "408-3,410" and the comma-continued forms.
	l.reLotHead = regexp.MustCompile(`^` + lot + `(?:,\d+(?:` + hy + `\d+)?)*,?$`)
	l.reLotNumber = regexp.MustCompile(`^\d+(?:` + hy + `\d+)?(?:번지|일원)?,?$`)
	l.reLotCont = regexp.MustCompile(`^,?\d+(?:` + hy + `\d+)?(?:,\d+(?:` + hy + `\d+)?)*,?$`)
	return l
}

// Canonicalize maps an abbreviated province/metro name to its official
// form. Unknown names pass through unchanged.
func (l *Lexicon) Canonicalize(name string) string {
	if std, ok := l.canonical[name]; ok {
		return std
	}
	return name
}

func (l *Lexicon) IsSejong(tok string) bool {
	_, ok := l.sejong[tok]
	return ok
}

// IsProvince reports whether tok is a non-Sejong province/metro surface form.
func (l *Lexicon) IsProvince(tok string) bool {
	_, ok := l.provinces[tok]
	return ok
}

func (l *Lexicon) IsCityDistrict(tok string) bool {
	return l.reCityDistrict.MatchString(tok)
}

// IsRawCity matches a bare city name with no administrative suffix
// (파주, 홍성): at least two Korean letters and nothing else.
func (l *Lexicon) IsRawCity(tok string) bool {
	return l.reRawCity.MatchString(tok)
}

// CutTown splits tok into a town token and an optional glued lot tail.
func (l *Lexicon) CutTown(tok string) (unit, lot string, ok bool) {
	return cut(l.reTownLot, tok)
}

func (l *Lexicon) CutRoad(tok string) (unit, lot string, ok bool) {
	return cut(l.reRoadLot, tok)
}

func (l *Lexicon) CutPlanDistrict(tok string) (unit, lot string, ok bool) {
	return cut(l.rePlanLot, tok)
}

func cut(re *regexp.Regexp, tok string) (string, string, bool) {
	m := re.FindStringSubmatch(tok)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// IsLotHead matches the first token of a lot-number list.
func (l *Lexicon) IsLotHead(tok string) bool {
	return l.reLotHead.MatchString(tok)
}

// IsLotNumber matches a bare lot number following a standalone 산 marker.
func (l *Lexicon) IsLotNumber(tok string) bool {
	return l.reLotNumber.MatchString(tok)
}

// IsLotCont matches a continuation token of a comma-separated lot list.
func (l *Lexicon) IsLotCont(tok string) bool {
	return l.reLotCont.MatchString(tok)
}

func (l *Lexicon) IsMountainMark(tok string) bool { return tok == "산" }

func (l *Lexicon) IsLotQualifier(tok string) bool { return tok == "번지" || tok == "일원" }

// HasBuildingSuffix reports whether s ends in a known building-type suffix
// (아파트, 오피스텔, 타워, ...).
func (l *Lexicon) HasBuildingSuffix(s string) bool {
	for _, suf := range l.buildingSuffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

// IsAdministrative reports whether tok looks like an administrative unit
// rather than a proper noun: a full province/metro surface form, or any
// token ending in a city/province suffix.
func (l *Lexicon) IsAdministrative(tok string) bool {
	if l.IsProvince(tok) || l.IsSejong(tok) {
		return true
	}
	return strings.HasSuffix(tok, "시") || strings.HasSuffix(tok, "군") ||
		strings.HasSuffix(tok, "구") || strings.HasSuffix(tok, "도")
}

// SejongForms returns the Sejong surface forms.
func (l *Lexicon) SejongForms() []string { return append([]string(nil), sejongForms...) }

// ProvinceForms returns every non-Sejong province/metro surface form.
func (l *Lexicon) ProvinceForms() []string { return append([]string(nil), provinceForms...) }

// AbbreviatedForms returns every surface form the canonical table rewrites.
func (l *Lexicon) AbbreviatedForms() []string {
	out := make([]string, 0, len(l.canonical))
	for k := range l.canonical {
		out = append(out, k)
	}
	return out
}
