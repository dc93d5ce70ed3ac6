package extract

import (
	"regexp"
	"strings"
)

// A leading "외 N" marker keeps its quantity but drops the 외.
var reLeadingEtc = regexp.MustCompile(`^외\s*(\d+)\s*`)

// SaleContent reduces the title to its residual sale description: the
// address span is sliced out by its match offsets, then the region summary
// and the building name are each removed once, unit numbers are dropped
// and the remainder is compacted. Always returns, possibly unchanged.
func (e *Extractor) SaleContent(title string) string {
	body := stripPrefix(title)
	s := body
	if m := e.matchAddress(body); m.Branch != BranchNone {
		s = strings.TrimSpace(body[:m.Start] + body[m.End:])
	}
	if region := e.ProvinceDistrict(title, true); region != "" {
		s = strings.TrimSpace(strings.Replace(s, region, "", 1))
	}
	if bld := e.BuildingName(title); bld != "" {
		s = strings.TrimSpace(strings.Replace(s, bld, "", 1))
	}
	s = strings.TrimSpace(reUnitTokens.ReplaceAllString(s, " "))
	s = reLeadingEtc.ReplaceAllString(s, "$1")
	s = strings.Join(strings.Fields(s), "")
	return strings.Trim(s, ",·/")
}
