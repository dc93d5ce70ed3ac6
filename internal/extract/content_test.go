package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaleContent(t *testing.T) {
	e := newTestExtractor()
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "address building and units removed",
			title: "경기 파주 야당동 한빛마을아파트 101동 일괄매각",
			want:  "일괄매각",
		},
		{
			name:  "quantities survive",
			title: "인천 만수동 3필지 외 2개 개별매각",
			want:  "3필지외2개개별매각",
		},
		{
			name:  "leading quantity marker keeps its count",
			title: "경기 파주 야당동 한빛마을아파트 외 2개 일괄매각",
			want:  "2개일괄매각",
		},
		{
			name:  "address-only title reduces to empty",
			title: "전주시 완산구 고사동 408-3",
			want:  "",
		},
		{
			name:  "unmatched title loses only its building candidate",
			title: "국유재산 매각 안내",
			want:  "매각안내",
		},
		{
			name:  "boundary separators trimmed",
			title: "서울 강남구 역삼동 12, 강남타워, 일괄매각",
			want:  "일괄매각",
		},
		{
			name:  "empty",
			title: "",
			want:  "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, e.SaleContent(tc.title))
		})
	}
}

// Removing the three derived substrings leaves a residue with no
// whitespace runs and no separator punctuation at the boundaries.
func TestSaleContentComplement(t *testing.T) {
	e := newTestExtractor()
	titles := []string{
		"경기 파주 야당동 한빛마을아파트 101동 일괄매각",
		"인천 만수동 3필지 외 2개 개별매각",
		"세종특별자치시 반곡동 123",
		"전주시 완산구 고사동 408-3, 410 일괄매각",
	}
	for _, title := range titles {
		got := e.SaleContent(title)
		assert.NotContains(t, got, " ", "SaleContent(%q)", title)
		assert.False(t, strings.HasPrefix(got, ","), "SaleContent(%q)", title)
		assert.False(t, strings.HasSuffix(got, ","), "SaleContent(%q)", title)
		if addr := e.Address(title); addr != "" {
			assert.NotContains(t, got, addr, "address must be removed from SaleContent(%q)", title)
		}
	}
}

func TestFields(t *testing.T) {
	e := newTestExtractor()
	f := e.Fields("경기 파주 야당동 한빛마을아파트 101동 일괄매각")
	assert.Equal(t, Fields{
		Address:          "경기 파주 야당동",
		ProvinceDistrict: "경기도 파주",
		DistrictOnly:     "파주",
		Building:         "한빛마을아파트",
		SaleContent:      "일괄매각",
	}, f)
}
