package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildingName(t *testing.T) {
	e := newTestExtractor()
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "apartment after address",
			title: "경기 파주 야당동 한빛마을아파트 101동 일괄매각",
			want:  "한빛마을아파트",
		},
		{
			name:  "no qualifying candidate among quantities",
			title: "인천 만수동 3필지 외 2개 개별매각",
			want:  "",
		},
		{
			name:  "officetel name",
			title: "서울특별시 강남구 역삼동 825-22 강남센트럴오피스텔 재공매",
			want:  "강남센트럴오피스텔",
		},
		{
			name:  "bracketed aside removed",
			title: "서울 강남구 역삼동 123 (1층 상가) 강남타워 일괄매각",
			want:  "강남타워",
		},
		{
			name:  "unit numbers never win",
			title: "경기도 성남시 분당구 정자동 178-1 제101동 802호 개별매각",
			want:  "",
		},
		{
			name:  "text after stop keyword ignored",
			title: "서울 강남구 역삼동 12 매각공고 한빛아파트",
			want:  "",
		},
		{
			name:  "leftover administrative token excluded",
			title: "인천 남동구 만수동 123 외 인천광역시 소재 2건 일괄매각",
			want:  "",
		},
		{
			name:  "separator splits candidates",
			title: "부산 해운대구 우동 1407 센텀스카이 / 마린시티 개별매각",
			want:  "센텀스카이",
		},
		{
			name:  "short fragments dropped",
			title: "서울 강남구 역삼동 12 A동 B동 일괄매각",
			want:  "",
		},
		{
			name:  "empty title",
			title: "",
			want:  "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, e.BuildingName(tc.title))
		})
	}
}

// A suffix-confirmed name always beats a longer unconfirmed token; length
// only breaks ties between equals.
func TestBuildingScorePrefersKnownSuffix(t *testing.T) {
	e := newTestExtractor()
	got := e.BuildingName("서울 강남구 역삼동 1 코리아나중앙센터 강남타워 일괄매각")
	assert.Equal(t, "강남타워", got)

	// among unconfirmed tokens the longer one wins
	got = e.BuildingName("서울 강남구 역삼동 1 코리아나중앙센터 신관 일괄매각")
	assert.Equal(t, "코리아나중앙센터", got)
}

// Titles that put a status tag before the address still search only the
// text after the address span.
func TestBuildingSearchesAfterAddress(t *testing.T) {
	e := newTestExtractor()
	got := e.BuildingName("[공매] 세종특별자치시 반곡동 123 수루배마을아파트 매각공고")
	assert.Equal(t, "수루배마을아파트", got)
}
