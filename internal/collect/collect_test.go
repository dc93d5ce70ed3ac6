package collect

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/noticefeed/internal/events"
	"github.com/yourorg/noticefeed/internal/store"
)

type fakeSource struct {
	name  string
	pages map[int][]Notice
	errs  map[int]error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(_ context.Context, page int) ([]Notice, error) {
	if err := f.errs[page]; err != nil {
		return nil, err
	}
	return f.pages[page], nil
}

type memStore struct {
	mu      sync.Mutex
	notices map[string]store.NoticeInput
}

func newMemStore() *memStore { return &memStore{notices: map[string]store.NoticeInput{}} }

func (m *memStore) HasURL(_ context.Context, url string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.notices[url]
	return ok, nil
}

func (m *memStore) UpsertNotice(_ context.Context, in store.NoticeInput) (store.UpsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, existed := m.notices[in.URL]
	m.notices[in.URL] = in
	return store.UpsertResult{NoticeID: in.URL, Inserted: !existed}, nil
}

type memSeen struct {
	mu         sync.Mutex
	members    map[string]map[string]bool
	checkpoint map[string]int
}

func newMemSeen() *memSeen {
	return &memSeen{members: map[string]map[string]bool{}, checkpoint: map[string]int{}}
}

func (m *memSeen) SAdd(_ context.Context, key, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.members[key] == nil {
		m.members[key] = map[string]bool{}
	}
	m.members[key][member] = true
	return nil
}

func (m *memSeen) SIsMember(_ context.Context, key, member string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.members[key][member], nil
}

func (m *memSeen) SetCheckpoint(_ context.Context, source string, page int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkpoint[source] = page
	return nil
}

func (m *memSeen) Checkpoint(_ context.Context, source string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checkpoint[source], nil
}

func TestRunOnceStoresExtractedFields(t *testing.T) {
	src := &fakeSource{
		name: "mghat",
		pages: map[int][]Notice{
			1: {
				{No: 12, Title: "[공매] 전주시 완산구 고사동 408-3 일괄매각 공고", PostDate: "2024-05-02", URL: "https://mghat.com/b/12"},
				{No: 11, Title: "수원시 권선구 고색동 오피스텔 公開매각", PostDate: "2024-05-01", URL: "https://mghat.com/b/11"},
			},
		},
	}
	st := newMemStore()
	j := &Job{
		Source: src,
		Store:  st,
		Config: Config{StartPage: 1, EndPage: 1, RatePerSecond: 1000},
	}
	require.NoError(t, j.RunOnce(context.Background()))

	require.Len(t, st.notices, 2)
	n := st.notices["https://mghat.com/b/12"]
	assert.Equal(t, "mghat", n.Trust)
	assert.Equal(t, 12, n.BoardNo)
	assert.Equal(t, "전주시 완산구 고사동 408-3", n.Address)
	assert.Equal(t, "전주시 완산구", n.ProvinceDistrict)
	assert.False(t, n.Officetel)

	o := st.notices["https://mghat.com/b/11"]
	assert.True(t, o.Officetel)
}

func TestRunOnceSkipsSeenAndStoredURLs(t *testing.T) {
	src := &fakeSource{
		name: "mghat",
		pages: map[int][]Notice{
			1: {
				{No: 3, Title: "인천시 남동구 만수동 3필지 외 2개 개별 매각", URL: "https://mghat.com/b/3"},
				{No: 2, Title: "세종특별자치시 반곡동 123 일괄매각", URL: "https://mghat.com/b/2"},
				{No: 1, Title: "서울 강남구 역삼동 12 매각공고", URL: "https://mghat.com/b/1"},
			},
		},
	}
	st := newMemStore()
	st.notices["https://mghat.com/b/1"] = store.NoticeInput{URL: "https://mghat.com/b/1"}
	seen := newMemSeen()
	require.NoError(t, seen.SAdd(context.Background(), "crawl:seen:mghat", "https://mghat.com/b/2"))

	j := &Job{
		Source: src,
		Store:  st,
		Seen:   seen,
		Config: Config{StartPage: 1, EndPage: 1, RatePerSecond: 1000},
	}
	require.NoError(t, j.RunOnce(context.Background()))

	require.Len(t, st.notices, 2)
	_, storedNew := st.notices["https://mghat.com/b/3"]
	assert.True(t, storedNew)
	// the already-stored URL is backfilled into the seen set
	ok, _ := seen.SIsMember(context.Background(), "crawl:seen:mghat", "https://mghat.com/b/1")
	assert.True(t, ok)
	assert.Equal(t, 1, seen.checkpoint["mghat"])
}

func TestRunOnceSkipsFailingPage(t *testing.T) {
	src := &fakeSource{
		name: "kbret",
		pages: map[int][]Notice{
			2: {{No: 2, Title: "대전 유성구 봉명동 555-1 공매", URL: "https://kbret.co.kr/auction/2"}},
		},
		errs: map[int]error{1: errors.New("boom")},
	}
	st := newMemStore()
	j := &Job{
		Source: src,
		Store:  st,
		Config: Config{StartPage: 1, EndPage: 2, RatePerSecond: 1000},
	}
	require.NoError(t, j.RunOnce(context.Background()))
	assert.Len(t, st.notices, 1)
}

func TestRunOnceResumesFromCheckpoint(t *testing.T) {
	src := &fakeSource{
		name: "mghat",
		pages: map[int][]Notice{
			1: {{No: 1, Title: "부산 해운대구 우동 100", URL: "https://mghat.com/b/old"}},
			3: {{No: 3, Title: "부산 해운대구 우동 300", URL: "https://mghat.com/b/new"}},
		},
	}
	st := newMemStore()
	seen := newMemSeen()
	require.NoError(t, seen.SetCheckpoint(context.Background(), "mghat", 3))

	j := &Job{
		Source: src,
		Store:  st,
		Seen:   seen,
		Config: Config{StartPage: 1, EndPage: 3, Resume: true, RatePerSecond: 1000},
	}
	require.NoError(t, j.RunOnce(context.Background()))

	_, gotOld := st.notices["https://mghat.com/b/old"]
	_, gotNew := st.notices["https://mghat.com/b/new"]
	assert.False(t, gotOld)
	assert.True(t, gotNew)
}

func TestRunOncePublishesStoredEvents(t *testing.T) {
	src := &fakeSource{
		name: "mghat",
		pages: map[int][]Notice{
			1: {{No: 7, Title: "세종특별자치시 집현동 12-1 일괄매각", URL: "https://mghat.com/b/7"}},
		},
	}
	pub := events.NewInMemory(4)
	j := &Job{
		Source: src,
		Store:  newMemStore(),
		Pub:    pub,
		Config: Config{StartPage: 1, EndPage: 1, RatePerSecond: 1000},
	}
	require.NoError(t, j.RunOnce(context.Background()))

	select {
	case evt := <-pub.SubscribeNoticeStored():
		assert.Equal(t, "https://mghat.com/b/7", evt.URL)
		assert.Equal(t, "세종특별자치시 집현동 12-1", evt.Address)
	case <-time.After(time.Second):
		t.Fatal("no notice.stored event")
	}
}
