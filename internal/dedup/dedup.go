// Package dedup flags repeat notices for the same extracted address. Trust
// boards re-post the same disposal several times; the earliest stored notice
// stays primary and later ones get the duplicate flag.
package dedup

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/yourorg/noticefeed/internal/events"
)

type Marker struct {
	Pub events.Publisher
	// Mark reruns duplicate flagging for one address and reports how many
	// rows changed.
	Mark func(ctx context.Context, address string) (int64, error)

	ch    chan string
	inFly sync.Map // address -> struct{}
	once  sync.Once
}

func New(capacity int, workerCount int, pub events.Publisher, mark func(ctx context.Context, address string) (int64, error)) *Marker {
	if capacity <= 0 {
		capacity = 256
	}
	if workerCount <= 0 {
		workerCount = 2
	}
	m := &Marker{Pub: pub, Mark: mark, ch: make(chan string, capacity)}
	for i := 0; i < workerCount; i++ {
		go m.worker()
	}
	return m
}

// Run consumes notice.stored events until ctx is done. Events with an empty
// address carry nothing to deduplicate and are skipped.
func (m *Marker) Run(ctx context.Context) {
	sub := m.Pub.SubscribeNoticeStored()
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-sub:
			if evt.Address == "" {
				continue
			}
			m.Enqueue(evt.Address)
		}
	}
}

func (m *Marker) Enqueue(address string) {
	if _, exists := m.inFly.LoadOrStore(address, struct{}{}); exists {
		return
	}
	select {
	case m.ch <- address:
	default:
		// drop if saturated
		m.inFly.Delete(address)
	}
}

func (m *Marker) worker() {
	for address := range m.ch {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		func() {
			defer func() {
				m.inFly.Delete(address)
				cancel()
			}()
			if m.Mark == nil {
				return
			}
			changed, err := m.Mark(ctx, address)
			if err != nil {
				log.Printf("[WARN] dedup: mark %q: %v", address, err)
				return
			}
			if changed > 0 {
				log.Printf("[INFO] dedup: address %q flagged %d notice(s)", address, changed)
			}
		}()
	}
}
