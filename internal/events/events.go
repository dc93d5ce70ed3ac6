package events

import (
	"context"
)

type NoticeStored struct {
	URL     string
	Address string
}

type Publisher interface {
	PublishNoticeStored(ctx context.Context, evt NoticeStored)
	SubscribeNoticeStored() <-chan NoticeStored
}

type inMemory struct{ ch chan NoticeStored }

func NewInMemory(buffer int) Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &inMemory{ch: make(chan NoticeStored, buffer)}
}

func (m *inMemory) PublishNoticeStored(_ context.Context, evt NoticeStored) {
	select {
	case m.ch <- evt:
	default:
	}
}

func (m *inMemory) SubscribeNoticeStored() <-chan NoticeStored { return m.ch }
