package notify

import (
	"context"
	"sync"

	"storefront/internal/domain"
)

// Feed keeps the most recent notices in memory for polling clients.
// Sequence numbers start at 1 and never repeat.
type Feed struct {
	mu    sync.Mutex
	items []domain.Notice
	size  int
	seq   int64
}

func NewFeed(size int) *Feed {
	if size <= 0 {
		size = 50
	}
	return &Feed{size: size}
}

func (f *Feed) Notify(_ context.Context, n domain.Notice) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	n.Seq = f.seq
	f.items = append(f.items, n)
	if over := len(f.items) - f.size; over > 0 {
		f.items = append(f.items[:0:0], f.items[over:]...)
	}
}

// Since returns retained notices with Seq greater than after, oldest first.
func (f *Feed) Since(after int64) []domain.Notice {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []domain.Notice{}
	for _, n := range f.items {
		if n.Seq > after {
			out = append(out, n)
		}
	}
	return out
}
