package sink

import (
	"sync"
	"time"
)

// watchBuffer is how many notice changes a slow watcher may fall behind.
const watchBuffer = 4

// NoticeEvent is a notice change as it was written to the board. TTL is how
// long the notice stays visible; zero means until replaced.
type NoticeEvent struct {
	Notice Notice
	TTL    time.Duration
}

// Subscribe streams the notice changes this dispatcher makes for key. The
// stream only covers dispatches launched by this process; the board itself
// stays the source of truth across instances. Call the returned func to stop.
func (d *Dispatcher) Subscribe(key string) (<-chan NoticeEvent, func()) {
	ch := make(chan NoticeEvent, watchBuffer)

	d.watchMu.Lock()
	if d.watchers == nil {
		d.watchers = make(map[string]map[chan NoticeEvent]struct{})
	}
	if d.watchers[key] == nil {
		d.watchers[key] = make(map[chan NoticeEvent]struct{})
	}
	d.watchers[key][ch] = struct{}{}
	d.watchMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			d.watchMu.Lock()
			defer d.watchMu.Unlock()
			delete(d.watchers[key], ch)
			if len(d.watchers[key]) == 0 {
				delete(d.watchers, key)
			}
		})
	}
}

// publish never blocks. A full watcher loses its oldest event so the latest
// state always gets through.
func (d *Dispatcher) publish(key string, event NoticeEvent) {
	d.watchMu.Lock()
	defer d.watchMu.Unlock()

	for ch := range d.watchers[key] {
		select {
		case ch <- event:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- event:
		default:
		}
	}
}
