package sink

import (
	"context"
	"sync"
	"time"
)

// NoticeState is the user-visible outcome of the latest dispatch.
type NoticeState string

const (
	NoticeIdle   NoticeState = "idle"
	NoticeSaving NoticeState = "saving"
	NoticeSaved  NoticeState = "saved"
	NoticeError  NoticeState = "error"
)

const (
	MessageSaved = "Registrado en Google Sheets"
	MessageError = "Error al guardar en Google Sheets"
)

// Notice is a transient flag shown next to the copy button.
type Notice struct {
	State   NoticeState `json:"state"`
	Message string      `json:"message,omitempty"`
}

// IdleNotice is what readers see once a notice has expired.
var IdleNotice = Notice{State: NoticeIdle}

// Notices stores one notice per key (the user identity). A notice set with a
// positive ttl reads as IdleNotice once the ttl has passed.
type Notices interface {
	Set(ctx context.Context, key string, notice Notice, ttl time.Duration) error
	Get(ctx context.Context, key string) (Notice, error)
}

type memoryEntry struct {
	notice  Notice
	expires time.Time
}

// MemoryNotices keeps notices in process memory.
type MemoryNotices struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryNotices() *MemoryNotices {
	return &MemoryNotices{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryNotices) Set(_ context.Context, key string, notice Notice, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{notice: notice}
	if ttl > 0 {
		entry.expires = m.now().Add(ttl)
	}
	m.entries[key] = entry
	return nil
}

func (m *MemoryNotices) Get(_ context.Context, key string) (Notice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return IdleNotice, nil
	}
	if !entry.expires.IsZero() && !m.now().Before(entry.expires) {
		delete(m.entries, key)
		return IdleNotice, nil
	}
	return entry.notice, nil
}
