package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"

	"utm-som/internal/sink"
	"utm-som/internal/store"
	"utm-som/internal/utm"
)

// RecordDispatcher hands records to the sinks without waiting for them
type RecordDispatcher interface {
	Dispatch(ctx context.Context, key string, record utm.Record) bool
	Notice(ctx context.Context, key string) (sink.Notice, error)
	Subscribe(key string) (<-chan sink.NoticeEvent, func())
}

// HistoryStore reads back the Postgres ledger
type HistoryStore interface {
	ListRecentLinkRecords(ctx context.Context, limit int) ([]store.LinkRecord, error)
}
