package sink

import (
	"context"

	"utm-som/internal/store"
	"utm-som/internal/utm"
)

// LedgerStore is the subset of the store used by LedgerSink.
type LedgerStore interface {
	InsertLinkRecord(ctx context.Context, record utm.Record) (store.LinkRecord, error)
}

// LedgerSink keeps a copy of every record in Postgres.
type LedgerSink struct {
	store LedgerStore
}

func NewLedgerSink(store LedgerStore) *LedgerSink {
	return &LedgerSink{store: store}
}

func (s *LedgerSink) Name() string { return "ledger" }

func (s *LedgerSink) Append(ctx context.Context, record utm.Record) error {
	_, err := s.store.InsertLinkRecord(ctx, record)
	return err
}
