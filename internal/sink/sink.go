package sink

//go:generate go run go.uber.org/mock/mockgen@latest -source=sink.go -destination=mocks_test.go -package=sink

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"utm-som/internal/utm"

	"golang.org/x/sync/errgroup"
)

// Sink appends a generated link record to some durable log.
type Sink interface {
	Name() string
	Append(ctx context.Context, record utm.Record) error
}

type multi struct {
	sinks []Sink
}

// Multi fans a record out to every sink concurrently. A failing sink does not
// stop the others; the returned error joins every failure. Nil sinks are
// skipped and Multi returns nil when nothing is left.
func Multi(sinks ...Sink) Sink {
	var live []Sink
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return &multi{sinks: live}
}

func (m *multi) Name() string { return "multi" }

func (m *multi) Append(ctx context.Context, record utm.Record) error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	for _, s := range m.sinks {
		s := s
		g.Go(func() error {
			if err := s.Append(ctx, record); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}
