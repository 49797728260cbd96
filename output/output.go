// Package output persists filled documents.
package output

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Sink stores a finished document under name and returns where it went.
// A Sink either stores the whole document or nothing.
type Sink interface {
	Save(ctx context.Context, name string, b []byte) (string, error)
}

// Remover is implemented by sinks that can take back a document they saved.
type Remover interface {
	Remove(ctx context.Context, name string) error
}

// Chain saves to every sink in order and stops at the first failure. On
// failure the sinks that already saved are rolled back through Remover, so
// a failed Save leaves no copy behind. The location reported is the one
// from the first sink.
type Chain []Sink

// Save implements Sink.
func (c Chain) Save(ctx context.Context, name string, b []byte) (string, error) {
	var first string
	for i, s := range c {
		loc, err := s.Save(ctx, name, b)
		if err != nil {
			err = fmt.Errorf("sink %d: %w", i, err)
			return "", errors.Join(err, c[:i].rollback(ctx, name))
		}
		if i == 0 {
			first = loc
		}
	}
	return first, nil
}

// rollback removes name from every sink in c, last first. It runs even when
// ctx is already canceled.
func (c Chain) rollback(ctx context.Context, name string) error {
	ctx = context.WithoutCancel(ctx)
	var errs []error
	for i := len(c) - 1; i >= 0; i-- {
		r, ok := c[i].(Remover)
		if !ok {
			slog.Warn("Sink cannot roll back", "sink", i, "file", name)
			continue
		}
		if err := r.Remove(ctx, name); err != nil {
			errs = append(errs, fmt.Errorf("roll back sink %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
