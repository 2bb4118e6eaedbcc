package workspacetest

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/BruksfildServices01/service-desk/internal/collection"
)

var ErrOffline = errors.New("connection refused")

// Flaky envolve um store e falha as escritas enquanto os flags estiverem
// ligados.
type Flaky[T collection.Record] struct {
	collection.Store[T]

	FailInsert atomic.Bool
	FailUpdate atomic.Bool
	FailDelete atomic.Bool
}

func NewFlaky[T collection.Record](inner collection.Store[T]) *Flaky[T] {
	return &Flaky[T]{Store: inner}
}

func (f *Flaky[T]) Insert(ctx context.Context, rec *T) error {
	if f.FailInsert.Load() {
		return ErrOffline
	}
	return f.Store.Insert(ctx, rec)
}

func (f *Flaky[T]) Update(ctx context.Context, rec *T) error {
	if f.FailUpdate.Load() {
		return ErrOffline
	}
	return f.Store.Update(ctx, rec)
}

func (f *Flaky[T]) Delete(ctx context.Context, id uint) error {
	if f.FailDelete.Load() {
		return ErrOffline
	}
	return f.Store.Delete(ctx, id)
}
