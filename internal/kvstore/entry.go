package kvstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/shopcart/internal/port"
)

// Entry is a typed, JSON encoded value stored under a single key.
// Missing values read as the default produced by newDefault.
type Entry[T any] struct {
	store      port.KVStore
	key        string
	newDefault func() T
}

func NewEntry[T any](store port.KVStore, key string, newDefault func() T) *Entry[T] {
	if newDefault == nil {
		newDefault = func() T {
			var zero T
			return zero
		}
	}

	return &Entry[T]{
		store:      store,
		key:        key,
		newDefault: newDefault,
	}
}

func (e *Entry[T]) Key() string {
	return e.key
}

func (e *Entry[T]) Get(ctx context.Context) (T, error) {
	data, found, err := e.store.Get(ctx, e.key)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("store.Get[%s]: %w", e.key, err)
	}

	return e.decode(data, found)
}

// Set applies updater to the current value and writes the result back as one atomic update.
func (e *Entry[T]) Set(ctx context.Context, updater func(prev T) T) error {
	return e.Modify(ctx, func(prev T) (T, error) {
		return updater(prev), nil
	})
}

// Modify is Set with an updater that may reject the change. Nothing is written on error.
func (e *Entry[T]) Modify(ctx context.Context, updater func(prev T) (T, error)) error {
	err := e.store.Update(ctx, e.key, func(data []byte, found bool) ([]byte, error) {
		prev, err := e.decode(data, found)
		if err != nil {
			return nil, err
		}

		next, err := updater(prev)
		if err != nil {
			return nil, err
		}

		encoded, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal[%s]: %w", e.key, err)
		}

		return encoded, nil
	})
	if err != nil {
		return fmt.Errorf("store.Update[%s]: %w", e.key, err)
	}

	return nil
}

func (e *Entry[T]) decode(data []byte, found bool) (T, error) {
	value := e.newDefault()
	if !found || len(data) == 0 {
		return value, nil
	}

	if err := json.Unmarshal(data, &value); err != nil {
		var zero T
		return zero, fmt.Errorf("json.Unmarshal[%s]: %w", e.key, err)
	}

	return value, nil
}
