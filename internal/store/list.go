package store

import (
	"context"
)

// LoadList reads a collection of T, returning an empty slice when the
// collection is absent.
func LoadList[T any](ctx context.Context, r Reader, collection string) ([]T, error) {
	var items []T
	if _, err := r.Get(ctx, collection, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// SaveList writes a collection of T. A nil slice is stored as an empty list.
func SaveList[T any](ctx context.Context, w Writer, collection string, items []T) error {
	if items == nil {
		items = []T{}
	}
	return w.Set(ctx, collection, items)
}
