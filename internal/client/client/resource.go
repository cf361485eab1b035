package client

import (
	"context"
	"net/http"
	"strconv"
)

// Resource is the CRUD surface of one entity kind.
type Resource[T any] struct {
	c    *HTTPClient
	path string
}

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if _, err := r.c.do(ctx, http.MethodGet, r.path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns ErrNotFound when id does not exist.
func (r *Resource[T]) Get(ctx context.Context, id uint64) (*T, error) {
	var out T
	if _, err := r.c.do(ctx, http.MethodGet, r.itemPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Create(ctx context.Context, v T) error {
	_, err := r.c.do(ctx, http.MethodPost, r.path, v, nil)
	return err
}

func (r *Resource[T]) Update(ctx context.Context, v T) error {
	_, err := r.c.do(ctx, http.MethodPut, r.path, v, nil)
	return err
}

func (r *Resource[T]) Delete(ctx context.Context, id uint64) error {
	_, err := r.c.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
	return err
}

func (r *Resource[T]) itemPath(id uint64) string {
	return r.path + "/" + strconv.FormatUint(id, 10)
}
