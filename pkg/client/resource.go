package client

import (
	"context"
	"fmt"
	"net/http"
)

// Resource is a typed view over one collection endpoint.
type Resource[T any] struct {
	client   *Client
	endpoint Endpoint
}

// NewResource binds a Resource to endpoint.
func NewResource[T any](c *Client, endpoint Endpoint) *Resource[T] {
	return &Resource[T]{client: c, endpoint: endpoint}
}

// Endpoint returns the collection endpoint.
func (r *Resource[T]) Endpoint() Endpoint {
	return r.endpoint
}

// List fetches the collection into a slice.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	p, err := r.client.Do(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		return nil, err
	}

	var items []T
	if err := p.Decode(&items); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.endpoint, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// ListInto fetches the collection and decodes the data member into v.
// Used by endpoints whose data is not a flat array.
func (r *Resource[T]) ListInto(ctx context.Context, v any) error {
	p, err := r.client.Do(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		return err
	}
	if err := p.Decode(v); err != nil {
		return fmt.Errorf("list %s: %w", r.endpoint, err)
	}
	return nil
}

// Find fetches one member by id.
func (r *Resource[T]) Find(ctx context.Context, id string) (*T, error) {
	return r.one(ctx, http.MethodGet, r.endpoint.ID(id), nil)
}

// Create posts body to the collection and returns the created member.
func (r *Resource[T]) Create(ctx context.Context, body any) (*T, error) {
	return r.one(ctx, http.MethodPost, r.endpoint, body)
}

// Update overwrites the member id with body.
func (r *Resource[T]) Update(ctx context.Context, id string, body any) (*T, error) {
	return r.one(ctx, http.MethodPut, r.endpoint.ID(id), body)
}

// Delete removes the member id.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	_, err := r.client.Do(ctx, http.MethodDelete, r.endpoint.ID(id), nil)
	return err
}

func (r *Resource[T]) one(ctx context.Context, method string, endpoint Endpoint, body any) (*T, error) {
	p, err := r.client.Do(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}

	if !p.HasData() {
		return nil, nil
	}

	var item T
	if err := p.Decode(&item); err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	return &item, nil
}
