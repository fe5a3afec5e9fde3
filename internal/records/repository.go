package records

import (
	"context"
	"log/slog"

	"github.com/JaimeStill/portfolio-admin/pkg/client"
	"github.com/JaimeStill/portfolio-admin/pkg/form"
)

// Repository reads and writes one record type through the API. D is the
// editable draft; body converts a draft into the request payload.
type Repository[T any, D form.Draft] struct {
	res    *client.Resource[T]
	body   func(D) any
	list   func(ctx context.Context) ([]T, error)
	logger *slog.Logger
}

// NewRepository binds a Repository to endpoint.
func NewRepository[T any, D form.Draft](c *client.Client, endpoint client.Endpoint, body func(D) any, logger *slog.Logger) *Repository[T, D] {
	r := &Repository[T, D]{
		res:    client.NewResource[T](c, endpoint),
		body:   body,
		logger: logger.With("endpoint", string(endpoint)),
	}
	r.list = r.res.List
	return r
}

// WithList replaces the collection loader for endpoints whose data member
// is not a flat array.
func (r *Repository[T, D]) WithList(fn func(ctx context.Context, res *client.Resource[T]) ([]T, error)) *Repository[T, D] {
	r.list = func(ctx context.Context) ([]T, error) { return fn(ctx, r.res) }
	return r
}

// List returns every record of the collection.
func (r *Repository[T, D]) List(ctx context.Context) ([]T, error) {
	return r.list(ctx)
}

// Find fetches the record with id.
func (r *Repository[T, D]) Find(ctx context.Context, id string) (*T, error) {
	return r.res.Find(ctx, id)
}

// Create writes draft as a new record.
func (r *Repository[T, D]) Create(ctx context.Context, draft D) error {
	if _, err := r.res.Create(ctx, r.body(draft)); err != nil {
		return err
	}
	r.logger.Info("record created")
	return nil
}

// Update replaces the record with id using draft.
func (r *Repository[T, D]) Update(ctx context.Context, id string, draft D) error {
	if _, err := r.res.Update(ctx, id, r.body(draft)); err != nil {
		return err
	}
	r.logger.Info("record updated", "id", id)
	return nil
}

// Delete removes the record with id.
func (r *Repository[T, D]) Delete(ctx context.Context, id string) error {
	if err := r.res.Delete(ctx, id); err != nil {
		return err
	}
	r.logger.Info("record deleted", "id", id)
	return nil
}
