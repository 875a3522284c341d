package query

import "context"

// Mutation is a write that is never cached. A successful run invalidates the
// keys returned by its invalidates function.
type Mutation[In, Out any] struct {
	client      *Client
	run         func(ctx context.Context, in In) (Out, error)
	invalidates func(in In, out Out) []string
}

func NewMutation[In, Out any](c *Client, run func(ctx context.Context, in In) (Out, error), invalidates func(in In, out Out) []string) *Mutation[In, Out] {
	return &Mutation[In, Out]{client: c, run: run, invalidates: invalidates}
}

// Execute runs the write once. Cache invalidation failures are logged, not
// returned.
func (m *Mutation[In, Out]) Execute(ctx context.Context, in In) (Out, error) {
	out, err := m.run(ctx, in)
	if err != nil {
		return out, err
	}
	if m.invalidates == nil {
		return out, nil
	}
	if keys := m.invalidates(in, out); len(keys) > 0 {
		if err := m.client.Invalidate(ctx, keys...); err != nil {
			m.client.logger.WithError(err).WithField("keys", keys).Warn("invalidate after mutation failed")
		}
	}
	return out, nil
}
