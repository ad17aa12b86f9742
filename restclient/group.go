package restclient

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// GroupRequest pairs a verb with its request for batch execution.
type GroupRequest struct {
	Method  string
	Request *Request
}

// DoGroup runs a batch of requests concurrently, at most limit at a time
// (limit <= 0 means no cap). Results are returned in input order. A
// construction-time failure on any request cancels the remaining ones and is
// returned as the group error; transport failures stay on the individual
// RawResponse values as usual.
func (c *Client) DoGroup(ctx context.Context, limit int, reqs []GroupRequest) ([]*RawResponse, error) {
	results := make([]*RawResponse, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, gr := range reqs {
		g.Go(func() error {
			raw, err := c.Do(ctx, gr.Method, gr.Request)
			if err != nil {
				return err
			}
			results[i] = raw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
