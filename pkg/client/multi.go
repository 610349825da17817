package client

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/robert-malhotra/go-reddit-search/pkg/search"
)

// SearchAll runs one search per expression concurrently and returns the
// results in input order. Each search stops after maxPerQuery posts when
// maxPerQuery > 0. The first failure cancels the remaining searches.
func (c *Client) SearchAll(ctx context.Context, exprs []search.Node, params SearchParams, maxPerQuery int) ([][]*Post, error) {
	queries := make([]string, len(exprs))
	for i, expr := range exprs {
		q, err := c.compiler.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("predicate %d: %w", i, err)
		}
		queries[i] = q
	}

	results := make([][]*Post, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, q := range queries {
		g.Go(func() error {
			posts, err := Collect(c.SearchQuery(ctx, q, params), maxPerQuery)
			if err != nil {
				return fmt.Errorf("predicate %d: %w", i, err)
			}
			results[i] = posts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
