package resolver

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/toyz/importgen/internal/errors"
	"github.com/toyz/importgen/internal/models"
)

// Chain tries each resolver in order and returns the first success
type Chain struct {
	resolvers []Resolver
}

// NewChain creates a resolver chain
func NewChain(resolvers ...Resolver) *Chain {
	return &Chain{resolvers: resolvers}
}

// Len returns the number of resolvers in the chain
func (c *Chain) Len() int {
	return len(c.resolvers)
}

// Resolve asks each resolver in turn; when all fail the individual failures
// are returned together
func (c *Chain) Resolve(ctx context.Context, coord models.Coordinate) (string, error) {
	if len(c.resolvers) == 0 {
		return "", stderrors.New("no artifact repositories configured")
	}

	failures := errors.NewMultipleErrors()
	for _, r := range c.resolvers {
		path, err := r.Resolve(ctx, coord)
		if err == nil {
			return path, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if named, ok := r.(fmt.Stringer); ok {
			err = fmt.Errorf("%s: %w", named.String(), err)
		}
		failures.Add(err)
	}

	return "", failures
}
