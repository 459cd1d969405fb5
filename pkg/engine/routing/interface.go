package routing

import (
	"context"

	da "github.com/ondravit/VeloPath/pkg/datastructure"
)

type Router interface {
	// ShortestPath. optimal path from s to t. an unreachable t gives an empty path and a nil error.
	ShortestPath(ctx context.Context, s, t da.Index) (*Path, error)
	Name() string
}
