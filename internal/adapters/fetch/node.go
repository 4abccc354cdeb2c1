package fetch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ppac/internal/core/ports"
)

// NodeID is the unique identifier for the fetcher provider Graft node.
const NodeID graft.ID = "adapter.fetch"

func init() {
	graft.Register(graft.Node[ports.FetcherProvider]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FetcherProvider, error) {
			return NewProvider(), nil
		},
	})
}
