package catalog

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ppac/internal/core/ports"
)

// NodeID is the unique identifier for the catalog decoder Graft node.
const NodeID graft.ID = "adapter.catalog_decoder"

func init() {
	graft.Register(graft.Node[ports.CatalogDecoder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CatalogDecoder, error) {
			return NewDecoder(), nil
		},
	})
}
