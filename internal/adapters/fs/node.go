package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ppac/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// TreeNodeID is the unique identifier for the install tree Graft node.
	TreeNodeID graft.ID = "adapter.fs.tree"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.InstallTree]{
		ID:        TreeNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.InstallTree, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewTree(walker), nil
		},
	})
}
