package prompt

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/ppac/internal/core/ports"
	"go.trai.ch/ppac/internal/ui/output"
)

// NodeID is the unique identifier for the prompter Graft node.
const NodeID graft.ID = "adapter.prompt"

func init() {
	graft.Register(graft.Node[ports.Prompter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Prompter, error) {
			return New(os.Stdin, os.Stderr, WithEcho(!output.IsInteractive(os.Stdin))), nil
		},
	})
}
