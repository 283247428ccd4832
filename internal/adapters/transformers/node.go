package transformers

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/morph/internal/adapters/fs"
	"go.trai.ch/morph/internal/adapters/logger"
	"go.trai.ch/morph/internal/core/ports"
)

// NodeID is the unique identifier for the transformer registry node.
const NodeID graft.ID = "adapter.transformers"

func init() {
	graft.Register(graft.Node[ports.TransformerFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, fs.WalkerNodeID},
		Run: func(ctx context.Context) (ports.TransformerFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewRegistry(log, walker), nil
		},
	})
}
