package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/morph/internal/adapters/config"
	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/morph/internal/core/ports"
)

// NodeID is the unique identifier for the result store node.
const NodeID graft.ID = "adapter.result_store"

func init() {
	graft.Register(graft.Node[ports.ResultStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.ResultStore, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(domain.StorePath(settings.CacheDir))
		},
	})
}
