package invoker

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/morph/internal/adapters/cas"
	"go.trai.ch/morph/internal/adapters/config"
	"go.trai.ch/morph/internal/adapters/fs"
	"go.trai.ch/morph/internal/adapters/logger"
	"go.trai.ch/morph/internal/adapters/telemetry/progrock"
	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/morph/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the executor node.
	NodeID graft.ID = "adapter.invoker"
	// RegistryNodeID is the unique identifier for the metrics registry node.
	RegistryNodeID graft.ID = "adapter.invoker.registry"
)

func init() {
	graft.Register(graft.Node[*prometheus.Registry]{
		ID:        RegistryNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*prometheus.Registry, error) {
			return prometheus.NewRegistry(), nil
		},
	})

	graft.Register(graft.Node[ports.TransformExecutor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.HasherNodeID,
			fs.VerifierNodeID,
			cas.NodeID,
			config.SettingsNodeID,
			progrock.NodeID,
			logger.NodeID,
			RegistryNodeID,
		},
		Run: func(ctx context.Context) (ports.TransformExecutor, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			verifier, err := graft.Dep[ports.Verifier](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.ResultStore](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			registry, err := graft.Dep[*prometheus.Registry](ctx)
			if err != nil {
				return nil, err
			}

			return NewExecutor(
				hasher,
				store,
				verifier,
				telemetry,
				log,
				domain.WorkspacesPath(settings.CacheDir),
				WithMemoCapacity(settings.MemoCapacity),
				WithMetrics(NewMetrics(registry)),
			)
		},
	})
}
