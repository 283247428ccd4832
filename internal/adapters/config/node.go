package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/morph/internal/adapters/fs"
	"go.trai.ch/morph/internal/adapters/logger"
	"go.trai.ch/morph/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the pipeline loader node.
	NodeID graft.ID = "adapter.config_loader"
	// SettingsNodeID is the unique identifier for the runtime settings node.
	SettingsNodeID graft.ID = "adapter.config.settings"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.ResolverNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			resolver, err := graft.Dep[ports.InputResolver](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(resolver, log), nil
		},
	})

	graft.Register(graft.Node[*Settings]{
		ID:        SettingsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Settings, error) {
			cwd, err := workingDir()
			if err != nil {
				return nil, err
			}
			return LoadSettings(cwd)
		},
	})
}
