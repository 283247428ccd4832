package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/morph/internal/adapters/invoker"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/morph/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/morph/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/morph/internal/adapters/transformers"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/morph/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the scheduler Graft node.
	NodeID graft.ID = "engine.scheduler"
	// PlannerNodeID is the unique identifier for the planner Graft node.
	PlannerNodeID graft.ID = "engine.planner"
)

func init() {
	graft.Register(graft.Node[*Planner]{
		ID:        PlannerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			transformers.NodeID,
			invoker.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Planner, error) {
			factory, err := graft.Dep[ports.TransformerFactory](ctx)
			if err != nil {
				return nil, err
			}

			executor, err := graft.Dep[ports.TransformExecutor](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewPlanner(factory, executor, log), nil
		},
	})

	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			PlannerNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			planner, err := graft.Dep[*Planner](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(planner, log, telemetry), nil
		},
	})
}
