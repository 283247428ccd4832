// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/morph/internal/adapters/cas"
	_ "go.trai.ch/morph/internal/adapters/config"
	_ "go.trai.ch/morph/internal/adapters/fs"
	_ "go.trai.ch/morph/internal/adapters/invoker"
	_ "go.trai.ch/morph/internal/adapters/logger"
	_ "go.trai.ch/morph/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/morph/internal/adapters/transformers"
	// Register app and engine nodes.
	_ "go.trai.ch/morph/internal/app"
	_ "go.trai.ch/morph/internal/engine/scheduler"
)
