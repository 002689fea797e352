// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/tape/internal/adapters/cas"
	_ "go.trai.ch/tape/internal/adapters/config"
	_ "go.trai.ch/tape/internal/adapters/depend"
	_ "go.trai.ch/tape/internal/adapters/fs"
	_ "go.trai.ch/tape/internal/adapters/logger"
	_ "go.trai.ch/tape/internal/adapters/shell"
	_ "go.trai.ch/tape/internal/adapters/telemetry"
	_ "go.trai.ch/tape/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/tape/internal/app"
)
