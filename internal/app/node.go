package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tape/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/tape/internal/adapters/depend"    //nolint:depguard // Wired in app layer
	"go.trai.ch/tape/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/tape/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/tape/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/tape/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/tape/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/tape/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			fs.FileSystemNodeID,
			depend.NodeID,
			telemetry.TracerNodeID,
			telemetry.SummaryNodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	spawner, err := graft.Dep[ports.Spawner](ctx)
	if err != nil {
		return nil, err
	}

	fileSystem, err := graft.Dep[ports.FileSystem](ctx)
	if err != nil {
		return nil, err
	}

	changes, err := graft.Dep[ports.ChangeDetector](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	summary, err := graft.Dep[*telemetry.Summary](ctx)
	if err != nil {
		return nil, err
	}

	newWatcher, err := graft.Dep[watcher.Factory](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, spawner, fileSystem, changes, tracer, log).
		WithSummary(summary).
		WithWatcher(newWatcher), nil
}
