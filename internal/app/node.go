package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ppac/internal/adapters/archive"            //nolint:depguard // Wired in app layer
	"go.trai.ch/ppac/internal/adapters/catalog"            //nolint:depguard // Wired in app layer
	"go.trai.ch/ppac/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/ppac/internal/adapters/fetch"              //nolint:depguard // Wired in app layer
	"go.trai.ch/ppac/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/ppac/internal/adapters/ledger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/ppac/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/ppac/internal/adapters/metrics"            //nolint:depguard // Wired in app layer
	"go.trai.ch/ppac/internal/adapters/prompt"             //nolint:depguard // Wired in app layer
	"go.trai.ch/ppac/internal/adapters/telemetry"          //nolint:depguard // Wired in app layer
	"go.trai.ch/ppac/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/ppac/internal/core/ports"
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
			logger.NodeID,
			config.SettingsNodeID,
			config.RepositoriesNodeID,
			fetch.NodeID,
			catalog.NodeID,
			archive.NodeID,
			fs.TreeNodeID,
			ledger.NodeID,
			prompt.NodeID,
			progrock.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
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
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[ports.SettingsLoader](ctx)
	if err != nil {
		return nil, err
	}

	repositories, err := graft.Dep[ports.RepositoryLoader](ctx)
	if err != nil {
		return nil, err
	}

	fetchers, err := graft.Dep[ports.FetcherProvider](ctx)
	if err != nil {
		return nil, err
	}

	decoder, err := graft.Dep[ports.CatalogDecoder](ctx)
	if err != nil {
		return nil, err
	}

	extractor, err := graft.Dep[ports.Extractor](ctx)
	if err != nil {
		return nil, err
	}

	tree, err := graft.Dep[ports.InstallTree](ctx)
	if err != nil {
		return nil, err
	}

	ledgers, err := graft.Dep[ports.LedgerStore](ctx)
	if err != nil {
		return nil, err
	}

	prompter, err := graft.Dep[ports.Prompter](ctx)
	if err != nil {
		return nil, err
	}

	recorder, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	counters, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}

	return New(
		log, settings, repositories, fetchers, decoder, extractor,
		tree, ledgers, prompter, recorder, tracer, counters,
	), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log), nil
}
