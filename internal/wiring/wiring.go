// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/ppac/internal/adapters/archive"
	_ "go.trai.ch/ppac/internal/adapters/catalog"
	_ "go.trai.ch/ppac/internal/adapters/config"
	_ "go.trai.ch/ppac/internal/adapters/fetch"
	_ "go.trai.ch/ppac/internal/adapters/fs"
	_ "go.trai.ch/ppac/internal/adapters/ledger"
	_ "go.trai.ch/ppac/internal/adapters/logger"
	_ "go.trai.ch/ppac/internal/adapters/metrics"
	_ "go.trai.ch/ppac/internal/adapters/prompt"
	_ "go.trai.ch/ppac/internal/adapters/telemetry"
	_ "go.trai.ch/ppac/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/ppac/internal/app"
)
