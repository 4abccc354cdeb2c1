package installer

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/ppac/internal/core/domain"
	"go.trai.ch/ppac/internal/core/ports"
	"go.trai.ch/ppac/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// UpdateAll reinstalls every package recorded in the ledger whose plan contains an
// outdated package. The names are snapshotted before the first install. A failing
// package does not stop the others; every failure is returned together at the end.
func (e *Engine) UpdateAll(ctx context.Context) error {
	ctx, span := e.Tracer.Start(ctx, "update")
	defer span.End()

	names := e.Ledger.Names()
	span.SetAttribute("installed", len(names))

	var (
		failures []error
		failed   []string
	)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !e.outdated(name) {
			e.Logger.Debug(fmt.Sprintf("%s is up to date", name))
			e.Metrics.PackageInstalled(ports.OutcomeSkipped)
			continue
		}

		err := e.Install(ctx, name)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrInstallAborted):
			e.Logger.Info(fmt.Sprintf("Skipped update of %s", name))
		default:
			e.Logger.Error(err)
			failures = append(failures, err)
			failed = append(failed, name)
		}
	}

	if len(failures) > 0 {
		err := zerr.With(domain.Because(domain.ErrUpdateFailed, errors.Join(failures...)), "failed", failed)
		span.RecordError(err)
		return err
	}
	return nil
}

// outdated reports whether installing name would change anything. Packages the
// catalog cannot resolve count as outdated so that Install reports why.
func (e *Engine) outdated(name string) bool {
	plan, err := resolver.Resolve(name, e.Catalog)
	if err != nil {
		return true
	}
	for _, pkg := range plan.Names() {
		version, _ := e.Catalog.Version(pkg)
		installed, ok := e.Ledger.Version(pkg)
		if !ok || installed != version {
			return true
		}
	}
	return false
}
