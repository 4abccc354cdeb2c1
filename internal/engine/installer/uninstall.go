package installer

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/ppac/internal/core/domain"
	"go.trai.ch/zerr"
)

// Uninstall removes a package's install and documentation directories with everything
// below them, then its ledger entry. A package missing from the ledger is an error and
// the filesystem is left untouched.
func (e *Engine) Uninstall(ctx context.Context, name string) error {
	ctx, span := e.Tracer.Start(ctx, "uninstall")
	defer span.End()
	span.SetAttribute("package", name)

	if !domain.ValidPackageName(name) {
		err := zerr.With(zerr.Wrap(domain.ErrInvalidPackageName, "cannot uninstall"), "package", name)
		span.RecordError(err)
		return err
	}

	if _, ok := e.Ledger.Version(name); !ok {
		err := zerr.With(zerr.Wrap(domain.ErrNotInstalled, "cannot uninstall"), "package", name)
		span.RecordError(err)
		return err
	}

	if dependents := e.dependents(name); len(dependents) > 0 {
		e.Logger.Warn(fmt.Sprintf("%s is required by installed packages: %s", name, strings.Join(dependents, ", ")))
	}

	_, vertex := e.Telemetry.Record(ctx, "uninstall "+name)
	if err := e.uninstall(name); err != nil {
		vertex.Complete(err)
		span.RecordError(err)
		return err
	}

	vertex.Log(fmt.Sprintf("Uninstalled %s", name))
	vertex.Complete(nil)
	e.Metrics.PackageRemoved()
	return nil
}

func (e *Engine) uninstall(name string) error {
	for _, dir := range []string{domain.PackageDir(e.InstallRoot, name), domain.DocsDir(e.InstallRoot, name)} {
		if err := e.Tree.Remove(dir); err != nil {
			err = zerr.With(zerr.Wrap(err, "failed to remove installed files"), "package", name)
			return zerr.With(err, "path", dir)
		}
	}
	if err := e.Ledger.Remove(name); err != nil {
		return zerr.With(err, "package", name)
	}
	return nil
}

// dependents lists the installed packages whose catalog record depends on name.
func (e *Engine) dependents(name string) []string {
	var dependents []string
	for _, installed := range e.Ledger.Names() {
		if installed != name && slices.Contains(e.Catalog.Dependencies(installed), name) {
			dependents = append(dependents, installed)
		}
	}
	return dependents
}
