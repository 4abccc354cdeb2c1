// Package resolver turns a package name into an installation plan.
package resolver

import (
	"strings"

	"go.trai.ch/ppac/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolve walks the dependency graph of name depth first and returns a plan in which
// every package follows its dependencies. A package already planned is not queued again.
func Resolve(name string, catalog *domain.Catalog) (*domain.Plan, error) {
	if !catalog.Has(name) {
		return nil, zerr.With(zerr.Wrap(domain.ErrPackageNotFound, "cannot resolve"), "package", name)
	}

	plan := domain.NewPlan()
	inProgress := make(map[string]bool)
	var path []string

	var visit func(pkg string) error
	visit = func(pkg string) error {
		inProgress[pkg] = true
		path = append(path, pkg)

		for _, dep := range catalog.Dependencies(pkg) {
			if inProgress[dep] {
				return cycleError(path, dep)
			}
			if plan.Contains(dep) {
				continue
			}
			if !catalog.Has(dep) {
				err := zerr.With(zerr.Wrap(domain.ErrDependencyNotFound, "cannot resolve"), "dependency", dep)
				return zerr.With(err, "required_by", pkg)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		inProgress[pkg] = false
		path = path[:len(path)-1]
		plan.Append(pkg)
		return nil
	}

	if err := visit(name); err != nil {
		return nil, zerr.With(err, "package", name)
	}
	return plan, nil
}

// cycleError reports the cycle closed by dep, starting at dep's first occurrence in path.
func cycleError(path []string, dep string) error {
	start := 0
	for i, pkg := range path {
		if pkg == dep {
			start = i
			break
		}
	}
	cycle := append(append([]string{}, path[start:]...), dep)
	return zerr.With(zerr.Wrap(domain.ErrCyclicDependency, "cannot resolve"), "cycle", strings.Join(cycle, " -> "))
}
