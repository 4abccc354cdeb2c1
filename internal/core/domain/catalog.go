package domain

import (
	"slices"
	"sort"
)

// PackageRecord describes one package as published in a catalog document.
type PackageRecord struct {
	// Name is the unique package name.
	Name string

	// Version is an opaque version string. Only equality is meaningful.
	Version string

	// Dependencies are the names of the packages this package requires.
	Dependencies []string

	// Repository is the name of the repository whose record is kept in the catalog.
	Repository string
}

// CatalogFailure records a repository whose catalog document could not be loaded.
type CatalogFailure struct {
	Repository Repository
	Err        error
}

// Catalog is the merged view of every repository's catalog document.
// When several repositories publish the same name the record merged last wins,
// while OfferedBy keeps every repository that published it.
type Catalog struct {
	records   map[string]PackageRecord
	offeredBy map[string][]Repository
	loaded    []Repository
	failures  []CatalogFailure
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		records:   make(map[string]PackageRecord),
		offeredBy: make(map[string][]Repository),
	}
}

// Merge adds a repository's records to the catalog, replacing any record of the same name.
// Records whose name is not a valid package name are dropped.
func (c *Catalog) Merge(repo Repository, records []PackageRecord) {
	c.loaded = append(c.loaded, repo)
	for _, rec := range records {
		if !ValidPackageName(rec.Name) {
			continue
		}
		rec.Repository = repo.Name
		if rec.Dependencies == nil {
			rec.Dependencies = []string{}
		}
		c.records[rec.Name] = rec
		c.offeredBy[rec.Name] = append(c.offeredBy[rec.Name], repo)
	}
}

// MarkFailed records that a repository's catalog could not be loaded.
func (c *Catalog) MarkFailed(repo Repository, err error) {
	c.failures = append(c.failures, CatalogFailure{Repository: repo, Err: err})
}

// Has reports whether the catalog knows the package.
func (c *Catalog) Has(name string) bool {
	_, ok := c.records[name]
	return ok
}

// Record returns the winning record for a package.
func (c *Catalog) Record(name string) (PackageRecord, bool) {
	rec, ok := c.records[name]
	return rec, ok
}

// Version returns the catalog version of a package.
func (c *Catalog) Version(name string) (string, bool) {
	rec, ok := c.records[name]
	if !ok {
		return "", false
	}
	return rec.Version, true
}

// Dependencies returns the declared dependencies of a package, never nil.
func (c *Catalog) Dependencies(name string) []string {
	rec, ok := c.records[name]
	if !ok {
		return []string{}
	}
	return slices.Clone(rec.Dependencies)
}

// OfferedBy returns every repository whose catalog listed the package, in load order.
func (c *Catalog) OfferedBy(name string) []Repository {
	return slices.Clone(c.offeredBy[name])
}

// Names returns every package name in lexical order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.records))
	for name := range c.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of distinct packages.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Loaded returns the repositories whose catalogs were merged, in merge order.
func (c *Catalog) Loaded() []Repository {
	return slices.Clone(c.loaded)
}

// Failures returns the repositories whose catalogs could not be loaded.
func (c *Catalog) Failures() []CatalogFailure {
	return slices.Clone(c.failures)
}
