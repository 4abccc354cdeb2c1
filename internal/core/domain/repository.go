package domain

// Repository is a named remote source offering a catalog document and package archives.
type Repository struct {
	// Name is the section identifier from the repository configuration.
	Name string

	// CatalogURL locates the repository's catalog document.
	CatalogURL string

	// ArtifactURL is the base location of the repository's archives.
	ArtifactURL string

	// DisplayName is an optional human-readable name.
	DisplayName string
}

// Label returns the name shown to users when choosing a repository.
func (r Repository) Label() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.Name
}
