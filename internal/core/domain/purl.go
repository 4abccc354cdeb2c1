package domain

import (
	packageurl "github.com/package-url/packageurl-go"
)

// PURLType is the package URL type used for ppac packages.
const PURLType = "generic"

// PackageURL builds the package URL identifying a package version served by a repository.
// The repository's archive base is recorded in the repository_url qualifier.
func PackageURL(name, version string, repo Repository) string {
	var qualifiers packageurl.Qualifiers
	if repo.ArtifactURL != "" {
		qualifiers = packageurl.QualifiersFromMap(map[string]string{
			"repository_url": repo.ArtifactURL,
		})
	}
	return packageurl.NewPackageURL(PURLType, "", name, version, qualifiers, "").ToString()
}

// ParsePackageURL extracts the name, version and repository base from a package URL.
func ParsePackageURL(purl string) (name, version, repositoryURL string, err error) {
	p, err := packageurl.FromString(purl)
	if err != nil {
		return "", "", "", err
	}
	return p.Name, p.Version, p.Qualifiers.Map()["repository_url"], nil
}
