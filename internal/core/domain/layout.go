package domain

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// HomeDirName is the name of the ppac home directory under the user's home.
	HomeDirName = ".ppac"

	// HomeEnvVar overrides the ppac home directory.
	HomeEnvVar = "PPAC_HOME"

	// SettingsFileName is the name of the optional settings file.
	SettingsFileName = "ppac.yaml"

	// RepositoriesFileName is the name of the repository configuration file.
	RepositoriesFileName = "repo.config"

	// LedgerFileName is the name of the installed package ledger.
	LedgerFileName = "installed_packages.json"

	// InstallDirName is the name of the directory packages are extracted into.
	InstallDirName = "apps"

	// ArtifactDir is the path segment under a repository's package URL holding application archives.
	ArtifactDir = "app"

	// DocsArtifactDir is the path segment under a repository's package URL holding documentation archives.
	DocsArtifactDir = "app-docs"

	// ArchiveExt is the extension of every downloadable archive.
	ArchiveExt = ".tar.gz"

	// DocsSuffix is appended to a package name to form its documentation directory.
	DocsSuffix = "-docs"

	// ConfigSourceURL is where users can obtain a repository configuration.
	ConfigSourceURL = "https://github.com/gauthamnair2005/ProcyonPac"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultHome returns the ppac home directory.
// PPAC_HOME wins, then ~/.ppac, then .ppac relative to the working directory.
func DefaultHome() string {
	if home := os.Getenv(HomeEnvVar); home != "" {
		return home
	}
	userHome, err := os.UserHomeDir()
	if err != nil || userHome == "" {
		return HomeDirName
	}
	return filepath.Join(userHome, HomeDirName)
}

// ValidPackageName reports whether name is a single local path element, so that
// PackageDir and DocsDir stay directly below the install root.
func ValidPackageName(name string) bool {
	return name != "." && filepath.IsLocal(name) && !strings.ContainsAny(name, `/\`)
}

// PackageDir returns the directory a package is installed into.
func PackageDir(installRoot, name string) string {
	return filepath.Join(installRoot, name)
}

// DocsDir returns the directory a package's documentation is installed into.
func DocsDir(installRoot, name string) string {
	return filepath.Join(installRoot, name+DocsSuffix)
}

// ArtifactURL returns the location of a package's application archive.
func ArtifactURL(baseURL, name string) string {
	return joinURL(baseURL, ArtifactDir, name+ArchiveExt)
}

// DocsURL returns the location of a package's documentation archive.
func DocsURL(baseURL, name string) string {
	return joinURL(baseURL, DocsArtifactDir, name+ArchiveExt)
}

func joinURL(base string, elems ...string) string {
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	for _, e := range elems {
		base += "/" + e
	}
	return base
}
