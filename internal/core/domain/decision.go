package domain

// ConfirmRequest asks the user whether an installation should proceed.
type ConfirmRequest struct {
	// Package is the requested package.
	Package string

	// Version is the catalog version of the requested package.
	Version string

	// Plan lists every package that may be installed, dependencies first.
	Plan []string
}

// ChoiceRequest asks the user to pick the repository a package is downloaded from.
// Options are presented 1-indexed and followed by a cancel entry numbered len(Options)+1.
type ChoiceRequest struct {
	// Package is the package being installed.
	Package string

	// Options are the repositories offering the package, in configuration order.
	Options []Repository
}

// CancelIndex returns the 1-based index of the cancel entry.
func (r ChoiceRequest) CancelIndex() int {
	return len(r.Options) + 1
}

// Resolve maps a 1-based answer to a repository.
// Cancel and out-of-range answers report false.
func (r ChoiceRequest) Resolve(answer int) (Repository, bool) {
	if answer < 1 || answer > len(r.Options) {
		return Repository{}, false
	}
	return r.Options[answer-1], true
}
