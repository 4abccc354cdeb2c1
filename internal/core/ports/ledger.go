package ports

// Ledger defines the interface for the persisted record of installed packages.
// Every mutation is persisted before it returns.
//
//go:generate mockgen -source=ledger.go -destination=mocks/mock_ledger.go -package=mocks
type Ledger interface {
	// Version returns the installed version of a package.
	Version(name string) (string, bool)

	// Record stores the installed version of a package.
	Record(name, version string) error

	// Remove deletes a package from the ledger.
	Remove(name string) error

	// Names returns a sorted snapshot of the installed package names.
	Names() []string
}

// LedgerStore opens the ledger persisted at a path.
type LedgerStore interface {
	Open(path string) (Ledger, error)
}
