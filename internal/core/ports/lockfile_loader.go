package ports

import "go.trai.ch/prunelock/internal/core/domain"

// LockfileLoader defines the interface for reading the project's full lockfile.
//
//go:generate mockgen -source=lockfile_loader.go -destination=mocks/mock_lockfile_loader.go -package=mocks
type LockfileLoader interface {
	// Load reads and parses the lockfile called name inside root.
	// A missing or malformed file is reported as domain.ErrLockfileRead or domain.ErrLockfileParse.
	Load(root, name string) (*domain.Lockfile, error)
}
