// Package lockfile reads the full npm lockfile of a project.
package lockfile

import (
	"os"

	json "github.com/goccy/go-json"
	"go.trai.ch/prunelock/internal/core/domain"
	"go.trai.ch/zerr"
)

// Loader implements ports.LockfileLoader on the local filesystem.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and decodes the lockfile named name inside root.
// A missing file and invalid JSON are both reported as domain.ErrLockfileRead.
func (l *Loader) Load(root, name string) (*domain.Lockfile, error) {
	path := domain.LockfilePath(root, name)

	//nolint:gosec // Path is the project lockfile chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockfileRead.Error()), "path", path)
	}

	var lock domain.Lockfile
	if err := json.Unmarshal(data, &lock); err != nil {
		parseErr := zerr.Wrap(err, domain.ErrLockfileParse.Error())
		return nil, zerr.With(zerr.Wrap(parseErr, domain.ErrLockfileRead.Error()), "path", path)
	}

	if lock.Packages.Entries == nil {
		lock.Packages.Entries = make(map[domain.PackageKey]domain.LockEntry)
	}

	return &lock, nil
}
