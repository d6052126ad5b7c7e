package pruner

import (
	"fmt"
	"maps"
	"slices"

	"go.trai.ch/prunelock/internal/core/domain"
	"go.trai.ch/zerr"
)

// Prune builds the manifest and lockfile that contain only the given packages.
//
// Keys are processed in sorted order so the output is reproducible. A key without a
// lockfile entry fails the whole run with domain.ErrMissingDependency. Every emitted
// entry is marked as a production dependency and the pruned root carries an empty
// devDependencies table.
func Prune(full *domain.Lockfile, keys []domain.PackageKey) (*domain.Manifest, *domain.Lockfile, error) {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	deps := make(map[string]string, len(sorted))
	entries := make(map[domain.PackageKey]domain.LockEntry, len(sorted))

	for _, key := range sorted {
		entry, ok := full.Packages.Lookup(key)
		if !ok {
			err := zerr.Wrap(domain.ErrMissingDependency, fmt.Sprintf("unable to find %s in %s", key, domain.LockfileFileName))
			return nil, nil, zerr.With(err, "package_key", key.String())
		}

		entries[key] = domain.LockEntry{
			Version:   entry.Version,
			Resolved:  entry.Resolved,
			Integrity: entry.Integrity,
			Dev:       false,
		}
		deps[key.Name()] = entry.Version
	}

	manifest := &domain.Manifest{
		Name:         full.RootName(),
		Version:      full.RootVersion(),
		Dependencies: deps,
	}

	lockfile := &domain.Lockfile{
		Name:            full.Name,
		Version:         full.Version,
		LockfileVersion: full.LockfileVersion,
		Requires:        full.Requires,
		Packages: domain.Packages{
			Root: &domain.RootPackage{
				Name:            full.RootName(),
				Version:         full.RootVersion(),
				Dependencies:    maps.Clone(deps),
				DevDependencies: map[string]string{},
			},
			Entries: entries,
		},
	}

	return manifest, lockfile, nil
}
