package pruner_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prunelock/internal/core/domain"
	"go.trai.ch/prunelock/internal/engine/pruner"
)

func fullLockfile() *domain.Lockfile {
	return &domain.Lockfile{
		Name:            "shop",
		Version:         "1.2.0",
		LockfileVersion: 3,
		Requires:        true,
		Packages: domain.Packages{
			Root: &domain.RootPackage{
				Name:    "shop",
				Version: "1.2.0",
				Dependencies: map[string]string{
					"react":     "^18.2.0",
					"react-dom": "^18.2.0",
					"lodash":    "^4.17.21",
				},
				DevDependencies: map[string]string{"vite": "^5.0.0"},
			},
			Entries: map[domain.PackageKey]domain.LockEntry{
				"node_modules/react": {
					Version:   "18.2.0",
					Resolved:  "https://registry.npmjs.org/react/-/react-18.2.0.tgz",
					Integrity: "sha512-react",
				},
				"node_modules/react-dom": {
					Version:   "18.2.0",
					Resolved:  "https://registry.npmjs.org/react-dom/-/react-dom-18.2.0.tgz",
					Integrity: "sha512-react-dom",
				},
				"node_modules/scheduler": {
					Version:   "0.23.0",
					Resolved:  "https://registry.npmjs.org/scheduler/-/scheduler-0.23.0.tgz",
					Integrity: "sha512-scheduler",
				},
				"node_modules/lodash": {
					Version:   "4.17.21",
					Resolved:  "https://registry.npmjs.org/lodash/-/lodash-4.17.21.tgz",
					Integrity: "sha512-lodash",
				},
				"node_modules/@mui/material": {
					Version:   "5.15.0",
					Resolved:  "https://registry.npmjs.org/@mui/material/-/material-5.15.0.tgz",
					Integrity: "sha512-mui",
					Dev:       true,
				},
				"node_modules/vite": {
					Version: "5.0.0",
					Dev:     true,
				},
			},
		},
	}
}

func TestPrune(t *testing.T) {
	t.Parallel()

	keys := []domain.PackageKey{
		"node_modules/react-dom",
		"node_modules/react",
		"node_modules/scheduler",
	}

	manifest, lockfile, err := pruner.Prune(fullLockfile(), keys)
	require.NoError(t, err)

	assert.Equal(t, "shop", manifest.Name)
	assert.Equal(t, "1.2.0", manifest.Version)
	assert.Equal(t, map[string]string{
		"react":     "18.2.0",
		"react-dom": "18.2.0",
		"scheduler": "0.23.0",
	}, manifest.Dependencies)

	assert.Equal(t, 3, lockfile.LockfileVersion)
	assert.True(t, lockfile.Requires)
	require.NotNil(t, lockfile.Packages.Root)
	assert.Equal(t, manifest.Dependencies, lockfile.Packages.Root.Dependencies)
	assert.NotNil(t, lockfile.Packages.Root.DevDependencies)
	assert.Empty(t, lockfile.Packages.Root.DevDependencies)

	assert.Len(t, lockfile.Packages.Entries, 3)
	assert.Equal(t, domain.LockEntry{
		Version:   "18.2.0",
		Resolved:  "https://registry.npmjs.org/react-dom/-/react-dom-18.2.0.tgz",
		Integrity: "sha512-react-dom",
	}, lockfile.Packages.Entries["node_modules/react-dom"])
}

func TestPrune_ConsistentTables(t *testing.T) {
	t.Parallel()

	keys := []domain.PackageKey{"node_modules/@mui/material", "node_modules/lodash"}

	manifest, lockfile, err := pruner.Prune(fullLockfile(), keys)
	require.NoError(t, err)

	require.Len(t, manifest.Dependencies, len(keys))
	for _, key := range keys {
		entry, ok := lockfile.Packages.Lookup(key)
		require.True(t, ok, key)
		assert.False(t, entry.Dev, key)
		assert.Equal(t, entry.Version, manifest.Dependencies[key.Name()], key)
		assert.Equal(t, entry.Version, lockfile.Packages.Root.Dependencies[key.Name()], key)
	}
}

func TestPrune_ManifestHasNoDevDependencies(t *testing.T) {
	t.Parallel()

	manifest, _, err := pruner.Prune(fullLockfile(), []domain.PackageKey{"node_modules/react"})
	require.NoError(t, err)

	data, err := domain.EncodeJSON(manifest, "  ")
	require.NoError(t, err)
	assert.NotContains(t, string(data), "devDependencies")
}

func TestPrune_RootFallback(t *testing.T) {
	t.Parallel()

	full := fullLockfile()
	full.Packages.Root = nil

	_, lockfile, err := pruner.Prune(full, []domain.PackageKey{"node_modules/react"})
	require.NoError(t, err)

	assert.Equal(t, "shop", lockfile.Packages.Root.Name)
	assert.Equal(t, "1.2.0", lockfile.Packages.Root.Version)
}

func TestPrune_ManifestMatchesLockfileRoot(t *testing.T) {
	t.Parallel()

	full := fullLockfile()
	full.Name = "shop-workspace"
	full.Version = "0.0.0"
	full.Packages.Root.Name = "shop"
	full.Packages.Root.Version = "1.2.0"

	manifest, lockfile, err := pruner.Prune(full, []domain.PackageKey{"node_modules/react"})
	require.NoError(t, err)

	assert.Equal(t, "shop", manifest.Name)
	assert.Equal(t, "1.2.0", manifest.Version)
	assert.Equal(t, lockfile.Packages.Root.Name, manifest.Name)
	assert.Equal(t, lockfile.Packages.Root.Version, manifest.Version)
}

func TestPrune_NoKeys(t *testing.T) {
	t.Parallel()

	manifest, lockfile, err := pruner.Prune(fullLockfile(), nil)
	require.NoError(t, err)

	assert.NotNil(t, manifest.Dependencies)
	assert.Empty(t, manifest.Dependencies)
	assert.Empty(t, lockfile.Packages.Entries)

	data, err := domain.EncodeJSON(manifest, "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"shop","version":"1.2.0","dependencies":{}}`, string(data))
}

func TestPrune_MissingDependency(t *testing.T) {
	t.Parallel()

	keys := []domain.PackageKey{"node_modules/react", "node_modules/left-pad"}

	manifest, lockfile, err := pruner.Prune(fullLockfile(), keys)

	require.Error(t, err)
	assert.Nil(t, manifest)
	assert.Nil(t, lockfile)
	assert.True(t, errors.Is(err, domain.ErrMissingDependency))
	assert.ErrorContains(t, err, "node_modules/left-pad")
}

func TestPrune_Idempotent(t *testing.T) {
	t.Parallel()

	keys := []domain.PackageKey{"node_modules/scheduler", "node_modules/react", "node_modules/react-dom"}

	encode := func() ([]byte, []byte) {
		manifest, lockfile, err := pruner.Prune(fullLockfile(), keys)
		require.NoError(t, err)
		m, err := domain.EncodeJSON(manifest, "  ")
		require.NoError(t, err)
		l, err := domain.EncodeJSON(lockfile, "  ")
		require.NoError(t, err)
		return m, l
	}

	m1, l1 := encode()
	m2, l2 := encode()
	assert.Equal(t, m1, m2)
	assert.Equal(t, l1, l2)
}

func TestPrune_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	full := fullLockfile()
	keys := []domain.PackageKey{"node_modules/react-dom", "node_modules/react"}

	_, _, err := pruner.Prune(full, keys)
	require.NoError(t, err)

	assert.Equal(t, fullLockfile(), full)
	assert.Equal(t, []domain.PackageKey{"node_modules/react-dom", "node_modules/react"}, keys)
}
