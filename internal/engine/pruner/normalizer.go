package pruner

import (
	"slices"

	"go.trai.ch/prunelock/internal/core/domain"
)

// NormalizeDependencies maps module ids to the package keys that own them.
// Ids outside the dependency directory are dropped. The result is deduplicated
// and sorted lexicographically.
func NormalizeDependencies(ids map[domain.ModuleID]struct{}) []domain.PackageKey {
	seen := make(map[domain.PackageKey]struct{})
	for id := range ids {
		if key, ok := domain.NormalizeModuleID(id); ok {
			seen[key] = struct{}{}
		}
	}

	keys := make([]domain.PackageKey, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
