// Package pruner derives the dependencies a bundle uses and prunes the lockfile down to them.
package pruner

import "go.trai.ch/prunelock/internal/core/domain"

// CollectModuleIDs returns the union of module ids across all chunks of the bundle.
// Chunks without module information (assets, stylesheets) contribute nothing.
func CollectModuleIDs(bundle domain.Bundle) map[domain.ModuleID]struct{} {
	ids := make(map[domain.ModuleID]struct{})
	for _, chunk := range bundle {
		for _, id := range chunk.ModuleIDs {
			ids[id] = struct{}{}
		}
	}
	return ids
}
