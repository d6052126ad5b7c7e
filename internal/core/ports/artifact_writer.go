package ports

import "go.trai.ch/prunelock/internal/core/domain"

// ArtifactWriter defines the interface for persisting the pruned manifest and lockfile.
//
//go:generate mockgen -source=artifact_writer.go -destination=mocks/mock_artifact_writer.go -package=mocks
type ArtifactWriter interface {
	// Write stores package.json and package-lock.json in outputDir, creating it if needed.
	// Either both files are replaced or neither is. It reports unchanged when the
	// directory already held byte-identical artifacts.
	Write(outputDir string, manifest *domain.Manifest, lockfile *domain.Lockfile) (unchanged bool, err error)
}
