package ports

import "go.trai.ch/prunelock/internal/core/domain"

// BundleReader defines the interface for loading a finalized bundle description from disk.
//
//go:generate mockgen -source=bundle_reader.go -destination=mocks/mock_bundle_reader.go -package=mocks
type BundleReader interface {
	// Read decodes the bundle description at path using the given format.
	Read(path string, format domain.BundleFormat) (domain.Bundle, error)
}
