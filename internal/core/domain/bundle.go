package domain

// ModuleID identifies one source file that was folded into the bundle.
// Bundlers report it as an absolute path or as a path relative to their working directory.
type ModuleID string

// Chunk describes one output file of a finalized bundle.
type Chunk struct {
	// ModuleIDs lists the source modules that contributed code to the chunk.
	// It is empty for asset outputs (css, images, source maps).
	ModuleIDs []ModuleID
}

// Bundle is the finalized bundle keyed by output chunk name.
type Bundle map[string]Chunk
