package domain

// BuildSpec describes one bundler invocation.
type BuildSpec struct {
	// EntryPoints are the source files the bundle starts from.
	EntryPoints []string
	// OutDir receives the bundle output.
	OutDir string
	// WorkingDir is the directory module ids are reported relative to.
	WorkingDir string
	// External lists packages left out of the bundle.
	External []string
	Minify    bool
	Sourcemap bool
	// Watch keeps the bundler running and rebuilds on source changes.
	Watch bool
}
