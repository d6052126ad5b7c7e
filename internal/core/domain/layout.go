package domain

import "path/filepath"

const (
	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = "prunelock.yaml"

	// ManifestFileName is the name of the generated manifest.
	ManifestFileName = "package.json"

	// LockfileFileName is the name of both the input and the generated lockfile.
	LockfileFileName = "package-lock.json"

	// DefaultOutputDir is the directory the artifacts are written to when none is configured.
	DefaultOutputDir = "build"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// LockfilePath returns the location of the full lockfile inside root.
// An empty name selects LockfileFileName.
func LockfilePath(root, name string) string {
	if name == "" {
		name = LockfileFileName
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(root, name)
}
