package domain

import "go.trai.ch/zerr"

var (
	// ErrLockfileRead is returned when the full lockfile is missing or cannot be read.
	ErrLockfileRead = zerr.New("failed to read lockfile")

	// ErrLockfileParse is returned when the full lockfile is not valid JSON.
	ErrLockfileParse = zerr.New("failed to parse lockfile")

	// ErrMissingDependency is returned when a package used by the bundle has no lockfile entry.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrWrite is returned when an output artifact cannot be written.
	ErrWrite = zerr.New("failed to write artifact")

	// ErrOutputDirCreateFailed is returned when the output directory cannot be created.
	ErrOutputDirCreateFailed = zerr.New("failed to create output directory")

	// ErrArtifactMarshalFailed is returned when an output artifact cannot be serialized.
	ErrArtifactMarshalFailed = zerr.New("failed to marshal artifact")

	// ErrBundleRead is returned when the bundle description cannot be read.
	ErrBundleRead = zerr.New("failed to read bundle")

	// ErrBundleParse is returned when the bundle description cannot be parsed.
	ErrBundleParse = zerr.New("failed to parse bundle")

	// ErrUnknownBundleFormat is returned when an unsupported bundle format is requested.
	ErrUnknownBundleFormat = zerr.New("unknown bundle format, expected 'auto', 'esbuild' or 'chunks'")

	// ErrNoBundleSpecified is returned when prune is invoked without a bundle path.
	ErrNoBundleSpecified = zerr.New("no bundle specified")

	// ErrNoEntryPoints is returned when build is invoked without entry points.
	ErrNoEntryPoints = zerr.New("no entry points specified")

	// ErrBundlerFailed is returned when the host bundler reports errors.
	ErrBundlerFailed = zerr.New("bundler reported errors")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")

	// ErrVerifyFailed is returned when the package manager rejects the pruned lockfile.
	ErrVerifyFailed = zerr.New("lockfile verification failed")

	// ErrEmptyVerifyCommand is returned when verification is enabled without a command.
	ErrEmptyVerifyCommand = zerr.New("verify command is empty")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to watch files")
)
