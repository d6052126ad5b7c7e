package domain

// BundleFormat selects how a bundle description on disk is decoded.
type BundleFormat string

const (
	// BundleFormatAuto picks the format from the document shape.
	BundleFormatAuto BundleFormat = "auto"
	// BundleFormatEsbuild is an esbuild metafile.
	BundleFormatEsbuild BundleFormat = "esbuild"
	// BundleFormatChunks is a chunk name to module id list mapping.
	BundleFormatChunks BundleFormat = "chunks"
)

// Config holds the resolved settings of one prune run.
type Config struct {
	// Root is the project directory holding the full lockfile.
	Root string
	// Lockfile is the lockfile name relative to Root.
	Lockfile string
	// OutputDir receives the generated package.json and package-lock.json.
	OutputDir string
	// BundlePath points at the bundle description (metafile or chunk manifest).
	BundlePath string
	// BundleFormat selects the decoder for BundlePath.
	BundleFormat BundleFormat
	// Verify runs VerifyCommand in OutputDir after writing.
	Verify bool
	// VerifyCommand is the package manager invocation used for verification.
	VerifyCommand []string
}

// DefaultVerifyCommand checks the pruned lockfile without installing anything.
func DefaultVerifyCommand() []string {
	return []string{"npm", "ci", "--dry-run", "--ignore-scripts"}
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{
		Root:          ".",
		Lockfile:      LockfileFileName,
		OutputDir:     DefaultOutputDir,
		BundleFormat:  BundleFormatAuto,
		VerifyCommand: DefaultVerifyCommand(),
	}
}

// Merge returns c with every non-zero field of override applied on top.
func (c Config) Merge(override Config) Config {
	if override.Root != "" {
		c.Root = override.Root
	}
	if override.Lockfile != "" {
		c.Lockfile = override.Lockfile
	}
	if override.OutputDir != "" {
		c.OutputDir = override.OutputDir
	}
	if override.BundlePath != "" {
		c.BundlePath = override.BundlePath
	}
	if override.BundleFormat != "" {
		c.BundleFormat = override.BundleFormat
	}
	if override.Verify {
		c.Verify = true
	}
	if len(override.VerifyCommand) > 0 {
		c.VerifyCommand = override.VerifyCommand
	}
	return c
}
