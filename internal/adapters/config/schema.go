package config

// Configfile represents the structure of the prunelock.yaml configuration file.
type Configfile struct {
	Version   string     `yaml:"version"`
	Root      string     `yaml:"root"`
	OutputDir string     `yaml:"outputDir"`
	Lockfile  string     `yaml:"lockfile"`
	Bundle    *BundleDTO `yaml:"bundle"`
	Verify    *VerifyDTO `yaml:"verify"`
}

// BundleDTO locates the bundle description written by the host bundler.
type BundleDTO struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// VerifyDTO configures the package manager check run after writing.
type VerifyDTO struct {
	Enabled bool     `yaml:"enabled"`
	Command []string `yaml:"command"`
}
