// Package config provides the configuration loader for prunelock.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/prunelock/internal/core/domain"
	"go.trai.ch/prunelock/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only configuration schema version understood by the loader.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load discovers prunelock.yaml in cwd or one of its parents and resolves it into a
// domain.Config. Relative paths in the file are resolved against the file's directory.
// Without a config file the defaults apply, rooted at cwd.
func (l *Loader) Load(cwd string) (domain.Config, error) {
	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	cfg := domain.DefaultConfig()
	cfg.Root = absCwd

	configPath, found := findConfiguration(absCwd)
	if !found {
		return cfg, nil
	}

	var file Configfile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return domain.Config{}, zerr.With(err, "path", configPath)
	}

	switch file.Version {
	case SupportedVersion:
	case "":
		l.Logger.Warn(fmt.Sprintf("%s has no version, assuming %q", configPath, SupportedVersion))
	default:
		err := zerr.Wrap(domain.ErrConfigParseFailed, fmt.Sprintf("unsupported config version %q", file.Version))
		return domain.Config{}, zerr.With(err, "path", configPath)
	}

	return l.resolve(cfg, configPath, &file)
}

func (l *Loader) resolve(cfg domain.Config, configPath string, file *Configfile) (domain.Config, error) {
	configDir := filepath.Dir(configPath)

	cfg.Root = resolvePath(configDir, file.Root)
	if file.Lockfile != "" {
		cfg.Lockfile = file.Lockfile
	}
	if file.OutputDir != "" {
		cfg.OutputDir = resolvePath(configDir, file.OutputDir)
	}

	if file.Bundle != nil {
		if file.Bundle.Path != "" {
			cfg.BundlePath = resolvePath(configDir, file.Bundle.Path)
		}
		if file.Bundle.Format != "" {
			format, err := ParseBundleFormat(file.Bundle.Format)
			if err != nil {
				return domain.Config{}, zerr.With(err, "path", configPath)
			}
			cfg.BundleFormat = format
		}
	}

	if file.Verify != nil {
		cfg.Verify = file.Verify.Enabled
		if len(file.Verify.Command) > 0 {
			cfg.VerifyCommand = file.Verify.Command
		}
	}

	return cfg, nil
}

// ParseBundleFormat validates a user supplied bundle format name.
func ParseBundleFormat(value string) (domain.BundleFormat, error) {
	switch format := domain.BundleFormat(value); format {
	case domain.BundleFormatAuto, domain.BundleFormatEsbuild, domain.BundleFormatChunks:
		return format, nil
	default:
		return "", zerr.With(zerr.Wrap(domain.ErrUnknownBundleFormat, "invalid bundle format"), "format", value)
	}
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

func resolvePath(baseDir, configured string) string {
	if configured == "" {
		return filepath.Clean(baseDir)
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Clean(filepath.Join(baseDir, configured))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered by the loader
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	decoder := yaml.NewDecoder(bytes.NewReader(configFile))
	decoder.KnownFields(true)
	if parseErr := decoder.Decode(target); parseErr != nil && !errors.Is(parseErr, io.EOF) {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
