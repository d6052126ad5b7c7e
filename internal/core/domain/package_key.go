package domain

import "strings"

// DependencyDir is the path segment that marks a file as an installed third-party dependency.
const DependencyDir = "node_modules"

const dependencyPrefix = DependencyDir + "/"

// PackageKey is a lockfile package table key such as "node_modules/react"
// or "node_modules/@mui/material".
type PackageKey string

// Name returns the bare package name, the part after the dependency directory.
func (k PackageKey) Name() string {
	return strings.TrimPrefix(string(k), dependencyPrefix)
}

// String returns the key as stored in the lockfile.
func (k PackageKey) String() string {
	return string(k)
}

// NewPackageKey returns the lockfile key of a bare package name.
func NewPackageKey(name string) PackageKey {
	return PackageKey(dependencyPrefix + name)
}

// NormalizeModuleID maps a module id to the key of the package that owns it.
//
// The boolean is false for ids outside the dependency directory (first-party sources,
// bundler runtime helpers). When the path crosses several dependency directories the
// first one wins, so vendored nested packages collapse to their top-level host.
func NormalizeModuleID(id ModuleID) (PackageKey, bool) {
	path := cleanModuleID(string(id))

	var rest string
	if after, ok := strings.CutPrefix(path, dependencyPrefix); ok {
		rest = after
	} else if _, after, ok := strings.Cut(path, "/"+dependencyPrefix); ok {
		rest = after
	} else {
		return "", false
	}

	segments := strings.SplitN(rest, "/", 3)
	if segments[0] == "" {
		return "", false
	}

	if strings.HasPrefix(segments[0], "@") {
		if len(segments) < 2 || segments[1] == "" {
			return "", false
		}
		return NewPackageKey(segments[0] + "/" + segments[1]), true
	}

	return NewPackageKey(segments[0]), true
}

// cleanModuleID strips the decorations bundlers add to module ids: the NUL prefix of
// virtual modules, query suffixes and Windows separators.
func cleanModuleID(id string) string {
	id = strings.TrimPrefix(id, "\x00")
	if before, _, ok := strings.Cut(id, "?"); ok {
		id = before
	}
	return strings.ReplaceAll(id, `\`, "/")
}
