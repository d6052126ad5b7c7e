package domain

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Lockfile is the subset of an npm package-lock.json (v2/v3) this tool reads and writes.
type Lockfile struct {
	Name            string   `json:"name"`
	Version         string   `json:"version"`
	LockfileVersion int      `json:"lockfileVersion"`
	Requires        bool     `json:"requires"`
	Packages        Packages `json:"packages"`
}

// LockEntry is the resolved metadata of one installed package.
type LockEntry struct {
	Version   string `json:"version"`
	Resolved  string `json:"resolved,omitempty"`
	Integrity string `json:"integrity,omitempty"`
	Dev       bool   `json:"dev"`
}

// RootPackage is the entry of the project itself, stored under the empty key.
type RootPackage struct {
	Name            string            `json:"name,omitempty"`
	Version         string            `json:"version,omitempty"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Packages is the lockfile package table. The empty key holds the root project and
// every other key holds an installed dependency, so the two shapes are kept apart.
type Packages struct {
	Root    *RootPackage
	Entries map[PackageKey]LockEntry
}

// Lookup returns the entry stored under key.
func (p Packages) Lookup(key PackageKey) (LockEntry, bool) {
	entry, ok := p.Entries[key]
	return entry, ok
}

// MarshalJSON writes the table as a single object with the root entry first.
func (p Packages) MarshalJSON() ([]byte, error) {
	table := make(map[string]any, len(p.Entries)+1)
	if p.Root != nil {
		table[""] = p.Root
	}
	for key, entry := range p.Entries {
		table[string(key)] = entry
	}
	return EncodeJSON(table, "")
}

// UnmarshalJSON splits the raw table into the root entry and dependency entries.
func (p *Packages) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Root = nil
	p.Entries = make(map[PackageKey]LockEntry, len(raw))
	for key, msg := range raw {
		if key == "" {
			var root RootPackage
			if err := json.Unmarshal(msg, &root); err != nil {
				return err
			}
			p.Root = &root
			continue
		}

		var entry LockEntry
		if err := json.Unmarshal(msg, &entry); err != nil {
			return err
		}
		p.Entries[PackageKey(key)] = entry
	}
	return nil
}

// RootName returns the project name, preferring the root package entry.
func (l *Lockfile) RootName() string {
	if l.Packages.Root != nil && l.Packages.Root.Name != "" {
		return l.Packages.Root.Name
	}
	return l.Name
}

// RootVersion returns the project version, preferring the root package entry.
func (l *Lockfile) RootVersion() string {
	if l.Packages.Root != nil && l.Packages.Root.Version != "" {
		return l.Packages.Root.Version
	}
	return l.Version
}

// EncodeJSON serializes v with the given indent and without HTML escaping,
// matching the output of JSON.stringify. No trailing newline is written.
func EncodeJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
