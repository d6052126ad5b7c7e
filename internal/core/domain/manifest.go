package domain

// Manifest is the generated package.json. It never carries devDependencies.
type Manifest struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies"`
}
