// Package bundle decodes finalized bundle descriptions into domain.Bundle values.
package bundle

import (
	"os"
	"slices"

	json "github.com/goccy/go-json"
	"go.trai.ch/prunelock/internal/core/domain"
	"go.trai.ch/zerr"
)

// metafile is the part of an esbuild metafile that records which inputs ended up in each output.
type metafile struct {
	Outputs map[string]struct {
		Inputs map[string]json.RawMessage `json:"inputs"`
	} `json:"outputs"`
}

// chunkManifest is a rollup style dump of the output bundle.
type chunkManifest map[string]struct {
	ModuleIDs []string `json:"moduleIds"`
}

// Reader implements ports.BundleReader.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read loads the bundle description at path.
func (r *Reader) Read(path string, format domain.BundleFormat) (domain.Bundle, error) {
	if path == "" {
		return nil, domain.ErrNoBundleSpecified
	}

	//nolint:gosec // Path is the bundle description chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrBundleRead.Error()), "path", path)
	}

	bundle, err := Parse(data, format)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return bundle, nil
}

// Parse decodes data in the given format.
func Parse(data []byte, format domain.BundleFormat) (domain.Bundle, error) {
	switch format {
	case domain.BundleFormatAuto, "":
		return Parse(data, Detect(data))
	case domain.BundleFormatEsbuild:
		return ParseMetafile(data)
	case domain.BundleFormatChunks:
		return parseChunks(data)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownBundleFormat, "invalid bundle format"), "format", string(format))
	}
}

// Detect guesses the format of data: documents with an "outputs" object are
// esbuild metafiles, anything else is treated as a chunk manifest.
func Detect(data []byte) domain.BundleFormat {
	var probe struct {
		Outputs json.RawMessage `json:"outputs"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return domain.BundleFormatChunks
	}
	if len(probe.Outputs) > 0 && probe.Outputs[0] == '{' {
		return domain.BundleFormatEsbuild
	}
	return domain.BundleFormatChunks
}

// ParseMetafile converts an esbuild metafile into a bundle. Each output file is a chunk
// and the keys of its inputs map are the module ids. Outputs without inputs are assets.
func ParseMetafile(data []byte) (domain.Bundle, error) {
	var meta metafile
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, zerr.Wrap(zerr.Wrap(err, domain.ErrBundleParse.Error()), domain.ErrBundleRead.Error())
	}

	bundle := make(domain.Bundle, len(meta.Outputs))
	for name, out := range meta.Outputs {
		ids := make([]domain.ModuleID, 0, len(out.Inputs))
		for id := range out.Inputs {
			ids = append(ids, domain.ModuleID(id))
		}
		slices.Sort(ids)
		bundle[name] = domain.Chunk{ModuleIDs: ids}
	}
	return bundle, nil
}

func parseChunks(data []byte) (domain.Bundle, error) {
	var manifest chunkManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, zerr.Wrap(zerr.Wrap(err, domain.ErrBundleParse.Error()), domain.ErrBundleRead.Error())
	}

	bundle := make(domain.Bundle, len(manifest))
	for name, chunk := range manifest {
		ids := make([]domain.ModuleID, len(chunk.ModuleIDs))
		for i, id := range chunk.ModuleIDs {
			ids[i] = domain.ModuleID(id)
		}
		bundle[name] = domain.Chunk{ModuleIDs: ids}
	}
	return bundle, nil
}
