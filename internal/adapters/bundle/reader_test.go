package bundle_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prunelock/internal/adapters/bundle"
	"go.trai.ch/prunelock/internal/core/domain"
)

func TestReader_Read_Metafile(t *testing.T) {
	t.Parallel()

	for _, format := range []domain.BundleFormat{domain.BundleFormatEsbuild, domain.BundleFormatAuto} {
		got, err := bundle.NewReader().Read(filepath.Join("testdata", "meta.json"), format)
		require.NoError(t, err, format)

		assert.Equal(t, domain.Bundle{
			"dist/main.js": {ModuleIDs: []domain.ModuleID{
				"node_modules/react-dom/client.js",
				"node_modules/react/index.js",
				"src/main.jsx",
			}},
			"dist/main.css":    {ModuleIDs: []domain.ModuleID{"src/App.css"}},
			"dist/main.js.map": {ModuleIDs: []domain.ModuleID{}},
		}, got, format)
	}
}

func TestReader_Read_Chunks(t *testing.T) {
	t.Parallel()

	for _, format := range []domain.BundleFormat{domain.BundleFormatChunks, domain.BundleFormatAuto} {
		got, err := bundle.NewReader().Read(filepath.Join("testdata", "chunks.json"), format)
		require.NoError(t, err, format)

		require.Len(t, got, 2)
		assert.Equal(t, []domain.ModuleID{
			"/repo/src/main.jsx",
			"/repo/node_modules/react/index.js",
			"\x00commonjsHelpers.js",
			"/repo/node_modules/@mui/material/Table/index.js",
		}, got["assets/index-4f2a.js"].ModuleIDs)
		assert.Empty(t, got["assets/index-9c1b.css"].ModuleIDs)
	}
}

func TestReader_Read_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	invalid := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(invalid, []byte("{ not json"), domain.PrivateFilePerm))

	t.Run("no path", func(t *testing.T) {
		t.Parallel()
		_, err := bundle.NewReader().Read("", domain.BundleFormatAuto)
		require.ErrorIs(t, err, domain.ErrNoBundleSpecified)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := bundle.NewReader().Read(filepath.Join(dir, "missing.json"), domain.BundleFormatAuto)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrBundleRead.Error())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()
		_, err := bundle.NewReader().Read(invalid, domain.BundleFormatEsbuild)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrBundleParse.Error())
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()
		_, err := bundle.NewReader().Read(filepath.Join("testdata", "meta.json"), "webpack")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrUnknownBundleFormat.Error())
	})
}

func TestDetect(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.BundleFormatEsbuild, bundle.Detect([]byte(`{"inputs":{},"outputs":{}}`)))
	assert.Equal(t, domain.BundleFormatChunks, bundle.Detect([]byte(`{"index.js":{"moduleIds":[]}}`)))
	assert.Equal(t, domain.BundleFormatChunks, bundle.Detect([]byte(`{"outputs":["main.js"]}`)))
	assert.Equal(t, domain.BundleFormatChunks, bundle.Detect([]byte(`not json`)))
}
