// Package artifacts writes the pruned manifest and lockfile to the output directory.
package artifacts

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/prunelock/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const indent = "  "

// Writer implements ports.ArtifactWriter.
//
// Both files are staged next to their destination and renamed into place only
// after both were written successfully. If a rename fails, the files already
// moved into place are rolled back to their previous content.
type Writer struct {
	rename func(oldpath, newpath string) error
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{rename: os.Rename}
}

type artifact struct {
	name   string
	data   []byte
	staged string

	previous []byte
	existed  bool
}

// Write renders manifest and lockfile as indented JSON into outputDir.
// It reports unchanged when both files already hold exactly the rendered bytes,
// in which case nothing is touched.
func (w *Writer) Write(outputDir string, manifest *domain.Manifest, lockfile *domain.Lockfile) (bool, error) {
	files, err := render(manifest, lockfile)
	if err != nil {
		return false, err
	}

	if err := os.MkdirAll(outputDir, domain.DirPerm); err != nil {
		createErr := zerr.Wrap(err, domain.ErrOutputDirCreateFailed.Error())
		return false, zerr.With(zerr.Wrap(createErr, domain.ErrWrite.Error()), "file", outputDir)
	}

	if unchanged(outputDir, files) {
		return true, nil
	}

	if err := stage(outputDir, files); err != nil {
		cleanup(files)
		return false, err
	}

	if err := w.commit(outputDir, files); err != nil {
		cleanup(files)
		return false, err
	}

	return false, nil
}

// commit renames the staged files into place. On failure every file committed
// so far gets its previous content back, or is removed if it did not exist.
func (w *Writer) commit(outputDir string, files []*artifact) error {
	for _, f := range files {
		dest := filepath.Join(outputDir, f.name)
		prev, err := os.ReadFile(dest) //nolint:gosec // Path is inside the configured output directory
		switch {
		case err == nil:
			f.previous, f.existed = prev, true
		case !errors.Is(err, os.ErrNotExist):
			return writeError(err, dest)
		}
	}

	for i, f := range files {
		dest := filepath.Join(outputDir, f.name)
		if err := w.rename(f.staged, dest); err != nil {
			return errors.Join(writeError(err, dest), rollback(outputDir, files[:i]))
		}
		f.staged = ""
	}
	return nil
}

func rollback(outputDir string, committed []*artifact) error {
	var errs []error
	for _, f := range committed {
		dest := filepath.Join(outputDir, f.name)
		if f.existed {
			errs = append(errs, os.WriteFile(dest, f.previous, domain.FilePerm))
		} else {
			errs = append(errs, os.Remove(dest))
		}
	}
	return errors.Join(errs...)
}

func render(manifest *domain.Manifest, lockfile *domain.Lockfile) ([]*artifact, error) {
	manifestData, err := domain.EncodeJSON(manifest, indent)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArtifactMarshalFailed.Error()), "file", domain.ManifestFileName)
	}

	lockfileData, err := domain.EncodeJSON(lockfile, indent)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArtifactMarshalFailed.Error()), "file", domain.LockfileFileName)
	}

	return []*artifact{
		{name: domain.ManifestFileName, data: manifestData},
		{name: domain.LockfileFileName, data: lockfileData},
	}, nil
}

// unchanged compares the xxhash digests of the rendered artifacts with the files on disk.
func unchanged(outputDir string, files []*artifact) bool {
	for _, f := range files {
		digest, err := hashFile(filepath.Join(outputDir, f.name))
		if err != nil || digest != xxhash.Sum64(f.data) {
			return false
		}
	}
	return true
}

func hashFile(path string) (uint64, error) {
	//nolint:gosec // Path is inside the configured output directory
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = file.Close()
	}()

	h := xxhash.New()
	if _, err := io.Copy(h, file); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// stage writes every artifact to a temporary file in outputDir.
func stage(outputDir string, files []*artifact) error {
	var g errgroup.Group

	for _, f := range files {
		g.Go(func() error {
			tmp, err := os.CreateTemp(outputDir, "."+f.name+".*")
			if err != nil {
				return writeError(err, filepath.Join(outputDir, f.name))
			}
			f.staged = tmp.Name()

			_, err = tmp.Write(f.data)
			if err == nil {
				err = tmp.Chmod(domain.FilePerm)
			}
			err = errors.Join(err, tmp.Close())
			if err != nil {
				return writeError(err, filepath.Join(outputDir, f.name))
			}
			return nil
		})
	}

	return g.Wait()
}

func cleanup(files []*artifact) {
	for _, f := range files {
		if f.staged == "" {
			continue
		}
		_ = os.Remove(f.staged)
		f.staged = ""
	}
}

func writeError(err error, file string) error {
	return zerr.With(zerr.Wrap(err, domain.ErrWrite.Error()), "file", file)
}
