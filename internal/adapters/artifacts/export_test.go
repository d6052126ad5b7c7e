package artifacts

// NewWriterWithRename creates a Writer that moves staged files with rename.
func NewWriterWithRename(rename func(oldpath, newpath string) error) *Writer {
	return &Writer{rename: rename}
}
