package reportpdf

import (
	"io"
	"os"
	"path/filepath"
)

// Saver persists a finished document. Implementations may write to the
// local filesystem, stream to object storage, or trigger a browser
// download; the pipeline does not care.
type Saver interface {
	Save(data []byte, filename string) error
}

// FileSaver writes documents into a directory.
type FileSaver struct {
	// Dir is the target directory. Empty means the current directory.
	Dir string
	// Perm is the file mode for created files. Zero means 0o644.
	Perm os.FileMode
}

// Save writes data to Dir/filename.
func (s FileSaver) Save(data []byte, filename string) error {
	perm := s.Perm
	if perm == 0 {
		perm = 0o644
	}
	return os.WriteFile(filepath.Join(s.Dir, filename), data, perm)
}

// WriterSaver streams documents to an [io.Writer], ignoring the filename.
type WriterSaver struct {
	W io.Writer
}

// Save writes data to W.
func (s WriterSaver) Save(data []byte, _ string) error {
	_, err := s.W.Write(data)
	return err
}
