package reportpdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Result holds a finished export and provides helpers for common output
// forms: raw bytes, base64, streaming readers, and handing off to a
// [Saver].
//
// A Result only exists for exports that completed; a failed export never
// produces one. It is safe to call its methods multiple times; the
// underlying data is never modified.
type Result struct {
	data     []byte
	filename string
}

// Bytes returns the raw PDF content.
func (r *Result) Bytes() []byte {
	return r.data
}

// Filename returns the target filename for this export.
func (r *Result) Filename() string {
	return r.filename
}

// Base64 returns the PDF encoded as a standard base64 string (RFC 4648).
// This is useful for embedding in JSON payloads or uploading to services
// that accept base64-encoded content.
func (r *Result) Base64() string {
	return base64.StdEncoding.EncodeToString(r.data)
}

// Reader returns an [*bytes.Reader] over the PDF content, suitable for
// streaming uploads or any API that accepts an [io.Reader].
func (r *Result) Reader() *bytes.Reader {
	return bytes.NewReader(r.data)
}

// WriteTo writes the full PDF content to w. It implements [io.WriterTo].
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// WriteToFile writes the PDF to the file at path, creating it if needed.
func (r *Result) WriteToFile(path string, perm os.FileMode) error {
	return os.WriteFile(path, r.data, perm)
}

// Save hands the document bytes and target filename to the save
// collaborator.
func (r *Result) Save(s Saver) error {
	if err := s.Save(r.data, r.filename); err != nil {
		return fmt.Errorf("reportpdf: saving %s: %w", r.filename, err)
	}
	return nil
}

// Len returns the size of the PDF in bytes.
func (r *Result) Len() int {
	return len(r.data)
}

// PageCount parses the document and returns its number of pages.
func (r *Result) PageCount() (int, error) {
	ctx, err := api.ReadContext(r.Reader(), nil)
	if err != nil {
		return 0, fmt.Errorf("reportpdf: reading document: %w", err)
	}
	return ctx.PageCount, nil
}

// Validate checks the document's structural integrity.
func (r *Result) Validate() error {
	ctx, err := api.ReadContext(r.Reader(), nil)
	if err != nil {
		return fmt.Errorf("reportpdf: reading document: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return fmt.Errorf("reportpdf: validating document: %w", err)
	}
	return nil
}
