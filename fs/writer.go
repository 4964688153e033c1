// Package fs exports records as markdown files.
package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/casescout"
)

// URLToPath converts a page URL to a relative file path.
// Example: https://example.com/customers/acme → customers/acme.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	p := u.Path

	// Handle root or trailing slash → index.md
	if p == "" || p == "/" {
		return "index.md", nil
	}

	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", casescout.Errorf(casescout.EINVALID, "path traversal in %q", rawURL)
		}
	}

	trailing := strings.HasSuffix(p, "/")
	p = strings.TrimPrefix(path.Clean(p), "/")

	// Trailing slash becomes index.md in that directory
	if trailing {
		return p + "/index.md", nil
	}

	return p + ".md", nil
}

// FormatRecord formats a record with YAML frontmatter.
func FormatRecord(rec *casescout.Record) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(rec.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(rec.Title)
	fmt.Fprintf(&b, "\nposition: %d", rec.Position)
	if rec.ContentHash != "" {
		b.WriteString("\nhash: ")
		b.WriteString(rec.ContentHash)
	}
	b.WriteString("\nscraped: ")
	b.WriteString(rec.CreatedAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(rec.Body)
	return b.String()
}

var _ casescout.RecordWriter = (*Writer)(nil)

// Writer writes records as markdown files into baseDir/name. Files are
// staged in baseDir/name.tmp and replace the final directory on Commit.
type Writer struct {
	baseDir string
	name    string
}

// NewWriter creates a new Writer.
func NewWriter(baseDir, name string) *Writer {
	return &Writer{baseDir: baseDir, name: name}
}

func (w *Writer) tempDir() string {
	return filepath.Join(w.baseDir, w.name+".tmp")
}

// Dir returns the directory the records end up in after Commit.
func (w *Writer) Dir() string {
	return filepath.Join(w.baseDir, w.name)
}

// CreateRecord writes a record to the staging directory. Failed records
// are rejected.
func (w *Writer) CreateRecord(_ context.Context, rec *casescout.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if rec.Failed() {
		return casescout.Errorf(casescout.EINVALID, "record %q failed: %s", rec.URL, rec.Error)
	}

	relPath, err := URLToPath(rec.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.tempDir(), relPath)

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatRecord(rec)), 0644)
}

// Commit replaces the final directory with the staged files.
func (w *Writer) Commit() error {
	if err := os.MkdirAll(w.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(w.Dir()); err != nil {
		return err
	}
	return os.Rename(w.tempDir(), w.Dir())
}

// Abort discards the staged files.
func (w *Writer) Abort() error {
	return os.RemoveAll(w.tempDir())
}
