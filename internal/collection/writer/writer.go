package writer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/unkn0wn-root/pmgen/internal/collection"
	"github.com/unkn0wn-root/pmgen/internal/errdef"
	"github.com/unkn0wn-root/pmgen/internal/postman"
)

type FileWriter struct{}

func NewFileWriter() *FileWriter {
	return &FileWriter{}
}

func (w *FileWriter) WriteDocument(
	ctx context.Context,
	c *postman.Collection,
	destination string,
	opts collection.WriterOptions,
) error {
	return WriteDocument(ctx, c, destination, opts.OverwriteExisting)
}

// Render encodes the collection as two-space indented JSON with a trailing newline.
func Render(c *postman.Collection) ([]byte, error) {
	if c == nil {
		return nil, errdef.New(errdef.CodeEncode, "writer: collection is nil")
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return nil, errdef.Wrap(errdef.CodeEncode, err, "writer: encode collection")
	}
	return buf.Bytes(), nil
}

func WriteDocument(ctx context.Context, c *postman.Collection, dst string, overwrite bool) error {
	if strings.TrimSpace(dst) == "" {
		return errdef.New(errdef.CodeFilesystem, "writer: destination path is empty")
	}
	content, err := Render(c)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return WriteFile(dst, content, overwrite)
}

// WriteFile replaces dst atomically through a temp file in the same directory.
// With overwrite unset an existing dst is an error.
func WriteFile(dst string, content []byte, overwrite bool) error {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "writer: create directory")
	}

	if !overwrite {
		if _, err := os.Stat(dst); err == nil {
			return errdef.New(errdef.CodeFilesystem, "writer: destination %s already exists", dst)
		}
	}

	tmp, err := os.CreateTemp(dir, ".pmgen-*"+filepath.Ext(dst))
	if err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "writer: create temp file")
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return errdef.Wrap(errdef.CodeFilesystem, err, "writer: write temp file")
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return errdef.Wrap(errdef.CodeFilesystem, err, "writer: chmod temp file")
	}
	if err := tmp.Close(); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "writer: close temp file")
	}

	if err := os.Rename(tmpName, dst); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "writer: rename temp file")
	}
	return nil
}

// Diff returns a unified diff from the file at path to content. A missing
// file diffs as empty. The result is "" when they match.
func Diff(path string, content []byte) (string, error) {
	existing, err := os.ReadFile(path)
	oldLabel := path
	switch {
	case errors.Is(err, fs.ErrNotExist):
		existing = nil
		oldLabel = "/dev/null"
	case err != nil:
		return "", errdef.Wrap(errdef.CodeFilesystem, err, "writer: read %s", path)
	}
	if bytes.Equal(existing, content) {
		return "", nil
	}
	return udiff.Unified(oldLabel, path, string(existing), string(content)), nil
}

// Copy streams the rendered collection to w.
func Copy(w io.Writer, c *postman.Collection) error {
	content, err := Render(c)
	if err != nil {
		return err
	}
	if _, err := w.Write(content); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "writer: write output")
	}
	return nil
}
