package autocomplete

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/agentstation/acgen/pkg/constants"
	"github.com/agentstation/acgen/pkg/errors"
)

// Artifacts are the rendered files of one shell.
type Artifacts struct {
	Shell            Shell
	SetupPath        string
	SetupScript      string // empty when the shell needs no setup script
	CompletionPath   string
	CompletionScript string
}

// Writer writes artifacts to a filesystem. Files are overwritten in place.
type Writer struct {
	fs afero.Fs
}

// NewWriter returns a writer backed by fs.
func NewWriter(fs afero.Fs) *Writer {
	return &Writer{fs: fs}
}

// Write creates the completion directory, then writes the setup script and
// the completion script. The first failure is returned as an IOError.
func (w *Writer) Write(a Artifacts) error {
	dir := filepath.Dir(a.CompletionPath)
	if err := w.fs.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("mkdir", dir, err)
	}
	if a.SetupScript != "" {
		if err := w.fs.MkdirAll(filepath.Dir(a.SetupPath), constants.DirPermissions); err != nil {
			return errors.WrapIO("mkdir", filepath.Dir(a.SetupPath), err)
		}
		if err := afero.WriteFile(w.fs, a.SetupPath, []byte(a.SetupScript), constants.FilePermissions); err != nil {
			return errors.WrapIO("write", a.SetupPath, err)
		}
	}
	if err := afero.WriteFile(w.fs, a.CompletionPath, []byte(a.CompletionScript), constants.FilePermissions); err != nil {
		return errors.WrapIO("write", a.CompletionPath, err)
	}
	return nil
}
