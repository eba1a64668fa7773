// Package output places generated source files under a source root.
package output

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/renameio/v2"
)

// ErrOutsideRoot is returned for a file that would be written outside the root.
var ErrOutsideRoot = errors.New("output: path escapes the source root")

// ErrInvalidName is returned for an empty or path-like file name.
var ErrInvalidName = errors.New("output: invalid file name")

// ErrInvalidPackage is returned for a package name with an empty segment.
var ErrInvalidPackage = errors.New("output: invalid package name")

const (
	defaultFilePerm = 0o644
	defaultDirPerm  = 0o755
)

// File is a generated source file.
type File struct {
	// Package is the dotted package name; empty for the default package.
	Package string
	// Name is the file name, e.g. "EchoService.java".
	Name string
	// Content is the source text.
	Content []byte
}

// Rel returns the path of f relative to a source root.
func (f *File) Rel() string {
	if f.Package == "" {
		return f.Name
	}

	return filepath.Join(append(strings.Split(f.Package, "."), f.Name)...)
}

// Writer persists files under Root. Each file is replaced atomically.
type Writer struct {
	Root     string
	FilePerm os.FileMode
	DirPerm  os.FileMode
}

// New creates a writer for root.
func New(root string) *Writer {
	return &Writer{Root: root, FilePerm: defaultFilePerm, DirPerm: defaultDirPerm}
}

// Path returns where a file named name in package pkg is placed.
func (w *Writer) Path(pkg, name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", errors.Wrapf(ErrInvalidName, "%q", name)
	}

	if err := checkPackage(pkg); err != nil {
		return "", err
	}

	root, err := filepath.Abs(w.Root)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", w.Root)
	}

	f := &File{Package: pkg, Name: name}

	return filepath.Join(root, f.Rel()), nil
}

// Write places f under the root, creating package directories as needed, and
// returns the written path.
func (w *Writer) Write(f *File) (string, error) {
	path, err := w.Path(f.Package, f.Name)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), w.dirPerm()); err != nil {
		return "", errors.Wrapf(err, "creating %s", filepath.Dir(path))
	}

	if err := renameio.WriteFile(path, f.Content, w.filePerm()); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}

	return path, nil
}

// checkPackage rejects package names whose segments could leave the package
// directory.
func checkPackage(pkg string) error {
	if pkg == "" {
		return nil
	}

	for _, segment := range strings.Split(pkg, ".") {
		if segment == "" {
			return errors.Wrapf(ErrInvalidPackage, "%q", pkg)
		}

		if strings.ContainsAny(segment, `/\`) {
			return errors.WithHintf(
				errors.Wrapf(ErrOutsideRoot, "package %q", pkg),
				"package names must not contain path separators",
			)
		}
	}

	return nil
}

func (w *Writer) filePerm() os.FileMode {
	if w.FilePerm == 0 {
		return defaultFilePerm
	}

	return w.FilePerm
}

func (w *Writer) dirPerm() os.FileMode {
	if w.DirPerm == 0 {
		return defaultDirPerm
	}

	return w.DirPerm
}
