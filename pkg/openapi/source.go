package openapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SourceKind enumerates where a document is read from.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
)

// Source identifies an OpenAPI document.
type Source interface {
	Kind() SourceKind
	Location() string
}

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile points at a file on disk.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS points at a file inside the loader's fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem sets the filesystem used by fs sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(l *Loader) { l.fs = files }
}

// Loader reads raw documents from files or an fs.FS.
type Loader struct {
	fs fs.FS
}

// NewLoader builds a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load returns the raw bytes of src.
func (l *Loader) Load(ctx context.Context, src Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("openapi: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if l.fs == nil {
			return nil, errors.New("openapi: filesystem is not configured")
		}
		data, err = fs.ReadFile(l.fs, src.Location())
	default:
		return nil, fmt.Errorf("openapi: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", src.Location(), err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("openapi: %s is empty", src.Location())
	}
	return data, nil
}
