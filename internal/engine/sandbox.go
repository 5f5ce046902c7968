package engine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SourceReader is the only file capability a scan has: it opens one fixed
// file and nothing else.
type SourceReader interface {
	// Name is the path of the file relative to the data directory.
	Name() string
	Open() (io.ReadCloser, error)
}

// sandbox is what a single scan may touch.
type sandbox struct {
	source  SourceReader
	decoder RowDecoder
}

// newSandbox builds the capabilities for reading path.
func (e *Engine) newSandbox(path string) (*sandbox, error) {
	rel, err := e.Resolve(path)
	if err != nil {
		return nil, err
	}
	return &sandbox{
		source:  &rootSource{dir: e.dataDir, name: rel},
		decoder: &csvDecoder{comma: e.delimiter},
	}, nil
}

// Resolve maps a query path to a path relative to the data directory.
// Absolute paths are accepted only when they lie inside it.
func (e *Engine) Resolve(path string) (string, error) {
	p := path
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(e.dataDir, p)
		if err != nil {
			return "", fmt.Errorf("path %q is outside the data directory", path)
		}
		p = rel
	}
	p = filepath.Clean(p)
	if !filepath.IsLocal(p) {
		return "", fmt.Errorf("path %q is outside the data directory", path)
	}
	return p, nil
}

// rootSource opens its file through an os.Root on the data directory, so
// symlinks and ".." cannot leave it.
type rootSource struct {
	dir  string
	name string
}

func (s *rootSource) Name() string { return s.name }

func (s *rootSource) Open() (io.ReadCloser, error) {
	root, err := os.OpenRoot(s.dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = root.Close() }()

	f, err := root.Open(s.name)
	if err != nil {
		return nil, err
	}
	return f, nil
}
