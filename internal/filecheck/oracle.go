// Package filecheck answers whether the files a samplesheet points to exist,
// are non-empty and carry an expected extension.
package filecheck

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Info is what an Oracle knows about a path.
type Info struct {
	Exists bool
	Size   int64
}

// Oracle reports existence and size of a path. A missing path is not an
// error; errors mean the question could not be answered.
type Oracle interface {
	Stat(ctx context.Context, path string) (Info, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context, path string) (Info, error)

// Stat calls f.
func (f OracleFunc) Stat(ctx context.Context, path string) (Info, error) {
	return f(ctx, path)
}

// Local answers from the local filesystem. Directories count as absent.
type Local struct{}

// Stat implements Oracle.
func (Local) Stat(_ context.Context, path string) (Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Info{}, nil
		}
		return Info{}, err
	}
	if st.IsDir() {
		return Info{}, nil
	}
	return Info{Exists: true, Size: st.Size()}, nil
}

// Memory answers from a fixed set of paths and sizes.
type Memory struct {
	files map[string]int64
}

// NewMemory returns an oracle that knows exactly files (path -> size).
func NewMemory(files map[string]int64) *Memory {
	m := &Memory{files: make(map[string]int64, len(files))}
	for p, size := range files {
		m.files[p] = size
	}
	return m
}

// Stat implements Oracle.
func (m *Memory) Stat(_ context.Context, path string) (Info, error) {
	size, ok := m.files[path]
	if !ok {
		return Info{}, nil
	}
	return Info{Exists: true, Size: size}, nil
}

// S3Scheme prefixes object store paths.
const S3Scheme = "s3://"

// ErrNoS3 is returned for s3:// paths when no object store is configured.
var ErrNoS3 = errors.New("no S3 access configured")

// Router sends s3:// paths to S3 and everything else to Local.
type Router struct {
	Local Oracle
	S3    Oracle
}

// Stat implements Oracle.
func (r Router) Stat(ctx context.Context, path string) (Info, error) {
	if strings.HasPrefix(path, S3Scheme) {
		if r.S3 == nil {
			return Info{}, fmt.Errorf("%s: %w", path, ErrNoS3)
		}
		return r.S3.Stat(ctx, path)
	}
	if r.Local == nil {
		return Local{}.Stat(ctx, path)
	}
	return r.Local.Stat(ctx, path)
}
