package static

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"time"
)

// Source errors.
var (
	ErrNotExist = errors.New("static: file does not exist")
	ErrIsDir    = errors.New("static: is a directory")
)

// FileInfo describes a file or directory in a Source.
type FileInfo struct {
	// Name is the slash-separated path relative to the source root.
	Name string

	Size    int64
	ModTime time.Time
	IsDir   bool

	// ContentType is the type recorded by the source, if any.
	ContentType string

	// ETag is the entity tag reported by the source, if any.
	ETag string
}

// File is an open file. Body implements io.ReadSeeker when the source
// supports random access.
type File struct {
	FileInfo
	Body io.ReadCloser
}

// Source provides files by slash-separated relative name. The empty
// name is the root directory.
type Source interface {
	Stat(ctx context.Context, name string) (*FileInfo, error)
	Open(ctx context.Context, name string) (*File, error)
}

// DirSource serves files from an fs.FS, typically os.DirFS.
type DirSource struct {
	fsys fs.FS
}

// NewDirSource creates a source backed by fsys.
func NewDirSource(fsys fs.FS) *DirSource {
	return &DirSource{fsys: fsys}
}

// Stat implements Source.
func (s *DirSource) Stat(_ context.Context, name string) (*FileInfo, error) {
	info, err := fs.Stat(s.fsys, fsName(name))
	if err != nil {
		return nil, mapFSError(err)
	}
	return &FileInfo{
		Name:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}, nil
}

// Open implements Source.
func (s *DirSource) Open(_ context.Context, name string) (*File, error) {
	f, err := s.fsys.Open(fsName(name))
	if err != nil {
		return nil, mapFSError(err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, mapFSError(err)
	}
	if info.IsDir() {
		f.Close()
		return nil, ErrIsDir
	}
	return &File{
		FileInfo: FileInfo{
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		},
		Body: f,
	}, nil
}

func fsName(name string) string {
	if name == "" {
		return "."
	}
	return name
}

func mapFSError(err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
		return ErrNotExist
	}
	return err
}
