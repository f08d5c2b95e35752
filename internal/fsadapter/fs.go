package fsadapter

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

var _ FileCreator = Filesystem{}

// Filesystem creates files in a directory.  A file being written is kept
// under a temporary name and replaces the target only on a successful Close,
// so readers never see a partially written file and an existing file is
// overwritten in one step.
type Filesystem struct {
	dir string
}

func NewFilesystem(dir string) Filesystem {
	return Filesystem{dir: dir}
}

// Create creates or truncates the file fpath relative to the filesystem
// directory, creating the parent directories as needed.
func (fs Filesystem) Create(fpath string) (io.WriteCloser, error) {
	node := filepath.Join(fs.dir, fpath)
	nodeDir := filepath.Dir(node)
	if err := mkdir(nodeDir); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(nodeDir, "."+filepath.Base(node)+".*")
	if err != nil {
		return nil, err
	}
	return &replacer{f: f, target: node}, nil
}

// replacer renames the temporary file to the target on Close.
type replacer struct {
	f      *os.File
	target string
	failed bool
}

func (r *replacer) Write(p []byte) (int, error) {
	n, err := r.f.Write(p)
	if err != nil {
		r.failed = true
	}
	return n, err
}

func (r *replacer) Close() error {
	tmp := r.f.Name()
	if err := r.f.Close(); err != nil || r.failed {
		os.Remove(tmp)
		if err == nil {
			err = errors.New("write failed, " + r.target + " left unchanged")
		}
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, r.target); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// mkdir creates a directory "name", if the directory exists, it does nothing.
func mkdir(name string) error {
	if name == "" {
		return errors.New("empty directory")
	}

	fi, err := os.Stat(name)
	if err == nil && fi.IsDir() {
		// exists and is a directory
		return nil
	}

	if err := os.MkdirAll(name, 0755); err != nil {
		return err
	}
	return nil
}
