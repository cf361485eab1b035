package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/filex"
)

// FileSnapshotter keeps the document in a single file at a fixed path.
type FileSnapshotter struct {
	path string
}

func NewFileSnapshotter(path string) *FileSnapshotter {
	return &FileSnapshotter{path: path}
}

func (f *FileSnapshotter) Path() string { return f.path }

// Save replaces the file through a temp file and rename.
func (f *FileSnapshotter) Save(_ context.Context, d *Document) error {
	data, err := Encode(d)
	if err != nil {
		return err
	}
	if err := filex.WriteFileAtomic(f.path, data, 0o644); err != nil {
		return fmt.Errorf("save snapshot %s: %w", f.path, err)
	}
	return nil
}

func (f *FileSnapshotter) Load(_ context.Context) (*Document, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("snapshot %s: %w", f.path, common.ErrorNotFound)
		}
		return nil, fmt.Errorf("read snapshot %s: %w", f.path, err)
	}
	return Decode(data)
}
