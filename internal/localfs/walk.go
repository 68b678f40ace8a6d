// Package localfs builds upload selections from the local filesystem.
package localfs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MEETJOGANI/MEETA-DRIVE/internal/upload"
)

// WalkOptions controls selection building.
type WalkOptions struct {
	// IncludeHidden includes dot-files and descends into dot-directories.
	IncludeHidden bool
}

// FileHandle creates an upload handle for a file on disk.
func FileHandle(path, relPath string) (upload.FileHandle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return upload.FileHandle{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return upload.FileHandle{}, fmt.Errorf("%s is a directory, not a file", path)
	}

	return upload.FileHandle{
		Name:    filepath.Base(path),
		Size:    info.Size(),
		RelPath: relPath,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// CollectFiles builds a flat selection from explicit file paths.
func CollectFiles(paths []string) (upload.FileSelection, error) {
	selection := make(upload.FileSelection, 0, len(paths))
	for _, path := range paths {
		handle, err := FileHandle(path, "")
		if err != nil {
			return nil, err
		}
		selection = append(selection, handle)
	}
	return selection, nil
}

// CollectFolder walks root and builds a folder-mode selection. Every
// handle's relative path is slash-separated and rooted at the folder's
// base name, so the shared first segment is the folder name. Entries are
// returned in deterministic (lexical walk) order. Symlinks are skipped.
func CollectFolder(root string, opts WalkOptions) (upload.FileSelection, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	folderName := filepath.Base(absRoot)
	var selection upload.FileSelection

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == absRoot {
			return nil
		}

		hidden := strings.HasPrefix(d.Name(), ".")
		if d.IsDir() {
			if hidden && !opts.IncludeHidden {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden && !opts.IncludeHidden {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}

		handle, err := FileHandle(path, folderName+"/"+filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		selection = append(selection, handle)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Slice(selection, func(i, j int) bool {
		return selection[i].RelPath < selection[j].RelPath
	})

	return selection, nil
}
