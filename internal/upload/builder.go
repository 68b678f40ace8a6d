package upload

import (
	"errors"
	"strings"
)

// ErrInvalidFolderStructure is returned when a folder upload is attempted
// without derivable relative-path metadata. The transfer never starts.
var ErrInvalidFolderStructure = errors.New("folder selection carries no relative path metadata")

// ErrEmptySelection marks a selection with no files. Callers treat it as a
// silent no-op rather than a user-visible failure.
var ErrEmptySelection = errors.New("no files selected")

// TransferPayload is the assembled form content for one transfer request.
// For folder transfers, Paths is positionally aligned with Files and
// FolderName is the shared first path segment.
type TransferPayload struct {
	Files      []FileHandle
	ParentID   string
	FolderName string
	Paths      []string
}

// IsFolder reports whether the payload targets the folder-upload endpoint.
func (p *TransferPayload) IsFolder() bool {
	return p.FolderName != ""
}

// BuildFlatPayload assembles a payload for independently selected files.
// Pure transform: no side effects, no IO.
func BuildFlatPayload(selection FileSelection, parentID string) (*TransferPayload, error) {
	if len(selection) == 0 {
		return nil, ErrEmptySelection
	}

	return &TransferPayload{
		Files:    append([]FileHandle(nil), selection...),
		ParentID: parentID,
	}, nil
}

// BuildFolderPayload assembles a payload preserving a relative directory
// structure. The folder name is the first path segment of the first
// handle's relative path; every handle must carry a non-empty relative
// path or the build fails with ErrInvalidFolderStructure.
func BuildFolderPayload(selection FileSelection, parentID string) (*TransferPayload, error) {
	if len(selection) == 0 {
		return nil, ErrEmptySelection
	}

	folderName := firstSegment(selection[0].RelPath)
	if folderName == "" {
		return nil, ErrInvalidFolderStructure
	}

	paths := make([]string, len(selection))
	for i, h := range selection {
		if h.RelPath == "" {
			return nil, ErrInvalidFolderStructure
		}
		paths[i] = h.RelPath
	}

	return &TransferPayload{
		Files:      append([]FileHandle(nil), selection...),
		ParentID:   parentID,
		FolderName: folderName,
		Paths:      paths,
	}, nil
}

// firstSegment returns the first path segment of a slash-separated path,
// tolerating a leading slash.
func firstSegment(relPath string) string {
	trimmed := strings.TrimPrefix(relPath, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}
