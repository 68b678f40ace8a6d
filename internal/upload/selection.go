// Package upload implements the MEETA DRIVE upload pipeline: payload
// assembly, the multipart transfer itself, and observable progress state.
package upload

import (
	"bytes"
	"io"
)

// FileHandle is one selected file: a content source plus the metadata a
// transfer payload carries for it.
type FileHandle struct {
	// Name is the display name of the file.
	Name string

	// Size is the content size in bytes.
	Size int64

	// RelPath is the slash-separated path of the file relative to the
	// selected folder, including the folder name as first segment.
	// Empty for flat uploads.
	RelPath string

	// Open returns a fresh reader over the file content.
	Open func() (io.ReadCloser, error)
}

// FileSelection is an ordered sequence of selected file handles.
type FileSelection []FileHandle

// TotalBytes returns the summed size of all handles.
func (s FileSelection) TotalBytes() int64 {
	var total int64
	for _, h := range s {
		total += h.Size
	}
	return total
}

// MemoryHandle creates a FileHandle backed by an in-memory byte slice.
// Used by tests and by callers that already hold content in memory.
func MemoryHandle(name, relPath string, data []byte) FileHandle {
	return FileHandle{
		Name:    name,
		Size:    int64(len(data)),
		RelPath: relPath,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}
