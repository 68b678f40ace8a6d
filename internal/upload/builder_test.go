package upload

import (
	"errors"
	"testing"
)

func TestBuildFlatPayload(t *testing.T) {
	selection := FileSelection{
		MemoryHandle("a.txt", "", []byte("aaa")),
		MemoryHandle("b.txt", "", []byte("bbbb")),
	}

	payload, err := BuildFlatPayload(selection, "42")
	if err != nil {
		t.Fatalf("BuildFlatPayload() error = %v, want nil", err)
	}

	if len(payload.Files) != len(selection) {
		t.Errorf("payload has %d files, want %d", len(payload.Files), len(selection))
	}
	if payload.Paths != nil {
		t.Errorf("flat payload should carry no paths field, got %v", payload.Paths)
	}
	if payload.FolderName != "" {
		t.Errorf("flat payload should carry no folder name, got %q", payload.FolderName)
	}
	if payload.ParentID != "42" {
		t.Errorf("ParentID = %q, want %q", payload.ParentID, "42")
	}
	if payload.IsFolder() {
		t.Error("flat payload reported IsFolder() = true")
	}
}

func TestBuildFlatPayloadEmptySelection(t *testing.T) {
	_, err := BuildFlatPayload(nil, "")
	if !errors.Is(err, ErrEmptySelection) {
		t.Errorf("BuildFlatPayload(empty) error = %v, want ErrEmptySelection", err)
	}
}

func TestBuildFolderPayload(t *testing.T) {
	selection := FileSelection{
		MemoryHandle("a.txt", "proj/a.txt", []byte("aaa")),
		MemoryHandle("b.txt", "proj/sub/b.txt", []byte("bbbb")),
	}

	payload, err := BuildFolderPayload(selection, "7")
	if err != nil {
		t.Fatalf("BuildFolderPayload() error = %v, want nil", err)
	}

	if payload.FolderName != "proj" {
		t.Errorf("FolderName = %q, want %q", payload.FolderName, "proj")
	}
	if len(payload.Paths) != len(payload.Files) {
		t.Fatalf("len(Paths) = %d, want %d", len(payload.Paths), len(payload.Files))
	}

	wantPaths := []string{"proj/a.txt", "proj/sub/b.txt"}
	for i, want := range wantPaths {
		if payload.Paths[i] != want {
			t.Errorf("Paths[%d] = %q, want %q", i, payload.Paths[i], want)
		}
	}
	if !payload.IsFolder() {
		t.Error("folder payload reported IsFolder() = false")
	}
}

func TestBuildFolderPayloadMissingRelativePath(t *testing.T) {
	selection := FileSelection{
		MemoryHandle("a.txt", "", []byte("aaa")),
	}

	_, err := BuildFolderPayload(selection, "")
	if !errors.Is(err, ErrInvalidFolderStructure) {
		t.Errorf("BuildFolderPayload() error = %v, want ErrInvalidFolderStructure", err)
	}
}

func TestBuildFolderPayloadPartialRelativePath(t *testing.T) {
	// First handle carries path metadata, second does not. The whole
	// build fails: positional alignment would be broken otherwise.
	selection := FileSelection{
		MemoryHandle("a.txt", "proj/a.txt", []byte("aaa")),
		MemoryHandle("b.txt", "", []byte("bbb")),
	}

	_, err := BuildFolderPayload(selection, "")
	if !errors.Is(err, ErrInvalidFolderStructure) {
		t.Errorf("BuildFolderPayload() error = %v, want ErrInvalidFolderStructure", err)
	}
}

func TestFirstSegment(t *testing.T) {
	tests := []struct {
		relPath string
		want    string
	}{
		{"proj/a.txt", "proj"},
		{"/proj/a.txt", "proj"},
		{"proj/sub/b.txt", "proj"},
		{"single", "single"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := firstSegment(tt.relPath); got != tt.want {
			t.Errorf("firstSegment(%q) = %q, want %q", tt.relPath, got, tt.want)
		}
	}
}

func TestSelectionTotalBytes(t *testing.T) {
	selection := FileSelection{
		MemoryHandle("a.txt", "", []byte("aaa")),
		MemoryHandle("b.txt", "", []byte("bbbb")),
	}
	if got := selection.TotalBytes(); got != 7 {
		t.Errorf("TotalBytes() = %d, want 7", got)
	}
}
