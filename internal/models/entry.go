package models

import "time"

// MIME type the backend uses to mark folder entries.
const MimeTypeFolder = "folder"

// Entry represents a file or folder stored in MEETA DRIVE.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MimeType  string    `json:"mimeType"`
	Size      int64     `json:"size"`
	ParentID  string    `json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsFolder reports whether the entry is a folder.
func (e Entry) IsFolder() bool {
	return e.MimeType == MimeTypeFolder
}

// CreateFolderRequest is the JSON body for POST /api/folders.
type CreateFolderRequest struct {
	Name     string `json:"name"`
	ParentID string `json:"parentId,omitempty"`
	MimeType string `json:"mimeType"`
}
