package models

import (
	"time"
)

// Kind tags an Item as a file or a folder.
type Kind string

const (
	KindFile   Kind = "file"
	KindFolder Kind = "folder"
)

// Valid reports whether the kind is one of the known tags.
func (k Kind) Valid() bool {
	return k == KindFile || k == KindFolder
}

// Folder is a node in the owner's folder tree.
type Folder struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"user_id" db:"user_id"`
	ParentID  *string   `json:"parent_folder_id" db:"parent_folder_id"` // NULL = root level
	Name      string    `json:"name" db:"name"`
	Starred   bool      `json:"is_starred" db:"is_starred"`
	Trashed   bool      `json:"is_trashed" db:"is_trashed"`
	Shared    bool      `json:"shared" db:"shared"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// File is an uploaded file record. Bytes live in the blob store under
// BlobKey; the row holds metadata only.
type File struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"user_id" db:"user_id"`
	ParentID  *string   `json:"parent_folder_id" db:"parent_folder_id"` // NULL = root level
	Name      string    `json:"name" db:"name"`
	MimeType  *string   `json:"file_type" db:"file_type"`
	SizeBytes int64     `json:"size" db:"size"`
	BlobKey   string    `json:"file_path" db:"file_path"`
	Starred   bool      `json:"is_starred" db:"is_starred"`
	Trashed   bool      `json:"is_trashed" db:"is_trashed"`
	Shared    bool      `json:"shared" db:"shared"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Item is the tagged union used for mixed file/folder listings. File-only
// fields are pointers so folder items omit them from JSON.
type Item struct {
	Kind      Kind      `json:"kind"`
	ID        string    `json:"id"`
	OwnerID   string    `json:"user_id"`
	ParentID  *string   `json:"parent_folder_id"`
	Name      string    `json:"name"`
	MimeType  *string   `json:"file_type,omitempty"`
	SizeBytes *int64    `json:"size,omitempty"`
	Starred   bool      `json:"is_starred"`
	Trashed   bool      `json:"is_trashed"`
	Shared    bool      `json:"shared"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item converts the folder to its tagged-union form.
func (f *Folder) Item() Item {
	return Item{
		Kind:      KindFolder,
		ID:        f.ID,
		OwnerID:   f.OwnerID,
		ParentID:  f.ParentID,
		Name:      f.Name,
		Starred:   f.Starred,
		Trashed:   f.Trashed,
		Shared:    f.Shared,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// Item converts the file to its tagged-union form.
func (f *File) Item() Item {
	size := f.SizeBytes
	return Item{
		Kind:      KindFile,
		ID:        f.ID,
		OwnerID:   f.OwnerID,
		ParentID:  f.ParentID,
		Name:      f.Name,
		MimeType:  f.MimeType,
		SizeBytes: &size,
		Starred:   f.Starred,
		Trashed:   f.Trashed,
		Shared:    f.Shared,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// PathSegment is one element of a breadcrumb path, root first.
type PathSegment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
