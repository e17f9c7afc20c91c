package model

import (
	"time"
)

type File struct {
	ID               int64     `db:"id" json:"id"`
	UserID           int64     `db:"user_id" json:"user_id"`
	Filename         string    `db:"filename" json:"filename"`                   // generated, unique per user
	OriginalFilename string    `db:"original_filename" json:"original_filename"` // as uploaded
	FilePath         string    `db:"file_path" json:"file_path"`                 // relative to the storage root
	MimeType         string    `db:"mime_type" json:"mime_type"`
	Size             int64     `db:"size" json:"size"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`

	// Computed fields (not in database)
	URL string `db:"-" json:"url"`
}

func FileID(f *File) int64 { return f.ID }
