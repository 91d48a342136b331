package models

import "time"

type Document struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	FileName    string    `json:"file_name"`
	FilePath    string    `json:"-"`
	FileSize    int64     `json:"file_size"`
	FileType    string    `json:"file_type"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
}

func ValidDocumentType(s string) bool {
	switch s {
	case "pdf", "video", "image", "manual":
		return true
	}
	return false
}
