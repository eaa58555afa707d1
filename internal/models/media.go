package models

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/gorm"
)

// Media represents a registered media source (video/audio file). The
// MediaID is derived from the file's name, size and mtime so the same
// file resolves to the same annotation set across sessions.
type Media struct {
	gorm.Model
	MediaID  string `json:"media_id" gorm:"uniqueIndex;not null"`
	Path     string `json:"path" gorm:"not null"`
	Filename string `json:"filename" gorm:"not null"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

// TableName returns the table name for the Media model
func (Media) TableName() string {
	return "media"
}

// DeriveMediaID generates a stable media ID from a file path.
func DeriveMediaID(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat media file: %w", err)
	}
	return fmt.Sprintf("%s_%d_%d", filepath.Base(path), info.Size(), info.ModTime().Unix()), nil
}
