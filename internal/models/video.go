package models

import (
	"fmt"
	"strings"
	"time"
)

// VideoMetadata is the preview produced by the extractor. It has no identity
// until it is saved as a VideoRecord.
type VideoMetadata struct {
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	VideoURL  string `json:"video_url"`
	EmbedHTML string `json:"embed_html"`
}

type VideoRecord struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Thumbnail string    `json:"thumbnail"`
	SourceURL string    `json:"source_url"`
	VideoURL  string    `json:"video_url"`
	EmbedHTML string    `json:"embed_html"`
	CreatedAt time.Time `json:"created_at"`
}

// NewVideo carries the user supplied fields of a record about to be saved.
type NewVideo struct {
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	SourceURL string `json:"source_url"`
	VideoURL  string `json:"video_url"`
	EmbedHTML string `json:"embed_html"`
}

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Validate reports every required field that is empty. Thumbnail is optional.
func (v NewVideo) Validate() error {
	var missing []string
	if v.Title == "" {
		missing = append(missing, "title")
	}
	if v.SourceURL == "" {
		missing = append(missing, "source_url")
	}
	if v.VideoURL == "" {
		missing = append(missing, "video_url")
	}
	if v.EmbedHTML == "" {
		missing = append(missing, "embed_html")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
