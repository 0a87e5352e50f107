// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Kind distinguishes the resource variants held by the catalog.
type Kind string

const (
	KindVideo    Kind = "video"
	KindDocument Kind = "document"
)

// Record is implemented by every catalog variant. Filtering and lookup only
// ever look at the common Resource part.
type Record interface {
	Common() Resource
	Kind() Kind
}

// Resource holds the fields shared by all catalog entries.
type Resource struct {
	ID          int    `yaml:"id" json:"id" validate:"gt=0"`
	Title       string `yaml:"title" json:"title" validate:"required"`
	Description string `yaml:"description" json:"description" validate:"required"`
	Category    string `yaml:"category" json:"category" validate:"required"`
	Thumbnail   string `yaml:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Published   string `yaml:"published,omitempty" json:"published,omitempty"`
}

// Common returns the shared part of a record.
func (r Resource) Common() Resource {
	return r
}

// VideoSource points at the playable media. Exactly one of File (a path
// served alongside the site) or DriveID (an externally hosted file) is set.
type VideoSource struct {
	File    string `yaml:"file,omitempty" json:"file,omitempty" validate:"required_without=DriveID,excluded_with=DriveID"`
	DriveID string `yaml:"drive_id,omitempty" json:"drive_id,omitempty" validate:"required_without=File"`
}

// IsLocal reports whether the video is served from a local file.
func (s VideoSource) IsLocal() bool {
	return s.File != ""
}

// Video is a catalog entry for a short educational video.
type Video struct {
	Resource     `yaml:",inline"`
	Duration     string        `yaml:"duration" json:"duration" validate:"required"`
	Source       VideoSource   `yaml:"source" json:"source"`
	Presentation *Presentation `yaml:"presentation,omitempty" json:"presentation,omitempty"`
}

// Kind implements Record.
func (Video) Kind() Kind { return KindVideo }

// HasPresentation reports whether downloadable slides accompany the video.
func (v Video) HasPresentation() bool {
	return v.Presentation != nil
}

// Document is a catalog entry for a downloadable document.
type Document struct {
	Resource   `yaml:",inline"`
	Pages      int    `yaml:"pages" json:"pages" validate:"gt=0"`
	DownloadID string `yaml:"download_id,omitempty" json:"download_id,omitempty"`
}

// Kind implements Record.
func (Document) Kind() Kind { return KindDocument }

// Downloadable reports whether the document has an external file to hand off to.
func (d Document) Downloadable() bool {
	return d.DownloadID != ""
}

// Presentation is the slide deck attached to a video. Description is Markdown.
type Presentation struct {
	Title       string       `yaml:"title" json:"title" validate:"required"`
	FileSize    string       `yaml:"file_size" json:"file_size" validate:"required"`
	Format      string       `yaml:"format" json:"format" validate:"required"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	DownloadID  string       `yaml:"download_id,omitempty" json:"download_id,omitempty"`
	Attachments []Attachment `yaml:"attachments,omitempty" json:"attachments,omitempty" validate:"dive"`
}

// Downloadable reports whether the deck has an external file to hand off to.
func (p Presentation) Downloadable() bool {
	return p.DownloadID != ""
}

// Attachment is a supporting file listed alongside a presentation.
type Attachment struct {
	Name   string `yaml:"name" json:"name" validate:"required"`
	Format string `yaml:"format" json:"format" validate:"required"`
	Size   string `yaml:"size" json:"size" validate:"required"`
}
