package domain

import (
	"strings"
	"time"
)

// SegmentType discriminates what a segment carries.
type SegmentType string

const (
	// SegmentTypeText marks human-readable content.
	SegmentTypeText SegmentType = "text"
	// SegmentTypeCode marks literal markup or source code.
	SegmentTypeCode SegmentType = "code"
)

// HTMLArtifactName is the fixed name the latest uploaded HTML page is stored
// under. Only the most recent upload is addressable; each new upload
// overwrites the previous one.
const HTMLArtifactName = "checkout.html"

// Metadata identifies where a segment came from. Source always traces back
// to an uploaded file name or to HTMLArtifactName so retrieval results stay
// attributable.
type Metadata struct {
	Source string      `json:"source"`
	Type   SegmentType `json:"type,omitempty"`
	Page   int         `json:"page,omitempty"`
}

// Segment is a unit of loaded document text. Segments are immutable once
// produced by a loader; the chunker consumes them.
type Segment struct {
	Content  string
	Metadata Metadata
}

// Chunk is a windowed slice of a segment's content. Its metadata is the
// originating segment's metadata, unchanged.
type Chunk struct {
	Content  string
	Index    int
	Metadata Metadata
}

// StoredChunk is a chunk as persisted in the knowledge store, with its
// embedding attached.
type StoredChunk struct {
	ID        string
	Content   string
	Index     int
	Metadata  Metadata
	Embedding []float32
	CreatedAt time.Time
}

// ValidateSegment checks that a segment is storable.
func ValidateSegment(s *Segment) error {
	if strings.TrimSpace(s.Content) == "" {
		return ErrEmptySegment
	}
	if s.Metadata.Source == "" {
		return ErrMissingSource
	}
	return nil
}
