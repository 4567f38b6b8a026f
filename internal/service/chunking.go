package service

import (
	"strings"
	"unicode"

	"github.com/cloo-solutions/veriflow/internal/domain"
)

// ChunkConfig controls how segments are windowed before embedding.
type ChunkConfig struct {
	MaxChars int
	MinChars int
	Overlap  int
}

// DefaultChunkConfig provides the ingestion defaults: 1000-character windows
// with 100 characters of overlap.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		MaxChars: 1000,
		MinChars: 400,
		Overlap:  100,
	}
}

// SplitSegments chunks every segment, each chunk inheriting its segment's
// metadata verbatim. Segments shorter than the window pass through as a
// single chunk.
func SplitSegments(segments []domain.Segment, cfg ChunkConfig) []domain.Chunk {
	chunks := make([]domain.Chunk, 0, len(segments))
	for _, seg := range segments {
		for i, content := range chunkText(seg.Content, cfg) {
			chunks = append(chunks, domain.Chunk{
				Content:  content,
				Index:    i,
				Metadata: seg.Metadata,
			})
		}
	}
	return chunks
}

func chunkText(text string, cfg ChunkConfig) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if cfg.MaxChars <= 0 {
		cfg = DefaultChunkConfig()
	}
	runes := []rune(text)
	if len(runes) <= cfg.MaxChars {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/cfg.MaxChars+1)
	start := 0
	for start < len(runes) {
		end := start + cfg.MaxChars
		if end > len(runes) {
			end = len(runes)
		}

		// Prefer a whitespace boundary near the window end over a
		// mid-token cut, falling back to the hard cut.
		if end < len(runes) {
			cut := end
			minCut := start + cfg.MinChars
			if minCut > end {
				minCut = start
			}
			for i := end; i > minCut; i-- {
				if unicode.IsSpace(runes[i-1]) {
					cut = i
					break
				}
			}
			end = cut
		}

		if end <= start {
			break
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= len(runes) {
			break
		}

		nextStart := end
		if cfg.Overlap > 0 && end-start > cfg.Overlap {
			nextStart = end - cfg.Overlap
		}
		if nextStart <= start {
			nextStart = end
		}
		start = nextStart
	}

	return chunks
}
