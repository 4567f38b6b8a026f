// Package ingest turns uploaded files into text segments ready for
// chunking and embedding.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/cloo-solutions/veriflow/internal/domain"
)

// LoadDocument reads a support file and returns its segments. PDF files
// produce one segment per page; every other extension (txt, md, json, ...)
// is read as UTF-8 text and produces a single segment. Errors are
// recoverable: the caller skips the file and continues the batch.
func LoadDocument(filePath, fileName string) ([]domain.Segment, error) {
	if strings.EqualFold(filepath.Ext(fileName), ".pdf") {
		return loadPDF(filePath, fileName)
	}
	return loadText(filePath, fileName)
}

func loadText(filePath, fileName string) ([]domain.Segment, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("file %s is not valid UTF-8", fileName)
	}

	return []domain.Segment{{
		Content:  string(data),
		Metadata: domain.Metadata{Source: fileName},
	}}, nil
}

func loadPDF(filePath, fileName string) ([]domain.Segment, error) {
	file, reader, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer file.Close()

	totalPages := reader.NumPage()
	segments := make([]domain.Segment, 0, totalPages)
	for i := 1; i <= totalPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip problematic pages instead of failing the whole file.
			continue
		}
		segments = append(segments, domain.Segment{
			Content:  text,
			Metadata: domain.Metadata{Source: fileName, Page: i},
		})
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("no text extracted from %s", fileName)
	}
	return segments, nil
}
