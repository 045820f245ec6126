// Package pdffile implements the PageSource port over a local PDF file.
// The document is consumed as a black box: page count and extracted
// page text, nothing about rendering.
package pdffile

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.PageSource = (*Source)(nil)

// Source reads page count and page text from a PDF on disk.
type Source struct {
	file   *os.File
	reader *pdf.Reader

	mu    sync.Mutex
	cache map[int]string // page -> extracted text
}

// Open opens a PDF file as a page source.
func Open(path string) (*Source, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	return &Source{
		file:   file,
		reader: reader,
		cache:  make(map[int]string),
	}, nil
}

// Close releases the underlying file.
func (s *Source) Close() error {
	return s.file.Close()
}

// PageCount returns the total number of pages.
func (s *Source) PageCount(_ context.Context) (int, error) {
	return s.reader.NumPage(), nil
}

// PageText returns the extracted text of a 1-based page. Extraction is
// cached per page; the underlying parser re-walks the content stream on
// every call otherwise.
func (s *Source) PageText(ctx context.Context, page int) (string, error) {
	if page < 1 || page > s.reader.NumPage() {
		return "", fmt.Errorf("%w: page %d of %d", domain.ErrNotFound, page, s.reader.NumPage())
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if text, ok := s.cache[page]; ok {
		return text, nil
	}

	p := s.reader.Page(page)
	if p.V.IsNull() {
		return "", fmt.Errorf("%w: page %d has no content", domain.ErrNotFound, page)
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("extracting page %d text: %w", page, err)
	}

	text = strings.Join(strings.Fields(text), " ")
	s.cache[page] = text
	return text, nil
}
