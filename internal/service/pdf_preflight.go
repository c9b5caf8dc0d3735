package service

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// FitzPageCounter opens PDFs in memory with MuPDF.
type FitzPageCounter struct{}

func (FitzPageCounter) CountPages(content []byte) (int, error) {
	doc, err := fitz.NewFromMemory(content)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	return doc.NumPage(), nil
}
