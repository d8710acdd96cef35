package service

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tieubaoca/smartmail-be/types"
)

// PDFService is the document-source collaborator for the ingestion pipeline:
// it enumerates PDF files in a folder and extracts their text with the
// poppler pdftotext utility.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// ListDocuments returns the eligible document filenames in the folder, sorted
// lexicographically so ingestion order is deterministic.
func (s *PDFService) ListDocuments(folder string) ([]string, error) {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", types.ErrFolderNotFound, folder)
	}
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %s: %w", folder, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(entry.Name())) != ".pdf" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ExtractText extracts the full text of a PDF. An empty string with a nil
// error means the file genuinely contains no extractable text.
func (s *PDFService) ExtractText(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-enc", "UTF-8", "-nopgbrk", path, "-")
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext failed for %s: %w", path, err)
	}
	return cleanText(out.String()), nil
}

func cleanText(text string) string {

	replacements := map[string]string{
		"\u0000": "",   // Null character
		"\ufffd": "",   // Unicode replacement character
		"\u001b": "",   // Escape character
		"\r":     "",   // Carriage return
		"\f":     "\n", // Form feed to newline
		"  ":     " ",  // Multiple spaces to single space
	}
	cleaned := text
	for old, new := range replacements {
		cleaned = strings.ReplaceAll(cleaned, old, new)
	}

	return strings.TrimSpace(cleaned)
}
