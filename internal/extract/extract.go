// Package extract converts uploaded resume files (PDF or Word) into plain
// text for downstream prompt composition.
package extract

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// FileKind identifies a supported resume file format
type FileKind string

// Supported resume file kinds
const (
	KindPDF  FileKind = "pdf"
	KindDocx FileKind = "docx"
)

// KindFromPath determines the file kind from the path extension.
// Returns an UnsupportedFileTypeError for anything other than PDF or Word.
func KindFromPath(path string) (FileKind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return KindPDF, nil
	case ".doc", ".docx":
		return KindDocx, nil
	default:
		return "", &UnsupportedFileTypeError{Path: path}
	}
}

// Text extracts plain text from a resume file, concatenating every page or
// paragraph in document order joined with newlines. Read-only; extraction
// failures are not retried.
func Text(path string, kind FileKind) (string, error) {
	switch kind {
	case KindPDF:
		return pdfText(path)
	case KindDocx:
		return docxText(path)
	default:
		return "", &UnsupportedFileTypeError{Path: path}
	}
}

// pdfText concatenates the plain text of all PDF pages in order
func pdfText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Cause: err}
	}
	defer func() { _ = f.Close() }()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ExtractionError{Path: path, Cause: err}
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

// docxText extracts the document content of a Word file
func docxText(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", &ExtractionError{Path: path, Cause: err}
	}

	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Cause: err}
	}
	defer func() { _ = doc.Close() }()

	return doc.Editable().GetContent(), nil
}
