package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is a supported document type
type Format string

// Supported document formats
const (
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// MaxDocumentSize bounds uploads and files read from disk (10 MiB).
const MaxDocumentSize = 10 << 20

// UnsupportedFormatError is returned for file types that cannot be read as text
type UnsupportedFormatError struct {
	Name string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document type: %s (want .txt, .md, .pdf or .docx)", e.Name)
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:tab\s*/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

// DetectFormat picks a format from the file name, falling back to content sniffing.
func DetectFormat(name string, data []byte) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", ".markdown", ".text":
		return FormatText, nil
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case "":
		if bytes.HasPrefix(data, []byte("%PDF-")) {
			return FormatPDF, nil
		}
		return FormatText, nil
	default:
		return "", &UnsupportedFormatError{Name: name}
	}
}

// ExtractFile reads a document from disk and returns its cleaned text.
func ExtractFile(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() > MaxDocumentSize {
		return "", fmt.Errorf("file %s is too large (%d bytes, max %d)", path, info.Size(), MaxDocumentSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return ExtractText(ctx, filepath.Base(path), data)
}

// ExtractText converts an in-memory document into cleaned text.
func ExtractText(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	format, err := DetectFormat(name, data)
	if err != nil {
		return "", err
	}

	var raw string
	switch format {
	case FormatPDF:
		raw, err = extractPDF(data)
	case FormatDOCX:
		raw, err = extractDOCX(data)
	default:
		raw = string(data)
	}
	if err != nil {
		return "", fmt.Errorf("extract %s text from %s: %w", format, name, err)
	}

	text := CleanText(raw)
	if text == "" {
		return "", fmt.Errorf("no text found in %s", name)
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText flattens WordprocessingML into plain text, one paragraph per line.
func docxXMLToText(content string) string {
	content = docxParagraphEnd.ReplaceAllStringFunc(content, func(tag string) string {
		if strings.HasPrefix(tag, "<w:tab") {
			return " "
		}
		return "\n"
	})
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}
