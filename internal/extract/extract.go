package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/gen2brain/go-fitz"
)

// Kind classifies extraction failures so callers can map them to distinct
// externally visible statuses.
type Kind int

const (
	// KindUnsupportedFormat means the file extension is not one of pdf/docx/txt.
	KindUnsupportedFormat Kind = iota
	// KindCapabilityUnavailable means the format is known but its parser is
	// not wired in this deployment (a configuration gap, not a user error).
	KindCapabilityUnavailable
	// KindFailed covers any parse failure not otherwise classified.
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedFormat:
		return "unsupported_format"
	case KindCapabilityUnavailable:
		return "capability_unavailable"
	default:
		return "extraction_failed"
	}
}

// Error is the tagged extraction error type.
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract: %s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("extract: %s: %s", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the extraction failure kind carried by err, if any.
func KindOf(err error) (Kind, bool) {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Kind, true
	}
	return 0, false
}

// Format is a supported resume file format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

// ParseFormat maps a filename extension (with or without the leading dot)
// to a supported Format.
func ParseFormat(ext string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "pdf":
		return FormatPDF, nil
	case "docx":
		return FormatDOCX, nil
	case "txt":
		return FormatTXT, nil
	default:
		return "", &Error{Kind: KindUnsupportedFormat, Reason: fmt.Sprintf("unsupported file type %q, must be pdf, docx or txt", ext)}
	}
}

// maxPDFPages caps per-document work on adversarial uploads.
const maxPDFPages = 10

// DocxConverter turns a .docx file on disk into plain text.
// A nil converter marks docx support as unavailable in this deployment.
type DocxConverter func(path string) (string, error)

// Extractor converts resume files into bounded plain text.
type Extractor struct {
	docx DocxConverter
}

// New builds an Extractor with docx support backed by docconv.
func New() *Extractor {
	return &Extractor{docx: docconvDocx}
}

// NewWithDocx builds an Extractor with a custom (possibly nil) docx converter.
func NewWithDocx(conv DocxConverter) *Extractor {
	return &Extractor{docx: conv}
}

// Extract reads the file at path as the given format and returns its text,
// trimmed and head-truncated to maxLength characters. Truncation is silent
// and deterministic. An empty result is not an extractor error.
func (e *Extractor) Extract(path string, format Format, maxLength int) (string, error) {
	var (
		text string
		err  error
	)

	switch format {
	case FormatPDF:
		text, err = extractPDF(path)
	case FormatDOCX:
		if e.docx == nil {
			return "", &Error{Kind: KindCapabilityUnavailable, Reason: "docx support not installed"}
		}
		text, err = e.docx(path)
	case FormatTXT:
		text, err = extractTXT(path)
	default:
		return "", &Error{Kind: KindUnsupportedFormat, Reason: fmt.Sprintf("unsupported format %q", format)}
	}
	if err != nil {
		var ee *Error
		if errors.As(err, &ee) {
			return "", err
		}
		return "", &Error{Kind: KindFailed, Reason: "could not read resume file", Err: err}
	}

	return truncate(strings.TrimSpace(text), maxLength), nil
}

// extractPDF concatenates text page by page, bounded to the first maxPDFPages
// pages. Pages yielding no text contribute nothing.
func extractPDF(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	pages := doc.NumPage()
	if pages > maxPDFPages {
		pages = maxPDFPages
	}
	for n := 0; n < pages; n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			// A single unreadable page is not fatal; the rest may carry text.
			continue
		}
		if pageText = strings.TrimSpace(pageText); pageText != "" {
			sb.WriteString(pageText)
			sb.WriteString(" ")
		}
	}
	return sb.String(), nil
}

// extractTXT decodes the file as UTF-8 text, dropping undecodable byte
// sequences instead of failing.
func extractTXT(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read txt: %w", err)
	}
	return strings.ToValidUTF8(string(b), ""), nil
}

// docconvDocx converts a docx file via docconv, joining paragraphs in
// document order.
func docconvDocx(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer f.Close()

	text, _, err := docconv.ConvertDocx(f)
	if err != nil {
		return "", fmt.Errorf("convert docx %s: %w", filepath.Base(path), err)
	}
	return text, nil
}

// truncate head-truncates to maxLength characters (runes, not bytes).
func truncate(s string, maxLength int) string {
	if maxLength <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	return string(runes[:maxLength])
}
