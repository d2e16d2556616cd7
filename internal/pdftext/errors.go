package pdftext

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the kinds of extraction failure. ExtractError matches
// them with errors.Is.
var (
	// ErrNotFound is returned when the PDF file does not exist.
	ErrNotFound = errors.New("pdf file not found")

	// ErrDecryption is returned when the document is encrypted and the
	// password is missing or wrong.
	ErrDecryption = errors.New("pdf decryption failed")

	// ErrCorrupt is returned when the file is damaged or not a PDF.
	ErrCorrupt = errors.New("pdf file is damaged or not a pdf")

	// ErrNotExtractable is returned when the document forbids text extraction.
	ErrNotExtractable = errors.New("pdf does not allow text extraction")

	// ErrToolMissing is returned when pdftotext or pdfinfo is not installed.
	ErrToolMissing = errors.New("pdf text tools not installed")

	// ErrNoPages is returned when the document has no pages to extract.
	ErrNoPages = errors.New("no pages extracted from pdf")

	// ErrExtract is the kind of any other extraction failure.
	ErrExtract = errors.New("pdf text extraction failed")
)

// ExtractError describes a failed extraction with the tool output that
// explains it.
type ExtractError struct {
	Path   string
	Page   int // 0 when the failure is not tied to one page
	Kind   error
	Stderr string
	Err    error
}

func (e *ExtractError) Error() string {
	var b strings.Builder
	if e.Page > 0 {
		fmt.Fprintf(&b, "page %d of %s: ", e.Page, e.Path)
	} else {
		fmt.Fprintf(&b, "%s: ", e.Path)
	}
	b.WriteString(e.Kind.Error())
	if e.Stderr != "" {
		fmt.Fprintf(&b, " (%s)", e.Stderr)
	} else if e.Err != nil {
		fmt.Fprintf(&b, " (%v)", e.Err)
	}
	return b.String()
}

func (e *ExtractError) Is(target error) bool {
	return target == e.Kind
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

// classify maps poppler's stderr to an error kind.
func classify(stderr string) error {
	s := strings.ToLower(stderr)
	switch {
	case strings.Contains(s, "incorrect password"):
		return ErrDecryption
	case strings.Contains(s, "couldn't open file"):
		return ErrNotFound
	case strings.Contains(s, "permission error"),
		strings.Contains(s, "copying of text from this document is not allowed"):
		return ErrNotExtractable
	case strings.Contains(s, "may not be a pdf file"),
		strings.Contains(s, "couldn't find trailer"),
		strings.Contains(s, "couldn't read xref"),
		strings.Contains(s, "pdf file is damaged"),
		strings.Contains(s, "syntax error"):
		return ErrCorrupt
	default:
		return ErrExtract
	}
}
