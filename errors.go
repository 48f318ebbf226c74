package textit

import (
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// classifyLoaderError maps a document-open failure to the drop reason
// spec.md §7 assigns it. The three literal messages are the ones the
// pdfium loader actually produces (ported from the original's exact
// string match in pdf_handler); anything else is a generic extraction
// failure.
func classifyLoaderError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "Incorrect password"):
		return DropReasonUnknownEncryptionPassword
	case strings.Contains(msg, "Data format error"), strings.Contains(msg, "PDFium: Success"):
		return DropReasonBrokenPDF
	default:
		return DropReasonTextExtractionFailure
	}
}

// formatExceptionChain renders an error and its full pkg/errors cause
// chain as a fenced block, the Go analogue of the original's
// format_exception (spec.md §7's "formatted exception chain").
func formatExceptionChain(err error) string {
	var b strings.Builder
	b.WriteString("\n```\n")
	b.WriteString(fmt.Sprintf("%+v", err))
	b.WriteString("\n```\n\n")
	return b.String()
}

// wrapExtraction wraps err with the file path context the original's
// pdf_handler embeds in its error message, and appends the formatted
// exception chain the way the original's Result.err carries it
// (spec.md §7).
func wrapExtraction(path string, err error) error {
	wrapped := pkgerrors.Wrapf(err, "error extracting text from PDF at %q", path)
	return fmt.Errorf("%w%s", wrapped, formatExceptionChain(wrapped))
}
