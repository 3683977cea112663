package extraction

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText returns a best-effort plain-text rendering of a PDF byte buffer.
// Layout is not preserved; downstream consumption is semantic, not visual.
// Returns *UnreadablePDFError when the buffer is not a parseable PDF.
func ExtractText(pdfBytes []byte) (text string, err error) {
	if len(pdfBytes) == 0 {
		return "", &UnreadablePDFError{Message: "empty file"}
	}

	// The pdf library panics on some malformed inputs rather than returning
	// an error. Convert either failure mode into UnreadablePDFError.
	defer func() {
		if r := recover(); r != nil {
			err = &UnreadablePDFError{Message: fmt.Sprintf("malformed document: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return "", &UnreadablePDFError{Message: "failed to open document", Cause: err}
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		return "", &UnreadablePDFError{Message: "failed to extract text", Cause: err}
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plainText); err != nil {
		return "", &UnreadablePDFError{Message: "failed to read extracted text", Cause: err}
	}

	return CleanText(sb.String()), nil
}
