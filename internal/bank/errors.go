package bank

import (
	"fmt"
	"strings"
)

// ErrDocumentFormat means the input is not a quiz document at all: one or
// more of the structural patterns never appears anywhere in the text. It is
// the only fatal parse outcome. Problems inside individual question blocks
// are never fatal; they are recorded in the Report instead.
type ErrDocumentFormat struct {
	MissingHeadings bool // no "## Question N" heading found
	MissingControls bool // no <control ...> marker found
	MissingOptions  bool // no option line ("A. ...") found
}

func (e *ErrDocumentFormat) Error() string {
	var missing []string
	if e.MissingHeadings {
		missing = append(missing, "question headings")
	}
	if e.MissingControls {
		missing = append(missing, "control markers")
	}
	if e.MissingOptions {
		missing = append(missing, "option lines")
	}
	if len(missing) == 0 {
		return "not a quiz document"
	}
	return fmt.Sprintf("not a quiz document: no %s found", strings.Join(missing, ", no "))
}
