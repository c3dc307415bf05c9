// Package bank turns hand-authored quiz documents into validated question
// pools. A document is markdown-flavoured text: "## Question N" headings,
// a body, "A. ..." option lines and a <control message="..."> marker naming
// the correct letters. Parsing is tolerant per block and strict per document:
// a bad block is rejected and reported, a document without any recognizable
// structure fails outright.
package bank

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse converts a quiz document into a Pool of validated questions plus a
// Report of everything that was skipped or suspect along the way.
//
// Parse is pure. It keeps no state between calls, so the same document always
// yields a field-identical pool and report. The only error it returns is
// *ErrDocumentFormat, raised before block processing when the document
// contains no question heading, no control marker, or no option line at all.
func Parse(doc string) (Pool, *Report, error) {
	if err := checkShape(doc); err != nil {
		return nil, nil, err
	}
	blocks := splitBlocks(doc)
	report := &Report{Blocks: len(blocks)}
	pool := make(Pool, 0, len(blocks))
	for _, raw := range blocks {
		cand := extract(raw)
		if rej := checkCandidate(cand); rej != nil {
			report.Rejected++
			report.Rejections = append(report.Rejections, *rej)
			continue
		}
		report.Accepted++
		pool = append(pool, buildQuestion(cand))
	}
	report.Warnings = numberWarnings(blocks)
	return pool, report, nil
}

// checkShape verifies the whole-document precondition: a question heading, a
// control marker and an option line must each occur somewhere, otherwise the
// input is not a quiz document.
func checkShape(doc string) error {
	e := ErrDocumentFormat{MissingHeadings: true, MissingControls: true, MissingOptions: true}
	for _, line := range strings.Split(doc, "\n") {
		if e.MissingHeadings {
			if _, ok := headingNumber(strings.TrimSpace(line)); ok {
				e.MissingHeadings = false
			}
		}
		if e.MissingControls {
			if _, found := controlLetters(line); found {
				e.MissingControls = false
			}
		}
		if e.MissingOptions {
			if _, _, ok := optionParts(line); ok {
				e.MissingOptions = false
			}
		}
		if !e.MissingHeadings && !e.MissingControls && !e.MissingOptions {
			return nil
		}
	}
	return &e
}

// numberWarnings flags duplicate and out-of-sequence question numbers across
// all detected blocks, in document order. These never reject a block.
func numberWarnings(blocks []rawBlock) []Warning {
	var warnings []Warning
	seen := make(map[int]bool)
	prev := 0
	for i, b := range blocks {
		n, err := strconv.Atoi(b.number)
		if err != nil {
			continue
		}
		switch {
		case seen[n]:
			warnings = append(warnings, Warning{
				Number:  b.number,
				Message: fmt.Sprintf("duplicate question number %s", b.number),
			})
		case i > 0 && n != prev+1:
			warnings = append(warnings, Warning{
				Number:  b.number,
				Message: fmt.Sprintf("question number %s follows %d, breaking the sequence", b.number, prev),
			})
		}
		seen[n] = true
		prev = n
	}
	return warnings
}
