package bank

// Rejection records one question block that failed validation. The first
// violated rule wins; a block with several problems is reported once.
type Rejection struct {
	// Number is the question number as written in the block heading.
	Number string `json:"number"`

	// Rule is the violated rule identifier, e.g. "content-length".
	Rule string `json:"rule"`

	// Value is the offending value, truncated when long. Empty for rules
	// with nothing useful to show.
	Value string `json:"value,omitempty"`

	// Detail is a human-readable description of the failure.
	Detail string `json:"detail"`
}

// Warning flags a document quality issue that does not reject a block, such
// as duplicate or out-of-sequence question numbers.
type Warning struct {
	Number  string `json:"number"`
	Message string `json:"message"`
}

// Report summarizes one Parse run over a document.
type Report struct {
	// Blocks is the number of question blocks detected.
	Blocks int `json:"blocks"`

	// Accepted and Rejected partition Blocks: their sum always equals it.
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`

	Rejections []Rejection `json:"rejections,omitempty"`
	Warnings   []Warning   `json:"warnings,omitempty"`
}

// Clean reports whether the document parsed without rejections or warnings.
func (r *Report) Clean() bool {
	return r.Rejected == 0 && len(r.Warnings) == 0
}
