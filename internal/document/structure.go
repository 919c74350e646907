// structure.go defines the indexer and resolver result types.
//
// Structure is the output of a compact index call: one text line per
// element plus the ID→locator map an agent uses on its second pass.
// Location/LocationResult model the validate step, where ambiguity and
// not-found are expected, branchable outcomes rather than errors.

package document

// Structure is the compact indexed representation of a document.
type Structure struct {
	// CompactText is the agent-readable rendering, one line per element
	// in document traversal order.
	CompactText string `json:"compact_text"`

	// IDToLocator maps every assigned stable ID to its current locator.
	// For spreadsheets and PDFs the stable ID is the locator.
	IDToLocator map[string]string `json:"id_to_locator"`

	// ComplexIDs lists stable IDs whose content could not be faithfully
	// linearised and was rendered as truncated raw markup instead.
	ComplexIDs []string `json:"complex_elements"`
}

// RawStructure is the full (non-compact) extraction result. Exactly one
// field is populated, selected by the document's file type.
type RawStructure struct {
	BodyXML string      `json:"body_xml,omitempty"`    // Word
	Sheets  []SheetData `json:"sheets_json,omitempty"` // Excel
	Fields  []FormField `json:"fields,omitempty"`      // PDF
}

// SheetData is one worksheet in a raw Excel extraction.
type SheetData struct {
	Name   string     `json:"name"`
	Rows   [][]string `json:"rows"`
	Merged []string   `json:"merged,omitempty"`
}

// LocationStatus classifies the outcome of resolving a reference.
type LocationStatus string

const (
	Matched   LocationStatus = "matched"
	NotFound  LocationStatus = "not_found"
	Ambiguous LocationStatus = "ambiguous"
)

// Location is a reference to validate: a stable ID, or (Word only) a raw
// markup snippet to match structurally against the document.
type Location struct {
	PairID  string `json:"pair_id"`
	Snippet string `json:"snippet"`
}

// LocationResult is the typed outcome of validating one Location. An
// ambiguous or not-found reference is a value the caller branches on,
// never an error.
type LocationResult struct {
	PairID  string         `json:"pair_id"`
	Status  LocationStatus `json:"status"`
	Locator string         `json:"locator,omitempty"`
	// Context carries surrounding text and any advisory warning (for
	// example the question-cell warning). Warnings never change Status.
	Context string `json:"context,omitempty"`
	// Matches is the number of competing candidates when ambiguous.
	Matches int `json:"matches,omitempty"`
}

// FormField is one code-detected fillable target.
type FormField struct {
	FieldID      string   `json:"field_id"`
	Label        string   `json:"label"`
	FieldType    string   `json:"field_type"`
	CurrentValue string   `json:"current_value,omitempty"`
	Options      []string `json:"options,omitempty"`
	Page         int      `json:"page,omitempty"`
	ReadOnly     bool     `json:"read_only,omitempty"`
}

// PreviewStatus classifies one dry-run preview record.
type PreviewStatus string

const (
	PreviewOK PreviewStatus = "ok"
	// PreviewWarning flags a target that already has content — the
	// classic wrong-cell mistake.
	PreviewWarning PreviewStatus = "warning"
	// PreviewError flags a locator that does not resolve.
	PreviewError PreviewStatus = "error"
)

// Preview is one record of a non-mutating dry run: what a write would do
// to a single target, without doing it.
type Preview struct {
	PairID      string        `json:"pair_id"`
	Locator     string        `json:"locator"`
	CurrentText string        `json:"current_text"`
	WouldWrite  string        `json:"would_write"`
	Mode        string        `json:"mode,omitempty"`
	Status      PreviewStatus `json:"status"`
	Message     string        `json:"message,omitempty"`
}
