// format.go handles formatting inheritance and insertion-markup hygiene:
// copying font/size/style attributes from a target's run properties onto a
// newly built run, and validating agent-supplied structured markup against
// an allow-list of legitimate wordprocessing elements.

package word

import (
	"fmt"

	"github.com/beevik/etree"
)

// Formatting is the coarse run-level formatting carried from a target onto
// a newly built run. Empty fields are omitted from the output.
type Formatting struct {
	FontASCII    string
	FontHAnsi    string
	FontCS       string
	FontEastAsia string
	Size         string
	SizeCS       string
	Bold         bool
	Italic       bool
	Underline    string
	Color        string
}

// ExtractFormatting pulls run-level formatting out of a context snippet.
// It looks for run properties in order: the element's own w:rPr, the first
// run's w:rPr, then the paragraph-level w:rPr inside w:pPr. Returns nil
// when no properties are found or the snippet does not parse.
func ExtractFormatting(contextXML string) *Formatting {
	el := parseSnippet(contextXML)
	if el == nil {
		return nil
	}
	rpr := findRunProperties(el)
	if rpr == nil {
		return nil
	}

	f := &Formatting{}
	if rfonts := childByTag(rpr, "w:rFonts"); rfonts != nil {
		f.FontASCII = rfonts.SelectAttrValue("w:ascii", "")
		f.FontHAnsi = rfonts.SelectAttrValue("w:hAnsi", "")
		f.FontCS = rfonts.SelectAttrValue("w:cs", "")
		f.FontEastAsia = rfonts.SelectAttrValue("w:eastAsia", "")
	}
	if sz := childByTag(rpr, "w:sz"); sz != nil {
		f.Size = sz.SelectAttrValue("w:val", "")
	}
	if szCs := childByTag(rpr, "w:szCs"); szCs != nil {
		f.SizeCS = szCs.SelectAttrValue("w:val", "")
	}
	f.Bold = childByTag(rpr, "w:b") != nil
	f.Italic = childByTag(rpr, "w:i") != nil
	if u := childByTag(rpr, "w:u"); u != nil {
		f.Underline = u.SelectAttrValue("w:val", "single")
	}
	if color := childByTag(rpr, "w:color"); color != nil {
		f.Color = color.SelectAttrValue("w:val", "")
	}
	if *f == (Formatting{}) {
		return nil
	}
	return f
}

func findRunProperties(el *etree.Element) *etree.Element {
	if rpr := childByTag(el, "w:rPr"); rpr != nil {
		return rpr
	}
	if run := findDescendant(el, "w:r"); run != nil {
		if rpr := childByTag(run, "w:rPr"); rpr != nil {
			return rpr
		}
	}
	if ppr := childByTag(el, "w:pPr"); ppr != nil {
		return childByTag(ppr, "w:rPr")
	}
	return nil
}

// BuildRun builds a detached <w:r> element carrying text with the given
// inherited formatting (nil for an unformatted run). Leading or trailing
// spaces get xml:space="preserve" so readers do not strip them.
func BuildRun(text string, f *Formatting) *etree.Element {
	run := etree.NewElement("w:r")

	if f != nil {
		rpr := run.CreateElement("w:rPr")
		fontAttrs := [][2]string{
			{"w:ascii", f.FontASCII},
			{"w:hAnsi", f.FontHAnsi},
			{"w:cs", f.FontCS},
			{"w:eastAsia", f.FontEastAsia},
		}
		hasFont := false
		for _, fa := range fontAttrs {
			if fa[1] != "" {
				hasFont = true
			}
		}
		if hasFont {
			rfonts := rpr.CreateElement("w:rFonts")
			for _, fa := range fontAttrs {
				if fa[1] != "" {
					rfonts.CreateAttr(fa[0], fa[1])
				}
			}
		}
		if f.Bold {
			rpr.CreateElement("w:b")
		}
		if f.Italic {
			rpr.CreateElement("w:i")
		}
		if f.Underline != "" {
			rpr.CreateElement("w:u").CreateAttr("w:val", f.Underline)
		}
		if f.Size != "" {
			rpr.CreateElement("w:sz").CreateAttr("w:val", f.Size)
		}
		if f.SizeCS != "" {
			rpr.CreateElement("w:szCs").CreateAttr("w:val", f.SizeCS)
		}
		if f.Color != "" {
			rpr.CreateElement("w:color").CreateAttr("w:val", f.Color)
		}
	}

	t := run.CreateElement("w:t")
	t.SetText(text)
	if text != "" && (text[0] == ' ' || text[len(text)-1] == ' ') {
		t.CreateAttr("xml:space", "preserve")
	}
	return run
}

// BuildRunXML is BuildRun serialised to a markup string, the form the
// build_insertion_xml tool returns.
func BuildRunXML(text string, f *Formatting) string {
	return rawMarkup(BuildRun(text, f))
}

// allowedElements is the vocabulary of wordprocessing elements legitimate
// in insertion markup. Not exhaustive for the whole schema — it covers what
// can appear at run/paragraph/table level in an insertion payload.
var allowedElements = map[string]bool{
	// Paragraph-level
	"p": true, "pPr": true, "pStyle": true, "jc": true, "spacing": true,
	"ind": true, "numPr": true, "ilvl": true, "numId": true, "pBdr": true,
	"tabs": true, "tab": true,
	// Run-level
	"r": true, "rPr": true, "rFonts": true, "sz": true, "szCs": true,
	"b": true, "bCs": true, "i": true, "iCs": true, "u": true,
	"strike": true, "dstrike": true, "color": true, "highlight": true,
	"vertAlign": true, "lang": true, "t": true, "br": true, "cr": true,
	"sym": true, "caps": true, "smallCaps": true, "vanish": true,
	"kern": true, "position": true, "shd": true, "effect": true, "em": true,
	// Table-level
	"tbl": true, "tblPr": true, "tblGrid": true, "gridCol": true,
	"tr": true, "trPr": true, "tc": true, "tcPr": true, "tblW": true,
	"tblBorders": true, "tblStyle": true, "tblLook": true, "tcW": true,
	"tcBorders": true, "vAlign": true, "gridSpan": true, "vMerge": true,
	// Bookmarks and content controls
	"bookmarkStart": true, "bookmarkEnd": true,
	"sdt": true, "sdtPr": true, "sdtContent": true,
	// Drawing (allowed, not deeply validated)
	"drawing": true,
}

var allowedPrefixes = map[string]bool{"w": true, "r": true, "wp": true, "xml": true}

// ValidateInsertionXML checks that markup is well-formed and uses only
// legitimate wordprocessing elements. Structured payloads come straight
// from the agent, so this runs before any of them reaches the tree.
func ValidateInsertionXML(markup string) error {
	el := parseSnippet(markup)
	if el == nil {
		return fmt.Errorf("XML syntax error: snippet is not well-formed")
	}

	var bad error
	walk(el, func(e *etree.Element) {
		if bad != nil {
			return
		}
		if e.Space != "" && !allowedPrefixes[e.Space] {
			bad = fmt.Errorf("unknown namespace prefix: %s", e.Space)
			return
		}
		if !allowedElements[e.Tag] {
			bad = fmt.Errorf("disallowed element: %s", e.Tag)
		}
	})
	return bad
}

// InsertionResult is the outcome of building or validating insertion
// markup for one answer.
type InsertionResult struct {
	InsertionXML string `json:"insertion_xml"`
	Valid        bool   `json:"valid"`
	Error        string `json:"error,omitempty"`
}

// BuildInsertionXML prepares insertion markup for an answer. Plain text is
// wrapped in a run inheriting the target context's formatting; structured
// markup is validated against the element allow-list.
func BuildInsertionXML(answerText, targetContextXML, answerType string) InsertionResult {
	switch answerType {
	case "plain_text":
		return InsertionResult{
			InsertionXML: BuildRunXML(answerText, ExtractFormatting(targetContextXML)),
			Valid:        true,
		}
	case "structured":
		if err := ValidateInsertionXML(answerText); err != nil {
			return InsertionResult{Valid: false, Error: err.Error()}
		}
		return InsertionResult{InsertionXML: answerText, Valid: true}
	}
	return InsertionResult{
		Valid: false,
		Error: fmt.Sprintf("unknown answer_type: %q (expected plain_text or structured)", answerType),
	}
}
