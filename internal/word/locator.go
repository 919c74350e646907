// locator.go builds and resolves positional locators for the document tree.
//
// A locator is a constrained path expression from the body down to one
// element: prefixed element-name steps with optional 1-indexed [n]
// predicates, anchored with "./". This is deliberately not XPath — writes
// accept only a fixed step vocabulary, checked before any tree walking, so
// a crafted locator string can never reach code that dereferences it.

package word

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// stepRe accepts one locator step: a known wordprocessing container or
// inline tag, optionally with a numeric position predicate.
var stepRe = regexp.MustCompile(`^w:(tbl|tr|tc|p|r|t|hyperlink|sdt|sdtContent)(?:\[(\d+)\])?$`)

// ValidateLocator checks a locator string against the restrictive
// positional grammar. Returns an error naming the offending step; a
// locator that fails is rejected before resolution, never silently
// ignored.
func ValidateLocator(locator string) error {
	rest, ok := strings.CutPrefix(locator, "./")
	if !ok {
		return fmt.Errorf("invalid locator %q: must start with \"./\"", locator)
	}
	if rest == "" {
		return fmt.Errorf("invalid locator %q: empty path", locator)
	}
	for _, step := range strings.Split(rest, "/") {
		if !stepRe.MatchString(step) {
			return fmt.Errorf("invalid locator %q: unsupported step %q", locator, step)
		}
	}
	return nil
}

// buildLocator constructs the path from body down to target by walking
// parent pointers upward and reversing. A [k] predicate is appended only
// when the node has same-tag siblings; k is 1 plus the count of same-tag
// siblings strictly before the node.
func buildLocator(target, body *etree.Element) string {
	var parts []string
	for cur := target; cur != nil && cur != body; cur = cur.Parent() {
		step := cur.FullTag()
		if parent := cur.Parent(); parent != nil {
			same := 0
			pos := 0
			for _, sib := range parent.ChildElements() {
				if sib.FullTag() != step {
					continue
				}
				same++
				if sib == cur {
					pos = same
				}
			}
			if same > 1 {
				step = fmt.Sprintf("%s[%d]", step, pos)
			}
		}
		parts = append(parts, step)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return "./" + strings.Join(parts, "/")
}

// resolveLocator walks a validated locator from body down to its element.
// Returns nil when any step fails to select a node.
func resolveLocator(body *etree.Element, locator string) *etree.Element {
	rest, ok := strings.CutPrefix(locator, "./")
	if !ok {
		return nil
	}
	cur := body
	for _, step := range strings.Split(rest, "/") {
		m := stepRe.FindStringSubmatch(step)
		if m == nil {
			return nil
		}
		tag := "w:" + m[1]
		n := 1
		if m[2] != "" {
			n, _ = strconv.Atoi(m[2])
			if n < 1 {
				return nil
			}
		}
		var next *etree.Element
		seen := 0
		for _, ch := range cur.ChildElements() {
			if ch.FullTag() != tag {
				continue
			}
			seen++
			if seen == n {
				next = ch
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}
