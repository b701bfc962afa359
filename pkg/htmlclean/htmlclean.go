// Package htmlclean normalizes model-emitted HTML table markup into a
// canonical label form: the first <table> element with all presentation
// attributes and tags stripped and every run of whitespace collapsed, as a
// single line. The normalization is idempotent.
package htmlclean

import (
	"bytes"
	"errors"
	"os"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoTable is returned when the input contains no <table> element. Callers
// fall back to the original content.
var ErrNoTable = errors.New("no <table> element found")

// presentationAttrs are removed from the table and every descendant.
var presentationAttrs = map[string]bool{
	"style":       true,
	"class":       true,
	"id":          true,
	"align":       true,
	"valign":      true,
	"width":       true,
	"height":      true,
	"bgcolor":     true,
	"border":      true,
	"cellpadding": true,
	"cellspacing": true,
}

// deletedTags are removed along with their content.
var deletedTags = map[atom.Atom]bool{
	atom.Style:   true,
	atom.Br:      true,
	atom.Caption: true,
}

// unwrappedTags are removed while their children are reparented in place:
// the row-group wrappers plus inline presentational markup.
var unwrappedTags = map[string]bool{
	"thead": true, "tbody": true, "tfoot": true,
	"strong": true, "b": true, "i": true, "em": true, "u": true,
	"span": true, "font": true, "mark": true, "small": true, "big": true,
	"sub": true, "sup": true, "s": true, "strike": true, "del": true,
	"ins": true, "abbr": true, "cite": true, "code": true, "kbd": true,
	"samp": true, "var": true,
}

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	interTagSpace  = regexp.MustCompile(`>\s+<`)
	captionPattern = regexp.MustCompile(`(?is)<caption[^>]*>.*?</caption>\s*`)
)

// ExtractTable locates the first <table> in the markup and returns it as a
// canonical single-line string: presentation attributes removed, style/br/
// caption subtrees deleted, row-group and inline presentational tags
// unwrapped, comments dropped, and whitespace collapsed inside text nodes
// and between tags. Returns ErrNoTable when the input has no table.
func ExtractTable(markup string) (string, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", err
	}

	table := findFirst(doc, atom.Table)
	if table == nil {
		return "", ErrNoTable
	}

	stripAttributes(table)
	removeDeleted(table)
	unwrapTags(table)
	removeComments(table)
	normalizeText(table)

	var buf bytes.Buffer
	if err := html.Render(&buf, table); err != nil {
		return "", err
	}

	out := interTagSpace.ReplaceAllString(buf.String(), "><")
	return strings.TrimSpace(out), nil
}

// CleanResponse normalizes a raw model response: markdown fences are
// stripped and the table extracted; when no table is found the fence-stripped
// content is returned unchanged so nothing is lost.
func CleanResponse(text string) string {
	content := StripFences(text)
	table, err := ExtractTable(content)
	if err != nil {
		return content
	}
	return table
}

// StripFences removes a leading/trailing triple-backtick fence from the
// text, ignoring any language tag on the opening fence.
func StripFences(text string) string {
	content := strings.TrimSpace(text)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	lines := strings.Split(content, "\n")
	lines = lines[1:]
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// StripCaptions deletes <caption>...</caption> blocks, including trailing
// whitespace, without parsing the rest of the document.
func StripCaptions(markup string) string {
	return captionPattern.ReplaceAllString(markup, "")
}

// ReadDocument loads an HTML file for rendering: bytes are decoded to UTF-8,
// markdown fences are stripped, and <caption> blocks are removed. Labels
// drop captions during normalization, so captions must never reach an image
// either.
func ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	content, err := DecodeToUTF8(data)
	if err != nil {
		return "", err
	}
	return StripCaptions(StripFences(content)), nil
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

func stripAttributes(n *html.Node) {
	if n.Type == html.ElementNode {
		kept := n.Attr[:0]
		for _, a := range n.Attr {
			if !presentationAttrs[strings.ToLower(a.Key)] {
				kept = append(kept, a)
			}
		}
		n.Attr = kept
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		stripAttributes(c)
	}
}

func removeDeleted(root *html.Node) {
	for _, n := range collect(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && deletedTags[n.DataAtom]
	}) {
		n.Parent.RemoveChild(n)
	}
}

func unwrapTags(root *html.Node) {
	// Depth-first collection unwraps nested wrappers innermost-first, so a
	// <b> inside a <span> is flattened before the span itself.
	for _, n := range collect(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && unwrappedTags[strings.ToLower(n.Data)]
	}) {
		unwrap(n)
	}
}

// unwrap removes a node but keeps its children, reparented in its place.
func unwrap(n *html.Node) {
	parent := n.Parent
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
		c = next
	}
	parent.RemoveChild(n)
}

func removeComments(root *html.Node) {
	for _, n := range collect(root, func(n *html.Node) bool {
		return n.Type == html.CommentNode
	}) {
		n.Parent.RemoveChild(n)
	}
}

func normalizeText(root *html.Node) {
	for _, n := range collect(root, func(n *html.Node) bool {
		return n.Type == html.TextNode
	}) {
		text := strings.TrimSpace(whitespaceRun.ReplaceAllString(n.Data, " "))
		if text == "" {
			n.Parent.RemoveChild(n)
			continue
		}
		n.Data = text
	}
}

// collect gathers matching nodes depth-first so callers can mutate the tree
// afterwards without invalidating the walk.
func collect(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n != root && match(n) {
			nodes = append(nodes, n)
		}
	}
	walk(root)
	return nodes
}
