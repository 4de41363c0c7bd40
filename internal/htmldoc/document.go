package htmldoc

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document wraps a parsed HTML tree. One Document belongs to exactly one
// pipeline run; it is mutated only through the mutation helpers below.
type Document struct {
	root *html.Node
}

// Parse builds a Document from raw markup. Malformed markup degrades to a
// best-effort tree (missing/duplicate head, unclosed tags, comments are all
// tolerated); input that is not valid UTF-8 text fails with ParseError.
func Parse(markup string) (*Document, error) {
	if !utf8.ValidString(markup) {
		return nil, &ParseError{
			Kind: ErrInvalidEncoding,
			Line: lineOfFirstInvalidRune(markup),
			Err:  errors.New("input is not valid UTF-8"),
		}
	}

	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, &ParseError{Kind: ErrMalformed, Err: err}
	}
	return &Document{root: root}, nil
}

// lineOfFirstInvalidRune returns the 1-based line of the first byte sequence
// that does not decode as UTF-8.
func lineOfFirstInvalidRune(s string) int {
	line := 1
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return line
		}
		if r == '\n' {
			line++
		}
		i += size
	}
	return 0
}

// Root returns the document root node.
func (d *Document) Root() *html.Node {
	return d.root
}

// FindFirst returns the first element with the given tag name (case
// insensitive) within scope, or nil. A nil scope searches the whole tree.
func (d *Document) FindFirst(tag string, scope *html.Node) *html.Node {
	if scope == nil {
		scope = d.root
	}
	return findElement(scope, tag)
}

// FindAll walks the whole tree and returns every element matching pred,
// in document order.
func (d *Document) FindAll(pred func(*html.Node) bool) []*html.Node {
	return d.FindAllIn(nil, pred)
}

// FindAllIn returns every element within scope matching pred, in document
// order. A nil scope searches the whole tree.
func (d *Document) FindAllIn(scope *html.Node, pred func(*html.Node) bool) []*html.Node {
	if scope == nil {
		scope = d.root
	}
	var results []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && pred(n) {
			results = append(results, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(scope)
	return results
}

// FindAllTag returns every element with the given tag name within scope.
func (d *Document) FindAllTag(tag string, scope *html.Node) []*html.Node {
	if scope == nil {
		scope = d.root
	}
	return findAllElements(scope, tag)
}

// Head returns the head element, creating it under html if absent.
func (d *Document) Head() *html.Node {
	return d.ensureSection("head", true)
}

// Body returns the body element, creating it under html if absent.
func (d *Document) Body() *html.Node {
	return d.ensureSection("body", false)
}

func (d *Document) ensureSection(tag string, first bool) *html.Node {
	if found := findElement(d.root, tag); found != nil {
		return found
	}

	htmlNode := findElement(d.root, "html")
	if htmlNode == nil {
		// html.Parse always synthesizes an html element; guard anyway.
		htmlNode = NewElement("html")
		d.root.AppendChild(htmlNode)
	}

	section := NewElement(tag)
	if first && htmlNode.FirstChild != nil {
		htmlNode.InsertBefore(section, htmlNode.FirstChild)
	} else {
		htmlNode.AppendChild(section)
	}
	return section
}

// Serialize renders the tree back to markup. Parse followed by Serialize
// with no intervening mutation is byte-stable.
func (d *Document) Serialize() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// findElement searches depth-first for the first element with matching tag
// name (case-insensitive). Returns nil if not found.
func findElement(node *html.Node, tag string) *html.Node {
	lowerTag := strings.ToLower(tag)
	var search func(*html.Node) *html.Node
	search = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && strings.ToLower(n.Data) == lowerTag {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if found := search(c); found != nil {
				return found
			}
		}
		return nil
	}
	return search(node)
}

// findAllElements returns all matching elements within parent, in document order.
func findAllElements(parent *html.Node, tag string) []*html.Node {
	tag = strings.ToLower(tag)
	var results []*html.Node
	var search func(*html.Node)
	search = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.ToLower(n.Data) == tag {
			results = append(results, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			search(c)
		}
	}
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		search(c)
	}
	return results
}

// Attr returns the attribute value for name (case-insensitive), or "".
func Attr(node *html.Node, name string) string {
	if node == nil {
		return ""
	}
	name = strings.ToLower(name)
	for _, attr := range node.Attr {
		if strings.ToLower(attr.Key) == name {
			return attr.Val
		}
	}
	return ""
}

// SetAttr sets or replaces an attribute on node. Attribute names are unique
// within an element; an existing attribute keeps its position.
func SetAttr(node *html.Node, name, value string) {
	lower := strings.ToLower(name)
	for i := range node.Attr {
		if strings.ToLower(node.Attr[i].Key) == lower {
			node.Attr[i].Val = value
			return
		}
	}
	node.Attr = append(node.Attr, html.Attribute{Key: name, Val: value})
}

// Text recursively extracts text content from node and descendants.
func Text(node *html.Node) string {
	if node == nil {
		return ""
	}
	var sb strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(node)
	return sb.String()
}

// SetText replaces the entire child content of node with a single text node.
func SetText(node *html.Node, text string) {
	for node.FirstChild != nil {
		node.RemoveChild(node.FirstChild)
	}
	node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// NewElement creates a detached element node for the given tag.
func NewElement(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

// Remove detaches node from its parent. No-op for detached nodes.
func Remove(node *html.Node) {
	if node.Parent != nil {
		node.Parent.RemoveChild(node)
	}
}
