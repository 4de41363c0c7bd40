package inject

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/isgo-golgo13/seo-elevator/internal/htmldoc"
)

// Op names a mutation operation.
type Op int

const (
	// OpUpsertElement replaces the matched element's attributes, or appends
	// a new element under head when no match exists. Extra matches beyond
	// the first are removed so the tag stays unique.
	OpUpsertElement Op = iota
	// OpReplaceText replaces the matched element's text content, creating
	// the element under head when absent.
	OpReplaceText
	// OpUpsertAttribute sets one attribute on the matched element, creating
	// the element when absent.
	OpUpsertAttribute
	// OpAppendChild appends a new element under head unconditionally.
	OpAppendChild
)

func (o Op) String() string {
	switch o {
	case OpUpsertElement:
		return "upsert_element"
	case OpReplaceText:
		return "replace_text"
	case OpUpsertAttribute:
		return "upsert_attribute"
	case OpAppendChild:
		return "append_child"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Target locates existing equivalent nodes by tag and one identifying
// attribute. An empty AttrKey matches on tag alone. An empty AttrVal with a
// non-empty AttrKey matches any element carrying that attribute.
type Target struct {
	Tag     string
	AttrKey string
	AttrVal string
}

func (t Target) String() string {
	if t.AttrKey == "" {
		return t.Tag
	}
	return fmt.Sprintf("%s[%s=%q]", t.Tag, t.AttrKey, t.AttrVal)
}

// matches reports whether node is an existing equivalent of the target.
func (t Target) matches(node *html.Node) bool {
	if node.Data != t.Tag {
		return false
	}
	if t.AttrKey == "" {
		return true
	}
	val, ok := attrLookup(node, t.AttrKey)
	if !ok {
		return false
	}
	return t.AttrVal == "" || val == t.AttrVal
}

func attrLookup(node *html.Node, key string) (string, bool) {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Mutation is one planned change. Attrs carries the full attribute set for
// element ops; Text carries content for OpReplaceText.
type Mutation struct {
	Phase    string
	Op       Op
	Target   Target
	Attrs    []html.Attribute
	Text     string
	IfAbsent bool // skip when a matching node already exists
}

// Plan states. A plan moves Planning -> Applying -> Applied, or Failed when
// every mutation in it failed.
type planState int

const (
	statePlanning planState = iota
	stateApplying
	stateApplied
	stateFailed
)

func (s planState) String() string {
	switch s {
	case statePlanning:
		return "planning"
	case stateApplying:
		return "applying"
	case stateApplied:
		return "applied"
	case stateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Plan is the ordered mutation list for one run. Plans are single-use: build,
// apply once, discard.
type Plan struct {
	mutations []Mutation
	state     planState
}

func (p *Plan) add(m Mutation) {
	p.mutations = append(p.mutations, m)
}

// Len returns the number of planned mutations.
func (p *Plan) Len() int {
	return len(p.mutations)
}

// apply executes one mutation against the document. Returns true when the
// document changed. Matching is scoped to head: a title inside a body svg or
// a meta buried in body markup is page content, not a metadata slot.
func applyMutation(doc *htmldoc.Document, m Mutation) (bool, error) {
	head := doc.Head()

	matched := doc.FindAllIn(head, m.Target.matches)

	if m.IfAbsent && len(matched) > 0 {
		return false, nil
	}

	switch m.Op {
	case OpUpsertElement:
		if len(matched) == 0 {
			head.AppendChild(htmldoc.NewElement(m.Target.Tag, m.Attrs...))
			return true, nil
		}
		node := matched[0]
		changed := false
		for _, a := range m.Attrs {
			if htmldoc.Attr(node, a.Key) != a.Val {
				htmldoc.SetAttr(node, a.Key, a.Val)
				changed = true
			}
		}
		for _, extra := range matched[1:] {
			htmldoc.Remove(extra)
			changed = true
		}
		return changed, nil

	case OpReplaceText:
		if len(matched) == 0 {
			elem := htmldoc.NewElement(m.Target.Tag, m.Attrs...)
			htmldoc.SetText(elem, m.Text)
			head.AppendChild(elem)
			return true, nil
		}
		node := matched[0]
		changed := false
		if htmldoc.Text(node) != m.Text {
			htmldoc.SetText(node, m.Text)
			changed = true
		}
		for _, extra := range matched[1:] {
			htmldoc.Remove(extra)
			changed = true
		}
		return changed, nil

	case OpUpsertAttribute:
		if len(m.Attrs) != 1 {
			return false, fmt.Errorf("upsert_attribute needs exactly one attribute, got %d", len(m.Attrs))
		}
		if len(matched) == 0 {
			head.AppendChild(htmldoc.NewElement(m.Target.Tag, m.Attrs...))
			return true, nil
		}
		a := m.Attrs[0]
		if htmldoc.Attr(matched[0], a.Key) == a.Val {
			return false, nil
		}
		htmldoc.SetAttr(matched[0], a.Key, a.Val)
		return true, nil

	case OpAppendChild:
		elem := htmldoc.NewElement(m.Target.Tag, m.Attrs...)
		if m.Text != "" {
			htmldoc.SetText(elem, m.Text)
		}
		head.AppendChild(elem)
		return true, nil

	default:
		return false, fmt.Errorf("unknown op %v", m.Op)
	}
}
