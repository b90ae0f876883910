package ast

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// PartialTag is the reserved element name marking a reference to a partial file.
const PartialTag = "$Partial"

type Kind int

const (
	KindRoot Kind = iota
	KindHeading
	KindParagraph
	KindList
	KindListItem
	KindText
	KindCode
	KindThematicBreak
	KindMdxFlowElement
)

var kindNames = map[Kind]string{
	KindRoot:           "Root",
	KindHeading:        "Heading",
	KindParagraph:      "Paragraph",
	KindList:           "List",
	KindListItem:       "ListItem",
	KindText:           "Text",
	KindCode:           "Code",
	KindThematicBreak:  "ThematicBreak",
	KindMdxFlowElement: "MdxFlowElement",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Position is a 1-based line/column pair in grammar coordinates.
type Position struct {
	Line   int
	Column int
}

// Span is the source range a node occupies. The end column points one past
// the last character, following the convention of the grammar.
type Span struct {
	Start Position
	End   Position
}

// Attribute is a single name/value pair on an MDX flow element. Literal is
// true only for quoted string values; expression-valued (`{...}`) and bare
// attributes are not literals.
type Attribute struct {
	Name    string
	Value   string
	Literal bool
}

// Node is one vertex of a parsed document tree. Span is nil for synthetic
// nodes. Value holds the raw content of Text and Code nodes. Name and
// Attributes are set only on MdxFlowElement nodes.
type Node struct {
	Kind       Kind
	Span       *Span
	Children   []*Node
	Value      string
	Name       string
	Attributes []Attribute
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

// ContainsPosition reports whether the zero-based LSP position falls inside
// the node's span. The position is shifted into the grammar's 1-based
// coordinates and compared inclusively on the line and column axes
// independently; for multi-line nodes this accepts any column between the
// start and end columns on every covered line.
func (n *Node) ContainsPosition(position protocol.Position) bool {
	if n.Span == nil {
		return false
	}
	line := int(position.Line) + 1
	column := int(position.Character) + 1
	return n.Span.Start.Line <= line && n.Span.End.Line >= line &&
		n.Span.Start.Column <= column && n.Span.End.Column >= column
}

// AttributeValue returns the literal string value of the named attribute.
// Absent, bare, and expression-valued attributes all report false.
func (n *Node) AttributeValue(name string) (string, bool) {
	for _, attr := range n.Attributes {
		if attr.Name == name && attr.Literal {
			return attr.Value, true
		}
	}
	return "", false
}

// IsPartial reports whether the node is a partial reference element.
// Attributes play no part in this; only the tag name is checked.
func (n *Node) IsPartial() bool {
	return n.Kind == KindMdxFlowElement && n.Name == PartialTag
}
