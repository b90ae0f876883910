package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"mdxls/internal/ast"
)

// cursor walks rune-by-rune across line boundaries. Line ends read as '\n',
// end of input as 0.
type cursor struct {
	lines [][]rune
	line  int
	col   int
	limit int
}

func (c *cursor) peek() rune {
	if c.line >= c.limit {
		return 0
	}
	if c.col >= len(c.lines[c.line]) {
		return '\n'
	}
	return c.lines[c.line][c.col]
}

func (c *cursor) next() rune {
	r := c.peek()
	switch r {
	case 0:
	case '\n':
		c.line++
		c.col = 0
	default:
		c.col++
	}
	return r
}

func (c *cursor) skipSpace() {
	for {
		r := c.peek()
		if r != ' ' && r != '\t' && r != '\n' {
			return
		}
		c.next()
	}
}

func (c *cursor) pos() ast.Position {
	return ast.Position{Line: c.line + 1, Column: c.col + 1}
}

func (c *cursor) readName() string {
	if !isNameStart(c.peek()) {
		return ""
	}
	var sb strings.Builder
	sb.WriteRune(c.next())
	for isNameChar(c.peek()) {
		sb.WriteRune(c.next())
	}
	return sb.String()
}

func isNameStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func isNameChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$' || r == '.' || r == '-'
}

// parseElement parses an MDX flow element whose opening '<' sits at column
// ind of line i. Attributes may span lines. Returns the element and the line
// index parsing continues at.
func (p *parser) parseElement(i, ind, to int) (*ast.Node, int, error) {
	c := &cursor{lines: p.lines, line: i, col: ind, limit: to}
	start := c.pos()
	c.next() // '<'
	name := c.readName()
	if name == "" {
		return nil, 0, fmt.Errorf("line %d: malformed element", i+1)
	}
	node := &ast.Node{Kind: ast.KindMdxFlowElement, Name: name}

	for {
		c.skipSpace()
		switch r := c.peek(); {
		case r == 0:
			return nil, 0, fmt.Errorf("line %d: unterminated <%s> element", i+1, name)
		case r == '/':
			c.next()
			if c.peek() != '>' {
				return nil, 0, fmt.Errorf("line %d: malformed <%s> element", i+1, name)
			}
			c.next()
			node.Span = &ast.Span{Start: start, End: c.pos()}
			return node, c.line + 1, nil
		case r == '>':
			c.next()
			return p.parseElementBody(node, start, c, to)
		default:
			attr, err := c.readAttribute(name)
			if err != nil {
				return nil, 0, err
			}
			node.Attributes = append(node.Attributes, attr)
		}
	}
}

func (c *cursor) readAttribute(element string) (ast.Attribute, error) {
	line := c.line + 1
	name := c.readName()
	if name == "" {
		return ast.Attribute{}, fmt.Errorf("line %d: malformed attribute in <%s>", line, element)
	}
	c.skipSpace()
	if c.peek() != '=' {
		// bare attribute, no value
		return ast.Attribute{Name: name}, nil
	}
	c.next()
	c.skipSpace()
	switch quote := c.peek(); quote {
	case '"', '\'':
		c.next()
		var sb strings.Builder
		for {
			r := c.peek()
			if r == 0 {
				return ast.Attribute{}, fmt.Errorf(
					"line %d: unterminated value for %q in <%s>", line, name, element)
			}
			c.next()
			if r == quote {
				break
			}
			sb.WriteRune(r)
		}
		return ast.Attribute{Name: name, Value: sb.String(), Literal: true}, nil
	case '{':
		c.next()
		depth := 1
		var sb strings.Builder
		for {
			r := c.peek()
			if r == 0 {
				return ast.Attribute{}, fmt.Errorf(
					"line %d: unterminated expression for %q in <%s>", line, name, element)
			}
			c.next()
			if r == '{' {
				depth++
			} else if r == '}' {
				depth--
				if depth == 0 {
					break
				}
			}
			sb.WriteRune(r)
		}
		return ast.Attribute{Name: name, Value: sb.String()}, nil
	default:
		return ast.Attribute{}, fmt.Errorf(
			"line %d: malformed value for %q in <%s>", line, name, element)
	}
}

// parseElementBody handles everything after the '>' of a non-self-closing
// element: either inline text closed on the same line, or a multi-line body
// of blocks terminated by a closing tag on its own line.
func (p *parser) parseElementBody(node *ast.Node, start ast.Position, c *cursor, to int) (*ast.Node, int, error) {
	closing := "</" + node.Name + ">"
	line := c.lines[c.line]
	rest := string(line[c.col:])

	if strings.TrimSpace(rest) != "" {
		idx := strings.Index(rest, closing)
		if idx < 0 || strings.TrimSpace(rest[idx+len(closing):]) != "" {
			return nil, 0, fmt.Errorf("line %d: unterminated <%s> element", c.line+1, node.Name)
		}
		inner := rest[:idx]
		if trimmed := strings.TrimSpace(inner); trimmed != "" {
			leading := 0
			for _, r := range inner {
				if r != ' ' && r != '\t' {
					break
				}
				leading++
			}
			startCol := c.col + leading + 1
			node.AddChild(&ast.Node{
				Kind:  ast.KindText,
				Value: trimmed,
				Span: &ast.Span{
					Start: ast.Position{Line: c.line + 1, Column: startCol},
					End:   ast.Position{Line: c.line + 1, Column: startCol + utf8.RuneCountInString(trimmed)},
				},
			})
		}
		endCol := c.col + utf8.RuneCountInString(rest[:idx]) + len(closing) + 1
		node.Span = &ast.Span{
			Start: start,
			End:   ast.Position{Line: c.line + 1, Column: endCol},
		}
		return node, c.line + 1, nil
	}

	bodyFrom := c.line + 1
	for j := bodyFrom; j < to; j++ {
		if strings.TrimSpace(string(p.lines[j])) != closing {
			continue
		}
		children, err := p.parseBlocks(bodyFrom, j)
		if err != nil {
			return nil, 0, err
		}
		node.Children = children
		ind := indentOf(p.lines[j])
		node.Span = &ast.Span{
			Start: start,
			End:   ast.Position{Line: j + 1, Column: ind + len(closing) + 1},
		}
		return node, j + 1, nil
	}
	return nil, 0, fmt.Errorf("line %d: missing %s", start.Line, closing)
}
