// Package parser turns MDX-flavoured markdown into the syntax trees consumed
// by the rest of the server. It is a line-oriented block grammar covering
// headings, paragraphs, unordered lists, fenced code, thematic breaks, and
// MDX flow elements. Spans are 1-based and inclusive, with the end column
// pointing one past the last character.
package parser

import (
	"fmt"
	"strings"

	"mdxls/internal/ast"
)

// Parse builds the syntax tree for one document. The returned tree is never
// mutated afterwards; a later edit parses into a wholly new tree. Malformed
// MDX elements are reported as errors, plain markdown never fails.
func Parse(text string) (*ast.Node, error) {
	p := &parser{lines: splitLines(text)}
	children, err := p.parseBlocks(0, len(p.lines))
	if err != nil {
		return nil, err
	}
	return &ast.Node{
		Kind: ast.KindRoot,
		Span: &ast.Span{
			Start: ast.Position{Line: 1, Column: 1},
			End:   p.lineEnd(len(p.lines) - 1),
		},
		Children: children,
	}, nil
}

type parser struct {
	lines [][]rune
}

func splitLines(text string) [][]rune {
	raw := strings.Split(text, "\n")
	lines := make([][]rune, len(raw))
	for i, l := range raw {
		lines[i] = []rune(strings.TrimSuffix(l, "\r"))
	}
	return lines
}

func (p *parser) lineEnd(i int) ast.Position {
	if i < 0 {
		return ast.Position{Line: 1, Column: 1}
	}
	return ast.Position{Line: i + 1, Column: len(p.lines[i]) + 1}
}

// parseBlocks parses the half-open line range [from, to) into a block
// sequence. Element bodies reuse it recursively, so positions stay absolute.
func (p *parser) parseBlocks(from, to int) ([]*ast.Node, error) {
	var blocks []*ast.Node
	i := from
	for i < to {
		line := p.lines[i]
		if isBlank(line) {
			i++
			continue
		}
		ind := indentOf(line)
		rest := line[ind:]
		switch {
		case headingLevel(rest) > 0:
			blocks = append(blocks, p.parseHeading(i, ind))
			i++
		case isThematicBreak(rest):
			blocks = append(blocks, &ast.Node{
				Kind: ast.KindThematicBreak,
				Span: &ast.Span{
					Start: ast.Position{Line: i + 1, Column: ind + 1},
					End:   p.lineEnd(i),
				},
			})
			i++
		case isFence(rest):
			node, next := p.parseCode(i, ind, to)
			blocks = append(blocks, node)
			i = next
		case isElementStart(rest):
			node, next, err := p.parseElement(i, ind, to)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, node)
			i = next
		case isClosingTag(rest):
			return nil, fmt.Errorf("line %d: closing tag without matching element", i+1)
		case isListItem(rest):
			node, next := p.parseList(i, ind, to)
			blocks = append(blocks, node)
			i = next
		default:
			node, next := p.parseParagraph(i, to)
			blocks = append(blocks, node)
			i = next
		}
	}
	return blocks, nil
}

func (p *parser) parseHeading(i, ind int) *ast.Node {
	line := p.lines[i]
	level := headingLevel(line[ind:])
	heading := &ast.Node{
		Kind: ast.KindHeading,
		Span: &ast.Span{
			Start: ast.Position{Line: i + 1, Column: ind + 1},
			End:   p.lineEnd(i),
		},
	}
	j := ind + level
	for j < len(line) && line[j] == ' ' {
		j++
	}
	if j < len(line) {
		heading.AddChild(&ast.Node{
			Kind:  ast.KindText,
			Value: string(line[j:]),
			Span: &ast.Span{
				Start: ast.Position{Line: i + 1, Column: j + 1},
				End:   p.lineEnd(i),
			},
		})
	}
	return heading
}

func (p *parser) parseCode(i, ind, to int) (*ast.Node, int) {
	var content []string
	j := i + 1
	for j < to {
		if strings.TrimSpace(string(p.lines[j])) == "```" {
			break
		}
		content = append(content, string(p.lines[j]))
		j++
	}
	node := &ast.Node{
		Kind:  ast.KindCode,
		Value: strings.Join(content, "\n"),
	}
	if j < to {
		node.Span = &ast.Span{
			Start: ast.Position{Line: i + 1, Column: ind + 1},
			End:   p.lineEnd(j),
		}
		return node, j + 1
	}
	// unclosed fence runs to the end of input
	node.Span = &ast.Span{
		Start: ast.Position{Line: i + 1, Column: ind + 1},
		End:   p.lineEnd(to - 1),
	}
	return node, to
}

// parseList consumes consecutive items at the given indent. Items indented
// deeper than their predecessor become a nested list inside it, giving the
// list > item > (paragraph, list) shape.
func (p *parser) parseList(i, indent, to int) (*ast.Node, int) {
	list := &ast.Node{Kind: ast.KindList}
	j := i
	for j < to {
		line := p.lines[j]
		if isBlank(line) {
			break
		}
		ind := indentOf(line)
		if ind != indent || !isListItem(line[ind:]) {
			break
		}

		item := &ast.Node{Kind: ast.KindListItem}
		start := ast.Position{Line: j + 1, Column: ind + 1}
		end := p.lineEnd(j)

		contentCol := ind + 2
		if contentCol < len(line) {
			textSpan := ast.Span{
				Start: ast.Position{Line: j + 1, Column: contentCol + 1},
				End:   p.lineEnd(j),
			}
			paraSpan := textSpan
			para := &ast.Node{Kind: ast.KindParagraph, Span: &paraSpan}
			para.AddChild(&ast.Node{
				Kind:  ast.KindText,
				Value: string(line[contentCol:]),
				Span:  &textSpan,
			})
			item.AddChild(para)
		}
		j++

		if j < to && !isBlank(p.lines[j]) {
			nind := indentOf(p.lines[j])
			if nind > indent && isListItem(p.lines[j][nind:]) {
				nested, next := p.parseList(j, nind, to)
				item.AddChild(nested)
				end = nested.Span.End
				j = next
			}
		}

		item.Span = &ast.Span{Start: start, End: end}
		list.AddChild(item)
	}
	list.Span = &ast.Span{
		Start: list.Children[0].Span.Start,
		End:   list.Children[len(list.Children)-1].Span.End,
	}
	return list, j
}

func (p *parser) parseParagraph(i, to int) (*ast.Node, int) {
	j := i
	for j < to {
		line := p.lines[j]
		if isBlank(line) {
			break
		}
		if j > i {
			rest := line[indentOf(line):]
			if headingLevel(rest) > 0 || isThematicBreak(rest) || isFence(rest) ||
				isElementStart(rest) || isClosingTag(rest) || isListItem(rest) {
				break
			}
		}
		j++
	}

	var parts []string
	for k := i; k < j; k++ {
		parts = append(parts, string(p.lines[k][indentOf(p.lines[k]):]))
	}
	ind := indentOf(p.lines[i])
	textSpan := ast.Span{
		Start: ast.Position{Line: i + 1, Column: ind + 1},
		End:   p.lineEnd(j - 1),
	}
	paraSpan := textSpan
	para := &ast.Node{Kind: ast.KindParagraph, Span: &paraSpan}
	para.AddChild(&ast.Node{
		Kind:  ast.KindText,
		Value: strings.Join(parts, "\n"),
		Span:  &textSpan,
	})
	return para, j
}

func isBlank(line []rune) bool {
	for _, r := range line {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}

func indentOf(line []rune) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

func headingLevel(rest []rune) int {
	n := 0
	for n < len(rest) && rest[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return 0
	}
	if n == len(rest) || rest[n] == ' ' {
		return n
	}
	return 0
}

func isThematicBreak(rest []rune) bool {
	if len(rest) == 0 {
		return false
	}
	marker := rest[0]
	if marker != '-' && marker != '*' && marker != '_' {
		return false
	}
	count := 0
	for _, r := range rest {
		switch r {
		case marker:
			count++
		case ' ':
		default:
			return false
		}
	}
	return count >= 3
}

func isFence(rest []rune) bool {
	return len(rest) >= 3 && rest[0] == '`' && rest[1] == '`' && rest[2] == '`'
}

func isListItem(rest []rune) bool {
	if len(rest) < 2 {
		return false
	}
	return (rest[0] == '-' || rest[0] == '*' || rest[0] == '+') && rest[1] == ' '
}

func isElementStart(rest []rune) bool {
	return len(rest) >= 2 && rest[0] == '<' && isNameStart(rest[1])
}

func isClosingTag(rest []rune) bool {
	return len(rest) >= 2 && rest[0] == '<' && rest[1] == '/'
}
