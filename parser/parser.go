// Package parser turns a stream of lex items into a parse tree.
package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdk/sev/lex"
)

// Parser handles parsing a stream of input
type Parser struct {
	lexer *lex.Lexer
	items []lex.Item
	pos   int
}

// NewFromReader creates a parser for an input stream.
func NewFromReader(name string, reader io.Reader) *Parser {

	lexer, items := lex.New(name, reader)

	p := &Parser{
		lexer: lexer,
	}

	for item := range items {
		if item.Type.Match(lex.HashComment, lex.SlashComment) {
			continue
		}
		p.items = append(p.items, item)
	}

	return p
}

// NewFromString creates a parser for a single string.
func NewFromString(name, input string) *Parser {
	return NewFromReader(name, strings.NewReader(input))
}

// Node is a node in the parse tree.
type Node struct {
	Item     lex.Item
	Children []Node
}

func (n Node) String() string {
	s := strings.Builder{}

	if len(n.Children) > 0 {
		s.WriteString("(")
	}

	s.WriteString(n.Item.Value)

	for _, c := range n.Children {
		s.WriteString(" ")
		s.WriteString(c.String())
	}

	if len(n.Children) > 0 {
		s.WriteString(")")
	}

	return s.String()
}

// Error positions an error at this node's item.
func (n Node) Error(err error) error {
	return n.Item.Error(err)
}

// Parse parses the complete input and returns the program block.
func (p *Parser) Parse() (Node, error) {
	stmts, err := p.statements(lex.EOF)
	if err != nil {
		return Node{}, err
	}

	return Node{
		Item: lex.Item{
			Type:  lex.LeftBrace,
			Value: "{",
		},
		Children: stmts,
	}, nil
}

func (p *Parser) peek() lex.Item {
	if p.pos < len(p.items) {
		return p.items[p.pos]
	}
	return lex.Item{Type: lex.EOF}
}

func (p *Parser) next() lex.Item {
	it := p.peek()
	if p.pos < len(p.items) {
		p.pos++
	}
	return it
}

func (p *Parser) skipSeparators() {
	for p.peek().Type == lex.Separator {
		p.next()
	}
}

func (p *Parser) expect(t lex.Type) (lex.Item, error) {
	it := p.next()
	if it.Type != t {
		return it, it.Error(fmt.Errorf("expected %s, found %q", t, it.Value))
	}
	return it, nil
}

// statements parses statements up to (and through) the end type.
func (p *Parser) statements(end lex.Type) ([]Node, error) {

	stmts := []Node{}

	for {
		p.skipSeparators()

		switch p.peek().Type {
		case end:
			if end != lex.EOF {
				p.next()
			}
			return stmts, nil
		case lex.EOF:
			it := p.peek()
			return nil, it.Error(fmt.Errorf("unexpected end of input"))
		case lex.Error:
			it := p.next()
			return nil, it.Error(errors.New(it.Mesg))
		}

		n, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, n)

		if !p.peek().Type.Match(lex.Separator, end, lex.EOF) {
			it := p.peek()
			return nil, it.Error(fmt.Errorf("unexpected %q after statement", it.Value))
		}
	}
}

func (p *Parser) statement() (Node, error) {

	if p.peek().Type == lex.Return {
		kw := p.next()

		if p.peek().Type.Match(lex.Separator, lex.RightBrace, lex.EOF) {
			return Node{Item: kw}, nil
		}

		val, err := p.expression()
		if err != nil {
			return Node{}, err
		}

		return Node{Item: kw, Children: []Node{val}}, nil
	}

	return p.expression()
}

// expression parses assignments (right associative) and below.
func (p *Parser) expression() (Node, error) {

	left, err := p.binary(0)
	if err != nil {
		return Node{}, err
	}

	if p.peek().Type.Match(lex.Assign, lex.PlusAssign, lex.MinusAssign,
		lex.MultAssign, lex.DivAssign, lex.ModuloAssign) {

		op := p.next()
		right, err := p.expression()
		if err != nil {
			return Node{}, err
		}

		return Node{Item: op, Children: []Node{left, right}}, nil
	}

	return left, nil
}

// precedence levels, loosest binding first.
var precedence = [][]lex.Type{
	{lex.And, lex.Or},
	{lex.Less, lex.Greater, lex.LessOrEqual, lex.GreaterOrEqual, lex.Equal, lex.NotEqual},
	{lex.Plus, lex.Minus},
	{lex.Mult, lex.Div, lex.Modulo},
}

func (p *Parser) binary(level int) (Node, error) {

	if level >= len(precedence) {
		return p.unary()
	}

	left, err := p.binary(level + 1)
	if err != nil {
		return Node{}, err
	}

	for p.peek().Type.Match(precedence[level]...) {
		op := p.next()

		right, err := p.binary(level + 1)
		if err != nil {
			return Node{}, err
		}

		left = Node{Item: op, Children: []Node{left, right}}
	}

	return left, nil
}

func (p *Parser) unary() (Node, error) {

	if p.peek().Type.Match(lex.Not, lex.Minus) {
		op := p.next()

		operand, err := p.unary()
		if err != nil {
			return Node{}, err
		}

		return Node{Item: op, Children: []Node{operand}}, nil
	}

	return p.postfix()
}

// postfix handles function application: expr(arg, ...).
func (p *Parser) postfix() (Node, error) {

	node, err := p.primary()
	if err != nil {
		return Node{}, err
	}

	for p.peek().Type == lex.LeftParen {
		open := p.next()

		args, err := p.arguments(lex.RightParen)
		if err != nil {
			return Node{}, err
		}

		node = Node{
			Item: lex.Item{
				Type:   lex.FuncApply,
				Value:  "apply",
				Line:   open.Line,
				Column: open.Column,
			},
			Children: append([]Node{node}, args...),
		}
	}

	return node, nil
}

// arguments parses a comma separated expression list through the
// closing end token.
func (p *Parser) arguments(end lex.Type) ([]Node, error) {

	args := []Node{}

	p.skipSeparators()
	if p.peek().Type == end {
		p.next()
		return args, nil
	}

	for {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		p.skipSeparators()

		switch p.peek().Type {
		case lex.Comma:
			p.next()
			p.skipSeparators()
		case end:
			p.next()
			return args, nil
		default:
			it := p.peek()
			return nil, it.Error(fmt.Errorf("expected , or %s, found %q", end, it.Value))
		}
	}
}

func (p *Parser) primary() (Node, error) {

	switch p.peek().Type {
	case lex.Number, lex.DoubleQuoteString, lex.SingleQuoteString,
		lex.BacktickString, lex.Ident, lex.Nil, lex.True, lex.False:
		return Node{Item: p.next()}, nil

	case lex.LeftParen:
		p.next()
		p.skipSeparators()

		inner, err := p.expression()
		if err != nil {
			return Node{}, err
		}

		p.skipSeparators()
		if _, err := p.expect(lex.RightParen); err != nil {
			return Node{}, err
		}

		return inner, nil

	case lex.LeftBracket:
		open := p.next()

		elems, err := p.arguments(lex.RightBracket)
		if err != nil {
			return Node{}, err
		}

		return Node{
			Item: lex.Item{
				Type:   lex.List,
				Value:  "[",
				Line:   open.Line,
				Column: open.Column,
			},
			Children: elems,
		}, nil

	case lex.LeftBrace:
		return p.block()

	case lex.Function:
		return p.function()

	case lex.Let, lex.Par:
		return p.binder()
	}

	it := p.next()
	if it.Type == lex.Error {
		return Node{}, it.Error(errors.New(it.Mesg))
	}
	return Node{}, it.Error(fmt.Errorf("unexpected %q", it.Value))
}

func (p *Parser) block() (Node, error) {

	open, err := p.expect(lex.LeftBrace)
	if err != nil {
		return Node{}, err
	}

	stmts, err := p.statements(lex.RightBrace)
	if err != nil {
		return Node{}, err
	}

	return Node{Item: open, Children: stmts}, nil
}

// function parses fn(a, b) { ... }.
func (p *Parser) function() (Node, error) {

	kw := p.next()

	open, err := p.expect(lex.LeftParen)
	if err != nil {
		return Node{}, err
	}

	params := []Node{}
	p.skipSeparators()
	if p.peek().Type != lex.RightParen {
		for {
			id, err := p.expect(lex.Ident)
			if err != nil {
				return Node{}, err
			}
			params = append(params, Node{Item: id})

			if p.peek().Type == lex.Comma {
				p.next()
				p.skipSeparators()
				continue
			}
			break
		}
	}
	if _, err := p.expect(lex.RightParen); err != nil {
		return Node{}, err
	}

	body, err := p.block()
	if err != nil {
		return Node{}, err
	}

	paramList := Node{Item: open, Children: params}

	return Node{Item: kw, Children: []Node{paramList, body}}, nil
}

// binder parses let/par group+ block. Group children are the flat
// name... source list; shape problems are left to the compiler's
// splitter.
func (p *Parser) binder() (Node, error) {

	kw := p.next()

	groups := []Node{}
	for p.peek().Type == lex.LeftParen {
		g, err := p.group()
		if err != nil {
			return Node{}, err
		}
		groups = append(groups, g)
	}

	if len(groups) == 0 {
		return Node{}, kw.Error(fmt.Errorf("%s requires at least one (name... = expr) group", kw.Value))
	}

	body, err := p.block()
	if err != nil {
		return Node{}, err
	}

	return Node{Item: kw, Children: append(groups, body)}, nil
}

// group parses ( name, ... = expr ). The = and source are optional
// here so that a group lacking its source is rejected by the binder's
// splitter rather than mid-parse.
func (p *Parser) group() (Node, error) {

	open := p.next()

	parts := []Node{}
	p.skipSeparators()

	if p.peek().Type != lex.RightParen {
		for p.peek().Type == lex.Ident {
			parts = append(parts, Node{Item: p.next()})

			if p.peek().Type == lex.Comma {
				p.next()
				p.skipSeparators()
				continue
			}
			break
		}

		if p.peek().Type == lex.Assign {
			p.next()
			p.skipSeparators()

			src, err := p.expression()
			if err != nil {
				return Node{}, err
			}
			parts = append(parts, src)

			p.skipSeparators()
		}
	}

	if _, err := p.expect(lex.RightParen); err != nil {
		return Node{}, err
	}

	return Node{
		Item: lex.Item{
			Type:   lex.Group,
			Value:  "group",
			Line:   open.Line,
			Column: open.Column,
		},
		Children: parts,
	}, nil
}
