package coproc

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokName
	tokNumber
	tokString
	tokAssign
	tokOp
	tokLParen
	tokRParen
	tokComma
	tokEquals
	tokDollar
	tokSep
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func isNameStart(r rune) bool {
	return unicode.IsLetter(r) || r == '.'
}

func isNamePart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// lex splits a statement list into tokens.
func lex(src string) ([]token, error) {
	var tokens []token

	in := []rune(src)

	for i := 0; i < len(in); {
		r := in[i]

		switch {
		case r == '\n' || r == ';':
			tokens = append(tokens, token{tokSep, string(r), i})
			i++
		case unicode.IsSpace(r):
			i++
		case r == '#':
			for i < len(in) && in[i] != '\n' {
				i++
			}
		case isDigit(r) || r == '.' && i+1 < len(in) && isDigit(in[i+1]):
			start := i

			for i < len(in) && (isDigit(in[i]) || in[i] == '.') {
				i++
			}

			if i < len(in) && (in[i] == 'e' || in[i] == 'E') {
				i++

				if i < len(in) && (in[i] == '+' || in[i] == '-') {
					i++
				}

				for i < len(in) && isDigit(in[i]) {
					i++
				}
			}

			tokens = append(tokens, token{tokNumber, string(in[start:i]), start})
		case isNameStart(r):
			start := i

			for i < len(in) && isNamePart(in[i]) {
				i++
			}

			tokens = append(tokens, token{tokName, string(in[start:i]), start})
		case r == '\'' || r == '"':
			start := i
			i++

			var sb strings.Builder

			for i < len(in) && in[i] != r {
				sb.WriteRune(in[i])
				i++
			}

			if i == len(in) {
				return nil, fmt.Errorf("coproc: unterminated string at %d", start)
			}

			i++
			tokens = append(tokens, token{tokString, sb.String(), start})
		case r == '<' && i+1 < len(in) && in[i+1] == '-':
			tokens = append(tokens, token{tokAssign, "<-", i})
			i += 2
		case r == '*' && i+1 < len(in) && in[i+1] == '*':
			tokens = append(tokens, token{tokOp, "^", i})
			i += 2
		case strings.ContainsRune("+-*/^", r):
			tokens = append(tokens, token{tokOp, string(r), i})
			i++
		case r == '(':
			tokens = append(tokens, token{tokLParen, "(", i})
			i++
		case r == ')':
			tokens = append(tokens, token{tokRParen, ")", i})
			i++
		case r == ',':
			tokens = append(tokens, token{tokComma, ",", i})
			i++
		case r == '=':
			tokens = append(tokens, token{tokEquals, "=", i})
			i++
		case r == '$':
			tokens = append(tokens, token{tokDollar, "$", i})
			i++
		default:
			return nil, fmt.Errorf("coproc: unexpected %q at %d", r, i)
		}
	}

	return append(tokens, token{tokEOF, "", len(in)}), nil
}

type node interface{}

type (
	numberNode float64
	stringNode string
	nameNode   string
	fieldNode  struct {
		x    node
		name string
	}
	negNode struct {
		x node
	}
	binaryNode struct {
		op   string
		x, y node
	}
	callNode struct {
		fn   string
		args []argNode
	}
	argNode struct {
		name  string
		value node
	}
)

// statement is an expression with an optional assignment target.
type statement struct {
	target string
	expr   node
}

type parser struct {
	tokens []token
	pos    int
}

// parse returns the statements of a source text.
func parse(src string) ([]statement, error) {
	tokens, err := lex(src)

	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}

	var result []statement

	for {
		for p.peek().kind == tokSep {
			p.next()
		}

		if p.peek().kind == tokEOF {
			return result, nil
		}

		s, err := p.statement()

		if err != nil {
			return nil, err
		}

		result = append(result, s)

		if t := p.peek(); t.kind != tokSep && t.kind != tokEOF {
			return nil, p.unexpected(t)
		}
	}
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]

	if t.kind != tokEOF {
		p.pos++
	}

	return t
}

func (p *parser) unexpected(t token) error {
	if t.kind == tokEOF {
		return fmt.Errorf("coproc: unexpected end of input")
	}

	return fmt.Errorf("coproc: unexpected %q at %d", t.text, t.pos)
}

func (p *parser) statement() (statement, error) {
	if p.peek().kind == tokName && p.tokens[p.pos+1].kind == tokAssign {
		target := p.next().text
		p.next()

		expr, err := p.expr()

		return statement{target: target, expr: expr}, err
	}

	expr, err := p.expr()

	return statement{expr: expr}, err
}

// expr parses additive expressions.
func (p *parser) expr() (node, error) {
	x, err := p.term()

	if err != nil {
		return nil, err
	}

	for t := p.peek(); t.kind == tokOp && (t.text == "+" || t.text == "-"); t = p.peek() {
		p.next()

		y, err := p.term()

		if err != nil {
			return nil, err
		}

		x = binaryNode{op: t.text, x: x, y: y}
	}

	return x, nil
}

func (p *parser) term() (node, error) {
	x, err := p.unary()

	if err != nil {
		return nil, err
	}

	for t := p.peek(); t.kind == tokOp && (t.text == "*" || t.text == "/"); t = p.peek() {
		p.next()

		y, err := p.unary()

		if err != nil {
			return nil, err
		}

		x = binaryNode{op: t.text, x: x, y: y}
	}

	return x, nil
}

func (p *parser) unary() (node, error) {
	if t := p.peek(); t.kind == tokOp && t.text == "-" {
		p.next()

		x, err := p.unary()

		return negNode{x: x}, err
	}

	return p.power()
}

// power is right associative and binds tighter than unary minus.
func (p *parser) power() (node, error) {
	x, err := p.postfix()

	if err != nil {
		return nil, err
	}

	if t := p.peek(); t.kind == tokOp && t.text == "^" {
		p.next()

		y, err := p.unary()

		if err != nil {
			return nil, err
		}

		return binaryNode{op: "^", x: x, y: y}, nil
	}

	return x, nil
}

func (p *parser) postfix() (node, error) {
	x, err := p.primary()

	if err != nil {
		return nil, err
	}

	for p.peek().kind == tokDollar {
		p.next()

		t := p.next()

		if t.kind != tokName {
			return nil, p.unexpected(t)
		}

		x = fieldNode{x: x, name: t.text}
	}

	return x, nil
}

func (p *parser) primary() (node, error) {
	t := p.next()

	switch t.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(t.text, 64)

		if err != nil {
			return nil, fmt.Errorf("coproc: invalid number %q at %d", t.text, t.pos)
		}

		return numberNode(v), nil
	case tokString:
		return stringNode(t.text), nil
	case tokName:
		if p.peek().kind == tokLParen {
			p.next()
			return p.call(t.text)
		}

		return nameNode(t.text), nil
	case tokLParen:
		x, err := p.expr()

		if err != nil {
			return nil, err
		}

		if r := p.next(); r.kind != tokRParen {
			return nil, p.unexpected(r)
		}

		return x, nil
	default:
		return nil, p.unexpected(t)
	}
}

func (p *parser) call(fn string) (node, error) {
	c := callNode{fn: fn}

	if p.peek().kind == tokRParen {
		p.next()
		return c, nil
	}

	for {
		var arg argNode

		if p.peek().kind == tokName && p.tokens[p.pos+1].kind == tokEquals {
			arg.name = p.next().text
			p.next()
		}

		value, err := p.expr()

		if err != nil {
			return nil, err
		}

		arg.value = value
		c.args = append(c.args, arg)

		switch t := p.next(); t.kind {
		case tokComma:
			continue
		case tokRParen:
			return c, nil
		default:
			return nil, p.unexpected(t)
		}
	}
}
