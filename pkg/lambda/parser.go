package lambda

import (
	"fmt"
	"strings"
)

// The surface grammar, with named variables:
//
//	term := atom+                      (left-associated application)
//	atom := '(' term ')' | var | '\' var+ '.' term
//	var  := [a-z][0-9]*
//
// Whitespace (space, tab, CR, LF) separates tokens and is otherwise ignored.

// named is a surface term with variable names. It is produced by the parser
// and the random generator and converted to de Bruijn form afterwards.
type named interface {
	write(sb *strings.Builder, top bool)
}

type namedVar struct{ name string }

type namedAbs struct {
	name string
	body named
}

type namedApp struct{ left, right named }

func (v *namedVar) write(sb *strings.Builder, _ bool) { sb.WriteString(v.name) }

func (a *namedAbs) write(sb *strings.Builder, top bool) {
	if !top {
		sb.WriteByte('(')
	}
	sb.WriteByte('\\')
	sb.WriteString(a.name)
	body := a.body
	for {
		inner, ok := body.(*namedAbs)
		if !ok {
			break
		}
		sb.WriteByte(' ')
		sb.WriteString(inner.name)
		body = inner.body
	}
	sb.WriteByte('.')
	body.write(sb, true)
	if !top {
		sb.WriteByte(')')
	}
}

func (a *namedApp) write(sb *strings.Builder, top bool) {
	if !top {
		sb.WriteByte('(')
	}
	_, leftIsApp := a.left.(*namedApp)
	a.left.write(sb, leftIsApp)
	sb.WriteByte(' ')
	a.right.write(sb, false)
	if !top {
		sb.WriteByte(')')
	}
}

func renderNamed(n named) string {
	var sb strings.Builder
	n.write(&sb, true)
	return sb.String()
}

const eof = 0

// parser holds the scanner state of a single parse.
type parser struct {
	src    string
	pos    int  // next unread byte
	sym    byte // current symbol, eof at end of input
	symPos int  // offset of sym
}

func newParser(src string) *parser {
	p := &parser{src: src}
	p.next()
	return p
}

// next advances to the next non-blank symbol.
func (p *parser) next() {
	for p.pos < len(p.src) && isBlank(p.src[p.pos]) {
		p.pos++
	}
	p.symPos = p.pos
	if p.pos == len(p.src) {
		p.sym = eof
		return
	}
	p.sym = p.src[p.pos]
	p.pos++
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (p *parser) fail() error {
	if p.sym == eof {
		return &ParseError{Pos: p.symPos, Err: ErrUnexpectedEnd}
	}
	return &ParseError{Pos: p.symPos, Symbol: string(p.sym), Err: ErrInvalidSymbol}
}

func (p *parser) startsAtom() bool {
	return p.sym == '(' || p.sym == '\\' || isLower(p.sym)
}

func (p *parser) term() (named, error) {
	if !p.startsAtom() {
		return nil, p.fail()
	}
	var top named
	for p.startsAtom() {
		sub, err := p.atom()
		if err != nil {
			return nil, err
		}
		if top == nil {
			top = sub
		} else {
			top = &namedApp{left: top, right: sub}
		}
	}
	return top, nil
}

func (p *parser) atom() (named, error) {
	switch {
	case p.sym == '(':
		p.next()
		sub, err := p.term()
		if err != nil {
			return nil, err
		}
		if p.sym != ')' {
			return nil, p.fail()
		}
		p.next()
		return sub, nil
	case p.sym == '\\':
		return p.abstraction()
	default:
		name, err := p.variable()
		if err != nil {
			return nil, err
		}
		return &namedVar{name: name}, nil
	}
}

// variable reads a letter followed by directly adjacent digits.
func (p *parser) variable() (string, error) {
	if !isLower(p.sym) {
		return "", p.fail()
	}
	start := p.symPos
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}
	name := p.src[start:p.pos]
	p.next()
	return name, nil
}

func (p *parser) abstraction() (named, error) {
	p.next() // consume '\'
	var names []string
	for {
		name, err := p.variable()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if p.sym == '.' {
			break
		}
	}
	p.next() // consume '.'
	body, err := p.term()
	if err != nil {
		return nil, err
	}
	for i := len(names) - 1; i >= 0; i-- {
		body = &namedAbs{name: names[i], body: body}
	}
	return body, nil
}

func parseNamed(src string) (named, error) {
	p := newParser(src)
	n, err := p.term()
	if err != nil {
		return nil, err
	}
	if p.sym != eof {
		return nil, &ParseError{Pos: p.symPos, Symbol: p.src[p.symPos:], Err: ErrTrailingInput}
	}
	return n, nil
}

// Parse converts surface syntax into a de Bruijn term. Free variables are
// numbered in order of first occurrence, left to right.
func Parse(src string) (Term, error) {
	t, _, err := ParseFree(src, nil)
	return t, err
}

// ParseFree parses src against a preset free-variable list. Names in free
// keep their positions; free names not in the list are appended in order of
// first occurrence. The complete list is returned alongside the term, and a
// free variable with list position j under k binders becomes index k+j.
func ParseFree(src string, free []string) (Term, []string, error) {
	n, err := parseNamed(src)
	if err != nil {
		return nil, nil, err
	}
	c := &converter{free: append([]string(nil), free...), index: map[string]int{}}
	for i, name := range c.free {
		if _, dup := c.index[name]; !dup {
			c.index[name] = i
		}
	}
	return c.convert(n, nil), c.free, nil
}

// MustParse is like Parse but panics on error. It is intended for tests and
// fixed terms in examples.
func MustParse(src string) Term {
	t, err := Parse(src)
	if err != nil {
		panic(fmt.Sprintf("lambda: MustParse(%q): %v", src, err))
	}
	return t
}

type converter struct {
	free  []string
	index map[string]int
}

// convert resolves names against bound, innermost binder last.
func (c *converter) convert(n named, bound []string) Term {
	switch t := n.(type) {
	case *namedVar:
		for i := len(bound) - 1; i >= 0; i-- {
			if bound[i] == t.name {
				return NewVar(len(bound) - 1 - i)
			}
		}
		j, ok := c.index[t.name]
		if !ok {
			j = len(c.free)
			c.free = append(c.free, t.name)
			c.index[t.name] = j
		}
		return NewVar(len(bound) + j)
	case *namedAbs:
		return NewAbs(c.convert(t.body, append(bound, t.name)))
	case *namedApp:
		return NewApp(c.convert(t.left, bound), c.convert(t.right, bound))
	default:
		panic(fmt.Sprintf("lambda: unknown surface node %T", n))
	}
}
