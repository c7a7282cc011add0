package trs

import "fmt"

// Term syntax:
//
//	term := ident | ident '(' term (',' term)* ')'
//	ident := [A-Za-z0-9]+
//
// An identifier is a function symbol if the signature declares it and a
// variable otherwise. Whitespace between tokens is ignored.

const eof = 0

type parser struct {
	src    string
	pos    int
	sym    byte
	symPos int
	sig    Signature
}

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

func isIdent(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func (p *parser) fail() error {
	if p.sym == eof {
		return &ParseError{Pos: p.symPos, Err: ErrUnexpectedEnd}
	}
	return &ParseError{Pos: p.symPos, Symbol: string(p.sym), Err: ErrInvalidSymbol}
}

func (p *parser) ident() (string, int, error) {
	if !isIdent(p.sym) {
		return "", 0, p.fail()
	}
	start := p.symPos
	for p.pos < len(p.src) && isIdent(p.src[p.pos]) {
		p.pos++
	}
	name := p.src[start:p.pos]
	p.next()
	return name, start, nil
}

func (p *parser) term() (Term, error) {
	name, at, err := p.ident()
	if err != nil {
		return nil, err
	}
	arity, declared := p.sig[name]
	if p.sym != '(' {
		switch {
		case !declared:
			return NewVar(name), nil
		case arity == 0:
			return Const(name), nil
		default:
			return nil, &ParseError{Pos: at, Symbol: name,
				Err: fmt.Errorf("%w: arity of %q is %d, not 0", ErrArity, name, arity)}
		}
	}
	if !declared {
		return nil, &ParseError{Pos: at, Symbol: name, Err: ErrUndeclared}
	}
	p.next() // consume '('
	var args []Term
	for {
		arg, err := p.term()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.sym != ',' {
			break
		}
		p.next()
	}
	if p.sym != ')' {
		return nil, p.fail()
	}
	p.next()
	if len(args) != arity {
		return nil, &ParseError{Pos: at, Symbol: name,
			Err: fmt.Errorf("%w: arity of %q is %d, not %d", ErrArity, name, arity, len(args))}
	}
	return NewFun(FunctionSymbol{Name: name, Arity: arity}, args...), nil
}

// ParseTerm parses src against sig. Errors are *ParseError values wrapping
// one of the package sentinels.
func ParseTerm(src string, sig Signature) (Term, error) {
	p := &parser{src: src, sig: sig}
	p.next()
	t, err := p.term()
	if err != nil {
		return nil, err
	}
	if p.sym != eof {
		return nil, &ParseError{Pos: p.symPos, Symbol: src[p.symPos:], Err: ErrTrailingInput}
	}
	return t, nil
}

// MustParseTerm is like ParseTerm but panics on error.
func MustParseTerm(src string, sig Signature) Term {
	t, err := ParseTerm(src, sig)
	if err != nil {
		panic("trs: " + err.Error())
	}
	return t
}
