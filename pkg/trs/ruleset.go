package trs

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Rule sets are read from the XML format of the Termination Problems
// Database:
//
//	problem
//	  trs
//	    rules
//	      rule
//	        lhs  term
//	        rhs  term
//	    signature
//	      funcsym
//	        name
//	        arity
//	    comment
//	  strategy | startterm | status | metainformation   (ignored)
//
// where term is either <var>x</var> or
// <funapp><name>f</name><arg>term</arg>...</funapp>.

// Messages of the named rejections, each wrapped in ErrUnsupported.
const (
	msgHigherOrder = "higher-order rewrite systems unsupported"
	msgConditional = "conditional rewrite systems unsupported"
	msgRelative    = "relative rules unsupported"
	msgTheory      = "rewriting modulo theories unsupported"
	msgReplacement = "replacement maps unsupported"
)

// LoadRuleSet reads the rule set stored at path.
func LoadRuleSet(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rule set: %w", err)
	}
	defer f.Close()
	rs, err := ParseRuleSet(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// ParseRuleSet decodes a rule set document. Constructs outside unconditional
// first-order rewriting fail with an error wrapping ErrUnsupported; XML syntax
// errors and structural problems wrap ErrMalformedRuleSet.
func ParseRuleSet(r io.Reader) (*RuleSet, error) {
	p := &ruleSetParser{
		d:   xml.NewDecoder(r),
		sig: Signature{},
	}
	if err := p.document(); err != nil {
		return nil, err
	}
	rs, err := NewRuleSet(p.sig)
	if err != nil {
		return nil, err
	}
	for _, raw := range p.rules {
		if err := rs.Add(raw); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

type ruleSetParser struct {
	d     *xml.Decoder
	sig   Signature
	rules []Rule
}

func (p *ruleSetParser) unsupported(msg string) error {
	line, _ := p.d.InputPos()
	return fmt.Errorf("line %d: %w: %s", line, ErrUnsupported, msg)
}

func (p *ruleSetParser) malformed(format string, args ...any) error {
	line, _ := p.d.InputPos()
	return fmt.Errorf("line %d: %w: %s", line, ErrMalformedRuleSet, fmt.Sprintf(format, args...))
}

func (p *ruleSetParser) unexpected(e xml.StartElement) error {
	return p.malformed("unexpected element %s", e.Name.Local)
}

// child returns the next child element of the current element, or false once
// its end tag has been consumed. Character data and comments are skipped.
func (p *ruleSetParser) child() (xml.StartElement, bool, error) {
	for {
		tok, err := p.d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return xml.StartElement{}, false, p.malformed("unexpected end of document")
			}
			return xml.StartElement{}, false, fmt.Errorf("%w: %w", ErrMalformedRuleSet, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t, true, nil
		case xml.EndElement:
			return xml.StartElement{}, false, nil
		}
	}
}

// text returns the trimmed character data of a leaf element and consumes
// its end tag.
func (p *ruleSetParser) text(e xml.StartElement) (string, error) {
	var sb strings.Builder
	for {
		tok, err := p.d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", p.malformed("unexpected end of document in %s", e.Name.Local)
			}
			return "", fmt.Errorf("%w: %w", ErrMalformedRuleSet, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			return "", p.unexpected(t)
		case xml.EndElement:
			return strings.TrimSpace(sb.String()), nil
		}
	}
}

func (p *ruleSetParser) skip() error {
	if err := p.d.Skip(); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedRuleSet, err)
	}
	return nil
}

func (p *ruleSetParser) document() error {
	// The root element is <problem>; its type attribute is irrelevant.
	for {
		tok, err := p.d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return p.malformed("empty document")
			}
			return fmt.Errorf("%w: %w", ErrMalformedRuleSet, err)
		}
		if _, ok := tok.(xml.StartElement); ok {
			break
		}
	}
	for {
		e, ok, err := p.child()
		if err != nil || !ok {
			return err
		}
		switch e.Name.Local {
		case "trs":
			err = p.trs()
		case "strategy", "startterm", "status", "metainformation":
			err = p.skip()
		default:
			err = p.unexpected(e)
		}
		if err != nil {
			return err
		}
	}
}

func (p *ruleSetParser) trs() error {
	for {
		e, ok, err := p.child()
		if err != nil || !ok {
			return err
		}
		switch e.Name.Local {
		case "rules":
			err = p.ruleList()
		case "signature":
			err = p.signature()
		case "comment":
			err = p.skip()
		case "higherOrderSignature":
			err = p.unsupported(msgHigherOrder)
		case "conditiontype":
			err = p.unsupported(msgConditional)
		default:
			err = p.unexpected(e)
		}
		if err != nil {
			return err
		}
	}
}

func (p *ruleSetParser) ruleList() error {
	for {
		e, ok, err := p.child()
		if err != nil || !ok {
			return err
		}
		switch e.Name.Local {
		case "rule":
			err = p.rule()
		case "relrules":
			err = p.unsupported(msgRelative)
		default:
			err = p.unexpected(e)
		}
		if err != nil {
			return err
		}
	}
}

func (p *ruleSetParser) rule() error {
	var lhs, rhs Term
	for {
		e, ok, err := p.child()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		switch e.Name.Local {
		case "lhs":
			lhs, err = p.side(e)
		case "rhs":
			rhs, err = p.side(e)
		case "conditions":
			err = p.unsupported(msgConditional)
		default:
			err = p.unexpected(e)
		}
		if err != nil {
			return err
		}
	}
	if lhs == nil || rhs == nil {
		return p.malformed("rule without lhs or rhs")
	}
	r, err := NewRule(lhs, rhs)
	if err != nil {
		return err
	}
	p.rules = append(p.rules, r)
	return nil
}

// side reads the single term inside <lhs>, <rhs> or <arg>.
func (p *ruleSetParser) side(parent xml.StartElement) (Term, error) {
	e, ok, err := p.child()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, p.malformed("empty %s", parent.Name.Local)
	}
	t, err := p.term(e)
	if err != nil {
		return nil, err
	}
	if extra, ok, err := p.child(); err != nil {
		return nil, err
	} else if ok {
		return nil, p.unexpected(extra)
	}
	return t, nil
}

func (p *ruleSetParser) term(e xml.StartElement) (Term, error) {
	switch e.Name.Local {
	case "var":
		name, err := p.text(e)
		if err != nil {
			return nil, err
		}
		if name == "" {
			return nil, p.malformed("variable without name")
		}
		return NewVar(name), nil
	case "funapp":
		return p.funapp()
	case "lambda", "application":
		return nil, p.unsupported(msgHigherOrder)
	default:
		return nil, p.unexpected(e)
	}
}

func (p *ruleSetParser) funapp() (Term, error) {
	var (
		name    string
		hasName bool
		args    []Term
	)
	for {
		e, ok, err := p.child()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch e.Name.Local {
		case "name":
			if name, err = p.text(e); err != nil {
				return nil, err
			}
			hasName = true
		case "arg":
			arg, err := p.side(e)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		default:
			return nil, p.unexpected(e)
		}
	}
	if !hasName || name == "" {
		return nil, p.malformed("function application without name")
	}
	return NewFun(FunctionSymbol{Name: name, Arity: len(args)}, args...), nil
}

func (p *ruleSetParser) signature() error {
	for {
		e, ok, err := p.child()
		if err != nil || !ok {
			return err
		}
		if e.Name.Local != "funcsym" {
			return p.unexpected(e)
		}
		if err := p.funcsym(); err != nil {
			return err
		}
	}
}

func (p *ruleSetParser) funcsym() error {
	var (
		name, arity       string
		hasName, hasArity bool
	)
	for {
		e, ok, err := p.child()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		switch e.Name.Local {
		case "name":
			name, err = p.text(e)
			hasName = true
		case "arity":
			arity, err = p.text(e)
			hasArity = true
		case "theory":
			err = p.unsupported(msgTheory)
		case "replacementmap":
			err = p.unsupported(msgReplacement)
		default:
			err = p.unexpected(e)
		}
		if err != nil {
			return err
		}
	}
	if !hasName || !hasArity || name == "" {
		return p.malformed("function symbol without name or arity")
	}
	n, err := strconv.Atoi(arity)
	if err != nil || n < 0 {
		return p.malformed("invalid arity %q for %s", arity, name)
	}
	return p.sig.Add(name, n)
}
