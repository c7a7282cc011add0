package trs

import (
	"fmt"
	"slices"
	"strings"
)

// Signature maps function names to arities. A consistent signature never
// maps one name to two arities, which Add enforces.
type Signature map[string]int

// Add records name with arity. Re-adding a name with the same arity is a
// no-op; a different arity is an error wrapping ErrArity.
func (s Signature) Add(name string, arity int) error {
	if arity < 0 {
		return fmt.Errorf("%w: negative arity %d for %q", ErrArity, arity, name)
	}
	if have, ok := s[name]; ok && have != arity {
		return fmt.Errorf("%w: arity of %q is %d, not %d", ErrArity, name, have, arity)
	}
	s[name] = arity
	return nil
}

// Lookup returns the symbol called name.
func (s Signature) Lookup(name string) (FunctionSymbol, bool) {
	arity, ok := s[name]
	if !ok {
		return FunctionSymbol{}, false
	}
	return FunctionSymbol{Name: name, Arity: arity}, true
}

// Symbols returns all symbols sorted by name.
func (s Signature) Symbols() []FunctionSymbol {
	out := make([]FunctionSymbol, 0, len(s))
	for name, arity := range s {
		out = append(out, FunctionSymbol{Name: name, Arity: arity})
	}
	slices.SortFunc(out, func(a, b FunctionSymbol) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Merge adds every symbol of other, failing on the first inconsistency.
func (s Signature) Merge(other Signature) error {
	for _, sym := range other.Symbols() {
		if err := s.Add(sym.Name, sym.Arity); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns an independent copy.
func (s Signature) Clone() Signature {
	out := make(Signature, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// String renders the signature as "{f/1, g/2}".
func (s Signature) String() string {
	syms := s.Symbols()
	parts := make([]string, len(syms))
	for i, sym := range syms {
		parts[i] = sym.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
