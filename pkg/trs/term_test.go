package trs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	symF = FunctionSymbol{Name: "f", Arity: 1}
	symG = FunctionSymbol{Name: "g", Arity: 2}
)

func testSignature() Signature {
	return Signature{"a": 0, "b": 0, "f": 1, "g": 2}
}

func TestTermString(t *testing.T) {
	term := NewFun(symG, NewFun(symF, Const("a")), NewVar("x"))
	assert.Equal(t, "g(f(a), x)", term.String())
	assert.Equal(t, "a", Const("a").String())
	assert.Equal(t, "f/1", symF.String())
}

func TestTermEqualAndHash(t *testing.T) {
	t1 := NewFun(symG, Const("a"), NewVar("x"))
	t2 := NewFun(symG, Const("a"), NewVar("x"))
	t3 := NewFun(symG, NewVar("x"), Const("a"))

	assert.True(t, t1.Equal(t2))
	assert.Equal(t, t1.Hash(), t2.Hash())
	assert.False(t, t1.Equal(t3))
	assert.NotEqual(t, t1.Hash(), t3.Hash())

	// A variable and a constant with the same name differ.
	assert.False(t, NewVar("a").Equal(Const("a")))
	assert.NotEqual(t, NewVar("a").Hash(), Const("a").Hash())

	// Same name, different arity.
	h := FunctionSymbol{Name: "h", Arity: 1}
	h2 := FunctionSymbol{Name: "h", Arity: 2}
	assert.False(t, NewFun(h, Const("a")).Equal(NewFun(h2, Const("a"), Const("a"))))
}

func TestTermSizeAndClone(t *testing.T) {
	term := NewFun(symG, NewFun(symF, Const("a")), NewVar("x"))
	assert.Equal(t, 4, term.Size())

	clone := term.Clone()
	assert.True(t, term.Equal(clone))
	assert.NotSame(t, term, clone)
	assert.NotSame(t, term.Arg(0), clone.(*Fun).Arg(0))
}

func TestNewFunArityPanics(t *testing.T) {
	assert.PanicsWithValue(t, "trs: g/2 applied to 1 arguments", func() {
		NewFun(symG, Const("a"))
	})
}

func TestNewFunCopiesArgs(t *testing.T) {
	args := []Term{Const("a"), Const("b")}
	term := NewFun(symG, args...)
	args[0] = NewVar("x")
	assert.Equal(t, "g(a, b)", term.String())
}

func TestVarsAndGround(t *testing.T) {
	term := NewFun(symG, NewFun(symG, NewVar("y"), NewVar("x")), NewVar("y"))
	assert.Equal(t, []string{"y", "x"}, Vars(term))
	assert.False(t, IsGround(term))
	assert.True(t, IsGround(NewFun(symF, Const("a"))))
}

func TestSignature(t *testing.T) {
	sig := Signature{}
	require.NoError(t, sig.Add("g", 2))
	require.NoError(t, sig.Add("f", 1))
	require.NoError(t, sig.Add("f", 1))

	err := sig.Add("f", 2)
	require.ErrorIs(t, err, ErrArity)
	assert.Contains(t, err.Error(), `arity of "f" is 1, not 2`)
	require.ErrorIs(t, sig.Add("h", -1), ErrArity)

	assert.Equal(t, "{f/1, g/2}", sig.String())
	sym, ok := sig.Lookup("g")
	require.True(t, ok)
	assert.Equal(t, symG, sym)
	_, ok = sig.Lookup("h")
	assert.False(t, ok)

	clone := sig.Clone()
	require.NoError(t, clone.Add("a", 0))
	assert.NotContains(t, sig, "a")

	require.ErrorIs(t, sig.Merge(Signature{"g": 1}), ErrArity)
}

func TestRuleConstruction(t *testing.T) {
	_, err := NewRule(NewVar("x"), Const("a"))
	require.ErrorIs(t, err, ErrVariableLHS)

	r := MustRule(NewFun(symF, NewVar("x")), NewFun(symG, NewVar("x"), NewVar("x")))
	assert.Equal(t, "f(x) -> g(x, x)", r.String())

	rs, err := NewRuleSet(Signature{"a": 0}, r)
	require.NoError(t, err)
	assert.Equal(t, "{a/0, f/1, g/2}", rs.Signature.String())
	assert.Equal(t, "f(x) -> g(x, x)", rs.String())

	bad := MustRule(NewFun(FunctionSymbol{Name: "f", Arity: 2}, Const("a"), Const("a")), Const("a"))
	require.ErrorIs(t, rs.Add(bad), ErrArity)
	assert.Len(t, rs.Rules, 1)
}

func TestRuleSetAddLeavesSignatureOnError(t *testing.T) {
	rs, err := NewRuleSet(Signature{"f": 1})
	require.NoError(t, err)

	symH := FunctionSymbol{Name: "h", Arity: 1}
	clash := MustRule(NewFun(symH, NewVar("x")), NewFun(FunctionSymbol{Name: "f", Arity: 2}, NewVar("x"), NewVar("x")))
	require.ErrorIs(t, rs.Add(clash), ErrArity)
	assert.Empty(t, rs.Rules)
	assert.Equal(t, Signature{"f": 1}, rs.Signature, "symbols of a rejected rule are not kept")

	require.NoError(t, rs.Add(MustRule(NewFun(symH, NewVar("x")), NewVar("x"))))
	assert.Equal(t, Signature{"f": 1, "h": 1}, rs.Signature)
}
