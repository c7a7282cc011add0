package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/anagopos/pkg/engine"
	"github.com/gitrdm/anagopos/pkg/trs"
)

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGraphLambda(t *testing.T) {
	out, _, err := run(t, "graph", `(\x.x) y`)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "root 0*"), lines[0])
	assert.True(t, strings.HasSuffix(lines[0], `(\x.x) y`), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0 -> 1*"), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], " y"), lines[1])
	assert.Equal(t, "2 vertices, 1 edges, graph exhausted", lines[2])
}

func TestGraphSharedReduct(t *testing.T) {
	out, _, err := run(t, "graph", "--steps", "20", `(\x.x x) ((\y.y) z)`)
	require.NoError(t, err)
	assert.Contains(t, out, "3 -> 5 ")
	assert.NotContains(t, out, "3 -> 5*")
	assert.Contains(t, out, "6 vertices, 7 edges, graph exhausted")
}

func TestGraphStepLimit(t *testing.T) {
	out, _, err := run(t, "graph", "--steps", "3", `(\x.x x) (\x.x x)`)
	require.NoError(t, err)
	// Ω reduces only to itself, so the graph is exhausted after the root.
	assert.Contains(t, out, "1 vertices, 0 edges, graph exhausted")

	out, _, err = run(t, "graph", "--steps", "2", `(\x.x x x) (\x.x x x)`)
	require.NoError(t, err)
	assert.Contains(t, out, "2 vertices, 1 edges, more reductions available")
}

func TestGraphRewriteSystem(t *testing.T) {
	out, _, err := run(t, "graph", "--mode", "trs", "--rules", "testdata/double.xml", "f(a)")
	require.NoError(t, err)
	assert.Contains(t, out, "g(a, a)")
	assert.Contains(t, out, "3 vertices, 2 edges, graph exhausted")
}

func TestGraphBack(t *testing.T) {
	out, _, err := run(t, "graph", "--back", "1", "--mode", "trs", "--rules", "testdata/double.xml", "f(a)")
	require.NoError(t, err)
	assert.Contains(t, out, "undo 1 -> 2*")
	assert.Contains(t, out, "2 vertices, 1 edges, graph exhausted")
}

func TestGraphDOT(t *testing.T) {
	out, _, err := run(t, "graph", "--format", "dot", `(\x.x) y`)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph reduction {\n"))
	assert.Contains(t, out, "\t0 -> 1;\n")
	assert.Contains(t, out, `1 [label="y"];`)
}

func TestGraphJSON(t *testing.T) {
	out, _, err := run(t, "graph", "--format", "json", "--mode", "trs", "--rules", "testdata/double.xml", "f(a)")
	require.NoError(t, err)

	var g jsonGraph
	require.NoError(t, json.Unmarshal([]byte(out), &g))
	assert.Equal(t, "trs", g.Mode)
	assert.Equal(t, "f(a)", g.Root)
	assert.True(t, g.Exhausted)
	assert.Equal(t, 3, g.Vertices)
	require.Len(t, g.Records, 3)
	assert.Equal(t, jsonRecord{ID: 0, ParentID: -1, IsNew: true, Term: "f(a)", Size: 2}, g.Records[0])
	assert.Equal(t, jsonRecord{ID: 2, ParentID: 1, IsNew: true, Term: "a", Size: 1}, g.Records[2])
	assert.NotEmpty(t, g.RunID)
}

func TestGraphRandomTerm(t *testing.T) {
	a, _, err := run(t, "graph", "--seed", "7", "--steps", "5", "--format", "json")
	require.NoError(t, err)
	b, _, err := run(t, "graph", "--seed", "7", "--steps", "5", "--format", "json")
	require.NoError(t, err)

	var ga, gb jsonGraph
	require.NoError(t, json.Unmarshal([]byte(a), &ga))
	require.NoError(t, json.Unmarshal([]byte(b), &gb))
	assert.Equal(t, ga.Root, gb.Root, "a fixed seed picks the same term")
	assert.Equal(t, ga.Records, gb.Records)
}

func TestGraphErrors(t *testing.T) {
	_, _, err := run(t, "graph", "--mode", "trs", "f(a)")
	assert.ErrorIs(t, err, engine.ErrNoRuleSet)

	_, _, err = run(t, "graph", "--format", "svg", "x")
	assert.ErrorContains(t, err, `unknown format "svg"`)

	_, _, err = run(t, "graph", "--mode", "combinators", "x")
	assert.ErrorContains(t, err, `mode must be lambda or trs, got "combinators"`)

	_, _, err = run(t, "graph", `\x.`)
	assert.Error(t, err)

	_, _, err = run(t, "graph", "--mode", "trs", "--rules", "testdata/conditional.xml", "f(a)")
	assert.ErrorIs(t, err, trs.ErrUnsupported)
}

func TestRandom(t *testing.T) {
	a, _, err := run(t, "random", "--seed", "42", "-n", "3")
	require.NoError(t, err)
	b, _, err := run(t, "random", "--seed", "42", "-n", "3")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, strings.Split(strings.TrimSpace(a), "\n"), 3)

	out, _, err := run(t, "random", "--mode", "trs", "--rules", "testdata/double.xml", "--seed", "3")
	require.NoError(t, err)
	e, err := engine.New(engine.ModeTRS, engine.WithRuleSet(mustLoad(t, "testdata/double.xml")))
	require.NoError(t, err)
	_, err = e.Parse(strings.TrimSpace(out))
	assert.NoError(t, err, "random terms parse over the rule set signature")

	_, _, err = run(t, "random", "-n", "0")
	assert.Error(t, err)
}

func mustLoad(t *testing.T, path string) *trs.RuleSet {
	t.Helper()
	rs, err := trs.LoadRuleSet(path)
	require.NoError(t, err)
	return rs
}

func TestRules(t *testing.T) {
	out, _, err := run(t, "rules", "testdata/double.xml")
	require.NoError(t, err)
	assert.Equal(t, "signature: {a/0, f/1, g/2}\n0: f(x) -> g(x, x)\n1: g(a, y) -> y\n", out)

	_, _, err = run(t, "rules", "testdata/conditional.xml")
	assert.ErrorIs(t, err, trs.ErrUnsupported)
	assert.ErrorContains(t, err, "conditional")

	_, _, err = run(t, "rules", "testdata/missing.xml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBatch(t *testing.T) {
	out, stderr, err := run(t, "batch", "--workers", "2", "testdata/lambda.terms")
	require.NoError(t, err)
	assert.Contains(t, out, "TERM")
	assert.Contains(t, out, `(\x.x x) ((\y.y) z)`)
	assert.Contains(t, out, "3 terms, 9 nodes, 8 edges, 0 failed")
	assert.Contains(t, stderr, "batch finished")
}

func TestBatchFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms")
	require.NoError(t, os.WriteFile(path, []byte("x\n(\\x.\n"), 0o600))

	out, _, err := run(t, "batch", path)
	assert.ErrorContains(t, err, "1 of 2 terms failed")
	assert.Contains(t, out, "2 terms, 1 nodes, 0 edges, 1 failed")

	empty := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing\n\n"), 0o600))
	_, _, err = run(t, "batch", empty)
	assert.ErrorContains(t, err, "no terms")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anagopos.yaml")
	body := "mode: trs\nrules: testdata/double.xml\nsteps: 2\nlog:\n  level: debug\n  format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	out, stderr, err := run(t, "graph", "--config", path, "f(a)")
	require.NoError(t, err)
	assert.Contains(t, out, "2 vertices, 1 edges, more reductions available")
	assert.Contains(t, stderr, `"msg":"rule set loaded"`)

	// Flags win over the file.
	out, _, err = run(t, "graph", "--config", path, "--steps", "10", "f(a)")
	require.NoError(t, err)
	assert.Contains(t, out, "graph exhausted")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("colour: red\n"), 0o600))
	_, _, err = run(t, "graph", "--config", bad, "x")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "anagopos "+engine.Version))

	out, _, err = run(t, "version", "--json")
	require.NoError(t, err)
	var info engine.VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, engine.Version, info.Version)
}

func TestRecordLine(t *testing.T) {
	assert.Equal(t, "root 0*      f(a)", recordLine(engine.Record{Label: "f(a)", ParentID: -1, IsNew: true}, false))
	assert.Equal(t, "3 -> 5       z z", recordLine(engine.Record{Label: "z z", ID: 5, ParentID: 3}, false))
	assert.False(t, colorEnabled(&bytes.Buffer{}, false))
}
