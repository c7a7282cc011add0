// Command example walks through the main packages: λ-terms, rewrite
// systems, breadth-first reduction graphs and concurrent exploration.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/gitrdm/anagopos/internal/parallel"
	"github.com/gitrdm/anagopos/pkg/engine"
	"github.com/gitrdm/anagopos/pkg/lambda"
	"github.com/gitrdm/anagopos/pkg/reduction"
	"github.com/gitrdm/anagopos/pkg/trs"
)

const additionRules = `<?xml version="1.0"?>
<problem type="termination">
  <trs>
    <rules>
      <rule>
        <lhs><funapp><name>add</name><arg><funapp><name>0</name></funapp></arg><arg><var>y</var></arg></funapp></lhs>
        <rhs><var>y</var></rhs>
      </rule>
      <rule>
        <lhs><funapp><name>add</name><arg><funapp><name>s</name><arg><var>x</var></arg></funapp></arg><arg><var>y</var></arg></funapp></lhs>
        <rhs><funapp><name>s</name><arg><funapp><name>add</name><arg><var>x</var></arg><arg><var>y</var></arg></funapp></arg></funapp></rhs>
      </rule>
    </rules>
    <signature>
      <funcsym><name>0</name><arity>0</arity></funcsym>
      <funcsym><name>s</name><arity>1</arity></funcsym>
      <funcsym><name>add</name><arity>2</arity></funcsym>
    </signature>
  </trs>
</problem>`

func main() {
	fmt.Println("=== anagopos Examples ===")
	fmt.Println()

	lambdaTerms()
	rewriteSystem()
	reductionGraph()
	stepBack()
	parallelExploration()
}

// lambdaTerms shows parsing, printing and normalizing λ-terms.
func lambdaTerms() {
	fmt.Println("1. Lambda Terms:")

	src := `(\f x.f (f x)) (\y.y) z`
	t, free, err := lambda.ParseFree(src, nil)
	if err != nil {
		panic(err)
	}
	fmt.Printf("   parsed:    %s\n", lambda.Format(t, free))
	fmt.Printf("   de Bruijn: %s\n", t)
	fmt.Printf("   redexes:   %d\n", len(lambda.RedexPositions(t)))

	nf, ok := lambda.Normalize(t, 100)
	fmt.Printf("   normal form: %s (reached: %v)\n", lambda.Format(nf, free), ok)
	fmt.Println()
}

// rewriteSystem loads a rule set and normalizes a first-order term.
func rewriteSystem() {
	fmt.Println("2. Term Rewriting:")

	rs, err := trs.ParseRuleSet(strings.NewReader(additionRules))
	if err != nil {
		panic(err)
	}
	fmt.Printf("   signature: %s\n", rs.Signature)
	for _, r := range rs.Rules {
		fmt.Printf("   rule: %s\n", r)
	}

	t := trs.MustParseTerm("add(s(s(0)), s(0))", rs.Signature)
	nf, ok := trs.Normalize(t, rs.Rules, 100)
	fmt.Printf("   %s => %s (reached: %v)\n", t, nf, ok)
	fmt.Println()
}

// reductionGraph explores a term whose redexes overlap.
func reductionGraph() {
	fmt.Println("3. Reduction Graph:")

	root := lambda.MustParse(`(\x.x x) ((\y.y) z)`)
	it := reduction.New(root, lambda.Reducts)
	records, more := it.Take(50)
	for _, r := range records {
		fmt.Printf("   %-8s %s\n", r.String(), r.Term)
	}
	s := it.Stats()
	fmt.Printf("   %d vertices, %d edges, exhausted: %v\n", s.Nodes, s.Edges, !more)
	fmt.Println()
}

// stepBack uses an explorer to retract and replay records.
func stepBack() {
	fmt.Println("4. Stepping Back and Forth:")

	rs, err := trs.ParseRuleSet(strings.NewReader(additionRules))
	if err != nil {
		panic(err)
	}
	e, err := engine.New(engine.ModeTRS, engine.WithRuleSet(rs))
	if err != nil {
		panic(err)
	}
	root, err := e.Parse("add(add(0, 0), s(0))")
	if err != nil {
		panic(err)
	}
	x, err := e.NewExplorer(root)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	records, _, _ := x.Take(ctx, 3)
	v, ed := x.Size()
	fmt.Printf("   forward %d records: %d vertices, %d edges\n", len(records), v, ed)

	back := x.Back(2)
	v, ed = x.Size()
	fmt.Printf("   back %d records:    %d vertices, %d edges\n", len(back), v, ed)

	records, more, _ := x.Take(ctx, 10)
	v, ed = x.Size()
	fmt.Printf("   forward %d records: %d vertices, %d edges, exhausted: %v\n", len(records), v, ed, !more)
	fmt.Println()
}

// parallelExploration explores random terms sequentially and on a pool.
func parallelExploration() {
	fmt.Println("5. Parallel Exploration:")

	const numTerms = 16
	const steps = 500

	e, err := engine.New(engine.ModeLambda, engine.WithRand(rand.New(rand.NewPCG(1, 2))), engine.WithMaxNodes(200))
	if err != nil {
		panic(err)
	}
	terms := make([]string, numTerms)
	for i := range terms {
		if terms[i], err = e.RandomTerm(); err != nil {
			panic(err)
		}
	}

	explore := func(ctx context.Context, src string) int {
		t, err := e.Parse(src)
		if err != nil {
			return 0
		}
		x, err := e.NewExplorer(t)
		if err != nil {
			return 0
		}
		records, _, _ := x.Take(ctx, steps)
		return len(records)
	}

	ctx := context.Background()
	start := time.Now()
	total := 0
	for _, src := range terms {
		total += explore(ctx, src)
	}
	sequentialTime := time.Since(start)
	fmt.Printf("   Sequential: %d records in %v\n", total, sequentialTime)

	pool := parallel.NewWorkerPool(4)
	defer pool.Shutdown()

	start = time.Now()
	counts, err := parallel.Map(ctx, pool, terms, explore)
	if err != nil {
		panic(err)
	}
	parallelTime := time.Since(start)
	total = 0
	for _, n := range counts {
		total += n
	}
	fmt.Printf("   Parallel:   %d records in %v (%d workers)\n", total, parallelTime, pool.Workers())

	if parallelTime < sequentialTime {
		fmt.Printf("   Speedup: %.2fx\n", float64(sequentialTime)/float64(parallelTime))
	} else {
		fmt.Printf("   No speedup (overhead dominated)\n")
	}
	fmt.Println()
}
