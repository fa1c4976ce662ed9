package rdfgraph

import (
	"context"
	"fmt"

	"github.com/rdfgraph/engine/exec"
	"github.com/rdfgraph/engine/sparql"
	"github.com/rdfgraph/engine/term"
)

// PreparedQuery is a parsed, optimized query bound to the Store it was
// prepared against. Execute may be called repeatedly, and sees whatever
// the Store holds at call time — nothing about preparing a query snapshots
// the data; only Scan's per-call read is a snapshot.
type PreparedQuery struct {
	query *sparql.Query
	store *Store
}

// Form reports the query's SPARQL form (SELECT/ASK/CONSTRUCT).
func (p *PreparedQuery) Form() sparql.QueryForm { return p.query.Form }

// Execute compiles the prepared query's algebra against the Store's
// current state and returns a pull-based binding iterator. params is the
// embedded-API equivalent of a parameterized query's initial-bindings
// map: the entries become one implicit equality filter (sparql.Filter
// over a synthetic "var = value" conjunction) wrapped around the whole
// algebra, so the plan itself is compiled without them and the filter
// drops the rows whose named variables do not equal the given terms.
func (p *PreparedQuery) Execute(ctx context.Context, params map[string]term.Term) (exec.BindingIterator, error) {
	where := p.query.Where
	if len(params) > 0 {
		where = &sparql.Filter{Input: where, Expr: paramsExpr(params)}
	}
	env := &exec.Env{Store: p.store.store, Dict: p.store.dict}
	it, err := exec.Compile(ctx, env, where)
	if err != nil {
		return nil, fmt.Errorf("rdfgraph: compile query: %w", err)
	}
	return it, nil
}

// paramsExpr builds the conjunction (?k1 = v1 && ?k2 = v2 && ...) that
// Execute wraps a query's algebra in to apply params.
func paramsExpr(params map[string]term.Term) *sparql.Expr {
	var conj *sparql.Expr
	for name, val := range params {
		eq := sparql.Binary("=", sparql.VarRef(name), sparql.Lit(val))
		if conj == nil {
			conj = eq
			continue
		}
		conj = sparql.Binary("&&", conj, eq)
	}
	return conj
}
