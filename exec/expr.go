package exec

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/cznic/mathutil"
	"github.com/google/uuid"

	"github.com/rdfgraph/engine/sparql"
	"github.com/rdfgraph/engine/term"
	"github.com/rdfgraph/engine/voc/xsd"
)

var randSeedCounter int64

// nextRandSeed hands out a fresh seed to each query's first RAND() call,
// keeping values within one query's evaluation reproducible (same Env,
// same generator) without sharing generator state across concurrent
// queries.
func nextRandSeed() int64 {
	return atomic.AddInt64(&randSeedCounter, 1)
}

// randSource is a deterministic full-cycle generator for RAND(): the
// same FC32 permutation-without-repetition generator cayley's
// graph/memstore tests use to draw reproducible random keys, reused
// here so a prepared query's RAND() values are reproducible across runs
// seeded the same way rather than depending on a process-global source.
type randSource struct {
	gen *mathutil.FC32
}

func newRandSource(seed int) *randSource {
	gen, err := mathutil.NewFC32(0, 1<<30, false)
	if err != nil {
		return &randSource{}
	}
	gen.Seed(int64(seed))
	return &randSource{gen: gen}
}

func (r *randSource) next() float64 {
	if r.gen == nil {
		return 0
	}
	return float64(r.gen.Next()) / float64(1<<30)
}

// evalBool evaluates e against row and reduces the result to SPARQL's
// effective boolean value. An evaluation error (unbound variable, type
// mismatch) is reported up rather than silently treated as false: every
// caller that needs FILTER's "error counts as false" behavior does that
// reduction itself, since LeftJoin's Expr and Group's HAVING both need
// to distinguish "false" from "errored" in their own way.
func evalBool(env *Env, row Binding, e *sparql.Expr) (bool, error) {
	v, err := evalExpr(context.Background(), env, row, e)
	if err != nil {
		return false, err
	}
	return effectiveBoolean(v)
}

func effectiveBoolean(t term.Term) (bool, error) {
	switch t.Kind() {
	case term.KindLiteral:
		lex, _ := t.LiteralLexical()
		dt, hasDt := t.LiteralDatatype()
		s := lex.String()
		if !hasDt || dt.String() == xsd.String {
			return s != "", nil
		}
		switch dt.String() {
		case xsd.Boolean:
			return s == "true" || s == "1", nil
		case xsd.Integer, xsd.Long, xsd.Int:
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return false, ErrType
			}
			return n != 0, nil
		case xsd.Decimal, xsd.Float, xsd.Double:
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return false, ErrType
			}
			return f != 0, nil
		default:
			return s != "", nil
		}
	default:
		return false, ErrType
	}
}

// evalExpr evaluates e against row. It is the single recursive core the
// Filter, Extend, HAVING, and ORDER BY operators all call.
func evalExpr(ctx context.Context, env *Env, row Binding, e *sparql.Expr) (term.Term, error) {
	switch e.Kind {
	case sparql.ExprLiteral:
		return e.Value, nil

	case sparql.ExprVar:
		v, ok := row.Get(e.Var)
		if !ok {
			return term.Term{}, ErrUnbound
		}
		return v, nil

	case sparql.ExprUnary:
		return evalUnary(ctx, env, row, e)

	case sparql.ExprBinary:
		return evalBinary(ctx, env, row, e)

	case sparql.ExprCall:
		return evalCall(ctx, env, row, e)

	case sparql.ExprExists, sparql.ExprNotExists:
		rows, err := compileRows(ctx, env, e.Pattern)
		if err != nil {
			return term.Term{}, err
		}
		exists := false
		for _, r := range rows {
			if row.Compatible(r) {
				exists = true
				break
			}
		}
		if e.Kind == sparql.ExprNotExists {
			exists = !exists
		}
		return boolTerm(env, exists), nil

	default:
		return term.Term{}, ErrUnsupported
	}
}

func boolTerm(env *Env, b bool) term.Term {
	s := "false"
	if b {
		s = "true"
	}
	return term.LiteralTyped(env.Dict.Intern(s), env.Dict.Intern(xsd.Boolean))
}

func evalUnary(ctx context.Context, env *Env, row Binding, e *sparql.Expr) (term.Term, error) {
	x, err := evalExpr(ctx, env, row, e.Operands[0])
	if err != nil {
		return term.Term{}, err
	}
	switch e.Op {
	case "!":
		b, err := effectiveBoolean(x)
		if err != nil {
			return term.Term{}, err
		}
		return boolTerm(env, !b), nil
	case "-":
		n, isInt, f, err := numericValue(x)
		if err != nil {
			return term.Term{}, err
		}
		if isInt {
			return intTerm(env, -n), nil
		}
		return doubleTerm(env, -f), nil
	case "+":
		return x, nil
	default:
		return term.Term{}, ErrUnsupported
	}
}

func evalBinary(ctx context.Context, env *Env, row Binding, e *sparql.Expr) (term.Term, error) {
	if e.Op == "&&" || e.Op == "||" {
		l, lerr := evalBool(env, row, e.Operands[0])
		if e.Op == "&&" {
			if lerr == nil && !l {
				return boolTerm(env, false), nil
			}
		} else {
			if lerr == nil && l {
				return boolTerm(env, true), nil
			}
		}
		r, rerr := evalBool(env, row, e.Operands[1])
		if lerr != nil || rerr != nil {
			return term.Term{}, ErrType
		}
		if e.Op == "&&" {
			return boolTerm(env, l && r), nil
		}
		return boolTerm(env, l || r), nil
	}

	l, err := evalExpr(ctx, env, row, e.Operands[0])
	if err != nil {
		return term.Term{}, err
	}
	r, err := evalExpr(ctx, env, row, e.Operands[1])
	if err != nil {
		return term.Term{}, err
	}

	switch e.Op {
	case "=":
		return boolTerm(env, termEqual(l, r)), nil
	case "!=":
		return boolTerm(env, !termEqual(l, r)), nil
	case "<", "<=", ">", ">=":
		cmp, err := compareTerms(l, r)
		if err != nil {
			return term.Term{}, err
		}
		switch e.Op {
		case "<":
			return boolTerm(env, cmp < 0), nil
		case "<=":
			return boolTerm(env, cmp <= 0), nil
		case ">":
			return boolTerm(env, cmp > 0), nil
		default:
			return boolTerm(env, cmp >= 0), nil
		}
	case "+", "-", "*", "/":
		return arith(env, e.Op, l, r)
	default:
		return term.Term{}, ErrUnsupported
	}
}

func termEqual(a, b term.Term) bool {
	if a.Kind() == term.KindLiteral && b.Kind() == term.KindLiteral {
		if an, aIsInt, af, aerr := numericValue(a); aerr == nil {
			if bn, bIsInt, bf, berr := numericValue(b); berr == nil {
				if aIsInt && bIsInt {
					return an == bn
				}
				return af == bf
			}
		}
	}
	return a.Equal(b)
}

// compareTerms orders two terms for <,<=,>,>=: numeric literals compare
// by value, everything else falls back to N-Triples string order (a
// simplification of full SPARQL term ordering, adequate for ORDER BY
// over a single homogeneous column; ORDER BY and the MIN/MAX aggregates
// are the places compareTerms is reached from outside arithmetic
// comparisons).
func compareTerms(a, b term.Term) (int, error) {
	if an, aIsInt, af, aerr := numericValue(a); aerr == nil {
		if bn, bIsInt, bf, berr := numericValue(b); berr == nil {
			if aIsInt && bIsInt {
				switch {
				case an < bn:
					return -1, nil
				case an > bn:
					return 1, nil
				default:
					return 0, nil
				}
			}
			switch {
			case af < bf:
				return -1, nil
			case af > bf:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	as, bs := a.String(), b.String()
	switch {
	case as < bs:
		return -1, nil
	case as > bs:
		return 1, nil
	default:
		return 0, nil
	}
}

// numericValue parses a literal's numeric value, reporting whether it's
// an exact integer (isInt) and, regardless, its float64 approximation
// (used uniformly for comparisons and the floating arithmetic ops).
// XSD numeric promotion order is integer < decimal < float < double;
// this only needs to distinguish exact-integer from everything-else
// since Go's float64 already spans decimal/float/double without a
// separate representation per datatype.
func numericValue(t term.Term) (n int64, isInt bool, f float64, err error) {
	if t.Kind() != term.KindLiteral {
		return 0, false, 0, ErrType
	}
	lex, _ := t.LiteralLexical()
	s := lex.String()
	dt, hasDt := t.LiteralDatatype()
	if hasDt {
		switch dt.String() {
		case xsd.Integer, xsd.Long, xsd.Int:
			iv, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return 0, false, 0, ErrType
			}
			return iv, true, float64(iv), nil
		case xsd.Decimal, xsd.Float, xsd.Double:
			fv, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, false, 0, ErrType
			}
			return 0, false, fv, nil
		default:
			return 0, false, 0, ErrType
		}
	}
	if iv, err := strconv.ParseInt(s, 10, 64); err == nil {
		return iv, true, float64(iv), nil
	}
	if fv, err := strconv.ParseFloat(s, 64); err == nil {
		return 0, false, fv, nil
	}
	return 0, false, 0, ErrType
}

func intTerm(env *Env, n int64) term.Term {
	return term.LiteralTyped(env.Dict.Intern(strconv.FormatInt(n, 10)), env.Dict.Intern(xsd.Integer))
}

func doubleTerm(env *Env, f float64) term.Term {
	return term.LiteralTyped(env.Dict.Intern(strconv.FormatFloat(f, 'g', -1, 64)), env.Dict.Intern(xsd.Double))
}

func arith(env *Env, op string, l, r term.Term) (term.Term, error) {
	ln, lIsInt, lf, err := numericValue(l)
	if err != nil {
		return term.Term{}, err
	}
	rn, rIsInt, rf, err := numericValue(r)
	if err != nil {
		return term.Term{}, err
	}
	if lIsInt && rIsInt && op != "/" {
		switch op {
		case "+":
			return intTerm(env, ln+rn), nil
		case "-":
			return intTerm(env, ln-rn), nil
		case "*":
			return intTerm(env, ln*rn), nil
		}
	}
	switch op {
	case "+":
		return doubleTerm(env, lf+rf), nil
	case "-":
		return doubleTerm(env, lf-rf), nil
	case "*":
		return doubleTerm(env, lf*rf), nil
	case "/":
		if rf == 0 {
			return term.Term{}, ErrType
		}
		return doubleTerm(env, lf/rf), nil
	default:
		return term.Term{}, ErrUnsupported
	}
}

func evalCall(ctx context.Context, env *Env, row Binding, e *sparql.Expr) (term.Term, error) {
	args := make([]term.Term, len(e.Args))
	switch strings.ToUpper(e.Func) {
	case "BOUND":
		_, ok := row.Get(e.Args[0].Var)
		return boolTerm(env, ok), nil
	case "COALESCE":
		for _, a := range e.Args {
			v, err := evalExpr(ctx, env, row, a)
			if err == nil {
				return v, nil
			}
		}
		return term.Term{}, ErrUnbound
	}
	for i, a := range e.Args {
		v, err := evalExpr(ctx, env, row, a)
		if err != nil {
			return term.Term{}, err
		}
		args[i] = v
	}
	switch strings.ToUpper(e.Func) {
	case "STR":
		lex, _ := args[0].LiteralLexical()
		if iri, ok := args[0].IRIValue(); ok {
			return term.Literal(env.Dict.Intern(iri.String())), nil
		}
		return term.Literal(env.Dict.Intern(lex.String())), nil
	case "LANG":
		lang, _ := args[0].LiteralLang()
		return term.Literal(env.Dict.Intern(lang.String())), nil
	case "DATATYPE":
		dt, ok := args[0].LiteralDatatype()
		if !ok {
			return term.IRI(env.Dict.Intern(xsd.String)), nil
		}
		return term.IRI(env.Dict.Intern(dt.String())), nil
	case "STRLEN":
		lex, _ := args[0].LiteralLexical()
		return intTerm(env, int64(len([]rune(lex.String())))), nil
	case "UCASE":
		lex, _ := args[0].LiteralLexical()
		return term.Literal(env.Dict.Intern(strings.ToUpper(lex.String()))), nil
	case "LCASE":
		lex, _ := args[0].LiteralLexical()
		return term.Literal(env.Dict.Intern(strings.ToLower(lex.String()))), nil
	case "CONTAINS":
		a, _ := args[0].LiteralLexical()
		b, _ := args[1].LiteralLexical()
		return boolTerm(env, strings.Contains(a.String(), b.String())), nil
	case "STRSTARTS":
		a, _ := args[0].LiteralLexical()
		b, _ := args[1].LiteralLexical()
		return boolTerm(env, strings.HasPrefix(a.String(), b.String())), nil
	case "STRENDS":
		a, _ := args[0].LiteralLexical()
		b, _ := args[1].LiteralLexical()
		return boolTerm(env, strings.HasSuffix(a.String(), b.String())), nil
	case "CONCAT":
		var b strings.Builder
		for _, a := range args {
			lex, _ := a.LiteralLexical()
			b.WriteString(lex.String())
		}
		return term.Literal(env.Dict.Intern(b.String())), nil
	case "REGEX":
		subj, _ := args[0].LiteralLexical()
		pat, _ := args[1].LiteralLexical()
		flags := ""
		if len(args) > 2 {
			f, _ := args[2].LiteralLexical()
			flags = f.String()
		}
		re, err := compileRegex(pat.String(), flags)
		if err != nil {
			return term.Term{}, ErrType
		}
		return boolTerm(env, re.MatchString(subj.String())), nil
	case "ABS":
		n, isInt, f, err := numericValue(args[0])
		if err != nil {
			return term.Term{}, err
		}
		if isInt {
			if n < 0 {
				n = -n
			}
			return intTerm(env, n), nil
		}
		if f < 0 {
			f = -f
		}
		return doubleTerm(env, f), nil
	case "UUID":
		return term.IRI(env.Dict.Intern("urn:uuid:" + uuid.NewString())), nil
	case "STRUUID":
		return term.Literal(env.Dict.Intern(uuid.NewString())), nil
	case "MD5":
		return hashTerm(env, args[0], md5.New().Size(), func(b []byte) []byte { s := md5.Sum(b); return s[:] })
	case "SHA1":
		return hashTerm(env, args[0], sha1.Size, func(b []byte) []byte { s := sha1.Sum(b); return s[:] })
	case "SHA256":
		return hashTerm(env, args[0], sha256.Size, func(b []byte) []byte { s := sha256.Sum256(b); return s[:] })
	case "SHA384":
		return hashTerm(env, args[0], sha512.Size384, func(b []byte) []byte { s := sha512.Sum384(b); return s[:] })
	case "SHA512":
		return hashTerm(env, args[0], sha512.Size, func(b []byte) []byte { s := sha512.Sum512(b); return s[:] })
	case "RAND":
		if env.rnd == nil {
			env.rnd = newRandSource(int(nextRandSeed()))
		}
		return doubleTerm(env, env.rnd.next()), nil
	case "IF":
		b, err := effectiveBoolean(args[0])
		if err != nil {
			return term.Term{}, err
		}
		if b {
			return args[1], nil
		}
		return args[2], nil
	default:
		return term.Term{}, fmt.Errorf("%w: %s", ErrUnsupported, e.Func)
	}
}

func hashTerm(env *Env, t term.Term, _ int, sum func([]byte) []byte) (term.Term, error) {
	lex, ok := t.LiteralLexical()
	if !ok {
		return term.Term{}, ErrType
	}
	digest := sum([]byte(lex.String()))
	return term.Literal(env.Dict.Intern(hex.EncodeToString(digest))), nil
}

var regexCache = map[string]*regexp.Regexp{}

func compileRegex(pattern, flags string) (*regexp.Regexp, error) {
	key := flags + "\x00" + pattern
	if re, ok := regexCache[key]; ok {
		return re, nil
	}
	goPattern := pattern
	if strings.Contains(flags, "i") {
		goPattern = "(?i)" + goPattern
	}
	re, err := regexp.Compile(goPattern)
	if err != nil {
		return nil, err
	}
	regexCache[key] = re
	return re, nil
}
