package reason

// predicateKey names a rule head's predicate well enough to decide which
// other rules "define" it — by lexical form, since rule heads are always
// interned IRI terms in practice (a variable predicate in a rule head
// would fail instantiate's resolve check at apply time regardless).
func predicateKey(a Atom) (string, bool) {
	r, ok := a.Predicate.IRIValue()
	if !ok {
		return "", false
	}
	return r.String(), true
}

// stratify computes each rule's stratum by a Bellman-Ford-style
// relaxation over the rule dependency graph: a rule depends on every
// other rule that defines a predicate appearing in one of its premises
// (same stratum or lower) or negated premises (strictly lower stratum).
// Rules with negation are grouped into strata; cycles across strata are
// rejected at load time.
//
// Returns rules grouped by ascending stratum, ready for
// Engine.Materialize to fix-point one stratum at a time.
func stratify(rules []*Rule) ([][]*Rule, error) {
	definedBy := map[string][]int{}
	for idx, r := range rules {
		if key, ok := predicateKey(r.Head); ok {
			definedBy[key] = append(definedBy[key], idx)
		}
	}

	stratum := make([]int, len(rules))
	changed := true
	rounds := 0
	maxRounds := len(rules) + 1
	for changed {
		changed = false
		rounds++
		if rounds > maxRounds {
			return nil, ErrCycle
		}
		for idx, r := range rules {
			want := stratum[idx]
			for _, prem := range r.Premises {
				if key, ok := predicateKey(prem); ok {
					for _, definer := range definedBy[key] {
						if definer == idx {
							continue
						}
						if stratum[definer] > want {
							want = stratum[definer]
						}
					}
				}
			}
			for _, neg := range r.Negated {
				if key, ok := predicateKey(neg); ok {
					for _, definer := range definedBy[key] {
						need := stratum[definer] + 1
						if definer == idx && need > stratum[idx] {
							return nil, ErrCycle
						}
						if need > want {
							want = need
						}
					}
				}
			}
			if want != stratum[idx] {
				stratum[idx] = want
				changed = true
			}
		}
	}

	maxStratum := 0
	for _, s := range stratum {
		if s > maxStratum {
			maxStratum = s
		}
	}
	out := make([][]*Rule, maxStratum+1)
	for idx, r := range rules {
		out[stratum[idx]] = append(out[stratum[idx]], r)
	}
	return out, nil
}
