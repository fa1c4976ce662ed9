package term

// Triple is (subject, predicate, object). Subject is restricted to
// IRI/Blank/QuotedTriple; predicate is restricted to IRI; object is
// unrestricted.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// NewTriple validates the structural constraints on subject and predicate
// and returns ErrInvalidStructure on violation.
func NewTriple(s, p, o Term) (Triple, error) {
	if !(s.IsIRI() || s.IsBlank() || s.IsQuotedTriple()) {
		return Triple{}, ErrInvalidStructure
	}
	if !p.IsIRI() {
		return Triple{}, ErrInvalidStructure
	}
	return Triple{Subject: s, Predicate: p, Object: o}, nil
}

// NewTripleUnchecked builds a Triple without validation, for post-parse hot
// paths where the caller has already established the invariants.
func NewTripleUnchecked(s, p, o Term) Triple {
	return Triple{Subject: s, Predicate: p, Object: o}
}

// Matches reports whether the triple satisfies a pattern where a zero Term
// in any slot is a wildcard.
func (t Triple) Matches(s, p, o Term) bool {
	return MatchValue(s, t.Subject) && MatchValue(p, t.Predicate) && MatchValue(o, t.Object)
}

// Equal reports recursive structural equality, walking into any nested
// quoted triples.
func (t Triple) Equal(o Triple) bool {
	return t.Subject.Equal(o.Subject) && t.Predicate.Equal(o.Predicate) && t.Object.Equal(o.Object)
}
