package term

import "errors"

// ErrInvalidStructure is returned by NewTriple when subject/predicate kinds
// violate the RDF structural constraints.
var ErrInvalidStructure = errors.New("term: invalid triple structure")

// Kind identifies which variant of the RDF term tagged union a Term holds.
type Kind uint8

const (
	KindIRI Kind = iota
	KindLiteral
	KindBlank
	KindVariable
	KindQuoted
)

func (k Kind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindLiteral:
		return "literal"
	case KindBlank:
		return "blank"
	case KindVariable:
		return "variable"
	case KindQuoted:
		return "quoted-triple"
	default:
		return "unknown"
	}
}

// Term is a tagged union over {IRI, Literal, Blank, Variable, QuotedTriple}.
// It is a small value type (no heap allocation for IRI/Blank/Variable
// terms) that borrows interned strings from a Dictionary rather than
// copying them.
type Term struct {
	kind Kind

	name *Ref // IRI lexical, or Variable name

	lex   *Ref // Literal lexical form
	dtype *Ref // Literal datatype IRI, optional
	lang  *Ref // Literal language tag, optional

	blank uint64 // Blank node identifier

	quoted *Triple // QuotedTriple payload, owning pointer
}

// IRI constructs an IRI term from an interned reference. r must be
// non-nil and non-empty.
func IRI(r *Ref) Term { return Term{kind: KindIRI, name: r} }

// Blank constructs a blank node term with the given locally-unique id.
func Blank(id uint64) Term { return Term{kind: KindBlank, blank: id} }

// Literal constructs a plain literal (implicit xsd:string datatype).
func Literal(lex *Ref) Term { return Term{kind: KindLiteral, lex: lex} }

// LiteralTyped constructs a literal with an explicit datatype IRI.
func LiteralTyped(lex, dtype *Ref) Term {
	return Term{kind: KindLiteral, lex: lex, dtype: dtype}
}

// LiteralLang constructs a language-tagged literal.
func LiteralLang(lex, lang *Ref) Term {
	return Term{kind: KindLiteral, lex: lex, lang: lang}
}

// Variable constructs a variable term. Variables appear only in patterns
// and algebra, never in stored quads.
func Variable(r *Ref) Term { return Term{kind: KindVariable, name: r} }

// Quoted constructs an RDF-star quoted-triple term wrapping t.
func Quoted(t *Triple) Term { return Term{kind: KindQuoted, quoted: t} }

// Zero reports whether t is the unset zero value (no term at all, as
// opposed to any concrete term variant).
func (t Term) Zero() bool { return t == (Term{}) }

func (t Term) Kind() Kind { return t.kind }

func (t Term) IsIRI() bool      { return t.kind == KindIRI }
func (t Term) IsLiteral() bool  { return t.kind == KindLiteral }
func (t Term) IsBlank() bool    { return t.kind == KindBlank }
func (t Term) IsVariable() bool { return t.kind == KindVariable }
func (t Term) IsQuotedTriple() bool { return t.kind == KindQuoted }

// IRIValue returns the IRI's interned lexical ref, or (nil, false) if t is
// not an IRI.
func (t Term) IRIValue() (*Ref, bool) {
	if t.kind != KindIRI {
		return nil, false
	}
	return t.name, true
}

// VariableName returns the variable's interned name, or (nil, false) if t
// is not a variable.
func (t Term) VariableName() (*Ref, bool) {
	if t.kind != KindVariable {
		return nil, false
	}
	return t.name, true
}

// BlankID returns the blank node's local id, or (0, false) if t is not a
// blank node.
func (t Term) BlankID() (uint64, bool) {
	if t.kind != KindBlank {
		return 0, false
	}
	return t.blank, true
}

// LiteralLexical returns the literal's lexical form, or (nil, false) if t
// is not a literal.
func (t Term) LiteralLexical() (*Ref, bool) {
	if t.kind != KindLiteral {
		return nil, false
	}
	return t.lex, true
}

// LiteralDatatype returns the literal's datatype IRI, if any. The second
// result is false both when t is not a literal and when it has no
// explicit datatype (implying xsd:string).
func (t Term) LiteralDatatype() (*Ref, bool) {
	if t.kind != KindLiteral || t.dtype == nil {
		return nil, false
	}
	return t.dtype, true
}

// LiteralLang returns the literal's language tag, if any.
func (t Term) LiteralLang() (*Ref, bool) {
	if t.kind != KindLiteral || t.lang == nil {
		return nil, false
	}
	return t.lang, true
}

// QuotedTripleValue returns the nested triple, or (nil, false) if t is not
// a quoted triple.
func (t Term) QuotedTripleValue() (*Triple, bool) {
	if t.kind != KindQuoted {
		return nil, false
	}
	return t.quoted, true
}

// Equal reports structural equality. IRI/Variable/Literal comparisons
// reduce to pointer equality on their interned refs when both terms were
// produced by the same Dictionary (the common, fast case); a quoted
// triple compares by recursive structural equality of its nested triple,
// never by identity of the enclosing wrapper.
func (t Term) Equal(o Term) bool {
	if t.kind != o.kind {
		return false
	}
	switch t.kind {
	case KindIRI, KindVariable:
		return refEqual(t.name, o.name)
	case KindBlank:
		return t.blank == o.blank
	case KindLiteral:
		return refEqual(t.lex, o.lex) && refEqual(t.dtype, o.dtype) && refEqual(t.lang, o.lang)
	case KindQuoted:
		if t.quoted == nil || o.quoted == nil {
			return t.quoted == o.quoted
		}
		return t.quoted.Equal(*o.quoted)
	default:
		return true // both of the same unknown kind
	}
}

func refEqual(a, b *Ref) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.s == b.s
}

// MatchValue reports whether t matches a pattern slot: an empty/zero
// pattern term is a wildcard.
func MatchValue(pattern, value Term) bool {
	if pattern.Zero() {
		return true
	}
	return pattern.Equal(value)
}
