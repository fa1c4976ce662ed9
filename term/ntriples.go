package term

import "strings"

// String renders t in canonical N-Triples term syntax, used by ingest
// round-trip tests and as the basis for deterministic hashing.
func (t Term) String() string {
	switch t.kind {
	case KindIRI:
		return "<" + t.name.String() + ">"
	case KindVariable:
		return "?" + t.name.String()
	case KindBlank:
		return "_:b" + uitoa(t.blank)
	case KindLiteral:
		var b strings.Builder
		b.WriteByte('"')
		escapeInto(&b, t.lex.String())
		b.WriteByte('"')
		if t.lang != nil {
			b.WriteByte('@')
			b.WriteString(t.lang.String())
		} else if t.dtype != nil {
			b.WriteString("^^<")
			b.WriteString(t.dtype.String())
			b.WriteByte('>')
		}
		return b.String()
	case KindQuoted:
		if t.quoted == nil {
			return "<<>>"
		}
		return "<<" + t.quoted.String() + ">>"
	default:
		return ""
	}
}

// String renders the triple as "subject predicate object" (no trailing
// dot), matching the N-Triples statement body.
func (t Triple) String() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String()
}

// NQuad renders the quad in N-Quads statement form, including the
// trailing ".".
func (q Quad) NQuad() string {
	if q.InDefaultGraph() {
		return q.Subject.String() + " " + q.Predicate.String() + " " + q.Object.String() + " ."
	}
	return q.Subject.String() + " " + q.Predicate.String() + " " + q.Object.String() + " " + q.Graph.String() + " ."
}

func escapeInto(b *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
}

func uitoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
