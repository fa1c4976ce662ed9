package parse

import (
	"io"
	"strings"

	"github.com/rdfgraph/engine/term"
)

// Format identifies a concrete RDF document syntax.
type Format int

const (
	Turtle Format = iota
	NTriples
	NQuads
)

func (f Format) String() string {
	switch f {
	case Turtle:
		return "turtle"
	case NTriples:
		return "ntriples"
	case NQuads:
		return "nquads"
	default:
		return "unknown"
	}
}

// FormatForExtension maps a file extension (with or without leading dot)
// to a Format, covering the three formats this engine supports.
func FormatForExtension(ext string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "ttl":
		return Turtle, true
	case "nt":
		return NTriples, true
	case "nq":
		return NQuads, true
	default:
		return 0, false
	}
}

// Decoder reads successive quads from a document. Decode returns io.EOF
// when the document is exhausted.
type Decoder interface {
	// Decode reads and interns the next quad, resolving terms against
	// dict and scoping blank-node labels to this Decoder's Session.
	Decode() (term.Quad, error)
}

// NewDecoder builds a Decoder for format, reading from r and interning
// terms into dict. Each call creates a fresh Session, so blank-node
// labels are scoped per-Decoder.
func NewDecoder(format Format, r io.Reader, dict *term.Dictionary) Decoder {
	session := NewSession()
	switch format {
	case Turtle:
		return newTurtleDecoder(r, dict, session)
	case NQuads:
		return newLineDecoder(r, dict, session, true)
	default:
		return newLineDecoder(r, dict, session, false)
	}
}
