package store

import (
	"encoding/binary"

	"github.com/rdfgraph/engine/term"
)

// Ordering names one of the six lexicographic key layouts a QuadStore can
// maintain over a quad's four dictionary-id positions. This engine fixes
// six orderings and scores among them at query time rather than letting
// deployments declare arbitrary custom ones.
type Ordering byte

const (
	SPOG Ordering = iota
	POGS
	OGSP
	GSPO
	GPSO
	OGPS
	numOrderings
)

func (o Ordering) String() string {
	switch o {
	case SPOG:
		return "SPOG"
	case POGS:
		return "POGS"
	case OGSP:
		return "OGSP"
	case GSPO:
		return "GSPO"
	case GPSO:
		return "GPSO"
	case OGPS:
		return "OGPS"
	default:
		return "unknown"
	}
}

// dirs returns the direction sequence that ordering lays keys out in, most
// significant first.
func (o Ordering) dirs() [4]term.Direction {
	switch o {
	case SPOG:
		return [4]term.Direction{term.Subject, term.Predicate, term.Object, term.Graph}
	case POGS:
		return [4]term.Direction{term.Predicate, term.Object, term.Graph, term.Subject}
	case OGSP:
		return [4]term.Direction{term.Object, term.Graph, term.Subject, term.Predicate}
	case GSPO:
		return [4]term.Direction{term.Graph, term.Subject, term.Predicate, term.Object}
	case GPSO:
		return [4]term.Direction{term.Graph, term.Predicate, term.Subject, term.Object}
	case OGPS:
		return [4]term.Direction{term.Object, term.Graph, term.Predicate, term.Subject}
	default:
		return [4]term.Direction{}
	}
}

// allOrderings is the fixed tie-break priority used by chooseOrdering:
// earlier entries win on equal prefix-length scores.
var allOrderings = [numOrderings]Ordering{SPOG, POGS, OGSP, GSPO, GPSO, OGPS}

// quadIDs resolves a quad's four positions to dictionary ids via d,
// interning each lexical form. Used only on the write path, where every
// position is ground.
func quadIDs(d *term.Dictionary, q term.Quad) [4]uint64 {
	var ids [4]uint64
	for i, dir := range [4]term.Direction{term.Subject, term.Predicate, term.Object, term.Graph} {
		t := q.Get(dir)
		if t.Zero() {
			ids[i] = 0
			continue
		}
		ids[i] = d.Intern(t.String()).ID()
	}
	return ids
}

// encodeKey renders the four position-ids in the order ordering
// prescribes as a 32-byte big-endian key. Big-endian keeps lexicographic
// byte order equal to numeric id order, so range scans over a bound
// prefix are simple byte-slice comparisons.
func encodeKey(ordering Ordering, posIDs [4]uint64) []byte {
	dirs := ordering.dirs()
	key := make([]byte, 32)
	for i, dir := range dirs {
		binary.BigEndian.PutUint64(key[i*8:i*8+8], posIDs[dirIndex(dir)])
	}
	return key
}

func dirIndex(d term.Direction) int {
	switch d {
	case term.Subject:
		return 0
	case term.Predicate:
		return 1
	case term.Object:
		return 2
	case term.Graph:
		return 3
	default:
		return 0
	}
}

// decodeIDs extracts the four ids from a key encoded under ordering, back
// into canonical [Subject,Predicate,Object,Graph] order.
func decodeIDs(ordering Ordering, key []byte) [4]uint64 {
	dirs := ordering.dirs()
	var out [4]uint64
	for i, dir := range dirs {
		out[dirIndex(dir)] = binary.BigEndian.Uint64(key[i*8 : i*8+8])
	}
	return out
}

// boundMask reports which of {S,P,O,G} are non-wildcard in a pattern
// quad, as a 4-bit mask in [Subject,Predicate,Object,Graph] order.
func boundMask(s, p, o, g term.Term) [4]bool {
	return [4]bool{!s.Zero(), !p.Zero(), !o.Zero(), !g.Zero()}
}

// chooseOrdering scores every enabled ordering by how many of its
// leading positions are bound in the pattern and returns the best,
// tie-breaking by allOrderings priority.
func chooseOrdering(enabled map[Ordering]bool, bound [4]bool) Ordering {
	best := Ordering(255)
	bestScore := -1
	for _, ord := range allOrderings {
		if enabled != nil && !enabled[ord] {
			continue
		}
		score := prefixScore(ord, bound)
		if score > bestScore {
			bestScore = score
			best = ord
		}
	}
	if best == Ordering(255) {
		return SPOG
	}
	return best
}

// prefixScore counts how many leading positions of ordering are bound in
// the pattern before the first unbound position breaks the run.
func prefixScore(ordering Ordering, bound [4]bool) int {
	dirs := ordering.dirs()
	n := 0
	for _, dir := range dirs {
		if !bound[dirIndex(dir)] {
			break
		}
		n++
	}
	return n
}
