package parse

// Session scopes blank-node labels to a single document: two occurrences
// of `_:x` within one Decoder's lifetime resolve to the same term.Blank
// id. Each Session counts ids from 1 on its own, so two Decoders hand out
// the same ids (the first label each one sees gets 1). A counter-keyed
// map rules out any possibility of two distinct labels within one
// Session colliding onto the same blank id.
type Session struct {
	labels map[string]uint64
	next   uint64
}

// NewSession creates an empty blank-node scope.
func NewSession() *Session {
	return &Session{labels: make(map[string]uint64)}
}

// Blank returns the stable id for label, allocating one on first sight.
func (s *Session) Blank(label string) uint64 {
	if id, ok := s.labels[label]; ok {
		return id
	}
	s.next++
	s.labels[label] = s.next
	return s.next
}

// FreshBlank allocates a new, unlabeled blank node id (used for Turtle's
// anonymous `[...]` and `()` collection nodes, which never reuse a
// label).
func (s *Session) FreshBlank() uint64 {
	s.next++
	return s.next
}
