package reason

import (
	"github.com/rdfgraph/engine/term"
	"github.com/rdfgraph/engine/voc/owl"
	"github.com/rdfgraph/engine/voc/rdf"
	"github.com/rdfgraph/engine/voc/rdfs"
)

// Rule is one forward-chaining entailment rule: a conjunction of
// positive Premises (and, for rules the stratifier needs to order
// relative to a negation, Negated atoms whose absence is also required)
// entails Head. Every variable in Head must also appear in a positive
// Premise (instantiate rejects a rule that violates this at apply time).
type Rule struct {
	Name     string
	Premises []Atom
	Negated  []Atom
	Head     Atom
}

func v(dict *term.Dictionary, name string) term.Term {
	return term.Variable(dict.Intern(name))
}

func i(dict *term.Dictionary, iri string) term.Term {
	return term.IRI(dict.Intern(iri))
}

// DefaultRDFSRules returns all 13 standard RDFS entailment rules,
// interned against dict.
func DefaultRDFSRules(dict *term.Dictionary) []*Rule {
	p, x, y, c, d, e := v(dict, "p"), v(dict, "x"), v(dict, "y"), v(dict, "c"), v(dict, "d"), v(dict, "e")
	rdfType := i(dict, rdf.Type)
	rdfProperty := i(dict, rdf.Property)
	rdfsResource := i(dict, rdfs.Resource)
	rdfsClass := i(dict, rdfs.Class)
	rdfsDatatype := i(dict, rdfs.Datatype)
	rdfsLiteral := i(dict, rdfs.Literal)
	rdfsMember := i(dict, rdfs.Member)
	rdfsContainerMembership := i(dict, rdfs.ContainerMembershipProperty)
	subClassOf := i(dict, rdfs.SubClassOf)
	subPropertyOf := i(dict, rdfs.SubPropertyOf)
	domain := i(dict, rdfs.Domain)
	rng := i(dict, rdfs.Range)

	return []*Rule{
		{
			Name:     "rdfs1-property-typing",
			Premises: []Atom{{x, p, y}},
			Head:     Atom{p, rdfType, rdfProperty},
		},
		{
			Name:     "rdfs2-domain",
			Premises: []Atom{{p, domain, c}, {x, p, y}},
			Head:     Atom{x, rdfType, c},
		},
		{
			Name:     "rdfs3-range",
			Premises: []Atom{{p, rng, c}, {x, p, y}},
			Head:     Atom{y, rdfType, c},
		},
		{
			Name:     "rdfs4a-subject-resource",
			Premises: []Atom{{x, p, y}},
			Head:     Atom{x, rdfType, rdfsResource},
		},
		{
			Name:     "rdfs4b-object-resource",
			Premises: []Atom{{x, p, y}},
			Head:     Atom{y, rdfType, rdfsResource},
		},
		{
			Name:     "rdfs5-subproperty-transitive",
			Premises: []Atom{{p, subPropertyOf, d}, {d, subPropertyOf, e}},
			Head:     Atom{p, subPropertyOf, e},
		},
		{
			Name:     "rdfs6-property-subproperty-reflexive",
			Premises: []Atom{{p, rdfType, rdfProperty}},
			Head:     Atom{p, subPropertyOf, p},
		},
		{
			Name:     "rdfs7-subproperty-inheritance",
			Premises: []Atom{{p, subPropertyOf, c}, {x, p, y}},
			Head:     Atom{x, c, y},
		},
		{
			Name:     "rdfs8-class-subclass-resource",
			Premises: []Atom{{c, rdfType, rdfsClass}},
			Head:     Atom{c, subClassOf, rdfsResource},
		},
		{
			Name:     "rdfs9-subclass-instance",
			Premises: []Atom{{c, subClassOf, d}, {x, rdfType, c}},
			Head:     Atom{x, rdfType, d},
		},
		{
			Name:     "rdfs10-class-subclass-reflexive",
			Premises: []Atom{{c, rdfType, rdfsClass}},
			Head:     Atom{c, subClassOf, c},
		},
		{
			Name:     "rdfs11-subclass-transitive",
			Premises: []Atom{{c, subClassOf, d}, {d, subClassOf, e}},
			Head:     Atom{c, subClassOf, e},
		},
		{
			Name:     "rdfs12-container-membership",
			Premises: []Atom{{p, rdfType, rdfsContainerMembership}},
			Head:     Atom{p, subPropertyOf, rdfsMember},
		},
		{
			Name:     "rdfs13-datatype-subclass-literal",
			Premises: []Atom{{x, rdfType, rdfsDatatype}},
			Head:     Atom{x, subClassOf, rdfsLiteral},
		},
	}
}

// DefaultOWLRLRules returns the supported OWL-2 RL subset:
// transitive/symmetric/functional properties, equivalentClass /
// equivalentProperty, sameAs (including its eq-rep-{s,p,o} substitution
// rules), and the two plain fixed-arity shapes; class intersection and
// property chains have variable arity (an rdf:List of classes or
// properties) and so cannot be expressed as a single fixed Atom rule —
// they are evaluated by the dedicated walkers in owlrl_lists.go instead,
// invoked once per Materialize round alongside this rule table.
func DefaultOWLRLRules(dict *term.Dictionary) []*Rule {
	p, x, y, z, c, d, s, o, s2, o2, p2 := v(dict, "p"), v(dict, "x"), v(dict, "y"), v(dict, "z"),
		v(dict, "c"), v(dict, "d"), v(dict, "s"), v(dict, "o"), v(dict, "s2"), v(dict, "o2"), v(dict, "p2")
	y1, y2 := v(dict, "y1"), v(dict, "y2")

	rdfType := i(dict, rdf.Type)
	subClassOf := i(dict, rdfs.SubClassOf)
	subPropertyOf := i(dict, rdfs.SubPropertyOf)
	transitiveProperty := i(dict, owl.TransitiveProperty)
	symmetricProperty := i(dict, owl.SymmetricProperty)
	functionalProperty := i(dict, owl.FunctionalProperty)
	equivalentClass := i(dict, owl.EquivalentClass)
	equivalentProperty := i(dict, owl.EquivalentProperty)
	sameAs := i(dict, owl.SameAs)

	return []*Rule{
		{
			Name:     "owl-prp-trp-transitive",
			Premises: []Atom{{p, rdfType, transitiveProperty}, {x, p, y}, {y, p, z}},
			Head:     Atom{x, p, z},
		},
		{
			Name:     "owl-prp-symp-symmetric",
			Premises: []Atom{{p, rdfType, symmetricProperty}, {x, p, y}},
			Head:     Atom{y, p, x},
		},
		{
			Name:     "owl-prp-fp-functional",
			Premises: []Atom{{p, rdfType, functionalProperty}, {x, p, y1}, {x, p, y2}},
			Head:     Atom{y1, sameAs, y2},
		},
		{
			Name:     "owl-cax-eqc1",
			Premises: []Atom{{c, equivalentClass, d}},
			Head:     Atom{c, subClassOf, d},
		},
		{
			Name:     "owl-cax-eqc2",
			Premises: []Atom{{c, equivalentClass, d}},
			Head:     Atom{d, subClassOf, c},
		},
		{
			Name:     "owl-prp-eqp1",
			Premises: []Atom{{p, equivalentProperty, p2}},
			Head:     Atom{p, subPropertyOf, p2},
		},
		{
			Name:     "owl-prp-eqp2",
			Premises: []Atom{{p, equivalentProperty, p2}},
			Head:     Atom{p2, subPropertyOf, p},
		},
		{
			Name:     "owl-eq-sym",
			Premises: []Atom{{x, sameAs, y}},
			Head:     Atom{y, sameAs, x},
		},
		{
			Name:     "owl-eq-trans",
			Premises: []Atom{{x, sameAs, y}, {y, sameAs, z}},
			Head:     Atom{x, sameAs, z},
		},
		{
			Name:     "owl-eq-rep-s",
			Premises: []Atom{{s, sameAs, s2}, {s, p, o}},
			Head:     Atom{s2, p, o},
		},
		{
			Name:     "owl-eq-rep-p",
			Premises: []Atom{{p, sameAs, p2}, {s, p, o}},
			Head:     Atom{s, p2, o},
		},
		{
			Name:     "owl-eq-rep-o",
			Premises: []Atom{{o, sameAs, o2}, {s, p, o}},
			Head:     Atom{s, p, o2},
		},
	}
}

// Combine concatenates rule sets in order, the shape NewEngine uses to
// build a profile's full table (e.g. RDFS rules followed by the
// OWL-RL subset for the owl-rl profile).
func Combine(sets ...[]*Rule) []*Rule {
	var out []*Rule
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}
