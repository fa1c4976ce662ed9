// Package owl contains IRI constants of the OWL 2 vocabulary used by the
// OWL-2 RL rule subset in package reason.
package owl

const (
	NS     = `http://www.w3.org/2002/07/owl#`
	Prefix = `owl:`
)

const (
	Class                = NS + `Class`
	Thing                = NS + `Thing`
	Nothing              = NS + `Nothing`
	ObjectProperty        = NS + `ObjectProperty`
	TransitiveProperty    = NS + `TransitiveProperty`
	SymmetricProperty     = NS + `SymmetricProperty`
	FunctionalProperty    = NS + `FunctionalProperty`
	InverseFunctionalProperty = NS + `InverseFunctionalProperty`
	EquivalentClass       = NS + `equivalentClass`
	EquivalentProperty    = NS + `equivalentProperty`
	SameAs                = NS + `sameAs`
	DisjointWith          = NS + `disjointWith`
	IntersectionOf        = NS + `intersectionOf`
	PropertyChainAxiom    = NS + `propertyChainAxiom`
	InverseOf             = NS + `inverseOf`
)
