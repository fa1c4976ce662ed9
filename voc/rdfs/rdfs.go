// Package rdfs contains IRI constants of the RDF Schema vocabulary.
package rdfs

const (
	NS     = `http://www.w3.org/2000/01/rdf-schema#`
	Prefix = `rdfs:`
)

const (
	Resource                    = NS + `Resource`
	Class                       = NS + `Class`
	Literal                     = NS + `Literal`
	Container                   = NS + `Container`
	Datatype                    = NS + `Datatype`
	ContainerMembershipProperty = NS + `ContainerMembershipProperty`

	SubClassOf    = NS + `subClassOf`
	SubPropertyOf = NS + `subPropertyOf`
	Domain        = NS + `domain`
	Range         = NS + `range`
	Member        = NS + `member`
	Comment       = NS + `comment`
	Label         = NS + `label`
	SeeAlso       = NS + `seeAlso`
	IsDefinedBy   = NS + `isDefinedBy`
)
