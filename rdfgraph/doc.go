// Package rdfgraph is the embedded entry point: it wires
// term.Dictionary, store.QuadStore, parse, sparql, exec and reason into a
// single Store handle behind one config-driven constructor. Store stays a
// concrete type wrapping the pieces callers need (scan, query, ingest,
// materialize) behind one surface.
package rdfgraph
