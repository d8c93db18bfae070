// Package variation exposes variation matrix editing over HTTP.
//
// An editing session pairs a facet editor with a combination store. Every
// structural facet edit regenerates the matrix and carries existing data over
// through reconciliation. Sessions live in memory and expire when idle; a
// session can be saved as a draft keyed by product id when a database is
// configured, and combination images go to object storage when one is.
package variation
