// Package store holds the combination list of one editing session.
//
// A Store owns its facet set and combinations. Facet edits go through SetFacets,
// which regenerates the matrix and reconciles it against the current list in one
// step. Payload edits (UpdateField, UpdateCompanyPrice, ...) never regenerate.
//
// Every mutation swaps the list for a new slice instead of writing into the old
// one, so a snapshot returned by Combinations stays consistent after later edits.
// A Store is not safe for concurrent use; callers serialize access per session.
package store
