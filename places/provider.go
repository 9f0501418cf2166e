// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package places

import "context"

// Provider is a places search backend. Two implementations exist, one
// per Google API generation; both normalize into the same Candidate
// and Details shapes.
type Provider interface {
	// Search runs a free-text search and returns results in provider
	// order, rank already assigned.
	Search(ctx context.Context, query string) ([]Candidate, error)

	// Suggest runs the autocomplete fallback used when Search comes back
	// empty.
	Suggest(ctx context.Context, query string) ([]Candidate, error)

	// Details fetches the enriched record for a place identifier.
	Details(ctx context.Context, id string) (*Details, error)
}
