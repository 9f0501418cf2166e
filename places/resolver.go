// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"context"
	"fmt"
)

// MaxCandidates bounds how many alternatives are offered during
// disambiguation. The provider returns up to 20 results; past the
// first handful they stop being plausible readings of the query.
const MaxCandidates = 5

// OutcomeKind discriminates resolution outcomes.
type OutcomeKind int

const (
	// OutcomeConfirmed means the provider returned an unambiguous best
	// match and Details is populated.
	OutcomeConfirmed OutcomeKind = iota
	// OutcomeAmbiguous means several plausible matches exist and
	// Candidates holds up to MaxCandidates of them, provider order.
	OutcomeAmbiguous
	// OutcomeNotFound means both the primary search and the suggestion
	// fallback came back empty.
	OutcomeNotFound
)

// String implements fmt.Stringer.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeAmbiguous:
		return "ambiguous"
	case OutcomeNotFound:
		return "not_found"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is the result of resolving one query. Details is set for
// confirmed outcomes, Candidates for ambiguous ones.
type Outcome struct {
	Kind       OutcomeKind `json:"kind"`
	Details    *Details    `json:"details,omitempty"`
	Candidates []Candidate `json:"candidates,omitempty"`
}

// Resolver turns free-text queries into confirmed places or candidate
// lists. It never retries: transport and provider failures surface as
// *ResolveError for the caller (or its user) to deal with.
type Resolver struct {
	provider Provider
}

// NewResolver creates a resolver over the given provider.
func NewResolver(provider Provider) *Resolver {
	return &Resolver{provider: provider}
}

// Resolve runs the primary text search, falling back to autocomplete
// suggestions when it comes back empty. A single result confirms
// immediately; two or more require disambiguation.
func (r *Resolver) Resolve(ctx context.Context, query string) (*Outcome, error) {
	query, err := sanitizeQuery(query)
	if err != nil {
		return nil, err
	}

	candidates, err := r.provider.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		candidates, err = r.provider.Suggest(ctx, query)
		if err != nil {
			return nil, err
		}
	}

	switch {
	case len(candidates) == 0:
		return &Outcome{Kind: OutcomeNotFound}, nil
	case len(candidates) == 1:
		details, err := r.provider.Details(ctx, candidates[0].ID)
		if err != nil {
			return nil, err
		}

		return &Outcome{Kind: OutcomeConfirmed, Details: details, Candidates: candidates}, nil
	default:
		if len(candidates) > MaxCandidates {
			candidates = candidates[:MaxCandidates]
		}

		return &Outcome{Kind: OutcomeAmbiguous, Candidates: candidates}, nil
	}
}

// FetchDetails resolves a previously seen candidate identifier into
// full details. Used after the user picks an alternative.
func (r *Resolver) FetchDetails(ctx context.Context, id string) (*Details, error) {
	if id == "" {
		return nil, &ResolveError{
			Kind:    ErrorKindInvalidRequest,
			Message: "empty place identifier",
		}
	}

	return r.provider.Details(ctx, id)
}
