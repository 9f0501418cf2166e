// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicate reports that a revision would collide with a place
// already in the catalog.
var ErrDuplicate = errors.New("place already in catalog")

// ErrNoPending reports a Choose call for a query that has no pending
// disambiguation.
var ErrNoPending = errors.New("no pending disambiguation for query")

// SubmitStatus tells the caller what happened to a submitted query.
type SubmitStatus int

const (
	// SubmitAdded means a confirmed entry was appended to the catalog.
	SubmitAdded SubmitStatus = iota
	// SubmitDuplicate means the place was already in the catalog; the
	// submit was a no-op.
	SubmitDuplicate
	// SubmitPending means the query is ambiguous and waits for Choose.
	SubmitPending
	// SubmitNotFound means the provider had nothing to offer.
	SubmitNotFound
)

// String implements fmt.Stringer.
func (s SubmitStatus) String() string {
	switch s {
	case SubmitAdded:
		return "added"
	case SubmitDuplicate:
		return "duplicate"
	case SubmitPending:
		return "pending"
	case SubmitNotFound:
		return "not_found"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// SubmitResult is the outcome of one Submit or Choose call. Entry is
// set when a place was appended; Candidates when disambiguation is
// pending.
type SubmitResult struct {
	Status     SubmitStatus  `json:"status"`
	Entry      *CatalogEntry `json:"entry,omitempty"`
	Candidates []Candidate   `json:"candidates,omitempty"`
}

// Session owns one user's interactive state: the catalog being built,
// the disambiguations still pending, and the policy that decides how
// ambiguous results are handled. It replaces the ambient per-process
// globals of earlier incarnations of this tool with state passed
// explicitly to every operation.
type Session struct {
	resolver *Resolver
	catalog  *Catalog
	pending  map[string][]Candidate
	policy   Policy
}

// NewSession creates a session with an empty catalog.
func NewSession(resolver *Resolver, policy Policy) *Session {
	return &Session{
		resolver: resolver,
		catalog:  NewCatalog(),
		pending:  make(map[string][]Candidate),
		policy:   policy,
	}
}

// Policy returns the session's disambiguation policy.
func (s *Session) Policy() Policy {
	return s.policy
}

// Submit resolves one free-text query and applies the session policy.
// Ambiguous results either auto-accept the first candidate (keeping
// the alternatives in the entry's provenance) or park the query until
// Choose is called, depending on policy.
func (s *Session) Submit(ctx context.Context, query string) (*SubmitResult, error) {
	outcome, err := s.resolver.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}

	switch outcome.Kind {
	case OutcomeNotFound:
		return &SubmitResult{Status: SubmitNotFound}, nil
	case OutcomeConfirmed:
		return s.confirm(query, outcome.Candidates, outcome.Candidates[0].ID, outcome.Details), nil
	case OutcomeAmbiguous:
		if s.policy == AlwaysDisambiguate {
			s.pending[query] = outcome.Candidates

			return &SubmitResult{Status: SubmitPending, Candidates: outcome.Candidates}, nil
		}

		// AutoAcceptFirst and DisambiguateOnRequest both take the first
		// result now; the alternatives stay revisable through Revise.
		first := outcome.Candidates[0]

		details, err := s.resolver.FetchDetails(ctx, first.ID)
		if err != nil {
			return nil, err
		}

		return s.confirm(query, outcome.Candidates, first.ID, details), nil
	default:
		return nil, fmt.Errorf("unexpected outcome %s", outcome.Kind)
	}
}

func (s *Session) confirm(query string, candidates []Candidate, selectedID string, details *Details) *SubmitResult {
	entry := CatalogEntry{
		Query:      query,
		Candidates: candidates,
		SelectedID: selectedID,
		Details:    details,
	}

	// The query is answered either way; a duplicate must not stay
	// parked in pending.
	delete(s.pending, query)

	if !s.catalog.Append(entry) {
		return &SubmitResult{Status: SubmitDuplicate, Entry: &entry}
	}

	return &SubmitResult{Status: SubmitAdded, Entry: &entry}
}

// Pending returns the candidates parked for a query, if any.
func (s *Session) Pending(query string) ([]Candidate, bool) {
	candidates, ok := s.pending[query]

	return candidates, ok
}

// PendingQueries lists the queries awaiting disambiguation, sorted for
// stable display.
func (s *Session) PendingQueries() []string {
	queries := make([]string, 0, len(s.pending))
	for query := range s.pending {
		queries = append(queries, query)
	}

	sort.Strings(queries)

	return queries
}

// Choose completes a pending disambiguation by picking one candidate,
// fetching its details and appending it to the catalog.
func (s *Session) Choose(ctx context.Context, query string, candidateIndex int) (*SubmitResult, error) {
	candidates, ok := s.pending[query]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoPending, query)
	}

	if candidateIndex < 0 || candidateIndex >= len(candidates) {
		return nil, &IndexError{Index: candidateIndex, Len: len(candidates)}
	}

	chosen := candidates[candidateIndex]

	details, err := s.resolver.FetchDetails(ctx, chosen.ID)
	if err != nil {
		return nil, err
	}

	return s.confirm(query, candidates, chosen.ID, details), nil
}

// Dismiss drops a pending disambiguation without confirming anything.
func (s *Session) Dismiss(query string) {
	delete(s.pending, query)
}

// Revise swaps the entry at entryIndex for a different alternative
// from its stored provenance. Position and catalog length are
// preserved; picking the already-selected candidate is a no-op.
func (s *Session) Revise(ctx context.Context, entryIndex, candidateIndex int) (*CatalogEntry, error) {
	entry, err := s.catalog.At(entryIndex)
	if err != nil {
		return nil, err
	}

	if candidateIndex < 0 || candidateIndex >= len(entry.Candidates) {
		return nil, &IndexError{Index: candidateIndex, Len: len(entry.Candidates)}
	}

	chosen := entry.Candidates[candidateIndex]
	if chosen.ID == entry.SelectedID {
		return entry, nil
	}

	details, err := s.resolver.FetchDetails(ctx, chosen.ID)
	if err != nil {
		return nil, err
	}

	key := dedupeKey(details)
	for i, other := range s.catalog.Entries() {
		if i != entryIndex && dedupeKey(other.Details) == key {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, details.DisplayLabel())
		}
	}

	revised := CatalogEntry{
		Query:      entry.Query,
		Candidates: entry.Candidates,
		SelectedID: chosen.ID,
		Details:    details,
	}

	if err := s.catalog.ReplaceAt(entryIndex, revised); err != nil {
		return nil, err
	}

	return &revised, nil
}

// Remove deletes the catalog entry at index.
func (s *Session) Remove(index int) error {
	return s.catalog.RemoveAt(index)
}

// Clear drops the catalog and all pending disambiguations.
func (s *Session) Clear() {
	s.catalog.Clear()
	s.pending = make(map[string][]Candidate)
}

// Entries returns the catalog snapshot in display order.
func (s *Session) Entries() []CatalogEntry {
	return s.catalog.Entries()
}

// Len reports the catalog size.
func (s *Session) Len() int {
	return s.catalog.Len()
}
