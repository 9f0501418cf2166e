// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

// Package places resolves free-text place queries against the Google
// Places APIs and keeps the session catalog of confirmed places.
package places

import (
	"fmt"

	"github.com/avelardi/placebook/spatial"
)

// Candidate is a single ranked result from a provider search, pending
// user confirmation.
type Candidate struct {
	// DisplayLabel is the human readable "name :: address" string shown
	// during disambiguation.
	DisplayLabel string `json:"display_label"`

	// ID is the provider's opaque place identifier, good for a later
	// details lookup.
	ID string `json:"id"`

	// Rank is the 1-based position in the provider's ordering. Lower is
	// better. The provider's order is never re-sorted.
	Rank int `json:"rank"`
}

// Rating is a place score in [1.0, 5.0]. Valid is false when the
// provider omitted the field; a zero value with Valid true is a real
// rating, not absence.
type Rating struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// ReviewCount is the number of user ratings behind a Rating. Valid is
// false when the provider omitted the field.
type ReviewCount struct {
	Value int  `json:"value"`
	Valid bool `json:"valid"`
}

// Details is a confirmed, detail-enriched place. Name and Address are
// always present; Rating and Reviews may each be unavailable
// independently. Location is present when the provider returned
// geometry.
type Details struct {
	Name     string         `json:"name"`
	Address  string         `json:"address"`
	Rating   Rating         `json:"rating"`
	Reviews  ReviewCount    `json:"reviews"`
	Location *spatial.Point `json:"location,omitempty"`
}

// DisplayLabel formats details the same way search candidates are
// labeled.
func (d *Details) DisplayLabel() string {
	return fmt.Sprintf("%s :: %s", d.Name, d.Address)
}

// Policy selects how ambiguous results are handled by a Session.
type Policy int

const (
	// AutoAcceptFirst takes the provider's first result and confirms it
	// without asking; alternatives stay available for later revision.
	AutoAcceptFirst Policy = iota
	// AlwaysDisambiguate parks every multi-candidate result until the
	// user picks one.
	AlwaysDisambiguate
	// DisambiguateOnRequest accepts the first result but the UI offers a
	// "review alternatives" toggle backed by the stored candidates.
	DisambiguateOnRequest
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	switch p {
	case AutoAcceptFirst:
		return "auto"
	case AlwaysDisambiguate:
		return "ask"
	case DisambiguateOnRequest:
		return "review"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy parses the flag spelling of a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "auto":
		return AutoAcceptFirst, nil
	case "ask":
		return AlwaysDisambiguate, nil
	case "review":
		return DisambiguateOnRequest, nil
	default:
		return 0, fmt.Errorf("unknown disambiguation policy %q (want auto, ask or review)", s)
	}
}
