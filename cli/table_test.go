// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avelardi/placebook/places"
)

func TestFormatRating(t *testing.T) {
	tests := []struct {
		name     string
		rating   places.Rating
		expected string
	}{
		{"present", places.Rating{Value: 4.6, Valid: true}, "4.6"},
		{"legitimate zero", places.Rating{Value: 0, Valid: true}, "0.0"},
		{"absent", places.Rating{}, "N/A"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatRating(tc.rating))
		})
	}
}

func TestFormatReviews(t *testing.T) {
	tests := []struct {
		name     string
		reviews  places.ReviewCount
		expected string
	}{
		{"present", places.ReviewCount{Value: 300000, Valid: true}, "300000"},
		{"legitimate zero", places.ReviewCount{Value: 0, Valid: true}, "0"},
		{"absent", places.ReviewCount{}, "N/A"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatReviews(tc.reviews))
		})
	}
}

func TestRenderCatalogTable(t *testing.T) {
	entries := []places.CatalogEntry{
		{
			Query: "eiffel",
			Details: &places.Details{
				Name:    "Eiffel Tower",
				Address: "Champ de Mars, Paris",
				Rating:  places.Rating{Value: 4.6, Valid: true},
				Reviews: places.ReviewCount{Value: 300000, Valid: true},
			},
		},
		{
			Query: "new bakery",
			Details: &places.Details{
				Name:    "New Bakery",
				Address: "Main St 1",
			},
		},
	}

	rendered := RenderCatalogTable(entries)

	assert.Contains(t, rendered, "Eiffel Tower")
	assert.Contains(t, rendered, "Champ de Mars, Paris")
	assert.Contains(t, rendered, "4.6")
	assert.Contains(t, rendered, "300000")

	// Unrated places show the sentinel, never a fabricated zero.
	assert.Contains(t, rendered, Unavailable)
	assert.NotContains(t, rendered, "0.0")
}

func TestRenderCatalogTableEmpty(t *testing.T) {
	assert.Contains(t, RenderCatalogTable(nil), "No places added yet")
}

func TestRenderLegsTable(t *testing.T) {
	legs := []Leg{
		{Route: "Home -> Office -> Home", Minutes: "25", Detail: "12 mins out, 13 mins back"},
	}

	rendered := RenderLegsTable(legs)

	assert.Contains(t, rendered, "Home -> Office -> Home")
	assert.Contains(t, rendered, "25")
	assert.Contains(t, rendered, "13 mins back")
}

func TestRenderLegsTableEmpty(t *testing.T) {
	assert.Contains(t, RenderLegsTable(nil), "No routes to compute")
}
