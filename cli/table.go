// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/avelardi/placebook/places"
)

// Unavailable is how absent ratings and review counts are displayed.
// The resolver only marks absence; the literal string is a
// presentation decision owned here.
const Unavailable = "N/A"

// FormatRating renders a rating with one decimal, or the unavailable
// sentinel.
func FormatRating(r places.Rating) string {
	if !r.Valid {
		return Unavailable
	}

	return fmt.Sprintf("%.1f", r.Value)
}

// FormatReviews renders a review count, or the unavailable sentinel.
func FormatReviews(r places.ReviewCount) string {
	if !r.Valid {
		return Unavailable
	}

	return strconv.Itoa(r.Value)
}

// RenderCatalogTable renders the summary table of confirmed places in
// display order.
func RenderCatalogTable(entries []places.CatalogEntry) string {
	if len(entries) == 0 {
		return WarningStyle.Render("No places added yet. Add some places to see results.")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}

			return CellStyle
		}).
		Headers("#", "Place Name", "Address", "Reviews", "Score")

	for i, entry := range entries {
		t.Row(
			strconv.Itoa(i+1),
			entry.Details.Name,
			entry.Details.Address,
			FormatReviews(entry.Details.Reviews),
			FormatRating(entry.Details.Rating),
		)
	}

	return t.String()
}

// RenderLegsTable renders drive-time results. Return trips include the
// per-direction split the way the original calculator printed it.
func RenderLegsTable(legs []Leg) string {
	if len(legs) == 0 {
		return WarningStyle.Render("No routes to compute.")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}

			return CellStyle
		}).
		Headers("Route", "Minutes", "Detail")

	for _, leg := range legs {
		t.Row(leg.Route, leg.Minutes, leg.Detail)
	}

	return t.String()
}

// Leg is a pre-formatted drive-time row.
type Leg struct {
	Route   string
	Minutes string
	Detail  string
}
