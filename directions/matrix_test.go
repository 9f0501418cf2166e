// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package directions

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelardi/placebook/places"
	"github.com/avelardi/placebook/spatial"
)

// fixedDurations serves a canned one-minute-per-character duration so
// each leg is distinguishable: len(origin)+len(destination) minutes.
func fixedDurations(t *testing.T) *Client {
	t.Helper()

	return newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		origin := r.URL.Query().Get("origin")
		destination := r.URL.Query().Get("destination")

		fmt.Fprint(w, routeBody((len(origin)+len(destination))*60, 0))
	})
}

func TestSamePlaceFoldedAddress(t *testing.T) {
	a := Waypoint{Name: "cafe", Address: "Café de Flore, Paris"}
	b := Waypoint{Name: "flore", Address: "  CAFE DE FLORE, PARIS "}

	assert.True(t, SamePlace(a, b))
}

func TestSamePlaceNearbyCoordinates(t *testing.T) {
	// ~10 m apart, well inside building scale.
	a := Waypoint{Address: "1 Front Door St", Location: &spatial.Point{Lat: 48.85840, Lng: 2.29450}}
	b := Waypoint{Address: "1 Back Door St", Location: &spatial.Point{Lat: 48.85849, Lng: 2.29450}}

	assert.True(t, SamePlace(a, b))
}

func TestSamePlaceDistinct(t *testing.T) {
	paris := Waypoint{Address: "Eiffel Tower", Location: &spatial.Point{Lat: 48.8584, Lng: 2.2945}}
	vegas := Waypoint{Address: "Las Vegas Strip", Location: &spatial.Point{Lat: 36.1147, Lng: -115.1728}}

	assert.False(t, SamePlace(paris, vegas))
}

func TestSamePlaceNoCoordinates(t *testing.T) {
	a := Waypoint{Address: "Somewhere"}
	b := Waypoint{Address: "Somewhere else"}

	assert.False(t, SamePlace(a, b))
}

func TestComputeOneWay(t *testing.T) {
	client := fixedDurations(t)

	plan := &Plan{
		Kind:         OneWay,
		Origins:      []Waypoint{{Name: "home", Address: "aa"}},
		Destinations: []Waypoint{{Name: "office", Address: "bbb"}, {Name: "gym", Address: "cccc"}},
	}

	legs := plan.Compute(context.Background(), client)
	require.Len(t, legs, 2)

	assert.Equal(t, "home", legs[0].Origin.Name)
	assert.Equal(t, "office", legs[0].Destination.Name)
	assert.Equal(t, 5, legs[0].OutboundMinutes)
	assert.Equal(t, 5, legs[0].TotalMinutes)
	assert.Zero(t, legs[0].InboundMinutes)

	assert.Equal(t, "gym", legs[1].Destination.Name)
	assert.Equal(t, 6, legs[1].TotalMinutes)
}

func TestComputeReturnSumsBothWays(t *testing.T) {
	client := fixedDurations(t)

	plan := &Plan{
		Kind:         Return,
		Origins:      []Waypoint{{Name: "home", Address: "aa"}},
		Destinations: []Waypoint{{Name: "office", Address: "bbb"}},
	}

	legs := plan.Compute(context.Background(), client)
	require.Len(t, legs, 1)

	assert.Equal(t, 5, legs[0].OutboundMinutes)
	assert.Equal(t, 5, legs[0].InboundMinutes)
	assert.Equal(t, 10, legs[0].TotalMinutes)
	assert.Empty(t, legs[0].Err)
}

func TestComputeSkipsSamePlacePairs(t *testing.T) {
	client := fixedDurations(t)

	plan := &Plan{
		Kind:         OneWay,
		Origins:      []Waypoint{{Name: "home", Address: "aa"}, {Name: "office", Address: "bbb"}},
		Destinations: []Waypoint{{Name: "office again", Address: "BBB"}},
	}

	legs := plan.Compute(context.Background(), client)
	require.Len(t, legs, 1)
	assert.Equal(t, "home", legs[0].Origin.Name)
}

func TestComputeLegErrorDoesNotAbortMatrix(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("destination") == "broken" {
			fmt.Fprint(w, `{"status": "UNKNOWN_ERROR"}`)

			return
		}

		fmt.Fprint(w, routeBody(300, 0))
	})

	plan := &Plan{
		Kind:         OneWay,
		Origins:      []Waypoint{{Name: "home", Address: "aa"}},
		Destinations: []Waypoint{{Name: "bad", Address: "broken"}, {Name: "good", Address: "bbb"}},
	}

	legs := plan.Compute(context.Background(), client)
	require.Len(t, legs, 2)

	assert.NotEmpty(t, legs[0].Err)
	assert.Contains(t, legs[0].Err, "outbound")
	assert.Empty(t, legs[1].Err)
	assert.Equal(t, 5, legs[1].TotalMinutes)
}

func TestWaypointFromEntry(t *testing.T) {
	entry := places.CatalogEntry{
		Query: "the tower",
		Details: &places.Details{
			Name:     "Eiffel Tower",
			Address:  "Champ de Mars, Paris",
			Location: &spatial.Point{Lat: 48.8584, Lng: 2.2945},
		},
	}

	waypoint := WaypointFromEntry(entry)

	assert.Equal(t, "the tower", waypoint.Name)
	assert.Equal(t, "Champ de Mars, Paris", waypoint.Address)
	require.NotNil(t, waypoint.Location)
	assert.InDelta(t, 48.8584, waypoint.Location.Lat, 1e-9)
}
