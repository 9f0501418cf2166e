// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package directions

import (
	"context"
	"fmt"

	"github.com/uber/h3-go/v4"

	"github.com/avelardi/placebook/places"
	"github.com/avelardi/placebook/places/utils"
	"github.com/avelardi/placebook/spatial"
)

// TripKind selects how legs are computed.
type TripKind int

const (
	// OneWay computes just the outbound duration per pair.
	OneWay TripKind = iota
	// Return also computes the way back and sums both.
	Return
)

// String implements fmt.Stringer.
func (k TripKind) String() string {
	if k == Return {
		return "return"
	}

	return "one-way"
}

// samePlaceResolution is the H3 resolution used to decide that two
// waypoints are the same physical location. Resolution 11 cells are
// about 25 m across, building scale.
const samePlaceResolution = 11

// sameplaceMaxMeters is the haversine fallback when cells can't be
// computed.
const samePlaceMaxMeters = 25.0

// Waypoint is one endpoint of a leg: the display name the user knows
// it by, the validated address sent to the provider, and coordinates
// when the resolver captured geometry.
type Waypoint struct {
	Name     string         `json:"name"`
	Address  string         `json:"address"`
	Location *spatial.Point `json:"location,omitempty"`
}

// Leg is one computed origin→destination pair. For return trips
// TotalMinutes is outbound plus inbound. Err carries a per-leg
// failure; one broken leg never aborts the rest of the matrix.
type Leg struct {
	Origin          Waypoint `json:"origin"`
	Destination     Waypoint `json:"destination"`
	OutboundMinutes int      `json:"outbound_minutes"`
	InboundMinutes  int      `json:"inbound_minutes,omitempty"`
	TotalMinutes    int      `json:"total_minutes"`
	Err             string   `json:"error,omitempty"`
}

// Plan is a drive-time computation over every origin/destination pair.
type Plan struct {
	Kind         TripKind   `json:"kind"`
	Origins      []Waypoint `json:"origins"`
	Destinations []Waypoint `json:"destinations"`
}

// SamePlace decides whether two waypoints are the same physical
// location: identical folded addresses, or coordinates within the same
// building-scale H3 cell or a few meters of each other.
func SamePlace(a, b Waypoint) bool {
	if utils.LowerASCIIFolding(a.Address) == utils.LowerASCIIFolding(b.Address) {
		return true
	}

	if a.Location == nil || b.Location == nil {
		return false
	}

	cellA, errA := h3.LatLngToCell(h3.NewLatLng(a.Location.Lat, a.Location.Lng), samePlaceResolution)
	cellB, errB := h3.LatLngToCell(h3.NewLatLng(b.Location.Lat, b.Location.Lng), samePlaceResolution)

	if errA == nil && errB == nil && cellA == cellB {
		return true
	}

	return a.Location.HaversineDistance(b.Location) <= samePlaceMaxMeters
}

// Compute produces the legs of the plan in origin-major order,
// skipping pairs whose endpoints are the same place.
func (p *Plan) Compute(ctx context.Context, client *Client) []Leg {
	var legs []Leg

	for _, origin := range p.Origins {
		for _, destination := range p.Destinations {
			if SamePlace(origin, destination) {
				continue
			}

			legs = append(legs, p.computeLeg(ctx, client, origin, destination))
		}
	}

	return legs
}

func (p *Plan) computeLeg(ctx context.Context, client *Client, origin, destination Waypoint) Leg {
	leg := Leg{Origin: origin, Destination: destination}

	outbound, err := client.DrivingMinutes(ctx, origin.Address, destination.Address)
	if err != nil {
		leg.Err = fmt.Sprintf("outbound: %v", err)

		return leg
	}

	leg.OutboundMinutes = outbound
	leg.TotalMinutes = outbound

	if p.Kind == Return {
		inbound, err := client.DrivingMinutes(ctx, destination.Address, origin.Address)
		if err != nil {
			leg.Err = fmt.Sprintf("inbound: %v", err)

			return leg
		}

		leg.InboundMinutes = inbound
		leg.TotalMinutes = outbound + inbound
	}

	return leg
}

// WaypointFromEntry converts a confirmed catalog entry into a leg
// endpoint. The user's original query stays as the display name, the
// validated address is what the provider routes on.
func WaypointFromEntry(entry places.CatalogEntry) Waypoint {
	return Waypoint{
		Name:     entry.Query,
		Address:  entry.Details.Address,
		Location: entry.Details.Location,
	}
}
