// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/avelardi/placebook/directions"
	"github.com/avelardi/placebook/places"
)

// TripPrompter is the drive-time calculator flow: collect and validate
// start points, collect destinations, compute the pairwise matrix.
type TripPrompter struct {
	session *places.Session
	driving *directions.Client
	reader  *bufio.Reader
	writer  io.Writer
}

// NewTripPrompter creates the drive-time flow. Nil reader or writer
// fall back to stdin and stdout.
func NewTripPrompter(session *places.Session, driving *directions.Client, reader io.Reader, writer io.Writer) *TripPrompter {
	if reader == nil {
		reader = os.Stdin
	}

	if writer == nil {
		writer = os.Stdout
	}

	return &TripPrompter{
		session: session,
		driving: driving,
		reader:  bufio.NewReader(reader),
		writer:  writer,
	}
}

// Run executes the whole flow once.
func (t *TripPrompter) Run(ctx context.Context) error {
	fmt.Fprintln(t.writer, TitleStyle.Render("Drive Time Calculator"))

	kind, err := t.askTripKind()
	if err != nil {
		return err
	}

	fmt.Fprintln(t.writer, TitleStyle.Render("Start Points"))

	origins := t.collectWaypoints(ctx)
	if len(origins) == 0 {
		fmt.Fprintln(t.writer, WarningStyle.Render("No start points entered."))

		return nil
	}

	fmt.Fprintln(t.writer, TitleStyle.Render("Destinations"))

	destinations := t.reuseOrigins(origins, kind)
	destinations = append(destinations, t.collectWaypoints(ctx)...)

	if len(destinations) == 0 {
		fmt.Fprintln(t.writer, WarningStyle.Render("No destinations entered."))

		return nil
	}

	plan := directions.Plan{
		Kind:         kind,
		Origins:      origins,
		Destinations: destinations,
	}

	legs := plan.Compute(ctx, t.driving)

	fmt.Fprintln(t.writer, TitleStyle.Render("Results"))
	fmt.Fprintln(t.writer, RenderLegsTable(formatLegs(legs, kind)))

	return nil
}

func (t *TripPrompter) askTripKind() (directions.TripKind, error) {
	fmt.Fprint(t.writer, "Trip type - [r]eturn or [o]ne-way (default return): ")

	line, err := t.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return directions.Return, fmt.Errorf("reading input: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "o", "one-way", "oneway":
		return directions.OneWay, nil
	default:
		return directions.Return, nil
	}
}

// collectWaypoints reads place names until a blank line, resolving
// each through the session so ambiguity and typos get the same
// treatment as the catalog flow.
func (t *TripPrompter) collectWaypoints(ctx context.Context) []directions.Waypoint {
	var waypoints []directions.Waypoint

	for {
		fmt.Fprintf(t.writer, "Enter point %d (empty to finish): ", len(waypoints)+1)

		line, err := t.reader.ReadString('\n')
		if err != nil {
			break
		}

		query := strings.TrimSpace(line)
		if query == "" {
			break
		}

		result, err := t.session.Submit(ctx, query)
		if err != nil {
			fmt.Fprintln(t.writer, ErrorStyle.Render(fmt.Sprintf("Invalid address %q: %v. Please try again.", query, err)))

			continue
		}

		entry := t.entryFromResult(ctx, query, result)
		if entry == nil {
			continue
		}

		fmt.Fprintln(t.writer, SuccessStyle.Render("Validated address: "+entry.Details.Address))
		waypoints = append(waypoints, directions.WaypointFromEntry(*entry))
	}

	return waypoints
}

func (t *TripPrompter) entryFromResult(ctx context.Context, query string, result *places.SubmitResult) *places.CatalogEntry {
	switch result.Status {
	case places.SubmitAdded, places.SubmitDuplicate:
		return result.Entry
	case places.SubmitNotFound:
		fmt.Fprintln(t.writer, ErrorStyle.Render(fmt.Sprintf("Invalid address: %q. Please try again.", query)))

		return nil
	case places.SubmitPending:
		return t.pickWaypoint(ctx, query, result.Candidates)
	default:
		return nil
	}
}

func (t *TripPrompter) pickWaypoint(ctx context.Context, query string, candidates []places.Candidate) *places.CatalogEntry {
	fmt.Fprintln(t.writer, WarningStyle.Render("Address not found. Did you mean one of these?"))

	for _, candidate := range candidates {
		fmt.Fprintf(t.writer, "  [%d] %s\n", candidate.Rank, candidate.DisplayLabel)
	}

	fmt.Fprintf(t.writer, "Pick 1-%d (enter to skip): ", len(candidates))

	line, err := t.reader.ReadString('\n')
	if err != nil {
		return nil
	}

	line = strings.TrimSpace(line)
	if line == "" {
		t.session.Dismiss(query)

		return nil
	}

	choice, err := strconv.Atoi(line)
	if err != nil || choice < 1 || choice > len(candidates) {
		fmt.Fprintln(t.writer, ErrorStyle.Render("Not a valid choice; skipped."))
		t.session.Dismiss(query)

		return nil
	}

	result, err := t.session.Choose(ctx, query, choice-1)
	if err != nil {
		fmt.Fprintln(t.writer, ErrorStyle.Render(fmt.Sprintf("Error confirming choice: %v", err)))

		return nil
	}

	return result.Entry
}

// reuseOrigins offers each start point as a destination too, the way
// the original calculator did for multi-origin return trips.
func (t *TripPrompter) reuseOrigins(origins []directions.Waypoint, kind directions.TripKind) []directions.Waypoint {
	if kind == directions.Return && len(origins) < 2 {
		return nil
	}

	var destinations []directions.Waypoint

	for _, origin := range origins {
		fmt.Fprintf(t.writer, "Use %q as a destination too? [y/N]: ", origin.Name)

		line, err := t.reader.ReadString('\n')
		if err != nil {
			break
		}

		if strings.EqualFold(strings.TrimSpace(line), "y") {
			destinations = append(destinations, origin)
		}
	}

	return destinations
}

func formatLegs(legs []directions.Leg, kind directions.TripKind) []Leg {
	rows := make([]Leg, 0, len(legs))

	for _, leg := range legs {
		if leg.Err != "" {
			rows = append(rows, Leg{
				Route:   fmt.Sprintf("%s -> %s", leg.Origin.Name, leg.Destination.Name),
				Minutes: Unavailable,
				Detail:  leg.Err,
			})

			continue
		}

		if kind == directions.Return {
			rows = append(rows, Leg{
				Route:   fmt.Sprintf("%s -> %s -> %s", leg.Origin.Name, leg.Destination.Name, leg.Origin.Name),
				Minutes: strconv.Itoa(leg.TotalMinutes),
				Detail:  fmt.Sprintf("%d mins out, %d mins back", leg.OutboundMinutes, leg.InboundMinutes),
			})

			continue
		}

		rows = append(rows, Leg{
			Route:   fmt.Sprintf("%s -> %s", leg.Origin.Name, leg.Destination.Name),
			Minutes: strconv.Itoa(leg.OutboundMinutes),
			Detail:  "",
		})
	}

	return rows
}
