// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelardi/placebook/places"
)

// scriptProvider serves fixed candidates per query for driving the
// prompter from canned input.
type scriptProvider struct {
	results map[string][]places.Candidate
	details map[string]*places.Details
}

func (p *scriptProvider) Search(_ context.Context, query string) ([]places.Candidate, error) {
	return p.results[query], nil
}

func (p *scriptProvider) Suggest(_ context.Context, _ string) ([]places.Candidate, error) {
	return nil, nil
}

func (p *scriptProvider) Details(_ context.Context, id string) (*places.Details, error) {
	details, ok := p.details[id]
	if !ok {
		return nil, &places.ResolveError{Kind: places.ErrorKindNotFound, Message: "no such place"}
	}

	return details, nil
}

func newScriptProvider() *scriptProvider {
	provider := &scriptProvider{
		results: map[string][]places.Candidate{
			"tower": {
				{DisplayLabel: "Eiffel Tower :: Paris", ID: "id-paris", Rank: 1},
				{DisplayLabel: "Eiffel Tower Restaurant :: Las Vegas", ID: "id-vegas", Rank: 2},
			},
			"blue bottle": {
				{DisplayLabel: "Blue Bottle Coffee :: Oakland", ID: "id-bb", Rank: 1},
			},
		},
		details: map[string]*places.Details{
			"id-paris": {Name: "Eiffel Tower", Address: "Paris", Rating: places.Rating{Value: 4.6, Valid: true}},
			"id-vegas": {Name: "Eiffel Tower Restaurant", Address: "Las Vegas"},
			"id-bb":    {Name: "Blue Bottle Coffee", Address: "Oakland"},
		},
	}

	return provider
}

func runPrompter(t *testing.T, policy places.Policy, script string) (*places.Session, string) {
	t.Helper()

	session := places.NewSession(places.NewResolver(newScriptProvider()), policy)

	var output bytes.Buffer

	prompter := NewPrompter(session, strings.NewReader(script), &output)
	require.NoError(t, prompter.Run(context.Background()))

	return session, output.String()
}

func TestPrompterAddUnambiguous(t *testing.T) {
	session, output := runPrompter(t, places.AlwaysDisambiguate, "add blue bottle\nquit\n")

	assert.Contains(t, output, "Added: Blue Bottle Coffee :: Oakland")
	assert.Equal(t, 1, session.Len())
}

func TestPrompterDisambiguatesAndPicks(t *testing.T) {
	session, output := runPrompter(t, places.AlwaysDisambiguate, "add tower\n2\nquit\n")

	assert.Contains(t, output, "is ambiguous")
	assert.Contains(t, output, "[1] Eiffel Tower :: Paris")
	assert.Contains(t, output, "[2] Eiffel Tower Restaurant :: Las Vegas")
	assert.Contains(t, output, "Added: Eiffel Tower Restaurant :: Las Vegas")

	require.Equal(t, 1, session.Len())
	assert.Equal(t, "id-vegas", session.Entries()[0].SelectedID)
}

func TestPrompterLeavesPendingAndPicksLater(t *testing.T) {
	script := "add tower\n\npending\npick tower\n1\nquit\n"
	session, output := runPrompter(t, places.AlwaysDisambiguate, script)

	assert.Contains(t, output, "Left pending")
	assert.Contains(t, output, "tower")
	assert.Contains(t, output, "Added: Eiffel Tower :: Paris")
	assert.Equal(t, 1, session.Len())
}

func TestPrompterAutoAcceptPolicy(t *testing.T) {
	session, output := runPrompter(t, places.AutoAcceptFirst, "add tower\nquit\n")

	assert.Contains(t, output, "Added: Eiffel Tower :: Paris")
	assert.NotContains(t, output, "is ambiguous")
	assert.Equal(t, 1, session.Len())
}

func TestPrompterBareLineIsAdd(t *testing.T) {
	session, _ := runPrompter(t, places.AutoAcceptFirst, "blue bottle\nquit\n")

	assert.Equal(t, 1, session.Len())
}

func TestPrompterDuplicate(t *testing.T) {
	session, output := runPrompter(t, places.AutoAcceptFirst, "add blue bottle\nadd blue bottle\nquit\n")

	assert.Contains(t, output, "Already in catalog")
	assert.Equal(t, 1, session.Len())
}

func TestPrompterNotFound(t *testing.T) {
	session, output := runPrompter(t, places.AutoAcceptFirst, "add xyzzy\nquit\n")

	assert.Contains(t, output, `No matches found for "xyzzy"`)
	assert.Zero(t, session.Len())
}

func TestPrompterRemove(t *testing.T) {
	session, output := runPrompter(t, places.AutoAcceptFirst, "add blue bottle\nremove 1\nquit\n")

	assert.Contains(t, output, "Removed: Blue Bottle Coffee :: Oakland")
	assert.Zero(t, session.Len())
}

func TestPrompterRemoveBadIndex(t *testing.T) {
	_, output := runPrompter(t, places.AutoAcceptFirst, "remove 5\nquit\n")

	assert.Contains(t, output, "entry 5 does not exist")
}

func TestPrompterReview(t *testing.T) {
	script := "add tower\nreview 1\n2\nquit\n"
	session, output := runPrompter(t, places.AutoAcceptFirst, script)

	assert.Contains(t, output, `Alternatives for "tower"`)
	assert.Contains(t, output, "*[1]")
	assert.Contains(t, output, "Updated to: Eiffel Tower Restaurant :: Las Vegas")

	require.Equal(t, 1, session.Len())
	assert.Equal(t, "id-vegas", session.Entries()[0].SelectedID)
}

func TestPrompterBulk(t *testing.T) {
	script := "bulk\nblue bottle\ntower\n\n1\nquit\n"
	session, output := runPrompter(t, places.AlwaysDisambiguate, script)

	assert.Contains(t, output, "Added: Blue Bottle Coffee :: Oakland")
	assert.Contains(t, output, "Added: Eiffel Tower :: Paris")
	assert.Equal(t, 2, session.Len())
}

func TestPrompterClear(t *testing.T) {
	session, output := runPrompter(t, places.AutoAcceptFirst, "add blue bottle\nclear\nquit\n")

	assert.Contains(t, output, "Catalog cleared")
	assert.Zero(t, session.Len())
}

func TestPrompterEOFEndsLoop(t *testing.T) {
	_, output := runPrompter(t, places.AutoAcceptFirst, "add blue bottle\n")

	assert.Contains(t, output, "Added: Blue Bottle Coffee :: Oakland")
}

func TestPrompterTable(t *testing.T) {
	_, output := runPrompter(t, places.AutoAcceptFirst, fmt.Sprintf("add %s\ntable\nquit\n", "blue bottle"))

	assert.Contains(t, output, "Blue Bottle Coffee")
	assert.Contains(t, output, "Oakland")
}
