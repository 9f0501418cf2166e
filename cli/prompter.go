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

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/avelardi/placebook/places"
)

// Prompter drives the interactive session over plain line-oriented
// input. All state lives in the wrapped Session; the prompter only
// renders and parses.
type Prompter struct {
	session *places.Session
	reader  *bufio.Reader
	writer  io.Writer
}

// NewPrompter creates a prompter. Nil reader or writer fall back to
// stdin and stdout.
func NewPrompter(session *places.Session, reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}

	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		session: session,
		reader:  bufio.NewReader(reader),
		writer:  writer,
	}
}

const helpText = `Commands:
  add <place>     resolve a place or address and add it to the catalog
  bulk            enter several names, one per line; empty line ends
  pending         list queries still waiting for a pick
  pick <query>    answer a pending disambiguation
  review <n>      reopen the alternatives for entry n
  remove <n>      remove entry n from the catalog
  table           show the summary table
  clear           drop the whole catalog
  help            this text
  quit            leave`

// Run reads commands until EOF or quit. Errors from single commands
// are reported and the loop continues; only input failure ends it.
func (p *Prompter) Run(ctx context.Context) error {
	fmt.Fprintln(p.writer, TitleStyle.Render("placebook - build your list of places"))
	fmt.Fprintln(p.writer, SubtleStyle.Render("type 'help' for commands"))

	for {
		fmt.Fprint(p.writer, "placebook> ")

		line, err := p.reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(p.writer)

			return nil
		}

		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		command, argument, _ := strings.Cut(strings.TrimSpace(line), " ")
		argument = strings.TrimSpace(argument)

		switch command {
		case "":
			continue
		case "quit", "exit", "q":
			return nil
		case "help":
			fmt.Fprintln(p.writer, helpText)
		case "add":
			p.add(ctx, argument)
		case "bulk":
			p.bulk(ctx)
		case "pending":
			p.listPending()
		case "pick":
			p.pick(ctx, argument)
		case "review":
			p.review(ctx, argument)
		case "remove":
			p.remove(argument)
		case "table", "list":
			fmt.Fprintln(p.writer, RenderCatalogTable(p.session.Entries()))
		case "clear":
			p.session.Clear()
			fmt.Fprintln(p.writer, SuccessStyle.Render("Catalog cleared."))
		default:
			// Bare place names are the common case; treat them as add.
			p.add(ctx, strings.TrimSpace(line))
		}
	}
}

func (p *Prompter) add(ctx context.Context, query string) {
	if query == "" {
		fmt.Fprintln(p.writer, WarningStyle.Render("Usage: add <place name or address>"))

		return
	}

	result, err := p.session.Submit(ctx, query)
	if err != nil {
		fmt.Fprintln(p.writer, ErrorStyle.Render(fmt.Sprintf("Error resolving %q: %v", query, err)))

		return
	}

	p.report(ctx, query, result)
}

func (p *Prompter) report(ctx context.Context, query string, result *places.SubmitResult) {
	switch result.Status {
	case places.SubmitAdded:
		fmt.Fprintln(p.writer, SuccessStyle.Render("Added: "+result.Entry.Details.DisplayLabel()))
	case places.SubmitDuplicate:
		fmt.Fprintln(p.writer, WarningStyle.Render("Already in catalog: "+result.Entry.Details.DisplayLabel()))
	case places.SubmitNotFound:
		fmt.Fprintln(p.writer, ErrorStyle.Render(fmt.Sprintf("No matches found for %q. Try a different name.", query)))
	case places.SubmitPending:
		p.disambiguate(ctx, query, result.Candidates)
	}
}

// disambiguate shows the numbered alternatives and asks for a pick.
// An empty answer leaves the query pending for a later 'pick'.
func (p *Prompter) disambiguate(ctx context.Context, query string, candidates []places.Candidate) {
	fmt.Fprintln(p.writer, WarningStyle.Render(fmt.Sprintf("%q is ambiguous. Did you mean:", query)))

	for _, candidate := range candidates {
		fmt.Fprintf(p.writer, "  [%d] %s\n", candidate.Rank, candidate.DisplayLabel)
	}

	fmt.Fprintf(p.writer, "Pick 1-%d (enter to decide later): ", len(candidates))

	line, err := p.reader.ReadString('\n')
	if err != nil {
		return
	}

	line = strings.TrimSpace(line)
	if line == "" {
		fmt.Fprintln(p.writer, SubtleStyle.Render("Left pending; use 'pick "+query+"' to finish."))

		return
	}

	choice, err := strconv.Atoi(line)
	if err != nil || choice < 1 || choice > len(candidates) {
		fmt.Fprintln(p.writer, ErrorStyle.Render("Not a valid choice; left pending."))

		return
	}

	result, err := p.session.Choose(ctx, query, choice-1)
	if err != nil {
		fmt.Fprintln(p.writer, ErrorStyle.Render(fmt.Sprintf("Error confirming choice: %v", err)))

		return
	}

	p.report(ctx, query, result)
}

// bulk reads names until a blank line and submits them all, with a
// progress bar when stderr is a terminal.
func (p *Prompter) bulk(ctx context.Context) {
	fmt.Fprintln(p.writer, SubtleStyle.Render("Enter place names, one per line. Empty line submits."))

	var queries []string

	for {
		line, err := p.reader.ReadString('\n')
		if err != nil {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			break
		}

		queries = append(queries, line)
	}

	if len(queries) == 0 {
		return
	}

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(len(queries),
			progressbar.OptionSetDescription("Resolving"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	type pendingItem struct {
		query      string
		candidates []places.Candidate
	}

	var pendings []pendingItem

	for _, query := range queries {
		result, err := p.session.Submit(ctx, query)

		if bar != nil {
			_ = bar.Add(1)
		}

		if err != nil {
			fmt.Fprintln(p.writer, ErrorStyle.Render(fmt.Sprintf("Error resolving %q: %v", query, err)))

			continue
		}

		if result.Status == places.SubmitPending {
			pendings = append(pendings, pendingItem{query: query, candidates: result.Candidates})

			continue
		}

		p.report(ctx, query, result)
	}

	if bar != nil {
		_ = bar.Finish()
	}

	// Ambiguous queries are asked about after the bar is done, so the
	// prompts don't fight the progress output.
	for _, item := range pendings {
		p.disambiguate(ctx, item.query, item.candidates)
	}
}

func (p *Prompter) listPending() {
	queries := p.session.PendingQueries()
	if len(queries) == 0 {
		fmt.Fprintln(p.writer, SubtleStyle.Render("Nothing pending."))

		return
	}

	for _, query := range queries {
		fmt.Fprintf(p.writer, "  %s\n", query)
	}
}

func (p *Prompter) pick(ctx context.Context, query string) {
	if query == "" {
		fmt.Fprintln(p.writer, WarningStyle.Render("Usage: pick <query>"))

		return
	}

	candidates, ok := p.session.Pending(query)
	if !ok {
		fmt.Fprintln(p.writer, ErrorStyle.Render(fmt.Sprintf("No pending disambiguation for %q.", query)))

		return
	}

	p.disambiguate(ctx, query, candidates)
}

func (p *Prompter) review(ctx context.Context, argument string) {
	index, err := p.parseEntryIndex(argument)
	if err != nil {
		fmt.Fprintln(p.writer, WarningStyle.Render(err.Error()))

		return
	}

	entries := p.session.Entries()
	entry := entries[index]

	if len(entry.Candidates) < 2 {
		fmt.Fprintln(p.writer, SubtleStyle.Render("No alternatives were recorded for this entry."))

		return
	}

	fmt.Fprintln(p.writer, TitleStyle.Render(fmt.Sprintf("Alternatives for %q:", entry.Query)))

	for _, candidate := range entry.Candidates {
		marker := " "
		if candidate.ID == entry.SelectedID {
			marker = "*"
		}

		fmt.Fprintf(p.writer, " %s[%d] %s\n", marker, candidate.Rank, candidate.DisplayLabel)
	}

	fmt.Fprintf(p.writer, "Pick 1-%d (enter to keep current): ", len(entry.Candidates))

	line, readErr := p.reader.ReadString('\n')
	if readErr != nil {
		return
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	choice, err := strconv.Atoi(line)
	if err != nil || choice < 1 || choice > len(entry.Candidates) {
		fmt.Fprintln(p.writer, ErrorStyle.Render("Not a valid choice."))

		return
	}

	revised, err := p.session.Revise(ctx, index, choice-1)
	if err != nil {
		fmt.Fprintln(p.writer, ErrorStyle.Render(fmt.Sprintf("Error updating entry: %v", err)))

		return
	}

	fmt.Fprintln(p.writer, SuccessStyle.Render("Updated to: "+revised.Details.DisplayLabel()))
}

func (p *Prompter) remove(argument string) {
	index, err := p.parseEntryIndex(argument)
	if err != nil {
		fmt.Fprintln(p.writer, WarningStyle.Render(err.Error()))

		return
	}

	entry := p.session.Entries()[index]

	if err := p.session.Remove(index); err != nil {
		fmt.Fprintln(p.writer, ErrorStyle.Render(err.Error()))

		return
	}

	fmt.Fprintln(p.writer, SuccessStyle.Render("Removed: "+entry.Details.DisplayLabel()))
}

// parseEntryIndex parses the 1-based entry number users see in the
// table into a 0-based catalog index.
func (p *Prompter) parseEntryIndex(argument string) (int, error) {
	if argument == "" {
		return 0, fmt.Errorf("an entry number is required; see 'table'")
	}

	n, err := strconv.Atoi(argument)
	if err != nil {
		return 0, fmt.Errorf("%q is not an entry number", argument)
	}

	if n < 1 || n > p.session.Len() {
		return 0, fmt.Errorf("entry %d does not exist; catalog has %d entries", n, p.session.Len())
	}

	return n - 1, nil
}
