// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"strings"
	"unicode/utf8"
)

// maxQueryLength bounds a single free-text query. Anything longer is
// pasted garbage, not an address.
const maxQueryLength = 500

// sanitizeQuery trims and bounds a free-text query. An empty query
// after trimming is caller misuse, reported as an invalid request.
func sanitizeQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", &ResolveError{
			Kind:    ErrorKindInvalidRequest,
			Message: "empty query",
		}
	}

	if len(query) > maxQueryLength {
		// Cut on a rune boundary so the provider never sees broken
		// UTF-8.
		cut := maxQueryLength
		for cut > 0 && !utf8.RuneStart(query[cut]) {
			cut--
		}

		query = query[:cut]
	}

	return query, nil
}

// SplitQueries splits bulk text-area input into individual trimmed
// queries, one per line, skipping blanks.
func SplitQueries(input string) []string {
	var queries []string

	for line := range strings.SplitSeq(input, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			queries = append(queries, line)
		}
	}

	return queries
}
