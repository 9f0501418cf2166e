// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"fmt"

	"github.com/avelardi/placebook/places/utils"
)

// CatalogEntry is a confirmed place together with its provenance: the
// query that produced it and the candidates offered during
// disambiguation, kept so the selection can be reopened later without
// re-querying the provider.
type CatalogEntry struct {
	// Query is the original free-text input.
	Query string `json:"query"`

	// Candidates are the alternatives offered for Query, provider order.
	Candidates []Candidate `json:"candidates"`

	// SelectedID is the identifier of the currently chosen candidate.
	SelectedID string `json:"selected_id"`

	// Details is the confirmed, detail-enriched place.
	Details *Details `json:"details"`
}

// Catalog is the ordered, deduplicated collection of confirmed places
// built during a session. Insertion order is display order. It is
// touched by a single actor per session, so no locking.
type Catalog struct {
	entries []CatalogEntry
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// dedupeKey folds name and address so that trivially re-cased or
// re-accented duplicates collapse to the same key.
func dedupeKey(d *Details) string {
	return fmt.Sprintf("%s\x00%s", utils.LowerASCIIFolding(d.Name), utils.LowerASCIIFolding(d.Address))
}

// Append adds an entry at the end. It returns false, without
// modifying the catalog, when an entry with the same (name, address)
// already exists. A duplicate is a user notice, not an error.
func (c *Catalog) Append(entry CatalogEntry) bool {
	key := dedupeKey(entry.Details)

	for i := range c.entries {
		if dedupeKey(c.entries[i].Details) == key {
			return false
		}
	}

	c.entries = append(c.entries, entry)

	return true
}

// ReplaceAt swaps the entry at index in place, preserving position.
func (c *Catalog) ReplaceAt(index int, entry CatalogEntry) error {
	if index < 0 || index >= len(c.entries) {
		return &IndexError{Index: index, Len: len(c.entries)}
	}

	c.entries[index] = entry

	return nil
}

// RemoveAt removes the entry at index, shifting later entries down.
func (c *Catalog) RemoveAt(index int) error {
	if index < 0 || index >= len(c.entries) {
		return &IndexError{Index: index, Len: len(c.entries)}
	}

	c.entries = append(c.entries[:index], c.entries[index+1:]...)

	return nil
}

// Clear empties the catalog unconditionally.
func (c *Catalog) Clear() {
	c.entries = nil
}

// Entries returns a snapshot of the catalog in display order.
func (c *Catalog) Entries() []CatalogEntry {
	snapshot := make([]CatalogEntry, len(c.entries))
	copy(snapshot, c.entries)

	return snapshot
}

// At returns the entry at index.
func (c *Catalog) At(index int) (*CatalogEntry, error) {
	if index < 0 || index >= len(c.entries) {
		return nil, &IndexError{Index: index, Len: len(c.entries)}
	}

	return &c.entries[index], nil
}

// Len reports the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}
