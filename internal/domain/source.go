package domain

import "strings"

// SourceID identifies an image source adapter.
type SourceID string

const (
	SourceGoogle    SourceID = "google"
	SourceBing      SourceID = "bing"
	SourceLOC       SourceID = "loc"
	SourceWikimedia SourceID = "wikimedia"
	SourceArchive   SourceID = "archive"
)

// KnownSources lists every source identifier in catalog order.
var KnownSources = []SourceID{
	SourceGoogle,
	SourceBing,
	SourceLOC,
	SourceWikimedia,
	SourceArchive,
}

var sourceNames = map[SourceID]string{
	SourceGoogle:    "Google Images",
	SourceBing:      "Bing Images",
	SourceLOC:       "Library of Congress",
	SourceWikimedia: "Wikimedia Commons",
	SourceArchive:   "Internet Archive",
}

// IsKnown reports whether id belongs to the static source catalog.
func (id SourceID) IsKnown() bool {
	_, ok := sourceNames[id]
	return ok
}

// IsArchival reports whether the source's whole catalog is historical material.
func (id SourceID) IsArchival() bool {
	return id == SourceLOC || id == SourceArchive
}

// DisplayName returns a human-readable name, or the raw identifier for unknown sources.
func (id SourceID) DisplayName() string {
	if name, ok := sourceNames[id]; ok {
		return name
	}
	return string(id)
}

// ParseSourceIDs splits a comma-separated list into source identifiers.
// Blank entries are skipped; unknown identifiers are kept so the caller decides how to treat them.
func ParseSourceIDs(csv string) []SourceID {
	var ids []SourceID
	for _, part := range strings.Split(csv, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		ids = append(ids, SourceID(part))
	}
	return ids
}
