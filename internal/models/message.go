package models

import "time"

// Message is a note posted on the shared board, optionally pinned.
// Multiple messages may be pinned at once; selection of "the" pinned
// message is a presentation concern.
type Message struct {
	ID                string
	FamilyID          string
	Content           string
	CreatedByMemberID string
	IsPinned          bool
	CreatedAt         time.Time

	// Pending marks an optimistic local insert that has not yet been
	// confirmed by a change event. Never persisted.
	Pending bool
}
