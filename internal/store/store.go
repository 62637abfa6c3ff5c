// Package store holds the in-memory synchronized mirror of one
// family's data. All reads are served from memory; mutations write
// through the gateway and the change feed reconciles state, so every
// consumer of the store converges on what the gateway holds.
package store

import (
	"sync"
	"time"

	"famboard/internal/blob"
	"famboard/internal/gateway"
	"famboard/internal/models"
)

// defaultPhotoMaxSize caps decoded inline photos at 5MB
const defaultPhotoMaxSize = 5 * 1024 * 1024

// Store is the synchronized state container. One instance mirrors at
// most one family at a time. All state transitions happen under mu,
// including those applied by the change-feed goroutine, so callers
// observe each transition atomically.
type Store struct {
	gw           gateway.Gateway
	blobs        blob.Store
	now          func() time.Time
	photoMaxSize int64

	mu            sync.Mutex
	family        *models.Family
	members       []models.Member
	messages      []models.Message
	tasks         []models.Task
	logs          []models.Log
	customButtons []models.CustomButton

	authMemberID string

	unreadTimelineCount int
	unreadMessagesCount int

	isLoading   bool
	isOnboarded bool

	sub       *gateway.Subscription
	subFamily string
}

// New creates a store backed by the given gateway. blobs may be nil;
// log photo uploads then degrade to no photo.
func New(gw gateway.Gateway, blobs blob.Store) *Store {
	return &Store{
		gw:           gw,
		blobs:        blobs,
		now:          func() time.Time { return time.Now().UTC() },
		photoMaxSize: defaultPhotoMaxSize,
	}
}

// SetPhotoMaxSize changes the size cap for decoded inline photos
func (s *Store) SetPhotoMaxSize(n int64) {
	if n > 0 {
		s.photoMaxSize = n
	}
}

// Family returns a copy of the loaded family, or nil when none is loaded
func (s *Store) Family() *models.Family {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.family == nil {
		return nil
	}
	f := *s.family
	return &f
}

// Members returns a copy of the member list
func (s *Store) Members() []models.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Member(nil), s.members...)
}

// Messages returns a copy of the message list, newest first
func (s *Store) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Message(nil), s.messages...)
}

// Tasks returns a copy of the task list, newest first
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Task(nil), s.tasks...)
}

// Logs returns a copy of the log list, newest first
func (s *Store) Logs() []models.Log {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Log(nil), s.logs...)
}

// CustomButtons returns a copy of the custom button list
func (s *Store) CustomButtons() []models.CustomButton {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CustomButton(nil), s.customButtons...)
}

// UnreadTimelineCount returns the number of timeline entries newer than
// the auth member's timeline cursor
func (s *Store) UnreadTimelineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unreadTimelineCount
}

// UnreadMessagesCount returns the number of messages newer than the
// auth member's messages cursor
func (s *Store) UnreadMessagesCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unreadMessagesCount
}

// IsLoading reports whether a bootstrap fetch is in flight
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

// IsOnboarded reports whether a family is loaded for the current user
func (s *Store) IsOnboarded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOnboarded
}

// MemberByID returns the member with the given id
func (s *Store) MemberByID(id string) (models.Member, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.memberIndex(id); i >= 0 {
		return s.members[i], true
	}
	return models.Member{}, false
}

// AuthMember returns the member profile bound to the signed-in user
func (s *Store) AuthMember() (models.Member, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.memberIndex(s.authMemberID); i >= 0 {
		return s.members[i], true
	}
	return models.Member{}, false
}

// AdultMembers returns the adult members of the family
func (s *Store) AdultMembers() []models.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	var adults []models.Member
	for _, m := range s.members {
		if m.IsAdult() {
			adults = append(adults, m)
		}
	}
	return adults
}

// PinnedMessage returns the first pinned message in board order
func (s *Store) PinnedMessage() (models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages {
		if m.IsPinned {
			return m, true
		}
	}
	return models.Message{}, false
}

// IncompleteTasks returns the tasks not yet completed, newest first
func (s *Store) IncompleteTasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var open []models.Task
	for _, t := range s.tasks {
		if !t.IsCompleted {
			open = append(open, t)
		}
	}
	return open
}

// Snapshot is a consistent copy of the whole store state
type Snapshot struct {
	Family              *models.Family        `json:"family"`
	Members             []models.Member       `json:"members"`
	Messages            []models.Message      `json:"messages"`
	Tasks               []models.Task         `json:"tasks"`
	Logs                []models.Log          `json:"logs"`
	CustomButtons       []models.CustomButton `json:"customButtons"`
	UnreadTimelineCount int                   `json:"unreadTimelineCount"`
	UnreadMessagesCount int                   `json:"unreadMessagesCount"`
	IsLoading           bool                  `json:"isLoading"`
	IsOnboarded         bool                  `json:"isOnboarded"`
}

// Snapshot returns a copy of all store state taken under one lock hold
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Members:             append([]models.Member(nil), s.members...),
		Messages:            append([]models.Message(nil), s.messages...),
		Tasks:               append([]models.Task(nil), s.tasks...),
		Logs:                append([]models.Log(nil), s.logs...),
		CustomButtons:       append([]models.CustomButton(nil), s.customButtons...),
		UnreadTimelineCount: s.unreadTimelineCount,
		UnreadMessagesCount: s.unreadMessagesCount,
		IsLoading:           s.isLoading,
		IsOnboarded:         s.isOnboarded,
	}
	if s.family != nil {
		f := *s.family
		snap.Family = &f
	}
	return snap
}

// familyID returns the loaded family id, or "" when none is loaded
func (s *Store) familyID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.family == nil {
		return ""
	}
	return s.family.ID
}

// memberIndex returns the index of a member by id, or -1. Caller holds mu.
func (s *Store) memberIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.members {
		if s.members[i].ID == id {
			return i
		}
	}
	return -1
}

// messageIndex returns the index of a message by id, or -1. Caller holds mu.
func (s *Store) messageIndex(id string) int {
	for i := range s.messages {
		if s.messages[i].ID == id {
			return i
		}
	}
	return -1
}

// taskIndex returns the index of a task by id, or -1. Caller holds mu.
func (s *Store) taskIndex(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// logIndex returns the index of a log by id, or -1. Caller holds mu.
func (s *Store) logIndex(id string) int {
	for i := range s.logs {
		if s.logs[i].ID == id {
			return i
		}
	}
	return -1
}

// buttonIndex returns the index of a button by id, or -1. Caller holds mu.
func (s *Store) buttonIndex(id string) int {
	for i := range s.customButtons {
		if s.customButtons[i].ID == id {
			return i
		}
	}
	return -1
}
