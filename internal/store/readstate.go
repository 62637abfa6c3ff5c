package store

import (
	"context"
	"fmt"

	"famboard/internal/gateway"
)

// MarkTimelineAsRead advances the auth member's timeline cursor to now
// and zeroes the unread count. The same captured timestamp is set
// locally and written through, so local and remote cursors agree.
func (s *Store) MarkTimelineAsRead(ctx context.Context) error {
	s.mu.Lock()
	i := s.memberIndex(s.authMemberID)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	now := s.now()
	s.members[i].LastViewedTimelineAt = &now
	s.unreadTimelineCount = 0
	id := s.authMemberID
	s.mu.Unlock()

	if err := s.gw.UpdateProfile(ctx, id, gateway.ProfileUpdate{LastViewedTimelineAt: &now}); err != nil {
		return fmt.Errorf("failed to mark timeline as read: %w", err)
	}
	return nil
}

// MarkMessagesAsRead advances the auth member's messages cursor to now
// and zeroes the unread count, with the same single-timestamp contract
// as MarkTimelineAsRead.
func (s *Store) MarkMessagesAsRead(ctx context.Context) error {
	s.mu.Lock()
	i := s.memberIndex(s.authMemberID)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	now := s.now()
	s.members[i].LastViewedMessagesAt = &now
	s.unreadMessagesCount = 0
	id := s.authMemberID
	s.mu.Unlock()

	if err := s.gw.UpdateProfile(ctx, id, gateway.ProfileUpdate{LastViewedMessagesAt: &now}); err != nil {
		return fmt.Errorf("failed to mark messages as read: %w", err)
	}
	return nil
}
