package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"famboard/internal/gateway"
	"famboard/internal/models"
	"famboard/internal/validation"
)

// AddMessage posts a message to the board. The message appears locally
// at once, marked pending, under a client-generated id; the insert
// event confirms it and clears the flag. A failed write removes the
// pending entry again.
func (s *Store) AddMessage(ctx context.Context, content, createdByMemberID string, pinned bool) error {
	familyID := s.familyID()
	if familyID == "" {
		return nil
	}
	if err := validation.ValidateMessageContent(content); err != nil {
		return err
	}
	if createdByMemberID == "" {
		return fmt.Errorf("message creator is required")
	}

	id := uuid.NewString()

	s.mu.Lock()
	s.messages = append([]models.Message{{
		ID:                id,
		FamilyID:          familyID,
		Content:           content,
		CreatedByMemberID: createdByMemberID,
		IsPinned:          pinned,
		CreatedAt:         s.now(),
		Pending:           true,
	}}, s.messages...)
	s.mu.Unlock()

	_, err := s.gw.InsertMessage(ctx, gateway.NewMessage{
		ID:                id,
		FamilyID:          familyID,
		Content:           content,
		CreatedByMemberID: createdByMemberID,
		IsPinned:          pinned,
	})
	if err != nil {
		s.mu.Lock()
		if i := s.messageIndex(id); i >= 0 && s.messages[i].Pending {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
		}
		s.mu.Unlock()
		return fmt.Errorf("failed to add message: %w", err)
	}
	return nil
}

// ToggleMessagePin flips a message's pinned flag optimistically and
// writes it through. Unknown ids are a no-op.
func (s *Store) ToggleMessagePin(ctx context.Context, id string) error {
	if s.familyID() == "" {
		return nil
	}

	s.mu.Lock()
	i := s.messageIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	s.messages[i].IsPinned = !s.messages[i].IsPinned
	pinned := s.messages[i].IsPinned
	s.mu.Unlock()

	if err := s.gw.UpdateMessagePin(ctx, id, pinned); err != nil {
		return fmt.Errorf("failed to toggle message pin: %w", err)
	}
	return nil
}

// DeleteMessage removes a message optimistically and writes the delete
// through. A later delete event for the same id is a no-op.
func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	if s.familyID() == "" {
		return nil
	}

	s.mu.Lock()
	if i := s.messageIndex(id); i >= 0 {
		s.messages = append(s.messages[:i], s.messages[i+1:]...)
	}
	s.mu.Unlock()

	if err := s.gw.DeleteMessage(ctx, id); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}
