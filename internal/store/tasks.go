package store

import (
	"context"
	"fmt"

	"famboard/internal/gateway"
	"famboard/internal/validation"
)

// AddTask writes a new task through the gateway. The local task list is
// updated when the insert event arrives. assignedToMemberID may be
// empty for an unassigned task.
func (s *Store) AddTask(ctx context.Context, title, assignedToMemberID string) error {
	familyID := s.familyID()
	if familyID == "" {
		return nil
	}
	if err := validation.ValidateTaskTitle(title); err != nil {
		return err
	}

	t := gateway.NewTask{
		FamilyID: familyID,
		Title:    title,
	}
	if assignedToMemberID != "" {
		id := assignedToMemberID
		t.AssignedToMemberID = &id
	}

	if _, err := s.gw.InsertTask(ctx, t); err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}
	return nil
}

// ToggleTaskComplete flips a task's completion state optimistically
// and writes it through. Unknown ids are a no-op.
func (s *Store) ToggleTaskComplete(ctx context.Context, id string) error {
	if s.familyID() == "" {
		return nil
	}

	s.mu.Lock()
	i := s.taskIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	s.tasks[i].IsCompleted = !s.tasks[i].IsCompleted
	completed := s.tasks[i].IsCompleted
	s.mu.Unlock()

	if err := s.gw.UpdateTaskCompleted(ctx, id, completed); err != nil {
		return fmt.Errorf("failed to toggle task: %w", err)
	}
	return nil
}

// DeleteTask removes a task optimistically and writes the delete
// through. A later delete event for the same id is a no-op.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	if s.familyID() == "" {
		return nil
	}

	s.mu.Lock()
	if i := s.taskIndex(id); i >= 0 {
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	}
	s.mu.Unlock()

	if err := s.gw.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
