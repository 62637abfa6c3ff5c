package store

import (
	"context"
	"errors"
	"fmt"

	"famboard/internal/gateway"
	"famboard/internal/models"
	"famboard/internal/validation"
)

// ErrMemberInUse is returned when a member cannot be deleted because
// other rows still reference it.
var ErrMemberInUse = errors.New("member still has related data")

// AddMember writes a new member profile through the gateway. The local
// member list is updated when the insert event arrives.
func (s *Store) AddMember(ctx context.Context, m models.NewMember) error {
	familyID := s.familyID()
	if familyID == "" {
		return nil
	}
	if err := validation.ValidateNewMember(m); err != nil {
		return err
	}

	p := gateway.NewProfile{
		FamilyID:   familyID,
		Name:       m.Name,
		Type:       string(m.Type),
		ThemeColor: m.ThemeColor,
		Status:     string(m.Status),
	}
	if p.Status == "" {
		p.Status = string(models.StatusHome)
	}
	if m.AvatarURL != "" {
		url := m.AvatarURL
		p.AvatarURL = &url
	}
	if m.AvatarStyle != "" {
		style := m.AvatarStyle
		p.AvatarStyle = &style
	}

	if _, err := s.gw.InsertProfile(ctx, p); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// UpdateMember writes member field changes through the gateway. Nil
// fields in u are left unchanged.
func (s *Store) UpdateMember(ctx context.Context, id string, u models.MemberUpdate) error {
	if s.familyID() == "" {
		return nil
	}
	if u.Name != nil {
		if err := validation.ValidateMemberName(*u.Name); err != nil {
			return err
		}
	}
	if u.Status != nil && !models.ValidMemberStatus(*u.Status) {
		return fmt.Errorf("invalid member status: %s", *u.Status)
	}

	pu := gateway.ProfileUpdate{
		Name:        u.Name,
		ThemeColor:  u.ThemeColor,
		AvatarURL:   u.AvatarURL,
		AvatarStyle: u.AvatarStyle,
	}
	if u.Status != nil {
		status := string(*u.Status)
		pu.Status = &status
	}

	if err := s.gw.UpdateProfile(ctx, id, pu); err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	return nil
}

// DeleteMember removes a member profile. When other rows still
// reference the member the error wraps ErrMemberInUse so callers can
// tell the difference from a plain write failure.
func (s *Store) DeleteMember(ctx context.Context, id string) error {
	if s.familyID() == "" {
		return nil
	}

	if err := s.gw.DeleteProfile(ctx, id); err != nil {
		if errors.Is(err, gateway.ErrForeignKey) {
			return fmt.Errorf("failed to delete member: %w", ErrMemberInUse)
		}
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}

// UpdateMemberStatus sets a member's presence status optimistically
// and writes it through. On write failure the optimistic change is
// kept; the change feed reconciles eventually.
func (s *Store) UpdateMemberStatus(ctx context.Context, id string, status models.MemberStatus) error {
	if s.familyID() == "" {
		return nil
	}
	if !models.ValidMemberStatus(status) {
		return fmt.Errorf("invalid member status: %s", status)
	}

	s.mu.Lock()
	if i := s.memberIndex(id); i >= 0 {
		s.members[i].Status = status
	}
	s.mu.Unlock()

	statusStr := string(status)
	if err := s.gw.UpdateProfile(ctx, id, gateway.ProfileUpdate{Status: &statusStr}); err != nil {
		return fmt.Errorf("failed to update member status: %w", err)
	}
	return nil
}
