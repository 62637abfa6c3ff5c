package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"famboard/internal/gateway"
	"famboard/internal/mapper"
	"famboard/internal/models"
	"famboard/internal/security"
	"famboard/internal/validation"
)

// LoadForUser bootstraps the store for the signed-in user: resolve the
// user's profile, fetch the family snapshot wholesale, compute unread
// counts and subscribe to the change feed. A missing profile or a
// profile without a family leaves the store in the unonboarded empty
// state. Fetch failures are logged and leave the store empty; the
// caller is not expected to retry on its own.
func (s *Store) LoadForUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	s.isLoading = true
	s.mu.Unlock()

	profile, err := s.gw.ProfileByUserID(ctx, userID)
	if err != nil {
		log.Printf("Bootstrap failed: profile lookup for user %s: %v", userID, err)
		s.resetLocked()
		return nil
	}
	if profile == nil || profile.FamilyID == "" {
		s.resetLocked()
		return nil
	}

	familyID := profile.FamilyID
	familyRow, err := s.gw.FamilyByID(ctx, familyID)
	if err != nil || familyRow == nil {
		log.Printf("Bootstrap failed: family %s: %v", familyID, err)
		s.resetLocked()
		return nil
	}

	profileRows, err := s.gw.ProfilesByFamily(ctx, familyID)
	if err != nil {
		log.Printf("Bootstrap failed: profiles for family %s: %v", familyID, err)
		s.resetLocked()
		return nil
	}
	logRows, err := s.gw.LogsByFamily(ctx, familyID)
	if err != nil {
		log.Printf("Bootstrap failed: logs for family %s: %v", familyID, err)
		s.resetLocked()
		return nil
	}
	taskRows, err := s.gw.TasksByFamily(ctx, familyID)
	if err != nil {
		log.Printf("Bootstrap failed: tasks for family %s: %v", familyID, err)
		s.resetLocked()
		return nil
	}
	messageRows, err := s.gw.MessagesByFamily(ctx, familyID)
	if err != nil {
		log.Printf("Bootstrap failed: messages for family %s: %v", familyID, err)
		s.resetLocked()
		return nil
	}
	buttonRows, err := s.gw.ButtonsByFamily(ctx, familyID)
	if err != nil {
		log.Printf("Bootstrap failed: buttons for family %s: %v", familyID, err)
		s.resetLocked()
		return nil
	}

	family := mapper.Family(*familyRow)
	members, err := mapper.Members(profileRows)
	if err != nil {
		log.Printf("Bootstrap failed: decoding profiles for family %s: %v", familyID, err)
		s.resetLocked()
		return nil
	}
	logs, err := mapper.Logs(logRows)
	if err != nil {
		log.Printf("Bootstrap failed: decoding logs for family %s: %v", familyID, err)
		s.resetLocked()
		return nil
	}
	tasks := mapper.Tasks(taskRows)
	messages := mapper.Messages(messageRows)
	buttons := mapper.Buttons(buttonRows)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.family = &family
	s.members = members
	s.logs = logs
	s.tasks = tasks
	s.messages = messages
	s.customButtons = buttons
	s.authMemberID = profile.ID
	s.isOnboarded = true
	s.isLoading = false

	s.unreadTimelineCount, s.unreadMessagesCount = s.computeUnreadLocked()

	if err := s.subscribeLocked(familyID); err != nil {
		log.Printf("Failed to subscribe to changes for family %s: %v", familyID, err)
	}
	return nil
}

// CreateFamily creates a family with its initial member profiles, seeds
// the default custom buttons, then bootstraps the store. The first
// member becomes the signed-in user's own profile.
func (s *Store) CreateFamily(ctx context.Context, userID, name string, members []models.NewMember) error {
	if err := validation.ValidateFamilyName(name); err != nil {
		return err
	}
	if len(members) == 0 {
		return fmt.Errorf("family needs at least one member")
	}
	for _, m := range members {
		if err := validation.ValidateNewMember(m); err != nil {
			return err
		}
	}

	inviteCode, err := security.GenerateInviteCode()
	if err != nil {
		return fmt.Errorf("failed to create family: %w", err)
	}

	familyRow, err := s.gw.InsertFamily(ctx, name, inviteCode)
	if err != nil {
		return fmt.Errorf("failed to create family: %w", err)
	}

	for i, m := range members {
		p := gateway.NewProfile{
			FamilyID:   familyRow.ID,
			Name:       m.Name,
			Type:       string(m.Type),
			ThemeColor: m.ThemeColor,
			Status:     string(m.Status),
			IsAuthUser: i == 0,
		}
		if p.ThemeColor == "" {
			p.ThemeColor = models.MemberColors[i%len(models.MemberColors)]
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
		if i == 0 {
			uid := userID
			p.UserID = &uid
		}
		if _, err := s.gw.InsertProfile(ctx, p); err != nil {
			return fmt.Errorf("failed to create member %s: %w", m.Name, err)
		}
	}

	for _, b := range models.DefaultButtons {
		_, err := s.gw.InsertButton(ctx, gateway.NewButton{
			FamilyID: familyRow.ID,
			Label:    b.Label,
			Icon:     b.Icon,
		})
		if err != nil {
			return fmt.Errorf("failed to seed default buttons: %w", err)
		}
	}

	return s.LoadForUser(ctx, userID)
}

// Reset tears down the subscription and clears all state, returning the
// store to its initial empty shape. Used on sign-out.
func (s *Store) Reset() {
	s.resetLocked()
}

// resetLocked acquires mu, unsubscribes and clears everything
func (s *Store) resetLocked() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sub != nil {
		s.sub.Close()
		s.sub = nil
		s.subFamily = ""
	}

	s.family = nil
	s.members = nil
	s.messages = nil
	s.tasks = nil
	s.logs = nil
	s.customButtons = nil
	s.authMemberID = ""
	s.unreadTimelineCount = 0
	s.unreadMessagesCount = 0
	s.isOnboarded = false
	s.isLoading = false
}

// subscribeLocked ensures exactly one live subscription for familyID.
// Re-bootstrapping the same family keeps the existing feed. Caller
// holds mu.
func (s *Store) subscribeLocked(familyID string) error {
	if s.sub != nil && s.subFamily == familyID {
		return nil
	}
	if s.sub != nil {
		s.sub.Close()
		s.sub = nil
		s.subFamily = ""
	}

	sub, err := s.gw.Subscribe(familyID)
	if err != nil {
		return err
	}
	s.sub = sub
	s.subFamily = familyID
	go s.drain(sub)
	return nil
}

// computeUnreadLocked counts entries newer than the auth member's read
// cursors. An absent cursor counts everything. Caller holds mu.
func (s *Store) computeUnreadLocked() (timeline, messages int) {
	i := s.memberIndex(s.authMemberID)
	if i < 0 {
		return 0, 0
	}
	auth := s.members[i]

	epoch := time.Time{}
	timelineCursor := epoch
	if auth.LastViewedTimelineAt != nil {
		timelineCursor = *auth.LastViewedTimelineAt
	}
	messagesCursor := epoch
	if auth.LastViewedMessagesAt != nil {
		messagesCursor = *auth.LastViewedMessagesAt
	}

	for _, l := range s.logs {
		if l.CreatedAt.After(timelineCursor) {
			timeline++
		}
	}
	for _, m := range s.messages {
		if m.CreatedAt.After(messagesCursor) {
			messages++
		}
	}
	return timeline, messages
}
