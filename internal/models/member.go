package models

import "time"

// MemberType classifies a family member
type MemberType string

const (
	MemberAdult MemberType = "adult"
	MemberChild MemberType = "child"
	MemberPet   MemberType = "pet"
	MemberOther MemberType = "other"
)

// ValidMemberType reports whether t is a known member type
func ValidMemberType(t MemberType) bool {
	switch t {
	case MemberAdult, MemberChild, MemberPet, MemberOther:
		return true
	}
	return false
}

// MemberStatus is a member's current presence status
type MemberStatus string

const (
	StatusHome       MemberStatus = "home"
	StatusWorking    MemberStatus = "working"
	StatusComingHome MemberStatus = "coming_home"
	StatusOut        MemberStatus = "out"
)

// ValidMemberStatus reports whether s is a known presence status
func ValidMemberStatus(s MemberStatus) bool {
	switch s {
	case StatusHome, StatusWorking, StatusComingHome, StatusOut:
		return true
	}
	return false
}

// Member represents a person or pet belonging to a family. At most one
// member per family has IsAuthUser set — the profile bound to the
// signed-in principal, used for read cursors and unread counts.
type Member struct {
	ID          string
	Name        string
	Type        MemberType
	ThemeColor  string
	AvatarIcon  string // fallback glyph when no avatar image is set
	AvatarURL   string
	AvatarStyle string
	Status      MemberStatus
	IsAuthUser  bool

	// Read cursors, monotonically non-decreasing. Nil means never viewed.
	LastViewedTimelineAt *time.Time
	LastViewedMessagesAt *time.Time
}

// IsAdult reports whether the member is an adult
func (m *Member) IsAdult() bool {
	return m.Type == MemberAdult
}

// NewMember holds the caller-supplied fields for creating a member profile
type NewMember struct {
	Name        string
	Type        MemberType
	ThemeColor  string
	AvatarURL   string
	AvatarStyle string
	Status      MemberStatus
}

// MemberUpdate holds the mutable member fields for an update operation.
// Nil pointers leave the corresponding field unchanged.
type MemberUpdate struct {
	Name        *string
	ThemeColor  *string
	AvatarURL   *string
	AvatarStyle *string
	Status      *MemberStatus
}
