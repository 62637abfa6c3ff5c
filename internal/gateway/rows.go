package gateway

import "time"

// Row types mirror the gateway's relational schema: snake_case columns,
// nullable columns as pointers. The mapper package decodes them into
// in-memory entities.

// FamilyRow is a row of the families table
type FamilyRow struct {
	ID         string
	Name       string
	InviteCode string
	CreatedAt  time.Time
}

// ProfileRow is a row of the profiles table
type ProfileRow struct {
	ID                   string
	FamilyID             string
	UserID               *string
	Name                 string
	Type                 string
	ThemeColor           string
	AvatarURL            *string
	AvatarStyle          *string
	Status               string
	IsAuthUser           bool
	LastViewedTimelineAt *time.Time
	LastViewedMessagesAt *time.Time
	CreatedAt            time.Time
}

// MessageRow is a row of the messages table
type MessageRow struct {
	ID                string
	FamilyID          string
	Content           string
	CreatedByMemberID string
	IsPinned          bool
	CreatedAt         time.Time
}

// TaskRow is a row of the tasks table
type TaskRow struct {
	ID                 string
	FamilyID           string
	Title              string
	AssignedToMemberID *string
	IsCompleted        bool
	CreatedAt          time.Time
}

// LogRow is a row of the logs table. TargetMemberIDs is persisted as a
// JSON array column.
type LogRow struct {
	ID                string
	FamilyID          string
	Type              string
	CustomButtonID    *string
	Note              *string
	PhotoURL          *string
	TargetMemberIDs   []string
	CreatedByMemberID string
	CreatedAt         time.Time
}

// ButtonRow is a row of the custom_buttons table
type ButtonRow struct {
	ID       string
	FamilyID string
	Label    string
	Icon     string
}

// NewProfile holds the columns for a profile insert
type NewProfile struct {
	FamilyID    string
	UserID      *string
	Name        string
	Type        string
	ThemeColor  string
	AvatarURL   *string
	AvatarStyle *string
	Status      string
	IsAuthUser  bool
}

// ProfileUpdate holds the columns for a profile update. Nil pointers
// leave the corresponding column untouched.
type ProfileUpdate struct {
	Name                 *string
	ThemeColor           *string
	AvatarURL            *string
	AvatarStyle          *string
	Status               *string
	LastViewedTimelineAt *time.Time
	LastViewedMessagesAt *time.Time
}

// NewMessage holds the columns for a message insert. ID is assigned by
// the caller (optimistic client-side identifier).
type NewMessage struct {
	ID                string
	FamilyID          string
	Content           string
	CreatedByMemberID string
	IsPinned          bool
}

// NewTask holds the columns for a task insert
type NewTask struct {
	FamilyID           string
	Title              string
	AssignedToMemberID *string
}

// NewLog holds the columns for a log insert
type NewLog struct {
	FamilyID          string
	Type              string
	CustomButtonID    *string
	Note              *string
	PhotoURL          *string
	TargetMemberIDs   []string
	CreatedByMemberID string
}

// NewButton holds the columns for a custom button insert
type NewButton struct {
	FamilyID string
	Label    string
	Icon     string
}
