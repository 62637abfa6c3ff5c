package models

import "time"

// LogType classifies a timeline log entry
type LogType string

const (
	LogCustomButton  LogType = "custom_button"
	LogMessage       LogType = "message"
	LogTaskCompleted LogType = "task_completed"
)

// ValidLogType reports whether t is a known log type
func ValidLogType(t LogType) bool {
	switch t {
	case LogCustomButton, LogMessage, LogTaskCompleted:
		return true
	}
	return false
}

// Log is a timestamped activity record targeting one or more members.
// Logs are immutable once created. Target and creator references are
// checked at write time only; deleting a member later may leave dangling
// references in historical logs so that history survives member removal.
type Log struct {
	ID                string
	FamilyID          string
	Type              LogType
	CustomButtonID    string // set when Type is LogCustomButton
	Note              string
	PhotoURL          string
	TargetMemberIDs   []string
	CreatedByMemberID string
	CreatedAt         time.Time
}

// NewLog holds the caller-supplied fields for creating a log entry.
// PhotoURL may be an inline data: URL; the store uploads it to blob
// storage before the write-through.
type NewLog struct {
	Type              LogType
	CustomButtonID    string
	Note              string
	PhotoURL          string
	TargetMemberIDs   []string
	CreatedByMemberID string
}
