package models

import "time"

// Task is a shared to-do item, optionally assigned to a member
type Task struct {
	ID                 string
	FamilyID           string
	Title              string
	AssignedToMemberID string // empty when unassigned
	IsCompleted        bool
	CreatedAt          time.Time
}
