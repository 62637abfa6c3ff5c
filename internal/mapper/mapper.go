// Package mapper decodes gateway row shapes into in-memory entities.
// Decoders are pure and total over well-formed rows; unknown enum
// values are reported as errors rather than propagated silently.
package mapper

import (
	"fmt"
	"time"

	"famboard/internal/gateway"
	"famboard/internal/models"
)

// Family decodes a family row
func Family(row gateway.FamilyRow) models.Family {
	return models.Family{
		ID:         row.ID,
		Name:       row.Name,
		InviteCode: row.InviteCode,
	}
}

// Member decodes a profile row into a member entity
func Member(row gateway.ProfileRow) (models.Member, error) {
	memberType := models.MemberType(row.Type)
	if !models.ValidMemberType(memberType) {
		return models.Member{}, fmt.Errorf("profile %s: unknown member type %q", row.ID, row.Type)
	}

	status := models.MemberStatus(row.Status)
	if !models.ValidMemberStatus(status) {
		return models.Member{}, fmt.Errorf("profile %s: unknown member status %q", row.ID, row.Status)
	}

	m := models.Member{
		ID:                   row.ID,
		Name:                 row.Name,
		Type:                 memberType,
		ThemeColor:           row.ThemeColor,
		AvatarIcon:           models.FallbackAvatarIcon,
		Status:               status,
		IsAuthUser:           row.IsAuthUser,
		LastViewedTimelineAt: cloneTime(row.LastViewedTimelineAt),
		LastViewedMessagesAt: cloneTime(row.LastViewedMessagesAt),
	}
	if row.AvatarURL != nil {
		m.AvatarURL = *row.AvatarURL
	}
	if row.AvatarStyle != nil {
		m.AvatarStyle = *row.AvatarStyle
	}
	return m, nil
}

// Members decodes a slice of profile rows
func Members(rows []gateway.ProfileRow) ([]models.Member, error) {
	members := make([]models.Member, 0, len(rows))
	for _, row := range rows {
		m, err := Member(row)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

// Message decodes a message row
func Message(row gateway.MessageRow) models.Message {
	return models.Message{
		ID:                row.ID,
		FamilyID:          row.FamilyID,
		Content:           row.Content,
		CreatedByMemberID: row.CreatedByMemberID,
		IsPinned:          row.IsPinned,
		CreatedAt:         row.CreatedAt,
	}
}

// Messages decodes a slice of message rows
func Messages(rows []gateway.MessageRow) []models.Message {
	messages := make([]models.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, Message(row))
	}
	return messages
}

// Task decodes a task row
func Task(row gateway.TaskRow) models.Task {
	t := models.Task{
		ID:          row.ID,
		FamilyID:    row.FamilyID,
		Title:       row.Title,
		IsCompleted: row.IsCompleted,
		CreatedAt:   row.CreatedAt,
	}
	if row.AssignedToMemberID != nil {
		t.AssignedToMemberID = *row.AssignedToMemberID
	}
	return t
}

// Tasks decodes a slice of task rows
func Tasks(rows []gateway.TaskRow) []models.Task {
	tasks := make([]models.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, Task(row))
	}
	return tasks
}

// Log decodes a log row into a log entity
func Log(row gateway.LogRow) (models.Log, error) {
	logType := models.LogType(row.Type)
	if !models.ValidLogType(logType) {
		return models.Log{}, fmt.Errorf("log %s: unknown log type %q", row.ID, row.Type)
	}

	l := models.Log{
		ID:                row.ID,
		FamilyID:          row.FamilyID,
		Type:              logType,
		TargetMemberIDs:   append([]string(nil), row.TargetMemberIDs...),
		CreatedByMemberID: row.CreatedByMemberID,
		CreatedAt:         row.CreatedAt,
	}
	if l.TargetMemberIDs == nil {
		l.TargetMemberIDs = []string{}
	}
	if row.CustomButtonID != nil {
		l.CustomButtonID = *row.CustomButtonID
	}
	if row.Note != nil {
		l.Note = *row.Note
	}
	if row.PhotoURL != nil {
		l.PhotoURL = *row.PhotoURL
	}
	return l, nil
}

// Logs decodes a slice of log rows
func Logs(rows []gateway.LogRow) ([]models.Log, error) {
	logs := make([]models.Log, 0, len(rows))
	for _, row := range rows {
		l, err := Log(row)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, nil
}

// Button decodes a custom button row
func Button(row gateway.ButtonRow) models.CustomButton {
	return models.CustomButton{
		ID:       row.ID,
		FamilyID: row.FamilyID,
		Label:    row.Label,
		Icon:     row.Icon,
	}
}

// Buttons decodes a slice of custom button rows
func Buttons(rows []gateway.ButtonRow) []models.CustomButton {
	buttons := make([]models.CustomButton, 0, len(rows))
	for _, row := range rows {
		buttons = append(buttons, Button(row))
	}
	return buttons
}

// cloneTime copies a nullable timestamp so entities never alias row memory
func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
