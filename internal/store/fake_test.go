package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"famboard/internal/gateway"
)

// fakeGateway is an in-memory Gateway publishing change events through
// a real bus, mirroring the write-then-publish behavior of the SQL
// implementation.
type fakeGateway struct {
	mu  sync.Mutex
	bus *gateway.Bus

	authProfile *gateway.ProfileRow

	family   *gateway.FamilyRow
	profiles []gateway.ProfileRow
	messages []gateway.MessageRow
	tasks    []gateway.TaskRow
	logs     []gateway.LogRow
	buttons  []gateway.ButtonRow

	familyErr        error
	insertMessageErr error
	updateProfileErr error
	deleteProfileErr error

	subscribeCalls int
	nextID         int
	clock          time.Time

	profileUpdates []recordedProfileUpdate
	taskToggles    []bool
}

type recordedProfileUpdate struct {
	id     string
	update gateway.ProfileUpdate
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		bus:   gateway.NewBus(),
		clock: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeGateway) genID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeGateway) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeGateway) ProfileByUserID(ctx context.Context, userID string) (*gateway.ProfileRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.authProfile == nil {
		return nil, nil
	}
	row := *f.authProfile
	return &row, nil
}

func (f *fakeGateway) FamilyByID(ctx context.Context, id string) (*gateway.FamilyRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.familyErr != nil {
		return nil, f.familyErr
	}
	if f.family == nil || f.family.ID != id {
		return nil, nil
	}
	row := *f.family
	return &row, nil
}

func (f *fakeGateway) ProfilesByFamily(ctx context.Context, familyID string) ([]gateway.ProfileRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]gateway.ProfileRow(nil), f.profiles...), nil
}

func (f *fakeGateway) MessagesByFamily(ctx context.Context, familyID string) ([]gateway.MessageRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]gateway.MessageRow(nil), f.messages...), nil
}

func (f *fakeGateway) TasksByFamily(ctx context.Context, familyID string) ([]gateway.TaskRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]gateway.TaskRow(nil), f.tasks...), nil
}

func (f *fakeGateway) LogsByFamily(ctx context.Context, familyID string) ([]gateway.LogRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]gateway.LogRow(nil), f.logs...), nil
}

func (f *fakeGateway) ButtonsByFamily(ctx context.Context, familyID string) ([]gateway.ButtonRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]gateway.ButtonRow(nil), f.buttons...), nil
}

func (f *fakeGateway) InsertFamily(ctx context.Context, name, inviteCode string) (*gateway.FamilyRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row := gateway.FamilyRow{ID: f.genID("fam"), Name: name, InviteCode: inviteCode, CreatedAt: f.tick()}
	f.family = &row
	out := row
	return &out, nil
}

func (f *fakeGateway) InsertProfile(ctx context.Context, p gateway.NewProfile) (*gateway.ProfileRow, error) {
	f.mu.Lock()
	row := gateway.ProfileRow{
		ID:          f.genID("p"),
		FamilyID:    p.FamilyID,
		UserID:      p.UserID,
		Name:        p.Name,
		Type:        p.Type,
		ThemeColor:  p.ThemeColor,
		AvatarURL:   p.AvatarURL,
		AvatarStyle: p.AvatarStyle,
		Status:      p.Status,
		IsAuthUser:  p.IsAuthUser,
		CreatedAt:   f.tick(),
	}
	f.profiles = append(f.profiles, row)
	if p.IsAuthUser {
		auth := row
		f.authProfile = &auth
	}
	f.mu.Unlock()

	f.bus.Publish(gateway.ChangeEvent{Table: gateway.TableProfiles, Kind: gateway.ChangeInsert, FamilyID: row.FamilyID, Profile: &row})
	return &row, nil
}

func (f *fakeGateway) UpdateProfile(ctx context.Context, id string, u gateway.ProfileUpdate) error {
	f.mu.Lock()
	if f.updateProfileErr != nil {
		f.mu.Unlock()
		return f.updateProfileErr
	}
	f.profileUpdates = append(f.profileUpdates, recordedProfileUpdate{id: id, update: u})

	var updated *gateway.ProfileRow
	for i := range f.profiles {
		if f.profiles[i].ID != id {
			continue
		}
		if u.Name != nil {
			f.profiles[i].Name = *u.Name
		}
		if u.ThemeColor != nil {
			f.profiles[i].ThemeColor = *u.ThemeColor
		}
		if u.AvatarURL != nil {
			f.profiles[i].AvatarURL = u.AvatarURL
		}
		if u.AvatarStyle != nil {
			f.profiles[i].AvatarStyle = u.AvatarStyle
		}
		if u.Status != nil {
			f.profiles[i].Status = *u.Status
		}
		if u.LastViewedTimelineAt != nil {
			f.profiles[i].LastViewedTimelineAt = u.LastViewedTimelineAt
		}
		if u.LastViewedMessagesAt != nil {
			f.profiles[i].LastViewedMessagesAt = u.LastViewedMessagesAt
		}
		row := f.profiles[i]
		updated = &row
		break
	}
	f.mu.Unlock()

	if updated != nil {
		f.bus.Publish(gateway.ChangeEvent{Table: gateway.TableProfiles, Kind: gateway.ChangeUpdate, FamilyID: updated.FamilyID, Profile: updated})
	}
	return nil
}

func (f *fakeGateway) DeleteProfile(ctx context.Context, id string) error {
	f.mu.Lock()
	if f.deleteProfileErr != nil {
		f.mu.Unlock()
		return f.deleteProfileErr
	}
	var familyID string
	for i := range f.profiles {
		if f.profiles[i].ID == id {
			familyID = f.profiles[i].FamilyID
			f.profiles = append(f.profiles[:i], f.profiles[i+1:]...)
			break
		}
	}
	f.mu.Unlock()

	if familyID != "" {
		f.bus.Publish(gateway.ChangeEvent{Table: gateway.TableProfiles, Kind: gateway.ChangeDelete, FamilyID: familyID, OldID: id})
	}
	return nil
}

func (f *fakeGateway) InsertMessage(ctx context.Context, m gateway.NewMessage) (*gateway.MessageRow, error) {
	f.mu.Lock()
	if f.insertMessageErr != nil {
		f.mu.Unlock()
		return nil, f.insertMessageErr
	}
	row := gateway.MessageRow{
		ID:                m.ID,
		FamilyID:          m.FamilyID,
		Content:           m.Content,
		CreatedByMemberID: m.CreatedByMemberID,
		IsPinned:          m.IsPinned,
		CreatedAt:         f.tick(),
	}
	f.messages = append([]gateway.MessageRow{row}, f.messages...)
	f.mu.Unlock()

	f.bus.Publish(gateway.ChangeEvent{Table: gateway.TableMessages, Kind: gateway.ChangeInsert, FamilyID: row.FamilyID, Message: &row})
	return &row, nil
}

func (f *fakeGateway) UpdateMessagePin(ctx context.Context, id string, pinned bool) error {
	f.mu.Lock()
	var updated *gateway.MessageRow
	for i := range f.messages {
		if f.messages[i].ID == id {
			f.messages[i].IsPinned = pinned
			row := f.messages[i]
			updated = &row
			break
		}
	}
	f.mu.Unlock()

	if updated != nil {
		f.bus.Publish(gateway.ChangeEvent{Table: gateway.TableMessages, Kind: gateway.ChangeUpdate, FamilyID: updated.FamilyID, Message: updated})
	}
	return nil
}

func (f *fakeGateway) DeleteMessage(ctx context.Context, id string) error {
	f.mu.Lock()
	var familyID string
	for i := range f.messages {
		if f.messages[i].ID == id {
			familyID = f.messages[i].FamilyID
			f.messages = append(f.messages[:i], f.messages[i+1:]...)
			break
		}
	}
	f.mu.Unlock()

	if familyID != "" {
		f.bus.Publish(gateway.ChangeEvent{Table: gateway.TableMessages, Kind: gateway.ChangeDelete, FamilyID: familyID, OldID: id})
	}
	return nil
}

func (f *fakeGateway) InsertTask(ctx context.Context, t gateway.NewTask) (*gateway.TaskRow, error) {
	f.mu.Lock()
	row := gateway.TaskRow{
		ID:                 f.genID("t"),
		FamilyID:           t.FamilyID,
		Title:              t.Title,
		AssignedToMemberID: t.AssignedToMemberID,
		CreatedAt:          f.tick(),
	}
	f.tasks = append([]gateway.TaskRow{row}, f.tasks...)
	f.mu.Unlock()

	f.bus.Publish(gateway.ChangeEvent{Table: gateway.TableTasks, Kind: gateway.ChangeInsert, FamilyID: row.FamilyID, Task: &row})
	return &row, nil
}

func (f *fakeGateway) UpdateTaskCompleted(ctx context.Context, id string, completed bool) error {
	f.mu.Lock()
	f.taskToggles = append(f.taskToggles, completed)
	var updated *gateway.TaskRow
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].IsCompleted = completed
			row := f.tasks[i]
			updated = &row
			break
		}
	}
	f.mu.Unlock()

	if updated != nil {
		f.bus.Publish(gateway.ChangeEvent{Table: gateway.TableTasks, Kind: gateway.ChangeUpdate, FamilyID: updated.FamilyID, Task: updated})
	}
	return nil
}

func (f *fakeGateway) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	var familyID string
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			familyID = f.tasks[i].FamilyID
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			break
		}
	}
	f.mu.Unlock()

	if familyID != "" {
		f.bus.Publish(gateway.ChangeEvent{Table: gateway.TableTasks, Kind: gateway.ChangeDelete, FamilyID: familyID, OldID: id})
	}
	return nil
}

func (f *fakeGateway) InsertLog(ctx context.Context, l gateway.NewLog) (*gateway.LogRow, error) {
	f.mu.Lock()
	row := gateway.LogRow{
		ID:                f.genID("l"),
		FamilyID:          l.FamilyID,
		Type:              l.Type,
		CustomButtonID:    l.CustomButtonID,
		Note:              l.Note,
		PhotoURL:          l.PhotoURL,
		TargetMemberIDs:   append([]string(nil), l.TargetMemberIDs...),
		CreatedByMemberID: l.CreatedByMemberID,
		CreatedAt:         f.tick(),
	}
	f.logs = append([]gateway.LogRow{row}, f.logs...)
	f.mu.Unlock()

	f.bus.Publish(gateway.ChangeEvent{Table: gateway.TableLogs, Kind: gateway.ChangeInsert, FamilyID: row.FamilyID, Log: &row})
	return &row, nil
}

func (f *fakeGateway) DeleteLog(ctx context.Context, id string) error {
	f.mu.Lock()
	var familyID string
	for i := range f.logs {
		if f.logs[i].ID == id {
			familyID = f.logs[i].FamilyID
			f.logs = append(f.logs[:i], f.logs[i+1:]...)
			break
		}
	}
	f.mu.Unlock()

	if familyID != "" {
		f.bus.Publish(gateway.ChangeEvent{Table: gateway.TableLogs, Kind: gateway.ChangeDelete, FamilyID: familyID, OldID: id})
	}
	return nil
}

func (f *fakeGateway) InsertButton(ctx context.Context, b gateway.NewButton) (*gateway.ButtonRow, error) {
	f.mu.Lock()
	row := gateway.ButtonRow{ID: f.genID("b"), FamilyID: b.FamilyID, Label: b.Label, Icon: b.Icon}
	f.buttons = append(f.buttons, row)
	f.mu.Unlock()

	f.bus.Publish(gateway.ChangeEvent{Table: gateway.TableButtons, Kind: gateway.ChangeInsert, FamilyID: row.FamilyID, Button: &row})
	return &row, nil
}

func (f *fakeGateway) Subscribe(familyID string) (*gateway.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribeCalls++
	return f.bus.Subscribe(familyID), nil
}
