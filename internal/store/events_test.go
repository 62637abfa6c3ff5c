package store

import (
	"context"
	"testing"
	"time"

	"famboard/internal/gateway"
	"famboard/internal/models"
)

// barrier publishes a throwaway button insert and waits for it, which
// guarantees all previously published events have been applied.
func barrier(t *testing.T, s *Store, f *fakeGateway, id string) {
	t.Helper()
	f.bus.Publish(gateway.ChangeEvent{
		Table: gateway.TableButtons, Kind: gateway.ChangeInsert, FamilyID: "fam1",
		Button: &gateway.ButtonRow{ID: id, FamilyID: "fam1", Label: "barrier", Icon: "Dot"},
	})
	waitFor(t, func() bool {
		for _, b := range s.CustomButtons() {
			if b.ID == id {
				return true
			}
		}
		return false
	})
}

func TestMemberInsertAppendsAndDedups(t *testing.T) {
	f := newFakeGateway()
	seedFamily(f, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	s := loadStore(t, f)

	row := gateway.ProfileRow{ID: "p3", FamilyID: "fam1", Name: "Pochi", Type: "pet", Status: "home"}
	f.bus.Publish(gateway.ChangeEvent{Table: gateway.TableProfiles, Kind: gateway.ChangeInsert, FamilyID: "fam1", Profile: &row})
	f.bus.Publish(gateway.ChangeEvent{Table: gateway.TableProfiles, Kind: gateway.ChangeInsert, FamilyID: "fam1", Profile: &row})
	barrier(t, s, f, "bar1")

	members := s.Members()
	if len(members) != 3 {
		t.Fatalf("len(Members()) = %d, want 3", len(members))
	}
	// New members are appended, not prepended
	if members[2].ID != "p3" {
		t.Errorf("Members()[2].ID = %s, want p3", members[2].ID)
	}
	if members[2].AvatarIcon == "" {
		t.Error("fallback avatar icon missing")
	}
}

func TestMemberUpdateIgnoresUnknownID(t *testing.T) {
	f := newFakeGateway()
	seedFamily(f, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	s := loadStore(t, f)

	f.bus.Publish(gateway.ChangeEvent{
		Table: gateway.TableProfiles, Kind: gateway.ChangeUpdate, FamilyID: "fam1",
		Profile: &gateway.ProfileRow{ID: "p99", FamilyID: "fam1", Name: "Nobody", Type: "adult", Status: "out"},
	})
	barrier(t, s, f, "bar1")

	if got := len(s.Members()); got != 2 {
		t.Errorf("update for unknown id changed membership, len = %d", got)
	}
}

func TestMemberUpdateMergesFields(t *testing.T) {
	f := newFakeGateway()
	seedFamily(f, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	s := loadStore(t, f)

	f.bus.Publish(gateway.ChangeEvent{
		Table: gateway.TableProfiles, Kind: gateway.ChangeUpdate, FamilyID: "fam1",
		Profile: &gateway.ProfileRow{ID: "p2", FamilyID: "fam1", Name: "Kenta", Type: "child", ThemeColor: "#4ECDC4", Status: "out"},
	})
	waitFor(t, func() bool {
		m, ok := s.MemberByID("p2")
		return ok && m.Status == "out"
	})
}

func TestLogInsertsPrependNewestFirst(t *testing.T) {
	f := newFakeGateway()
	seedFamily(f, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	s := loadStore(t, f)

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	f.bus.Publish(gateway.ChangeEvent{
		Table: gateway.TableLogs, Kind: gateway.ChangeInsert, FamilyID: "fam1",
		Log: &gateway.LogRow{ID: "l10", FamilyID: "fam1", Type: "message", TargetMemberIDs: []string{"p1"}, CreatedByMemberID: "p2", CreatedAt: base},
	})
	f.bus.Publish(gateway.ChangeEvent{
		Table: gateway.TableLogs, Kind: gateway.ChangeInsert, FamilyID: "fam1",
		Log: &gateway.LogRow{ID: "l11", FamilyID: "fam1", Type: "message", TargetMemberIDs: []string{"p1"}, CreatedByMemberID: "p2", CreatedAt: base.Add(time.Minute)},
	})
	waitFor(t, func() bool { return len(s.Logs()) == 2 })

	if logs := s.Logs(); logs[0].ID != "l11" || logs[1].ID != "l10" {
		t.Errorf("log order = [%s %s], want [l11 l10]", logs[0].ID, logs[1].ID)
	}
}

func TestUnreadCountsSelfOriginExclusion(t *testing.T) {
	f := newFakeGateway()
	seedFamily(f, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	s := loadStore(t, f)

	// Own activity never counts as unread
	if err := s.AddLog(context.Background(), gwNewLogByP1()); err != nil {
		t.Fatalf("AddLog() error = %v", err)
	}
	waitFor(t, func() bool { return len(s.Logs()) == 1 })
	if got := s.UnreadTimelineCount(); got != 0 {
		t.Errorf("self log raised unread count to %d", got)
	}

	// Another member's activity does
	f.bus.Publish(gateway.ChangeEvent{
		Table: gateway.TableLogs, Kind: gateway.ChangeInsert, FamilyID: "fam1",
		Log: &gateway.LogRow{ID: "l50", FamilyID: "fam1", Type: "message", TargetMemberIDs: []string{"p1"}, CreatedByMemberID: "p2", CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
	})
	waitFor(t, func() bool { return s.UnreadTimelineCount() == 1 })

	f.bus.Publish(gateway.ChangeEvent{
		Table: gateway.TableMessages, Kind: gateway.ChangeInsert, FamilyID: "fam1",
		Message: &gateway.MessageRow{ID: "m50", FamilyID: "fam1", Content: "hi", CreatedByMemberID: "p2", CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
	})
	waitFor(t, func() bool { return s.UnreadMessagesCount() == 1 })
}

func TestSkipsEventsWithUnknownEnums(t *testing.T) {
	f := newFakeGateway()
	seedFamily(f, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	s := loadStore(t, f)

	f.bus.Publish(gateway.ChangeEvent{
		Table: gateway.TableLogs, Kind: gateway.ChangeInsert, FamilyID: "fam1",
		Log: &gateway.LogRow{ID: "l60", FamilyID: "fam1", Type: "photo", TargetMemberIDs: []string{"p1"}, CreatedByMemberID: "p2"},
	})
	f.bus.Publish(gateway.ChangeEvent{
		Table: gateway.TableProfiles, Kind: gateway.ChangeInsert, FamilyID: "fam1",
		Profile: &gateway.ProfileRow{ID: "p60", FamilyID: "fam1", Name: "Robot", Type: "robot", Status: "home"},
	})
	barrier(t, s, f, "bar1")

	if got := len(s.Logs()); got != 0 {
		t.Errorf("undecodable log applied, len = %d", got)
	}
	if got := len(s.Members()); got != 2 {
		t.Errorf("undecodable profile applied, len = %d", got)
	}
	if got := s.UnreadTimelineCount(); got != 0 {
		t.Errorf("undecodable log counted as unread, count = %d", got)
	}
}

// gwNewLogByP1 is a valid log authored by the auth member
func gwNewLogByP1() models.NewLog {
	return models.NewLog{
		Type:              models.LogMessage,
		TargetMemberIDs:   []string{"p2"},
		CreatedByMemberID: "p1",
	}
}
