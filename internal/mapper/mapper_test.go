package mapper

import (
	"testing"
	"time"

	"famboard/internal/gateway"
	"famboard/internal/models"
)

func strPtr(s string) *string { return &s }

func TestMemberDecoding(t *testing.T) {
	viewed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		row     gateway.ProfileRow
		want    models.Member
		wantErr bool
	}{
		{
			name: "full profile",
			row: gateway.ProfileRow{
				ID:                   "p1",
				FamilyID:             "f1",
				Name:                 "Yuki",
				Type:                 "adult",
				ThemeColor:           "#FF6B6B",
				AvatarURL:            strPtr("https://example.com/a.jpg"),
				AvatarStyle:          strPtr("mom"),
				Status:               "working",
				IsAuthUser:           true,
				LastViewedTimelineAt: &viewed,
			},
			want: models.Member{
				ID:                   "p1",
				Name:                 "Yuki",
				Type:                 models.MemberAdult,
				ThemeColor:           "#FF6B6B",
				AvatarIcon:           models.FallbackAvatarIcon,
				AvatarURL:            "https://example.com/a.jpg",
				AvatarStyle:          "mom",
				Status:               models.StatusWorking,
				IsAuthUser:           true,
				LastViewedTimelineAt: &viewed,
			},
		},
		{
			name: "optional fields absent",
			row: gateway.ProfileRow{
				ID:     "p2",
				Name:   "Pochi",
				Type:   "pet",
				Status: "home",
			},
			want: models.Member{
				ID:         "p2",
				Name:       "Pochi",
				Type:       models.MemberPet,
				AvatarIcon: models.FallbackAvatarIcon,
				Status:     models.StatusHome,
			},
		},
		{
			name:    "unknown type fails loudly",
			row:     gateway.ProfileRow{ID: "p3", Type: "robot", Status: "home"},
			wantErr: true,
		},
		{
			name:    "unknown status fails loudly",
			row:     gateway.ProfileRow{ID: "p4", Type: "adult", Status: "asleep"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Member(tt.row)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Member() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.ID != tt.want.ID || got.Name != tt.want.Name || got.Type != tt.want.Type ||
				got.ThemeColor != tt.want.ThemeColor || got.AvatarIcon != tt.want.AvatarIcon ||
				got.AvatarURL != tt.want.AvatarURL || got.AvatarStyle != tt.want.AvatarStyle ||
				got.Status != tt.want.Status || got.IsAuthUser != tt.want.IsAuthUser {
				t.Errorf("Member() = %+v, want %+v", got, tt.want)
			}
			if (got.LastViewedTimelineAt == nil) != (tt.want.LastViewedTimelineAt == nil) {
				t.Errorf("LastViewedTimelineAt presence mismatch")
			}
			if got.LastViewedTimelineAt != nil && !got.LastViewedTimelineAt.Equal(*tt.want.LastViewedTimelineAt) {
				t.Errorf("LastViewedTimelineAt = %v, want %v", got.LastViewedTimelineAt, tt.want.LastViewedTimelineAt)
			}
		})
	}
}

func TestMemberCursorIsCopied(t *testing.T) {
	viewed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rowCursor := viewed
	row := gateway.ProfileRow{ID: "p1", Type: "adult", Status: "home", LastViewedTimelineAt: &rowCursor}

	m, err := Member(row)
	if err != nil {
		t.Fatalf("Member() error = %v", err)
	}

	// Mutating the row timestamp must not leak into the entity
	*row.LastViewedTimelineAt = viewed.Add(time.Hour)
	if !m.LastViewedTimelineAt.Equal(viewed) {
		t.Error("entity cursor aliases row memory")
	}
}

func TestLogDecoding(t *testing.T) {
	created := time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		row     gateway.LogRow
		want    models.Log
		wantErr bool
	}{
		{
			name: "custom button log",
			row: gateway.LogRow{
				ID:                "l1",
				FamilyID:          "f1",
				Type:              "custom_button",
				CustomButtonID:    strPtr("b1"),
				Note:              strPtr("park"),
				PhotoURL:          strPtr("https://example.com/p.jpg"),
				TargetMemberIDs:   []string{"p1", "p2"},
				CreatedByMemberID: "p1",
				CreatedAt:         created,
			},
			want: models.Log{
				ID:                "l1",
				FamilyID:          "f1",
				Type:              models.LogCustomButton,
				CustomButtonID:    "b1",
				Note:              "park",
				PhotoURL:          "https://example.com/p.jpg",
				TargetMemberIDs:   []string{"p1", "p2"},
				CreatedByMemberID: "p1",
				CreatedAt:         created,
			},
		},
		{
			name: "nil targets become empty slice",
			row: gateway.LogRow{
				ID:                "l2",
				Type:              "message",
				CreatedByMemberID: "p1",
				CreatedAt:         created,
			},
			want: models.Log{
				ID:                "l2",
				Type:              models.LogMessage,
				TargetMemberIDs:   []string{},
				CreatedByMemberID: "p1",
				CreatedAt:         created,
			},
		},
		{
			name:    "unknown log type fails loudly",
			row:     gateway.LogRow{ID: "l3", Type: "photo"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Log(tt.row)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Log() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.ID != tt.want.ID || got.Type != tt.want.Type ||
				got.CustomButtonID != tt.want.CustomButtonID || got.Note != tt.want.Note ||
				got.PhotoURL != tt.want.PhotoURL || got.CreatedByMemberID != tt.want.CreatedByMemberID {
				t.Errorf("Log() = %+v, want %+v", got, tt.want)
			}
			if len(got.TargetMemberIDs) != len(tt.want.TargetMemberIDs) {
				t.Fatalf("TargetMemberIDs = %v, want %v", got.TargetMemberIDs, tt.want.TargetMemberIDs)
			}
			for i := range got.TargetMemberIDs {
				if got.TargetMemberIDs[i] != tt.want.TargetMemberIDs[i] {
					t.Errorf("TargetMemberIDs[%d] = %s, want %s", i, got.TargetMemberIDs[i], tt.want.TargetMemberIDs[i])
				}
			}
		})
	}
}

func TestTaskDecoding(t *testing.T) {
	row := gateway.TaskRow{
		ID:                 "t1",
		FamilyID:           "f1",
		Title:              "Buy milk",
		AssignedToMemberID: strPtr("p2"),
		IsCompleted:        true,
	}

	got := Task(row)
	if got.AssignedToMemberID != "p2" {
		t.Errorf("AssignedToMemberID = %q, want p2", got.AssignedToMemberID)
	}
	if !got.IsCompleted {
		t.Error("IsCompleted not carried over")
	}

	row.AssignedToMemberID = nil
	if got := Task(row); got.AssignedToMemberID != "" {
		t.Errorf("unassigned task should map to empty id, got %q", got.AssignedToMemberID)
	}
}

func TestMessageAndButtonDecoding(t *testing.T) {
	msg := Message(gateway.MessageRow{ID: "m1", FamilyID: "f1", Content: "hi", CreatedByMemberID: "p1", IsPinned: true})
	if msg.ID != "m1" || !msg.IsPinned || msg.Pending {
		t.Errorf("Message() = %+v", msg)
	}

	btn := Button(gateway.ButtonRow{ID: "b1", FamilyID: "f1", Label: "ごはん", Icon: "Utensils"})
	if btn.Label != "ごはん" || btn.Icon != "Utensils" {
		t.Errorf("Button() = %+v", btn)
	}
}
