package gateway

import (
	"context"
	"errors"
)

// ErrForeignKey is returned when a write is rejected because related
// rows still reference (or are referenced by) the affected row.
var ErrForeignKey = errors.New("row has related data")

// Gateway is the remote data source consumed by the synchronized store:
// per-table reads scoped to one family, write operations, and a change
// subscription delivering row-level insert/update/delete events.
//
// Collection reads for logs, tasks and messages return rows newest
// first. Single-row lookups return (nil, nil) when no row matches.
type Gateway interface {
	ProfileByUserID(ctx context.Context, userID string) (*ProfileRow, error)
	FamilyByID(ctx context.Context, id string) (*FamilyRow, error)
	ProfilesByFamily(ctx context.Context, familyID string) ([]ProfileRow, error)
	MessagesByFamily(ctx context.Context, familyID string) ([]MessageRow, error)
	TasksByFamily(ctx context.Context, familyID string) ([]TaskRow, error)
	LogsByFamily(ctx context.Context, familyID string) ([]LogRow, error)
	ButtonsByFamily(ctx context.Context, familyID string) ([]ButtonRow, error)

	InsertFamily(ctx context.Context, name, inviteCode string) (*FamilyRow, error)

	InsertProfile(ctx context.Context, p NewProfile) (*ProfileRow, error)
	UpdateProfile(ctx context.Context, id string, u ProfileUpdate) error
	DeleteProfile(ctx context.Context, id string) error

	// InsertMessage honors a caller-assigned ID so optimistic local
	// inserts and the eventual change event share one identifier.
	InsertMessage(ctx context.Context, m NewMessage) (*MessageRow, error)
	UpdateMessagePin(ctx context.Context, id string, pinned bool) error
	DeleteMessage(ctx context.Context, id string) error

	InsertTask(ctx context.Context, t NewTask) (*TaskRow, error)
	UpdateTaskCompleted(ctx context.Context, id string, completed bool) error
	DeleteTask(ctx context.Context, id string) error

	InsertLog(ctx context.Context, l NewLog) (*LogRow, error)
	DeleteLog(ctx context.Context, id string) error

	InsertButton(ctx context.Context, b NewButton) (*ButtonRow, error)

	// Subscribe opens a change feed for one family. Events are delivered
	// FIFO per subscription. The caller owns the subscription and must
	// Close it before opening another for a different family.
	Subscribe(familyID string) (*Subscription, error)
}
