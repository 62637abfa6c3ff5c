package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"famboard/internal/database"
)

// SQL implements Gateway over a relational database, publishing a
// change event to the in-process bus after every successful write.
type SQL struct {
	db  *database.DB
	bus *Bus
	now func() time.Time
}

// NewSQL creates a SQL-backed gateway
func NewSQL(db *database.DB) *SQL {
	return &SQL{
		db:  db,
		bus: NewBus(),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Subscribe opens a change feed for one family
func (g *SQL) Subscribe(familyID string) (*Subscription, error) {
	if familyID == "" {
		return nil, fmt.Errorf("family id is required")
	}
	return g.bus.Subscribe(familyID), nil
}

// newID returns a fresh row identifier
func (g *SQL) newID() string {
	return uuid.NewString()
}

// wrapWrite maps driver constraint failures onto the gateway error
// taxonomy so callers can distinguish "related data exists".
func (g *SQL) wrapWrite(op string, err error) error {
	if err == nil {
		return nil
	}
	if g.db.Dialect.IsForeignKeyViolation(err) {
		return fmt.Errorf("failed to %s: %w", op, ErrForeignKey)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// encodeMemberIDs serializes a target member id list for storage
func encodeMemberIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("failed to encode member ids: %w", err)
	}
	return string(raw), nil
}

// decodeMemberIDs deserializes a stored target member id list
func decodeMemberIDs(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("failed to decode member ids: %w", err)
	}
	return ids, nil
}
