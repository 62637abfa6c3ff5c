package gateway

import (
	"context"
	"database/sql"
	"fmt"
)

const messageColumns = "id, family_id, content, created_by_member_id, is_pinned, created_at"

func scanMessage(scanner interface{ Scan(...interface{}) error }) (*MessageRow, error) {
	row := &MessageRow{}
	err := scanner.Scan(
		&row.ID,
		&row.FamilyID,
		&row.Content,
		&row.CreatedByMemberID,
		&row.IsPinned,
		&row.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// MessagesByFamily retrieves all messages of a family, newest first
func (g *SQL) MessagesByFamily(ctx context.Context, familyID string) ([]MessageRow, error) {
	query := "SELECT " + messageColumns + " FROM messages WHERE family_id = ? ORDER BY created_at DESC"
	rows, err := g.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []MessageRow
	for rows.Next() {
		row, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, *row)
	}

	return messages, rows.Err()
}

// messageByID retrieves one message row
func (g *SQL) messageByID(ctx context.Context, id string) (*MessageRow, error) {
	query := "SELECT " + messageColumns + " FROM messages WHERE id = ?"
	row, err := scanMessage(g.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return row, nil
}

// InsertMessage creates a message row under the caller-assigned ID
func (g *SQL) InsertMessage(ctx context.Context, m NewMessage) (*MessageRow, error) {
	row := &MessageRow{
		ID:                m.ID,
		FamilyID:          m.FamilyID,
		Content:           m.Content,
		CreatedByMemberID: m.CreatedByMemberID,
		IsPinned:          m.IsPinned,
		CreatedAt:         g.now(),
	}
	if row.ID == "" {
		row.ID = g.newID()
	}

	query := `
		INSERT INTO messages (id, family_id, content, created_by_member_id, is_pinned, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := g.db.ExecContext(ctx, query,
		row.ID, row.FamilyID, row.Content, row.CreatedByMemberID, row.IsPinned, row.CreatedAt)
	if err != nil {
		return nil, g.wrapWrite("create message", err)
	}

	g.bus.Publish(ChangeEvent{Table: TableMessages, Kind: ChangeInsert, FamilyID: row.FamilyID, Message: row})
	return row, nil
}

// UpdateMessagePin sets the pinned flag on a message
func (g *SQL) UpdateMessagePin(ctx context.Context, id string, pinned bool) error {
	query := "UPDATE messages SET is_pinned = ? WHERE id = ?"
	if _, err := g.db.ExecContext(ctx, query, pinned, id); err != nil {
		return g.wrapWrite("update message pin", err)
	}

	row, err := g.messageByID(ctx, id)
	if err != nil || row == nil {
		return err
	}

	g.bus.Publish(ChangeEvent{Table: TableMessages, Kind: ChangeUpdate, FamilyID: row.FamilyID, Message: row})
	return nil
}

// DeleteMessage removes a message row
func (g *SQL) DeleteMessage(ctx context.Context, id string) error {
	row, err := g.messageByID(ctx, id)
	if err != nil {
		return err
	}
	if row == nil {
		return nil
	}

	query := "DELETE FROM messages WHERE id = ?"
	if _, err := g.db.ExecContext(ctx, query, id); err != nil {
		return g.wrapWrite("delete message", err)
	}

	g.bus.Publish(ChangeEvent{Table: TableMessages, Kind: ChangeDelete, FamilyID: row.FamilyID, OldID: id})
	return nil
}
