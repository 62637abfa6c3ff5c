package gateway

import (
	"context"
	"database/sql"
	"fmt"
)

// FamilyByID retrieves a family by ID
func (g *SQL) FamilyByID(ctx context.Context, id string) (*FamilyRow, error) {
	query := "SELECT id, name, invite_code, created_at FROM families WHERE id = ?"
	row := &FamilyRow{}
	err := g.db.QueryRowContext(ctx, query, id).Scan(
		&row.ID,
		&row.Name,
		&row.InviteCode,
		&row.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}

	return row, nil
}

// InsertFamily creates a new family row
func (g *SQL) InsertFamily(ctx context.Context, name, inviteCode string) (*FamilyRow, error) {
	row := &FamilyRow{
		ID:         g.newID(),
		Name:       name,
		InviteCode: inviteCode,
		CreatedAt:  g.now(),
	}

	query := "INSERT INTO families (id, name, invite_code, created_at) VALUES (?, ?, ?, ?)"
	if _, err := g.db.ExecContext(ctx, query, row.ID, row.Name, row.InviteCode, row.CreatedAt); err != nil {
		return nil, g.wrapWrite("create family", err)
	}

	return row, nil
}
