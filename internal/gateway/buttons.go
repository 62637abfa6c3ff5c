package gateway

import (
	"context"
	"fmt"
)

// ButtonsByFamily retrieves all custom buttons of a family
func (g *SQL) ButtonsByFamily(ctx context.Context, familyID string) ([]ButtonRow, error) {
	query := "SELECT id, family_id, label, icon FROM custom_buttons WHERE family_id = ? ORDER BY created_at ASC"
	rows, err := g.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom buttons: %w", err)
	}
	defer rows.Close()

	var buttons []ButtonRow
	for rows.Next() {
		var row ButtonRow
		if err := rows.Scan(&row.ID, &row.FamilyID, &row.Label, &row.Icon); err != nil {
			return nil, fmt.Errorf("failed to scan custom button: %w", err)
		}
		buttons = append(buttons, row)
	}

	return buttons, rows.Err()
}

// InsertButton creates a new custom button row
func (g *SQL) InsertButton(ctx context.Context, b NewButton) (*ButtonRow, error) {
	row := &ButtonRow{
		ID:       g.newID(),
		FamilyID: b.FamilyID,
		Label:    b.Label,
		Icon:     b.Icon,
	}

	query := "INSERT INTO custom_buttons (id, family_id, label, icon, created_at) VALUES (?, ?, ?, ?, ?)"
	if _, err := g.db.ExecContext(ctx, query, row.ID, row.FamilyID, row.Label, row.Icon, g.now()); err != nil {
		return nil, g.wrapWrite("create custom button", err)
	}

	g.bus.Publish(ChangeEvent{Table: TableButtons, Kind: ChangeInsert, FamilyID: row.FamilyID, Button: row})
	return row, nil
}
