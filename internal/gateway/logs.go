package gateway

import (
	"context"
	"database/sql"
	"fmt"
)

const logColumns = `id, family_id, type, custom_button_id, note, photo_url,
	target_member_ids, created_by_member_id, created_at`

func scanLog(scanner interface{ Scan(...interface{}) error }) (*LogRow, error) {
	row := &LogRow{}
	var rawTargets string
	err := scanner.Scan(
		&row.ID,
		&row.FamilyID,
		&row.Type,
		&row.CustomButtonID,
		&row.Note,
		&row.PhotoURL,
		&rawTargets,
		&row.CreatedByMemberID,
		&row.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	row.TargetMemberIDs, err = decodeMemberIDs(rawTargets)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// LogsByFamily retrieves all logs of a family, newest first
func (g *SQL) LogsByFamily(ctx context.Context, familyID string) ([]LogRow, error) {
	query := "SELECT " + logColumns + " FROM logs WHERE family_id = ? ORDER BY created_at DESC"
	rows, err := g.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer rows.Close()

	var logs []LogRow
	for rows.Next() {
		row, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}
		logs = append(logs, *row)
	}

	return logs, rows.Err()
}

// logByID retrieves one log row
func (g *SQL) logByID(ctx context.Context, id string) (*LogRow, error) {
	query := "SELECT " + logColumns + " FROM logs WHERE id = ?"
	row, err := scanLog(g.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get log: %w", err)
	}
	return row, nil
}

// InsertLog creates a new log row
func (g *SQL) InsertLog(ctx context.Context, l NewLog) (*LogRow, error) {
	row := &LogRow{
		ID:                g.newID(),
		FamilyID:          l.FamilyID,
		Type:              l.Type,
		CustomButtonID:    l.CustomButtonID,
		Note:              l.Note,
		PhotoURL:          l.PhotoURL,
		TargetMemberIDs:   l.TargetMemberIDs,
		CreatedByMemberID: l.CreatedByMemberID,
		CreatedAt:         g.now(),
	}
	if row.TargetMemberIDs == nil {
		row.TargetMemberIDs = []string{}
	}

	rawTargets, err := encodeMemberIDs(row.TargetMemberIDs)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO logs (id, family_id, type, custom_button_id, note, photo_url,
			target_member_ids, created_by_member_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = g.db.ExecContext(ctx, query,
		row.ID, row.FamilyID, row.Type, row.CustomButtonID, row.Note, row.PhotoURL,
		rawTargets, row.CreatedByMemberID, row.CreatedAt)
	if err != nil {
		return nil, g.wrapWrite("create log", err)
	}

	g.bus.Publish(ChangeEvent{Table: TableLogs, Kind: ChangeInsert, FamilyID: row.FamilyID, Log: row})
	return row, nil
}

// DeleteLog removes a log row
func (g *SQL) DeleteLog(ctx context.Context, id string) error {
	row, err := g.logByID(ctx, id)
	if err != nil {
		return err
	}
	if row == nil {
		return nil
	}

	query := "DELETE FROM logs WHERE id = ?"
	if _, err := g.db.ExecContext(ctx, query, id); err != nil {
		return g.wrapWrite("delete log", err)
	}

	g.bus.Publish(ChangeEvent{Table: TableLogs, Kind: ChangeDelete, FamilyID: row.FamilyID, OldID: id})
	return nil
}
