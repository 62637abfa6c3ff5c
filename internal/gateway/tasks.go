package gateway

import (
	"context"
	"database/sql"
	"fmt"
)

const taskColumns = "id, family_id, title, assigned_to_member_id, is_completed, created_at"

func scanTask(scanner interface{ Scan(...interface{}) error }) (*TaskRow, error) {
	row := &TaskRow{}
	err := scanner.Scan(
		&row.ID,
		&row.FamilyID,
		&row.Title,
		&row.AssignedToMemberID,
		&row.IsCompleted,
		&row.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// TasksByFamily retrieves all tasks of a family, newest first
func (g *SQL) TasksByFamily(ctx context.Context, familyID string) ([]TaskRow, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE family_id = ? ORDER BY created_at DESC"
	rows, err := g.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []TaskRow
	for rows.Next() {
		row, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *row)
	}

	return tasks, rows.Err()
}

// taskByID retrieves one task row
func (g *SQL) taskByID(ctx context.Context, id string) (*TaskRow, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE id = ?"
	row, err := scanTask(g.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return row, nil
}

// InsertTask creates a new task row
func (g *SQL) InsertTask(ctx context.Context, t NewTask) (*TaskRow, error) {
	row := &TaskRow{
		ID:                 g.newID(),
		FamilyID:           t.FamilyID,
		Title:              t.Title,
		AssignedToMemberID: t.AssignedToMemberID,
		CreatedAt:          g.now(),
	}

	query := `
		INSERT INTO tasks (id, family_id, title, assigned_to_member_id, is_completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := g.db.ExecContext(ctx, query,
		row.ID, row.FamilyID, row.Title, row.AssignedToMemberID, row.IsCompleted, row.CreatedAt)
	if err != nil {
		return nil, g.wrapWrite("create task", err)
	}

	g.bus.Publish(ChangeEvent{Table: TableTasks, Kind: ChangeInsert, FamilyID: row.FamilyID, Task: row})
	return row, nil
}

// UpdateTaskCompleted sets a task's completion flag
func (g *SQL) UpdateTaskCompleted(ctx context.Context, id string, completed bool) error {
	query := "UPDATE tasks SET is_completed = ? WHERE id = ?"
	if _, err := g.db.ExecContext(ctx, query, completed, id); err != nil {
		return g.wrapWrite("update task", err)
	}

	row, err := g.taskByID(ctx, id)
	if err != nil || row == nil {
		return err
	}

	g.bus.Publish(ChangeEvent{Table: TableTasks, Kind: ChangeUpdate, FamilyID: row.FamilyID, Task: row})
	return nil
}

// DeleteTask removes a task row
func (g *SQL) DeleteTask(ctx context.Context, id string) error {
	row, err := g.taskByID(ctx, id)
	if err != nil {
		return err
	}
	if row == nil {
		return nil
	}

	query := "DELETE FROM tasks WHERE id = ?"
	if _, err := g.db.ExecContext(ctx, query, id); err != nil {
		return g.wrapWrite("delete task", err)
	}

	g.bus.Publish(ChangeEvent{Table: TableTasks, Kind: ChangeDelete, FamilyID: row.FamilyID, OldID: id})
	return nil
}
