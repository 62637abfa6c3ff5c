package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const profileColumns = `id, family_id, user_id, name, type, theme_color,
	avatar_url, avatar_style, status, is_auth_user,
	last_viewed_timeline_at, last_viewed_messages_at, created_at`

func scanProfile(scanner interface{ Scan(...interface{}) error }) (*ProfileRow, error) {
	row := &ProfileRow{}
	err := scanner.Scan(
		&row.ID,
		&row.FamilyID,
		&row.UserID,
		&row.Name,
		&row.Type,
		&row.ThemeColor,
		&row.AvatarURL,
		&row.AvatarStyle,
		&row.Status,
		&row.IsAuthUser,
		&row.LastViewedTimelineAt,
		&row.LastViewedMessagesAt,
		&row.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// ProfileByUserID retrieves the member profile bound to an auth user
func (g *SQL) ProfileByUserID(ctx context.Context, userID string) (*ProfileRow, error) {
	query := "SELECT " + profileColumns + " FROM profiles WHERE user_id = ?"
	row, err := scanProfile(g.db.QueryRowContext(ctx, query, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by user: %w", err)
	}
	return row, nil
}

// profileByID retrieves one profile row, used to publish full update events
func (g *SQL) profileByID(ctx context.Context, id string) (*ProfileRow, error) {
	query := "SELECT " + profileColumns + " FROM profiles WHERE id = ?"
	row, err := scanProfile(g.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return row, nil
}

// ProfilesByFamily retrieves all member profiles of a family
func (g *SQL) ProfilesByFamily(ctx context.Context, familyID string) ([]ProfileRow, error) {
	query := "SELECT " + profileColumns + " FROM profiles WHERE family_id = ? ORDER BY created_at ASC"
	rows, err := g.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []ProfileRow
	for rows.Next() {
		row, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, *row)
	}

	return profiles, rows.Err()
}

// InsertProfile creates a new member profile row
func (g *SQL) InsertProfile(ctx context.Context, p NewProfile) (*ProfileRow, error) {
	row := &ProfileRow{
		ID:          g.newID(),
		FamilyID:    p.FamilyID,
		UserID:      p.UserID,
		Name:        p.Name,
		Type:        p.Type,
		ThemeColor:  p.ThemeColor,
		AvatarURL:   p.AvatarURL,
		AvatarStyle: p.AvatarStyle,
		Status:      p.Status,
		IsAuthUser:  p.IsAuthUser,
		CreatedAt:   g.now(),
	}

	query := `
		INSERT INTO profiles (id, family_id, user_id, name, type, theme_color,
			avatar_url, avatar_style, status, is_auth_user, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := g.db.ExecContext(ctx, query,
		row.ID, row.FamilyID, row.UserID, row.Name, row.Type, row.ThemeColor,
		row.AvatarURL, row.AvatarStyle, row.Status, row.IsAuthUser, row.CreatedAt)
	if err != nil {
		return nil, g.wrapWrite("create profile", err)
	}

	g.bus.Publish(ChangeEvent{Table: TableProfiles, Kind: ChangeInsert, FamilyID: row.FamilyID, Profile: row})
	return row, nil
}

// UpdateProfile applies a partial update to a member profile and
// publishes the full updated row
func (g *SQL) UpdateProfile(ctx context.Context, id string, u ProfileUpdate) error {
	var sets []string
	var args []interface{}

	if u.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *u.Name)
	}
	if u.ThemeColor != nil {
		sets = append(sets, "theme_color = ?")
		args = append(args, *u.ThemeColor)
	}
	if u.AvatarURL != nil {
		sets = append(sets, "avatar_url = ?")
		args = append(args, *u.AvatarURL)
	}
	if u.AvatarStyle != nil {
		sets = append(sets, "avatar_style = ?")
		args = append(args, *u.AvatarStyle)
	}
	if u.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *u.Status)
	}
	if u.LastViewedTimelineAt != nil {
		sets = append(sets, "last_viewed_timeline_at = ?")
		args = append(args, *u.LastViewedTimelineAt)
	}
	if u.LastViewedMessagesAt != nil {
		sets = append(sets, "last_viewed_messages_at = ?")
		args = append(args, *u.LastViewedMessagesAt)
	}

	if len(sets) == 0 {
		return nil
	}

	query := "UPDATE profiles SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)

	if _, err := g.db.ExecContext(ctx, query, args...); err != nil {
		return g.wrapWrite("update profile", err)
	}

	row, err := g.profileByID(ctx, id)
	if err != nil || row == nil {
		// Row vanished between write and read; nothing to publish
		return err
	}

	g.bus.Publish(ChangeEvent{Table: TableProfiles, Kind: ChangeUpdate, FamilyID: row.FamilyID, Profile: row})
	return nil
}

// DeleteProfile removes a member profile row
func (g *SQL) DeleteProfile(ctx context.Context, id string) error {
	row, err := g.profileByID(ctx, id)
	if err != nil {
		return err
	}
	if row == nil {
		return nil
	}

	query := "DELETE FROM profiles WHERE id = ?"
	if _, err := g.db.ExecContext(ctx, query, id); err != nil {
		return g.wrapWrite("delete profile", err)
	}

	g.bus.Publish(ChangeEvent{Table: TableProfiles, Kind: ChangeDelete, FamilyID: row.FamilyID, OldID: id})
	return nil
}
