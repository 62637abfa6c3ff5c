package store

import (
	"context"
	"fmt"

	"famboard/internal/gateway"
	"famboard/internal/validation"
)

// AddCustomButton writes a new quick-log button through the gateway.
// The local button list is updated when the insert event arrives.
func (s *Store) AddCustomButton(ctx context.Context, label, icon string) error {
	familyID := s.familyID()
	if familyID == "" {
		return nil
	}
	if err := validation.ValidateButtonLabel(label); err != nil {
		return err
	}

	_, err := s.gw.InsertButton(ctx, gateway.NewButton{
		FamilyID: familyID,
		Label:    label,
		Icon:     icon,
	})
	if err != nil {
		return fmt.Errorf("failed to add custom button: %w", err)
	}
	return nil
}
