package store

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"famboard/internal/blob"
	"famboard/internal/gateway"
	"famboard/internal/models"
	"famboard/internal/validation"
)

// AddLog writes a new timeline entry through the gateway. An inline
// data: URL photo is uploaded to blob storage first and replaced with
// its public URL; a failed upload degrades to a log without a photo.
// The local timeline is updated when the insert event arrives.
func (s *Store) AddLog(ctx context.Context, l models.NewLog) error {
	familyID := s.familyID()
	if familyID == "" {
		return nil
	}
	if err := validation.ValidateNewLog(l); err != nil {
		return err
	}

	photoURL := l.PhotoURL
	if blob.IsDataURL(photoURL) {
		photoURL = s.uploadPhoto(ctx, familyID, photoURL)
	}

	row := gateway.NewLog{
		FamilyID:          familyID,
		Type:              string(l.Type),
		TargetMemberIDs:   l.TargetMemberIDs,
		CreatedByMemberID: l.CreatedByMemberID,
	}
	if l.CustomButtonID != "" {
		id := l.CustomButtonID
		row.CustomButtonID = &id
	}
	if l.Note != "" {
		note := l.Note
		row.Note = &note
	}
	if photoURL != "" {
		url := photoURL
		row.PhotoURL = &url
	}

	if _, err := s.gw.InsertLog(ctx, row); err != nil {
		return fmt.Errorf("failed to add log: %w", err)
	}
	return nil
}

// uploadPhoto stores an inline photo and returns its public URL, or ""
// when decoding or uploading fails
func (s *Store) uploadPhoto(ctx context.Context, familyID, dataURL string) string {
	if s.blobs == nil {
		log.Printf("Dropping log photo: no blob store configured")
		return ""
	}

	obj, err := blob.ParseDataURL(dataURL)
	if err != nil {
		log.Printf("Dropping log photo: %v", err)
		return ""
	}
	if int64(len(obj.Data)) > s.photoMaxSize {
		log.Printf("Dropping log photo: %d bytes exceeds limit of %d", len(obj.Data), s.photoMaxSize)
		return ""
	}

	key := fmt.Sprintf("%s/%s%s", familyID, uuid.NewString(), blob.Extension(obj.ContentType))
	url, err := s.blobs.Upload(ctx, key, obj.ContentType, obj.Data)
	if err != nil {
		log.Printf("Dropping log photo: %v", err)
		return ""
	}
	return url
}

// DeleteLog removes a timeline entry optimistically and writes the
// delete through. A later delete event for the same id is a no-op.
func (s *Store) DeleteLog(ctx context.Context, id string) error {
	if s.familyID() == "" {
		return nil
	}

	s.mu.Lock()
	if i := s.logIndex(id); i >= 0 {
		s.logs = append(s.logs[:i], s.logs[i+1:]...)
	}
	s.mu.Unlock()

	if err := s.gw.DeleteLog(ctx, id); err != nil {
		return fmt.Errorf("failed to delete log: %w", err)
	}
	return nil
}
