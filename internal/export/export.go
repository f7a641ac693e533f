// Package export serializes a user's data to JSON and uploads it to object
// storage, returning a short-lived download URL.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fitrek/fitrek-app/internal/domain"
	"fitrek/fitrek-app/internal/storage"

	"github.com/sirupsen/logrus"
)

// Snapshot is the exported document: everything the backend holds for one
// user at a point in time.
type Snapshot struct {
	ExportedAt      time.Time               `json:"exportedAt"`
	Profile         *domain.UserProfile     `json:"profile,omitempty"`
	CustomExercises []domain.CustomExercise `json:"customExercises"`
	Programs        []domain.WorkoutProgram `json:"workoutPrograms"`
	WorkoutLogs     []domain.WorkoutLog     `json:"workoutLogs"`
}

// Service uploads snapshots and hands back presigned download links.
type Service struct {
	store storage.ObjectStorage
	log   *logrus.Entry
}

func NewService(store storage.ObjectStorage) *Service {
	return &Service{
		store: store,
		log:   logrus.WithField("component", "export"),
	}
}

// Export uploads the snapshot under exports/<userID>/<timestamp>.json and
// returns a presigned download URL for it.
func (s *Service) Export(ctx context.Context, userID string, snapshot Snapshot) (string, error) {
	if snapshot.ExportedAt.IsZero() {
		snapshot.ExportedAt = time.Now().UTC()
	}

	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling export snapshot: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%s.json", userID, snapshot.ExportedAt.Format("20060102T150405Z"))
	if err := s.store.PutObject(ctx, key, "application/json", payload); err != nil {
		return "", fmt.Errorf("uploading export snapshot: %w", err)
	}

	url, err := s.store.GeneratePresignedDownloadURL(ctx, key, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presigning export download: %w", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "key": key}).Info("data export uploaded")
	return url, nil
}
