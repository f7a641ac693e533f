package export

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"fitrek/fitrek-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectStorage struct {
	putKey  string
	putType string
	putBody []byte
	putErr  error
}

func (f *fakeObjectStorage) PutObject(ctx context.Context, key, contentType string, body []byte) error {
	f.putKey = key
	f.putType = contentType
	f.putBody = body
	return f.putErr
}

func (f *fakeObjectStorage) GeneratePresignedDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	return "https://example.com/" + key, nil
}

func (f *fakeObjectStorage) DeleteObject(ctx context.Context, key string) error { return nil }

func TestExportUploadsSnapshot(t *testing.T) {
	storage := &fakeObjectStorage{}
	svc := NewService(storage)

	url, err := svc.Export(context.Background(), "user-1", Snapshot{
		Profile: &domain.UserProfile{UserID: "user-1", Name: "Alice"},
		Programs: []domain.WorkoutProgram{
			{ID: "p1", Name: "Push Day", Exercises: []domain.ExerciseRef{domain.CatalogRef(1)}},
		},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(storage.putKey, "exports/user-1/"))
	assert.True(t, strings.HasSuffix(storage.putKey, ".json"))
	assert.Equal(t, "application/json", storage.putType)
	assert.Equal(t, "https://example.com/"+storage.putKey, url)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(storage.putBody, &decoded))
	require.NotNil(t, decoded.Profile)
	assert.Equal(t, "Alice", decoded.Profile.Name)
	assert.False(t, decoded.ExportedAt.IsZero())
}

func TestExportPropagatesUploadError(t *testing.T) {
	storage := &fakeObjectStorage{putErr: assert.AnError}
	svc := NewService(storage)

	_, err := svc.Export(context.Background(), "user-1", Snapshot{})
	assert.Error(t, err)
}
