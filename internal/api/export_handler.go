package api

import (
	"net/http"

	"fitrek/fitrek-app/internal/export"
	"fitrek/fitrek-app/internal/store"

	"github.com/gin-gonic/gin"
)

// ExportHandler uploads a JSON snapshot of the user's data to object
// storage. The exporter is nil when no bucket is configured.
type ExportHandler struct {
	store    *store.Store
	exporter *export.Service
}

func NewExportHandler(s *store.Store, exporter *export.Service) *ExportHandler {
	return &ExportHandler{store: s, exporter: exporter}
}

// Export serializes the current state and returns a presigned download URL.
func (h *ExportHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		abortWithError(c, http.StatusServiceUnavailable, "Data export is not configured")
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	snapshot := h.store.Snapshot()
	url, err := h.exporter.Export(c.Request.Context(), userID, export.Snapshot{
		Profile:         snapshot.Profile,
		CustomExercises: snapshot.CustomExercises,
		Programs:        snapshot.Programs,
		WorkoutLogs:     snapshot.WorkoutLogs,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not export data")
		return
	}

	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}
