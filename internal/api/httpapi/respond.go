package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/silkway-cargo/silkway/internal/services/importer"
	"github.com/silkway-cargo/silkway/internal/services/parcels"
	"github.com/silkway-cargo/silkway/internal/storage/pgcargo"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError переводит сентинелы хранилища и импортёра в HTTP-коды.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pgcargo.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, pgcargo.ErrDuplicateTrack):
		writeError(w, http.StatusConflict, "track number already exists")
	case errors.Is(err, pgcargo.ErrDuplicateLink):
		writeError(w, http.StatusConflict, "track already linked")
	case errors.Is(err, pgcargo.ErrStatusInUse):
		writeError(w, http.StatusConflict, "status is referenced by tracks")
	case errors.Is(err, importer.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, parcels.ErrBlocked):
		writeError(w, http.StatusForbidden, "user is blocked")
	default:
		zap.S().Errorw("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
