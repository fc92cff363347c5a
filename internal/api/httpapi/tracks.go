package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/silkway-cargo/silkway/internal/models"
	"github.com/silkway-cargo/silkway/internal/storage/pgcargo"
)

type createTrackRequest struct {
	TrackNumber string   `json:"trackNumber"`
	StatusID    uint64   `json:"statusId"`
	BatchID     *uint64  `json:"batchId,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	Description *string  `json:"description,omitempty"`
}

func (s *Server) handleCreateTrack(w http.ResponseWriter, r *http.Request) {
	var req createTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.TrackNumber == "" || req.StatusID == 0 {
		writeError(w, http.StatusBadRequest, "trackNumber and statusId are required")
		return
	}

	t, err := s.tracks.CreateTrack(r.Context(), models.TrackCreateInput{
		TrackNumber: req.TrackNumber,
		StatusID:    req.StatusID,
		BatchID:     req.BatchID,
		Weight:      req.Weight,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"track": t})
}

func (s *Server) handleListTracks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 50
	}
	statusID, _ := strconv.ParseUint(q.Get("statusId"), 10, 64)

	f := pgcargo.TrackFilter{
		Search:   q.Get("search"),
		StatusID: statusID,
		Limit:    limit,
		Offset:   (page - 1) * limit,
		SortBy:   q.Get("sortBy"),
		SortDesc: q.Get("sortOrder") != "asc",
	}

	tracks, total, err := s.tracks.ListTracks(r.Context(), f)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tracks": tracks,
		"pagination": map[string]any{
			"page": page, "limit": limit, "total": total, "totalPages": totalPages,
		},
	})
}

func (s *Server) handleGetTrack(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	t, history, err := s.tracks.GetTrack(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"track": t, "history": history})
}

func (s *Server) handleSearchTrack(w http.ResponseWriter, r *http.Request) {
	number := r.URL.Query().Get("number")
	if number == "" {
		writeError(w, http.StatusBadRequest, "number is required")
		return
	}

	t, err := s.tracks.SearchByNumber(r.Context(), number)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"track": t})
}

type bulkStatusRequest struct {
	TrackIDs []uint64 `json:"trackIds"`
	StatusID uint64   `json:"statusId"`
}

func (s *Server) handleBulkSetStatus(w http.ResponseWriter, r *http.Request) {
	var req bulkStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.TrackIDs) == 0 || req.StatusID == 0 {
		writeError(w, http.StatusBadRequest, "trackIds and statusId are required")
		return
	}

	n, err := s.tracks.BulkSetStatus(r.Context(), req.TrackIDs, req.StatusID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": n})
}

type bulkDeleteRequest struct {
	TrackIDs []uint64 `json:"trackIds"`
}

func (s *Server) handleDeleteTracks(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.TrackIDs) == 0 {
		writeError(w, http.StatusBadRequest, "trackIds are required")
		return
	}

	n, err := s.tracks.DeleteTracks(r.Context(), req.TrackIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": n})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.tracks.GetStats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
