package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type addParcelRequest struct {
	TrackNumber string `json:"trackNumber"`
}

func (s *Server) handleAddParcel(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())

	var req addParcelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.TrackNumber == "" {
		writeError(w, http.StatusBadRequest, "trackNumber is required")
		return
	}

	p, err := s.parcels.Add(r.Context(), actor.UserID, req.TrackNumber)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"parcel": p})
}

func (s *Server) handleListParcels(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	archived := r.URL.Query().Get("archived") == "true"

	parcels, err := s.parcels.List(r.Context(), actor.UserID, archived)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"parcels": parcels})
}

type archiveParcelRequest struct {
	Archived bool `json:"archived"`
}

func (s *Server) handleArchiveParcel(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req archiveParcelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := s.parcels.SetArchived(r.Context(), actor.UserID, id, req.Archived); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleDeleteParcel(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.parcels.Delete(r.Context(), actor.UserID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
