package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/silkway-cargo/silkway/internal/models"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.GetSettings(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settings": settings})
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var in models.Settings
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.ExchangeRate <= 0 || in.PricePerKg <= 0 {
		writeError(w, http.StatusBadRequest, "exchangeRate and pricePerKg must be positive")
		return
	}

	if err := s.settings.UpdateSettings(r.Context(), in); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settings": in})
}
