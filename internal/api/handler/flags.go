package handler

import (
	"net/http"

	"github.com/albapepper/cricketfeed/internal/api/respond"
)

// FlagsResponse is the current flag mapping.
type FlagsResponse struct {
	OK       bool              `json:"ok"`
	IDToName map[string]string `json:"id_to_name"`
	IDToPath map[string]string `json:"id_to_path"`
}

// GetFlags returns a snapshot of the flag mapping.
// @Summary Flag mapping
// @Description Returns the identifier to team name and identifier to local image path maps.
// @Tags flags
// @Produce json
// @Success 200 {object} FlagsResponse
// @Router /api/flags [get]
func (h *Handler) GetFlags(w http.ResponseWriter, r *http.Request) {
	snap := h.flags.Snapshot()
	respond.WriteJSONObject(w, http.StatusOK, FlagsResponse{
		OK:       true,
		IDToName: snap.IDToName,
		IDToPath: snap.IDToPath,
	})
}
