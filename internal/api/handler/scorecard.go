package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/albapepper/cricketfeed/internal/api/respond"
	"github.com/albapepper/cricketfeed/internal/scrape"
)

// scorecardMarkup validates the url parameter before any network access.
// It writes the error response itself and returns ok=false on failure.
func (h *Handler) scorecardMarkup(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, bool) {
	pageURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if pageURL == "" {
		respond.WriteError(w, http.StatusBadRequest, "missing url")
		return "", false
	}
	markup, err := h.source.FetchScorecard(ctx, pageURL)
	if err != nil {
		h.logger.Error("Failed to fetch scorecard", "url", pageURL, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, err.Error())
		return "", false
	}
	return markup, true
}

// GetScorecardRaw returns a match page's markup.
// @Summary Raw scorecard page
// @Description Fetches the given scorecard page and returns its markup.
// @Tags scorecard
// @Produce json
// @Param url query string true "Scorecard page URL"
// @Success 200 {object} RawResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/scorecard/raw [get]
func (h *Handler) GetScorecardRaw(w http.ResponseWriter, r *http.Request) {
	markup, ok := h.scorecardMarkup(r.Context(), w, r)
	if !ok {
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, RawResponse{OK: true, HTML: markup})
}

// GetScorecard returns a parsed scorecard.
// @Summary Parsed scorecard
// @Description Fetches the given scorecard page and extracts teams, match information, and per-innings batting and bowling.
// @Tags scorecard
// @Produce json
// @Param url query string true "Scorecard page URL"
// @Success 200 {object} scrape.ScorecardResult
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/scorecard [get]
func (h *Handler) GetScorecard(w http.ResponseWriter, r *http.Request) {
	markup, ok := h.scorecardMarkup(r.Context(), w, r)
	if !ok {
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, scrape.ExtractScorecard(markup))
}
