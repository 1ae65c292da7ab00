package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/albapepper/cricketfeed/internal/api/respond"
	"github.com/albapepper/cricketfeed/internal/cache"
	"github.com/albapepper/cricketfeed/internal/scrape"
)

// RawResponse carries upstream markup unchanged.
type RawResponse struct {
	OK   bool   `json:"ok"`
	HTML string `json:"html"`
}

// ScheduleSource tells an empty schedule apart from a page layout the
// extractor no longer recognises.
type ScheduleSource struct {
	Cards      int  `json:"cards"`
	TableRows  int  `json:"table_rows"`
	TableFound bool `json:"table_found"`
}

// ScheduleResponse is the parsed schedules payload.
type ScheduleResponse struct {
	OK     bool                 `json:"ok"`
	Count  int                  `json:"count"`
	Items  []scrape.MatchRecord `json:"items"`
	Source ScheduleSource       `json:"source"`
}

// scheduleMarkup returns the schedules page from the shared slot, fetching it
// at most once per TTL window.
func (h *Handler) scheduleMarkup(ctx context.Context) (string, bool, error) {
	data, _, hit, err := h.cache.GetOrLoad(ctx, cache.KeyScheduleHTML, h.cfg.ScheduleCacheTTL,
		func(ctx context.Context) ([]byte, error) {
			markup, err := h.source.FetchSchedules(ctx)
			if err != nil {
				return nil, err
			}
			return []byte(markup), nil
		})
	if err != nil {
		return "", false, err
	}
	return string(data), hit, nil
}

// GetSchedulesRaw returns the schedules page markup.
// @Summary Raw schedules page
// @Description Returns the upstream schedules page markup, cached for the schedule TTL.
// @Tags schedules
// @Produce json
// @Success 200 {object} RawResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/schedules/raw [get]
func (h *Handler) GetSchedulesRaw(w http.ResponseWriter, r *http.Request) {
	markup, _, err := h.scheduleMarkup(r.Context())
	if err != nil {
		h.logger.Error("Failed to fetch schedules", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, RawResponse{OK: true, HTML: markup})
}

// GetSchedules returns parsed match listings.
// @Summary Parsed schedules
// @Description Extracts match cards and schedule table rows, merged and de-duplicated. Team images point at locally cached flags when available.
// @Tags schedules
// @Produce json
// @Param If-None-Match header string false "ETag from previous response"
// @Success 200 {object} ScheduleResponse
// @Success 304 "Not Modified"
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/schedules [get]
func (h *Handler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	markup, hit, err := h.scheduleMarkup(ctx)
	if err != nil {
		h.logger.Error("Failed to fetch schedules", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	res := h.schedule.Extract(ctx, markup)
	data, err := json.Marshal(ScheduleResponse{
		OK:    true,
		Count: len(res.Items),
		Items: res.Items,
		Source: ScheduleSource{
			Cards:      res.Cards,
			TableRows:  res.TableRows,
			TableFound: res.TableFound,
		},
	})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	etag := cache.ComputeETag(data)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, h.cfg.ScheduleCacheTTL, hit)
}
