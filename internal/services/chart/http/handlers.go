// Package http provides http transport for charts
package http

import (
	stdhttp "net/http"
	"strconv"

	"waxpoll/internal/modkit/httpkit"
	perr "waxpoll/internal/platform/errors"
	"waxpoll/internal/services/chart/domain"
	svc "waxpoll/internal/services/chart/service"
)

// Register mounts chart endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// rebuild a year from source lists
	httpkit.PostJSON[domain.RecomputeInput](r, "/recompute", h.recompute)

	// revealed years list
	httpkit.Get(r, "/revealed", h.revealedYears)

	// per-year reads
	httpkit.Get(r, "/{year}", h.get)
	httpkit.Get(r, "/{year}/status", h.status)
	httpkit.Get(r, "/{year}/stats", h.stats)
}

type handlers struct{ svc svc.Service }

// yearParam parses the {year} route segment
func yearParam(r *stdhttp.Request) (int, error) {
	raw := httpkit.URLParam(r, "year")
	y, err := strconv.Atoi(raw)
	if err != nil || y < 1990 || y > 2100 {
		return 0, perr.InvalidArgf("invalid year %q", raw)
	}
	return y, nil
}

// swagger:route POST /chart/recompute Chart chartRecompute
// @Summary Recompute the consensus chart for a year
// @Tags Chart
// @Accept json
// @Produce json
// @Param payload body domain.RecomputeInput true "Year"
// @Success 200 {object} domain.Record "ok"
// @Router /chart/recompute [post]
func (h *handlers) recompute(r *stdhttp.Request, in domain.RecomputeInput) (any, error) {
	return h.svc.Recompute(r.Context(), in.Year)
}

// swagger:route GET /chart/{year} Chart chartGet
// @Summary Fetch the chart for a year
// @Description Albums and stats are withheld until the year is revealed
// unless include_unrevealed=true (the outer auth layer gates that flag to admins)
// @Tags Chart
// @Produce json
// @Success 200 {object} domain.Record "ok"
// @Router /chart/{year} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	year, err := yearParam(r)
	if err != nil {
		return nil, err
	}
	rec, err := h.svc.Get(r.Context(), year)
	if err != nil {
		return nil, err
	}
	if !rec.Revealed && r.URL.Query().Get("include_unrevealed") != "true" {
		return rec.Masked(), nil
	}
	return rec, nil
}

// swagger:route GET /chart/{year}/status Chart chartStatus
// @Summary Lifecycle status for a year
// @Tags Chart
// @Produce json
// @Success 200 {object} domain.Status "ok"
// @Router /chart/{year}/status [get]
func (h *handlers) status(r *stdhttp.Request) (any, error) {
	year, err := yearParam(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Status(r.Context(), year)
}

// swagger:route GET /chart/{year}/stats Chart chartStats
// @Summary Chart statistics for a year
// @Tags Chart
// @Produce json
// @Success 200 {object} chart.Stats "ok"
// @Router /chart/{year}/stats [get]
func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	year, err := yearParam(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Stats(r.Context(), year)
}

// swagger:route GET /chart/revealed Chart chartRevealedYears
// @Summary Years whose charts are revealed
// @Tags Chart
// @Produce json
// @Success 200 {array} int "ok"
// @Router /chart/revealed [get]
func (h *handlers) revealedYears(r *stdhttp.Request) (any, error) {
	return h.svc.RevealedYears(r.Context())
}
