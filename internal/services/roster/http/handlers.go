// Package http provides http transport for the contributor roster
package http

import (
	stdhttp "net/http"
	"strconv"

	"waxpoll/internal/modkit/httpkit"
	perr "waxpoll/internal/platform/errors"
	"waxpoll/internal/services/roster/domain"
	svc "waxpoll/internal/services/roster/service"
)

// Register mounts roster endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// seen markers first so the literal segment is not shadowed by {year}
	httpkit.Get(r, "/seen", h.hasSeen)
	httpkit.Get(r, "/seen/years", h.viewedYears)
	httpkit.PostJSON[domain.SeenInput](r, "/seen", h.markSeen)
	httpkit.DeleteJSON[domain.SeenInput](r, "/seen", h.resetSeen)

	httpkit.PostJSON[domain.SetInput](r, "/set", h.set)
	httpkit.PostJSON[domain.AddInput](r, "/add", h.add)
	httpkit.PostJSON[domain.RemoveInput](r, "/remove", h.remove)

	httpkit.Get(r, "/{year}", h.contributors)
	httpkit.Get(r, "/{year}/eligible", h.eligible)
}

type handlers struct{ svc svc.Service }

func yearParam(r *stdhttp.Request) (int, error) {
	raw := httpkit.URLParam(r, "year")
	y, err := strconv.Atoi(raw)
	if err != nil || y < 1990 || y > 2100 {
		return 0, perr.InvalidArgf("invalid year %q", raw)
	}
	return y, nil
}

func yearQuery(r *stdhttp.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	y, err := strconv.Atoi(raw)
	if err != nil || y < 1990 || y > 2100 {
		return 0, perr.InvalidArgf("invalid year %q", raw)
	}
	return y, nil
}

func userQuery(r *stdhttp.Request) (string, error) {
	id := r.URL.Query().Get("user_id")
	if id == "" {
		return "", perr.InvalidArgf("user_id is required")
	}
	return id, nil
}

// swagger:route GET /roster/{year} Roster rosterContributors
// @Summary Contributors for a year
// @Tags Roster
// @Produce json
// @Success 200 {array} domain.Contributor "ok"
// @Router /roster/{year} [get]
func (h *handlers) contributors(r *stdhttp.Request) (any, error) {
	year, err := yearParam(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Contributors(r.Context(), year)
}

// swagger:route GET /roster/{year}/eligible Roster rosterEligible
// @Summary Users with an applicable list for a year
// @Tags Roster
// @Produce json
// @Success 200 {array} domain.EligibleUser "ok"
// @Router /roster/{year}/eligible [get]
func (h *handlers) eligible(r *stdhttp.Request) (any, error) {
	year, err := yearParam(r)
	if err != nil {
		return nil, err
	}
	return h.svc.EligibleUsers(r.Context(), year)
}

// swagger:route POST /roster/set Roster rosterSet
// @Summary Replace the contributor set for a year
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body domain.SetInput true "Roster"
// @Success 200 {array} domain.Contributor "ok"
// @Router /roster/set [post]
func (h *handlers) set(r *stdhttp.Request, in domain.SetInput) (any, error) {
	if err := h.svc.Set(r.Context(), in); err != nil {
		return nil, err
	}
	return h.svc.Contributors(r.Context(), in.Year)
}

// swagger:route POST /roster/add Roster rosterAdd
// @Summary Opt a user in for a year
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body domain.AddInput true "Contributor"
// @Success 200 {array} domain.Contributor "ok"
// @Router /roster/add [post]
func (h *handlers) add(r *stdhttp.Request, in domain.AddInput) (any, error) {
	if err := h.svc.Add(r.Context(), in); err != nil {
		return nil, err
	}
	return h.svc.Contributors(r.Context(), in.Year)
}

// swagger:route POST /roster/remove Roster rosterRemove
// @Summary Opt a user out for a year
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body domain.RemoveInput true "Contributor"
// @Success 200 {array} domain.Contributor "ok"
// @Router /roster/remove [post]
func (h *handlers) remove(r *stdhttp.Request, in domain.RemoveInput) (any, error) {
	if err := h.svc.Remove(r.Context(), in); err != nil {
		return nil, err
	}
	return h.svc.Contributors(r.Context(), in.Year)
}

// swagger:route GET /roster/seen Roster rosterHasSeen
// @Summary Whether a user has been shown a year's reveal
// @Tags Roster
// @Produce json
// @Param year query int true "Year"
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.SeenStatus "ok"
// @Router /roster/seen [get]
func (h *handlers) hasSeen(r *stdhttp.Request) (any, error) {
	year, err := yearQuery(r)
	if err != nil {
		return nil, err
	}
	userID, err := userQuery(r)
	if err != nil {
		return nil, err
	}
	return h.svc.HasSeen(r.Context(), year, userID)
}

// swagger:route POST /roster/seen Roster rosterMarkSeen
// @Summary Mark a user as having been shown a year's reveal
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body domain.SeenInput true "Marker"
// @Success 200 {object} domain.SeenStatus "ok"
// @Router /roster/seen [post]
func (h *handlers) markSeen(r *stdhttp.Request, in domain.SeenInput) (any, error) {
	if err := h.svc.MarkSeen(r.Context(), in); err != nil {
		return nil, err
	}
	return h.svc.HasSeen(r.Context(), in.Year, in.UserID)
}

// swagger:route DELETE /roster/seen Roster rosterResetSeen
// @Summary Clear a user's reveal-view marker
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body domain.SeenInput true "Marker"
// @Success 200 {object} domain.SeenStatus "ok"
// @Router /roster/seen [delete]
func (h *handlers) resetSeen(r *stdhttp.Request, in domain.SeenInput) (any, error) {
	if err := h.svc.ResetSeen(r.Context(), in); err != nil {
		return nil, err
	}
	return h.svc.HasSeen(r.Context(), in.Year, in.UserID)
}

// swagger:route GET /roster/seen/years Roster rosterViewedYears
// @Summary Years a user has been shown
// @Tags Roster
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} int "ok"
// @Router /roster/seen/years [get]
func (h *handlers) viewedYears(r *stdhttp.Request) (any, error) {
	userID, err := userQuery(r)
	if err != nil {
		return nil, err
	}
	return h.svc.ViewedYears(r.Context(), userID)
}
