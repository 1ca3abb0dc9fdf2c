// Package http provides http transport for reveal confirmations
package http

import (
	stdhttp "net/http"
	"strconv"

	"waxpoll/internal/modkit/httpkit"
	perr "waxpoll/internal/platform/errors"
	"waxpoll/internal/services/reveal/domain"
	svc "waxpoll/internal/services/reveal/service"
)

// Register mounts reveal endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.ConfirmInput](r, "/confirm", h.confirm)
	httpkit.PostJSON[domain.RevokeInput](r, "/revoke", h.revoke)
	httpkit.Get(r, "/{year}/confirmations", h.confirmations)
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

// swagger:route POST /reveal/confirm Reveal revealConfirm
// @Summary Confirm a year's chart for reveal
// @Description Reaching quorum flips the chart to revealed exactly once
// @Tags Reveal
// @Accept json
// @Produce json
// @Param payload body domain.ConfirmInput true "Confirmation"
// @Success 200 {object} domain.Result "ok"
// @Router /reveal/confirm [post]
func (h *handlers) confirm(r *stdhttp.Request, in domain.ConfirmInput) (any, error) {
	return h.svc.Confirm(r.Context(), in)
}

// swagger:route POST /reveal/revoke Reveal revealRevoke
// @Summary Withdraw a confirmation before the reveal
// @Tags Reveal
// @Accept json
// @Produce json
// @Param payload body domain.RevokeInput true "Revocation"
// @Success 200 {object} domain.Result "ok"
// @Router /reveal/revoke [post]
func (h *handlers) revoke(r *stdhttp.Request, in domain.RevokeInput) (any, error) {
	return h.svc.Revoke(r.Context(), in)
}

// swagger:route GET /reveal/{year}/confirmations Reveal revealConfirmations
// @Summary Stored confirmations for a year
// @Tags Reveal
// @Produce json
// @Success 200 {array} domain.Confirmation "ok"
// @Router /reveal/{year}/confirmations [get]
func (h *handlers) confirmations(r *stdhttp.Request) (any, error) {
	year, err := yearParam(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Confirmations(r.Context(), year)
}
