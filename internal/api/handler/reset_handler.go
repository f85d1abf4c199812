package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ownergate/gatekeeper/internal/api/metrics"
	"github.com/ownergate/gatekeeper/internal/api/middleware"
	"github.com/ownergate/gatekeeper/internal/core/domain"
	"github.com/ownergate/gatekeeper/internal/core/ports"
)

// ResetHandler exposes the install reset. The route is public; the only
// gate is the owner-controlled disable flag checked by the authority.
type ResetHandler struct {
	reset   ports.ResetAuthority
	cookies middleware.Cookies
}

func NewResetHandler(reset ports.ResetAuthority, cookies middleware.Cookies) *ResetHandler {
	return &ResetHandler{reset: reset, cookies: cookies}
}

type resetResponse struct {
	Deleted []string `json:"deleted"`
}

// Reset wipes the OAuth config, owner record and setup flag. The session
// cookie is cleared whenever any deletion was attempted, even if some failed.
//
// @Summary      Reset installation
// @Tags         setup
// @Produce      json
// @Success      200  {object}  resetResponse
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /reset [post]
func (h *ResetHandler) Reset(c echo.Context) error {
	res, err := h.reset.PerformReset(c.Request().Context(), middleware.ClaimsFrom(c))
	if res != nil && res.InvalidateSession {
		h.cookies.Clear(c)
	}

	switch {
	case err == nil:
		metrics.ResetOperationsTotal.WithLabelValues("success").Inc()
		return c.JSON(http.StatusOK, resetResponse{Deleted: res.Deleted})
	case errors.Is(err, domain.ErrResetDisabled):
		metrics.ResetOperationsTotal.WithLabelValues("refused").Inc()
		return err
	case res != nil:
		metrics.ResetOperationsTotal.WithLabelValues("partial").Inc()
		return err
	default:
		metrics.ResetOperationsTotal.WithLabelValues("error").Inc()
		return err
	}
}
