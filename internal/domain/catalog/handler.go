package catalog

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinichq/clinic/internal/domain/registry"
	"github.com/clinichq/clinic/internal/platform/kvstore"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/catalog/:doctorId", h.GetCatalog)
}

func (h *Handler) GetCatalog(c echo.Context) error {
	opts, err := h.svc.ForDoctor(c.Request().Context(), c.Param("doctorId"))
	if errors.Is(err, registry.ErrDoctorNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
	}
	if err != nil {
		if errors.Is(err, kvstore.ErrCorruptCollection) {
			return echo.NewHTTPError(http.StatusInternalServerError, "stored data is corrupt")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, opts)
}
