package registry

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinichq/clinic/internal/platform/kvstore"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/doctors", h.ListDoctors)
	api.GET("/doctors/:id", h.GetDoctor)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	doctors, err := h.svc.List(c.Request().Context())
	if err != nil {
		return storageError(err)
	}
	if doctors == nil {
		doctors = []Doctor{}
	}
	return c.JSON(http.StatusOK, doctors)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	doctor, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrDoctorNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
	}
	if err != nil {
		return storageError(err)
	}
	return c.JSON(http.StatusOK, doctor)
}

func storageError(err error) error {
	if errors.Is(err, kvstore.ErrCorruptCollection) {
		return echo.NewHTTPError(http.StatusInternalServerError, "stored data is corrupt")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
