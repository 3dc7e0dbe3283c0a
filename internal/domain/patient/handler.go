package patient

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinichq/clinic/internal/platform/kvstore"
	"github.com/clinichq/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts public registration/search routes on api and
// doctor-scoped routes on doctor (behind the session gate).
func (h *Handler) RegisterRoutes(api, doctor *echo.Group) {
	api.GET("/patients", h.FindPatient)
	api.GET("/patients/:id", h.GetPatient)
	api.POST("/patients", h.RegisterPatient)
	api.PUT("/patients/:id", h.UpdatePatient)

	doctor.GET("/doctors/:id/patients", h.ListByDoctor)
	doctor.POST("/patients/:id/visits", h.AddVisit)
}

// FindPatient answers ?q= searches with the first match in registration
// order.
func (h *Handler) FindPatient(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}
	p, err := h.svc.Find(c.Request().Context(), query)
	if errors.Is(err, ErrPatientNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "no patient matches the search")
	}
	if err != nil {
		return storageError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) GetPatient(c echo.Context) error {
	p, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrPatientNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	if err != nil {
		return storageError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) RegisterPatient(c echo.Context) error {
	var fields Registration
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.RegisterOrUpdate(c.Request().Context(), "", fields)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	var fields Registration
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.RegisterOrUpdate(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListByDoctor(c echo.Context) error {
	patients, err := h.svc.ListByDoctor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storageError(err)
	}
	pg := pagination.FromContext(c)
	page := pagination.Apply(patients, pg)
	if page == nil {
		page = []Patient{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(page, len(patients), pg.Limit, pg.Offset))
}

func (h *Handler) AddVisit(c echo.Context) error {
	var in VisitInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.AddVisit(c.Request().Context(), c.Param("id"), in)
	if errors.Is(err, ErrPatientNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func serviceError(err error) error {
	if errors.Is(err, kvstore.ErrCorruptCollection) {
		return storageError(err)
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}

func storageError(err error) error {
	if errors.Is(err, kvstore.ErrCorruptCollection) {
		return echo.NewHTTPError(http.StatusInternalServerError, "stored data is corrupt")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
