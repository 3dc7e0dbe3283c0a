package receipt

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinichq/clinic/internal/domain/patient"
	"github.com/clinichq/clinic/internal/platform/kvstore"
	"github.com/clinichq/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts receipt routes on the session-gated doctor group.
func (h *Handler) RegisterRoutes(doctor *echo.Group) {
	doctor.POST("/receipts", h.GenerateReceipt)
	doctor.GET("/receipts", h.ListReceipts)
	doctor.GET("/receipts/:id", h.GetReceipt)
}

func (h *Handler) GenerateReceipt(c echo.Context) error {
	var in GenerateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rcpt, err := h.svc.Generate(c.Request().Context(), in)
	switch {
	case errors.Is(err, patient.ErrPatientNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	case errors.Is(err, patient.ErrVisitNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "visit not found")
	case errors.Is(err, ErrReceiptExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, kvstore.ErrCorruptCollection):
		return echo.NewHTTPError(http.StatusInternalServerError, "stored data is corrupt")
	case err != nil:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rcpt)
}

func (h *Handler) ListReceipts(c echo.Context) error {
	receipts, err := h.svc.List(c.Request().Context())
	if err != nil {
		if errors.Is(err, kvstore.ErrCorruptCollection) {
			return echo.NewHTTPError(http.StatusInternalServerError, "stored data is corrupt")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	pg := pagination.FromContext(c)
	page := pagination.Apply(receipts, pg)
	if page == nil {
		page = []Receipt{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(page, len(receipts), pg.Limit, pg.Offset))
}

func (h *Handler) GetReceipt(c echo.Context) error {
	rcpt, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrReceiptNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "receipt not found")
	}
	if err != nil {
		if errors.Is(err, kvstore.ErrCorruptCollection) {
			return echo.NewHTTPError(http.StatusInternalServerError, "stored data is corrupt")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rcpt)
}
