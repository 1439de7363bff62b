package availability

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/availability", h.ListRules)
	api.POST("/availability", h.CreateRule)
	api.POST("/availability/batch", h.CreateBatch)
	api.DELETE("/availability/:id", h.DeleteRule)
	api.PATCH("/availability/:id/active", h.SetActive)
}

func (h *Handler) CreateRule(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r, err := h.svc.CreateRule(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, ErrInvalidRule) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, r)
}

// BatchResponse reports a batch creation outcome; Created may be smaller
// than Requested when some times were malformed.
type BatchResponse struct {
	Created   int     `json:"created"`
	Requested int     `json:"requested"`
	Rules     []*Rule `json:"rules"`
}

func (h *Handler) CreateBatch(c echo.Context) error {
	var in BatchInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rules, requested, err := h.svc.CreateBatch(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, ErrInvalidRule) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, BatchResponse{Created: len(rules), Requested: requested, Rules: rules})
}

func (h *Handler) ListRules(c echo.Context) error {
	rules, err := h.svc.ListRules(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if rules == nil {
		rules = []*Rule{}
	}
	return c.JSON(http.StatusOK, rules)
}

func (h *Handler) DeleteRule(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteRule(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SetActive(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r, err := h.svc.SetActive(c.Request().Context(), id, body.Active)
	if err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "rule not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, r)
}
