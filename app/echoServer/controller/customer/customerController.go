package customer

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bookrental/app/echoServer/httperr"
	customersvc "bookrental/service/customer"
)

type Controller struct {
	Svc customersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/customers
func (h *Controller) Create(c echo.Context) error {
	var req CustomerReq
	if err := httperr.Bind(c, h.V, h.Log, &req); err != nil {
		return err
	}
	cu, err := h.Svc.Create(c.Request().Context(), customersvc.Input(req))
	if err != nil {
		return httperr.Respond(c, h.Log, "customer create", err)
	}
	return c.JSON(http.StatusCreated, cu)
}

// GET /v1/customers
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return httperr.Respond(c, h.Log, "customer list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/customers/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return err
	}
	cu, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return httperr.Respond(c, h.Log, "customer get", err)
	}
	return c.JSON(http.StatusOK, cu)
}

// PUT /v1/customers/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req CustomerReq
	if err := httperr.Bind(c, h.V, h.Log, &req); err != nil {
		return err
	}
	cu, err := h.Svc.Update(c.Request().Context(), id, customersvc.Input(req))
	if err != nil {
		return httperr.Respond(c, h.Log, "customer update", err)
	}
	return c.JSON(http.StatusOK, cu)
}
