package booktype

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bookrental/app/echoServer/httperr"
	booktypesvc "bookrental/service/booktype"
)

type Controller struct {
	Svc booktypesvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func (r BookTypeReq) input() booktypesvc.Input {
	return booktypesvc.Input{
		Name:          r.Name,
		RentCharge:    r.RentCharge,
		CustomPricing: r.CustomPricing,
		MinimumCharge: r.MinimumCharge,
		NoOfDays:      r.NoOfDays,
	}
}

// Create book type
// @Summary      Create book type
// @Description  Flat daily charge plus optional custom-pricing tier
// @Tags         book-types
// @Accept       json
// @Produce      json
// @Param        payload  body  BookTypeReq  true  "Book type"
// @Success      201  {object}  BookTypeResp
// @Failure      400  {object}  map[string]any
// @Security     BearerAuth
// @Router       /v1/book-types [post]
func (h *Controller) Create(c echo.Context) error {
	var req BookTypeReq
	if err := httperr.Bind(c, h.V, h.Log, &req); err != nil {
		return err
	}
	bt, err := h.Svc.Create(c.Request().Context(), req.input())
	if err != nil {
		return httperr.Respond(c, h.Log, "book type create", err)
	}
	return c.JSON(http.StatusCreated, toResp(bt))
}

// GET /v1/book-types
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return httperr.Respond(c, h.Log, "book type list", err)
	}
	out := make([]BookTypeResp, 0, len(rows))
	for i := range rows {
		out = append(out, toResp(&rows[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/book-types/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return err
	}
	bt, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return httperr.Respond(c, h.Log, "book type get", err)
	}
	return c.JSON(http.StatusOK, toResp(bt))
}

// PUT /v1/book-types/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req BookTypeReq
	if err := httperr.Bind(c, h.V, h.Log, &req); err != nil {
		return err
	}
	bt, err := h.Svc.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return httperr.Respond(c, h.Log, "book type update", err)
	}
	return c.JSON(http.StatusOK, toResp(bt))
}

// Delete book type
// @Summary      Delete book type
// @Description  Rejected with 409 while books reference the type
// @Tags         book-types
// @Param        id   path  int  true  "Book type ID"
// @Success      204
// @Failure      409  {object}  map[string]any
// @Security     BearerAuth
// @Router       /v1/book-types/{id} [delete]
func (h *Controller) Delete(c echo.Context) error {
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return httperr.Respond(c, h.Log, "book type delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Add custom-pricing tier
// @Summary  Add custom-pricing tier
// @Tags     book-types
// @Accept   json
// @Produce  json
// @Param    id       path  int      true  "Book type ID"
// @Param    payload  body  TierReq  true  "Tier"
// @Success  201  {object}  TierResp
// @Security BearerAuth
// @Router   /v1/book-types/{id}/tiers [post]
func (h *Controller) AddTier(c echo.Context) error {
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req TierReq
	if err := httperr.Bind(c, h.V, h.Log, &req); err != nil {
		return err
	}
	t, err := h.Svc.AddTier(c.Request().Context(), id, req.MinimumCharge, req.NoOfDays)
	if err != nil {
		return httperr.Respond(c, h.Log, "tier create", err)
	}
	return c.JSON(http.StatusCreated, tierResp(*t))
}

// POST /v1/condition-pricings
func (h *Controller) CreateCondition(c echo.Context) error {
	var req ConditionReq
	if err := httperr.Bind(c, h.V, h.Log, &req); err != nil {
		return err
	}
	cp, err := h.Svc.CreateCondition(c.Request().Context(), req.Condition)
	if err != nil {
		return httperr.Respond(c, h.Log, "condition create", err)
	}
	return c.JSON(http.StatusCreated, cp)
}

// GET /v1/condition-pricings
func (h *Controller) ListConditions(c echo.Context) error {
	rows, err := h.Svc.ListConditions(c.Request().Context())
	if err != nil {
		return httperr.Respond(c, h.Log, "condition list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
