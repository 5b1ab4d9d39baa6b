package rental

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bookrental/app/echoServer/httperr"
	"bookrental/app/echoServer/render"
	"bookrental/repository/archive"
	rs "bookrental/service/rental"
)

const archiveLinkTTL = 15 * time.Minute

type Controller struct {
	Svc      rs.Service
	V        *validator.Validate
	Log      *slog.Logger
	Renderer *render.Renderer
	// Archive is nil when object storage is not configured.
	Archive archive.Store
}

// Rent books
// @Summary      Rent books
// @Description  Rents every distinct book to the customer for the given number of days. All or nothing.
// @Tags         rentals
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateRentalReq  true  "Rental"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any "invalid duration, unknown customer or book"
// @Security     BearerAuth
// @Router       /v1/rentals [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateRentalReq
	if err := httperr.Bind(c, h.V, h.Log, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	rentals, err := h.Svc.Create(ctx, req.CustomerID, req.BookIDs, req.Duration)
	if err != nil {
		return httperr.Respond(c, h.Log, "rental create", err)
	}
	ids := make([]int64, 0, len(rentals))
	for _, r := range rentals {
		ids = append(ids, r.ID)
	}
	views, err := h.Svc.Statements(ctx, ids)
	if err != nil {
		return httperr.Respond(c, h.Log, "rental statement", err)
	}
	out := make([]StatementResp, 0, len(views))
	for _, v := range views {
		out = append(out, toResp(v))
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": out})
}

// GET /v1/rentals?customer_id=
func (h *Controller) List(c echo.Context) error {
	customerID, err := strconv.ParseInt(c.QueryParam("customer_id"), 10, 64)
	if err != nil || customerID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "customer_id is required")
	}
	rows, err := h.Svc.ListByCustomer(c.Request().Context(), customerID)
	if err != nil {
		return httperr.Respond(c, h.Log, "rental list", err)
	}
	out := make([]StatementResp, 0, len(rows))
	for _, v := range rows {
		out = append(out, toResp(v))
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// Rental statement
// @Summary      Rental statement
// @Description  JSON by default, printable HTML with format=html
// @Tags         rentals
// @Produce      json,html
// @Param        id      path   int     true   "Rental ID"
// @Param        format  query  string  false  "json or html"
// @Success      200  {object}  StatementResp
// @Failure      404  {object}  map[string]any
// @Security     BearerAuth
// @Router       /v1/rentals/{id}/statement [get]
func (h *Controller) Statement(c echo.Context) error {
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return err
	}
	v, err := h.Svc.Statement(c.Request().Context(), id)
	if err != nil {
		return httperr.Respond(c, h.Log, "rental statement", err)
	}
	if c.QueryParam("format") == "html" {
		return c.Render(http.StatusOK, render.StatementTemplate, v)
	}
	return c.JSON(http.StatusOK, toResp(*v))
}

// Archive statement
// @Summary      Archive statement
// @Description  Stores the rendered HTML statement in object storage and returns a temporary link
// @Tags         rentals
// @Produce      json
// @Param        id   path  int  true  "Rental ID"
// @Success      201  {object}  ArchiveResp
// @Security     BearerAuth
// @Router       /v1/rentals/{id}/statement/archive [post]
func (h *Controller) ArchiveStatement(c echo.Context) error {
	if h.Archive == nil {
		return echo.NewHTTPError(http.StatusNotFound, "statement archive is not configured")
	}
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	v, err := h.Svc.Statement(ctx, id)
	if err != nil {
		return httperr.Respond(c, h.Log, "rental statement", err)
	}
	body, err := h.Renderer.Statement(*v)
	if err != nil {
		return httperr.Respond(c, h.Log, "statement render", err)
	}

	now := time.Now()
	key := archive.StatementKey(id, now)
	if err := h.Archive.Put(ctx, key, body, "text/html; charset=utf-8"); err != nil {
		return httperr.Respond(c, h.Log, "statement archive", err)
	}
	url, err := h.Archive.PresignGet(ctx, key, archiveLinkTTL)
	if err != nil {
		return httperr.Respond(c, h.Log, "statement archive", err)
	}
	return c.JSON(http.StatusCreated, ArchiveResp{Key: key, URL: url, ExpiresAt: now.Add(archiveLinkTTL).UTC()})
}
