package author

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bookrental/app/echoServer/httperr"
	authorsvc "bookrental/service/author"
)

type Controller struct {
	Svc authorsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func (r AuthorReq) input() authorsvc.Input {
	return authorsvc.Input{FirstName: r.FirstName, LastName: r.LastName, Email: r.Email}
}

// Create author
// @Summary      Create author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        payload  body  AuthorReq  true  "Author"
// @Success      201  {object}  model.Author
// @Failure      400  {object}  map[string]any "validation error or email taken"
// @Security     BearerAuth
// @Router       /v1/authors [post]
func (h *Controller) Create(c echo.Context) error {
	var req AuthorReq
	if err := httperr.Bind(c, h.V, h.Log, &req); err != nil {
		return err
	}
	a, err := h.Svc.Create(c.Request().Context(), req.input())
	if err != nil {
		return httperr.Respond(c, h.Log, "author create", err)
	}
	return c.JSON(http.StatusCreated, a)
}

// @Summary  List authors
// @Tags     authors
// @Produce  json
// @Success  200  {object}  map[string]any
// @Security BearerAuth
// @Router   /v1/authors [get]
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return httperr.Respond(c, h.Log, "author list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// @Summary  Get author
// @Tags     authors
// @Produce  json
// @Param    id   path  int  true  "Author ID"
// @Success  200  {object}  model.Author
// @Failure  404  {object}  map[string]any
// @Security BearerAuth
// @Router   /v1/authors/{id} [get]
func (h *Controller) Get(c echo.Context) error {
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return err
	}
	a, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return httperr.Respond(c, h.Log, "author get", err)
	}
	return c.JSON(http.StatusOK, a)
}

// @Summary  Update author
// @Tags     authors
// @Accept   json
// @Produce  json
// @Param    id       path  int        true  "Author ID"
// @Param    payload  body  AuthorReq  true  "Author"
// @Success  200  {object}  model.Author
// @Security BearerAuth
// @Router   /v1/authors/{id} [put]
func (h *Controller) Update(c echo.Context) error {
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req AuthorReq
	if err := httperr.Bind(c, h.V, h.Log, &req); err != nil {
		return err
	}
	a, err := h.Svc.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return httperr.Respond(c, h.Log, "author update", err)
	}
	return c.JSON(http.StatusOK, a)
}

// Delete author
// @Summary      Delete author
// @Description  Rejected with 409 while books reference the author
// @Tags         authors
// @Param        id   path  int  true  "Author ID"
// @Success      204
// @Failure      404  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Security     BearerAuth
// @Router       /v1/authors/{id} [delete]
func (h *Controller) Delete(c echo.Context) error {
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return httperr.Respond(c, h.Log, "author delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}
