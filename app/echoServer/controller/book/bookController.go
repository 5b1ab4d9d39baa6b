package book

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bookrental/app/echoServer/httperr"
	booksvc "bookrental/service/book"
)

type Controller struct {
	Svc booksvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func toResp(b *booksvc.Book) BookResp {
	out := BookResp{ID: b.ID, Title: b.Title, AuthorID: b.AuthorID, BookTypeID: b.BookTypeID}
	if b.Author != nil {
		out.AuthorName = b.Author.FullName()
	}
	if b.BookType != nil {
		out.BookType = b.BookType.Name
	}
	return out
}

// POST /v1/books
func (h *Controller) Create(c echo.Context) error {
	var req BookReq
	if err := httperr.Bind(c, h.V, h.Log, &req); err != nil {
		return err
	}
	id, err := h.Svc.Create(c.Request().Context(), req.Title, req.AuthorID, req.BookTypeID)
	if err != nil {
		return httperr.Respond(c, h.Log, "book create", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// PUT /v1/books/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req BookReq
	if err := httperr.Bind(c, h.V, h.Log, &req); err != nil {
		return err
	}
	b, err := h.Svc.Update(c.Request().Context(), id, req.Title, req.AuthorID, req.BookTypeID)
	if err != nil {
		return httperr.Respond(c, h.Log, "book update", err)
	}
	return c.JSON(http.StatusOK, toResp(b))
}

// GET /v1/books
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return httperr.Respond(c, h.Log, "book list", err)
	}
	out := make([]BookResp, 0, len(rows))
	for i := range rows {
		out = append(out, toResp(&rows[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/books/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := httperr.ParamID(c, "id")
	if err != nil {
		return err
	}
	row, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		return httperr.Respond(c, h.Log, "book detail", err)
	}
	return c.JSON(http.StatusOK, toResp(row))
}
