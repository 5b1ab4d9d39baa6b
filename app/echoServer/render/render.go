// Package render draws printable rental statements.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"bookrental/model"
)

//go:embed templates/*.html
var files embed.FS

const StatementTemplate = "statement"

var funcs = template.FuncMap{
	"money": Money,
	"date":  func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04 UTC") },
}

// Money formats an amount with exactly two fractional digits.
func Money(d decimal.Decimal) string { return d.StringFixed(2) }

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct{ t *template.Template }

func New() (*Renderer, error) {
	t, err := template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{t: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}

// Statement renders v as a standalone HTML document.
func (r *Renderer) Statement(v model.StatementView) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, StatementTemplate, v); err != nil {
		return nil, fmt.Errorf("render statement %d: %w", v.RentalID, err)
	}
	return buf.Bytes(), nil
}
