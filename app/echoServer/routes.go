package echoServer

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"bookrental/app/echoServer/controller/auth"
	"bookrental/app/echoServer/controller/author"
	"bookrental/app/echoServer/controller/book"
	"bookrental/app/echoServer/controller/booktype"
	"bookrental/app/echoServer/controller/customer"
	"bookrental/app/echoServer/controller/rental"
)

type C struct {
	Auth      *auth.Controller
	Author    *author.Controller
	Customer  *customer.Controller
	BookType  *booktype.Controller
	Book      *book.Controller
	Rental    *rental.Controller
	JWTSecret string
	Log       *slog.Logger
	// ArchiveEnabled registers the statement archive route.
	ArchiveEnabled bool
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)
	pub.POST("/users/password-reset", c.Auth.RequestReset)
	pub.POST("/users/password-reset/confirm", c.Auth.ConfirmReset)

	// Auth
	v1 := e.Group("/v1", JWTAuth(c.JWTSecret, c.Log))

	// Authors
	v1.GET("/authors", c.Author.List)
	v1.POST("/authors", c.Author.Create)
	v1.GET("/authors/:id", c.Author.Get)
	v1.PUT("/authors/:id", c.Author.Update)
	v1.DELETE("/authors/:id", c.Author.Delete)

	// Customers
	v1.GET("/customers", c.Customer.List)
	v1.POST("/customers", c.Customer.Create)
	v1.GET("/customers/:id", c.Customer.Get)
	v1.PUT("/customers/:id", c.Customer.Update)

	// Book types and pricing
	v1.GET("/book-types", c.BookType.List)
	v1.POST("/book-types", c.BookType.Create)
	v1.GET("/book-types/:id", c.BookType.Get)
	v1.PUT("/book-types/:id", c.BookType.Update)
	v1.DELETE("/book-types/:id", c.BookType.Delete)
	v1.POST("/book-types/:id/tiers", c.BookType.AddTier)
	v1.GET("/condition-pricings", c.BookType.ListConditions)
	v1.POST("/condition-pricings", c.BookType.CreateCondition)

	// Books
	v1.GET("/books", c.Book.List)
	v1.POST("/books", c.Book.Create)
	v1.GET("/books/:id", c.Book.Detail)
	v1.PUT("/books/:id", c.Book.Update)

	// Rentals
	v1.POST("/rentals", c.Rental.Create)
	v1.GET("/rentals", c.Rental.List)
	v1.GET("/rentals/:id/statement", c.Rental.Statement)
	if c.ArchiveEnabled {
		v1.POST("/rentals/:id/statement/archive", c.Rental.ArchiveStatement)
	}
}
